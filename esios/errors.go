package esios

import "errors"

// The error taxonomy callers branch on with errors.Is. Every error
// returned by the client wraps exactly one of these sentinels, so a
// caller can tell "fix your request" (ErrValidation) from "fix your
// credentials" (ErrAuthentication) from "try again later"
// (ErrConnectivity, ErrUpstream).
var (
	// ErrMissingCredential is returned by New when no API token is
	// available, neither as an argument nor via configuration.
	ErrMissingCredential = errors.New("esios: missing api token")

	// ErrValidation is returned before any network call when the query
	// parameters are rejected (unknown granularity, inverted date range,
	// non-positive indicator id).
	ErrValidation = errors.New("esios: invalid query")

	// ErrConnectivity covers network failures and timeouts.
	ErrConnectivity = errors.New("esios: connection failed")

	// ErrAuthentication is returned on 401/403, i.e. an expired or
	// invalid token.
	ErrAuthentication = errors.New("esios: token rejected")

	// ErrNotFound is returned on 404, i.e. an unknown indicator.
	ErrNotFound = errors.New("esios: not found")

	// ErrUpstream covers 5xx responses and bodies that are not JSON.
	ErrUpstream = errors.New("esios: upstream error")

	// ErrMalformedResponse is returned when the body is valid JSON but
	// lacks the expected indicator/values shape.
	ErrMalformedResponse = errors.New("esios: malformed response")
)
