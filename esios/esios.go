// Package esios is a client for Red Eléctrica's e·sios REST API
// (https://api.esios.ree.es), which publishes Spanish electricity-market
// indicators: prices, demand, generation mix, CO2 emissions and about a
// thousand more. Access requires a personal token requested from
// https://www.esios.ree.es/.
package esios

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/angas/esios-go/types"
)

const DefaultBaseUrl = "https://api.esios.ree.es"

const acceptHeader = "application/json; application/vnd.esios-api-v1+json"

type Options struct {
	// BaseUrl overrides the API endpoint, mainly for tests.
	BaseUrl string
	// Timeout bounds the whole round trip. Default 30s. Exceeding it is
	// reported as a connectivity error.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client talks to the e·sios API. One round trip per call, no retries,
// no caching; every call owns its own request and result, so a Client
// is safe for concurrent use.
type Client struct {
	baseUrl string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

func New(token string, opts Options) (*Client, error) {
	if token == "" {
		return nil, ErrMissingCredential
	}

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default().With("module", "esios")
	}

	return &Client{
		baseUrl: opts.BaseUrl,
		token:   token,
		client:  &http.Client{Timeout: opts.Timeout},
		logger:  opts.Logger,
	}, nil
}

// Indicators fetches the full indicator catalog: id, name, short name
// and unit for every indicator the API publishes. No date filtering.
func (c *Client) Indicators(ctx context.Context) ([]types.Indicator, error) {
	body, err := c.get(ctx, "/indicators", nil)
	if err != nil {
		return nil, err
	}

	var envelope rawCatalogEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog: %v", ErrUpstream, err)
	}
	if envelope.Indicators == nil {
		return nil, fmt.Errorf("%w: missing indicators field", ErrMalformedResponse)
	}

	catalog := make([]types.Indicator, 0, len(*envelope.Indicators))
	for _, raw := range *envelope.Indicators {
		catalog = append(catalog, raw.toIndicator())
	}
	return catalog, nil
}

// Indicator fetches the metadata record for a single indicator.
func (c *Client) Indicator(ctx context.Context, indicatorId int) (types.Indicator, error) {
	if indicatorId <= 0 {
		return types.Indicator{}, fmt.Errorf("%w: indicator id must be positive, got %d", ErrValidation, indicatorId)
	}

	body, err := c.get(ctx, fmt.Sprintf("/indicators/%d", indicatorId), nil)
	if err != nil {
		return types.Indicator{}, err
	}

	envelope, err := decodeEnvelope(body)
	if err != nil {
		return types.Indicator{}, err
	}
	return envelope.Indicator.toIndicator(), nil
}

// IndicatorValues fetches one indicator's time series and flattens it
// into a Table. Row order follows the API response; sort explicitly
// when chronological order matters.
func (c *Client) IndicatorValues(ctx context.Context, indicatorId int, q Query) (types.Table, error) {
	q = q.withDefaults()
	if err := q.validate(indicatorId); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, fmt.Sprintf("/indicators/%d", indicatorId), q.queryValues())
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	return normalize(envelope.Indicator, q)
}

// get performs a single authenticated round trip and returns the raw
// body. All transport-level failures are mapped onto the error taxonomy
// here, in one place.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseUrl + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("x-api-key", c.token)

	c.logger.Debug("fetching from e·sios...", slog.String("url", u))

	res, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: timeout: %v", ErrConnectivity, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer res.Body.Close()

	c.logger.Debug("e·sios response", slog.Int("status", res.StatusCode))

	switch {
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuthentication, res.StatusCode)
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case res.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrConnectivity, err)
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
