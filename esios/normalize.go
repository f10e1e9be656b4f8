package esios

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/angas/esios-go/types"
	"github.com/angas/esios-go/types/maybe"
)

// The intermediate representation of an indicator payload. It is
// validated as a whole before any row is emitted, so a payload with an
// unexpected shape fails at this one boundary instead of somewhere deep
// in the traversal. Pointer fields distinguish an absent key from an
// empty one.
type rawEnvelope struct {
	Indicator *rawIndicator `json:"indicator"`
}

type rawIndicator struct {
	Id        int           `json:"id"`
	Name      string        `json:"name"`
	ShortName string        `json:"short_name"`
	Magnitud  []rawMagnitud `json:"magnitud"`
	Values    *[]rawValue   `json:"values"`
}

type rawMagnitud struct {
	Name string `json:"name"`
	Id   int    `json:"id"`
}

type rawValue struct {
	Value       noDataFloat `json:"value"`
	Datetime    string      `json:"datetime"`
	DatetimeUTC string      `json:"datetime_utc"`
	GeoId       int         `json:"geo_id"`
	GeoName     string      `json:"geo_name"`
}

type rawCatalogEnvelope struct {
	Indicators *[]rawIndicator `json:"indicators"`
}

func (ri rawIndicator) toIndicator() types.Indicator {
	ind := types.Indicator{
		Id:        ri.Id,
		Name:      ri.Name,
		ShortName: ri.ShortName,
	}
	if len(ri.Magnitud) > 0 {
		ind.Unit = ri.Magnitud[0].Name
	}
	return ind
}

// decodeEnvelope turns a response body into the validated intermediate
// representation. A body that is not JSON is an upstream failure; valid
// JSON missing the indicator or values keys is a malformed response.
func decodeEnvelope(body []byte) (rawEnvelope, error) {
	var envelope rawEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return rawEnvelope{}, fmt.Errorf("%w: decoding body: %v", ErrUpstream, err)
	}
	if envelope.Indicator == nil {
		return rawEnvelope{}, fmt.Errorf("%w: missing indicator field", ErrMalformedResponse)
	}
	if envelope.Indicator.Values == nil {
		return rawEnvelope{}, fmt.Errorf("%w: missing values field", ErrMalformedResponse)
	}
	return envelope, nil
}

// normalize flattens one indicator payload into a Table, one row per
// (geography, time point). Rows outside the requested geo set are
// dropped; values the API reports with no geo id at all (national-level
// indicators) always pass. Any unparsable row fails the whole call, a
// Table is never partial.
func normalize(ind *rawIndicator, q Query) (types.Table, error) {
	table := make(types.Table, 0, len(*ind.Values))

	for i, v := range *ind.Values {
		if v.GeoId != 0 && !slices.Contains(q.GeoIds, v.GeoId) {
			continue
		}

		ts, err := parseTimestamp(v)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %v", ErrMalformedResponse, i, err)
		}

		table = append(table, types.Row{
			Time:        ts,
			Value:       v.Value.val,
			GeoId:       v.GeoId,
			GeoName:     v.GeoName,
			IndicatorId: ind.Id,
		})
	}

	return table, nil
}

// Timestamp layouts seen across indicators. datetime_utc is preferred,
// the local datetime carries an offset, daily and coarser aggregations
// come as bare dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(v rawValue) (time.Time, error) {
	s := v.DatetimeUTC
	if s == "" {
		s = v.Datetime
	}
	if s == "" {
		return time.Time{}, fmt.Errorf("no timestamp")
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// noDataFloat decodes the API's value field, where "no data" may appear
// as JSON null or as a textual placeholder. Placeholders become an
// absence marker, never zero.
type noDataFloat struct {
	val maybe.Maybe[float64]
}

var noDataPlaceholders = []string{"", "-", "n/a", "na"}

func (n *noDataFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		n.val = maybe.None[float64]()
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if slices.Contains(noDataPlaceholders, strings.ToLower(s)) {
			n.val = maybe.None[float64]()
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("unparsable value %q", s)
		}
		n.val = maybe.Some(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.val = maybe.Some(f)
	return nil
}
