package types

import (
	"slices"
	"time"

	"github.com/angas/esios-go/types/maybe"
)

// Indicator is the reference metadata for one e·sios indicator.
type Indicator struct {
	Id        int
	Name      string
	ShortName string
	Unit      string
}

// Row is one observation extracted from an indicator payload.
type Row struct {
	Time        time.Time
	Value       maybe.Maybe[float64]
	GeoId       int
	GeoName     string
	IndicatorId int
}

// Table is the flattened form of one indicator response. Row order
// follows the API response, which is not guaranteed chronological;
// call SortByTime when the caller needs it.
type Table []Row

func (t Table) SortByTime() {
	slices.SortStableFunc(t, func(a, b Row) int {
		return a.Time.Compare(b.Time)
	})
}

// GeoIds returns the distinct geo ids present in the table, in first
// appearance order.
func (t Table) GeoIds() []int {
	var ids []int
	for _, r := range t {
		if !slices.Contains(ids, r.GeoId) {
			ids = append(ids, r.GeoId)
		}
	}
	return ids
}

// ForGeo returns the rows belonging to one geo id, preserving order.
func (t Table) ForGeo(geoId int) Table {
	var rows Table
	for _, r := range t {
		if r.GeoId == geoId {
			rows = append(rows, r)
		}
	}
	return rows
}

// Since returns the rows at or after the given instant, preserving order.
func (t Table) Since(from time.Time) Table {
	var rows Table
	for _, r := range t {
		if !r.Time.Before(from) {
			rows = append(rows, r)
		}
	}
	return rows
}
