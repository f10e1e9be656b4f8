package esios

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// GroupBy is the time bucket size of returned values.
type GroupBy string

const (
	GroupByHour  GroupBy = "hour"
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

// Query describes one indicator-values request. The zero value asks for
// the server-side default window, hourly buckets, peninsular Spain.
type Query struct {
	// StartDate and EndDate bound the requested window. A zero time
	// means no filter on that side.
	StartDate time.Time
	EndDate   time.Time
	GroupBy   GroupBy
	// GeoIds filters the response to these geo zones. Empty defaults to
	// peninsular Spain.
	GeoIds []int
}

// withDefaults resolves the documented defaults without touching the
// caller's Query.
func (q Query) withDefaults() Query {
	if q.GroupBy == "" {
		q.GroupBy = GroupByHour
	}
	if len(q.GeoIds) == 0 {
		q.GeoIds = []int{GeoPeninsula}
	}
	return q
}

// validate runs before any network call, so a bad query never costs a
// round trip.
func (q Query) validate(indicatorId int) error {
	if indicatorId <= 0 {
		return fmt.Errorf("%w: indicator id must be positive, got %d", ErrValidation, indicatorId)
	}

	switch q.GroupBy {
	case GroupByHour, GroupByDay, GroupByMonth, GroupByYear:
	default:
		return fmt.Errorf("%w: unknown granularity %q", ErrValidation, q.GroupBy)
	}

	if !q.StartDate.IsZero() && !q.EndDate.IsZero() && q.EndDate.Before(q.StartDate) {
		return fmt.Errorf("%w: end date %s before start date %s",
			ErrValidation, q.EndDate.Format(dateLayout), q.StartDate.Format(dateLayout))
	}

	for _, id := range q.GeoIds {
		if id <= 0 {
			return fmt.Errorf("%w: geo id must be positive, got %d", ErrValidation, id)
		}
	}

	return nil
}

// queryValues builds the query string for a validated query. Each
// parameter appears exactly once; geo ids use the API's array syntax.
func (q Query) queryValues() url.Values {
	v := url.Values{}
	if !q.StartDate.IsZero() {
		v.Set("start_date", q.StartDate.Format(dateLayout))
	}
	if !q.EndDate.IsZero() {
		v.Set("end_date", q.EndDate.Format(dateLayout))
	}
	v.Set("group_by", string(q.GroupBy))
	for _, id := range q.GeoIds {
		v.Add("geo_ids[]", strconv.Itoa(id))
	}
	return v
}
