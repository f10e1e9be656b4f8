package www

import (
	"net/url"
	"strconv"
	"time"

	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/types"
	"github.com/angas/esios-go/types/maybe"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// queryFromRequest reads start/end/group_by query params. Missing dates
// default to the last seven days, the range the landing pages show.
func queryFromRequest(u *url.URL) esios.Query {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	q := esios.Query{
		StartDate: now.AddDate(0, 0, -7),
		EndDate:   now,
	}

	if v := u.Query().Get("start"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			q.StartDate = t
		}
	}
	if v := u.Query().Get("end"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			q.EndDate = t
		}
	}
	if v := u.Query().Get("group_by"); v != "" {
		q.GroupBy = esios.GroupBy(v)
	}

	return q
}

// rowView is what the table templates render.
type rowView struct {
	When    string
	Value   maybe.Maybe[float64]
	GeoName string
}

type tableView struct {
	Indicator types.Indicator
	Unit      string
	Start     string
	End       string
	GroupBy   string
	Rows      []rowView
}

func newTableView(ind types.Indicator, table types.Table, q esios.Query) tableView {
	table.SortByTime()

	rows := make([]rowView, 0, len(table))
	for _, r := range table {
		rows = append(rows, rowView{
			When:    r.Time.UTC().Format("2006-01-02 15:04"),
			Value:   r.Value,
			GeoName: r.GeoName,
		})
	}

	groupBy := string(q.GroupBy)
	if groupBy == "" {
		groupBy = string(esios.GroupByHour)
	}

	return tableView{
		Indicator: ind,
		Unit:      ind.Unit,
		Start:     q.StartDate.Format(time.DateOnly),
		End:       q.EndDate.Format(time.DateOnly),
		GroupBy:   groupBy,
		Rows:      rows,
	}
}
