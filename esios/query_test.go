package esios

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name        string
		indicatorId int
		query       Query
		wantErr     bool
	}{
		{
			name:        "valid full query",
			indicatorId: 1013,
			query: Query{
				StartDate: date(2025, 1, 1),
				EndDate:   date(2025, 1, 7),
				GroupBy:   GroupByHour,
				GeoIds:    []int{GeoPeninsula},
			},
		},
		{
			name:        "no dates is valid",
			indicatorId: 1013,
			query:       Query{GroupBy: GroupByDay, GeoIds: []int{GeoPeninsula}},
		},
		{
			name:        "equal start and end is valid",
			indicatorId: 1013,
			query: Query{
				StartDate: date(2025, 1, 1),
				EndDate:   date(2025, 1, 1),
				GroupBy:   GroupByHour,
				GeoIds:    []int{GeoPeninsula},
			},
		},
		{
			name:        "unknown granularity",
			indicatorId: 1013,
			query:       Query{GroupBy: "week", GeoIds: []int{GeoPeninsula}},
			wantErr:     true,
		},
		{
			name:        "end before start",
			indicatorId: 1013,
			query: Query{
				StartDate: date(2025, 1, 7),
				EndDate:   date(2025, 1, 1),
				GroupBy:   GroupByHour,
				GeoIds:    []int{GeoPeninsula},
			},
			wantErr: true,
		},
		{
			name:        "non-positive indicator id",
			indicatorId: 0,
			query:       Query{GroupBy: GroupByHour, GeoIds: []int{GeoPeninsula}},
			wantErr:     true,
		},
		{
			name:        "non-positive geo id",
			indicatorId: 1013,
			query:       Query{GroupBy: GroupByHour, GeoIds: []int{-1}},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.validate(tt.indicatorId)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestQueryDefaults(t *testing.T) {
	q := Query{}.withDefaults()
	if q.GroupBy != GroupByHour {
		t.Errorf("expected default granularity hour, got %q", q.GroupBy)
	}
	if len(q.GeoIds) != 1 || q.GeoIds[0] != GeoPeninsula {
		t.Errorf("expected default geo peninsula, got %v", q.GeoIds)
	}
	if !q.StartDate.IsZero() || !q.EndDate.IsZero() {
		t.Error("expected dates to stay unset")
	}
}

func TestQueryValuesEachParamOnce(t *testing.T) {
	q := Query{
		StartDate: date(2025, 2, 1),
		EndDate:   date(2025, 2, 2),
		GroupBy:   GroupByDay,
		GeoIds:    []int{GeoPeninsula, GeoCanaryIslands},
	}

	v := q.queryValues()

	for _, key := range []string{"start_date", "end_date", "group_by"} {
		if got := len(v[key]); got != 1 {
			t.Errorf("expected %s exactly once, got %d", key, got)
		}
	}
	if v.Get("start_date") != "2025-02-01" {
		t.Errorf("unexpected start_date %q", v.Get("start_date"))
	}
	if v.Get("group_by") != "day" {
		t.Errorf("unexpected group_by %q", v.Get("group_by"))
	}
	if got := v["geo_ids[]"]; len(got) != 2 || got[0] != "8741" || got[1] != "8742" {
		t.Errorf("unexpected geo_ids %v", got)
	}
}

func TestQueryValuesOmittedDates(t *testing.T) {
	v := Query{GroupBy: GroupByHour, GeoIds: []int{GeoPeninsula}}.queryValues()
	if v.Has("start_date") || v.Has("end_date") {
		t.Errorf("expected no date filter params, got %v", v)
	}
}
