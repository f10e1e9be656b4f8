package calc

import (
	"testing"
	"time"

	"github.com/angas/esios-go/types"
	"github.com/angas/esios-go/types/maybe"
)

func tableOf(values ...types.Row) types.Table {
	return types.Table(values)
}

func at(day, hour int, v maybe.Maybe[float64]) types.Row {
	return types.Row{
		Time:  time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC),
		Value: v,
		GeoId: 8741,
	}
}

func TestSumSkipsAbsentValues(t *testing.T) {
	table := tableOf(
		at(1, 0, maybe.Some(10.0)),
		at(1, 1, maybe.None[float64]()),
		at(1, 2, maybe.Some(5.0)),
	)
	if got := Sum(table); got != 15.0 {
		t.Errorf("expected 15.0, got %v", got)
	}
}

func TestAverage(t *testing.T) {
	table := tableOf(
		at(1, 0, maybe.Some(10.0)),
		at(1, 1, maybe.None[float64]()),
		at(1, 2, maybe.Some(20.0)),
	)
	avg, ok := Average(table)
	if !ok || avg != 15.0 {
		t.Errorf("expected 15.0, got %v (ok=%v)", avg, ok)
	}

	if _, ok := Average(tableOf(at(1, 0, maybe.None[float64]()))); ok {
		t.Error("expected no average for a table of gaps")
	}
}

func TestRenewableShare(t *testing.T) {
	if got := RenewableShare(30, 120); got != 25.0 {
		t.Errorf("expected 25.0, got %v", got)
	}
	if got := RenewableShare(1, 3); got != 33.3 {
		t.Errorf("expected 33.3, got %v", got)
	}
	if got := RenewableShare(30, 0); got != 0 {
		t.Errorf("expected 0 for zero total, got %v", got)
	}
}

func TestDailyAverages(t *testing.T) {
	table := tableOf(
		at(1, 0, maybe.Some(10.0)),
		at(1, 12, maybe.Some(20.0)),
		at(2, 0, maybe.None[float64]()),
		at(3, 0, maybe.Some(7.0)),
	)

	got := DailyAverages(table)
	if len(got) != 2 {
		t.Fatalf("expected 2 day buckets with values, got %d", len(got))
	}
	if got[0].Date != "2025-01-01" || got[0].Average != 15.0 {
		t.Errorf("unexpected first bucket %+v", got[0])
	}
	if got[1].Date != "2025-01-03" || got[1].Average != 7.0 {
		t.Errorf("unexpected second bucket %+v", got[1])
	}
}
