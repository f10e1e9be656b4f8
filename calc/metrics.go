package calc

import (
	"slices"
	"time"

	"github.com/angas/esios-go/convert"
	"github.com/angas/esios-go/types"
)

// Sum adds up the present values in a table. Absent values are skipped,
// they are gaps, not zeros.
func Sum(table types.Table) float64 {
	var sum float64
	for _, r := range table {
		if r.Value.IsValid() {
			sum += r.Value.Value()
		}
	}
	return sum
}

// Average returns the mean of the present values, and false when the
// table holds no values at all.
func Average(table types.Table) (float64, bool) {
	var sum float64
	var n int
	for _, r := range table {
		if r.Value.IsValid() {
			sum += r.Value.Value()
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// RenewableShare is the renewable part of total generation in percent,
// rounded to one decimal.
func RenewableShare(renewable, total float64) float64 {
	if total == 0 {
		return 0
	}
	return convert.RoundFloat64(renewable/total*100.0, 1)
}

type DayAverage struct {
	Date    string
	Average float64
}

// DailyAverages buckets a table by UTC calendar day and averages the
// present values per day, in chronological order.
func DailyAverages(table types.Table) []DayAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for _, r := range table {
		day := r.Time.UTC().Format(time.DateOnly)
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		if r.Value.IsValid() {
			sums[day] += r.Value.Value()
			counts[day]++
		} else if _, seen := counts[day]; !seen {
			counts[day] = 0
		}
	}

	slices.Sort(order)

	averages := make([]DayAverage, 0, len(order))
	for _, day := range order {
		if counts[day] == 0 {
			continue
		}
		averages = append(averages, DayAverage{
			Date:    day,
			Average: sums[day] / float64(counts[day]),
		})
	}
	return averages
}
