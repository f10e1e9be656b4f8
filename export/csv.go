// Package export streams a normalized table as CSV, mainly for the
// dashboard's download links.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/angas/esios-go/types"
)

var header = []string{"datetime", "value", "geo_id", "geo_name", "indicator_id", "indicator_name"}

// WriteCSV writes one table with its indicator metadata. Absent values
// become empty cells, not zeros.
func WriteCSV(w io.Writer, ind types.Indicator, table types.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, r := range table {
		value := ""
		if r.Value.IsValid() {
			value = strconv.FormatFloat(r.Value.Value(), 'f', -1, 64)
		}
		record := []string{
			r.Time.UTC().Format(time.RFC3339),
			value,
			strconv.Itoa(r.GeoId),
			r.GeoName,
			strconv.Itoa(ind.Id),
			ind.Name,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// Filename suggests a download name like "pvpc_2025-01-01.csv".
func Filename(ind types.Indicator, day time.Time) string {
	name := ind.ShortName
	if name == "" {
		name = fmt.Sprintf("indicator_%d", ind.Id)
	}
	return fmt.Sprintf("%s_%s.csv", name, day.UTC().Format(time.DateOnly))
}
