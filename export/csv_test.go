package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/angas/esios-go/types"
	"github.com/angas/esios-go/types/maybe"
)

func TestWriteCSV(t *testing.T) {
	ind := types.Indicator{Id: 1013, Name: "PVPC", ShortName: "pvpc", Unit: "€/MWh"}
	table := types.Table{
		{
			Time:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Value:       maybe.Some(142.5),
			GeoId:       8741,
			GeoName:     "Península",
			IndicatorId: 1013,
		},
		{
			Time:        time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC),
			Value:       maybe.None[float64](),
			GeoId:       8741,
			GeoName:     "Península",
			IndicatorId: 1013,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ind, table); err != nil {
		t.Fatalf("writing csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[1][1] != "142.5" {
		t.Errorf("expected value 142.5, got %q", records[1][1])
	}
	if records[2][1] != "" {
		t.Errorf("expected empty cell for absent value, got %q", records[2][1])
	}
	if records[1][5] != "PVPC" {
		t.Errorf("expected indicator name, got %q", records[1][5])
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	ind := types.Indicator{Id: 1013, ShortName: "pvpc"}
	if got := Filename(ind, day); got != "pvpc_2025-01-02.csv" {
		t.Errorf("unexpected filename %q", got)
	}

	anonymous := types.Indicator{Id: 541}
	if got := Filename(anonymous, day); got != "indicator_541_2025-01-02.csv" {
		t.Errorf("unexpected filename %q", got)
	}
}
