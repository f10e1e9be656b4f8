package www

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/export"
	"github.com/angas/esios-go/types"
)

// NewExportHandler streams any indicator's values as a CSV download,
// e.g. /export?id=1013&start=2025-01-01&end=2025-01-07&group_by=hour.
func NewExportHandler(logger *slog.Logger, client *esios.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		indicatorId := intOrDefault(r.URL, "id", 0)
		q := queryFromRequest(r.URL)

		table, err := client.IndicatorValues(r.Context(), indicatorId, q)
		if err != nil {
			logger.Error("fetching values for export", slog.Int("indicator", indicatorId), slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		table.SortByTime()

		ind, err := client.Indicator(r.Context(), indicatorId)
		if err != nil {
			logger.Warn("fetching indicator metadata for export", slog.Any("error", err))
			ind = types.Indicator{Id: indicatorId}
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.Filename(ind, time.Now())))

		if err := export.WriteCSV(w, ind, table); err != nil {
			logger.Error("writing csv export", slog.Any("error", err))
		}
	}
}
