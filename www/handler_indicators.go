package www

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/types"
)

// NewIndicatorsHandler renders the full indicator catalog, optionally
// filtered by a name substring.
func NewIndicatorsHandler(logger *slog.Logger, tm *TemplateManager, client *esios.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		catalog, err := client.Indicators(r.Context())
		if err != nil {
			logger.Error("fetching indicator catalog", slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		filter := strings.ToLower(r.URL.Query().Get("q"))
		if filter != "" {
			var filtered []types.Indicator
			for _, ind := range catalog {
				if strings.Contains(strings.ToLower(ind.Name), filter) {
					filtered = append(filtered, ind)
				}
			}
			catalog = filtered
		}

		data := struct {
			Filter     string
			Indicators []types.Indicator
		}{
			Filter:     r.URL.Query().Get("q"),
			Indicators: catalog,
		}

		w.Header().Set("Content-Type", "text/html")
		if err := tm.ExecuteToWriter("indicators.html", data, &w); err != nil {
			logger.Error("rendering catalog page", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
