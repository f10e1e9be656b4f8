package www

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/types"
)

type fetchFunc func(ctx context.Context, q esios.Query) (types.Table, error)

// newIndicatorPageHandler renders one indicator page. Every request
// fetches fresh data from the API; nothing is cached in between.
func newIndicatorPageHandler(logger *slog.Logger, tm *TemplateManager, client *esios.Client, templateName string, indicatorId int, fetch fetchFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q := queryFromRequest(r.URL)

		table, err := fetch(r.Context(), q)
		if err != nil {
			logger.Error("fetching indicator values", slog.Int("indicator", indicatorId), slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		ind, err := client.Indicator(r.Context(), indicatorId)
		if err != nil {
			logger.Warn("fetching indicator metadata", slog.Int("indicator", indicatorId), slog.Any("error", err))
			ind = types.Indicator{Id: indicatorId}
		}

		w.Header().Set("Content-Type", "text/html")
		if err := tm.ExecuteToWriter(templateName, newTableView(ind, table, q), &w); err != nil {
			logger.Error("rendering indicator page", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func NewPricesHandler(logger *slog.Logger, tm *TemplateManager, client *esios.Client) http.HandlerFunc {
	return newIndicatorPageHandler(logger, tm, client, "prices.html",
		esios.IndicatorPVPCPrice, client.ElectricityPrices)
}

func NewDemandHandler(logger *slog.Logger, tm *TemplateManager, client *esios.Client) http.HandlerFunc {
	return newIndicatorPageHandler(logger, tm, client, "demand.html",
		esios.IndicatorRealDemand, client.Demand)
}

func NewGenerationHandler(logger *slog.Logger, tm *TemplateManager, client *esios.Client) http.HandlerFunc {
	return newIndicatorPageHandler(logger, tm, client, "generation.html",
		esios.IndicatorGenerationMix, client.GenerationMix)
}

func NewEmissionsHandler(logger *slog.Logger, tm *TemplateManager, client *esios.Client) http.HandlerFunc {
	return newIndicatorPageHandler(logger, tm, client, "emissions.html",
		esios.IndicatorCO2Emissions, client.CO2Emissions)
}

// statusFromError maps the client's error taxonomy onto HTTP statuses
// the dashboard relays.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, esios.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, esios.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, esios.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, esios.ErrConnectivity):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
