package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/angas/esios-go/calc"
	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/hours"
	"github.com/angas/esios-go/types"
	"github.com/angas/esios-go/www/chartjs"
)

// NewChartHandler serves the landing page charts as chart.js configs:
// today's hourly price against demand, and the renewable share of
// today's generation.
func NewChartHandler(logger *slog.Logger, client *esios.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		midnight := hours.FromMidnight()
		today := midnight.Time()
		q := esios.Query{StartDate: today, EndDate: today, GroupBy: esios.GroupByHour}

		prices, err := client.ElectricityPrices(r.Context(), q)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		demand, err := client.Demand(r.Context(), q)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		// Chart 1: price and demand over the day
		chart1 := chartjs.NewDualAxisChart("")
		for i := 0; i < chartjs.NoOfHours; i++ {
			hour := midnight.Add(i)
			chart1.Data.Datasets[0].Data[i] = hourValue(prices, hour)
			chart1.Data.Datasets[1].Data[i] = hourValue(demand, hour)
		}
		chart1.Options.Scales["YAxis1"] = chart1.Options.Scales["YAxis1"].
			WithTitle("PVPC (€/MWh)")
		chart1.Options.Scales["YAxis2"] = chart1.Options.Scales["YAxis2"].
			WithTitle("Demand (MW)")

		// Chart 2: renewable vs non-renewable generation today
		renewable, err := client.RenewableGeneration(r.Context(), q)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		nonRenewable, err := client.IndicatorValues(r.Context(), esios.IndicatorNonRenewableGeneration, q)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		chart2 := chartjs.NewDoughnutChart("",
			[]string{"Renewable", "Non-renewable"},
			[]*float64{
				chartjs.FixedFloat64(calc.Sum(renewable), 1),
				chartjs.FixedFloat64(calc.Sum(nonRenewable), 1),
			},
			[]string{chartjs.ColorGreen, chartjs.ColorRed})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]chartjs.Chart{chart1, chart2}); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode data points", http.StatusInternalServerError)
			return
		}
	}
}

func hourValue(table types.Table, hour hours.DateHour) *float64 {
	for _, r := range table {
		if hours.FromTime(r.Time) == hour {
			if r.Value.IsValid() {
				return chartjs.FixedFloat64(r.Value.Value(), 2)
			}
			return nil
		}
	}
	return nil
}
