package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/esios-go/calc"
	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/hours"
	"github.com/angas/esios-go/types"
	"github.com/angas/esios-go/types/maybe"
)

// NewLiveDataTask refreshes the live ticker snapshot: current-hour
// price, demand and renewable share for today.
func NewLiveDataTask(logger *slog.Logger, client *esios.Client, live *LiveData) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		today := hours.FromMidnight().Time()
		q := esios.Query{StartDate: today, EndDate: today, GroupBy: esios.GroupByHour}

		price := fetchCurrentHour(logger, "prices", func() (types.Table, error) {
			return client.ElectricityPrices(ctx, q)
		})
		demand := fetchCurrentHour(logger, "demand", func() (types.Table, error) {
			return client.Demand(ctx, q)
		})

		renewable := fetchCurrentHour(logger, "renewable generation", func() (types.Table, error) {
			return client.RenewableGeneration(ctx, q)
		})
		nonRenewable := fetchCurrentHour(logger, "non-renewable generation", func() (types.Table, error) {
			return client.IndicatorValues(ctx, esios.IndicatorNonRenewableGeneration, q)
		})

		share := maybe.None[float64]()
		if renewable.IsValid() && nonRenewable.IsValid() {
			share = maybe.Some(calc.RenewableShare(
				renewable.Value(),
				renewable.Value()+nonRenewable.Value()))
		}

		live.Set(price, demand, share)
		logger.Debug("live data refreshed",
			slog.Bool("price", price.IsValid()),
			slog.Bool("demand", demand.IsValid()),
			slog.Bool("renewableShare", share.IsValid()))
	}
}

func fetchCurrentHour(logger *slog.Logger, what string, fetch func() (types.Table, error)) maybe.Maybe[float64] {
	table, err := fetch()
	if err != nil {
		logger.Warn("live data fetch failed", slog.String("what", what), slog.Any("error", err))
		return maybe.None[float64]()
	}
	return currentHourValue(table)
}

// currentHourValue picks the row matching the current UTC hour bucket.
func currentHourValue(table types.Table) maybe.Maybe[float64] {
	now := hours.FromNow()
	for _, r := range table {
		if hours.FromTime(r.Time) == now {
			return r.Value
		}
	}
	return maybe.None[float64]()
}
