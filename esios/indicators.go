package esios

import (
	"context"

	"github.com/angas/esios-go/types"
)

// Well-known indicator ids, per the official API documentation.
const (
	// Generación programada PBF Hidráulica UGH
	IndicatorHydroPBFUGH = 1
	// Generación programada PBF Hidráulica no UGH
	IndicatorHydroPBFNonUGH = 2
	// Precio mercado SPOT diario
	IndicatorDailyMarketPrice = 600
	// Precio mercado intradiario
	IndicatorIntradayMarketPrice = 612
	// PVPC (Precio Voluntario para el Pequeño Consumidor)
	IndicatorPVPCPrice = 1013
	// Generación T.Real por tecnología
	IndicatorGenerationMix = 1125
	// Previsión de demanda
	IndicatorDemandForecast = 1292
	// Demanda real
	IndicatorRealDemand = 1293
	// Demanda programada
	IndicatorScheduledDemand = 1295
	// Generación renovable
	IndicatorRenewableGeneration = 1036
	// Generación no renovable
	IndicatorNonRenewableGeneration = 1037
	// Emisiones de CO2 asociadas a la generación
	IndicatorCO2Emissions = 10033
	// Porcentaje de generación libre de CO2
	IndicatorCO2FreeShare = 10034
)

// Geo zone ids the API reports values over.
const (
	GeoPeninsula       = 8741
	GeoCanaryIslands   = 8742
	GeoBalearicIslands = 8743
	GeoCeuta           = 8744
	GeoMelilla         = 8745
)

// The convenience accessors below are thin bindings of IndicatorValues
// pinned to a well-known id. They only fill in the customary
// granularity when the query leaves it empty; output is identical to
// calling IndicatorValues with the same id and query.

// ElectricityPrices fetches the PVPC retail price (€/MWh), hourly by
// default.
func (c *Client) ElectricityPrices(ctx context.Context, q Query) (types.Table, error) {
	return c.IndicatorValues(ctx, IndicatorPVPCPrice, q.withGroupByFallback(GroupByHour))
}

// Demand fetches the real measured demand (MW), hourly by default.
func (c *Client) Demand(ctx context.Context, q Query) (types.Table, error) {
	return c.IndicatorValues(ctx, IndicatorRealDemand, q.withGroupByFallback(GroupByHour))
}

// GenerationMix fetches real-time generation by technology, hourly by
// default.
func (c *Client) GenerationMix(ctx context.Context, q Query) (types.Table, error) {
	return c.IndicatorValues(ctx, IndicatorGenerationMix, q.withGroupByFallback(GroupByHour))
}

// RenewableGeneration fetches the renewable share of generation, hourly
// by default.
func (c *Client) RenewableGeneration(ctx context.Context, q Query) (types.Table, error) {
	return c.IndicatorValues(ctx, IndicatorRenewableGeneration, q.withGroupByFallback(GroupByHour))
}

// HydroGeneration fetches the scheduled PBF hydro generation (UGH),
// daily by default.
func (c *Client) HydroGeneration(ctx context.Context, q Query) (types.Table, error) {
	return c.IndicatorValues(ctx, IndicatorHydroPBFUGH, q.withGroupByFallback(GroupByDay))
}

// CO2Emissions fetches generation-related CO2 emissions, daily by
// default.
func (c *Client) CO2Emissions(ctx context.Context, q Query) (types.Table, error) {
	return c.IndicatorValues(ctx, IndicatorCO2Emissions, q.withGroupByFallback(GroupByDay))
}

func (q Query) withGroupByFallback(g GroupBy) Query {
	if q.GroupBy == "" {
		q.GroupBy = g
	}
	return q
}
