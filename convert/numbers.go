package convert

import (
	"math"
)

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

// EurMWhToEurKWh converts market prices as published (€/MWh) to the
// per-kWh figure shown on the dashboard.
func EurMWhToEurKWh(price float64) float64 {
	return price / 1e3
}

func MWToGW(mw float64) float64 {
	return mw / 1e3
}
