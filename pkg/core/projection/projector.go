// Package projection turns user forecast assumptions into a concrete
// 5-year free cash flow series, including the SBC adjustment applied
// before discounting.
package projection

import "math"

// ForecastYears is the explicit forecast horizon. Terminal value takes
// over beyond this point.
const ForecastYears = 5

// ForecastMode selects how the explicit FCF series is produced.
type ForecastMode string

const (
	// ForecastExplicit uses the five user-entered FCF values verbatim.
	ForecastExplicit ForecastMode = "explicit"
	// ForecastGrowthBased compounds a base FCF by a constant growth rate.
	ForecastGrowthBased ForecastMode = "growth"
)

// SBCMode selects how share-based compensation is charged against the
// valuation.
type SBCMode string

const (
	// SBCPercentOfFCF haircuts every forecast year's FCF by a flat percentage.
	SBCPercentOfFCF SBCMode = "percent_of_fcf"
	// SBCDilution leaves cash flows alone and discounts the final equity
	// value for 5 years of share-count dilution instead.
	SBCDilution SBCMode = "dilution"
)

// Input holds the forecast assumptions. All rates are fractions
// (0.10 = 10%).
type Input struct {
	Mode ForecastMode

	// Explicit mode
	ExplicitFCF []float64 // up to ForecastYears entries; missing years are 0

	// Growth mode
	BaseFCF       float64 // year-1 FCF, unscaled
	FCFGrowthRate float64

	SBCMode       SBCMode
	SBCPercentage float64 // PercentOfFCF mode only
}

// ForecastSeries is the projector output consumed by the valuation engine.
// Under SBCDilution, Adjusted equals Raw: the dilution charge is applied
// to equity value downstream, not to cash flow.
type ForecastSeries struct {
	RawFCF      []float64
	AdjustedFCF []float64
}

// Project builds the 5-year series from the inputs. It never fails:
// unusable numbers (NaN, Inf) degrade to 0, matching the coercion rule
// applied at the input boundary.
func Project(input Input) ForecastSeries {
	raw := make([]float64, ForecastYears)

	switch input.Mode {
	case ForecastGrowthBased:
		// Year 1 is BaseFCF itself; growth compounds from year 2 on,
		// so the exponent for year t is t-1.
		base := sanitize(input.BaseFCF)
		growth := sanitize(input.FCFGrowthRate)
		for i := 0; i < ForecastYears; i++ {
			raw[i] = base * math.Pow(1+growth, float64(i))
		}
	default:
		for i := 0; i < ForecastYears; i++ {
			if i < len(input.ExplicitFCF) {
				raw[i] = sanitize(input.ExplicitFCF[i])
			}
		}
	}

	adjusted := make([]float64, ForecastYears)
	copy(adjusted, raw)

	if input.SBCMode == SBCPercentOfFCF && input.SBCPercentage > 0 {
		// Flat haircut, identical multiplier every year (not compounding).
		pct := sanitize(input.SBCPercentage)
		for i := range adjusted {
			adjusted[i] = raw[i] * (1 - pct)
		}
	}

	return ForecastSeries{RawFCF: raw, AdjustedFCF: adjusted}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
