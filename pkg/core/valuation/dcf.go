package valuation

import (
	"math"

	"dcf_valuation/pkg/core/projection"
)

// DCFInput encapsulates all inputs required for a forward DCF valuation
type DCFInput struct {
	Forecast           projection.ForecastSeries
	DiscountRate       float64 // r, annual fraction
	TerminalGrowth     float64 // g, perpetuity growth beyond year 5
	NetCash            float64 // cash and equivalents minus total debt; may be negative
	SBCMode            projection.SBCMode
	AnnualDilutionRate float64 // Dilution mode only
}

// YearValue is one row of the per-year breakdown
type YearValue struct {
	Year         int     `json:"year"`
	RawFCF       float64 `json:"raw_fcf"`
	AdjustedFCF  float64 `json:"adjusted_fcf"`
	PresentValue float64 `json:"present_value"`
}

// DCFResult holds the valuation outputs
type DCFResult struct {
	PVExplicit      float64     `json:"pv_explicit"`
	TerminalValue   float64     `json:"terminal_value"`
	PVTerminal      float64     `json:"pv_terminal"`
	EnterpriseValue float64     `json:"enterprise_value"`
	EquityValue     float64     `json:"equity_value"`
	SBCImpact       float64     `json:"sbc_impact"`
	Breakdown       []YearValue `json:"breakdown"`
}

// enterpriseValue runs the shared forward formula: PV of the explicit
// years, Gordon-growth terminal value, and its PV. The implied-rate
// solver reuses this as its objective function.
//
// The r == g case is a documented degenerate input: the perpetuity
// denominator vanishes, so terminal value is defined as 0 rather than
// blowing up. Callers wanting a meaningful terminal value keep r away
// from g.
func enterpriseValue(adjusted []float64, r, g float64) (pvExplicit, tv, pvTerminal float64) {
	for t, fcf := range adjusted {
		pvExplicit += fcf / math.Pow(1+r, float64(t+1))
	}

	terminalFCF := adjusted[len(adjusted)-1] * (1 + g)
	if r != g {
		tv = terminalFCF / (r - g)
	}
	pvTerminal = tv / math.Pow(1+r, float64(len(adjusted)))
	return pvExplicit, tv, pvTerminal
}

// CalculateDCF performs a standard 2-stage DCF: 5 explicit years plus a
// growing perpetuity, then bridges enterprise value to equity value via
// net cash. Negative rates, growth, and net cash are all valid inputs
// and pass through unchanged.
func CalculateDCF(input DCFInput) DCFResult {
	adjusted := input.Forecast.AdjustedFCF
	raw := input.Forecast.RawFCF
	r := input.DiscountRate

	pvExplicit, tv, pvTerminal := enterpriseValue(adjusted, r, input.TerminalGrowth)

	ev := pvExplicit + pvTerminal
	equity := ev + input.NetCash

	// Dilution is a single compounded haircut on the final equity value.
	// It never touches enterprise value or the cash flows.
	sbcImpact := 0.0
	if input.SBCMode == projection.SBCDilution && input.AnnualDilutionRate > 0 {
		diluted := equity * math.Pow(1-input.AnnualDilutionRate, float64(projection.ForecastYears))
		sbcImpact = equity - diluted
		equity = diluted
	} else if input.SBCMode == projection.SBCPercentOfFCF {
		// Total 5-year FCF given up to SBC, raw sum vs adjusted sum.
		for i := range raw {
			sbcImpact += raw[i] - adjusted[i]
		}
	}

	breakdown := make([]YearValue, len(adjusted))
	for t := range adjusted {
		breakdown[t] = YearValue{
			Year:         t + 1,
			RawFCF:       raw[t],
			AdjustedFCF:  adjusted[t],
			PresentValue: adjusted[t] / math.Pow(1+r, float64(t+1)),
		}
	}

	return DCFResult{
		PVExplicit:      pvExplicit,
		TerminalValue:   tv,
		PVTerminal:      pvTerminal,
		EnterpriseValue: ev,
		EquityValue:     equity,
		SBCImpact:       sbcImpact,
		Breakdown:       breakdown,
	}
}
