package valuation

import (
	"math"

	"dcf_valuation/pkg/core/projection"
)

// Bisection bounds and stopping rules for the implied-rate search.
// The rate domain excludes non-physical values; the iteration cap
// guarantees termination even when no root exists in range.
const (
	rateLow       = 0.001
	rateHigh      = 0.99
	rateTolerance = 0.0001
	maxIterations = 1000

	// A terminal growth rate this extreme makes the rate/value relation
	// ill-posed; the solver refuses rather than returning noise.
	maxTerminalGrowth = 0.99
)

// ImpliedInput holds the inputs for back-solving the discount rate a
// market price implies.
type ImpliedInput struct {
	Forecast           projection.ForecastSeries
	MarketCap          float64
	TerminalGrowth     float64
	NetCash            float64
	SBCMode            projection.SBCMode
	AnnualDilutionRate float64
}

// ImpliedResult holds the back-solved rate plus the fixed targets the
// search ran against. Error is empty on success; when set,
// ImpliedDiscountRate is meaningless but the targets are still
// populated for diagnostic display.
type ImpliedResult struct {
	ImpliedDiscountRate    float64 `json:"implied_discount_rate"`
	ImpliedEnterpriseValue float64 `json:"implied_enterprise_value"`
	TargetEquityValue      float64 `json:"target_equity_value"`
	Iterations             int     `json:"iterations"`
	Error                  string  `json:"error,omitempty"`
}

// SolveImpliedRate finds the discount rate at which the forward DCF
// reproduces the observed market cap, by bisection on [0.001, 0.99].
//
// Enterprise value is strictly decreasing in the discount rate for
// positive cash flows and r > g, so the search keeps a domain guard in
// front of every evaluation: midpoints at or below the terminal growth
// rate are treated as "value too low" without evaluating the formula,
// which would otherwise divide by a non-positive denominator.
func SolveImpliedRate(input ImpliedInput) ImpliedResult {
	// Un-dilute the observed price first: the business must earn the
	// pre-haircut equity value for the market cap to hold after 5 years
	// of dilution.
	targetEquity := input.MarketCap
	if input.SBCMode == projection.SBCDilution && input.AnnualDilutionRate > 0 {
		targetEquity = input.MarketCap / math.Pow(1-input.AnnualDilutionRate, float64(projection.ForecastYears))
	}

	// Net cash and dilution are folded into the target, so the search
	// objective is pure enterprise value.
	targetEV := targetEquity - input.NetCash

	res := ImpliedResult{
		ImpliedEnterpriseValue: targetEV,
		TargetEquityValue:      targetEquity,
	}

	if input.TerminalGrowth >= maxTerminalGrowth {
		res.Error = "terminal growth rate too high for implied-rate search"
		return res
	}

	low, high := rateLow, rateHigh
	adjusted := input.Forecast.AdjustedFCF

	for res.Iterations < maxIterations && high-low > rateTolerance {
		mid := (low + high) / 2
		res.Iterations++

		if mid <= input.TerminalGrowth {
			// Below the perpetuity floor the formula is undefined; the
			// root, if any, lies above g.
			low = mid
			continue
		}

		pvExplicit, _, pvTerminal := enterpriseValue(adjusted, mid, input.TerminalGrowth)
		if pvExplicit+pvTerminal > targetEV {
			// Value too high means the rate is too low.
			low = mid
		} else {
			high = mid
		}
	}

	res.ImpliedDiscountRate = (low + high) / 2
	return res
}
