package valuation

// WACCInput holds the capital-structure assumptions used to derive a
// discount rate for forward valuations. All rates are fractions.
type WACCInput struct {
	UnleveredBeta     float64 `json:"unlevered_beta"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
	MarketRiskPremium float64 `json:"market_risk_premium"`
	PreTaxCostOfDebt  float64 `json:"pre_tax_cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"`
	DebtToEquityRatio float64 `json:"debt_to_equity_ratio"` // target leverage, D/E
}

// WACCResult holds the derived rates. WACC is the value intended to
// feed DCFInput.DiscountRate.
type WACCResult struct {
	LeveredBeta  float64 `json:"levered_beta"`
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"` // after-tax
	WeightDebt   float64 `json:"weight_debt"`
	WeightEquity float64 `json:"weight_equity"`
	WACC         float64 `json:"wacc"`
}

// CalculateWACC derives the weighted average cost of capital from CAPM
// plus the Hamada re-levering of beta:
//
//	BetaL = BetaU * (1 + (1-t) * D/E)
//	Ke    = Rf + BetaL * ERP
//	Kd    = PreTaxKd * (1-t)
//
// With D/E = x, the weights follow as Wd = x/(1+x) and We = 1/(1+x).
func CalculateWACC(input WACCInput) WACCResult {
	leveredBeta := input.UnleveredBeta * (1 + (1-input.TaxRate)*input.DebtToEquityRatio)
	ke := input.RiskFreeRate + leveredBeta*input.MarketRiskPremium
	kd := input.PreTaxCostOfDebt * (1 - input.TaxRate)

	wd := input.DebtToEquityRatio / (1 + input.DebtToEquityRatio)
	we := 1.0 / (1 + input.DebtToEquityRatio)

	return WACCResult{
		LeveredBeta:  leveredBeta,
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WeightDebt:   wd,
		WeightEquity: we,
		WACC:         ke*we + kd*wd,
	}
}
