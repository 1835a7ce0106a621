package valuation

import "dcf_valuation/pkg/core/projection"

// SensitivityInput re-runs the forward valuation over a grid of
// discount rates and terminal growth rates, holding the forecast fixed.
type SensitivityInput struct {
	Forecast           projection.ForecastSeries
	DiscountRates      []float64
	TerminalGrowths    []float64
	NetCash            float64
	SBCMode            projection.SBCMode
	AnnualDilutionRate float64
}

// SensitivityCell is one grid entry. Valid is false where r <= g, where
// the perpetuity formula has no meaningful answer and the cell is skipped.
type SensitivityCell struct {
	DiscountRate   float64 `json:"discount_rate"`
	TerminalGrowth float64 `json:"terminal_growth"`
	EquityValue    float64 `json:"equity_value"`
	Valid          bool    `json:"valid"`
}

// SensitivityResult holds rows by discount rate, columns by terminal growth.
type SensitivityResult struct {
	Cells [][]SensitivityCell `json:"cells"`
}

// RunSensitivity evaluates the equity value at every rate/growth pair.
func RunSensitivity(input SensitivityInput) SensitivityResult {
	cells := make([][]SensitivityCell, len(input.DiscountRates))
	for i, r := range input.DiscountRates {
		row := make([]SensitivityCell, len(input.TerminalGrowths))
		for j, g := range input.TerminalGrowths {
			cell := SensitivityCell{DiscountRate: r, TerminalGrowth: g}
			if r > g {
				res := CalculateDCF(DCFInput{
					Forecast:           input.Forecast,
					DiscountRate:       r,
					TerminalGrowth:     g,
					NetCash:            input.NetCash,
					SBCMode:            input.SBCMode,
					AnnualDilutionRate: input.AnnualDilutionRate,
				})
				cell.EquityValue = res.EquityValue
				cell.Valid = true
			}
			row[j] = cell
		}
		cells[i] = row
	}
	return SensitivityResult{Cells: cells}
}
