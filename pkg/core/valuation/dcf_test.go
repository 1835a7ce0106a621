package valuation

import (
	"math"
	"testing"

	"dcf_valuation/pkg/core/projection"
)

func series(fcf ...float64) projection.ForecastSeries {
	adjusted := make([]float64, len(fcf))
	copy(adjusted, fcf)
	return projection.ForecastSeries{RawFCF: fcf, AdjustedFCF: adjusted}
}

func TestCalculateDCFDefaults(t *testing.T) {
	// r = 10%, FCF [10..14], g = 3%, net cash 50, no SBC.
	// Terminal value = 14*1.03 / (0.10-0.03)       = 206.00
	// PV terminal    = 206.00 / 1.10^5             = 127.91
	// PV explicit    = 9.09+9.09+9.02+8.88+8.69    = 44.77
	// EV = 172.68, equity = 222.68
	res := CalculateDCF(DCFInput{
		Forecast:       series(10, 11, 12, 13, 14),
		DiscountRate:   0.10,
		TerminalGrowth: 0.03,
		NetCash:        50,
	})

	if math.Abs(res.TerminalValue-206.00) > 0.01 {
		t.Errorf("Expected terminal value 206.00, got %f", res.TerminalValue)
	}
	if math.Abs(res.PVTerminal-127.91) > 0.01 {
		t.Errorf("Expected PV terminal 127.91, got %f", res.PVTerminal)
	}
	if math.Abs(res.PVExplicit-44.77) > 0.01 {
		t.Errorf("Expected PV explicit 44.77, got %f", res.PVExplicit)
	}
	if math.Abs(res.EnterpriseValue-172.68) > 0.01 {
		t.Errorf("Expected EV 172.68, got %f", res.EnterpriseValue)
	}
	if math.Abs(res.EquityValue-222.68) > 0.01 {
		t.Errorf("Expected equity 222.68, got %f", res.EquityValue)
	}
	if res.SBCImpact != 0 {
		t.Errorf("Expected zero SBC impact, got %f", res.SBCImpact)
	}
}

func TestCalculateDCFBreakdown(t *testing.T) {
	res := CalculateDCF(DCFInput{
		Forecast:       series(10, 11, 12, 13, 14),
		DiscountRate:   0.10,
		TerminalGrowth: 0.03,
	})

	if len(res.Breakdown) != projection.ForecastYears {
		t.Fatalf("Expected %d breakdown rows, got %d", projection.ForecastYears, len(res.Breakdown))
	}

	// Year 1: 10 / 1.10 = 9.0909
	if res.Breakdown[0].Year != 1 {
		t.Errorf("Expected year 1, got %d", res.Breakdown[0].Year)
	}
	if math.Abs(res.Breakdown[0].PresentValue-9.0909) > 0.001 {
		t.Errorf("Expected year-1 PV 9.0909, got %f", res.Breakdown[0].PresentValue)
	}

	// Rows must sum back to the explicit PV.
	var sum float64
	for _, row := range res.Breakdown {
		sum += row.PresentValue
	}
	if math.Abs(sum-res.PVExplicit) > 0.0001 {
		t.Errorf("Breakdown sum %f != PV explicit %f", sum, res.PVExplicit)
	}
}

func TestCalculateDCFDegenerateTerminal(t *testing.T) {
	// r == g: the perpetuity denominator vanishes, terminal value is
	// defined as 0 and EV collapses to the explicit PV.
	res := CalculateDCF(DCFInput{
		Forecast:       series(10, 11, 12, 13, 14),
		DiscountRate:   0.05,
		TerminalGrowth: 0.05,
	})

	if res.TerminalValue != 0 {
		t.Errorf("Expected terminal value 0, got %f", res.TerminalValue)
	}
	if res.PVTerminal != 0 {
		t.Errorf("Expected PV terminal 0, got %f", res.PVTerminal)
	}
	if math.IsNaN(res.EnterpriseValue) || math.IsInf(res.EnterpriseValue, 0) {
		t.Fatalf("Expected finite EV, got %f", res.EnterpriseValue)
	}
	if math.Abs(res.EnterpriseValue-res.PVExplicit) > 0.0001 {
		t.Errorf("Expected EV == PV explicit, got %f vs %f", res.EnterpriseValue, res.PVExplicit)
	}
}

func TestCalculateDCFDilutionHaircut(t *testing.T) {
	base := CalculateDCF(DCFInput{
		Forecast:       series(10, 11, 12, 13, 14),
		DiscountRate:   0.10,
		TerminalGrowth: 0.03,
		NetCash:        50,
	})

	// 2% annual dilution compounds once over 5 years on the final
	// equity value: equity * 0.98^5.
	diluted := CalculateDCF(DCFInput{
		Forecast:           series(10, 11, 12, 13, 14),
		DiscountRate:       0.10,
		TerminalGrowth:     0.03,
		NetCash:            50,
		SBCMode:            projection.SBCDilution,
		AnnualDilutionRate: 0.02,
	})

	want := base.EquityValue * math.Pow(0.98, 5)
	if math.Abs(diluted.EquityValue-want) > 0.0001 {
		t.Errorf("Expected diluted equity %f, got %f", want, diluted.EquityValue)
	}
	// Enterprise value is untouched by dilution.
	if math.Abs(diluted.EnterpriseValue-base.EnterpriseValue) > 0.0001 {
		t.Errorf("Dilution must not change EV: %f vs %f", diluted.EnterpriseValue, base.EnterpriseValue)
	}
	// SBC impact reports the haircut.
	if math.Abs(diluted.SBCImpact-(base.EquityValue-want)) > 0.0001 {
		t.Errorf("Expected SBC impact %f, got %f", base.EquityValue-want, diluted.SBCImpact)
	}
}

func TestCalculateDCFPercentImpact(t *testing.T) {
	// Raw 100/yr, 10% haircut: 5-year impact = 5 * 10 = 50.
	raw := []float64{100, 100, 100, 100, 100}
	adjusted := []float64{90, 90, 90, 90, 90}
	res := CalculateDCF(DCFInput{
		Forecast:       projection.ForecastSeries{RawFCF: raw, AdjustedFCF: adjusted},
		DiscountRate:   0.10,
		TerminalGrowth: 0.03,
		SBCMode:        projection.SBCPercentOfFCF,
	})

	if math.Abs(res.SBCImpact-50) > 0.0001 {
		t.Errorf("Expected SBC impact 50, got %f", res.SBCImpact)
	}
}

func TestCalculateDCFNegativeInputs(t *testing.T) {
	// Negative rates, growth, and net cash are valid; nothing panics
	// and the arithmetic passes through.
	res := CalculateDCF(DCFInput{
		Forecast:       series(10, 11, 12, 13, 14),
		DiscountRate:   -0.02,
		TerminalGrowth: -0.05,
		NetCash:        -500,
	})

	if math.IsNaN(res.EquityValue) {
		t.Fatalf("Expected finite equity value, got NaN")
	}
	if res.EquityValue >= res.EnterpriseValue {
		t.Errorf("Negative net cash must reduce equity below EV: %f vs %f", res.EquityValue, res.EnterpriseValue)
	}
}

func TestMonotonicityInDiscountRate(t *testing.T) {
	// For positive cash flows and g < r1 < r2, EV(r1) > EV(r2).
	g := 0.03
	prev := math.Inf(1)
	for _, r := range []float64{0.05, 0.08, 0.12, 0.20, 0.40, 0.80} {
		res := CalculateDCF(DCFInput{
			Forecast:       series(10, 11, 12, 13, 14),
			DiscountRate:   r,
			TerminalGrowth: g,
		})
		if res.EnterpriseValue >= prev {
			t.Errorf("EV not decreasing at r=%f: %f >= %f", r, res.EnterpriseValue, prev)
		}
		prev = res.EnterpriseValue
	}
}
