package projection

import (
	"math"
	"testing"
)

func TestProjectGrowthBased(t *testing.T) {
	// Base 10, 10% growth.
	// Year 1 is the base itself, growth compounds from year 2:
	// [10, 11, 12.1, 13.31, 14.641]
	series := Project(Input{
		Mode:          ForecastGrowthBased,
		BaseFCF:       10,
		FCFGrowthRate: 0.10,
	})

	expected := []float64{10, 11, 12.1, 13.31, 14.641}
	for i, want := range expected {
		if math.Abs(series.RawFCF[i]-want) > 0.0001 {
			t.Errorf("Year %d: expected %f, got %f", i+1, want, series.RawFCF[i])
		}
	}
}

func TestProjectExplicitPadsMissingYears(t *testing.T) {
	// Only 3 of 5 years entered; the rest default to 0.
	series := Project(Input{
		Mode:        ForecastExplicit,
		ExplicitFCF: []float64{10, 20, 30},
	})

	if len(series.RawFCF) != ForecastYears {
		t.Fatalf("Expected %d years, got %d", ForecastYears, len(series.RawFCF))
	}
	if series.RawFCF[3] != 0 || series.RawFCF[4] != 0 {
		t.Errorf("Expected missing years to be 0, got %v", series.RawFCF)
	}
}

func TestProjectSBCPercentHaircut(t *testing.T) {
	// 10% SBC haircut applies the same multiplier to every year,
	// it does not compound.
	series := Project(Input{
		Mode:          ForecastExplicit,
		ExplicitFCF:   []float64{100, 100, 100, 100, 100},
		SBCMode:       SBCPercentOfFCF,
		SBCPercentage: 0.10,
	})

	for i, adj := range series.AdjustedFCF {
		if math.Abs(adj-90) > 0.0001 {
			t.Errorf("Year %d: expected 90, got %f", i+1, adj)
		}
		if series.RawFCF[i] != 100 {
			t.Errorf("Year %d: raw series must stay unadjusted, got %f", i+1, series.RawFCF[i])
		}
	}
}

func TestProjectSBCNeutrality(t *testing.T) {
	// Zero SBC percentage leaves the series untouched.
	series := Project(Input{
		Mode:          ForecastExplicit,
		ExplicitFCF:   []float64{10, 11, 12, 13, 14},
		SBCMode:       SBCPercentOfFCF,
		SBCPercentage: 0,
	})

	for i := range series.RawFCF {
		if series.AdjustedFCF[i] != series.RawFCF[i] {
			t.Errorf("Year %d: adjusted %f != raw %f", i+1, series.AdjustedFCF[i], series.RawFCF[i])
		}
	}
}

func TestProjectDilutionLeavesCashFlowsAlone(t *testing.T) {
	// Dilution is an equity-value haircut downstream; the projector
	// must not touch the cash flows.
	series := Project(Input{
		Mode:        ForecastExplicit,
		ExplicitFCF: []float64{10, 11, 12, 13, 14},
		SBCMode:     SBCDilution,
	})

	for i := range series.RawFCF {
		if series.AdjustedFCF[i] != series.RawFCF[i] {
			t.Errorf("Year %d: dilution mode must not adjust FCF", i+1)
		}
	}
}

func TestProjectCoercesNonFiniteToZero(t *testing.T) {
	series := Project(Input{
		Mode:        ForecastExplicit,
		ExplicitFCF: []float64{math.NaN(), math.Inf(1), 10, math.Inf(-1), 5},
	})

	expected := []float64{0, 0, 10, 0, 5}
	for i, want := range expected {
		if series.RawFCF[i] != want {
			t.Errorf("Year %d: expected %f, got %f", i+1, want, series.RawFCF[i])
		}
	}
}
