// Package scenario is the input boundary between raw user documents and
// the valuation engine. It decodes scenario files leniently (JSON,
// HJSON, or repairable near-JSON), coerces missing or unparseable
// numbers to 0, and maps mode strings onto the engine's typed modes.
package scenario

import (
	"encoding/json"
	"strconv"
	"strings"

	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/valuation"
)

// CalculationMode selects the engine direction.
type CalculationMode string

const (
	ModeStandard CalculationMode = "standard" // known rate -> equity value
	ModeInverse  CalculationMode = "inverse"  // market cap -> implied rate
)

// FlexFloat is a float64 that tolerates messy input: JSON numbers,
// numeric strings, empty strings, null, and outright garbage all decode
// without error; anything unusable becomes 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Document is the wire shape of a scenario. Every numeric field is
// optional; absent fields are 0 per the coercion rule.
type Document struct {
	CalculationMode string `json:"calculation_mode"`

	ForecastMode  string      `json:"forecast_mode"`
	ExplicitFCF   []FlexFloat `json:"explicit_fcf"`
	BaseFCF       FlexFloat   `json:"base_fcf"`
	FCFGrowthRate FlexFloat   `json:"fcf_growth_rate"`

	DiscountRate       FlexFloat `json:"discount_rate"`
	MarketCap          FlexFloat `json:"market_cap"`
	NetCash            FlexFloat `json:"net_cash"`
	TerminalGrowthRate FlexFloat `json:"terminal_growth_rate"`

	SBCMode            string    `json:"sbc_mode"`
	SBCPercentage      FlexFloat `json:"sbc_percentage"`
	AnnualDilutionRate FlexFloat `json:"annual_dilution_rate"`
}

// Mode returns the normalized calculation direction, defaulting to standard.
func (d Document) Mode() CalculationMode {
	if strings.EqualFold(strings.TrimSpace(d.CalculationMode), string(ModeInverse)) {
		return ModeInverse
	}
	return ModeStandard
}

func (d Document) forecastMode() projection.ForecastMode {
	switch strings.ToLower(strings.TrimSpace(d.ForecastMode)) {
	case "growth", "growth_based", "growthbased":
		return projection.ForecastGrowthBased
	default:
		return projection.ForecastExplicit
	}
}

func (d Document) sbcMode() projection.SBCMode {
	switch strings.ToLower(strings.TrimSpace(d.SBCMode)) {
	case "dilution":
		return projection.SBCDilution
	default:
		return projection.SBCPercentOfFCF
	}
}

// Projector maps the document onto the cash-flow projector's input.
func (d Document) Projector() projection.Input {
	explicit := make([]float64, len(d.ExplicitFCF))
	for i, v := range d.ExplicitFCF {
		explicit[i] = float64(v)
	}
	return projection.Input{
		Mode:          d.forecastMode(),
		ExplicitFCF:   explicit,
		BaseFCF:       float64(d.BaseFCF),
		FCFGrowthRate: float64(d.FCFGrowthRate),
		SBCMode:       d.sbcMode(),
		SBCPercentage: float64(d.SBCPercentage),
	}
}

// DCF maps the document plus a projected series onto the forward engine.
func (d Document) DCF(series projection.ForecastSeries) valuation.DCFInput {
	return valuation.DCFInput{
		Forecast:           series,
		DiscountRate:       float64(d.DiscountRate),
		TerminalGrowth:     float64(d.TerminalGrowthRate),
		NetCash:            float64(d.NetCash),
		SBCMode:            d.sbcMode(),
		AnnualDilutionRate: float64(d.AnnualDilutionRate),
	}
}

// Implied maps the document plus a projected series onto the rate solver.
func (d Document) Implied(series projection.ForecastSeries) valuation.ImpliedInput {
	return valuation.ImpliedInput{
		Forecast:           series,
		MarketCap:          float64(d.MarketCap),
		TerminalGrowth:     float64(d.TerminalGrowthRate),
		NetCash:            float64(d.NetCash),
		SBCMode:            d.sbcMode(),
		AnnualDilutionRate: float64(d.AnnualDilutionRate),
	}
}

// reencode round-trips an hjson-decoded generic value through strict
// JSON so the Document's flexible field decoding applies uniformly.
func reencode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
