package scenario

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// Preset is a named, ready-to-run scenario shipped in the config file.
// Fields mirror Document but are strict: presets are maintained by hand
// and should fail loudly when malformed.
type Preset struct {
	Description string `yaml:"description"`

	CalculationMode string `yaml:"calculation_mode"`

	ForecastMode  string    `yaml:"forecast_mode"`
	ExplicitFCF   []float64 `yaml:"explicit_fcf"`
	BaseFCF       float64   `yaml:"base_fcf"`
	FCFGrowthRate float64   `yaml:"fcf_growth_rate"`

	DiscountRate       float64 `yaml:"discount_rate"`
	MarketCap          float64 `yaml:"market_cap"`
	NetCash            float64 `yaml:"net_cash"`
	TerminalGrowthRate float64 `yaml:"terminal_growth_rate"`

	SBCMode            string  `yaml:"sbc_mode"`
	SBCPercentage      float64 `yaml:"sbc_percentage"`
	AnnualDilutionRate float64 `yaml:"annual_dilution_rate"`
}

type presetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Document converts a preset into the engine-facing document shape.
func (p Preset) Document() Document {
	explicit := make([]FlexFloat, len(p.ExplicitFCF))
	for i, v := range p.ExplicitFCF {
		explicit[i] = FlexFloat(v)
	}
	return Document{
		CalculationMode:    p.CalculationMode,
		ForecastMode:       p.ForecastMode,
		ExplicitFCF:        explicit,
		BaseFCF:            FlexFloat(p.BaseFCF),
		FCFGrowthRate:      FlexFloat(p.FCFGrowthRate),
		DiscountRate:       FlexFloat(p.DiscountRate),
		MarketCap:          FlexFloat(p.MarketCap),
		NetCash:            FlexFloat(p.NetCash),
		TerminalGrowthRate: FlexFloat(p.TerminalGrowthRate),
		SBCMode:            p.SBCMode,
		SBCPercentage:      FlexFloat(p.SBCPercentage),
		AnnualDilutionRate: FlexFloat(p.AnnualDilutionRate),
	}
}

// LoadPresets reads the named-preset YAML file (config/presets.yaml in
// the default layout).
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %v", err)
	}
	if file.Presets == nil {
		file.Presets = map[string]Preset{}
	}
	return file.Presets, nil
}

// PresetNames returns the preset keys in stable order for display.
func PresetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
