package config

import (
	"encoding/json"
	"net/http"

	"dcf_valuation/pkg/core/scenario"
)

// Response describes the engine's available modes and shipped presets.
type Response struct {
	ForecastModes    []string `json:"forecast_modes"`
	SBCModes         []string `json:"sbc_modes"`
	CalculationModes []string `json:"calculation_modes"`
	Presets          []string `json:"presets"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Presets map[string]scenario.Preset
}

// NewHandler creates a new config handler
func NewHandler(presets map[string]scenario.Preset) *Handler {
	return &Handler{Presets: presets}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	resp := Response{
		ForecastModes:    []string{"explicit", "growth"},
		SBCModes:         []string{"percent_of_fcf", "dilution"},
		CalculationModes: []string{"standard", "inverse"},
		Presets:          scenario.PresetNames(h.Presets),
	}
	json.NewEncoder(w).Encode(resp)
}

// HandlePreset returns one preset's scenario document by ?name=.
func (h *Handler) HandlePreset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	name := r.URL.Query().Get("name")
	preset, ok := h.Presets[name]
	if !ok {
		http.Error(w, "Preset not found: "+name, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preset.Document())
}
