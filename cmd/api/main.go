package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apiconfig "dcf_valuation/pkg/api/config"
	"dcf_valuation/pkg/api/valuation"
	"dcf_valuation/pkg/core/scenario"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Load named presets; the server still runs without them.
	presets, err := scenario.LoadPresets("config/presets.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load presets: %v\n", err)
		fmt.Println("  Continuing with no presets")
		presets = map[string]scenario.Preset{}
	} else {
		fmt.Printf("[CONFIG] Loaded %d presets\n", len(presets))
	}

	// Config endpoints
	configHandler := apiconfig.NewHandler(presets)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/preset", configHandler.HandlePreset)

	// Valuation endpoints
	http.HandleFunc("/api/valuation/dcf", valuation.HandleDCF)
	http.HandleFunc("/api/valuation/implied", valuation.HandleImplied)
	http.HandleFunc("/api/valuation/wacc", valuation.HandleWACC)
	http.HandleFunc("/api/valuation/sensitivity", valuation.HandleSensitivity)
	http.HandleFunc("/api/valuation/report", valuation.HandleReport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - GET  /api/config/preset?name=")
	fmt.Println("  - POST /api/valuation/dcf")
	fmt.Println("  - POST /api/valuation/implied")
	fmt.Println("  - POST /api/valuation/wacc")
	fmt.Println("  - POST /api/valuation/sensitivity")
	fmt.Println("  - POST /api/valuation/report")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
