package valuation

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/google/uuid"

	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/report"
	"dcf_valuation/pkg/core/scenario"
	coreval "dcf_valuation/pkg/core/valuation"
)

// round2 rounds monetary fields for display. The engine keeps full
// float64 precision; rounding happens only at this boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func readScenario(w http.ResponseWriter, r *http.Request) (scenario.Document, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return scenario.Document{}, false
	}
	doc, err := scenario.Decode(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return scenario.Document{}, false
	}
	return doc, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// DCFResponse is the display form of a forward valuation, monetary
// fields rounded to 2 decimals.
type DCFResponse struct {
	RequestID       string              `json:"request_id"`
	PVExplicit      float64             `json:"pv_explicit"`
	TerminalValue   float64             `json:"terminal_value"`
	PVTerminal      float64             `json:"pv_terminal"`
	EnterpriseValue float64             `json:"enterprise_value"`
	EquityValue     float64             `json:"equity_value"`
	SBCImpact       float64             `json:"sbc_impact"`
	Breakdown       []coreval.YearValue `json:"breakdown"`
}

func toDCFResponse(res coreval.DCFResult) DCFResponse {
	breakdown := make([]coreval.YearValue, len(res.Breakdown))
	for i, row := range res.Breakdown {
		breakdown[i] = coreval.YearValue{
			Year:         row.Year,
			RawFCF:       round2(row.RawFCF),
			AdjustedFCF:  round2(row.AdjustedFCF),
			PresentValue: round2(row.PresentValue),
		}
	}
	return DCFResponse{
		RequestID:       uuid.New().String(),
		PVExplicit:      round2(res.PVExplicit),
		TerminalValue:   round2(res.TerminalValue),
		PVTerminal:      round2(res.PVTerminal),
		EnterpriseValue: round2(res.EnterpriseValue),
		EquityValue:     round2(res.EquityValue),
		SBCImpact:       round2(res.SBCImpact),
		Breakdown:       breakdown,
	}
}

// ImpliedResponse is the display form of an implied-rate search. The
// rate is reported as "Error" when the search domain is ill-posed.
type ImpliedResponse struct {
	RequestID              string      `json:"request_id"`
	ImpliedDiscountRate    interface{} `json:"implied_discount_rate"`
	ImpliedEnterpriseValue float64     `json:"implied_enterprise_value"`
	TargetEquityValue      float64     `json:"target_equity_value"`
	Iterations             int         `json:"iterations"`
	Error                  string      `json:"error,omitempty"`
}

func toImpliedResponse(res coreval.ImpliedResult) ImpliedResponse {
	out := ImpliedResponse{
		RequestID:              uuid.New().String(),
		ImpliedEnterpriseValue: round2(res.ImpliedEnterpriseValue),
		TargetEquityValue:      round2(res.TargetEquityValue),
		Iterations:             res.Iterations,
		Error:                  res.Error,
	}
	if res.Error != "" {
		out.ImpliedDiscountRate = "Error"
	} else {
		out.ImpliedDiscountRate = res.ImpliedDiscountRate
	}
	return out
}

// HandleDCF runs a forward valuation for a posted scenario.
func HandleDCF(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	doc, ok := readScenario(w, r)
	if !ok {
		return
	}

	series := projection.Project(doc.Projector())
	res := coreval.CalculateDCF(doc.DCF(series))
	fmt.Printf("[VALUATION] Forward DCF: EV=%.2f Equity=%.2f\n", res.EnterpriseValue, res.EquityValue)

	writeJSON(w, toDCFResponse(res))
}

// HandleImplied back-solves the discount rate a posted market cap implies.
func HandleImplied(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	doc, ok := readScenario(w, r)
	if !ok {
		return
	}

	series := projection.Project(doc.Projector())
	res := coreval.SolveImpliedRate(doc.Implied(series))
	if res.Error != "" {
		fmt.Printf("[VALUATION] Implied-rate search refused: %s\n", res.Error)
	} else {
		fmt.Printf("[VALUATION] Implied rate %.4f in %d iterations\n", res.ImpliedDiscountRate, res.Iterations)
	}

	writeJSON(w, toImpliedResponse(res))
}

// HandleWACC derives a discount rate from capital-structure assumptions.
func HandleWACC(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var input coreval.WACCInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, coreval.CalculateWACC(input))
}

// SensitivityRequest pairs a scenario with the grid axes to sweep.
type SensitivityRequest struct {
	Scenario        scenario.Document `json:"scenario"`
	DiscountRates   []float64         `json:"discount_rates"`
	TerminalGrowths []float64         `json:"terminal_growths"`
}

// HandleSensitivity sweeps the forward valuation over a rate/growth grid.
func HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	series := projection.Project(req.Scenario.Projector())
	res := coreval.RunSensitivity(coreval.SensitivityInput{
		Forecast:           series,
		DiscountRates:      req.DiscountRates,
		TerminalGrowths:    req.TerminalGrowths,
		NetCash:            float64(req.Scenario.NetCash),
		SBCMode:            req.Scenario.Projector().SBCMode,
		AnnualDilutionRate: float64(req.Scenario.AnnualDilutionRate),
	})

	for i := range res.Cells {
		for j := range res.Cells[i] {
			res.Cells[i][j].EquityValue = round2(res.Cells[i][j].EquityValue)
		}
	}
	writeJSON(w, res)
}

// ReportResponse carries the rendered report in both formats.
type ReportResponse struct {
	RequestID string `json:"request_id"`
	Markdown  string `json:"markdown"`
	HTML      string `json:"html"`
}

// HandleReport runs the scenario (forward or inverse, per its
// calculation_mode) and returns a rendered report.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	doc, ok := readScenario(w, r)
	if !ok {
		return
	}

	series := projection.Project(doc.Projector())

	var md string
	if doc.Mode() == scenario.ModeInverse {
		md = report.InverseMarkdown(coreval.SolveImpliedRate(doc.Implied(series)))
	} else {
		md = report.ForwardMarkdown(coreval.CalculateDCF(doc.DCF(series)))
	}

	html, err := report.RenderHTML(md)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, ReportResponse{
		RequestID: uuid.New().String(),
		Markdown:  md,
		HTML:      html,
	})
}
