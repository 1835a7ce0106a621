// Command dcf runs a valuation scenario from a file and prints the
// result. Scenario files may be JSON or HJSON; messy near-JSON is
// repaired where possible.
package main

import (
	"flag"
	"fmt"
	"os"

	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/report"
	"dcf_valuation/pkg/core/scenario"
	"dcf_valuation/pkg/core/valuation"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to scenario file (JSON or HJSON)")
	mode := flag.String("mode", "", "standard | inverse (default: scenario's calculation_mode)")
	reportPath := flag.String("report", "", "optional path to write a Markdown report")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Println("Usage: dcf -scenario <file> [-mode standard|inverse] [-report out.md]")
		os.Exit(1)
	}

	doc, err := scenario.Load(*scenarioPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		doc.CalculationMode = *mode
	}

	series := projection.Project(doc.Projector())
	fmt.Println("--- Forecast ---")
	for i := range series.RawFCF {
		fmt.Printf("  Year %d: raw %.2f  adjusted %.2f\n", i+1, series.RawFCF[i], series.AdjustedFCF[i])
	}

	var md string
	if doc.Mode() == scenario.ModeInverse {
		res := valuation.SolveImpliedRate(doc.Implied(series))
		fmt.Println("--- Implied Return ---")
		if res.Error != "" {
			fmt.Printf("  Implied discount rate: Error (%s)\n", res.Error)
		} else {
			fmt.Printf("  Implied discount rate: %.4f (%.2f%%)\n", res.ImpliedDiscountRate, res.ImpliedDiscountRate*100)
		}
		fmt.Printf("  Target equity value:   %.2f\n", res.TargetEquityValue)
		fmt.Printf("  Implied EV:            %.2f\n", res.ImpliedEnterpriseValue)
		fmt.Printf("  Iterations:            %d\n", res.Iterations)
		md = report.InverseMarkdown(res)
	} else {
		res := valuation.CalculateDCF(doc.DCF(series))
		fmt.Println("--- Valuation ---")
		fmt.Printf("  PV explicit FCF:  %.2f\n", res.PVExplicit)
		fmt.Printf("  Terminal value:   %.2f\n", res.TerminalValue)
		fmt.Printf("  PV terminal:      %.2f\n", res.PVTerminal)
		fmt.Printf("  Enterprise value: %.2f\n", res.EnterpriseValue)
		fmt.Printf("  Equity value:     %.2f\n", res.EquityValue)
		fmt.Printf("  SBC impact:       %.2f\n", res.SBCImpact)
		md = report.ForwardMarkdown(res)
	}

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(md), 0644); err != nil {
			fmt.Printf("[WARNING] Failed to write report: %v\n", err)
		} else {
			fmt.Printf("[REPORT] Written to %s\n", *reportPath)
		}
	}
}
