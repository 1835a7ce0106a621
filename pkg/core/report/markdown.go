// Package report renders valuation results as Markdown summaries and
// converts them to HTML for the API's report endpoint.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"dcf_valuation/pkg/core/valuation"
)

var renderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// ForwardMarkdown builds a Markdown summary of a forward valuation:
// headline values plus the per-year discounting table.
func ForwardMarkdown(res valuation.DCFResult) string {
	var b strings.Builder

	b.WriteString("# DCF Valuation\n\n")
	fmt.Fprintf(&b, "- PV of explicit FCF (yr 1-5): %.2f\n", res.PVExplicit)
	fmt.Fprintf(&b, "- Terminal value: %.2f\n", res.TerminalValue)
	fmt.Fprintf(&b, "- PV of terminal value: %.2f\n", res.PVTerminal)
	fmt.Fprintf(&b, "- Enterprise value: %.2f\n", res.EnterpriseValue)
	fmt.Fprintf(&b, "- Equity value: %.2f\n", res.EquityValue)
	fmt.Fprintf(&b, "- SBC impact: %.2f\n", res.SBCImpact)

	b.WriteString("\n## Yearly Breakdown\n\n")
	b.WriteString("| Year | Raw FCF | Adjusted FCF | Present Value |\n")
	b.WriteString("|------|---------|--------------|---------------|\n")
	for _, row := range res.Breakdown {
		fmt.Fprintf(&b, "| %d | %.2f | %.2f | %.2f |\n",
			row.Year, row.RawFCF, row.AdjustedFCF, row.PresentValue)
	}

	return b.String()
}

// InverseMarkdown builds a Markdown summary of an implied-rate search.
func InverseMarkdown(res valuation.ImpliedResult) string {
	var b strings.Builder

	b.WriteString("# Implied Annual Return\n\n")
	if res.Error != "" {
		fmt.Fprintf(&b, "**Error:** %s\n\n", res.Error)
	} else {
		fmt.Fprintf(&b, "- Implied discount rate: %.2f%%\n", res.ImpliedDiscountRate*100)
	}
	fmt.Fprintf(&b, "- Target equity value: %.2f\n", res.TargetEquityValue)
	fmt.Fprintf(&b, "- Implied enterprise value: %.2f\n", res.ImpliedEnterpriseValue)
	fmt.Fprintf(&b, "- Iterations: %d\n", res.Iterations)

	return b.String()
}

// RenderHTML converts a Markdown report to HTML. Tables are enabled so
// the yearly breakdown renders as a real table.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %v", err)
	}
	return buf.String(), nil
}

// ValidateMarkdown checks that a string parses as Markdown. Goldmark is
// very permissive, so this is a basic sanity check only.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader([]byte(input)))
	return doc != nil
}
