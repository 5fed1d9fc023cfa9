package analysis

import (
	"fmt"
	"strings"
)

// highRiskWords drive the deterministic clause risk rating when the
// generation service is unavailable.
var highRiskWords = []string{"penalty", "forfeit", "terminate", "breach", "damages", "liable"}

// FallbackClauseAnalysis is the deterministic stand-in for generated clause
// summaries: a templated summary plus a keyword-count risk rating.
func FallbackClauseAnalysis(clauseText, clauseType string) (summary, risk string) {
	summary = fmt.Sprintf("This is a %s clause containing standard legal terms.", clauseType)

	lower := strings.ToLower(clauseText)
	riskCount := 0
	for _, word := range highRiskWords {
		if strings.Contains(lower, word) {
			riskCount++
		}
	}

	switch {
	case riskCount >= 3:
		risk = "High Risk"
	case riskCount >= 1:
		risk = "Medium Risk"
	default:
		risk = "Safe"
	}
	return summary, risk
}

// typeSummaries template the deterministic document summary per type.
var typeSummaries = map[string]string{
	"contract": "This contract contains %d words covering terms, conditions, responsibilities, and legal obligations. Key areas include compensation, duties, termination, and compliance requirements.",
	"lease":    "This lease agreement spans %d words detailing rental terms, tenant responsibilities, property conditions, and legal obligations for both parties.",
	"loan":     "This loan agreement contains %d words outlining borrowing terms, repayment schedules, interest rates, and default conditions.",
	"nda":      "This non-disclosure agreement has %d words covering confidentiality obligations, permitted disclosures, and legal consequences of breaches.",
	"terms":    "These terms of service contain %d words governing platform usage, user rights, service limitations, and legal compliance requirements.",
	"other":    "This legal document contains %d words covering various legal provisions, rights, obligations, and procedural requirements.",
}

// TypeSummary builds a deterministic one-paragraph summary keyed on the
// document type. Unknown types fall back to the generic template.
func TypeSummary(text, documentType string) string {
	if text == "" {
		return "Document uploaded successfully. Analysis pending."
	}

	template, ok := typeSummaries[documentType]
	if !ok {
		template = typeSummaries["other"]
	}
	return fmt.Sprintf(template, len(strings.Fields(text)))
}

// EstimateReadTime assumes an average reading speed of 200 words per minute,
// with a one-minute floor.
func EstimateReadTime(text string) string {
	wordCount := len(strings.Fields(text))
	minutes := wordCount / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d minutes", minutes)
}
