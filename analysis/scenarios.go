package analysis

import (
	"regexp"
	"strings"
)

var (
	penaltyAmountRe = regexp.MustCompile(`(?i)\$[\d,]+|\d+\s*(?:months?|days?)\s*(?:rent|payment|fee)`)
	lateChargeRe    = regexp.MustCompile(`\d+(?:\.\d+)?%|\$\d+(?:,\d{3})*(?:\.\d{2})?`)
)

// Scenario names produced by SimulateScenarios.
const (
	ScenarioEarlyTermination      = "early_termination"
	ScenarioLatePayment           = "late_payment"
	ScenarioLiabilityEvent        = "liability_event"
	ScenarioConfidentialityBreach = "confidentiality_breach"
)

// SimulateScenarios derives rule-based "what happens if" facts from
// segmented clauses. Each rule needs at least one clause of its type. The
// returned facts are short consequence statements meant as input to
// plain-English elaboration by the generation service; see
// Engine.ExplainScenarios.
func SimulateScenarios(clausesByType map[string][]string) map[string]string {
	scenarios := make(map[string]string)

	if clauses := clausesByType["termination"]; len(clauses) > 0 {
		scenarios[ScenarioEarlyTermination] = "Early Termination Scenario: " + penaltyInfo(clauses)
	}
	if clauses := clausesByType["payment"]; len(clauses) > 0 {
		scenarios[ScenarioLatePayment] = "Late Payment Scenario: " + paymentConsequences(clauses)
	}
	if clauses := clausesByType["liability"]; len(clauses) > 0 {
		scenarios[ScenarioLiabilityEvent] = "Liability Scenario: Liability terms apply as specified in the contract"
	}
	if clauses := clausesByType["confidentiality"]; len(clauses) > 0 {
		scenarios[ScenarioConfidentialityBreach] = "Confidentiality Breach: Confidentiality breach may result in legal action and damages"
	}

	return scenarios
}

// penaltyInfo pulls monetary amounts or "N months rent" style penalties out
// of termination clauses; the first clause with any match wins.
func penaltyInfo(clauses []string) string {
	for _, clause := range clauses {
		matches := penaltyAmountRe.FindAllString(clause, -1)
		if len(matches) > 0 {
			return "Penalty may include " + strings.Join(matches, ", ")
		}
	}
	return "Standard termination procedures apply"
}

// paymentConsequences looks for percentage or dollar charges, but only in
// payment clauses that actually talk about late or defaulted payment.
func paymentConsequences(clauses []string) string {
	for _, clause := range clauses {
		lower := strings.ToLower(clause)
		if !strings.Contains(lower, "late") && !strings.Contains(lower, "overdue") && !strings.Contains(lower, "default") {
			continue
		}
		matches := lateChargeRe.FindAllString(clause, -1)
		if len(matches) > 0 {
			return "Late payment may result in additional charges: " + strings.Join(matches, ", ")
		}
	}
	return "Late payment fees may apply"
}
