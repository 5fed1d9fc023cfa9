package analysis

import (
	"strings"
	"testing"
)

func TestSimulateScenariosEmpty(t *testing.T) {
	if scenarios := SimulateScenarios(map[string][]string{}); len(scenarios) != 0 {
		t.Errorf("got %v, want no scenarios without matching clauses", scenarios)
	}
}

func TestSimulateScenariosEarlyTerminationPenalty(t *testing.T) {
	clauses := map[string][]string{
		"termination": {"Employee shall pay $5,000 penalty upon early termination."},
	}
	scenarios := SimulateScenarios(clauses)

	fact, ok := scenarios[ScenarioEarlyTermination]
	if !ok {
		t.Fatal("missing early_termination scenario")
	}
	if !strings.HasPrefix(fact, "Early Termination Scenario: ") {
		t.Errorf("fact = %q, want scenario prefix", fact)
	}
	if !strings.Contains(fact, "$5,000") {
		t.Errorf("fact = %q, want extracted penalty amount", fact)
	}
}

func TestSimulateScenariosMonthsRentPenalty(t *testing.T) {
	clauses := map[string][]string{
		"termination": {"Breaking the lease costs 2 months rent as a penalty."},
	}
	fact := SimulateScenarios(clauses)[ScenarioEarlyTermination]
	if !strings.Contains(fact, "2 months rent") {
		t.Errorf("fact = %q, want months-rent penalty extracted", fact)
	}
}

func TestSimulateScenariosTerminationDefault(t *testing.T) {
	clauses := map[string][]string{
		"termination": {"Either party may terminate this agreement with thirty days written notice."},
	}
	fact := SimulateScenarios(clauses)[ScenarioEarlyTermination]
	if fact != "Early Termination Scenario: Standard termination procedures apply" {
		t.Errorf("fact = %q", fact)
	}
}

func TestSimulateScenariosLatePayment(t *testing.T) {
	clauses := map[string][]string{
		"payment": {"Late payment incurs a 5% surcharge plus $25.00 per occurrence."},
	}
	fact := SimulateScenarios(clauses)[ScenarioLatePayment]
	if !strings.Contains(fact, "5%") || !strings.Contains(fact, "$25.00") {
		t.Errorf("fact = %q, want extracted charges", fact)
	}
}

func TestSimulateScenariosLatePaymentNeedsLatenessContext(t *testing.T) {
	// Charges in a payment clause that never mentions lateness do not count.
	clauses := map[string][]string{
		"payment": {"Monthly rent is $1,200.00 due on the first."},
	}
	fact := SimulateScenarios(clauses)[ScenarioLatePayment]
	if fact != "Late Payment Scenario: Late payment fees may apply" {
		t.Errorf("fact = %q", fact)
	}
}

func TestSimulateScenariosFixedFacts(t *testing.T) {
	clauses := map[string][]string{
		"liability":       {"Tenant is liable for all damages to the premises."},
		"confidentiality": {"All terms are confidential for five years."},
	}
	scenarios := SimulateScenarios(clauses)

	if got := scenarios[ScenarioLiabilityEvent]; got != "Liability Scenario: Liability terms apply as specified in the contract" {
		t.Errorf("liability fact = %q", got)
	}
	if got := scenarios[ScenarioConfidentialityBreach]; got != "Confidentiality Breach: Confidentiality breach may result in legal action and damages" {
		t.Errorf("confidentiality fact = %q", got)
	}
}
