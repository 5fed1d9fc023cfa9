package analysis

import "testing"

func TestIdentifyRedFlagsNone(t *testing.T) {
	if flags := IdentifyRedFlags("A plain and friendly agreement."); len(flags) != 0 {
		t.Errorf("got %v, want no flags", flags)
	}
}

func TestIdentifyRedFlagsFixedTriples(t *testing.T) {
	flags := IdentifyRedFlags("Employment may end by immediate termination at any point.")
	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1", len(flags))
	}
	flag := flags[0]
	if flag.Issue != "Unfavorable Termination Terms" {
		t.Errorf("issue = %q", flag.Issue)
	}
	if flag.Severity != "high" {
		t.Errorf("severity = %q, want high", flag.Severity)
	}
	if flag.Explanation == "" {
		t.Error("explanation must be pre-authored, not empty")
	}
}

func TestIdentifyRedFlagsOnePerCategory(t *testing.T) {
	// Several keywords of the same category fire the flag only once.
	flags := IdentifyRedFlags("The non-compete clause bars work for any competitor for an indefinite period.")
	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1", len(flags))
	}
	if flags[0].Issue != "Broad Non-Compete Clause" {
		t.Errorf("issue = %q", flags[0].Issue)
	}
}

func TestIdentifyRedFlagsCapAndOrder(t *testing.T) {
	text := "Work product and inventions belong to the company. " +
		"Unlimited liability applies with a personal guarantee. " +
		"Immediate termination without cause is permitted. " +
		"Bonus is discretionary. " +
		"A non-compete binds the employee."
	flags := IdentifyRedFlags(text)

	if len(flags) != 3 {
		t.Fatalf("got %d flags, want cap of 3", len(flags))
	}
	// Declaration order, not severity order: non-compete (medium) comes
	// before termination (high).
	want := []string{"Broad Non-Compete Clause", "Unclear Compensation Structure", "Unfavorable Termination Terms"}
	for i, flag := range flags {
		if flag.Issue != want[i] {
			t.Errorf("flag %d = %q, want %q", i, flag.Issue, want[i])
		}
	}
}
