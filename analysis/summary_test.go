package analysis

import (
	"strings"
	"testing"
)

func TestFallbackClauseAnalysis(t *testing.T) {
	tests := []struct {
		name       string
		clause     string
		clauseType string
		wantRisk   string
	}{
		{"no risk words", "Rent is due on the first of each month.", "payment", "Safe"},
		{"one risk word", "A penalty applies for late delivery.", "penalty", "Medium Risk"},
		{"three risk words", "Breach results in a penalty and the party is liable for damages.", "liability", "High Risk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, risk := FallbackClauseAnalysis(tt.clause, tt.clauseType)
			if risk != tt.wantRisk {
				t.Errorf("risk = %q, want %q", risk, tt.wantRisk)
			}
			if !strings.Contains(summary, tt.clauseType) {
				t.Errorf("summary = %q, want templated summary naming the clause type", summary)
			}
		})
	}
}

func TestTypeSummary(t *testing.T) {
	if got := TypeSummary("", "contract"); got != "Document uploaded successfully. Analysis pending." {
		t.Errorf("empty text summary = %q", got)
	}

	got := TypeSummary("one two three four five", "lease")
	if !strings.Contains(got, "5 words") {
		t.Errorf("lease summary = %q, want word count interpolated", got)
	}
	if !strings.Contains(got, "lease agreement") {
		t.Errorf("lease summary = %q, want lease template", got)
	}

	unknown := TypeSummary("some text", "warranty-card")
	if !strings.Contains(unknown, "legal document") {
		t.Errorf("unknown type summary = %q, want generic template", unknown)
	}
}

func TestEstimateReadTime(t *testing.T) {
	if got := EstimateReadTime("just a few words"); got != "1 minutes" {
		t.Errorf("short text = %q, want one-minute floor", got)
	}
	if got := EstimateReadTime(strings.Repeat("word ", 600)); got != "3 minutes" {
		t.Errorf("600 words = %q, want 3 minutes", got)
	}
}
