package analysis

import (
	"strings"

	"github.com/legalclear/backend/model"
)

// recommendationRules map red-flag issue substrings to canned advice. The
// first matching rule per flag wins.
var recommendationRules = []struct {
	Match  string
	Advice string
}{
	{"non-compete", "Negotiate to reduce the scope or duration of non-compete restrictions"},
	{"compensation", "Request more specific details about payment terms and calculation methods"},
	{"termination", "Seek to add more balanced termination provisions"},
	{"liability", "Consider requesting liability caps or insurance provisions"},
	{"intellectual property", "Clarify ownership rights for intellectual property created"},
}

var genericRecommendations = []string{
	"Consider consulting with a legal professional for complex terms",
	"Document any verbal agreements or understandings in writing",
	"Keep copies of all signed documents for your records",
}

var genericConcerns = []string{
	"Document complexity may require legal review",
	"Some terms may benefit from clarification",
	"Consider professional legal advice for important decisions",
}

// Recommendations maps detected red flags to advisory sentences, padding
// with generic advice in pool order until exactly three entries exist.
func Recommendations(flags []model.RedFlag, documentType string) []string {
	var recommendations []string
	for _, flag := range flags {
		issue := strings.ToLower(flag.Issue)
		for _, rule := range recommendationRules {
			if strings.Contains(issue, rule.Match) {
				recommendations = append(recommendations, rule.Advice)
				break
			}
		}
	}
	return fillQuota(recommendations, genericRecommendations, 3)
}

// TopConcerns lists red-flag issues, padded with generic concerns to the
// same quota of three.
func TopConcerns(flags []model.RedFlag) []string {
	var concerns []string
	for _, flag := range flags {
		concerns = append(concerns, flag.Issue)
	}
	return fillQuota(concerns, genericConcerns, 3)
}

func fillQuota(items, pool []string, quota int) []string {
	if missing := quota - len(items); missing > 0 {
		if missing > len(pool) {
			missing = len(pool)
		}
		items = append(items, pool[:missing]...)
	}
	if len(items) > quota {
		items = items[:quota]
	}
	return items
}
