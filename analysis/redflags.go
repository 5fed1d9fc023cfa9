package analysis

import (
	"strings"

	"github.com/legalclear/backend/model"
)

// riskPatterns pairs each risk category with its trigger keywords and the
// pre-authored flag emitted when the category fires. Declaration order is
// the reporting order.
var riskPatterns = []struct {
	Category string
	Keywords []string
	Flag     model.RedFlag
}{
	{
		Category: "overly broad non-compete",
		Keywords: []string{"non-compete", "compete", "competitor", "indefinite", "unlimited"},
		Flag: model.RedFlag{
			Issue:       "Broad Non-Compete Clause",
			Explanation: "The non-compete restrictions appear extensive and may limit future employment opportunities.",
			Severity:    "medium",
		},
	},
	{
		Category: "vague compensation terms",
		Keywords: []string{"bonus", "commission", "discretionary", "variable pay", "may receive"},
		Flag: model.RedFlag{
			Issue:       "Unclear Compensation Structure",
			Explanation: "Payment terms lack specificity, which could lead to disputes over compensation.",
			Severity:    "medium",
		},
	},
	{
		Category: "unfair termination clauses",
		Keywords: []string{"immediate termination", "without cause", "at company discretion"},
		Flag: model.RedFlag{
			Issue:       "Unfavorable Termination Terms",
			Explanation: "Termination conditions appear to heavily favor one party over the other.",
			Severity:    "high",
		},
	},
	{
		Category: "excessive liability",
		Keywords: []string{"unlimited liability", "personal guarantee", "hold harmless"},
		Flag: model.RedFlag{
			Issue:       "Excessive Liability Exposure",
			Explanation: "The document may expose you to significant financial liability beyond reasonable limits.",
			Severity:    "high",
		},
	},
	{
		Category: "unclear intellectual property",
		Keywords: []string{"work product", "inventions", "intellectual property", "unclear ownership"},
		Flag: model.RedFlag{
			Issue:       "Ambiguous IP Ownership",
			Explanation: "Intellectual property ownership rights are not clearly defined, which could cause future disputes.",
			Severity:    "medium",
		},
	},
}

// IdentifyRedFlags pattern-matches the known risk categories against the
// lower-cased text. A category fires when any of its keywords is present;
// the emitted flag is the category's fixed triple, never synthesized from
// the matched keyword. At most the first three firing categories are
// returned, in declaration order, with no ranking by severity.
func IdentifyRedFlags(text string) []model.RedFlag {
	lower := strings.ToLower(text)

	var flags []model.RedFlag
	for _, pattern := range riskPatterns {
		for _, keyword := range pattern.Keywords {
			if strings.Contains(lower, keyword) {
				flags = append(flags, pattern.Flag)
				break
			}
		}
	}

	if len(flags) > 3 {
		flags = flags[:3]
	}
	return flags
}
