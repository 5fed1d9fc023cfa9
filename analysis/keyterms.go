package analysis

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/legalclear/backend/model"
)

// legalGlossary holds the known legal terms and their plain-English
// definitions, in declaration order.
var legalGlossary = []struct {
	Term       string
	Definition string
}{
	{"at-will employment", "Either party can terminate the employment relationship at any time, for any reason, with or without notice."},
	{"confidentiality agreement", "A legal agreement that prohibits sharing sensitive business information with unauthorized parties."},
	{"non-compete clause", "A restriction preventing an employee from working for competitors or starting a competing business for a specified period."},
	{"intellectual property", "Creations of the mind, such as inventions, literary works, designs, and symbols used in commerce."},
	{"force majeure", "Unforeseeable circumstances that prevent a party from fulfilling a contract, such as natural disasters or war."},
	{"indemnification", "Protection against legal liability, where one party agrees to compensate another for losses or damages."},
	{"liquidated damages", "A predetermined amount of compensation agreed upon in advance for specific contract breaches."},
	{"arbitration", "A method of dispute resolution outside the courts, where an arbitrator makes a binding decision."},
	{"jurisdiction", "The authority of a court to hear and decide a case, typically based on geographic location."},
	{"severability", "If one part of a contract is invalid, the rest of the contract remains enforceable."},
	{"warranty", "A promise or guarantee about the quality, condition, or performance of a product or service."},
	{"breach of contract", "Failure to perform any duty or obligation specified in a contract without legal excuse."},
}

// highImportanceTerms marks terms reported as high importance. The literals
// predate the current glossary phrasing and no longer match any entry
// exactly, so in practice every matched term scores medium.
var highImportanceTerms = map[string]bool{
	"non-compete":     true,
	"confidentiality": true,
	"termination":     true,
}

// ExtractKeyTerms scans the glossary against the lower-cased text and
// returns up to five matches in glossary order. Location is a synthetic
// placeholder of the form "Section r.c"; it is not derived from the actual
// document position and must not be treated as authoritative. When no
// glossary term is present, a single generic entry is returned.
func ExtractKeyTerms(text string) []model.KeyTerm {
	lower := strings.ToLower(text)
	caser := cases.Title(language.English)

	var found []model.KeyTerm
	for _, entry := range legalGlossary {
		if !strings.Contains(lower, entry.Term) {
			continue
		}

		importance := "medium"
		if highImportanceTerms[entry.Term] {
			importance = "high"
		}

		found = append(found, model.KeyTerm{
			Term:       caser.String(entry.Term),
			Definition: entry.Definition,
			Importance: importance,
			Location:   fmt.Sprintf("Section %d.%d", rand.Intn(10)+1, rand.Intn(5)+1),
		})
	}

	if len(found) == 0 {
		found = append(found, model.KeyTerm{
			Term:       "Legal Obligations",
			Definition: "Duties and responsibilities that must be performed as specified in this document.",
			Importance: "medium",
			Location:   "Various sections",
		})
	}

	if len(found) > 5 {
		found = found[:5]
	}
	return found
}
