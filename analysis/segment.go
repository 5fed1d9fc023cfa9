package analysis

import (
	"regexp"
	"strings"
)

// clauseTypes maps each clause category to its trigger keywords. Declaration
// order is the scan order and is part of the contract with consumers that
// iterate clause buckets.
var clauseTypes = []struct {
	Type     string
	Keywords []string
}{
	{"termination", []string{"termination", "terminate", "end", "expiry", "expire"}},
	{"liability", []string{"liability", "liable", "responsible", "damages"}},
	{"penalty", []string{"penalty", "fine", "fee", "charge", "forfeit"}},
	{"payment", []string{"payment", "pay", "rent", "fee", "cost", "price"}},
	{"confidentiality", []string{"confidential", "non-disclosure", "nda", "secret"}},
	{"indemnification", []string{"indemnify", "indemnification", "hold harmless"}},
	{"intellectual_property", []string{"intellectual property", "copyright", "trademark", "patent"}},
	{"force_majeure", []string{"force majeure", "act of god", "unforeseeable"}},
}

// ClauseGeneral is the fallback bucket emitted when no clause type matches.
const ClauseGeneral = "general"

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]\s+`)

// splitSentences splits text after terminal punctuation followed by
// whitespace. The punctuation stays with the preceding sentence; the
// trailing remainder is always included, even when empty.
func splitSentences(text string) []string {
	var sentences []string
	prev := 0
	for _, loc := range sentenceBoundaryRe.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	return append(sentences, text[prev:])
}

// SplitClauses segments document text into typed clause candidates. A
// sentence containing any keyword of a type contributes a context window
// from one sentence before it through three after, joined with spaces; the
// window deliberately over-extracts so clause continuations are not cut off.
// Windows of 50 characters or less are dropped as noise. A sentence may
// contribute windows to several types and overlapping windows are never
// deduplicated. When nothing matches at all, the first 1000 characters come
// back as a single general clause so downstream consumers never see an
// empty set.
func SplitClauses(text string) map[string][]string {
	clauses := make(map[string][]string)
	sentences := splitSentences(text)

	for _, ct := range clauseTypes {
		var segments []string
		for i, sentence := range sentences {
			lower := strings.ToLower(sentence)
			matched := false
			for _, keyword := range ct.Keywords {
				if strings.Contains(lower, keyword) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}

			start := i - 1
			if start < 0 {
				start = 0
			}
			end := i + 3
			if end > len(sentences) {
				end = len(sentences)
			}
			segment := strings.Join(sentences[start:end], " ")

			if len(segment) > 50 {
				segments = append(segments, segment)
			}
		}
		if len(segments) > 0 {
			clauses[ct.Type] = segments
		}
	}

	if len(clauses) == 0 {
		clauses[ClauseGeneral] = []string{Truncate(text, 1000)}
	}
	return clauses
}
