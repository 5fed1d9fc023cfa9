// Package analysis implements the deterministic legal-document analysis
// pipeline: text normalization, clause segmentation, entity aggregation,
// heuristic scoring, red-flag and key-term detection, scenario simulation,
// and the engine that layers the generative-text service on top with a
// deterministic fallback for every generated part.
//
// All functions outside Engine are pure and total: they never return errors,
// accept any input including the empty string, and hold no shared mutable
// state, so they are safe for concurrent use across documents.
package analysis

import (
	"regexp"
	"strings"
)

var (
	curlyDoubleRe = regexp.MustCompile("[“”„]")
	curlySingleRe = regexp.MustCompile("[‘’‚']+")
	whitespaceRe  = regexp.MustCompile(`\s+`)
	charFilterRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?()\-'"$%]`)
)

// CleanText normalizes raw extracted text: curly quotes become straight
// quotes, whitespace runs collapse to single spaces, and characters outside
// the letter/digit/punctuation whitelist are stripped. Letters and digits in
// any script are kept, so accented names survive. One pass reaches a fixed
// point: CleanText(CleanText(x)) == CleanText(x).
func CleanText(raw string) string {
	text := curlyDoubleRe.ReplaceAllString(raw, `"`)
	text = curlySingleRe.ReplaceAllString(text, "'")
	text = charFilterRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate returns the first n runes of s, never splitting a multi-byte
// rune mid-sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
