package analysis

import (
	"math"
	"regexp"
	"strings"
)

var sentenceEndRe = regexp.MustCompile(`[.!?]+`)

// unfairIndicators are phrases whose presence lowers the fairness score.
// Presence is counted once per distinct phrase, not per occurrence.
var unfairIndicators = []string{
	"at company discretion",
	"sole discretion",
	"unlimited liability",
	"without notice",
	"immediate termination",
	"forfeiture",
	"waive all rights",
	"indemnify company",
	"hold harmless",
}

// ReadabilityScore rates how easy a document is to read on a 1-10 scale.
// Longer sentences and longer words push the score down. Text with no
// sentence boundaries, including empty text, gets the neutral 5.0.
func ReadabilityScore(text string) float64 {
	if text == "" {
		return 5.0
	}

	words := strings.Fields(text)
	wordCount := len(words)
	sentenceCount := len(sentenceEndRe.FindAllString(text, -1))
	if sentenceCount == 0 || wordCount == 0 {
		return 5.0
	}

	avgSentenceLength := float64(wordCount) / float64(sentenceCount)
	totalWordLength := 0
	for _, word := range words {
		totalWordLength += len(word)
	}
	avgWordLength := float64(totalWordLength) / float64(wordCount)

	sentencePenalty := math.Max(0, (avgSentenceLength-15)*0.1)
	wordPenalty := math.Max(0, (avgWordLength-5)*0.3)

	score := 10.0 - sentencePenalty - wordPenalty
	return math.Min(10.0, math.Max(1.0, score))
}

// FairnessScore rates how balanced a document is: 9.0 minus half a point per
// distinct unfair-indicator phrase present, floored at 1.0. Empty text gets
// the neutral 7.0.
func FairnessScore(text, documentType string) float64 {
	if text == "" {
		return 7.0
	}

	lower := strings.ToLower(text)
	unfairCount := 0
	for _, indicator := range unfairIndicators {
		if strings.Contains(lower, indicator) {
			unfairCount++
		}
	}

	return math.Max(1.0, 9.0-float64(unfairCount)*0.5)
}

// AssessRiskLevel maps an overall score to a risk band. Band floors are
// inclusive: exactly 8.0 is low, exactly 6.0 is medium.
func AssessRiskLevel(overallScore float64) string {
	switch {
	case overallScore >= 8.0:
		return "low"
	case overallScore >= 6.0:
		return "medium"
	default:
		return "high"
	}
}

// DetermineComplexity buckets a document by word count and by how many
// glossary terms it uses.
func DetermineComplexity(text string) string {
	if text == "" {
		return "low"
	}

	wordCount := len(strings.Fields(text))
	lower := strings.ToLower(text)
	legalTermCount := 0
	for _, entry := range legalGlossary {
		if strings.Contains(lower, entry.Term) {
			legalTermCount++
		}
	}

	switch {
	case wordCount > 5000 || legalTermCount > 10:
		return "high"
	case wordCount > 2000 || legalTermCount > 5:
		return "medium"
	default:
		return "low"
	}
}

// roundScore rounds to one decimal for display; risk assessment always uses
// the unrounded value.
func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
