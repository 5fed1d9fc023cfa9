package analysis

import (
	"regexp"

	"github.com/legalclear/backend/model"
)

// RecognizedSpan is a labeled text range produced by the external
// named-entity recognizer. Labels follow the recognizer's category set
// (ORG, PERSON, DATE, MONEY, ...).
type RecognizedSpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// partyPatterns match legal role nouns and ordinal party phrases that the
// recognizer does not label.
var partyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(lessor|lessee|landlord|tenant|buyer|seller|contractor|client)\b`),
	regexp.MustCompile(`(?i)\b(party|parties)\s+(?:of\s+)?(?:the\s+)?(?:first|second|third)\s+part\b`),
}

// ExtractEntities merges recognizer spans with custom party-pattern matches
// into typed buckets. Buckets are not mutually exclusive: organizations and
// persons also land in parties, and pattern matches are appended to parties
// without deduplication against recognizer output. Callers must expect
// duplicates.
func ExtractEntities(text string, spans []RecognizedSpan) map[string][]model.Entity {
	entities := map[string][]model.Entity{
		"parties":       {},
		"dates":         {},
		"money":         {},
		"organizations": {},
		"persons":       {},
	}

	for _, span := range spans {
		entity := model.Entity{
			Text:  span.Text,
			Label: span.Label,
			Start: span.Start,
			End:   span.End,
		}

		switch span.Label {
		case "ORG":
			entities["organizations"] = append(entities["organizations"], entity)
			// Organizations are often parties
			entities["parties"] = append(entities["parties"], entity)
		case "PERSON":
			entities["persons"] = append(entities["persons"], entity)
			// Persons can be parties
			entities["parties"] = append(entities["parties"], entity)
		case "DATE":
			entities["dates"] = append(entities["dates"], entity)
		case "MONEY":
			entities["money"] = append(entities["money"], entity)
		}
	}

	for _, pattern := range partyPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			entities["parties"] = append(entities["parties"], model.Entity{
				Text:  text[loc[0]:loc[1]],
				Label: "PARTY",
				Start: loc[0],
				End:   loc[1],
			})
		}
	}

	return entities
}

// entityTexts projects a bucket to its raw strings.
func entityTexts(entities []model.Entity) []string {
	texts := make([]string, len(entities))
	for i, e := range entities {
		texts[i] = e.Text
	}
	return texts
}

// flattenEntities collapses all buckets into one list, duplicates included.
func flattenEntities(buckets map[string][]model.Entity) []model.Entity {
	var all []model.Entity
	for _, bucket := range buckets {
		all = append(all, bucket...)
	}
	return all
}
