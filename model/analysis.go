package model

import (
	"time"
)

// Entity is a labeled span of source text. Values are never mutated after
// creation; start/end are rune-agnostic byte offsets into the text the
// recognizer was given.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Clause is a typed segment of document text. Summary and Risk are filled
// either by the generation service or by the deterministic fallback.
type Clause struct {
	Type     string   `json:"type"`
	Original string   `json:"original"`
	Summary  string   `json:"summary"`
	Risk     string   `json:"risk"`
	Entities []Entity `json:"entities"`
}

// KeyTerm is a glossary term found in a document. Location is a synthetic
// placeholder (not derived from actual document position) and must not be
// treated as authoritative.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Importance string `json:"importance"` // high, medium, low
	Location   string `json:"location"`
}

// RedFlag is a detected category of contractual risk
type RedFlag struct {
	Issue       string `json:"issue"`
	Explanation string `json:"explanation"`
	Severity    string `json:"severity"` // high, medium, low
}

// SimplifiedSection is a plain-English rendition of one document area
type SimplifiedSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// DocumentAnalysis is the aggregate analysis result for one document.
// OverallScore is always the mean of ReadabilityScore and FairnessScore;
// Degraded names the components whose output came from the deterministic
// fallback instead of the generation service.
type DocumentAnalysis struct {
	ID                 string              `json:"id"`
	DocumentID         string              `json:"document_id"`
	OverallScore       float64             `json:"overall_score"`
	ReadabilityScore   float64             `json:"readability_score"`
	FairnessScore      float64             `json:"fairness_score"`
	RiskLevel          string              `json:"risk_level"` // high, medium, low
	Complexity         string              `json:"complexity"` // high, medium, low
	EstimatedReadTime  string              `json:"estimated_read_time"`
	TopConcerns        []string            `json:"top_concerns"`
	Recommendations    []string            `json:"recommendations"`
	KeyTerms           []KeyTerm           `json:"key_terms"`
	RedFlags           []RedFlag           `json:"red_flags"`
	SimplifiedSections []SimplifiedSection `json:"simplified_sections"`
	Summary            string              `json:"summary"`
	KeyTermsMarkdown   string              `json:"key_terms_markdown,omitempty"`
	RisksMarkdown      string              `json:"risks_markdown,omitempty"`
	Degraded           []string            `json:"degraded,omitempty"`
	AnalysisDate       time.Time           `json:"analysis_date"`
}

// ContractSchema is a derived, read-only projection of a document built from
// clause and entity data. It is never persisted and always regenerable from
// source text.
type ContractSchema struct {
	Parties              []string       `json:"parties"`
	Dates                SchemaDates    `json:"dates"`
	FinancialObligations SchemaFinances `json:"financial_obligations"`
	Clauses              []Clause       `json:"clauses"`
	Metadata             SchemaMetadata `json:"metadata"`
}

type SchemaDates struct {
	MentionedDates []string  `json:"mentioned_dates"`
	ExtractedAt    time.Time `json:"extracted_at"`
}

type SchemaFinances struct {
	MonetaryAmounts    []string `json:"monetary_amounts"`
	PaymentClauseCount int      `json:"payment_clauses_count"`
}

type SchemaMetadata struct {
	TotalClauses    int       `json:"total_clauses"`
	HighRiskClauses int       `json:"high_risk_clauses"`
	ProcessingDate  time.Time `json:"processing_date"`
}
