package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalclear/backend/model"
	"github.com/legalclear/backend/pkg/logger"
)

// TextGenerator is the capability interface for the external generative-text
// service. Implementations may fail at any time; every use in this package
// has a deterministic fallback.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EntityRecognizer is the capability interface for the external named-entity
// recognition service. An empty span list is a valid result.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]RecognizedSpan, error)
}

// promptTextLimit caps how much document text is sent with any prompt.
const promptTextLimit = 4000

var errNoGenerator = errors.New("no text generator configured")

const (
	summaryPrompt = "Summarize the main points and implications of the following legal document in plain English. " +
		"Use markdown for formatting where appropriate.\n\nDocument:\n"
	keyTermsPrompt = "Extract and list the 3-5 most important legal terms or concepts from the following document. " +
		"For each, provide:\n- term\n- definition (plain English)\n- importance (high, medium, low)\n- location (if possible)\n" +
		"Return as a JSON array of objects.\n\nDocument:\n"
	keyTermsMarkdownPrompt = "Extract and explain the 3-5 most important legal terms from the following document. " +
		"Format as markdown with headers, bullet points, and emphasis. Make it easy to read and understand.\n\nDocument:\n"
	redFlagsPrompt = "Identify up to 3 key risks, red flags, or problematic clauses in the following document. " +
		"For each, provide:\n- issue (short title)\n- explanation (plain English)\n- severity (high, medium, low)\n" +
		"Return as a JSON array of objects.\n\nDocument:\n"
	redFlagsMarkdownPrompt = "Analyze and explain the key risks and red flags in the following legal document. " +
		"Format as markdown with clear headers, bullet points, and emphasis. Highlight severity levels and provide actionable advice.\n\nDocument:\n"
)

const clausePromptTemplate = `Analyze this %s clause from a legal contract:

"%s"

Please provide:
1. A clear, plain-English summary (2-3 sentences)
2. Risk assessment: "High Risk", "Medium Risk", "Low Risk", or "Safe"

Focus on:
- Key obligations and responsibilities
- Potential penalties or consequences
- Rights and restrictions
- Financial implications

Format your response as:
SUMMARY: [your summary]
RISK: [risk level]`

const scenarioPromptTemplate = `Explain this contract scenario in plain, simple English:
"%s"

Make it easy to understand for someone without legal background.
Be specific about consequences and actions required.`

// Engine orchestrates the generation service over the deterministic
// pipeline. Both collaborators may be nil: a nil generator routes every
// generated part to its fallback, a nil recognizer yields empty span lists.
type Engine struct {
	gen TextGenerator
	rec EntityRecognizer
}

func NewEngine(gen TextGenerator, rec EntityRecognizer) *Engine {
	return &Engine{gen: gen, rec: rec}
}

// Analyze produces the complete analysis for one document. Generation
// failures are never surfaced to the caller: each generated part falls back
// to its deterministic counterpart and the part's name is recorded in the
// result's Degraded list, so callers can tell a sparse document from a
// degraded analysis.
func (e *Engine) Analyze(ctx context.Context, text, documentType, documentID string) model.DocumentAnalysis {
	readability := ReadabilityScore(text)
	fairness := FairnessScore(text, documentType)
	overall := (readability + fairness) / 2

	result := model.DocumentAnalysis{
		ID:                uuid.New().String(),
		DocumentID:        documentID,
		OverallScore:      roundScore(overall),
		ReadabilityScore:  roundScore(readability),
		FairnessScore:     roundScore(fairness),
		RiskLevel:         AssessRiskLevel(overall),
		Complexity:        DetermineComplexity(text),
		EstimatedReadTime: EstimateReadTime(text),
		AnalysisDate:      time.Now().UTC(),
	}

	excerpt := Truncate(text, promptTextLimit)

	summary, err := e.generate(ctx, summaryPrompt+excerpt)
	if err != nil {
		logger.Debug(ctx, "summary generation failed", "error", err)
		result.Summary = "Summary not available."
		result.Degraded = append(result.Degraded, "summary")
	} else {
		result.Summary = summary
	}

	keyTerms, keyTermsMarkdown, err := e.generateKeyTerms(ctx, excerpt)
	if err != nil {
		logger.Debug(ctx, "key term generation failed, using glossary extraction", "error", err)
		result.KeyTerms = ExtractKeyTerms(text)
		result.Degraded = append(result.Degraded, "key_terms")
	} else {
		result.KeyTerms = keyTerms
		result.KeyTermsMarkdown = keyTermsMarkdown
	}

	redFlags, risksMarkdown, err := e.generateRedFlags(ctx, excerpt)
	if err != nil {
		logger.Debug(ctx, "red flag generation failed, using pattern detection", "error", err)
		result.RedFlags = IdentifyRedFlags(text)
		result.Degraded = append(result.Degraded, "red_flags")
	} else {
		result.RedFlags = redFlags
		result.RisksMarkdown = risksMarkdown
	}

	var sectionsDegraded bool
	result.SimplifiedSections, sectionsDegraded = e.simplifiedSections(ctx, excerpt, documentType)
	if sectionsDegraded {
		result.Degraded = append(result.Degraded, "simplified_sections")
	}

	result.TopConcerns = TopConcerns(result.RedFlags)
	result.Recommendations = Recommendations(result.RedFlags, documentType)

	return result
}

// BuildSchema assembles the structured contract projection: typed clauses
// with summaries and risk ratings, aggregated entities, and derived
// metadata. The schema is never persisted; it is always regenerable from
// the source text.
func (e *Engine) BuildSchema(ctx context.Context, text string) model.ContractSchema {
	clausesByType := SplitClauses(text)
	entities := ExtractEntities(text, e.recognize(ctx, text))

	var processed []model.Clause
	for _, clauseType := range orderedClauseTypes(clausesByType) {
		for _, clauseText := range clausesByType[clauseType] {
			summary, risk := e.summarizeClause(ctx, clauseText, clauseType)
			clauseEntities := ExtractEntities(clauseText, e.recognize(ctx, clauseText))
			processed = append(processed, model.Clause{
				Type:     clauseType,
				Original: clauseText,
				Summary:  summary,
				Risk:     risk,
				Entities: flattenEntities(clauseEntities),
			})
		}
	}

	highRisk := 0
	for _, clause := range processed {
		if strings.Contains(clause.Risk, "High Risk") {
			highRisk++
		}
	}

	now := time.Now().UTC()
	return model.ContractSchema{
		Parties: entityTexts(entities["parties"]),
		Dates: model.SchemaDates{
			MentionedDates: entityTexts(entities["dates"]),
			ExtractedAt:    now,
		},
		FinancialObligations: model.SchemaFinances{
			MonetaryAmounts:    entityTexts(entities["money"]),
			PaymentClauseCount: len(clausesByType["payment"]),
		},
		Clauses: processed,
		Metadata: model.SchemaMetadata{
			TotalClauses:    len(processed),
			HighRiskClauses: highRisk,
			ProcessingDate:  now,
		},
	}
}

// ExplainScenarios elaborates each scenario fact in plain English via the
// generation service. Without it, the fact comes back verbatim with a
// "Scenario: " prefix.
func (e *Engine) ExplainScenarios(ctx context.Context, scenarios map[string]string) map[string]string {
	explained := make(map[string]string, len(scenarios))
	for name, fact := range scenarios {
		response, err := e.generate(ctx, fmt.Sprintf(scenarioPromptTemplate, fact))
		if err != nil {
			explained[name] = "Scenario: " + fact
			continue
		}
		explained[name] = response
	}
	return explained
}

func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	if e.gen == nil {
		return "", errNoGenerator
	}
	response, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func (e *Engine) recognize(ctx context.Context, text string) []RecognizedSpan {
	if e.rec == nil {
		return nil
	}
	spans, err := e.rec.Recognize(ctx, text)
	if err != nil {
		logger.Debug(ctx, "entity recognition failed", "error", err)
		return nil
	}
	return spans
}

func (e *Engine) generateKeyTerms(ctx context.Context, excerpt string) ([]model.KeyTerm, string, error) {
	raw, err := e.generate(ctx, keyTermsPrompt+excerpt)
	if err != nil {
		return nil, "", err
	}

	var terms []model.KeyTerm
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &terms); err != nil {
		return nil, "", fmt.Errorf("malformed key term output: %w", err)
	}
	if len(terms) == 0 {
		return nil, "", fmt.Errorf("malformed key term output: empty array")
	}
	for _, term := range terms {
		if term.Term == "" || !validImportance(term.Importance) {
			return nil, "", fmt.Errorf("malformed key term output: %q/%q", term.Term, term.Importance)
		}
	}

	markdown, err := e.generate(ctx, keyTermsMarkdownPrompt+excerpt)
	if err != nil {
		return nil, "", err
	}
	return terms, markdown, nil
}

func (e *Engine) generateRedFlags(ctx context.Context, excerpt string) ([]model.RedFlag, string, error) {
	raw, err := e.generate(ctx, redFlagsPrompt+excerpt)
	if err != nil {
		return nil, "", err
	}

	var flags []model.RedFlag
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &flags); err != nil {
		return nil, "", fmt.Errorf("malformed red flag output: %w", err)
	}
	for _, flag := range flags {
		if flag.Issue == "" || !validImportance(flag.Severity) {
			return nil, "", fmt.Errorf("malformed red flag output: %q/%q", flag.Issue, flag.Severity)
		}
	}

	markdown, err := e.generate(ctx, redFlagsMarkdownPrompt+excerpt)
	if err != nil {
		return nil, "", err
	}
	return flags, markdown, nil
}

type sectionTemplate struct {
	Title  string
	Prompt string
}

var sectionTemplates = map[string][]sectionTemplate{
	"contract": {
		{"Your Job & Pay", "Summarize the section(s) about job duties, pay, and benefits in plain English."},
		{"Rules & Restrictions", "Summarize the section(s) about rules, restrictions, and non-compete clauses in plain English."},
		{"How Employment Can End", "Summarize the section(s) about termination, notice, and what happens when employment ends in plain English."},
	},
	"lease": {
		{"Rent & Payments", "Summarize the section(s) about rent, payment schedule, and fees in plain English."},
		{"Your Responsibilities", "Summarize the section(s) about tenant responsibilities and property care in plain English."},
		{"Ending the Lease", "Summarize the section(s) about ending the lease, notice, and penalties in plain English."},
	},
}

var defaultSectionTemplates = []sectionTemplate{
	{"Main Terms", "Summarize the main requirements and obligations in this document in plain English."},
	{"Rights & Restrictions", "Summarize the rights and restrictions for both parties in plain English."},
	{"Legal Consequences", "Summarize what happens if someone breaks the agreement, including penalties or legal actions, in plain English."},
}

func (e *Engine) simplifiedSections(ctx context.Context, excerpt, documentType string) ([]model.SimplifiedSection, bool) {
	templates, ok := sectionTemplates[documentType]
	if !ok {
		templates = defaultSectionTemplates
	}

	degraded := false
	sections := make([]model.SimplifiedSection, 0, len(templates))
	for i, tmpl := range templates {
		content, err := e.generate(ctx, tmpl.Prompt+"\n\nDocument:\n"+excerpt)
		if err != nil {
			content = "Summary not available."
			degraded = true
		}
		sections = append(sections, model.SimplifiedSection{
			Title:   tmpl.Title,
			Content: content,
			Order:   i + 1,
		})
	}
	return sections, degraded
}

func (e *Engine) summarizeClause(ctx context.Context, clauseText, clauseType string) (string, string) {
	response, err := e.generate(ctx, fmt.Sprintf(clausePromptTemplate, clauseType, clauseText))
	if err != nil {
		return FallbackClauseAnalysis(clauseText, clauseType)
	}
	return parseClauseResponse(response)
}

var (
	clauseSummaryRe = regexp.MustCompile(`(?s)SUMMARY:\s*(.+?)\s*(?:RISK:|$)`)
	clauseRiskRe    = regexp.MustCompile(`(?s)RISK:\s*(.+)$`)
)

// parseClauseResponse pulls the SUMMARY and RISK lines out of a generated
// clause analysis; missing pieces default to neutral values.
func parseClauseResponse(response string) (string, string) {
	summary := "Summary not available"
	risk := "Safe"

	if m := clauseSummaryRe.FindStringSubmatch(response); m != nil {
		summary = strings.TrimSpace(m[1])
	}
	if m := clauseRiskRe.FindStringSubmatch(response); m != nil {
		risk = strings.TrimSpace(m[1])
	}
	return summary, risk
}

// orderedClauseTypes returns the bucket keys in declaration order so schema
// output is deterministic; the general bucket sorts last.
func orderedClauseTypes(clausesByType map[string][]string) []string {
	var ordered []string
	for _, ct := range clauseTypes {
		if _, ok := clausesByType[ct.Type]; ok {
			ordered = append(ordered, ct.Type)
		}
	}
	if _, ok := clausesByType[ClauseGeneral]; ok {
		ordered = append(ordered, ClauseGeneral)
	}
	return ordered
}

func validImportance(level string) bool {
	switch level {
	case "high", "medium", "low":
		return true
	}
	return false
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeFence unwraps a markdown code fence around structured output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
