package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDocumentStruct(t *testing.T) {
	doc := &Document{
		ID:               "test-id",
		Name:             "Employment Agreement",
		OriginalFilename: "agreement.pdf",
		DocumentType:     "contract",
		Status:           StatusUploaded,
		FileSize:         2048,
		UploadDate:       time.Now(),
		UpdatedAt:        time.Now(),
	}

	if doc.ID != "test-id" {
		t.Errorf("Expected ID 'test-id', got '%s'", doc.ID)
	}
	if doc.Status != StatusUploaded {
		t.Errorf("Expected status '%s', got '%s'", StatusUploaded, doc.Status)
	}
}

func TestDocumentStatusConstants(t *testing.T) {
	statuses := []string{StatusUploaded, StatusAnalyzing, StatusAnalyzed, StatusError}
	expected := []string{"uploaded", "analyzing", "analyzed", "error"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestDocumentAnalysisJSON(t *testing.T) {
	analysis := DocumentAnalysis{
		ID:               "a1",
		DocumentID:       "d1",
		OverallScore:     7.5,
		ReadabilityScore: 8.0,
		FairnessScore:    7.0,
		RiskLevel:        "medium",
		Complexity:       "low",
		TopConcerns:      []string{"Document complexity may require legal review"},
		Recommendations:  []string{"Keep copies of all signed documents for your records"},
		RedFlags: []RedFlag{
			{Issue: "Excessive Liability Exposure", Explanation: "x", Severity: "high"},
		},
		AnalysisDate: time.Now(),
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("Failed to marshal analysis: %v", err)
	}

	var decoded DocumentAnalysis
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal analysis: %v", err)
	}
	if decoded.OverallScore != 7.5 {
		t.Errorf("Expected overall score 7.5, got %v", decoded.OverallScore)
	}
	if len(decoded.RedFlags) != 1 || decoded.RedFlags[0].Severity != "high" {
		t.Errorf("Red flags did not round-trip: %+v", decoded.RedFlags)
	}
	if decoded.Degraded != nil {
		t.Errorf("Expected degraded list to be omitted when empty, got %v", decoded.Degraded)
	}
}
