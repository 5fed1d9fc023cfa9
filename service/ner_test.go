package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/legalclear/backend/config"
)

func TestNERClientRecognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ents" {
			t.Errorf("path = %s, want /ents", r.URL.Path)
		}

		var req nerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Text != "Acme Corp pays $500." {
			t.Errorf("text = %q", req.Text)
		}

		w.Write([]byte(`[
			{"text": "Acme Corp", "label": "ORG", "start": 0, "end": 9},
			{"text": "$500", "label": "MONEY", "start": 15, "end": 19}
		]`))
	}))
	defer server.Close()

	client := NewNERClient(&config.NERConfig{APIURL: server.URL})
	spans, err := client.Recognize(context.Background(), "Acme Corp pays $500.")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Text != "Acme Corp" || spans[0].Label != "ORG" {
		t.Errorf("span 0 = %+v", spans[0])
	}
	if spans[1].Start != 15 || spans[1].End != 19 {
		t.Errorf("span 1 offsets = %d..%d", spans[1].Start, spans[1].End)
	}
}

func TestNERClientRecognizeEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewNERClient(&config.NERConfig{APIURL: server.URL})
	spans, err := client.Recognize(context.Background(), "nothing here")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("got %d spans, want 0", len(spans))
	}
}

func TestNERClientRecognizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewNERClient(&config.NERConfig{APIURL: server.URL})
	if _, err := client.Recognize(context.Background(), "text"); err == nil {
		t.Error("expected error on server failure")
	}
}
