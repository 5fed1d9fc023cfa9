package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/legalclear/backend/analysis"
	"github.com/legalclear/backend/config"
)

// NERClient calls the named-entity recognition sidecar. It implements
// analysis.EntityRecognizer.
type NERClient struct {
	config     *config.NERConfig
	httpClient *http.Client
}

type nerRequest struct {
	Text string `json:"text"`
}

func NewNERClient(cfg *config.NERConfig) *NERClient {
	return &NERClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Recognize posts document text and returns the labeled spans. An empty
// span list is a valid result, not an error.
func (c *NERClient) Recognize(ctx context.Context, text string) ([]analysis.RecognizedSpan, error) {
	jsonData, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.APIURL+"/ents", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognizer error: status %d: %s", resp.StatusCode, string(body))
	}

	var spans []analysis.RecognizedSpan
	if err := json.Unmarshal(body, &spans); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return spans, nil
}
