// Package client holds the HTTP clients for the external classification and
// prediction services. Both are consumed only on the submission path; their
// failures surface to the caller as submission failures and are never
// silently substituted with partial results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// ClassificationResult is the classifier's raw output for one complaint:
// a natural-language department statement, an urgency verdict, and free-text
// category/subcategory guesses. Nothing here is canonical; the taxonomy
// matcher coerces it.
type ClassificationResult struct {
	Department  string `json:"department"`
	Urgent      string `json:"urgent"` // "YES" or "NO"
	Category    string `json:"Category"`
	Subcategory string `json:"Subcategory"`
}

// IsUrgent interprets the classifier's urgency verdict. Anything other than
// a YES equivalent counts as not urgent.
func (r ClassificationResult) IsUrgent() bool {
	switch r.Urgent {
	case "YES", "Yes", "yes":
		return true
	}
	return false
}

// ClassifierClient calls the external classification service.
type ClassifierClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClassifierClient creates a classifier client for the given base URL.
func NewClassifierClient(baseURL string) *ClassifierClient {
	return &ClassifierClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Classify sends the complaint text (with any image caption already
// appended) to the classification service.
func (c *ClassifierClient) Classify(ctx context.Context, complaint string) (*ClassificationResult, error) {
	body, err := json.Marshal(map[string]string{"complaint": complaint})
	if err != nil {
		return nil, fmt.Errorf("failed to encode classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/complaint", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classification service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classification service returned %d: %s", resp.StatusCode, string(b))
	}

	var result ClassificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}
	return &result, nil
}
