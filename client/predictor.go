package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// PredictorClient calls the external resolution-time prediction service.
type PredictorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPredictorClient creates a predictor client for the given base URL.
func NewPredictorClient(baseURL string) *PredictorClient {
	return &PredictorClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// predictionResponse tolerates both string ("33 days") and numeric (33)
// predicted_resolution_time encodings.
type predictionResponse struct {
	PredictedResolutionTime json.RawMessage `json:"predicted_resolution_time"`
}

// Predict returns the predicted resolution time for a category/subcategory/
// pincode triple, as the raw text the service produced (e.g. "33 days").
// Parsing and normalization happen downstream.
func (c *PredictorClient) Predict(ctx context.Context, category, subcategory, pincode string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"category":    category,
		"subcategory": subcategory,
		"pincode":     pincode,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("prediction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, string(b))
	}

	var result predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode prediction response: %w", err)
	}
	if len(result.PredictedResolutionTime) == 0 {
		return "", fmt.Errorf("prediction response missing predicted_resolution_time")
	}

	// Strip quotes when the service sent a JSON string.
	raw := strings.Trim(string(result.PredictedResolutionTime), `"`)
	return raw, nil
}
