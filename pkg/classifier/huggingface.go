package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultHuggingFaceModel = "snunlp/KR-FinBert-SC"
	huggingFaceBaseURL      = "https://api-inference.huggingface.co/models/"
)

// HuggingFaceClient calls the hosted Inference API of a text-classification
// model. The response is the per-label probability list of the model.
type HuggingFaceClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHuggingFaceClient(apiKey, model string) *HuggingFaceClient {
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	return &HuggingFaceClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    huggingFaceBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HuggingFaceClient) Name() string {
	return "huggingface"
}

func (c *HuggingFaceClient) Classify(ctx context.Context, text string) ([]Score, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("huggingface encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// 503 means the model is still loading on the inference host.
	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: model %s is loading", ErrUnavailable, c.model)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: huggingface status %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return parseInferenceScores(raw)
}

// parseInferenceScores accepts both [[{label, score}, ...]] and
// [{label, score}, ...].
func parseInferenceScores(raw []byte) ([]Score, error) {
	var nested [][]Score
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("%w: empty result", ErrMalformed)
		}
		return nested[0], nil
	}

	var flat []Score
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: empty result", ErrMalformed)
	}
	return flat, nil
}
