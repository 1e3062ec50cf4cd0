package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	apperrors "github.com/neuraseek/neuraseek/internal/pkg/errors"
)

// HuggingFaceClient talks to the hosted inference API. It implements both
// Summarizer and Classifier.
type HuggingFaceClient struct {
	apiHost    string
	apiKey     string
	summarizer string
	httpClient *http.Client
}

// NewHuggingFaceClient creates a hosted-inference client.
func NewHuggingFaceClient(cfg *Config) *HuggingFaceClient {
	host := cfg.APIHost
	if host == "" {
		host = "https://api-inference.huggingface.co"
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HuggingFaceClient{
		apiHost:    host,
		apiKey:     cfg.APIKey,
		summarizer: cfg.SummarizerModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HuggingFaceClient) post(ctx context.Context, model string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/models/%s", c.apiHost, model), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInferenceRequest)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInferenceResponse)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrInferenceResponse,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, respBody))
	}
	return respBody, nil
}

// Summarize runs the summarization model with deterministic decoding.
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"max_length": maxLen,
			"min_length": minLen,
			"do_sample":  false,
		},
	}

	body, err := c.post(ctx, c.summarizer, payload)
	if err != nil {
		return "", err
	}

	summary := gjson.GetBytes(body, "0.summary_text").String()
	if summary == "" {
		return "", apperrors.New(apperrors.ErrSummaryFailed, string(body))
	}
	return summary, nil
}

// Classify runs the given classification model and flattens its label
// distribution.
func (c *HuggingFaceClient) Classify(ctx context.Context, text, model string) ([]LabelScore, error) {
	body, err := c.post(ctx, model, map[string]any{"inputs": text})
	if err != nil {
		return nil, err
	}

	// The API nests the distribution one level deeper for single inputs.
	dist := gjson.GetBytes(body, "0")
	if !dist.IsArray() {
		dist = gjson.ParseBytes(body)
	}

	var scores []LabelScore
	for _, entry := range dist.Array() {
		scores = append(scores, LabelScore{
			Label: entry.Get("label").String(),
			Score: entry.Get("score").Float(),
		})
	}
	if len(scores) == 0 {
		return nil, apperrors.New(apperrors.ErrSentimentFailed, string(body))
	}
	return scores, nil
}
