// Package inference wraps the model-serving backends used for enrichment.
// The pipeline treats them as black boxes: one function that summarizes text
// and one that returns a label distribution.
package inference

import (
	"context"
)

// LabelScore is one entry of a classification distribution.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Summarizer produces an abstractive summary with bounded output length and
// deterministic decoding.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLen, minLen int) (string, error)
}

// Classifier scores text against the labels of the given model.
type Classifier interface {
	Classify(ctx context.Context, text, model string) ([]LabelScore, error)
}

// Config selects and configures the inference backend.
type Config struct {
	Backend string `mapstructure:"backend"` // huggingface, openai
	APIHost string `mapstructure:"api_host"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // seconds

	SummarizerModel string `mapstructure:"summarizer_model"`
	SentimentModel  string `mapstructure:"sentiment_model"`
	PolarityModel   string `mapstructure:"polarity_model"`
}

// NewSummarizer builds the configured summarization backend. Classification
// always runs on the hosted-inference backend; only summarization can be
// switched to the chat-completion provider.
func NewSummarizer(cfg *Config) Summarizer {
	if cfg.Backend == "openai" {
		return NewOpenAISummarizer(cfg.APIKey, cfg.SummarizerModel)
	}
	return NewHuggingFaceClient(cfg)
}
