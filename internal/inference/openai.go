package inference

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/neuraseek/neuraseek/internal/pkg/errors"
)

// OpenAISummarizer summarizes through a chat-completion model. It is the
// fallback backend for deployments without a hosted-inference key.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a chat-completion summarizer.
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Summarize asks the model for a summary bounded by maxLen tokens, with
// temperature 0 to keep the output deterministic.
func (s *OpenAISummarizer) Summarize(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   maxLen,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Summarize the following search result snippets in %d to %d words. Reply with the summary only.",
					minLen, maxLen),
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrInferenceRequest)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.ErrSummaryFailed, "chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
