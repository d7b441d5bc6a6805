package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when Settings.Model is empty.
const DefaultOpenAIModel = "o4-mini"

// OpenAI calls an OpenAI-compatible chat completions endpoint. BaseURL
// overrides make it work against local stubs and gateways.
type OpenAI struct {
	inner *openai.Client
	model string
}

// NewOpenAI builds the client. No network traffic happens until Generate.
func NewOpenAI(s Settings) *OpenAI {
	cfg := openai.DefaultConfig(s.APIKey)
	if s.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(s.BaseURL, "/")
	}
	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{inner: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAI) Name() string { return ProviderOpenAI }

// Generate returns the first choice's message content; a reply without
// choices is the empty string rather than an error.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
