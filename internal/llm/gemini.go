package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when Settings.Model is empty.
const DefaultGeminiModel = "models/gemini-2.5-pro-preview-03-25"

// Gemini calls Google's hosted Gemini API through the official SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini dials the Gemini API. Construction does not verify the key;
// a bad key surfaces on the first Generate call.
func NewGemini(ctx context.Context, s Settings) (*Gemini, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, errors.New("gemini: api key required")
	}
	opts := []option.ClientOption{option.WithAPIKey(s.APIKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(s.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := s.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

// Generate concatenates the text parts of the first candidate. Non-text
// parts are ignored, and a reply with no usable text is the empty string
// rather than an error.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini: client not initialized")
	}
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String(), nil
}

// Close releases the underlying API connection.
func (g *Gemini) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}
