package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client is the minimal surface core logic needs from a hosted model: one
// prompt in, one text completion out. Every provider backend adapts to it so
// callers stay independent of vendor SDKs.
type Client interface {
	// Generate sends prompt as a single user turn and returns the model's
	// text reply.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the backing provider, e.g. "gemini".
	Name() string
}

// Provider names accepted by New.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrUnknownProvider reports a Settings.Provider value with no backend.
var ErrUnknownProvider = errors.New("unknown llm provider")

// Settings selects and parameterizes a provider backend.
type Settings struct {
	// Provider picks the backend; empty selects Gemini.
	Provider string
	// APIKey authenticates against the provider.
	APIKey string
	// Model overrides the provider's default model when non-empty.
	Model string
	// BaseURL points the provider at an alternate endpoint, mainly for
	// local stubs and proxies.
	BaseURL string
}

// New builds the Client selected by s.Provider. The ctx only scopes client
// construction, not later calls.
func New(ctx context.Context, s Settings) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderGemini:
		return NewGemini(ctx, s)
	case ProviderOpenAI:
		return NewOpenAI(s), nil
	case ProviderAnthropic:
		return NewAnthropic(s), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
}
