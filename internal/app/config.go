package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperifyio/goprompt/internal/cache"
	"github.com/hyperifyio/goprompt/internal/llm"
)

// Defaults applied by FinishConfig when neither file nor environment set a
// value. The placeholder API key keeps startup from failing on missing
// credentials; a bad key surfaces later as an in-band error reply.
const (
	DefaultAPIKey = "your-api-key"
	DefaultLogDir = "logs"
)

// Config is the effective runtime configuration, assembled from defaults, an
// optional config file, and environment variables, in that order.
type Config struct {
	// Provider selects the model backend: gemini (default), openai, or
	// anthropic.
	Provider string
	// APIKey authenticates against the provider.
	APIKey string
	// Model overrides the provider's default model when non-empty.
	Model string
	// BaseURL points the provider at an alternate endpoint, e.g. a local
	// stub server.
	BaseURL string
	// LogDir is where dated interaction logs are written.
	LogDir string
	// CachePath is the prompt→response cache file.
	CachePath string
	// Verbose raises diagnostic logging on stderr.
	Verbose bool
}

// FinishConfig fills remaining defaults after file and env overlays ran.
func FinishConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.Provider) == "" {
		cfg.Provider = llm.ProviderGemini
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		cfg.LogDir = DefaultLogDir
	}
	if strings.TrimSpace(cfg.CachePath) == "" {
		cfg.CachePath = cache.DefaultPath
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("config: unknown provider %q (or set LLM_PROVIDER)", cfg.Provider)
	}
	if strings.TrimSpace(cfg.CachePath) == "" {
		return errors.New("config: cache file path is required")
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		return errors.New("config: log directory is required")
	}
	return nil
}
