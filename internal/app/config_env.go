package app

import (
	"os"
	"strings"

	"github.com/hyperifyio/goprompt/internal/llm"
)

// ApplyEnvOverrides forcefully overrides cfg fields with environment
// variables when the corresponding vars are set, letting env take precedence
// over values coming from a config file.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = llm.ProviderGemini
	}

	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	// The Gemini-specific variable wins over the generic one, but only for
	// the Gemini backend.
	if provider == llm.ProviderGemini {
		if v := os.Getenv("GEMINI_MODEL"); v != "" {
			cfg.Model = v
		}
	}

	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(apiKeyEnv(provider)); v != "" {
		cfg.APIKey = v
	}

	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("CACHE_FILE"); v != "" {
		cfg.CachePath = v
	}

	if s := strings.ToLower(strings.TrimSpace(os.Getenv("VERBOSE"))); s != "" {
		switch s {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		case "0", "false", "no", "off":
			cfg.Verbose = false
		}
	}
}

// apiKeyEnv names the provider-specific credential variable.
func apiKeyEnv(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
