// Package app assembles configuration and wires the responder with its
// cache, interaction log, and provider client.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperifyio/goprompt/internal/cache"
	"github.com/hyperifyio/goprompt/internal/llm"
	"github.com/hyperifyio/goprompt/internal/llmlog"
	"github.com/hyperifyio/goprompt/internal/respond"
)

// configFileCandidates are tried in order when GOPROMPT_CONFIG is unset.
var configFileCandidates = []string{"goprompt.yaml", "goprompt.yml", "goprompt.json"}

// Load assembles the effective configuration: an optional config file fills
// gaps, environment variables override both, and FinishConfig fills any
// remaining defaults.
func Load() (Config, error) {
	var cfg Config
	path := strings.TrimSpace(os.Getenv("GOPROMPT_CONFIG"))
	if path == "" {
		for _, candidate := range configFileCandidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		fc, err := LoadConfigFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
		ApplyFileConfig(&cfg, fc)
	}
	ApplyEnvOverrides(&cfg)
	FinishConfig(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// App bundles the wired collaborators for one run. Close releases the log
// file and, for providers that hold one, the backend connection.
type App struct {
	Responder *respond.Responder
	Config    Config

	sink   *llmlog.Logger
	client llm.Client
}

// New opens the interaction log and builds the provider client from cfg.
func New(ctx context.Context, cfg Config) (*App, error) {
	sink, err := llmlog.Open(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("open llm log: %w", err)
	}
	client, err := llm.New(ctx, llm.Settings{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		sink.Close()
		return nil, err
	}
	return &App{
		Responder: &respond.Responder{
			Client: client,
			Cache:  &cache.Store{Path: cfg.CachePath},
			Log:    sink,
		},
		Config: cfg,
		sink:   sink,
		client: client,
	}, nil
}

// Respond answers prompt through the wired responder, honoring its
// never-fail contract.
func (a *App) Respond(ctx context.Context, prompt string, useCache bool) string {
	return a.Responder.Respond(ctx, prompt, useCache)
}

// LogPath reports where interaction lines are written.
func (a *App) LogPath() string { return a.sink.Path() }

// Close releases the provider connection and the log file.
func (a *App) Close() error {
	var first error
	if c, ok := a.client.(io.Closer); ok {
		if err := c.Close(); err != nil {
			first = err
		}
	}
	if err := a.sink.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
