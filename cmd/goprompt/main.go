package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goprompt/internal/app"
)

// demoPrompt includes non-ASCII text so the cache's UTF-8 round trip is
// visible in a plain run.
const demoPrompt = "Hello, how are you? 你好吗？😊"

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := app.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("load .env")
	}

	cfg, err := app.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Debug().
		Str("version", app.BuildVersion).
		Str("commit", app.BuildCommit).
		Str("date", app.BuildDate).
		Str("provider", cfg.Provider).
		Str("logDir", cfg.LogDir).
		Str("cacheFile", cfg.CachePath).
		Msg("starting goprompt")

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	// Ask the same question twice; with caching on, the second answer is
	// served from disk without touching the provider.
	fmt.Println("Making call...")
	first := a.Respond(ctx, demoPrompt, true)
	fmt.Printf("Response 1: %s\n", first)

	fmt.Println("\nMaking second call (should use cache if enabled)...")
	second := a.Respond(ctx, demoPrompt, true)
	fmt.Printf("Response 2: %s\n", second)

	fmt.Printf("\nCheck log file: %s\n", a.LogPath())
	fmt.Printf("Check cache file: %s\n", a.Config.CachePath)
	return nil
}
