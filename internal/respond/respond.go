// Package respond implements the cached, logged question-answer flow around
// a hosted language model.
package respond

import (
	"context"
	"errors"

	"github.com/hyperifyio/goprompt/internal/cache"
	"github.com/hyperifyio/goprompt/internal/llm"
	"github.com/hyperifyio/goprompt/internal/llmlog"
)

// Responder answers prompts through a hosted model, memoizing replies in an
// on-disk cache and journaling every interaction. Collaborators are plain
// fields so callers wire exactly what they need; Cache and Log are optional
// and skipped when nil.
type Responder struct {
	Client llm.Client
	Cache  *cache.Store
	Log    *llmlog.Logger
}

// Result pairs the reply text with how it was produced.
type Result struct {
	// Text is the reply handed to the caller, including the in-band error
	// sentence when Recovered is set.
	Text string
	// FromCache marks answers served without a remote call.
	FromCache bool
	// Recovered marks remote failures folded into the returned text.
	Recovered bool
}

// Respond answers prompt, consulting the cache when useCache is set. It
// never fails: remote errors come back inside the returned string and local
// I/O trouble is logged and absorbed.
func (r *Responder) Respond(ctx context.Context, prompt string, useCache bool) string {
	return r.Do(ctx, prompt, useCache).Text
}

// Do is Respond with provenance attached, for callers that need to tell a
// cache hit from a fresh or recovered answer.
func (r *Responder) Do(ctx context.Context, prompt string, useCache bool) Result {
	r.Log.Info("PROMPT: " + prompt)

	if useCache && r.Cache != nil {
		memo, err := r.Cache.Load()
		if err != nil {
			r.Log.Warnf("Failed to load cache: %v, starting with empty cache", err)
		}
		if text, ok := memo[prompt]; ok {
			r.Log.Info("RESPONSE (cached): " + text)
			return Result{Text: text, FromCache: true}
		}
	}

	text, err := r.call(ctx, prompt)
	if err != nil {
		r.Log.Errorf("Error calling LLM API: %v", err)
		return Result{Text: "Error calling LLM: " + err.Error(), Recovered: true}
	}
	r.Log.Info("RESPONSE (API): " + text)

	if useCache && r.Cache != nil {
		// Reload right before writing so a concurrent run's entries survive;
		// without locking the window only narrows, it never closes.
		memo, err := r.Cache.Load()
		if err != nil {
			r.Log.Warnf("Failed to reload cache before saving: %v", err)
		}
		memo[prompt] = text
		if err := r.Cache.Save(memo); err != nil {
			r.Log.Errorf("Failed to save cache: %v", err)
		}
	}
	return Result{Text: text}
}

func (r *Responder) call(ctx context.Context, prompt string) (string, error) {
	if r.Client == nil {
		return "", errors.New("no llm client configured")
	}
	return r.Client.Generate(ctx, prompt)
}
