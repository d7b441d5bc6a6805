package respond

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/goprompt/internal/cache"
	"github.com/hyperifyio/goprompt/internal/llmlog"
)

type fakeClient struct {
	reply string
	err   error
	calls int
	last  string
}

func (f *fakeClient) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.last = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Name() string { return "fake" }

func tempStore(t *testing.T) *cache.Store {
	t.Helper()
	return &cache.Store{Path: filepath.Join(t.TempDir(), "llm_cache.json")}
}

func TestDoMissCallsModelAndStores(t *testing.T) {
	client := &fakeClient{reply: "pong"}
	store := tempStore(t)
	r := &Responder{Client: client, Cache: store}

	got := r.Do(context.Background(), "ping", true)
	if got.Text != "pong" || got.FromCache || got.Recovered {
		t.Fatalf("Do = %+v, want fresh pong", got)
	}
	if client.calls != 1 || client.last != "ping" {
		t.Fatalf("client saw %d calls, last %q; want one call with the prompt", client.calls, client.last)
	}

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m["ping"] != "pong" {
		t.Fatalf("cache = %v, want ping→pong persisted", m)
	}
}

func TestDoHitSkipsModel(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(map[string]string{"ping": "memoized"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	client := &fakeClient{reply: "fresh"}
	r := &Responder{Client: client, Cache: store}

	got := r.Do(context.Background(), "ping", true)
	if got.Text != "memoized" || !got.FromCache {
		t.Fatalf("Do = %+v, want cached reply", got)
	}
	if client.calls != 0 {
		t.Fatalf("client called %d times on a cache hit", client.calls)
	}
}

func TestRespondCacheDisabled(t *testing.T) {
	client := &fakeClient{reply: "pong"}
	store := tempStore(t)
	r := &Responder{Client: client, Cache: store}

	if got := r.Respond(context.Background(), "ping", false); got != "pong" {
		t.Fatalf("Respond = %q, want pong", got)
	}
	if _, err := os.Stat(store.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cache file written despite useCache=false: %v", err)
	}

	// An already-memoized prompt still goes to the model when caching is off,
	// and the file keeps its exact bytes.
	if err := store.Save(map[string]string{"ping": "stored"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	before, err := os.ReadFile(store.Path)
	if err != nil {
		t.Fatalf("read seeded cache: %v", err)
	}
	if got := r.Respond(context.Background(), "ping", false); got != "pong" {
		t.Fatalf("Respond = %q, want the model's reply, not the stored one", got)
	}
	if client.calls != 2 {
		t.Fatalf("client called %d times, want 2 when caching is off", client.calls)
	}
	after, err := os.ReadFile(store.Path)
	if err != nil {
		t.Fatalf("read cache after bypass: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("cache file changed despite useCache=false:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestRespondRemoteFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	store := tempStore(t)
	r := &Responder{Client: client, Cache: store}

	got := r.Do(context.Background(), "ping", true)
	if got.Text != "Error calling LLM: boom" {
		t.Fatalf("Text = %q, want in-band error string", got.Text)
	}
	if !got.Recovered || got.FromCache {
		t.Fatalf("Do = %+v, want recovered, uncached", got)
	}
	if _, err := os.Stat(store.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("recovered failure must not be cached: %v", err)
	}

	// The failure string is not memoized, so a healthy model answers next.
	client.err = nil
	client.reply = "pong"
	if got := r.Respond(context.Background(), "ping", true); got != "pong" {
		t.Fatalf("Respond after recovery = %q, want pong", got)
	}
}

func TestDoCorruptCacheRecovers(t *testing.T) {
	store := tempStore(t)
	if err := os.WriteFile(store.Path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt cache: %v", err)
	}
	var logBuf bytes.Buffer
	client := &fakeClient{reply: "pong"}
	r := &Responder{Client: client, Cache: store, Log: llmlog.New(&logBuf, nil)}

	got := r.Do(context.Background(), "ping", true)
	if got.Text != "pong" || got.FromCache {
		t.Fatalf("Do = %+v, want fresh reply despite corrupt cache", got)
	}
	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}
	if !strings.Contains(logBuf.String(), "Failed to load cache:") ||
		!strings.Contains(logBuf.String(), "starting with empty cache") {
		t.Fatalf("log %q missing load-failure warning", logBuf.String())
	}

	// The corrupt file is replaced by a fresh cache holding the new entry.
	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load after recovery: %v", err)
	}
	if m["ping"] != "pong" {
		t.Fatalf("cache = %v, want rebuilt with ping→pong", m)
	}
}

// A cache file holding the JSON document null must recover the same way
// corrupt content does.
func TestDoNullCacheRecovers(t *testing.T) {
	store := tempStore(t)
	if err := os.WriteFile(store.Path, []byte("null"), 0o644); err != nil {
		t.Fatalf("write null cache: %v", err)
	}
	var logBuf bytes.Buffer
	client := &fakeClient{reply: "pong"}
	r := &Responder{Client: client, Cache: store, Log: llmlog.New(&logBuf, nil)}

	got := r.Do(context.Background(), "ping", true)
	if got.Text != "pong" || got.FromCache || got.Recovered {
		t.Fatalf("Do = %+v, want fresh reply despite null cache", got)
	}
	if !strings.Contains(logBuf.String(), "Failed to load cache:") ||
		!strings.Contains(logBuf.String(), "starting with empty cache") {
		t.Fatalf("log %q missing load-failure warning", logBuf.String())
	}

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load after recovery: %v", err)
	}
	if m["ping"] != "pong" {
		t.Fatalf("cache = %v, want rebuilt with ping→pong", m)
	}
}

func TestDoEmptyReplyIsCached(t *testing.T) {
	client := &fakeClient{reply: ""}
	store := tempStore(t)
	r := &Responder{Client: client, Cache: store}

	first := r.Do(context.Background(), "ping", true)
	if first.Text != "" || first.FromCache || first.Recovered {
		t.Fatalf("first Do = %+v, want fresh empty reply", first)
	}
	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, ok := m["ping"]; !ok || v != "" {
		t.Fatalf("cache = %v, want the empty string stored under the prompt", m)
	}

	second := r.Do(context.Background(), "ping", true)
	if second.Text != "" || !second.FromCache {
		t.Fatalf("second Do = %+v, want cached empty reply", second)
	}
	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}
}

func TestRespondNonASCIIRoundTrip(t *testing.T) {
	const reply = "我很好，谢谢！😊"
	store := tempStore(t)
	client := &fakeClient{reply: reply}
	r := &Responder{Client: client, Cache: store}

	if got := r.Respond(context.Background(), "你好吗？", true); got != reply {
		t.Fatalf("first Respond = %q, want %q", got, reply)
	}
	second := r.Do(context.Background(), "你好吗？", true)
	if second.Text != reply || !second.FromCache {
		t.Fatalf("second Do = %+v, want cached identical text", second)
	}
	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}

	raw, err := os.ReadFile(store.Path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if !strings.Contains(string(raw), reply) {
		t.Fatalf("cache file should store raw UTF-8, got %q", string(raw))
	}
}

func TestDoPreservesOtherEntries(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(map[string]string{"earlier": "kept"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	r := &Responder{Client: &fakeClient{reply: "new"}, Cache: store}

	r.Do(context.Background(), "later", true)

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m["earlier"] != "kept" || m["later"] != "new" {
		t.Fatalf("cache = %v, want both entries", m)
	}
}

func TestDoLogsInteraction(t *testing.T) {
	var logBuf bytes.Buffer
	store := tempStore(t)
	r := &Responder{
		Client: &fakeClient{reply: "pong"},
		Cache:  store,
		Log:    llmlog.New(&logBuf, nil),
	}

	r.Do(context.Background(), "ping", true)
	r.Do(context.Background(), "ping", true)

	log := logBuf.String()
	for _, want := range []string{
		" - INFO - PROMPT: ping",
		" - INFO - RESPONSE (API): pong",
		" - INFO - RESPONSE (cached): pong",
	} {
		if !strings.Contains(log, want) {
			t.Fatalf("log %q missing %q", log, want)
		}
	}
}

func TestRespondWithoutCollaborators(t *testing.T) {
	r := &Responder{Client: &fakeClient{reply: "pong"}}
	if got := r.Respond(context.Background(), "ping", true); got != "pong" {
		t.Fatalf("Respond = %q, want pong with nil cache and log", got)
	}

	bare := &Responder{}
	got := bare.Do(context.Background(), "ping", true)
	if !got.Recovered || !strings.HasPrefix(got.Text, "Error calling LLM: ") {
		t.Fatalf("Do = %+v, want recovered error string without a client", got)
	}
}
