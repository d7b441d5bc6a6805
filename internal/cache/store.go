package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultPath is the cache location used when none is configured.
const DefaultPath = "llm_cache.json"

// Store persists a prompt→response mapping as a single JSON object file.
// Keys are exact prompt strings with no normalization. The whole mapping is
// loaded before each read and rewritten on each save; there is no eviction
// and no locking, so concurrent writers can lose updates. Callers narrow the
// window by reloading immediately before saving.
type Store struct {
	Path string
}

// Load reads the full mapping from disk. A missing file yields an empty
// mapping and no error. A file that cannot be read or parsed yields an empty
// mapping together with the error so callers can log it and continue.
func (s *Store) Load() (map[string]string, error) {
	if s == nil || s.Path == "" {
		return map[string]string{}, errors.New("cache path not configured")
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return map[string]string{}, fmt.Errorf("read cache: %w", err)
	}
	m := make(map[string]string)
	if err := json.Unmarshal(b, &m); err != nil {
		// Unmarshal may leave partial entries behind on failure; hand back a
		// clean mapping so callers start from genuinely empty state.
		return map[string]string{}, fmt.Errorf("parse cache: %w", err)
	}
	if m == nil {
		// A JSON null document resets the destination map to nil without an
		// Unmarshal error. Treat it like any other unusable content; callers
		// must always receive a mapping they can write into.
		return map[string]string{}, errors.New("parse cache: null is not a mapping")
	}
	return m, nil
}

// Save rewrites the whole mapping by overwriting the file. Output is indented
// with four spaces and HTML escaping is off so non-ASCII response text is
// stored as raw UTF-8 rather than \u escapes.
func (s *Store) Save(m map[string]string) error {
	if s == nil || s.Path == "" {
		return errors.New("cache path not configured")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
