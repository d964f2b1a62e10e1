// Package storage persists the till's state as human-inspectable JSON
// documents under a data directory, one file per key. Every mutation
// rewrites the affected document wholesale; there is no write-behind
// buffering, so a completed write is durable the moment the call returns.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMalformed marks a stored document that no longer parses. Typed stores
// treat it as "start empty" rather than refusing to boot.
var ErrMalformed = errors.New("malformed stored value")

// KV is a file-backed key-value store with string keys and JSON values.
type KV struct {
	dir string
}

// Open prepares a KV store rooted at dir, creating the directory if needed.
func Open(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &KV{dir: dir}, nil
}

func (kv *KV) path(key string) string {
	return filepath.Join(kv.dir, key+".json")
}

// Get unmarshals the value stored under key into v. It returns false when
// the key has never been written. A document that exists but fails to parse
// returns an error wrapping ErrMalformed.
func (kv *KV) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(kv.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// Put replaces the value stored under key. The document is written to a
// temp file and renamed into place so a crash mid-write leaves the previous
// value intact.
func (kv *KV) Put(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	tmp := kv.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, kv.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func isMalformed(err error) bool { return errors.Is(err, ErrMalformed) }

// Delete removes the document stored under key. Missing keys are a no-op.
func (kv *KV) Delete(key string) error {
	err := os.Remove(kv.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
