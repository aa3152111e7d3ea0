package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the app's records as JSON values under named keys in a
// single local file, mirroring the per-browser storage the web client
// keeps its data in. Reads of a missing or corrupt value behave as an
// empty collection, never as an error.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: filepath.Join(dataDir, "store.json")}, nil
}

// Get decodes the value stored under key into v. If the file, the key,
// or the stored JSON is unusable, v is left untouched.
func (s *Store) Get(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAll()
	raw, ok := records[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		// Corrupt value reads as empty
		return nil
	}
	return nil
}

// Set persists v under key immediately.
func (s *Store) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	records := s.readAll()
	records[key] = raw
	return s.writeAll(records)
}

// Delete removes the given keys.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAll()
	for _, key := range keys {
		delete(records, key)
	}
	return s.writeAll(records)
}

func (s *Store) readAll() map[string]json.RawMessage {
	records := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return records
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return make(map[string]json.RawMessage)
	}
	return records
}

func (s *Store) writeAll(records map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return os.Rename(tmp, s.path)
}
