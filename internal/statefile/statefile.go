// Package statefile persists client-side store state across sessions as
// namespaced JSON documents, one file per namespace.
package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Storage persists a store's state under a fixed namespace.
type Storage interface {
	// Load unmarshals the persisted state into v. Returns false with a nil
	// error when the namespace has never been saved.
	Load(namespace string, v any) (bool, error)

	// Save marshals v and persists it under the namespace, replacing any
	// previous state.
	Save(namespace string, v any) error

	// Clear removes the persisted state for the namespace. No-op if absent.
	Clear(namespace string) error
}

// FileStorage stores each namespace as <dir>/<namespace>.json.
type FileStorage struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStorage creates a file-backed storage rooted at dir.
func NewFileStorage(dir string, logger zerolog.Logger) *FileStorage {
	return &FileStorage{
		dir:    dir,
		logger: logger.With().Str("component", "statefile").Logger(),
	}
}

func (s *FileStorage) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

// Load implements Storage.
func (s *FileStorage) Load(namespace string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(namespace))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read state %s: %w", namespace, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt state file is treated as absent rather than fatal so a
		// bad write can never brick the storefront.
		s.logger.Warn().
			Str("namespace", namespace).
			Err(err).
			Msg("discarding corrupt state file")
		return false, nil
	}

	return true, nil
}

// Save implements Storage.
func (s *FileStorage) Save(namespace string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state %s: %w", namespace, err)
	}

	if err := os.WriteFile(s.path(namespace), data, 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", namespace, err)
	}

	return nil
}

// Clear implements Storage.
func (s *FileStorage) Clear(namespace string) error {
	err := os.Remove(s.path(namespace))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear state %s: %w", namespace, err)
	}
	return nil
}

// MemoryStorage is an in-memory Storage for tests and ephemeral sessions.
type MemoryStorage struct {
	data map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Load implements Storage.
func (s *MemoryStorage) Load(namespace string, v any) (bool, error) {
	data, ok := s.data[namespace]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal state %s: %w", namespace, err)
	}
	return true, nil
}

// Save implements Storage.
func (s *MemoryStorage) Save(namespace string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal state %s: %w", namespace, err)
	}
	s.data[namespace] = data
	return nil
}

// Clear implements Storage.
func (s *MemoryStorage) Clear(namespace string) error {
	delete(s.data, namespace)
	return nil
}
