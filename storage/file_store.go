package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/foodhub/foodhub-go/core"
)

// FileStore is a file-backed implementation of core.Storage. All keys live
// in a single JSON document under the store directory (~/.foodhub by
// default), written atomically via rename so a crash mid-write never leaves
// a torn file. This is the durable store a CLI or desktop client uses where
// a browser would use local storage.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger core.Logger
}

type fileEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

const storeFileName = "state.json"

// NewFileStore creates a file store rooted at dir, creating the directory
// if needed. The directory is user-only (0700): it holds the bearer token.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, &core.ClientError{
			Op:      "storage.NewFileStore",
			Kind:    core.ErrorKindConfig,
			Message: "storage directory is required",
			Err:     core.ErrMissingConfiguration,
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{
		path:   filepath.Join(dir, storeFileName),
		logger: &core.NoOpLogger{},
	}, nil
}

// SetLogger configures the logger for this store
func (f *FileStore) SetLogger(logger core.Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// Get retrieves a value, returning "" for absent or expired keys
func (f *FileStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return "", err
	}

	entry, exists := entries[key]
	if !exists {
		return "", nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		return "", nil
	}
	return entry.Value, nil
}

// Set stores a value with optional TTL
func (f *FileStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return err
	}

	entry := fileEntry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	entries[key] = entry

	f.logger.Debug("Storage set", map[string]interface{}{
		"operation":  "storage_set",
		"key":        key,
		"value_size": len(value),
	})

	return f.save(entries)
}

// Delete removes a value
func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return err
	}

	_, existed := entries[key]
	if !existed {
		return nil
	}
	delete(entries, key)

	f.logger.Debug("Storage delete", map[string]interface{}{
		"operation": "storage_delete",
		"key":       key,
	})

	return f.save(entries)
}

// Exists checks if a key exists
func (f *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	value, err := f.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return value != "", nil
}

// load reads the backing file. A missing file is an empty store.
func (f *FileStore) load() (map[string]fileEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]fileEntry), nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	entries := make(map[string]fileEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt file is treated as empty rather than wedging every
		// store operation behind an unrecoverable error.
		f.logger.Warn("Storage file corrupt, starting empty", map[string]interface{}{
			"operation": "storage_load",
			"path":      f.path,
			"error":     err.Error(),
		})
		return make(map[string]fileEntry), nil
	}
	return entries, nil
}

// save writes the full document atomically.
func (f *FileStore) save(entries map[string]fileEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal storage file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
