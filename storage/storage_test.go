package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodhub/foodhub-go/core"
)

// storeFactory lets the contract tests run against every implementation.
type storeFactory func(t *testing.T) core.Storage

func storeImplementations() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) core.Storage {
			return NewMemoryStore()
		},
		"file": func(t *testing.T) core.Storage {
			store, err := NewFileStore(t.TempDir())
			require.NoError(t, err)
			return store
		},
	}
}

func TestStorageContract(t *testing.T) {
	for name, factory := range storeImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			t.Run("absent key reads empty", func(t *testing.T) {
				value, err := store.Get(ctx, "missing")
				require.NoError(t, err)
				assert.Empty(t, value)

				exists, err := store.Exists(ctx, "missing")
				require.NoError(t, err)
				assert.False(t, exists)
			})

			t.Run("set then get", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, core.StorageKeyToken, "tok-1", 0))

				value, err := store.Get(ctx, core.StorageKeyToken)
				require.NoError(t, err)
				assert.Equal(t, "tok-1", value)

				exists, err := store.Exists(ctx, core.StorageKeyToken)
				require.NoError(t, err)
				assert.True(t, exists)
			})

			t.Run("overwrite", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, core.StorageKeyToken, "tok-2", 0))
				value, err := store.Get(ctx, core.StorageKeyToken)
				require.NoError(t, err)
				assert.Equal(t, "tok-2", value)
			})

			t.Run("delete", func(t *testing.T) {
				require.NoError(t, store.Delete(ctx, core.StorageKeyToken))

				value, err := store.Get(ctx, core.StorageKeyToken)
				require.NoError(t, err)
				assert.Empty(t, value)
			})

			t.Run("delete absent is a no-op", func(t *testing.T) {
				assert.NoError(t, store.Delete(ctx, "never-set"))
			})

			t.Run("expired entry reads empty", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "ttl-key", "v", time.Nanosecond))
				time.Sleep(5 * time.Millisecond)

				value, err := store.Get(ctx, "ttl-key")
				require.NoError(t, err)
				assert.Empty(t, value)

				exists, err := store.Exists(ctx, "ttl-key")
				require.NoError(t, err)
				assert.False(t, exists)
			})
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, core.StorageKeyCart, `[{"id":"m1"}]`, 0))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, core.StorageKeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"m1"}]`, value)
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{torn write"), 0600))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	value, err := store.Get(ctx, core.StorageKeyToken)
	require.NoError(t, err)
	assert.Empty(t, value)

	// The store stays usable: a write replaces the corrupt document.
	require.NoError(t, store.Set(ctx, core.StorageKeyToken, "tok", 0))
	value, err = store.Get(ctx, core.StorageKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", value)
}

func TestFileStore_RequiresDirectory(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
	assert.True(t, core.IsConfigurationError(err))
}

func TestFileStore_DirectoryPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "foodhub")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}
