package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore(t *testing.T) {
	t.Run("indexing defaults to enabled", func(t *testing.T) {
		store, err := NewSettingsStore(t.TempDir())

		require.NoError(t, err)
		assert.True(t, store.IndexingEnabled())
	})

	t.Run("persists the indexing flag", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewSettingsStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.SetIndexingEnabled(false))

		reloaded, err := NewSettingsStore(dir)
		require.NoError(t, err)
		assert.False(t, reloaded.IndexingEnabled())
	})

	t.Run("reads an existing settings file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "config.toml"),
			[]byte("[indexing]\nenabled = false\n"),
			0o600,
		))

		store, err := NewSettingsStore(dir)

		require.NoError(t, err)
		assert.False(t, store.IndexingEnabled())
	})

	t.Run("creates a missing config directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "config")

		store, err := NewSettingsStore(dir)

		require.NoError(t, err)
		assert.Equal(t, dir, store.Dir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
