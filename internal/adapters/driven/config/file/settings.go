// Package file is a file-based implementation of driven.SettingsStore
// using TOML. Settings are stored in a TOML file within the findex
// config directory; the engine consults them but does not own them.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/lumafile/findex-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

type settings struct {
	Indexing indexingSettings `toml:"indexing"`
}

type indexingSettings struct {
	// Enabled is a pointer so an absent key keeps the default (on).
	Enabled *bool `toml:"enabled"`
}

// SettingsStore reads and writes findex settings.
type SettingsStore struct {
	mu       sync.RWMutex
	dir      string
	filePath string
	data     settings
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.findex/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".findex")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	s := &SettingsStore{
		dir:      configDir,
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Dir returns the config directory. The index snapshot lives beside
// the settings file.
func (s *SettingsStore) Dir() string {
	return s.dir
}

// IndexingEnabled reports whether background indexing is enabled.
// Defaults to true when the key is absent.
func (s *SettingsStore) IndexingEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.Indexing.Enabled == nil {
		return true
	}
	return *s.data.Indexing.Enabled
}

// SetIndexingEnabled persists the indexing flag.
func (s *SettingsStore) SetIndexingEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Indexing.Enabled = &enabled
	return s.save()
}

// load reads the settings file into memory.
func (s *SettingsStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, &s.data)
}

// save writes the in-memory settings to disk. Caller must hold s.mu.
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o600)
}
