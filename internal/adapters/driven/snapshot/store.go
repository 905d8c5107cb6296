// Package snapshot is a file-based implementation of
// driven.SnapshotStore. One JSON document per installation holds the
// serialized index and the last successful build time. Saves are
// atomic (temp sibling plus rename) so a process killed mid-write
// never corrupts the previous snapshot; loads tolerate missing files,
// corrupt documents and legacy entry shapes.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lumafile/findex-cli/internal/core/domain"
	"github.com/lumafile/findex-cli/internal/core/ports/driven"
	"github.com/lumafile/findex-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

const snapshotVersion = 1

// renameFile is swapped out in tests to simulate rename failures.
var renameFile = os.Rename

// Store persists the index snapshot to a single JSON file.
type Store struct {
	path string
}

// NewStore creates a snapshot store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// snapshotFile is the on-disk document shape. Index entries and the
// timestamp are kept raw on read so foreign shapes can be normalised
// per entry instead of failing the whole load.
type snapshotFile struct {
	Version       int             `json:"version"`
	Index         json.RawMessage `json:"index"`
	LastIndexTime any             `json:"lastIndexTime"`
}

// Load reads the snapshot. A missing file is the normal first-run
// case. A corrupt document is treated as empty; malformed entries are
// skipped individually.
func (s *Store) Load(_ context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.Snapshot{}, nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("snapshot %s is corrupt, treating as empty: %v", s.path, err)
		return domain.Snapshot{Exists: true}, nil
	}

	snap := domain.Snapshot{
		Exists:  true,
		Entries: parseEntries(file.Index),
	}
	if last := domain.ParseTimestamp(file.LastIndexTime); !last.IsZero() {
		snap.LastIndexTime = &last
	}
	return snap, nil
}

// parseEntries normalises the raw index list. A value that is not a
// list yields no entries; each element may be a [path, entry] pair or
// a flat object, and invalid elements are dropped.
func parseEntries(raw json.RawMessage) []domain.IndexEntry {
	if len(raw) == 0 {
		return nil
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("snapshot index is not a list, ignoring")
		return nil
	}

	entries := make([]domain.IndexEntry, 0, len(items))
	for _, item := range items {
		if entry, ok := domain.ParseEntry(item); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// wireEntry is the pair shape written on save.
type wireEntry struct {
	Name        string `json:"name"`
	IsDirectory bool   `json:"isDirectory"`
	IsFile      bool   `json:"isFile"`
	Size        int64  `json:"size"`
	Modified    int64  `json:"modified"`
}

// Save writes the snapshot atomically: marshal to a temporary sibling
// file, then rename it over the target.
func (s *Store) Save(_ context.Context, snap domain.Snapshot) error {
	index := make([]any, 0, len(snap.Entries))
	for _, entry := range snap.Entries {
		var modified int64
		if !entry.Modified.IsZero() {
			modified = entry.Modified.UnixMilli()
		}
		index = append(index, []any{entry.Path, wireEntry{
			Name:        entry.Name,
			IsDirectory: entry.IsDirectory,
			IsFile:      entry.IsFile,
			Size:        entry.Size,
			Modified:    modified,
		}})
	}

	var lastIndexTime any
	if snap.LastIndexTime != nil {
		lastIndexTime = snap.LastIndexTime.UnixMilli()
	}

	data, err := json.Marshal(map[string]any{
		"version":       snapshotVersion,
		"index":         index,
		"lastIndexTime": lastIndexTime,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := fmt.Sprintf("%s.%d.tmp", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot temp: %w", err)
	}

	return s.commit(tmp)
}

// commit moves the temporary file over the target. When rename fails
// because the target exists, the target is unlinked and the rename
// retried once; a permission-class error, a failed retry or any other
// rename failure (e.g. cross-device) falls back to copying. The
// temporary file never survives the fallback path.
func (s *Store) commit(tmp string) error {
	err := renameFile(tmp, s.path)
	if err == nil {
		return nil
	}

	if os.IsExist(err) {
		if rmErr := os.Remove(s.path); rmErr == nil {
			if retryErr := renameFile(tmp, s.path); retryErr == nil {
				return nil
			}
		}
	}

	return s.copyOver(tmp)
}

// copyOver copies the temporary file over the target and always
// removes the temporary file, even when the copy itself fails.
func (s *Store) copyOver(tmp string) error {
	defer func() {
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove snapshot temp %s: %v", tmp, err)
		}
	}()

	src, err := os.Open(tmp)
	if err != nil {
		return fmt.Errorf("open snapshot temp: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy snapshot: %w", err)
	}
	return dst.Close()
}

// Delete removes the snapshot file. A missing file is not an error.
func (s *Store) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
