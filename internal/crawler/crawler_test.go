package crawler

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumafile/findex-cli/internal/core/domain"
)

// cappedSink collects entries up to a ceiling, mirroring the index
// store's insertion contract.
type cappedSink struct {
	max     int
	entries []domain.IndexEntry
}

func (s *cappedSink) Insert(entry domain.IndexEntry) bool {
	if s.Full() {
		return false
	}
	s.entries = append(s.entries, entry)
	return true
}

func (s *cappedSink) Full() bool {
	return len(s.entries) >= s.max
}

func (s *cappedSink) paths() []string {
	paths := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		paths = append(paths, entry.Path)
	}
	return paths
}

// writeTree creates files (value "f") and directories (value "d")
// under root.
func writeTree(t *testing.T, root string, nodes map[string]string) {
	t.Helper()
	for rel, kind := range nodes {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if kind == "d" {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestScanDirectory(t *testing.T) {
	t.Run("indexes files recursively", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"a.txt":          "f",
			"docs/b.txt":     "f",
			"docs/sub/c.txt": "f",
		})

		sink := &cappedSink{max: domain.MaxIndexSize}
		New().ScanDirectory(context.Background(), root, sink)

		require.Len(t, sink.entries, 3)
		assert.Contains(t, sink.paths(), filepath.Join(root, "a.txt"))
		assert.Contains(t, sink.paths(), filepath.Join(root, "docs", "sub", "c.txt"))
	})

	t.Run("records file metadata", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"a.txt": "f"})

		sink := &cappedSink{max: domain.MaxIndexSize}
		New().ScanDirectory(context.Background(), root, sink)

		require.Len(t, sink.entries, 1)
		entry := sink.entries[0]
		assert.Equal(t, "a.txt", entry.Name)
		assert.True(t, entry.IsFile)
		assert.False(t, entry.IsDirectory)
		assert.Equal(t, int64(1), entry.Size)
		assert.False(t, entry.Modified.IsZero())
	})

	t.Run("skips excluded directories and files", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"keep.txt":            "f",
			".git/config":         "f",
			"node_modules/x/y.js": "f",
			"project/.DS_Store":   "f",
			"project/report.pdf":  "f",
			"project/Thumbs.db":   "f",
		})

		sink := &cappedSink{max: domain.MaxIndexSize}
		New().ScanDirectory(context.Background(), root, sink)

		paths := sink.paths()
		require.Len(t, paths, 2)
		assert.Contains(t, paths, filepath.Join(root, "keep.txt"))
		assert.Contains(t, paths, filepath.Join(root, "project", "report.pdf"))
	})

	t.Run("stops at the entry ceiling and keeps earlier entries", func(t *testing.T) {
		root := t.TempDir()
		nodes := map[string]string{}
		for i := 0; i < 50; i++ {
			nodes[filepath.Join("dir", "file"+string(rune('a'+i%26))+".txt")] = "f"
		}
		for i := 0; i < 30; i++ {
			nodes["top"+string(rune('a'+i%26))+string(rune('0'+i/26))+".txt"] = "f"
		}
		writeTree(t, root, nodes)

		sink := &cappedSink{max: 5}
		New().ScanDirectory(context.Background(), root, sink)

		assert.Len(t, sink.entries, 5)
	})

	t.Run("cancelled context stops the walk but rolls nothing back", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"a.txt": "f", "b.txt": "f"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sink := &cappedSink{max: domain.MaxIndexSize}
		sink.entries = append(sink.entries, domain.IndexEntry{Path: "/already/indexed"})
		New().ScanDirectory(ctx, root, sink)

		// Nothing new was added, nothing existing was removed.
		assert.Equal(t, []string{"/already/indexed"}, sink.paths())
	})

	t.Run("one failing stat does not abort the batch", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"a.txt": "f",
			"b.txt": "f",
			"c.txt": "f",
		})

		orig := statEntry
		statEntry = func(entry os.DirEntry) (fs.FileInfo, error) {
			if entry.Name() == "b.txt" {
				return nil, os.ErrPermission
			}
			return entry.Info()
		}
		t.Cleanup(func() { statEntry = orig })

		sink := &cappedSink{max: domain.MaxIndexSize}
		New().ScanDirectory(context.Background(), root, sink)

		paths := sink.paths()
		require.Len(t, paths, 2)
		assert.Contains(t, paths, filepath.Join(root, "a.txt"))
		assert.Contains(t, paths, filepath.Join(root, "c.txt"))
		assert.NotContains(t, paths, filepath.Join(root, "b.txt"))
	})

	t.Run("unreadable directory is treated as empty", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"real.txt": "f"})

		sink := &cappedSink{max: domain.MaxIndexSize}
		crawler := New()
		crawler.ScanDirectory(context.Background(), filepath.Join(root, "no-such-dir"), sink)
		assert.Empty(t, sink.entries)

		// A file path cannot be listed either; same silent outcome.
		crawler.ScanDirectory(context.Background(), filepath.Join(root, "real.txt"), sink)
		assert.Empty(t, sink.entries)
	})
}

func TestCrawl(t *testing.T) {
	t.Run("walks every location in order", func(t *testing.T) {
		first := t.TempDir()
		second := t.TempDir()
		writeTree(t, first, map[string]string{"one.txt": "f"})
		writeTree(t, second, map[string]string{"two.txt": "f"})

		sink := &cappedSink{max: domain.MaxIndexSize}
		New().Crawl(context.Background(), []string{first, second}, sink)

		require.Len(t, sink.entries, 2)
		assert.Equal(t, filepath.Join(first, "one.txt"), sink.entries[0].Path)
		assert.Equal(t, filepath.Join(second, "two.txt"), sink.entries[1].Path)
	})

	t.Run("skips remaining locations once full", func(t *testing.T) {
		first := t.TempDir()
		second := t.TempDir()
		writeTree(t, first, map[string]string{"one.txt": "f"})
		writeTree(t, second, map[string]string{"two.txt": "f"})

		sink := &cappedSink{max: 1}
		New().Crawl(context.Background(), []string{first, second}, sink)

		assert.Len(t, sink.entries, 1)
	})
}

func TestEstimateTotal(t *testing.T) {
	t.Run("fixed average per accessible location, zero otherwise", func(t *testing.T) {
		accessible := t.TempDir()

		total := EstimateTotal([]string{accessible, "/no/such/location"})

		assert.Equal(t, filesPerLocation, total)
	})

	t.Run("empty location list", func(t *testing.T) {
		assert.Zero(t, EstimateTotal(nil))
	})
}
