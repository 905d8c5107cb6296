package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntry_Shapes(t *testing.T) {
	t.Run("accepts pair shape", func(t *testing.T) {
		entry, ok := ParseEntry([]any{"/home/user/notes.txt", map[string]any{
			"name":        "notes.txt",
			"isDirectory": false,
			"isFile":      true,
			"size":        float64(42),
		}})

		require.True(t, ok)
		assert.Equal(t, "/home/user/notes.txt", entry.Path)
		assert.Equal(t, "notes.txt", entry.Name)
		assert.True(t, entry.IsFile)
		assert.False(t, entry.IsDirectory)
		assert.Equal(t, int64(42), entry.Size)
	})

	t.Run("accepts flat object shape", func(t *testing.T) {
		entry, ok := ParseEntry(map[string]any{
			"path": "/home/user/docs",
			"name": "docs",
		})

		require.True(t, ok)
		assert.Equal(t, "/home/user/docs", entry.Path)
		assert.Equal(t, "docs", entry.Name)
	})

	t.Run("drops entry with empty path", func(t *testing.T) {
		_, ok := ParseEntry(map[string]any{"name": "orphan"})
		assert.False(t, ok)
	})

	t.Run("drops entry with non-string path", func(t *testing.T) {
		_, ok := ParseEntry([]any{42, map[string]any{}})
		assert.False(t, ok)
	})

	t.Run("drops pair with wrong arity", func(t *testing.T) {
		_, ok := ParseEntry([]any{"/only/path"})
		assert.False(t, ok)
	})

	t.Run("drops unrecognised shape", func(t *testing.T) {
		_, ok := ParseEntry("just a string")
		assert.False(t, ok)
	})
}

func TestParseEntry_Normalisation(t *testing.T) {
	t.Run("defaults name from path", func(t *testing.T) {
		entry, ok := ParseEntry(map[string]any{"path": "/srv/data/report.pdf"})

		require.True(t, ok)
		assert.Equal(t, "report.pdf", entry.Name)
	})

	t.Run("defaults name when source value is not a string", func(t *testing.T) {
		entry, ok := ParseEntry(map[string]any{
			"path": "/srv/data/report.pdf",
			"name": 7,
		})

		require.True(t, ok)
		assert.Equal(t, "report.pdf", entry.Name)
	})

	t.Run("isDirectory is false unless literally true", func(t *testing.T) {
		for _, v := range []any{"true", 1, nil, float64(1)} {
			entry, ok := ParseEntry(map[string]any{"path": "/x", "isDirectory": v})
			require.True(t, ok)
			assert.False(t, entry.IsDirectory)
		}

		entry, ok := ParseEntry(map[string]any{"path": "/x", "isDirectory": true})
		require.True(t, ok)
		assert.True(t, entry.IsDirectory)
	})

	t.Run("isFile defaults to complement of isDirectory", func(t *testing.T) {
		entry, ok := ParseEntry(map[string]any{
			"path":        "/x",
			"isDirectory": true,
			"isFile":      "yes",
		})

		require.True(t, ok)
		assert.False(t, entry.IsFile)

		entry, ok = ParseEntry(map[string]any{"path": "/y"})
		require.True(t, ok)
		assert.True(t, entry.IsFile)
	})

	t.Run("size defaults to zero for non-numbers", func(t *testing.T) {
		for _, v := range []any{"big", nil, true, float64(-10)} {
			entry, ok := ParseEntry(map[string]any{"path": "/x", "size": v})
			require.True(t, ok)
			assert.Equal(t, int64(0), entry.Size)
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected time.Time
	}{
		{
			name:     "epoch milliseconds",
			value:    float64(1700000000000),
			expected: time.UnixMilli(1700000000000),
		},
		{
			name:     "epoch seconds",
			value:    float64(1700000000),
			expected: time.Unix(1700000000, 0),
		},
		{
			name:     "RFC 3339 string",
			value:    "2023-11-14T22:13:20Z",
			expected: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
		},
		{
			name:     "unparseable string is time zero",
			value:    "last tuesday",
			expected: time.Time{},
		},
		{
			name:     "nil is time zero",
			value:    nil,
			expected: time.Time{},
		},
		{
			name:     "boolean is time zero",
			value:    true,
			expected: time.Time{},
		},
		{
			name:     "negative epoch is time zero",
			value:    float64(-5),
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTimestamp(tt.value)
			assert.True(t, result.Equal(tt.expected), "got %v, want %v", result, tt.expected)
		})
	}
}

// Garbage timestamps must normalise to the epoch origin, never to the
// current time, so stale data cannot masquerade as fresh.
func TestParseTimestamp_GarbageIsNeverNow(t *testing.T) {
	result := ParseTimestamp("garbage")

	assert.True(t, result.IsZero())
	assert.True(t, time.Since(result) > 24*time.Hour)
}
