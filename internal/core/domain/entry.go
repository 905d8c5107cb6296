package domain

import (
	"io/fs"
	"math"
	"path/filepath"
	"time"
)

// MaxIndexSize caps the number of entries the index will hold.
// Once reached, the crawler stops inserting and stops descending
// into further subdirectories.
const MaxIndexSize = 200_000

// IndexEntry represents one filesystem node in the index.
type IndexEntry struct {
	// Path is the absolute, platform-native path. It is the unique key.
	Path string `json:"path"`

	// Name is the base name of the node.
	Name string `json:"name"`

	// IsDirectory reports whether the node is a directory.
	IsDirectory bool `json:"isDirectory"`

	// IsFile reports whether the node is a regular file.
	IsFile bool `json:"isFile"`

	// Size is the node size in bytes. Never negative.
	Size int64 `json:"size"`

	// Modified is the last modification time. A zero value means the
	// source data carried no usable timestamp.
	Modified time.Time `json:"modified"`
}

// Snapshot is a persisted image of the index.
type Snapshot struct {
	// Entries holds the indexed nodes.
	Entries []IndexEntry

	// LastIndexTime is when the last successful build completed,
	// or nil if the index has never been built.
	LastIndexTime *time.Time

	// Exists reports whether a snapshot file was actually found.
	// A missing file is the normal first-run case, not an error.
	Exists bool
}

// NewEntry builds an IndexEntry from a stat result.
func NewEntry(path string, info fs.FileInfo) IndexEntry {
	return IndexEntry{
		Path:        path,
		Name:        info.Name(),
		IsDirectory: info.IsDir(),
		IsFile:      info.Mode().IsRegular(),
		Size:        max(info.Size(), 0),
		Modified:    info.ModTime(),
	}
}

// ParseEntry normalises one raw snapshot entry into an IndexEntry.
// Two shapes are accepted: a [path, data] pair, or a flat object
// carrying its own "path" field. It is a total function: it never
// panics, and returns ok=false when the entry must be dropped
// (non-string or empty path).
func ParseEntry(raw any) (IndexEntry, bool) {
	var path string
	var data map[string]any

	switch v := raw.(type) {
	case []any:
		if len(v) != 2 {
			return IndexEntry{}, false
		}
		path, _ = v[0].(string)
		data, _ = v[1].(map[string]any)
	case map[string]any:
		path, _ = v["path"].(string)
		data = v
	default:
		return IndexEntry{}, false
	}

	if path == "" {
		return IndexEntry{}, false
	}

	entry := IndexEntry{Path: path}

	if name, ok := data["name"].(string); ok && name != "" {
		entry.Name = name
	} else {
		entry.Name = filepath.Base(path)
	}

	// isDirectory is false unless the source value is literally true.
	entry.IsDirectory = data["isDirectory"] == true

	// isFile defaults to the complement of isDirectory whenever the
	// source value is not a boolean.
	if isFile, ok := data["isFile"].(bool); ok {
		entry.IsFile = isFile
	} else {
		entry.IsFile = !entry.IsDirectory
	}

	entry.Size = parseSize(data["size"])
	entry.Modified = ParseTimestamp(data["modified"])

	return entry, true
}

// parseSize coerces a raw size value to a non-negative byte count.
// Anything that is not a finite, non-negative number becomes 0.
func parseSize(v any) int64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0
		}
		return int64(n)
	case int64:
		return max(n, 0)
	case int:
		return int64(max(n, 0))
	default:
		return 0
	}
}

// ParseTimestamp coerces a raw timestamp value to a time.Time.
// Numbers are treated as a Unix epoch (milliseconds when large
// enough to be one, seconds otherwise), strings must parse as
// RFC 3339, and native times pass through. Anything else yields
// the zero time, never "now" - garbage timestamps must not
// masquerade as fresh.
func ParseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
			return time.Time{}
		}
		return fromEpoch(int64(t))
	case int64:
		if t <= 0 {
			return time.Time{}
		}
		return fromEpoch(t)
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

// fromEpoch interprets an epoch value, deciding between seconds and
// milliseconds. Anything past the year 5138 in seconds is taken to
// be a millisecond count.
func fromEpoch(n int64) time.Time {
	const millisThreshold = 100_000_000_000
	if n >= millisThreshold {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
