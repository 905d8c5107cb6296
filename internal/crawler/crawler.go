// Package crawler implements the recursive, batched, abortable
// directory walker that feeds the index, and the resolver that decides
// which root directories are worth walking.
package crawler

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/lumafile/findex-cli/internal/core/domain"
	"github.com/lumafile/findex-cli/internal/logger"
)

const (
	// batchSize is how many children are stat'd concurrently. Batches
	// are processed sequentially, which bounds peak file-descriptor
	// pressure regardless of directory fan-out.
	batchSize = 20

	// filesPerLocation is the fixed per-location average used to
	// estimate total file counts for progress reporting. A coarse
	// UI figure, not a measured value.
	filesPerLocation = 5000
)

// Sink receives entries as the crawler discovers them.
type Sink interface {
	// Insert adds one entry. It returns false once the index is full,
	// at which point the crawler stops inserting and recursing.
	Insert(entry domain.IndexEntry) bool

	// Full reports whether the entry-count ceiling has been reached.
	Full() bool
}

// Crawler walks directory trees and inserts file entries into a Sink.
type Crawler struct {
	exclude func(string) bool
}

// statEntry is swapped out in tests to simulate per-child stat failures.
var statEntry = func(entry os.DirEntry) (fs.FileInfo, error) {
	return entry.Info()
}

// New creates a crawler using the default exclusion rules.
func New() *Crawler {
	return &Crawler{exclude: domain.ShouldExclude}
}

// NewWithExclusion creates a crawler with a custom exclusion predicate.
func NewWithExclusion(exclude func(string) bool) *Crawler {
	return &Crawler{exclude: exclude}
}

// Crawl walks every location in order. Cancellation is cooperative and
// silent: a cancelled crawl simply stops, keeping whatever the sink
// already received.
func (c *Crawler) Crawl(ctx context.Context, locations []string, sink Sink) {
	for _, location := range locations {
		if ctx.Err() != nil || sink.Full() {
			return
		}
		c.ScanDirectory(ctx, location, sink)
	}
}

// EstimateTotal estimates the file count across locations for progress
// reporting: a fixed average for every accessible location, zero for
// inaccessible ones.
func EstimateTotal(locations []string) int {
	total := 0
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			total += filesPerLocation
		}
	}
	return total
}

// ScanDirectory recursively indexes one directory. Children are
// processed in fixed-size batches; within a batch every stat is issued
// concurrently and individual failures are dropped. The cancellation
// token and the ceiling are re-checked before each batch and each
// recursive descent.
func (c *Crawler) ScanDirectory(ctx context.Context, path string, sink Sink) {
	if ctx.Err() != nil || c.exclude(path) {
		return
	}

	// Any listing failure (permission denied, vanished directory) is
	// treated as "no children".
	children, err := os.ReadDir(path)
	if err != nil {
		logger.Debug("skipping unreadable directory %s: %v", path, err)
		return
	}

	for start := 0; start < len(children); start += batchSize {
		if ctx.Err() != nil || sink.Full() {
			return
		}

		batch := children[start:min(start+batchSize, len(children))]
		infos := statBatch(batch)

		var subdirs []string
		for i, child := range batch {
			info := infos[i]
			if info == nil {
				continue
			}

			childPath := filepath.Join(path, child.Name())
			if c.exclude(childPath) {
				continue
			}

			if info.IsDir() {
				subdirs = append(subdirs, childPath)
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			if !sink.Insert(domain.NewEntry(childPath, info)) {
				return
			}
		}

		for _, subdir := range subdirs {
			if ctx.Err() != nil || sink.Full() {
				return
			}
			c.ScanDirectory(ctx, subdir, sink)
		}
	}
}

// statBatch stats every child of a batch concurrently. A failed stat
// leaves a nil slot; the batch itself always completes.
func statBatch(batch []os.DirEntry) []fs.FileInfo {
	infos := make([]fs.FileInfo, len(batch))

	var g errgroup.Group
	for i, child := range batch {
		i, child := i, child
		g.Go(func() error {
			if info, err := statEntry(child); err == nil {
				infos[i] = info
			}
			return nil
		})
	}
	_ = g.Wait()

	return infos
}
