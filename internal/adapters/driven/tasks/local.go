// Package tasks provides the in-process implementation of
// driven.TaskRunner. It is the default when no external worker
// facility is injected: the same load/build/save operations run
// synchronously against the local filesystem, with the same payload
// and result shapes a delegated runner would use.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumafile/findex-cli/internal/core/domain"
	"github.com/lumafile/findex-cli/internal/core/ports/driven"
	"github.com/lumafile/findex-cli/internal/crawler"
	"github.com/lumafile/findex-cli/internal/logger"
)

// Ensure LocalRunner implements the interface.
var _ driven.TaskRunner = (*LocalRunner)(nil)

// LocalRunner executes index tasks in-process.
type LocalRunner struct {
	snapshots driven.SnapshotStore
	crawler   *crawler.Crawler

	mu     sync.Mutex
	active map[string]context.CancelFunc
}

// NewLocalRunner creates a runner crawling with the default exclusion
// rules and persisting through the given snapshot store.
func NewLocalRunner(snapshots driven.SnapshotStore) *LocalRunner {
	return &LocalRunner{
		snapshots: snapshots,
		crawler:   crawler.New(),
		active:    make(map[string]context.CancelFunc),
	}
}

// RunTask executes one named task synchronously.
func (r *LocalRunner) RunTask(ctx context.Context, taskType string, payload driven.TaskPayload, operationID string) (*driven.TaskResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.register(operationID, cancel)
	defer r.unregister(operationID)

	switch taskType {
	case driven.TaskLoadIndex:
		return r.loadIndex(ctx)
	case driven.TaskBuildIndex:
		return r.buildIndex(ctx, payload)
	case driven.TaskSaveIndex:
		return r.saveIndex(ctx, payload)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedTask, taskType)
	}
}

// CancelOperation aborts a running task. Unknown ids are ignored.
func (r *LocalRunner) CancelOperation(operationID string) {
	r.mu.Lock()
	cancel := r.active[operationID]
	r.mu.Unlock()

	if cancel != nil {
		logger.Info("cancelling operation %s", operationID)
		cancel()
	}
}

func (r *LocalRunner) loadIndex(ctx context.Context) (*driven.TaskResult, error) {
	snap, err := r.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &driven.TaskResult{
		Exists:        snap.Exists,
		Entries:       snap.Entries,
		LastIndexTime: snap.LastIndexTime,
	}, nil
}

// buildIndex crawls the payload's locations. When the payload carries
// an OnEntry callback the entries are streamed through it and the
// result stays empty; otherwise they are collected and returned, the
// way a delegated worker would return them.
func (r *LocalRunner) buildIndex(ctx context.Context, payload driven.TaskPayload) (*driven.TaskResult, error) {
	maxEntries := payload.MaxEntries
	if maxEntries <= 0 {
		maxEntries = domain.MaxIndexSize
	}

	sink := &callbackSink{max: maxEntries, onEntry: payload.OnEntry}
	r.crawler.Crawl(ctx, payload.Locations, sink)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build %w", domain.ErrCancelled)
	}
	return &driven.TaskResult{Entries: sink.collected}, nil
}

func (r *LocalRunner) saveIndex(ctx context.Context, payload driven.TaskPayload) (*driven.TaskResult, error) {
	if payload.Snapshot == nil {
		return nil, fmt.Errorf("save-index: missing snapshot payload")
	}
	if err := r.snapshots.Save(ctx, *payload.Snapshot); err != nil {
		return nil, err
	}
	return &driven.TaskResult{}, nil
}

func (r *LocalRunner) register(operationID string, cancel context.CancelFunc) {
	if operationID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[operationID] = cancel
}

func (r *LocalRunner) unregister(operationID string) {
	if operationID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, operationID)
}

// callbackSink adapts the crawler's sink to either a streaming
// callback or an in-memory collection.
type callbackSink struct {
	max       int
	onEntry   func(domain.IndexEntry) bool
	collected []domain.IndexEntry
	count     int
	full      bool
}

func (s *callbackSink) Insert(entry domain.IndexEntry) bool {
	if s.full || s.count >= s.max {
		s.full = true
		return false
	}

	if s.onEntry != nil {
		if !s.onEntry(entry) {
			s.full = true
			return false
		}
	} else {
		s.collected = append(s.collected, entry)
	}
	s.count++
	return true
}

func (s *callbackSink) Full() bool {
	return s.full || s.count >= s.max
}
