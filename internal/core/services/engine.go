// Package services implements the core of the findex engine: the
// lifecycle and status controller, the in-memory index store and the
// search ranker. The heavy load/build/save operations are submitted
// through a driven.TaskRunner so the same logic serves both the
// in-process and the delegated-worker configurations.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumafile/findex-cli/internal/core/domain"
	"github.com/lumafile/findex-cli/internal/core/ports/driven"
	"github.com/lumafile/findex-cli/internal/core/ports/driving"
	"github.com/lumafile/findex-cli/internal/crawler"
	"github.com/lumafile/findex-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.IndexEngine = (*Engine)(nil)

// maxIndexAge is how old a loaded snapshot's build time may be before
// Initialize triggers a full rebuild.
const maxIndexAge = 7 * 24 * time.Hour

// Config assembles an Engine.
type Config struct {
	// Runner executes the load/build/save tasks. Inject a delegated
	// runner to move the heavy work onto an external worker facility.
	Runner driven.TaskRunner

	// Snapshots is used for best-effort snapshot deletion on ClearIndex.
	Snapshots driven.SnapshotStore

	// Locations are the root directories to crawl.
	Locations []string

	// MaxEntries overrides the index ceiling. Zero means
	// domain.MaxIndexSize.
	MaxEntries int

	// MaxAge overrides the snapshot staleness window. Zero means
	// seven days.
	MaxAge time.Duration
}

// Engine is the filesystem index engine: it owns the index store,
// schedules at most one crawl at a time, and serves searches from
// memory without touching disk.
type Engine struct {
	runner    driven.TaskRunner
	snapshots driven.SnapshotStore
	locations []string
	maxAge    time.Duration

	index *indexStore

	mu          sync.Mutex
	enabled     bool
	isIndexing  bool
	totalFiles  int
	cancelBuild context.CancelFunc
	activeOpID  string

	// initDone is non-nil while an Initialize load is in flight and
	// closed when it settles. Searches wait on it instead of racing
	// the load.
	initDone chan struct{}

	buildWG sync.WaitGroup
}

// NewEngine creates an engine. The engine starts disabled and empty;
// call Initialize to load or build the index.
func NewEngine(cfg Config) *Engine {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = domain.MaxIndexSize
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = maxIndexAge
	}
	return &Engine{
		runner:    cfg.Runner,
		snapshots: cfg.Snapshots,
		locations: cfg.Locations,
		maxAge:    maxAge,
		index:     newIndexStore(maxEntries),
	}
}

// Initialize loads the persisted snapshot and decides between reusing
// it and rebuilding: an absent or empty snapshot, a missing build
// time, or a build time past the staleness window all trigger a full
// background build. A no-op when enabled is false.
func (e *Engine) Initialize(ctx context.Context, enabled bool) {
	if !enabled {
		return
	}

	done := make(chan struct{})
	e.mu.Lock()
	e.enabled = true
	e.initDone = done
	e.mu.Unlock()

	snap := e.loadIndex(ctx)

	e.mu.Lock()
	e.initDone = nil
	e.mu.Unlock()
	close(done)

	last := snap.LastIndexTime
	switch {
	case !snap.Exists, len(snap.Entries) == 0:
		logger.Info("no usable index snapshot, building")
		e.buildIndex(ctx)
	case last == nil, time.Since(*last) > e.maxAge:
		logger.Info("index snapshot is stale, rebuilding")
		e.buildIndex(ctx)
	default:
		logger.Info("reusing index snapshot with %d entries", len(snap.Entries))
	}
}

// Search returns entries whose name contains the query, exact name
// matches first. While the engine is disabled or a build is running it
// returns nothing immediately rather than waiting; otherwise it lets
// any outstanding initialization settle first. Reads never touch disk.
func (e *Engine) Search(_ context.Context, query string) []domain.IndexEntry {
	e.mu.Lock()
	blocked := !e.enabled || e.isIndexing
	done := e.initDone
	e.mu.Unlock()
	if blocked || query == "" {
		return nil
	}

	if done != nil {
		<-done
	}
	return e.index.Match(query)
}

// Entries returns a copy of all indexed entries, ordered by path.
func (e *Engine) Entries(_ context.Context) []domain.IndexEntry {
	return e.index.All()
}

// Status reports the observable engine state.
func (e *Engine) Status(_ context.Context) domain.EngineStatus {
	e.mu.Lock()
	status := domain.EngineStatus{
		IsIndexing: e.isIndexing,
		TotalFiles: e.totalFiles,
	}
	e.mu.Unlock()

	status.IndexedFiles = e.index.Len()
	status.LastIndexTime = e.index.LastIndexTime()
	return status
}

// SetEnabled toggles the engine. Disabling aborts any in-flight build,
// both the local cancellation token and, when a delegated operation is
// outstanding, the remembered operation id - a worker may not observe
// local contexts on its own. Enabling only clears the flag; callers
// decide separately whether to Initialize or RebuildIndex.
func (e *Engine) SetEnabled(_ context.Context, enabled bool) {
	if enabled {
		e.mu.Lock()
		e.enabled = true
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	e.enabled = false
	cancel, opID := e.takeBuildHandlesLocked()
	e.mu.Unlock()

	e.cancelRemote(cancel, opID)
}

// RebuildIndex aborts any in-flight build, clears the index and starts
// a fresh background build.
func (e *Engine) RebuildIndex(ctx context.Context) {
	e.mu.Lock()
	cancel, opID := e.takeBuildHandlesLocked()
	e.mu.Unlock()
	e.cancelRemote(cancel, opID)

	e.buildWG.Wait()
	e.index.Clear()
	e.buildIndex(ctx)
}

// ClearIndex empties the index and best-effort deletes the persisted
// snapshot. A missing snapshot file is not an error; any other
// deletion failure is logged, not raised.
func (e *Engine) ClearIndex(ctx context.Context) {
	e.index.Clear()

	e.mu.Lock()
	e.totalFiles = 0
	e.mu.Unlock()

	if err := e.snapshots.Delete(ctx); err != nil {
		logger.Warn("failed to delete index snapshot: %v", err)
	}
}

// WaitForBuild blocks until no build is running. Used by the CLI and
// by tests; the GUI polls Status instead.
func (e *Engine) WaitForBuild() {
	e.buildWG.Wait()
}

// loadIndex fetches the persisted snapshot through the task runner and
// replaces the index wholesale. Load failures degrade to an empty
// snapshot; first-run absence is not an error.
func (e *Engine) loadIndex(ctx context.Context) domain.Snapshot {
	result, err := e.runner.RunTask(ctx, driven.TaskLoadIndex, driven.TaskPayload{}, uuid.NewString())
	if err != nil {
		logger.Warn("failed to load index snapshot: %v", err)
		return domain.Snapshot{}
	}

	snap := domain.Snapshot{
		Exists:        result.Exists,
		Entries:       result.Entries,
		LastIndexTime: result.LastIndexTime,
	}
	e.index.Replace(snap.Entries, snap.LastIndexTime)
	return snap
}

// buildIndex starts a full, cooperative, cancellable re-scan in the
// background. Single-flight: when a build is already in progress, or
// the engine is disabled, the call is a silent no-op.
func (e *Engine) buildIndex(ctx context.Context) {
	e.mu.Lock()
	if e.isIndexing || !e.enabled {
		e.mu.Unlock()
		return
	}

	buildCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	opID := uuid.NewString()

	e.isIndexing = true
	e.cancelBuild = cancel
	e.activeOpID = opID
	e.totalFiles = 0
	e.mu.Unlock()

	e.index.Reset()

	e.buildWG.Add(1)
	go e.runBuild(buildCtx, cancel, opID)
}

// runBuild executes one build through the task runner. Whatever
// happens, the indexing flag and the build handles are cleared on the
// way out so a failed build never leaves the engine stuck.
func (e *Engine) runBuild(ctx context.Context, cancel context.CancelFunc, opID string) {
	defer e.buildWG.Done()
	defer cancel()
	defer func() {
		e.mu.Lock()
		e.isIndexing = false
		if e.activeOpID == opID {
			e.cancelBuild = nil
			e.activeOpID = ""
		}
		e.mu.Unlock()
	}()

	total := crawler.EstimateTotal(e.locations)
	e.mu.Lock()
	e.totalFiles = total
	e.mu.Unlock()

	payload := driven.TaskPayload{
		Locations:  e.locations,
		MaxEntries: e.index.max,
		OnEntry:    e.index.Insert,
	}
	result, err := e.runner.RunTask(ctx, driven.TaskBuildIndex, payload, opID)
	if err != nil {
		// A cancelled crawl keeps whatever was indexed first; it is
		// not rolled back.
		if domain.IsCancellation(err) {
			logger.Info("index build cancelled")
		} else {
			logger.Error("index build failed: %v", err)
		}
		return
	}

	// A delegated worker returns the entries in bulk instead of
	// streaming them through OnEntry.
	if result != nil {
		for _, entry := range result.Entries {
			if !e.index.Insert(entry) {
				break
			}
		}
	}

	e.index.SetLastIndexTime(time.Now())
	logger.Info("index build complete: %d entries", e.index.Len())

	e.saveIndex(context.WithoutCancel(ctx))
}

// saveIndex persists the current index through the task runner.
// Persistence failure is never fatal to the caller.
func (e *Engine) saveIndex(ctx context.Context) {
	snap := e.index.Snapshot()
	_, err := e.runner.RunTask(ctx, driven.TaskSaveIndex, driven.TaskPayload{Snapshot: &snap}, uuid.NewString())
	if err != nil {
		logger.Error("failed to persist index snapshot: %v", err)
	}
}

// takeBuildHandlesLocked detaches the current build's cancellation
// handles so they fire at most once. Caller must hold e.mu.
func (e *Engine) takeBuildHandlesLocked() (context.CancelFunc, string) {
	cancel := e.cancelBuild
	opID := e.activeOpID
	e.cancelBuild = nil
	e.activeOpID = ""
	return cancel, opID
}

// cancelRemote aborts the local token and, when a delegated operation
// id was outstanding, cancels it on the runner as well.
func (e *Engine) cancelRemote(cancel context.CancelFunc, opID string) {
	if cancel != nil {
		cancel()
	}
	if opID != "" {
		e.runner.CancelOperation(opID)
	}
}
