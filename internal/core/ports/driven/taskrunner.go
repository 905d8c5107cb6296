package driven

import (
	"context"
	"time"

	"github.com/lumafile/findex-cli/internal/core/domain"
)

// Task types understood by a TaskRunner.
const (
	// TaskLoadIndex reads the persisted snapshot.
	TaskLoadIndex = "load-index"

	// TaskBuildIndex performs a full filesystem crawl.
	TaskBuildIndex = "build-index"

	// TaskSaveIndex persists the current index.
	TaskSaveIndex = "save-index"
)

// TaskPayload carries the input of a task.
type TaskPayload struct {
	// Locations are the root directories to crawl (build-index).
	Locations []string

	// MaxEntries caps the number of entries a build may produce.
	// Zero means domain.MaxIndexSize.
	MaxEntries int

	// OnEntry, when set, is invoked for every entry a build discovers,
	// in discovery order. It returns false once the index is full, which
	// stops the crawl. Only in-process runners can honour it; delegated
	// runners ignore it and return the entries in the result instead.
	OnEntry func(domain.IndexEntry) bool

	// Snapshot is the snapshot to persist (save-index).
	Snapshot *domain.Snapshot
}

// TaskResult carries the output of a task.
type TaskResult struct {
	// Exists reports whether a snapshot file was found (load-index).
	Exists bool

	// Entries holds loaded or discovered entries. Nil when the runner
	// already streamed them through OnEntry.
	Entries []domain.IndexEntry

	// LastIndexTime is the snapshot's build time (load-index).
	LastIndexTime *time.Time
}

// TaskRunner executes the engine's heavy operations. The engine's core
// logic is written once against this interface; a local implementation
// runs the work in-process, a delegated one hands it to an external
// worker facility. Payload and result shapes are identical either way.
type TaskRunner interface {
	// RunTask executes a named task and blocks until it completes,
	// fails, or the context is cancelled. The caller-generated
	// operationID identifies the task for CancelOperation.
	RunTask(ctx context.Context, taskType string, payload TaskPayload, operationID string) (*TaskResult, error)

	// CancelOperation aborts a running task by operation id. Unknown
	// ids are ignored. Required in addition to context cancellation
	// because an external worker may not observe local contexts.
	CancelOperation(operationID string)
}
