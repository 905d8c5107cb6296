// Package driving defines the driving ports (primary interfaces) of
// the findex engine: the operations the surrounding application calls.
package driving

import (
	"context"

	"github.com/lumafile/findex-cli/internal/core/domain"
)

// IndexEngine is the entirety of the boundary the GUI, settings and
// power-management collaborators are expected to call. None of these
// operations return an error: per the engine's error model, failures
// are logged and degrade to empty results rather than propagating.
type IndexEngine interface {
	// Initialize loads the persisted snapshot and, when it is missing,
	// empty or older than the staleness window, triggers a background
	// build. A no-op when enabled is false.
	Initialize(ctx context.Context, enabled bool)

	// Search returns entries whose name contains the query. Exact name
	// matches sort first. Returns nothing while the engine is disabled
	// or a build is running.
	Search(ctx context.Context, query string) []domain.IndexEntry

	// Entries returns a copy of all indexed entries.
	Entries(ctx context.Context) []domain.IndexEntry

	// Status reports whether a build is active, progress counts, and
	// the last successful build time.
	Status(ctx context.Context) domain.EngineStatus

	// SetEnabled toggles the engine. Disabling aborts any in-flight
	// build, both locally and on a delegated worker.
	SetEnabled(ctx context.Context, enabled bool)

	// RebuildIndex aborts any in-flight build, clears the index and
	// starts a fresh background build.
	RebuildIndex(ctx context.Context)

	// ClearIndex empties the index and best-effort deletes the
	// persisted snapshot.
	ClearIndex(ctx context.Context)
}
