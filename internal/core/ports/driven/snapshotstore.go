package driven

import (
	"context"

	"github.com/lumafile/findex-cli/internal/core/domain"
)

// SnapshotStore persists the index snapshot to disk.
// Implementations must write atomically: a process killed mid-save
// must never leave a corrupt snapshot behind.
type SnapshotStore interface {
	// Load reads the persisted snapshot. A missing file is the normal
	// first-run case and yields a snapshot with Exists=false, not an
	// error. Malformed entries are skipped individually.
	Load(ctx context.Context) (domain.Snapshot, error)

	// Save writes the snapshot atomically.
	Save(ctx context.Context, snap domain.Snapshot) error

	// Delete removes the snapshot file. A missing file is not an error.
	Delete(ctx context.Context) error
}
