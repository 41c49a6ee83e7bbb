package ports

import (
	"context"

	"provision/internal/domain/provisionspec"
)

// ConfigLoader loads workspace and instance provisioning specs from an
// external source, typically the filesystem. Implementations must be
// deterministic, respect context cancellation, and return validation errors
// that wrap the underlying cause (missing field, malformed JSON, bad path).
//
// Error mapping expectations:
//   - io/fs.ErrNotExist → ErrCodeNotFound
//   - JSON or struct-tag validation failures → ErrCodeValidation
//   - unexpected I/O issues → ErrCodeInternal with wrapped cause
type ConfigLoader interface {
	// LoadWorkspace reads and validates the single workspace spec at path.
	LoadWorkspace(ctx context.Context, path string) (*provisionspec.WorkspaceSpec, error)

	// LoadInstances reads and validates every instance spec found directly
	// inside dir (non-recursive, filtered by .json extension). Specs are
	// returned sorted by source filename for deterministic ordering.
	LoadInstances(ctx context.Context, dir string) ([]*provisionspec.InstanceSpec, error)
}
