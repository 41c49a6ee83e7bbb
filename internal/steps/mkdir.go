package steps

import (
	"context"
	"os"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// MkdirStep creates the four mount-point directories a single instance's
// provisioning run needs before anything can be mounted into them.
type MkdirStep struct {
	Logger ports.Logger
}

func (s *MkdirStep) Name() string { return "mkdir" }

func (s *MkdirStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	dirs := []string{
		imgRootfsMountPath(ws, inst),
		imgBootMountPath(ws, inst),
		instanceRootfsMountPath(ws, inst),
		instanceBootMountPath(ws, inst),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return nil
}

// Cleanup removes the directories mkdir created, innermost first, plus the
// parent directories created along the way. Directories that were never
// created (because mkdir never ran, or a sibling step already failed) are a
// no-op removal error, logged and swallowed.
func (s *MkdirStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
	dirs := []string{
		imgRootfsMountPath(ws, inst),
		imgBootMountPath(ws, inst),
		instanceRootfsMountPath(ws, inst),
		instanceBootMountPath(ws, inst),
		imgMountPath(ws, inst),
		instanceMountPath(ws, inst),
		workspaceMountPath(ws, inst),
		instancePath(ws, inst),
	}

	for _, dir := range dirs {
		if err := os.Remove(dir); err != nil {
			s.log(ctx, "error removing directory", "path", dir, "error", err)
		}
	}
}

func (s *MkdirStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Warn(ctx, msg, fields...)
}
