package steps

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// MountBootStep mounts the instance's NFS boot export — the directory the
// TFTP/NFS server hands the board at boot — at the instance's boot mount
// point, so the remaining steps can write into it.
type MountBootStep struct {
	Logger ports.Logger
}

func (s *MountBootStep) Name() string { return "mount boot" }

func (s *MountBootStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	nfsPath := ws.NfsTftpDir + "/" + inst.MacAddr
	nfsSource := ":" + nfsPath
	nfsAddrOption := "addr=" + ws.NfsServerIP
	mountPath := instanceBootMountPath(ws, inst)

	s.log(ctx, "mounting NFS boot export", "source", nfsSource, "path", mountPath)

	if err := unix.Mount(nfsSource, mountPath, "nfs", 0, nfsAddrOption); err != nil {
		return fmt.Errorf("mount %s at %s: %w", nfsSource, mountPath, err)
	}

	return nil
}

func (s *MountBootStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
	mountPath := instanceBootMountPath(ws, inst)

	if err := unix.Unmount(mountPath, unix.MNT_DETACH); err != nil {
		s.log(ctx, "error unmounting boot partition", "path", mountPath, "error", err)
	}
}

func (s *MountBootStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
