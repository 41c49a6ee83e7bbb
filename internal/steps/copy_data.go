package steps

import (
	"context"
	"strconv"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// CopyDataStep mounts the boot and rootfs partitions of the golden image
// read-only (at their configured byte offsets inside the single image file)
// and copies their contents onto the instance's already-mounted boot and
// rootfs partitions. Each image partition is mounted and unmounted within a
// single Run call — unlike PrepareRootfsStep/MountBootStep, nothing here is
// meant to outlive the step, so there is no persistent Cleanup action.
type CopyDataStep struct {
	Logger ports.Logger
}

func (s *CopyDataStep) Name() string { return "copy data" }

func (s *CopyDataStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	if err := s.copyFromImg(ctx, ws.ImgPath, ws.ImgBootOffset, imgBootMountPath(ws, inst), instanceMountPath(ws, inst)); err != nil {
		return err
	}

	if err := s.copyFromImg(ctx, ws.ImgPath, ws.ImgRootfsOffset, imgRootfsMountPath(ws, inst), instanceMountPath(ws, inst)); err != nil {
		return err
	}

	return nil
}

func (s *CopyDataStep) copyFromImg(ctx context.Context, imgPath string, offset uint64, mntPath, targetPath string) error {
	s.log(ctx, "mounting image partition", "image", imgPath, "offset", offset, "path", mntPath)

	loopOpt := "loop,ro,offset=" + strconv.FormatUint(offset, 10)
	if _, err := run(ctx, "mount", "-o", loopOpt, imgPath, mntPath); err != nil {
		return err
	}
	defer func() {
		if _, err := run(ctx, "umount", mntPath); err != nil {
			s.log(ctx, "error unmounting image partition", "path", mntPath, "error", err)
		}
	}()

	s.log(ctx, "copying image partition contents", "from", mntPath, "to", targetPath)
	if _, err := run(ctx, "cp", "-r", mntPath, targetPath); err != nil {
		return err
	}

	return nil
}

func (s *CopyDataStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
}

func (s *CopyDataStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
