package steps

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

const (
	partitionSettleDelay = 3 * time.Second
	mountSettleDelay     = 5 * time.Second
	postMountSettleDelay = 10 * time.Second
)

// PrepareRootfsStep partitions and formats the iSCSI-exported block device,
// then mounts it at the instance's rootfs mount point. The mount is meant to
// persist for the rest of the run (and beyond, until Cleanup unmounts it) —
// unlike CopyDataStep's transient loopback mounts.
type PrepareRootfsStep struct {
	Logger ports.Logger
}

func (s *PrepareRootfsStep) Name() string { return "prepare rootfs" }

func iscsiDevicePath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return fmt.Sprintf("/dev/disk/by-path/ip-%s:3260-iscsi-%s-lun-1", ws.IscsiTargetIP, inst.IscsiTargetIQN)
}

func (s *PrepareRootfsStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	devPath := iscsiDevicePath(ws, inst)
	partPath := devPath + "-part1"

	s.log(ctx, "making GPT partition table", "device", devPath)
	if _, err := run(ctx, "parted", "--script", devPath, "mklabel", "gpt"); err != nil {
		return err
	}

	s.log(ctx, "making partition", "device", devPath)
	if _, err := run(ctx, "parted",
		"--script", "--align", "optimal",
		devPath, "mkpart", "primary", "ext4", "0%", "100%",
	); err != nil {
		return err
	}

	mountPath := instanceRootfsMountPath(ws, inst)

	s.log(ctx, "waiting for partition table to settle", "delay", partitionSettleDelay)
	if err := sleepOrDone(ctx, partitionSettleDelay); err != nil {
		return err
	}

	s.log(ctx, "formatting disk", "partition", partPath)
	if _, err := run(ctx, "mkfs", "-t", "ext4", partPath); err != nil {
		return err
	}

	s.log(ctx, "resolving block device for partition", "partition", partPath)
	partName, err := run(ctx, "lsblk", "-n", "-o", "NAME", partPath)
	if err != nil {
		return err
	}
	devPartPath := "/dev/" + partName

	s.log(ctx, "mounting rootfs partition", "device", devPartPath, "path", mountPath)
	if err := sleepOrDone(ctx, mountSettleDelay); err != nil {
		return err
	}

	if err := unix.Mount(devPartPath, mountPath, "ext4", 0, ""); err != nil {
		return fmt.Errorf("mount %s at %s: %w", devPartPath, mountPath, err)
	}

	if err := sleepOrDone(ctx, postMountSettleDelay); err != nil {
		return err
	}

	return nil
}

func (s *PrepareRootfsStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
	mountPath := instanceRootfsMountPath(ws, inst)

	if err := unix.Unmount(mountPath, unix.MNT_DETACH); err != nil {
		s.log(ctx, "error unmounting rootfs partition", "path", mountPath, "error", err)
	}
}

func sleepOrDone(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *PrepareRootfsStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
