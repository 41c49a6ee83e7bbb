package steps

import (
	"fmt"
	"path/filepath"

	"context"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// UpdateCmdlineStep rewrites the instance's /etc/fstab and cmdline.txt to
// point at the PARTUUID of the rootfs partition it just provisioned, and to
// pass the iSCSI boot parameters the kernel's iSCSI initrd needs.
type UpdateCmdlineStep struct {
	Logger ports.Logger
}

func (s *UpdateCmdlineStep) Name() string { return "update command line" }

func (s *UpdateCmdlineStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	rootfsPath := instanceRootfsMountPath(ws, inst)
	fstabPath := filepath.Join(rootfsPath, "etc/fstab")
	cmdlinePath := filepath.Join(instanceBootMountPath(ws, inst), "cmdline.txt")

	mountSource, err := run(ctx, "findmnt", "-n", "-o", "SOURCE", rootfsPath)
	if err != nil {
		return err
	}

	s.log(ctx, "resolving PARTUUID", "source", mountSource)
	partuuid, err := run(ctx, "lsblk", "-n", "-o", "PARTUUID", mountSource)
	if err != nil {
		return err
	}

	fstabSedExpr := fmt.Sprintf(
		"s@.*/ +.*@PARTUUID=%s / ext4 _netdev,noatime 0 1@;s@.*/boot/firmware +.*@%s:%s/%s /boot/firmware nfs defaults,vers=4.1,proto=tcp 0 0@",
		partuuid, ws.NfsServerIP, ws.NfsTftpDir, inst.MacAddr,
	)

	s.log(ctx, "updating fstab", "path", fstabPath)
	if _, err := run(ctx, "sed", "-i", "-r", "-e", fstabSedExpr, fstabPath); err != nil {
		return err
	}

	cmdlineSedExpr := fmt.Sprintf(
		"s/root=PARTUUID=[0-9a-f-]+/root=PARTUUID=%s/;s/$/ ip=dhcp ISCSI_INITIATOR=%s ISCSI_TARGET_NAME=%s ISCSI_TARGET_IP=%s rw/g",
		partuuid, inst.IscsiInitiatorIQN, inst.IscsiTargetIQN, ws.IscsiTargetIP,
	)

	s.log(ctx, "updating cmdline.txt", "path", cmdlinePath)
	if _, err := run(ctx, "sed", "-i", "-r", "-e", cmdlineSedExpr, cmdlinePath); err != nil {
		return err
	}

	return nil
}

func (s *UpdateCmdlineStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
}

func (s *UpdateCmdlineStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
