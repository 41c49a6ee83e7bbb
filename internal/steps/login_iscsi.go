package steps

import (
	"context"
	"time"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// iscsiLoginSettleDelay accounts for iscsiadm's login being asynchronous:
// the session is not immediately usable by the caller that issued --login.
const iscsiLoginSettleDelay = 5 * time.Second

// LoginIscsiStep discovers and logs into the iSCSI target that exports the
// instance's root filesystem block device.
type LoginIscsiStep struct {
	Logger ports.Logger
}

func (s *LoginIscsiStep) Name() string { return "login iSCSI" }

func (s *LoginIscsiStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	s.log(ctx, "logging into target", "portal", ws.IscsiTargetIP, "target_iqn", inst.IscsiTargetIQN)

	if _, err := run(ctx, "iscsiadm",
		"--mode", "discovery",
		"--portal", ws.IscsiTargetIP,
		"--type", "sendtargets",
	); err != nil {
		return err
	}

	if _, err := run(ctx, "iscsiadm",
		"--mode", "node",
		"--targetname", inst.IscsiTargetIQN,
		"--portal", ws.IscsiTargetIP,
		"--login",
	); err != nil {
		return err
	}

	s.log(ctx, "sleeping for iscsiadm session to settle", "delay", iscsiLoginSettleDelay)
	select {
	case <-time.After(iscsiLoginSettleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (s *LoginIscsiStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
	s.log(ctx, "logging out of target", "portal", ws.IscsiTargetIP, "target_iqn", inst.IscsiTargetIQN)

	if _, err := run(ctx, "iscsiadm",
		"--mode", "node",
		"--targetname", inst.IscsiTargetIQN,
		"--portal", ws.IscsiTargetIP,
		"--logout",
	); err != nil {
		s.log(ctx, "error logging out of target", "error", err)
	}
}

func (s *LoginIscsiStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
