package steps

import (
	"context"
	"os"
	"path/filepath"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// ConfigureUserAuthStep writes the instance's default-user credentials into
// userconf.txt (consumed by the Raspberry Pi first-boot userconfig
// mechanism) and its SSH public key into the root user's authorized_keys.
type ConfigureUserAuthStep struct {
	Logger ports.Logger
}

func (s *ConfigureUserAuthStep) Name() string { return "configure auth" }

func (s *ConfigureUserAuthStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	userconfPath := filepath.Join(instanceBootMountPath(ws, inst), "userconf.txt")
	s.log(ctx, "writing userconf.txt", "path", userconfPath)
	if err := os.WriteFile(userconfPath, []byte(inst.UserPassword+"\n"), 0o600); err != nil {
		return err
	}

	authorizedKeysPath := filepath.Join(instanceRootfsMountPath(ws, inst), "root/.ssh/authorized_keys")
	s.log(ctx, "writing authorized_keys", "path", authorizedKeysPath)
	if err := os.WriteFile(authorizedKeysPath, []byte(inst.RootSSHKey+"\n"), 0o600); err != nil {
		return err
	}

	return nil
}

func (s *ConfigureUserAuthStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
}

func (s *ConfigureUserAuthStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
