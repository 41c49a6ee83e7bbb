package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// ConfigureHostnameStep writes the instance's hostname into its rootfs
// partition and rewrites /etc/hosts' loopback entry to match.
type ConfigureHostnameStep struct {
	Logger ports.Logger
}

func (s *ConfigureHostnameStep) Name() string { return "configure hostname" }

func (s *ConfigureHostnameStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	rootfsPath := instanceRootfsMountPath(ws, inst)

	hostnamePath := filepath.Join(rootfsPath, "etc/hostname")
	s.log(ctx, "writing hostname", "path", hostnamePath, "hostname", inst.ID)
	if err := os.WriteFile(hostnamePath, []byte(inst.ID+"\n"), 0o644); err != nil {
		return err
	}

	hostsPath := filepath.Join(rootfsPath, "etc/hosts")
	hostsSedExpr := fmt.Sprintf(`s/(.*)raspberrypi(.*?)$/\1%s\2/g`, inst.ID)

	s.log(ctx, "updating /etc/hosts", "path", hostsPath)
	if _, err := run(ctx, "sed", "-i", "-r", "-e", hostsSedExpr, hostsPath); err != nil {
		return err
	}

	return nil
}

func (s *ConfigureHostnameStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
}

func (s *ConfigureHostnameStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
