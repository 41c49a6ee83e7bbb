package steps

import (
	"context"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
)

// FinishStep is the terminal sentinel of the provisioning graph: it runs
// last, after every other step has succeeded, and exists only to give the
// driver a single node to target in Execute and to log completion.
type FinishStep struct {
	Logger ports.Logger
}

func (s *FinishStep) Name() string { return "finish" }

func (s *FinishStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	s.log(ctx, "instance provisioned", "instance_id", inst.ID)
	return nil
}

func (s *FinishStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
}

func (s *FinishStep) log(ctx context.Context, msg string, fields ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(ctx, msg, fields...)
}
