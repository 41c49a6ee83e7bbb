// Package driver builds the canonical provisioning graph and runs it once
// per loaded instance spec, serially. Sequential execution is a deliberate
// choice: the original concurrent-instance design (tokio's future::join_all)
// risked overwhelming a single iSCSI/NFS server with simultaneous per-instance
// login and mount storms, so this driver trades wall-clock time for a
// bounded, predictable load on shared infrastructure. The graph itself still
// executes each instance's steps concurrently where dependencies allow.
package driver

import (
	"context"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
	"provision/internal/steps"
	"provision/internal/stepgraph"
)

// Result is the outcome of provisioning a single instance.
type Result struct {
	InstanceID string
	Err        error
}

// Driver owns the canonical provisioning graph and the dependencies its
// steps need, and runs that graph once per instance.
type Driver struct {
	logger    ports.Logger
	publisher ports.EventPublisher
}

// New creates a Driver. A nil logger or publisher is tolerated; StepGraph
// substitutes its own no-ops.
func New(logger ports.Logger, publisher ports.EventPublisher) *Driver {
	return &Driver{logger: logger, publisher: publisher}
}

// buildGraph wires the nine concrete steps into the fixed provisioning
// dependency graph:
//
//	finish          -> {update_cmdline, configure_hostname, configure_user_auth}
//	update_cmdline  -> copy_data
//	configure_*     -> copy_data
//	copy_data       -> {prepare_rootfs, mount_boot}
//	mount_boot      -> mkdir
//	prepare_rootfs  -> {login_iscsi, mkdir}
func (d *Driver) buildGraph() (*stepgraph.StepGraph, int) {
	g := stepgraph.NewStepGraph(d.logger, d.publisher)

	mkdirStep := g.AddNode(&steps.MkdirStep{Logger: d.logger})
	loginIscsiStep := g.AddNode(&steps.LoginIscsiStep{Logger: d.logger})
	mountBootStep := g.AddNode(&steps.MountBootStep{Logger: d.logger})
	prepareRootfsStep := g.AddNode(&steps.PrepareRootfsStep{Logger: d.logger})
	copyDataStep := g.AddNode(&steps.CopyDataStep{Logger: d.logger})
	updateCmdlineStep := g.AddNode(&steps.UpdateCmdlineStep{Logger: d.logger})
	configureHostnameStep := g.AddNode(&steps.ConfigureHostnameStep{Logger: d.logger})
	configureUserAuthStep := g.AddNode(&steps.ConfigureUserAuthStep{Logger: d.logger})
	finishStep := g.AddNode(&steps.FinishStep{Logger: d.logger})

	g.AddEdge(finishStep, updateCmdlineStep)
	g.AddEdge(finishStep, configureHostnameStep)
	g.AddEdge(finishStep, configureUserAuthStep)

	g.AddEdge(updateCmdlineStep, copyDataStep)
	g.AddEdge(configureHostnameStep, copyDataStep)
	g.AddEdge(configureUserAuthStep, copyDataStep)

	g.AddEdge(copyDataStep, prepareRootfsStep)
	g.AddEdge(copyDataStep, mountBootStep)

	g.AddEdge(mountBootStep, mkdirStep)

	g.AddEdge(prepareRootfsStep, loginIscsiStep)
	g.AddEdge(prepareRootfsStep, mkdirStep)

	return g, finishStep
}

// Run provisions every instance in instances, in the order given, against
// workspace. The graph is built once and reused across instances; each
// instance gets its own run of it, so one instance's failure never blocks
// another's. Results are returned in the same order as instances.
func (d *Driver) Run(ctx context.Context, workspace provisionspec.WorkspaceSpec, instances []*provisionspec.InstanceSpec) []Result {
	g, finish := d.buildGraph()

	results := make([]Result, 0, len(instances))
	for _, inst := range instances {
		d.publish(ctx, ports.EventInstanceStarted, inst.ID, nil)

		err := g.Execute(ctx, finish, workspace, *inst)

		if err != nil {
			d.publish(ctx, ports.EventInstanceFailed, inst.ID, err)
		} else {
			d.publish(ctx, ports.EventInstanceCompleted, inst.ID, nil)
		}

		results = append(results, Result{InstanceID: inst.ID, Err: err})
	}

	return results
}

func (d *Driver) publish(ctx context.Context, eventType, instanceID string, err error) {
	if d.publisher == nil {
		return
	}
	d.publisher.Publish(ctx, instanceEvent{eventType: eventType, instanceID: instanceID, err: err})
}

// instanceEvent is the ports.DomainEvent implementation for the
// instance.{started,completed,failed} lifecycle events.
type instanceEvent struct {
	eventType  string
	instanceID string
	err        error
}

func (e instanceEvent) EventType() string { return e.eventType }

func (e instanceEvent) Payload() interface{} {
	return InstanceEventPayload{InstanceID: e.instanceID, Err: e.err}
}

// InstanceEventPayload is the payload carried by instance lifecycle events.
type InstanceEventPayload struct {
	InstanceID string
	Err        error
}
