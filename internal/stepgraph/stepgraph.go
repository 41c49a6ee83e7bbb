// Package stepgraph implements the dependency-driven step executor: an
// append-only DAG of provisioning steps, executed in two phases (run, then
// cleanup) with dependency-failure short-circuiting. The graph is generic
// over what a "step" actually does — concrete provisioning actions live in
// internal/steps and are opaque to this package.
package stepgraph

import (
	"context"
	"fmt"
	"sync"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
	pkgerrors "provision/pkg/errors"
)

// Step is a named unit of work with a run phase and a cleanup phase. Run may
// suspend arbitrarily (I/O, sleeps, subprocess waits); the graph — not the
// step — wraps a non-nil error into a StepError stamped with the step's
// name. Cleanup never returns an error to the walk: implementations must log
// and swallow their own failures, and must tolerate being called without a
// prior (or successful) Run.
type Step interface {
	Name() string
	Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error
	Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec)
}

// VisitResult is the outcome published by a single node's visit, broadcast
// by value to every subscriber waiting on it.
type VisitResult struct {
	NodeID int
	Err    error
}

// StepGraph is an append-only multigraph of steps. Node ids are dense
// nonnegative integers assigned in insertion order; they are the sole handle
// callers use, names exist only for logs and errors.
type StepGraph struct {
	nodes    []Step
	edgesFwd [][]int // edgesFwd[n] = deps(n): steps n depends on
	edgesRev [][]int // edgesRev[n] = dependents(n): steps that depend on n

	logger    ports.Logger
	publisher ports.EventPublisher
}

// NewStepGraph creates an empty graph. A nil logger or publisher is replaced
// with a no-op implementation so callers never need to nil-check.
func NewStepGraph(logger ports.Logger, publisher ports.EventPublisher) *StepGraph {
	if logger == nil {
		logger = noopLogger{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &StepGraph{logger: logger, publisher: publisher}
}

// AddNode adds step as a new node and returns its id.
func (g *StepGraph) AddNode(step Step) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, step)
	g.edgesFwd = append(g.edgesFwd, nil)
	g.edgesRev = append(g.edgesRev, nil)
	return id
}

// AddEdge records that from depends on to, updating both adjacency lists.
// Panics — this is a programming error, not a runtime condition callers
// should recover from — if either id is out of range.
func (g *StepGraph) AddEdge(from, to int) {
	if from < 0 || from >= len(g.nodes) {
		panic(fmt.Sprintf("stepgraph: AddEdge: node %d not found", from))
	}
	if to < 0 || to >= len(g.nodes) {
		panic(fmt.Sprintf("stepgraph: AddEdge: node %d not found", to))
	}

	g.edgesFwd[from] = append(g.edgesFwd[from], to)
	g.edgesRev[to] = append(g.edgesRev[to], from)
}

// buildNodeSet computes the transitive closure of deps(node), including
// node itself.
func (g *StepGraph) buildNodeSet(node int, set map[int]struct{}) {
	if _, ok := set[node]; ok {
		return
	}
	set[node] = struct{}{}

	deps, ok := g.safeEdges(g.edgesFwd, node)
	if !ok {
		panic(fmt.Sprintf("stepgraph: buildNodeSet: invalid node %d", node))
	}
	for _, d := range deps {
		g.buildNodeSet(d, set)
	}
}

func (g *StepGraph) safeEdges(edges [][]int, node int) ([]int, bool) {
	if node < 0 || node >= len(edges) {
		return nil, false
	}
	return edges[node], true
}

// Execute runs a walk through the graph over every node that can reach
// until, then cleans up every node that was visited, in reverse dependency
// order. It returns the run-phase result for until — nil on success, a
// *pkgerrors.StepError (wrapped as error) on failure.
func (g *StepGraph) Execute(ctx context.Context, until int, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	nodeSet := make(map[int]struct{})
	g.buildNodeSet(until, nodeSet)

	runNeighborFn := func(n int) []int {
		return filterToSet(g.edgesFwd[n], nodeSet)
	}
	runVisitFn := func(ctx context.Context, step Step) error {
		g.publisher.Publish(ctx, newStepEvent(ports.EventStepStarted, step.Name(), inst.ID, nil))
		err := step.Run(ctx, ws, inst)
		if err != nil {
			g.publisher.Publish(ctx, newStepEvent(ports.EventStepFailed, step.Name(), inst.ID, err))
		} else {
			g.publisher.Publish(ctx, newStepEvent(ports.EventStepCompleted, step.Name(), inst.ID, nil))
		}
		return err
	}

	runResults := g.walk(ctx, nodeSet, runNeighborFn, runVisitFn, inst.ID)

	untilResult, ok := runResults[until]
	if !ok {
		panic("stepgraph: Execute: result for terminal node missing from run phase")
	}

	g.logger.Info(ctx, "provisioning finished, beginning cleanup", "instance_id", inst.ID)

	visitedSet := make(map[int]struct{}, len(runResults))
	for n := range runResults {
		visitedSet[n] = struct{}{}
	}

	cleanupNeighborFn := func(n int) []int {
		return filterToSet(g.edgesRev[n], visitedSet)
	}
	cleanupVisitFn := func(ctx context.Context, step Step) error {
		g.publisher.Publish(ctx, newStepEvent(ports.EventStepCleanupStarted, step.Name(), inst.ID, nil))
		step.Cleanup(ctx, ws, inst)
		g.publisher.Publish(ctx, newStepEvent(ports.EventStepCleanupCompleted, step.Name(), inst.ID, nil))
		return nil
	}

	g.walk(ctx, visitedSet, cleanupNeighborFn, cleanupVisitFn, inst.ID)

	return untilResult.Err
}

func filterToSet(candidates []int, set map[int]struct{}) []int {
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// resultCell is the one-slot broadcast primitive: exactly one publish,
// arbitrarily many subscribers, each of which may register before or after
// the publish happens. A closed channel gives this for free — a receive on
// a closed channel returns immediately — without reaching for sync.Cond or
// a third-party broadcast package.
type resultCell struct {
	done   chan struct{}
	result VisitResult
}

func newResultCell() *resultCell {
	return &resultCell{done: make(chan struct{})}
}

func (c *resultCell) publish(v VisitResult) {
	c.result = v
	close(c.done)
}

func (c *resultCell) wait() VisitResult {
	<-c.done
	return c.result
}

// walk runs visitFn for every node in nodeSet, respecting the ordering
// neighborFn imposes: node n's visit happens strictly after every node in
// neighborFn(n) has published its result. It is direction-agnostic — the run
// phase passes deps as neighbors, the cleanup phase passes dependents.
func (g *StepGraph) walk(
	ctx context.Context,
	nodeSet map[int]struct{},
	neighborFn func(n int) []int,
	visitFn func(ctx context.Context, step Step) error,
	instanceID string,
) map[int]VisitResult {
	cells := make(map[int]*resultCell, len(nodeSet))
	for n := range nodeSet {
		cells[n] = newResultCell()
	}

	var wg sync.WaitGroup
	for n := range nodeSet {
		n := n
		deps := neighborFn(n)
		depCells := make([]*resultCell, len(deps))
		for i, d := range deps {
			dc, ok := cells[d]
			if !ok {
				panic(fmt.Sprintf("stepgraph: walk: neighbor %d not in node set", d))
			}
			depCells[i] = dc
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			g.visit(ctx, n, depCells, cells[n], visitFn, instanceID)
		}()
	}

	wg.Wait()

	results := make(map[int]VisitResult, len(nodeSet))
	for n, cell := range cells {
		select {
		case <-cell.done:
			results[n] = cell.result
		default:
			panic(fmt.Sprintf("stepgraph: walk: node %d finished without publishing a result", n))
		}
	}
	return results
}

func (g *StepGraph) visit(
	ctx context.Context,
	nodeIdx int,
	dependencies []*resultCell,
	out *resultCell,
	visitFn func(ctx context.Context, step Step) error,
	instanceID string,
) {
	step := g.nodes[nodeIdx]
	stepName := step.Name()

	log := g.logger.With("component", "stepgraph", "instance_id", instanceID, "step_name", stepName)
	log.Debug(ctx, "starting")
	log.Debug(ctx, "waiting for dependencies")

	for _, dep := range dependencies {
		v := dep.wait()
		log.Debug(ctx, "dependency finished", "dependency_node", v.NodeID)

		if v.Err != nil {
			log.Debug(ctx, "dependency failed, short-circuiting", "cause", v.Err)
			g.publisher.Publish(ctx, newStepEvent(ports.EventStepSkipped, stepName, instanceID, v.Err))
			out.publish(VisitResult{NodeID: nodeIdx, Err: v.Err})
			return
		}
	}

	var result error
	if err := visitFn(ctx, step); err != nil {
		result = pkgerrors.NewStepError(stepName, err)
	}

	out.publish(VisitResult{NodeID: nodeIdx, Err: result})
}
