package stepgraph

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provision/internal/domain/provisionspec"
	pkgerrors "provision/pkg/errors"
)

// recorder captures the order in which run/cleanup are invoked across
// goroutines, the teacher's stub-plugin test style adapted to this domain.
type recorder struct {
	mu            sync.Mutex
	events        []string
	runCounts     map[string]int
	cleanupCounts map[string]int
}

func newRecorder() *recorder {
	return &recorder{runCounts: map[string]int{}, cleanupCounts: map[string]int{}}
}

func (r *recorder) recordRun(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "run:"+name)
	r.runCounts[name]++
}

func (r *recorder) recordCleanup(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "cleanup:"+name)
	r.cleanupCounts[name]++
}

func (r *recorder) indexOf(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e == event {
			return i
		}
	}
	return -1
}

// fakeStep is a Step stub: it records its own run/cleanup invocations, can
// be made to fail or sleep, and never touches the filesystem.
type fakeStep struct {
	stepName  string
	rec       *recorder
	runErr    error
	runDelay  time.Duration
	runCalled int32
}

func (s *fakeStep) Name() string { return s.stepName }

func (s *fakeStep) Run(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) error {
	if s.runDelay > 0 {
		time.Sleep(s.runDelay)
	}
	s.rec.recordRun(s.stepName)
	return s.runErr
}

func (s *fakeStep) Cleanup(ctx context.Context, ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) {
	s.rec.recordCleanup(s.stepName)
}

var (
	testWorkspace = provisionspec.WorkspaceSpec{Path: "/tmp/ws"}
	testInstance  = provisionspec.InstanceSpec{ID: "pi-01"}
)

// S1: single node, no edges.
func TestExecuteSingleNode(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)

	require.NoError(t, err)
	assert.Equal(t, 1, rec.runCounts["A"])
	assert.Equal(t, 1, rec.cleanupCounts["A"])
}

// S2: A depends on B; run(B) < run(A) < cleanup(A) < cleanup(B).
func TestExecuteLinearDependency(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	b := g.AddNode(&fakeStep{stepName: "B", rec: rec})
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})
	g.AddEdge(a, b)

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)
	require.NoError(t, err)

	runB := rec.indexOf("run:B")
	runA := rec.indexOf("run:A")
	cleanupA := rec.indexOf("cleanup:A")
	cleanupB := rec.indexOf("cleanup:B")

	assert.True(t, runB < runA, "run(B) must precede run(A)")
	assert.True(t, runA < cleanupA, "run(A) must precede cleanup(A)")
	assert.True(t, cleanupA < cleanupB, "cleanup(A) must precede cleanup(B)")
}

// S3: A depends on B and C; B and C run concurrently, both before A; cleanup(A)
// precedes cleanup(B) and cleanup(C).
func TestExecuteFanOutDependencies(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	b := g.AddNode(&fakeStep{stepName: "B", rec: rec, runDelay: 20 * time.Millisecond})
	c := g.AddNode(&fakeStep{stepName: "C", rec: rec})
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})
	g.AddEdge(a, b)
	g.AddEdge(a, c)

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)
	require.NoError(t, err)

	runA := rec.indexOf("run:A")
	assert.True(t, rec.indexOf("run:B") < runA)
	assert.True(t, rec.indexOf("run:C") < runA)

	cleanupA := rec.indexOf("cleanup:A")
	assert.True(t, cleanupA < rec.indexOf("cleanup:B"))
	assert.True(t, cleanupA < rec.indexOf("cleanup:C"))
}

// S4: A depends on B; B.run fails. A.run must not be called; execute returns
// a StepError naming B; cleanup runs on both.
func TestExecuteShortCircuitsOnDependencyFailure(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	failure := errors.New("x")
	b := g.AddNode(&fakeStep{stepName: "B", rec: rec, runErr: failure})
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})
	g.AddEdge(a, b)

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)

	require.Error(t, err)
	var stepErr *pkgerrors.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "B", stepErr.StepName)
	assert.True(t, errors.Is(err, failure))

	assert.Equal(t, 0, rec.runCounts["A"])
	assert.Equal(t, 1, rec.cleanupCounts["A"])
	assert.Equal(t, 1, rec.cleanupCounts["B"])
}

// S5: A depends on B and C; B fails immediately, C sleeps then succeeds.
// execute must wait for C; A.run must not be called; cleanup runs on all
// three.
func TestExecuteWaitsForSlowSiblingBeforeShortCircuiting(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	failure := errors.New("x")
	b := g.AddNode(&fakeStep{stepName: "B", rec: rec, runErr: failure})
	c := g.AddNode(&fakeStep{stepName: "C", rec: rec, runDelay: 30 * time.Millisecond})
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})
	g.AddEdge(a, b)
	g.AddEdge(a, c)

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)

	require.Error(t, err)
	assert.Equal(t, 1, rec.runCounts["C"], "C must still run to completion")
	assert.Equal(t, 0, rec.runCounts["A"])
	for _, name := range []string{"A", "B", "C"} {
		assert.Equal(t, 1, rec.cleanupCounts[name])
	}
}

// S6: diamond A->{B,C}, B->D, C->D, terminal A. run(D) exactly once, every
// node's cleanup exactly once.
func TestExecuteDiamondRunsSharedDependencyOnce(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	d := g.AddNode(&fakeStep{stepName: "D", rec: rec})
	b := g.AddNode(&fakeStep{stepName: "B", rec: rec})
	c := g.AddNode(&fakeStep{stepName: "C", rec: rec})
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})
	g.AddEdge(a, b)
	g.AddEdge(a, c)
	g.AddEdge(b, d)
	g.AddEdge(c, d)

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)
	require.NoError(t, err)

	for _, name := range []string{"A", "B", "C", "D"} {
		assert.Equal(t, 1, rec.runCounts[name])
		assert.Equal(t, 1, rec.cleanupCounts[name])
	}
}

// Invariant 1: execute(until) visits exactly the ancestors of until, never
// nodes unrelated to it.
func TestExecuteVisitsOnlyAncestorsOfTerminal(t *testing.T) {
	rec := newRecorder()
	g := NewStepGraph(nil, nil)
	b := g.AddNode(&fakeStep{stepName: "B", rec: rec})
	a := g.AddNode(&fakeStep{stepName: "A", rec: rec})
	g.AddEdge(a, b)
	unrelated := g.AddNode(&fakeStep{stepName: "Unrelated", rec: rec})
	_ = unrelated

	err := g.Execute(context.Background(), a, testWorkspace, testInstance)
	require.NoError(t, err)

	assert.Equal(t, 0, rec.runCounts["Unrelated"])
	assert.Equal(t, 0, rec.cleanupCounts["Unrelated"])
}

// AddEdge on an out-of-range id is a programming error: it panics rather
// than returning an error.
func TestAddEdgeOnUnknownNodePanics(t *testing.T) {
	g := NewStepGraph(nil, nil)
	a := g.AddNode(&fakeStep{stepName: "A", rec: newRecorder()})

	assert.Panics(t, func() {
		g.AddEdge(a, 99)
	})
}
