// Package tui renders a live view of a single instance's provisioning run,
// fed entirely by the step-graph's published domain events — it never calls
// into stepgraph or driver directly.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"provision/internal/tui/components"
)

// StepStatus is the lifecycle state of one step within the current instance.
type StepStatus string

const (
	StatusPending StepStatus = "pending"
	StatusRunning StepStatus = "running"
	StatusSuccess StepStatus = "success"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

// StepResult is a single step's rendered state.
type StepResult struct {
	StepID  string
	Status  StepStatus
	Message string
}

// InstanceSummary records a finished instance's outcome for the trailing
// summary section.
type InstanceSummary struct {
	InstanceID string
	Err        error
}

// InstanceStartMsg announces that a new instance has begun provisioning,
// resetting the step list.
type InstanceStartMsg struct {
	InstanceID string
}

// StepStartMsg indicates a step of the current instance has started running.
type StepStartMsg struct {
	InstanceID string
	StepID     string
}

// StepCompleteMsg reports a step's terminal state within the current
// instance: success, failure, or short-circuit skip.
type StepCompleteMsg struct {
	InstanceID string
	StepID     string
	Status     StepStatus
	Message    string
}

// InstanceCompleteMsg reports a finished instance's overall outcome.
type InstanceCompleteMsg struct {
	InstanceID string
	Err        error
}

// DoneMsg signals that every instance has been processed and the program
// should exit its event loop.
type DoneMsg struct{}

type tickMsg struct{}

// Model is the Bubbletea state for the provisioning TUI.
type Model struct {
	currentInstance string
	steps           map[string]StepResult
	order           []string
	total           int
	completed       int

	finishedInstances []InstanceSummary

	done      bool
	cancelled bool
}

// NewModel constructs an empty TUI model.
func NewModel() Model {
	return Model{
		steps: make(map[string]StepResult),
		order: make([]string, 0),
	}
}

// Init starts the Bubbletea program's tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) ensureStep(id string) {
	if id == "" {
		return
	}
	if _, exists := m.steps[id]; !exists {
		m.steps[id] = StepResult{StepID: id, Status: StatusPending}
		m.order = append(m.order, id)
		m.total++
	}
}

func (m *Model) resetForInstance(instanceID string) {
	m.currentInstance = instanceID
	m.steps = make(map[string]StepResult)
	m.order = nil
	m.total = 0
	m.completed = 0
}

func statusComponent(s StepStatus) components.StepStatus {
	switch s {
	case StatusRunning:
		return components.StepStatusRunning
	case StatusSuccess:
		return components.StepStatusSuccess
	case StatusFailed:
		return components.StepStatusFailed
	case StatusSkipped:
		return components.StepStatusSkipped
	default:
		return components.StepStatusPending
	}
}
