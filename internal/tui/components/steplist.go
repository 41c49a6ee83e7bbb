package components

// StepStatus mirrors tui.StepStatus without importing it, keeping this
// package free of a dependency on its parent.
type StepStatus string

const (
	StepStatusPending StepStatus = "pending"
	StepStatusRunning StepStatus = "running"
	StepStatusSuccess StepStatus = "success"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

// StepEntry represents a single step for rendering.
type StepEntry struct {
	ID      string
	Status  StepStatus
	Message string
}

// StepList renders a list of steps with their current status.
type StepList struct {
	entries []StepEntry
}

// NewStepList constructs a step list component from an insertion-ordered
// list of step ids and a status/message lookup keyed by id.
func NewStepList(order []string, statuses map[string]StepStatus, messages map[string]string) StepList {
	entries := make([]StepEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, StepEntry{ID: id, Status: statuses[id], Message: messages[id]})
	}
	return StepList{entries: entries}
}

// Entries returns the ordered step entries.
func (s StepList) Entries() []StepEntry {
	clone := make([]StepEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}
