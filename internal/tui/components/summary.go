package components

import (
	"fmt"
	"strings"
)

// InstanceOutcome records one finished instance's provisioning result for
// the trailing summary section.
type InstanceOutcome struct {
	InstanceID string
	Err        error
}

// SummaryData aggregates counts and finished-instance outcomes for
// rendering.
type SummaryData struct {
	CurrentInstance   string
	Total             int
	Completed         int
	Done              bool
	Cancelled         bool
	FinishedInstances []InstanceOutcome
}

// Summary renders a textual execution summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string

	if s.data.CurrentInstance != "" && s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d/%d steps completed", s.data.CurrentInstance, s.data.Completed, s.data.Total))
	}

	if s.data.Cancelled {
		lines = append(lines, "Provisioning cancelled")
	} else if s.data.Done {
		lines = append(lines, "All instances processed")
	}

	if len(s.data.FinishedInstances) > 0 {
		lines = append(lines, "Instances:")
		for _, o := range s.data.FinishedInstances {
			if o.Err == nil {
				lines = append(lines, fmt.Sprintf("  ✓ %s: ok", o.InstanceID))
			} else {
				lines = append(lines, fmt.Sprintf("  ✗ %s: %v", o.InstanceID, o.Err))
			}
		}
	}

	return strings.Join(lines, "\n")
}
