package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"provision/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("provision • %s", m.title()))
	sections = append(sections, title)

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	statuses := make(map[string]components.StepStatus, len(m.steps))
	messages := make(map[string]string, len(m.steps))
	for id, res := range m.steps {
		statuses[id] = statusComponent(res.Status)
		messages[id] = res.Message
	}

	listComp := components.NewStepList(m.order, statuses, messages)
	entries := listComp.Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Steps"))
		sections = append(sections, renderStepEntries(entries))
	}

	outcomes := make([]components.InstanceOutcome, 0, len(m.finishedInstances))
	for _, s := range m.finishedInstances {
		outcomes = append(outcomes, components.InstanceOutcome{InstanceID: s.InstanceID, Err: s.Err})
	}

	summary := components.NewSummary(components.SummaryData{
		CurrentInstance:   m.currentInstance,
		Total:             m.total,
		Completed:         m.completed,
		Done:              m.done,
		Cancelled:         m.cancelled,
		FinishedInstances: outcomes,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStepEntries(entries []components.StepEntry) string {
	var lines []string
	for _, entry := range entries {
		icon := StatusIcon(entry.Status)
		line := fmt.Sprintf(" %s %s", icon, entry.ID)
		if strings.TrimSpace(entry.Message) != "" {
			line = fmt.Sprintf("%s — %s", line, entry.Message)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) title() string {
	if m.currentInstance != "" {
		return m.currentInstance
	}
	return "provisioning"
}

// StatusIcon returns the glyph representing a step status.
func StatusIcon(status components.StepStatus) string {
	switch status {
	case components.StepStatusSuccess:
		return successStyle.Render("✓")
	case components.StepStatusRunning:
		return runningStyle.Render("⏳")
	case components.StepStatusFailed:
		return failureStyle.Render("✗")
	case components.StepStatusSkipped:
		return skippedStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}
