package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil

	case InstanceStartMsg:
		m.resetForInstance(msg.InstanceID)
		return m, nil

	case StepStartMsg:
		if msg.InstanceID != m.currentInstance {
			return m, nil
		}
		m.ensureStep(msg.StepID)
		step := m.steps[msg.StepID]
		step.Status = StatusRunning
		m.steps[msg.StepID] = step
		return m, nil

	case StepCompleteMsg:
		if msg.InstanceID != m.currentInstance {
			return m, nil
		}
		m.ensureStep(msg.StepID)
		existing := m.steps[msg.StepID]
		previouslyDone := existing.Status == StatusSuccess || existing.Status == StatusFailed || existing.Status == StatusSkipped
		m.steps[msg.StepID] = StepResult{StepID: msg.StepID, Status: msg.Status, Message: msg.Message}
		if !previouslyDone {
			m.completed++
		}
		return m, nil

	case InstanceCompleteMsg:
		m.finishedInstances = append(m.finishedInstances, InstanceSummary{InstanceID: msg.InstanceID, Err: msg.Err})
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}

	case tea.QuitMsg:
		m.done = true
		return m, nil
	}

	return m, nil
}
