package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewRendersCurrentInstanceTitle(t *testing.T) {
	m := NewModel()
	m, _ = asModel(m.Update(InstanceStartMsg{InstanceID: "pi-03"}))

	view := m.View()
	assert.Contains(t, view, "pi-03")
}

func TestViewRendersStepEntries(t *testing.T) {
	m := NewModel()
	m, _ = asModel(m.Update(InstanceStartMsg{InstanceID: "pi-03"}))
	m, _ = asModel(m.Update(StepStartMsg{InstanceID: "pi-03", StepID: "mkdir"}))
	m, _ = asModel(m.Update(StepCompleteMsg{InstanceID: "pi-03", StepID: "mkdir", Status: StatusSuccess}))

	view := m.View()
	assert.Contains(t, view, "mkdir")
}
