package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressViewRendersCompletedOverTotal(t *testing.T) {
	p := NewProgress(4)
	view := p.View(2)
	assert.True(t, strings.Contains(view, "2/4"))
}

func TestProgressViewHandlesZeroTotal(t *testing.T) {
	p := NewProgress(0)
	view := p.View(0)
	assert.True(t, strings.Contains(view, "0/0"))
}
