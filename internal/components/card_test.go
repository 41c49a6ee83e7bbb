package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	data := CardData{
		Title:       "Test Card",
		Description: "This is a test card",
		Icon:        "📝",
	}

	card := NewCard(data)

	require.NotNil(t, card)
	assert.Equal(t, data, card.data)
	assert.Equal(t, DefaultCardStyle(), card.style)
}

func TestCardWithStyle(t *testing.T) {
	data := CardData{Title: "Test"}
	card := NewCard(data)

	customStyle := DefaultCardStyle()
	customStyle.Width = 80

	result := card.WithStyle(customStyle)

	assert.Equal(t, customStyle, card.style)
	assert.Same(t, card, result)
}

func TestCardViewWithTitleOnly(t *testing.T) {
	data := CardData{Title: "Test Card"}

	card := NewCard(data)
	view := card.View()

	assert.Contains(t, view, "Test Card")
	assert.NotContains(t, view, "Description")
}

func TestCardViewWithAllFields(t *testing.T) {
	data := CardData{
		Title:       "Test Card",
		Description: "This is a test description",
		Icon:        "📝",
		Metadata: map[string]string{
			"Version": "1.0.0",
			"Author":  "Test User",
		},
	}

	card := NewCard(data)
	view := card.View()

	assert.Contains(t, view, "Test Card")
	assert.Contains(t, view, "This is a test description")
	assert.Contains(t, view, "Version: 1.0.0")
	assert.Contains(t, view, "Author: Test User")
}

func TestCardViewTextWrapping(t *testing.T) {
	longText := "This is a very long text that should wrap when the card width is limited to test the text wrapping functionality properly."
	data := CardData{
		Title:       "Test Card",
		Description: longText,
	}

	style := DefaultCardStyle()
	style.Width = 30
	card := NewCard(data).WithStyle(style)
	view := card.View()

	assert.Contains(t, view, "Test Card")
	assert.Contains(t, view, "This is a")
	assert.Contains(t, view, "very long")
}

func TestCardViewEmptyData(t *testing.T) {
	card := NewCard(CardData{})
	view := card.View()

	assert.NotEmpty(t, view)
}

func TestStatusCard(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		expectedIcon string
	}{
		{"Success", "success", "✓"},
		{"Error", "error", "✗"},
		{"Failed", "failed", "✗"},
		{"Warning", "warning", "⚠"},
		{"Info", "info", "ℹ"},
		{"Unknown", "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := CardData{Title: "Test Card"}

			card := StatusCard(data, tt.status)
			view := card.View()

			assert.Contains(t, view, "Test Card")
			if tt.expectedIcon != "" {
				assert.Contains(t, view, tt.expectedIcon)
			}
		})
	}
}

func TestStatusCardCustomIcon(t *testing.T) {
	data := CardData{
		Title: "Test Card",
		Icon:  "🎯",
	}

	card := StatusCard(data, "success")
	view := card.View()

	assert.Contains(t, view, "Test Card")
	assert.Contains(t, view, "🎯")
	assert.NotContains(t, view, "✓")
}

func TestDefaultCardStyle(t *testing.T) {
	style := DefaultCardStyle()

	assert.Greater(t, style.Width, 0)
	assert.Greater(t, style.Padding, 0)
	assert.NotEqual(t, lipgloss.Style{}, style.BorderStyle)
	assert.NotEqual(t, lipgloss.Style{}, style.TitleStyle)
	assert.NotEqual(t, lipgloss.Style{}, style.ContentStyle)
	assert.NotEqual(t, lipgloss.Style{}, style.IconStyle)
}

func TestCardRenderHeader(t *testing.T) {
	tests := []struct {
		name     string
		data     CardData
		expected string
	}{
		{name: "Title only", data: CardData{Title: "Test"}, expected: "Test"},
		{name: "Title and icon", data: CardData{Title: "Test", Icon: "📝"}, expected: "📝 Test"},
		{name: "Icon only", data: CardData{Icon: "📝"}, expected: "📝 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(tt.data)
			header := card.renderHeader()
			assert.Contains(t, header, tt.expected)
		})
	}
}

func TestCardWrapText(t *testing.T) {
	card := NewCard(CardData{})

	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "Short text", text: "Short", width: 20, expected: "Short"},
		{
			name:     "Long text",
			text:     "This is a very long text",
			width:    10,
			expected: "This is a\nvery long\ntext",
		},
		{
			name:     "Single word longer than width",
			text:     "supercalifragilisticexpialidocious",
			width:    10,
			expected: "supercalif\nragilistic\nexpialidoc\nious",
		},
		{name: "Empty text", text: "", width: 10, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := card.style
			style.Width = tt.width + 8 // account for padding/border
			card.style = style
			result := card.wrapText(tt.text)
			assert.Equal(t, tt.expected, result)
		})
	}
}
