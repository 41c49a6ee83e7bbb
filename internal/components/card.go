package components

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// CardStyle defines the visual appearance of a Card component.
type CardStyle struct {
	BorderStyle  lipgloss.Style
	TitleStyle   lipgloss.Style
	ContentStyle lipgloss.Style
	IconStyle    lipgloss.Style
	Width        int
	Padding      int
}

// DefaultCardStyle returns a default card style using the current theme.
func DefaultCardStyle() CardStyle {
	baseStyle := Style(lipgloss.NewStyle(), CardBaseStyle()...)

	return CardStyle{
		BorderStyle: baseStyle,
		TitleStyle: Style(
			lipgloss.NewStyle(),
			Typography(TypographyVariantTitle),
			Foreground(PalettePrimary),
		),
		ContentStyle: Style(lipgloss.NewStyle(), Typography(TypographyVariantBody)),
		IconStyle: Style(
			lipgloss.NewStyle(),
			Foreground(PaletteInfo),
		),
		Width:   60,
		Padding: PaddingValue(SpacingSizeSmall),
	}
}

// CardData represents the content of a status card: a title, a one-line
// description, an optional icon, and a set of metadata key/value pairs
// rendered below it.
type CardData struct {
	Title       string
	Description string
	Icon        string
	Metadata    map[string]string
}

// Card is a lipgloss-rendered status card.
type Card struct {
	data  CardData
	style CardStyle
}

// NewCard creates a new card with the given data and the default style.
func NewCard(data CardData) *Card {
	return &Card{
		data:  data,
		style: DefaultCardStyle(),
	}
}

// WithStyle sets a custom style for the card.
func (c *Card) WithStyle(style CardStyle) *Card {
	c.style = style
	return c
}

// View renders the card.
func (c *Card) View() string {
	var content []string

	if c.data.Title != "" {
		content = append(content, c.renderHeader())
	}

	if c.data.Description != "" {
		content = append(content, c.style.ContentStyle.Render(c.wrapText(c.data.Description)))
	}

	if len(c.data.Metadata) > 0 {
		content = append(content, "")
		keys := make([]string, 0, len(c.data.Metadata))
		for k := range c.data.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			line := fmt.Sprintf("%s: %s", key, c.data.Metadata[key])
			content = append(content, c.style.ContentStyle.Render(line))
		}
	}

	return c.style.BorderStyle.Render(strings.Join(content, "\n"))
}

// renderHeader creates the header with icon and title.
func (c *Card) renderHeader() string {
	var header strings.Builder

	if c.data.Icon != "" {
		header.WriteString(c.style.IconStyle.Render(c.data.Icon + " "))
	}
	header.WriteString(c.style.TitleStyle.Render(c.data.Title))

	return header.String()
}

// wrapText wraps text to fit within the card width, breaking long words
// across multiple lines where necessary.
func (c *Card) wrapText(text string) string {
	if c.style.Width <= 0 {
		return text
	}

	borderWidth := horizontalBorderWidth(c.style.BorderStyle)
	paddingWidth := c.style.Padding * 2

	maxWidth := c.style.Width - paddingWidth - borderWidth
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range words {
		if utf8.RuneCountInString(word) > maxWidth {
			wordRunes := []rune(word)
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			for len(wordRunes) > maxWidth {
				lines = append(lines, string(wordRunes[:maxWidth]))
				wordRunes = wordRunes[maxWidth:]
			}
			if len(wordRunes) > 0 {
				currentLine = string(wordRunes)
			}
			continue
		}

		testLine := currentLine
		if currentLine != "" {
			testLine += " "
		}
		testLine += word

		if utf8.RuneCountInString(testLine) <= maxWidth {
			currentLine = testLine
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n")
}

// horizontalBorderWidth sums left and right border sizes, falling back to zero on error.
func horizontalBorderWidth(style lipgloss.Style) (width int) {
	defer func() {
		if recover() != nil {
			width = 0
		}
	}()

	width = style.GetBorderLeftSize() + style.GetBorderRightSize()
	if width < 0 {
		return 0
	}
	return width
}

// StatusCard creates a card with status-specific styling using theme colors.
// status selects both the accent colour and (absent an explicit data.Icon)
// the glyph rendered before the title — one of "success", "error"/"failed",
// "warning", or "info".
func StatusCard(data CardData, status string) *Card {
	style := DefaultCardStyle()
	var statusStyle []StyleApplier

	switch status {
	case "success":
		statusStyle = []StyleApplier{Foreground(PaletteSuccess)}
		if data.Icon == "" {
			data.Icon = "✓"
		}
	case "error", "failed":
		statusStyle = []StyleApplier{Foreground(PaletteDanger)}
		if data.Icon == "" {
			data.Icon = "✗"
		}
	case "warning":
		statusStyle = []StyleApplier{Foreground(PaletteWarning)}
		if data.Icon == "" {
			data.Icon = "⚠"
		}
	case "info":
		statusStyle = []StyleApplier{Foreground(PaletteInfo)}
		if data.Icon == "" {
			data.Icon = "ℹ"
		}
	}

	style.BorderStyle = Style(style.BorderStyle, statusStyle...)
	style.IconStyle = Style(style.IconStyle, statusStyle...)

	return NewCard(data).WithStyle(style)
}
