package components

import (
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, "#3b82f6", theme.Palette.Primary.Base.Light)
	assert.Equal(t, "#111827", theme.Palette.Surface.OnBase.Light)
	assert.Equal(t, lipgloss.RoundedBorder(), theme.Borders.Rounded)
	assert.Equal(t, 2, theme.Spacing.Padding[SpacingSizeMedium])
	assert.Equal(t, 1, theme.Spacing.Margin[SpacingSizeSmall])
	assert.True(t, theme.Typography.Title.GetBold(), "title typography should be bold")
}

func TestSetGetTheme(t *testing.T) {
	original := GetTheme()

	custom := DefaultTheme()
	custom.Palette.Primary.Base = lipgloss.AdaptiveColor{Light: "#0000ff", Dark: "#1e3a8a"}
	SetTheme(custom)

	active := GetTheme()
	assert.Equal(t, "#0000ff", active.Palette.Primary.Base.Light)

	SetTheme(original)
}

func TestBorderStyle(t *testing.T) {
	assert.Equal(t, lipgloss.NormalBorder(), BorderStyle(BorderVariantNormal))
	assert.Equal(t, lipgloss.RoundedBorder(), BorderStyle(BorderVariantRounded))
}

func TestSpacingHelpers(t *testing.T) {
	SetTheme(DefaultTheme())
	assert.Equal(t, 2, PaddingValue(SpacingSizeMedium))
	assert.Equal(t, 1, MarginValue(SpacingSizeSmall))
}

func TestTypographyStyle(t *testing.T) {
	title := TypographyStyle(TypographyVariantTitle)
	assert.True(t, title.GetBold(), "title typography should be bold")
}

func TestStyleApplier(t *testing.T) {
	style := Style(
		lipgloss.NewStyle(),
		Background(PalettePrimary),
		Padding(SpacingSizeMedium),
		Border(BorderVariantRounded),
	)

	assert.NotEmpty(t, style.GetBackground(), "expected background to be set")
	assert.True(t, style.GetPaddingLeft() > 0, "expected padding to be applied")
}

func TestCardBaseStyle(t *testing.T) {
	cardStyle := Style(lipgloss.NewStyle(), CardBaseStyle()...)
	assert.NotEmpty(t, cardStyle.GetBackground(), "card style should set background")
}

func TestThemeSwitch(t *testing.T) {
	original := GetTheme()

	dark := DefaultTheme()
	dark.Palette.Surface.Base = lipgloss.AdaptiveColor{Light: "#0b1120", Dark: "#0b1120"}
	SetTheme(dark)

	assert.NotEqual(t, original.Palette.Surface.Base.Light, GetTheme().Palette.Surface.Base.Light)

	SetTheme(original)
	assert.Equal(t, original.Palette.Surface.Base.Light, GetTheme().Palette.Surface.Base.Light)
}

func TestConcurrentThemeAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			palette := GetTheme().Palette
			assert.NotEmpty(t, palette.Primary.Base.Light)
		}()
	}
	wg.Wait()
}
