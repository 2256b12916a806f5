package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Keto24/saturday-planner/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// WeatherBadge returns a colored indicator for the forecast condition, such
// as "● CLEAR".
func WeatherBadge(cond domain.WeatherCondition) string {
	label := "● " + strings.ToUpper(string(cond))
	switch cond {
	case domain.WeatherClear:
		return StyleYellow.Render(label)
	case domain.WeatherCloudy:
		return StyleDim.Render(label)
	case domain.WeatherRain:
		return StyleBlue.Render(label)
	case domain.WeatherStorm, domain.WeatherExtreme:
		return StyleRed.Render(label)
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// CategoryBadge returns a capitalized, purple-styled category label.
func CategoryBadge(c domain.Category) string {
	s := string(c)
	if s == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(s[:1]) + s[1:]
	return StylePurple.Render(label)
}

// WeightStyle colors a preference weight: positive green, negative red,
// zero dim.
func WeightStyle(w float64) lipgloss.Style {
	switch {
	case w > 0:
		return StyleGreen
	case w < 0:
		return StyleRed
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
