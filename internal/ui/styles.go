package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used by panels.
const (
	ColorPanelBg   = "240" // Gray - panel background
	ColorPanelText = "15"  // White - panel text
	ColorControlBg = "238" // Dark gray - minimize control
	ColorDanger    = "196" // Red - error entries
	ColorLink      = "117" // Light blue - link labels
	ColorMuted     = "241" // Gray - hints
)

// namedColors maps the color names callers pass to Log to terminal colors.
var namedColors = map[string]string{
	"red":    "196",
	"green":  "34",
	"blue":   "33",
	"yellow": "226",
	"orange": "208",
	"white":  "15",
	"black":  "0",
	"gray":   "245",
	"grey":   "245",
	"error":  ColorDanger,
}

// Styles contains the shared panel styles.
var Styles = struct {
	Panel   lipgloss.Style // Text and meter panel body
	Link    lipgloss.Style // Link label
	Control lipgloss.Style // Minimize glyph
	Badge   lipgloss.Style // Hidden-panel count
	Hint    lipgloss.Style // Background help text
}{
	Panel: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorPanelBg)).
		Foreground(lipgloss.Color(ColorPanelText)),
	Link: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorPanelBg)).
		Foreground(lipgloss.Color(ColorLink)).
		Underline(true),
	Control: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorControlBg)).
		Foreground(lipgloss.Color(ColorPanelText)).
		Bold(true),
	Badge: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorPanelBg)).
		Foreground(lipgloss.Color(ColorPanelText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}

// resolveColor maps a named color to a terminal color; anything else
// (ANSI index, hex) passes through.
func resolveColor(c string) lipgloss.Color {
	if v, ok := namedColors[c]; ok {
		return lipgloss.Color(v)
	}
	return lipgloss.Color(c)
}
