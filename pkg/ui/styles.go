// Package ui renders device and storage panels for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette maps the colour tokens used by the device and capacity tables.
var Palette = map[string]lipgloss.Color{
	"gray":   lipgloss.Color("#8E8E93"),
	"green":  lipgloss.Color("#34C759"),
	"yellow": lipgloss.Color("#FFCC00"),
	"red":    lipgloss.Color("#FF3B30"),
	"blue":   lipgloss.Color("#007AFF"),
	"mint":   lipgloss.Color("#00C7BE"),
	"purple": lipgloss.Color("#AF52DE"),
	"brown":  lipgloss.Color("#A2845E"),
	"pink":   lipgloss.Color("#FF2D55"),
	"orange": lipgloss.Color("#FF9500"),
}

var (
	ColorText  = lipgloss.Color("#000000")
	ColorMuted = lipgloss.Color("#6C6C70")

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Align(lipgloss.Center)
)

// colorFor resolves a token. The "clear" token and unknown tokens report false.
func colorFor(token string) (lipgloss.Color, bool) {
	c, ok := Palette[token]
	return c, ok
}
