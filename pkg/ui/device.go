package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"devinfo/pkg/device"
)

const (
	// ClockLayout matches a long date with a complete time.
	ClockLayout = "Monday, January 2, 2006 at 3:04:05 PM MST"
	gaugeCells  = 20
	lowLevel    = 20
	midLevel    = 50
)

// DeviceView renders the device test screen.
type DeviceView struct {
	Version string
	Storage StorageView
}

// Render draws dev at time now, width columns wide.
func (v DeviceView) Render(dev device.Device, now time.Time, width int) string {
	version := v.Version
	if version == "" {
		version = "Unknown"
	}

	sections := []string{
		headerStyle.Render("devinfo v" + version),
		"Current time: " + now.Format(ClockLayout),
		BatteryLine(dev.Battery),
		"Current device: " + dev.Description(),
		"Identifier: " + dev.Identifier,
		"Device Name: " + orNil(dev.Name),
		"System Name: " + orNil(dev.SystemName),
		EnvironmentCards(dev),
		IdiomList(dev),
	}
	if len(dev.Capabilities) > 0 {
		sections = append(sections, CapabilityLine(dev.Capabilities))
	}
	sections = append(sections, "", v.Storage.Render(dev.Storage, width))

	return strings.Join(sections, "\n")
}

// BatteryLine renders a level gauge and description, or "No Battery".
func BatteryLine(b *device.Battery) string {
	if b == nil {
		return "No Battery"
	}

	filled := b.Level * gaugeCells / 100
	gauge := strings.Repeat("█", filled) + strings.Repeat("░", gaugeCells-filled)

	color := Palette["green"]
	switch {
	case b.Level < lowLevel:
		color = Palette["red"]
	case b.Level < midLevel || b.LowPowerMode:
		color = Palette["yellow"]
	}

	return "Battery Info: " + lipgloss.NewStyle().Foreground(color).Render("["+gauge+"]") + " " + b.Description()
}

// EnvironmentCards renders one card per environment visible for dev,
// highlighting those that match.
func EnvironmentCards(dev device.Device) string {
	var cards []string
	for _, env := range device.Environments() {
		if !env.Visible(dev) {
			continue
		}
		cards = append(cards, card(env.Label, env.Color, env.Match(dev)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// IdiomList renders every idiom, highlighting the device's own in its colour.
func IdiomList(dev device.Device) string {
	labels := make([]string, 0, len(device.Idioms()))
	for _, idiom := range device.Idioms() {
		label := idiom.Label()
		if idiom == dev.Idiom {
			label = lipgloss.NewStyle().
				Background(Palette[dev.Idiom.Color()]).
				Foreground(ColorText).
				Render("[" + label + "]")
		} else {
			label = mutedStyle.Render(label)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, "  ")
}

// CapabilityLine lists capability labels.
func CapabilityLine(caps []device.Capability) string {
	labels := make([]string, len(caps))
	for i, c := range caps {
		labels[i] = c.Label()
	}
	return "Capabilities: " + strings.Join(labels, ", ")
}

func card(label, colorToken string, highlighted bool) string {
	style := cardStyle
	if c, ok := colorFor(colorToken); ok && highlighted {
		style = style.Background(c).Foreground(ColorText).BorderForeground(c)
	}
	mark := " "
	if highlighted {
		mark = "*"
	}
	return style.Render(mark + label)
}

func orNil(s string) string {
	if s == "" {
		return "nil"
	}
	return s
}

// Percent formats a percentage with no decimals, e.g. "42%".
func Percent(p float64) string {
	return strconv.Itoa(int(p+0.5)) + "%"
}
