package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"devinfo/pkg/bytefmt"
	"devinfo/pkg/capacity"
)

const storageTitle = " Storage"

// StorageView renders a volume's capacity as nested bars, one terminal line per layer.
type StorageView struct {
	// Debug adds a labelled row per reported layer and shows the exact total.
	Debug bool
	Style bytefmt.CountStyle
}

// Render draws snapshot into a panel width columns wide.
func (v StorageView) Render(snapshot capacity.Snapshot, width int) string {
	width = max(width, 0)
	bars := capacity.Compute(capacity.StorageLayers(snapshot), snapshot.Total, float64(width))
	background := capacity.Background(float64(width))

	lines := make([]string, 0, len(bars)+1)
	lines = append(lines, paintLine(storageTitle, v.Summary(snapshot), width, background, bars))

	if v.Debug {
		total := snapshot.TotalOrZero()
		// Innermost layer first: each row sits under the bars of the layers enclosing it.
		for i := len(bars) - 1; i >= 0; i-- {
			value := bytefmt.Format(&bars[i].Display, v.Style, false).String()
			if total > 0 {
				value += " (" + Percent(capacity.Percent(bars[i].Display, total)) + ")"
			}
			lines = append(lines, paintLine(" "+bars[i].Label, value+" ", width, background, bars[:i]))
		}
	}

	return strings.Join(lines, "\n")
}

// Summary is the right-hand header text: "available / total", or the unrounded
// total in debug mode. It is empty when no total is reported.
func (v StorageView) Summary(snapshot capacity.Snapshot) string {
	total := bytefmt.Format(snapshot.Total, v.Style, !v.Debug)
	if total.IsEmpty() {
		return ""
	}
	if v.Debug {
		return "Total Capacity: " + total.String() + " "
	}

	available := bytefmt.Format(snapshot.Available, v.Style, true)
	if available.IsEmpty() {
		return total.String() + " "
	}

	return available.Value + " / " + total.String() + " "
}

// paintLine lays out left and right text across width columns and colours
// each column with the innermost bar covering it.
func paintLine(left, right string, width int, background capacity.Bar, bars []capacity.Bar) string {
	text := []rune(layout(left, right, width))

	colors := make([]string, width)
	for _, bar := range append([]capacity.Bar{background}, bars...) {
		if _, ok := colorFor(bar.Color); !ok {
			continue
		}
		cover := min(width, int(math.Round(bar.Width)))
		for col := 0; col < cover; col++ {
			colors[col] = bar.Color
		}
	}

	var b strings.Builder
	start := 0
	for col := 1; col <= width; col++ {
		if col < width && colors[col] == colors[start] {
			continue
		}
		segment := string(text[start:col])
		if c, ok := colorFor(colors[start]); ok {
			segment = lipgloss.NewStyle().Background(c).Foreground(ColorText).Render(segment)
		}
		b.WriteString(segment)
		start = col
	}

	return b.String()
}

// layout places left at the start and right at the end of a width-rune line,
// truncating left when both do not fit.
func layout(left, right string, width int) string {
	l, r := []rune(left), []rune(right)
	if len(r) > width {
		r = r[len(r)-width:]
	}
	if room := width - len(r); len(l) > room {
		l = l[:room]
	}

	gap := width - len(l) - len(r)
	return string(l) + strings.Repeat(" ", gap) + string(r)
}
