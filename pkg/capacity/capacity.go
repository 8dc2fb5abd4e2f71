// Package capacity computes proportional widths for nested storage capacity bars.
//
// Each layer's bar covers the complement of its share of the total, so layers
// with smaller capacities draw wider bars and stack visibly inside each other.
package capacity

import "math"

// Colors used by the storage layer table.
const (
	ColorGray   = "gray"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
	ColorClear  = "clear"
)

// Layer is one nested tier of a capacity bar. A nil Bytes means the figure is
// not reported and the layer must not be drawn.
type Layer struct {
	Label    string  `json:"label"`
	Bytes    *uint64 `json:"bytes,omitempty"`
	Inverted bool    `json:"inverted"`
	Color    string  `json:"color"`
}

// Bar is a computed layer ready for rendering.
type Bar struct {
	Layer
	Width   float64 `json:"width"`
	Display uint64  `json:"display"`
}

// Snapshot holds the capacity figures reported for a volume.
type Snapshot struct {
	Total         *uint64 `json:"total,omitempty"`
	Available     *uint64 `json:"available,omitempty"`
	Opportunistic *uint64 `json:"opportunistic,omitempty"`
	Important     *uint64 `json:"important,omitempty"`
}

// TotalOrZero returns the total capacity, treating a missing figure as zero.
func (s Snapshot) TotalOrZero() uint64 {
	if s.Total == nil {
		return 0
	}
	return *s.Total
}

// Used returns total minus available, or nil when either figure is missing.
func (s Snapshot) Used() *uint64 {
	if s.Total == nil || s.Available == nil {
		return nil
	}
	used := Invert(*s.Available, *s.Total, true)
	return &used
}

// WidthFor returns containerWidth * (1 - capacity/total), clamped to [0, containerWidth].
// A zero total yields the full container width; a non-finite container yields 0.
func WidthFor(capacity, total uint64, containerWidth float64) float64 {
	if containerWidth <= 0 || math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) {
		return 0
	}
	if total == 0 {
		return containerWidth
	}

	fraction := float64(capacity) / float64(total)
	width := containerWidth * (1 - fraction)

	return math.Max(0, math.Min(containerWidth, width))
}

// Invert returns total - capacity when inverted is set, otherwise capacity.
// A capacity larger than total clamps to zero.
func Invert(capacity, total uint64, inverted bool) uint64 {
	if !inverted {
		return capacity
	}
	if capacity > total {
		return 0
	}
	return total - capacity
}

// Percent returns part as a percentage of total in [0, 100]. A zero total yields 0.
func Percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return math.Min(100, float64(part)/float64(total)*100)
}

// StorageLayers returns the storage layer table, outermost first. The used
// layer is derived from the available figure by inversion.
func StorageLayers(s Snapshot) []Layer {
	return []Layer{
		{Label: "Volume Available Capacity:", Bytes: s.Available, Color: ColorGreen},
		{Label: "Available for Opportunistic:", Bytes: s.Opportunistic, Color: ColorYellow},
		{Label: "Available for Important:", Bytes: s.Important, Color: ColorRed},
		{Label: "Used Capacity:", Bytes: s.Available, Inverted: true, Color: ColorClear},
	}
}

// Compute drops absent layers and computes the bar width and displayed figure
// of each remaining layer. A nil total is treated as zero.
func Compute(layers []Layer, total *uint64, containerWidth float64) []Bar {
	var t uint64
	if total != nil {
		t = *total
	}

	bars := make([]Bar, 0, len(layers))
	for _, layer := range layers {
		if layer.Bytes == nil {
			continue
		}
		bars = append(bars, Bar{
			Layer:   layer,
			Width:   WidthFor(*layer.Bytes, t, containerWidth),
			Display: Invert(*layer.Bytes, t, layer.Inverted),
		})
	}

	return bars
}

// Background returns the full-width bar drawn behind every layer.
func Background(containerWidth float64) Bar {
	return Bar{
		Layer: Layer{Color: ColorGray},
		Width: WidthFor(0, 1, containerWidth),
	}
}
