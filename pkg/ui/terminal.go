package ui

import (
	"os"

	"golang.org/x/term"

	"devinfo/pkg/capacity"
)

// DefaultColumns is used when the output is not a terminal.
const DefaultColumns = 80

// MeasureTerminal reports the column count of f, falling back to DefaultColumns.
func MeasureTerminal(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		return DefaultColumns
	}
	cols, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
	if err != nil || cols <= 0 {
		return DefaultColumns
	}
	return cols
}

// Remeasure updates surface from f and reports whether the width changed.
func Remeasure(surface *capacity.Surface, f *os.File) bool {
	return surface.Resize(float64(MeasureTerminal(f)))
}

// Columns returns the cached surface width as whole columns.
func Columns(surface *capacity.Surface) int {
	width, ok := surface.Width()
	if !ok {
		return DefaultColumns
	}
	return int(width)
}
