// Package bytefmt renders byte counts as human-scaled magnitudes.
package bytefmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// CountStyle selects the divisor convention used when scaling a byte count.
type CountStyle int

const (
	// File scales by 1000 and uses SI unit names (KB, MB, GB).
	File CountStyle = iota
	// Memory scales by 1024 and uses IEC unit names (KiB, MiB, GiB).
	Memory
	// None performs no scaling and emits no unit.
	None
)

const (
	fileBase   = 1000
	memoryBase = 1024
)

var (
	fileUnits   = []string{"bytes", "KB", "MB", "GB", "TB", "PB", "EB"}
	memoryUnits = []string{"bytes", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	// Fraction digits per scale: bytes and kilo are whole numbers, mega keeps one digit, giga and up keep two.
	scaleDigits = []int{0, 0, 1, 2, 2, 2, 2}
)

// String returns the config/query name of the style.
func (s CountStyle) String() string {
	switch s {
	case File:
		return "file"
	case Memory:
		return "memory"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ParseStyle maps a style name to a CountStyle.
func ParseStyle(name string) (CountStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "file", "decimal":
		return File, nil
	case "memory", "binary":
		return Memory, nil
	case "none":
		return None, nil
	default:
		return File, InvalidStyleError{Name: name}
	}
}

// InvalidStyleError is returned when a count style name is not recognized.
type InvalidStyleError struct {
	Name string
}

func (e InvalidStyleError) Error() string {
	return "invalid count style: " + e.Name
}

// Magnitude is a formatted byte count. An empty Value means no data.
type Magnitude struct {
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// IsEmpty reports whether the magnitude carries no data.
func (m Magnitude) IsEmpty() bool {
	return m.Value == ""
}

// String joins the value and unit.
func (m Magnitude) String() string {
	if m.Unit == "" {
		return m.Value
	}
	return m.Value + " " + m.Unit
}

// Of returns a pointer to count, for callers building optional figures.
func Of(count uint64) *uint64 {
	return &count
}

// Format scales count according to style. A nil count yields an empty Magnitude.
// When round is set the numeric part is truncated to an integer and keeps the unit.
func Format(count *uint64, style CountStyle, round bool) Magnitude {
	if count == nil {
		return Magnitude{}
	}

	var (
		base  float64
		units []string
	)
	switch style {
	case Memory:
		base, units = memoryBase, memoryUnits
	case None:
		return Magnitude{Value: strconv.FormatUint(*count, 10)}
	default:
		base, units = fileBase, fileUnits
	}

	value := float64(*count)
	exp := 0
	for value >= base && exp < len(units)-1 {
		value /= base
		exp++
	}

	value = roundTo(value, scaleDigits[exp])
	// Rounding can carry the value up to the base (999.96 KB -> 1000 KB).
	if value >= base && exp < len(units)-1 {
		value /= base
		exp++
		value = roundTo(value, scaleDigits[exp])
	}

	unit := units[exp]
	if exp == 0 && *count == 1 {
		unit = "byte"
	}

	if round {
		return Magnitude{Value: strconv.FormatFloat(math.Trunc(value), 'f', 0, 64), Unit: unit}
	}

	return Magnitude{Value: humanize.FtoaWithDigits(value, scaleDigits[exp]), Unit: unit}
}

// Exact renders the raw count with thousands separators, e.g. "1,048,576 bytes".
func Exact(count *uint64) string {
	if count == nil {
		return ""
	}
	if *count == 1 {
		return "1 byte"
	}
	return humanize.Comma(int64(min(*count, math.MaxInt64))) + " bytes" //nolint:gosec // clamped above
}

func roundTo(value float64, digits int) float64 {
	pow := math.Pow10(digits)
	return math.Round(value*pow) / pow
}
