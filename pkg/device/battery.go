package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/distatus/battery"
)

const (
	defaultPlatformProfile = "/sys/firmware/acpi/platform_profile"
	maxBatteryLevel        = 100
)

// ErrNoBattery is returned when the system reports no battery.
var ErrNoBattery = errors.New("no battery found")

// BatteryState is the charging state of a battery.
type BatteryState int

const (
	BatteryUnknown BatteryState = iota
	BatteryUnplugged
	BatteryCharging
	BatteryFull
)

func (s BatteryState) String() string {
	switch s {
	case BatteryUnplugged:
		return "unplugged"
	case BatteryCharging:
		return "charging"
	case BatteryFull:
		return "full"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the state as its name.
func (s BatteryState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Battery is a battery reading.
type Battery struct {
	Level        int          `json:"level"`
	State        BatteryState `json:"state"`
	LowPowerMode bool         `json:"low_power_mode"`
}

// Description returns a summary such as "75% charging".
func (b Battery) Description() string {
	desc := strconv.Itoa(b.Level) + "% " + b.State.String()
	if b.LowPowerMode {
		desc += " (low power)"
	}
	return desc
}

// Symbol returns a battery icon token for the current level.
func (b Battery) Symbol() string {
	if b.State == BatteryCharging {
		return "battery.100.bolt"
	}
	switch {
	case b.Level >= 88:
		return "battery.100"
	case b.Level >= 63:
		return "battery.75"
	case b.Level >= 38:
		return "battery.50"
	case b.Level >= 13:
		return "battery.25"
	default:
		return "battery.0"
	}
}

// BatteryReader reads the first system battery. Low power mode comes from the
// ACPI platform profile, which the battery API does not report.
type BatteryReader struct {
	PlatformProfile string
	source          func() ([]*battery.Battery, error)
}

// NewBatteryReader returns a reader over the system batteries.
func NewBatteryReader() *BatteryReader {
	return &BatteryReader{
		PlatformProfile: defaultPlatformProfile,
		source:          battery.GetAll,
	}
}

// Read returns the first battery reporting a full charge capacity, or ErrNoBattery.
func (r *BatteryReader) Read() (*Battery, error) {
	source := r.source
	if source == nil {
		source = battery.GetAll
	}

	batteries, err := source()
	for _, b := range batteries {
		if b == nil || b.Full <= 0 {
			continue
		}
		return &Battery{
			Level:        levelOf(b),
			State:        stateOf(b.State),
			LowPowerMode: readTrimmed(r.PlatformProfile) == "low-power",
		}, nil
	}

	if err != nil {
		var fatal battery.ErrFatal
		if errors.As(err, &fatal) && errors.Is(fatal.Err, fs.ErrNotExist) {
			return nil, ErrNoBattery
		}
		return nil, fmt.Errorf("read battery: %w", err)
	}
	return nil, ErrNoBattery
}

func levelOf(b *battery.Battery) int {
	return clampLevel(int(math.Round(b.Current / b.Full * maxBatteryLevel)))
}

func stateOf(state battery.State) BatteryState {
	switch state.Raw {
	case battery.Charging:
		return BatteryCharging
	case battery.Discharging, battery.Empty, battery.Idle:
		return BatteryUnplugged
	case battery.Full:
		return BatteryFull
	default:
		return BatteryUnknown
	}
}

func clampLevel(level int) int {
	return max(0, min(maxBatteryLevel, level))
}

func readTrimmed(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
