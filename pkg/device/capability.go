package device

import "encoding/json"

// Capability is a hardware or software feature reported by a device.
type Capability int

const (
	CapabilityBattery Capability = iota
	CapabilityMulticore
	CapabilitySwap
	CapabilityVirtualized
	CapabilityCellular
	CapabilityBiometrics
	CapabilityLidar
	CapabilityPencil
)

var capabilities = map[Capability]struct {
	label  string
	symbol string
}{
	CapabilityBattery:     {"Battery", "battery.100"},
	CapabilityMulticore:   {"Multicore CPU", "cpu"},
	CapabilitySwap:        {"Swap", "memorychip"},
	CapabilityVirtualized: {"Virtualized", "square.stack.3d.up"},
	CapabilityCellular:    {"Cellular", "antenna.radiowaves.left.and.right"},
	CapabilityBiometrics:  {"Biometrics", "faceid"},
	CapabilityLidar:       {"LiDAR", "circle.hexagongrid"},
	CapabilityPencil:      {"Pencil", "applepencil"},
}

// Label returns the display name.
func (c Capability) Label() string {
	if info, ok := capabilities[c]; ok {
		return info.label
	}
	return "Unknown"
}

// Symbol returns the icon token.
func (c Capability) Symbol() string {
	if info, ok := capabilities[c]; ok {
		return info.symbol
	}
	return "questionmark"
}

func (c Capability) String() string {
	return c.Label()
}

// MarshalJSON encodes the capability as its label.
func (c Capability) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Label())
}
