package device

// EnvironmentFlags are the raw environment facts detected for a device.
type EnvironmentFlags struct {
	Preview         bool `json:"preview"`
	Playground      bool `json:"playground"`
	Simulator       bool `json:"simulator"`
	DesignedForiPad bool `json:"designed_for_ipad"`
}

// Environment is one row of the environment table.
type Environment struct {
	Label  string
	Symbol string
	Color  string
	// DesktopOnly rows are only shown for Mac and Vision idioms.
	DesktopOnly bool
	Match       func(Device) bool
}

// Environments returns the environment table in display order.
func Environments() []Environment {
	return []Environment{
		{
			Label:  "Preview",
			Symbol: "eye",
			Color:  "orange",
			Match:  func(d Device) bool { return d.Flags.Preview },
		},
		{
			Label:  "Playground",
			Symbol: "swift",
			Color:  "pink",
			Match:  func(d Device) bool { return d.Flags.Playground },
		},
		{
			Label:  "Simulator",
			Symbol: "squareshape.squareshape.dotted",
			Color:  "blue",
			Match:  func(d Device) bool { return d.Flags.Simulator },
		},
		{
			Label:  "Real Device",
			Symbol: "checkmark.seal",
			Color:  "green",
			Match: func(d Device) bool {
				return !d.Flags.Preview && !d.Flags.Playground && !d.Flags.Simulator
			},
		},
		{
			Label:       "Designed for iPad",
			Symbol:      "ipad.badge.play",
			Color:       "purple",
			DesktopOnly: true,
			Match:       func(d Device) bool { return d.Flags.DesignedForiPad },
		},
	}
}

// Visible reports whether the row applies to the device's idiom at all.
func (e Environment) Visible(d Device) bool {
	if !e.DesktopOnly {
		return true
	}
	return d.Idiom == IdiomMac || d.Idiom == IdiomVision
}
