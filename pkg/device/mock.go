package device

import (
	"context"
	"sync"
	"time"

	"devinfo/pkg/capacity"
)

const (
	gb = 1_000_000_000
	tb = 1000 * gb
)

func figure(v uint64) *uint64 { return &v }

// Mocks returns fixture devices covering each storage shape the views handle:
// fully reported, partially reported, and inconsistent figures.
func Mocks() []Device {
	return []Device{
		{
			Name:         "Test iPhone",
			Identifier:   "iPhone16,2",
			SystemName:   "iOS 17.4",
			Idiom:        IdiomPhone,
			Flags:        EnvironmentFlags{Preview: true},
			Capabilities: []Capability{CapabilityBattery, CapabilityMulticore, CapabilityCellular, CapabilityBiometrics, CapabilityLidar},
			Battery:      &Battery{Level: 82, State: BatteryUnplugged},
			Storage: capacityOf(
				figure(256*gb),
				figure(104_320_000_000),
				figure(98_100_000_000),
				figure(91_700_000_000),
			),
		},
		{
			Name:         "Test iPad",
			Identifier:   "iPad14,5",
			SystemName:   "iPadOS 17.4",
			Idiom:        IdiomPad,
			Flags:        EnvironmentFlags{Preview: true},
			Capabilities: []Capability{CapabilityBattery, CapabilityMulticore, CapabilityPencil, CapabilityLidar},
			Battery:      &Battery{Level: 100, State: BatteryFull},
			Storage:      capacityOf(figure(tb), figure(612_040_000_000), figure(600*gb), figure(580*gb)),
		},
		{
			Name:         "Test Mac",
			Identifier:   "Mac15,6",
			SystemName:   "macOS 14.4",
			Idiom:        IdiomMac,
			Flags:        EnvironmentFlags{Preview: true, DesignedForiPad: true},
			Capabilities: []Capability{CapabilityBattery, CapabilityMulticore, CapabilitySwap, CapabilityBiometrics},
			Battery:      &Battery{Level: 34, State: BatteryCharging},
			Storage:      capacityOf(figure(2*tb), figure(1_430_500_000_000), nil, figure(1_401_200_000_000)),
		},
		{
			Name:         "Test Watch",
			Identifier:   "Watch7,1",
			SystemName:   "watchOS 10.4",
			Idiom:        IdiomWatch,
			Flags:        EnvironmentFlags{Preview: true, Simulator: true},
			Capabilities: []Capability{CapabilityBattery, CapabilityBiometrics},
			Battery:      &Battery{Level: 9, State: BatteryUnplugged, LowPowerMode: true},
			Storage:      capacityOf(figure(64*gb), figure(21_500_000_000), nil, nil),
		},
		{
			Name:         "Test Vision",
			Identifier:   "RealityDevice14,1",
			SystemName:   "visionOS 1.1",
			Idiom:        IdiomVision,
			Flags:        EnvironmentFlags{Preview: true},
			Capabilities: []Capability{CapabilityBattery, CapabilityMulticore, CapabilityLidar},
			// Available is reported larger than total; used must clamp to zero.
			Storage:      capacityOf(figure(512*gb), figure(530*gb), figure(500*gb), figure(490*gb)),
		},
	}
}

// MockProvider cycles through a fixed list of devices, one per snapshot.
type MockProvider struct {
	mu      sync.Mutex
	devices []Device
	next    int
	now     func() time.Time
}

// NewMockProvider returns a provider over devices, or over Mocks() when none are given.
func NewMockProvider(devices ...Device) *MockProvider {
	if len(devices) == 0 {
		devices = Mocks()
	}
	return &MockProvider{devices: devices, now: time.Now}
}

// Snapshot returns the next fixture device.
func (p *MockProvider) Snapshot(ctx context.Context) (*Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	dev := p.devices[p.next]
	p.next = (p.next + 1) % len(p.devices)
	dev.CapturedAt = p.now()

	return &dev, nil
}

func capacityOf(total, available, opportunistic, important *uint64) capacity.Snapshot {
	return capacity.Snapshot{
		Total:         total,
		Available:     available,
		Opportunistic: opportunistic,
		Important:     important,
	}
}
