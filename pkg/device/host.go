package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"devinfo/pkg/capacity"
	"devinfo/pkg/log"
)

const productNameFile = "/sys/class/dmi/id/product_name"

// HostProvider reports the machine devinfo runs on.
type HostProvider struct {
	storagePath string
	battery     *BatteryReader
	now         func() time.Time
}

// NewHostProvider returns a provider that reports storage for the volume holding storagePath.
func NewHostProvider(storagePath string) *HostProvider {
	if storagePath == "" {
		storagePath = "/"
	}
	return &HostProvider{
		storagePath: storagePath,
		battery:     NewBatteryReader(),
		now:         time.Now,
	}
}

// StoragePath returns the path whose volume is reported.
func (p *HostProvider) StoragePath() string {
	return p.storagePath
}

// Snapshot captures the host attributes. Storage is required; the other
// readings degrade to missing values and are logged.
func (p *HostProvider) Snapshot(ctx context.Context) (*Device, error) {
	storage, err := StorageSnapshot(ctx, p.storagePath)
	if err != nil {
		return nil, err
	}

	dev := &Device{
		Identifier: runtime.GOOS + "/" + runtime.GOARCH,
		Idiom:      HostIdiom(),
		Storage:    *storage,
		CapturedAt: p.now(),
	}

	var readErr error

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		readErr = multierror.Append(readErr, fmt.Errorf("host info: %w", err))
	} else {
		dev.Name = info.Hostname
		dev.SystemName = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		if dev.SystemName == "" {
			dev.SystemName = info.OS
		}
		dev.Flags.Simulator = info.VirtualizationRole == "guest"
		if dev.Flags.Simulator {
			dev.Capabilities = append(dev.Capabilities, CapabilityVirtualized)
		}
	}

	if product := readTrimmed(productNameFile); product != "" {
		dev.Identifier = product
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err != nil {
		readErr = multierror.Append(readErr, fmt.Errorf("cpu count: %w", err))
	} else if cores > 1 {
		dev.Capabilities = append(dev.Capabilities, CapabilityMulticore)
	}

	if swap, err := mem.SwapMemoryWithContext(ctx); err != nil {
		readErr = multierror.Append(readErr, fmt.Errorf("swap: %w", err))
	} else if swap.Total > 0 {
		dev.Capabilities = append(dev.Capabilities, CapabilitySwap)
	}

	battery, err := p.battery.Read()
	switch {
	case err == nil:
		dev.Battery = battery
		dev.Capabilities = append(dev.Capabilities, CapabilityBattery)
	case errors.Is(err, ErrNoBattery):
		log.Debug().Msg("No battery present")
	default:
		readErr = multierror.Append(readErr, fmt.Errorf("battery: %w", err))
	}

	if readErr != nil {
		log.Warn().Err(readErr).Msg("Some device readings failed")
	}

	return dev, nil
}

// StorageSnapshot reports the capacity figures of the volume holding path.
// Available counts every free block, Opportunistic only the blocks an
// unprivileged writer may use. Important usage is not reported on this platform.
func StorageSnapshot(ctx context.Context, path string) (*capacity.Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("storage path %s: %w", path, err)
	}

	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("disk usage for %s: %w", path, err)
	}

	total := usage.Total
	available := capacity.Invert(usage.Used, usage.Total, true)
	opportunistic := min(usage.Free, available)

	log.Debug().
		Str("path", path).
		Uint64("total", total).
		Uint64("available", available).
		Uint64("opportunistic", opportunistic).
		Bool("important_supported", false).
		Msg("Storage snapshot")

	return &capacity.Snapshot{
		Total:         &total,
		Available:     &available,
		Opportunistic: &opportunistic,
	}, nil
}
