// Package device describes the device devinfo runs on as plain value snapshots.
package device

import (
	"context"
	"errors"
	"time"

	"devinfo/pkg/capacity"
)

// Device is a point-in-time snapshot of the device attributes.
type Device struct {
	Name         string            `json:"name,omitempty"`
	Identifier   string            `json:"identifier"`
	SystemName   string            `json:"system_name,omitempty"`
	Idiom        Idiom             `json:"idiom"`
	Flags        EnvironmentFlags  `json:"flags"`
	Capabilities []Capability      `json:"capabilities"`
	Battery      *Battery          `json:"battery,omitempty"`
	Storage      capacity.Snapshot `json:"storage"`
	CapturedAt   time.Time         `json:"captured_at"`
}

// Provider produces device snapshots.
type Provider interface {
	// Snapshot captures the current device attributes.
	Snapshot(ctx context.Context) (*Device, error)
}

// Description returns a one-line summary such as "Mac (darwin 14.4)".
func (d Device) Description() string {
	desc := d.Idiom.Label()
	if d.Name != "" {
		desc = d.Name + " - " + desc
	}
	if d.SystemName != "" {
		desc += " (" + d.SystemName + ")"
	}
	return desc
}

// Environments returns the environments that match this device, in table order.
func (d Device) Environments() []Environment {
	var matched []Environment
	for _, env := range Environments() {
		if env.Match(d) {
			matched = append(matched, env)
		}
	}
	return matched
}

// Has reports whether the device reports the capability.
func (d Device) Has(c Capability) bool {
	for _, have := range d.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// UnsupportedError is returned when the platform cannot report a metric.
type UnsupportedError struct {
	Metric string
}

func (e UnsupportedError) Error() string {
	return "metric not supported on this platform: " + e.Metric
}

// ErrUnknownMetric is returned for storage metric names outside the layer table.
var ErrUnknownMetric = errors.New("unknown storage metric")

// StorageMetric returns the named storage figure: total, available,
// opportunistic, important or used. A figure the platform did not report
// yields UnsupportedError.
func (d Device) StorageMetric(name string) (uint64, error) {
	var value *uint64
	switch name {
	case "total":
		value = d.Storage.Total
	case "available":
		value = d.Storage.Available
	case "opportunistic":
		value = d.Storage.Opportunistic
	case "important":
		value = d.Storage.Important
	case "used":
		value = d.Storage.Used()
	default:
		return 0, ErrUnknownMetric
	}

	if value == nil {
		return 0, UnsupportedError{Metric: name}
	}
	return *value, nil
}
