package models

import (
	"time"

	"devinfo/pkg/bytefmt"
)

// DeviceInfo is the JSON view of a device snapshot.
type DeviceInfo struct {
	Description  string        `json:"description"`
	Name         string        `json:"name,omitempty"`
	Identifier   string        `json:"identifier"`
	SystemName   string        `json:"system_name,omitempty"`
	Idiom        Badge         `json:"idiom"`
	Environments []Badge       `json:"environments"`
	Capabilities []Badge       `json:"capabilities"`
	Battery      *BatteryInfo  `json:"battery,omitempty"`
	Storage      StorageTotals `json:"storage"`
	CapturedAt   time.Time     `json:"captured_at"`
}

// Badge is a labelled table entry such as an idiom or environment.
type Badge struct {
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
	Color  string `json:"color,omitempty"`
	Active bool   `json:"active"`
}

// BatteryInfo represents a battery reading.
type BatteryInfo struct {
	Level        int    `json:"level"`
	State        string `json:"state"`
	LowPowerMode bool   `json:"low_power_mode"`
	Description  string `json:"description"`
	Symbol       string `json:"symbol"`
}

// StorageInfo is the computed capacity bar for a volume.
type StorageInfo struct {
	Total   bytefmt.Magnitude `json:"total"`
	Summary string            `json:"summary"`
	Style   string            `json:"style"`
	Width   float64           `json:"width"`
	Layers  []StorageLayer    `json:"layers"`
}

// StorageLayer is one rendered tier of the capacity bar.
type StorageLayer struct {
	Label     string            `json:"label"`
	Color     string            `json:"color"`
	Inverted  bool              `json:"inverted"`
	Bytes     uint64            `json:"bytes"`
	Exact     string            `json:"exact"`
	Magnitude bytefmt.Magnitude `json:"magnitude"`
	Percent   float64           `json:"percent"`
	Width     float64           `json:"width"`
}

// StorageMetric is a single named storage figure.
type StorageMetric struct {
	Metric    string            `json:"metric"`
	Bytes     uint64            `json:"bytes"`
	Exact     string            `json:"exact"`
	Magnitude bytefmt.Magnitude `json:"magnitude"`
}
