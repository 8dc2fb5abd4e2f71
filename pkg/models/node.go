package models

// NodeInfo represents system information for the host serving the report.
type NodeInfo struct {
	Uptime        string        `json:"uptime"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	LoadAverages  LoadAverages  `json:"load_averages"`
	Memory        MemoryInfo    `json:"memory"`
	Storage       StorageTotals `json:"storage"`
}

// LoadAverages represents system load information.
type LoadAverages struct {
	Load1  float64 `json:"load_1"`
	Load5  float64 `json:"load_5"`
	Load15 float64 `json:"load_15"`
}

// MemoryInfo represents memory usage information.
type MemoryInfo struct {
	Total     uint64 `json:"total"`
	Used      uint64 `json:"used"`
	Available uint64 `json:"available"`
	Summary   string `json:"summary"`
}

// StorageTotals represents the reported volume in brief. Absent figures are omitted.
type StorageTotals struct {
	Total     *uint64 `json:"total,omitempty"`
	Used      *uint64 `json:"used,omitempty"`
	Available *uint64 `json:"available,omitempty"`
}
