package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"devinfo/pkg/bytefmt"
	"devinfo/pkg/capacity"
	"devinfo/pkg/log"
	"devinfo/pkg/models"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// getNodeInfo handles the GET /node/info endpoint.
func (srv *Server) getNodeInfo(ctx echo.Context) error {
	info, err := srv.collectNodeInfo(ctx.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to collect node information")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to collect node information",
		})
	}

	return ctx.JSON(http.StatusOK, info)
}

// collectNodeInfo gathers system information. Storage comes from the device
// snapshot and is left empty when the provider cannot be read.
func (srv *Server) collectNodeInfo(ctx context.Context) (*models.NodeInfo, error) {
	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("uptime: %w", err)
	}

	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("load averages: %w", err)
	}

	memory, err := getMemoryInfo(ctx)
	if err != nil {
		return nil, err
	}

	info := &models.NodeInfo{
		Uptime:        formatUptime(int64(uptime)), //nolint:gosec // uptime fits in int64
		UptimeSeconds: int64(uptime),               //nolint:gosec // uptime fits in int64
		LoadAverages: models.LoadAverages{
			Load1:  avg.Load1,
			Load5:  avg.Load5,
			Load15: avg.Load15,
		},
		Memory: *memory,
	}

	if dev, err := srv.provider.Snapshot(ctx); err != nil {
		log.Warn().Err(err).Msg("Node info without storage figures")
	} else {
		info.Storage = storageTotals(*dev)
	}

	return info, nil
}

// getMemoryInfo reads virtual memory usage, summarised in binary units.
func getMemoryInfo(ctx context.Context) (*models.MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	return memoryInfo(vm.Total, vm.Available), nil
}

// memoryInfo derives used memory the same way the storage bar derives used
// capacity, so Used+Available always equals Total.
func memoryInfo(total, available uint64) *models.MemoryInfo {
	used := capacity.Invert(available, total, true)
	free := total - used

	totalMag := bytefmt.Format(&total, bytefmt.Memory, true)
	usedMag := bytefmt.Format(&used, bytefmt.Memory, true)

	return &models.MemoryInfo{
		Total:     total,
		Used:      used,
		Available: free,
		Summary:   usedMag.String() + " / " + totalMag.String(),
	}
}

// formatUptime converts seconds to human-readable format.
func formatUptime(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	const hoursInDay = 24
	const minutesInHour = 60
	days := int(duration.Hours()) / hoursInDay
	hours := int(duration.Hours()) % hoursInDay
	minutes := int(duration.Minutes()) % minutesInHour

	switch {
	case days > 0:
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	default:
		return strconv.Itoa(minutes) + "m"
	}
}
