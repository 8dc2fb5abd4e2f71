package server

import (
	"net/http"

	"devinfo/pkg/device"
	"devinfo/pkg/log"
	"devinfo/pkg/models"

	"github.com/labstack/echo/v4"
)

// getDeviceInfo handles the GET /device/info endpoint.
func (srv *Server) getDeviceInfo(ctx echo.Context) error {
	dev, err := srv.provider.Snapshot(ctx.Request().Context())
	if err != nil {
		return snapshotFailed(ctx, err)
	}
	return ctx.JSON(http.StatusOK, deviceInfo(*dev))
}

// refreshDevice handles the POST /device/refresh endpoint.
func (srv *Server) refreshDevice(ctx echo.Context) error {
	if r, ok := srv.provider.(Refresher); ok {
		if err := r.Refresh(ctx.Request().Context()); err != nil {
			log.Error().Err(err).Msg("Forced refresh failed")
			return ctx.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to refresh device snapshot",
			})
		}
	}
	return srv.getDeviceInfo(ctx)
}

// getMocks handles the GET /device/mocks endpoint.
func (srv *Server) getMocks(ctx echo.Context) error {
	infos := make([]models.DeviceInfo, len(srv.mocks))
	for i, dev := range srv.mocks {
		infos[i] = deviceInfo(dev)
	}
	return ctx.JSON(http.StatusOK, infos)
}

func deviceInfo(dev device.Device) models.DeviceInfo {
	info := models.DeviceInfo{
		Description: dev.Description(),
		Name:        dev.Name,
		Identifier:  dev.Identifier,
		SystemName:  dev.SystemName,
		Idiom: models.Badge{
			Label:  dev.Idiom.Label(),
			Symbol: dev.Idiom.Symbol(),
			Color:  dev.Idiom.Color(),
			Active: true,
		},
		Environments: []models.Badge{},
		Capabilities: make([]models.Badge, 0, len(dev.Capabilities)),
		Storage:      storageTotals(dev),
		CapturedAt:   dev.CapturedAt,
	}

	for _, env := range device.Environments() {
		if !env.Visible(dev) {
			continue
		}
		info.Environments = append(info.Environments, models.Badge{
			Label:  env.Label,
			Symbol: env.Symbol,
			Color:  env.Color,
			Active: env.Match(dev),
		})
	}

	for _, c := range dev.Capabilities {
		info.Capabilities = append(info.Capabilities, models.Badge{
			Label:  c.Label(),
			Symbol: c.Symbol(),
			Active: true,
		})
	}

	if b := dev.Battery; b != nil {
		info.Battery = &models.BatteryInfo{
			Level:        b.Level,
			State:        b.State.String(),
			LowPowerMode: b.LowPowerMode,
			Description:  b.Description(),
			Symbol:       b.Symbol(),
		}
	}

	return info
}

func storageTotals(dev device.Device) models.StorageTotals {
	return models.StorageTotals{
		Total:     dev.Storage.Total,
		Used:      dev.Storage.Used(),
		Available: dev.Storage.Available,
	}
}
