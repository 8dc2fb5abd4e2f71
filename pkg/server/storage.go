package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"devinfo/pkg/bytefmt"
	"devinfo/pkg/capacity"
	"devinfo/pkg/device"
	"devinfo/pkg/models"
	"devinfo/pkg/ui"

	"github.com/labstack/echo/v4"
)

var errNotFinite = errors.New("value must be finite")

const (
	defaultBarWidth  = 100
	defaultTextWidth = ui.DefaultColumns
	maxTextWidth     = 1000
)

// getStorage handles the GET /device/storage endpoint.
func (srv *Server) getStorage(ctx echo.Context) error {
	width, err := queryFloat(ctx, "width", defaultBarWidth)
	if err != nil || width < 0 {
		return badRequest(ctx, "width must be a finite non-negative number")
	}

	style, err := srv.queryStyle(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	round, err := queryBool(ctx, "round")
	if err != nil {
		return badRequest(ctx, "round must be a boolean")
	}

	dev, err := srv.provider.Snapshot(ctx.Request().Context())
	if err != nil {
		return snapshotFailed(ctx, err)
	}

	return ctx.JSON(http.StatusOK, storageInfo(dev.Storage, width, style, round))
}

// getStorageBar handles the GET /device/storage/bar endpoint.
func (srv *Server) getStorageBar(ctx echo.Context) error {
	width, err := queryFloat(ctx, "width", defaultTextWidth)
	if err != nil || width < 0 || width > maxTextWidth {
		return badRequest(ctx, "width must be between 0 and "+strconv.Itoa(maxTextWidth))
	}

	debug, err := queryBool(ctx, "debug")
	if err != nil {
		return badRequest(ctx, "debug must be a boolean")
	}

	style, err := srv.queryStyle(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	dev, err := srv.provider.Snapshot(ctx.Request().Context())
	if err != nil {
		return snapshotFailed(ctx, err)
	}

	view := ui.StorageView{Debug: debug, Style: style}
	return ctx.String(http.StatusOK, view.Render(dev.Storage, int(width))+"\n")
}

// getStorageMetric handles the GET /device/storage/:metric endpoint.
func (srv *Server) getStorageMetric(ctx echo.Context) error {
	name := strings.ToLower(ctx.Param("metric"))

	style, err := srv.queryStyle(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	dev, err := srv.provider.Snapshot(ctx.Request().Context())
	if err != nil {
		return snapshotFailed(ctx, err)
	}

	value, err := dev.StorageMetric(name)
	if err != nil {
		var unsupported device.UnsupportedError
		if errors.As(err, &unsupported) {
			return ctx.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return badRequest(ctx, err.Error()+": "+name)
	}

	return ctx.JSON(http.StatusOK, models.StorageMetric{
		Metric:    name,
		Bytes:     value,
		Exact:     bytefmt.Exact(&value),
		Magnitude: bytefmt.Format(&value, style, false),
	})
}

func storageInfo(snapshot capacity.Snapshot, width float64, style bytefmt.CountStyle, round bool) models.StorageInfo {
	bars := capacity.Compute(capacity.StorageLayers(snapshot), snapshot.Total, width)
	total := snapshot.TotalOrZero()

	info := models.StorageInfo{
		Total:   bytefmt.Format(snapshot.Total, style, round),
		Summary: strings.TrimSpace(ui.StorageView{Style: style}.Summary(snapshot)),
		Style:   style.String(),
		Width:   width,
		Layers:  make([]models.StorageLayer, 0, len(bars)),
	}

	for _, bar := range bars {
		display := bar.Display
		info.Layers = append(info.Layers, models.StorageLayer{
			Label:     strings.TrimSuffix(bar.Label, ":"),
			Color:     bar.Color,
			Inverted:  bar.Inverted,
			Bytes:     display,
			Exact:     bytefmt.Exact(&display),
			Magnitude: bytefmt.Format(&display, style, round),
			Percent:   capacity.Percent(display, total),
			Width:     bar.Width,
		})
	}

	return info
}

func (srv *Server) queryStyle(ctx echo.Context) (bytefmt.CountStyle, error) {
	name := ctx.QueryParam("style")
	if name == "" {
		return srv.style, nil
	}
	return bytefmt.ParseStyle(name)
}

// queryFloat parses a finite number; NaN and infinities are rejected.
func queryFloat(ctx echo.Context, name string, fallback float64) (float64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errNotFinite
	}
	return value, nil
}

func queryBool(ctx echo.Context, name string) (bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
