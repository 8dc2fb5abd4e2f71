package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devinfo/pkg/bytefmt"
	"devinfo/pkg/device"
	"devinfo/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10

// Refresher is implemented by providers that cache snapshots and can be
// asked to read the device again.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Server struct {
	echo     *echo.Echo
	provider device.Provider
	mocks    []device.Device
	version  string
	style    bytefmt.CountStyle
}

func NewServer(provider device.Provider, version string, style bytefmt.CountStyle) *Server {
	return &Server{
		echo:     echo.New(),
		provider: provider,
		mocks:    device.Mocks(),
		version:  version,
		style:    style,
	}
}

func (srv *Server) Start(addr string) error {
	srv.setupRoutes()

	go func() {
		log.Info().
			Str("addr", addr).
			Str("style", srv.style.String()).
			Str("version", srv.version).
			Msg("Starting devinfo server")

		if err := srv.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return srv.Shutdown()
}

func (srv *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := srv.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (srv *Server) setupRoutes() {
	srv.echo.HideBanner = true
	srv.echo.HidePort = true
	srv.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	srv.echo.Use(middleware.Recover())

	srv.echo.GET("/", srv.serveSwaggerUI)
	srv.echo.GET("/swagger.yml", srv.serveSwaggerSpec)
	srv.echo.GET("/device/info", srv.getDeviceInfo)
	srv.echo.POST("/device/refresh", srv.refreshDevice)
	srv.echo.GET("/device/mocks", srv.getMocks)
	srv.echo.GET("/device/storage", srv.getStorage)
	srv.echo.GET("/device/storage/bar", srv.getStorageBar)
	srv.echo.GET("/device/storage/:metric", srv.getStorageMetric)
	srv.echo.GET("/node/info", srv.getNodeInfo)
}

// snapshotFailed logs a provider failure and answers with a 500.
func snapshotFailed(ctx echo.Context, err error) error {
	log.Error().Err(err).Msg("Failed to read device snapshot")
	return ctx.JSON(http.StatusInternalServerError, map[string]string{
		"error": "Failed to read device snapshot",
	})
}

func badRequest(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
