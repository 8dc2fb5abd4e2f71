package main

import (
	"github.com/spf13/cobra"

	"devinfo/pkg/config"
	"devinfo/pkg/device"
	"devinfo/pkg/log"
	"devinfo/pkg/manager"
	"devinfo/pkg/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve device and storage information over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			provider := a.provider()
			if host, ok := provider.(*device.HostProvider); ok {
				log.Info().Str("storage_path", host.StoragePath()).Msg("Reporting host volume")
			} else {
				log.Info().Msg("Serving fixture devices")
			}

			mgr := manager.New(provider, a.cfg.Refresh.Interval)
			mgr.Start()
			defer mgr.Stop()
			a.watchConfig(mgr)

			srv := server.NewServer(mgr, version(), a.cfg.CountStyle())
			if err := srv.Start(a.cfg.Server.Addr); err != nil {
				log.Error().Err(err).Msg("Server stopped with error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("storage", "/", "path of the volume to report")
	cmd.Flags().String("style", "file", "byte count style: file, memory or none")
	cmd.Flags().Duration("interval", manager.DefaultInterval, "device refresh interval")
	cmd.Flags().Bool("mock", false, "serve fixture devices instead of the host")
	a.bind(cmd, map[string]string{
		"addr":     config.KeyServerAddr,
		"storage":  config.KeyStoragePath,
		"style":    config.KeyStorageStyle,
		"interval": config.KeyRefreshInterval,
		"mock":     config.KeyMock,
	})

	return cmd
}
