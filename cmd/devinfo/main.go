package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devinfo/pkg/config"
	"devinfo/pkg/device"
	"devinfo/pkg/log"
	"devinfo/pkg/manager"
)

//go:embed VERSION
var Version string

type app struct {
	v          *viper.Viper
	cfg        *config.Config
	configPath string
	debug      bool
	// flag name to config key, per command
	bindings map[*cobra.Command]map[string]string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:        config.New(),
		bindings: make(map[*cobra.Command]map[string]string),
	}

	root := &cobra.Command{
		Use:           "devinfo",
		Short:         "Device details and storage capacity bars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./devinfo.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.storageCmd(),
		a.showCmd(),
		a.configCmd(),
		versionCmd(),
	)

	return root
}

func (a *app) bind(cmd *cobra.Command, keys map[string]string) {
	a.bindings[cmd] = keys
}

func (a *app) load(cmd *cobra.Command) error {
	if keys, ok := a.bindings[cmd]; ok {
		if err := config.BindFlags(a.v, cmd.Flags(), keys); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.debug {
		log.SetDebugMode()
	} else if err := log.SetLevel(cfg.Log.Level); err != nil {
		return err
	}

	log.Debug().
		Str("config", a.v.ConfigFileUsed()).
		Str("storage_path", cfg.Storage.Path).
		Bool("mock", cfg.Mock).
		Msg("Configuration loaded")

	return nil
}

func (a *app) provider() device.Provider {
	if a.cfg.Mock {
		return device.NewMockProvider()
	}
	return device.NewHostProvider(a.cfg.Storage.Path)
}

// snapshot reads one device snapshot with the default read timeout.
func (a *app) snapshot(ctx context.Context) (*device.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, manager.DefaultReadTimeout)
	defer cancel()
	return a.provider().Snapshot(ctx)
}

// watchConfig applies log level and refresh interval changes to mgr.
func (a *app) watchConfig(mgr *manager.Manager) {
	config.Watch(a.v, func(cfg *config.Config) {
		if !a.debug {
			if err := log.SetLevel(cfg.Log.Level); err != nil {
				log.Warn().Err(err).Msg("Keeping previous log level")
			}
		}
		mgr.SetInterval(cfg.Refresh.Interval)
	})
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return config.Export(cmd.OutOrStdout(), a.cfg)
		},
	})
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "devinfo v"+version())
		},
	}
}

func version() string {
	return strings.TrimSpace(Version)
}
