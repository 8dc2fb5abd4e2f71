package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"devinfo/pkg/capacity"
	"devinfo/pkg/config"
	"devinfo/pkg/device"
	"devinfo/pkg/manager"
	"devinfo/pkg/ui"
)

const clearScreen = "\033[H\033[2J"

func (a *app) showCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the device test screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := ui.DeviceView{
				Version: version(),
				Storage: ui.StorageView{Style: a.cfg.CountStyle()},
			}
			if watch {
				return a.watch(cmd, view)
			}

			dev, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.Render(*dev, time.Now(), ui.MeasureTerminal(stdout(cmd))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "redraw on every refresh until interrupted")
	cmd.Flags().Bool("mock", false, "cycle through fixture devices")
	cmd.Flags().String("storage", "/", "path of the volume to report")
	cmd.Flags().String("style", "file", "byte count style: file, memory or none")
	cmd.Flags().Duration("interval", manager.DefaultInterval, "device refresh interval")
	a.bind(cmd, map[string]string{
		"mock":     config.KeyMock,
		"storage":  config.KeyStoragePath,
		"style":    config.KeyStorageStyle,
		"interval": config.KeyRefreshInterval,
	})

	return cmd
}

// watch redraws the screen for every snapshot and once a second for the
// clock, remeasuring the terminal before each draw.
func (a *app) watch(cmd *cobra.Command, view ui.DeviceView) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr := manager.New(a.provider(), a.cfg.Refresh.Interval)
	mgr.Start()
	defer mgr.Stop()
	a.watchConfig(mgr)

	updates, cancel := mgr.Subscribe()
	defer cancel()

	clock := time.NewTicker(time.Second)
	defer clock.Stop()

	var (
		surface capacity.Surface
		current *device.Device
	)
	out := cmd.OutOrStdout()
	term := stdout(cmd)

	for {
		select {
		case <-ctx.Done():
			return nil
		case dev, ok := <-updates:
			if !ok {
				return nil
			}
			current = &dev
		case <-clock.C:
		}

		if current == nil {
			continue
		}
		ui.Remeasure(&surface, term)
		draw(out, view.Render(*current, time.Now(), ui.Columns(&surface)))
	}
}

func draw(w io.Writer, screen string) {
	fmt.Fprint(w, clearScreen+screen+"\n")
}

// stdout returns the command output when it is a file, for terminal measurement.
func stdout(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
