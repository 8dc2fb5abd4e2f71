package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"devinfo/pkg/bytefmt"
	"devinfo/pkg/config"
	"devinfo/pkg/ui"
)

func (a *app) storageCmd() *cobra.Command {
	var (
		verbose bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Print the storage capacity panel once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			if width <= 0 {
				width = ui.MeasureTerminal(stdout(cmd))
			}

			view := ui.StorageView{Debug: verbose, Style: a.cfg.CountStyle()}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, view.Render(dev.Storage, width))

			if exact := bytefmt.Exact(dev.Storage.Total); verbose && exact != "" {
				fmt.Fprintln(out, "Total Capacity (exact): "+exact)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show one row per capacity layer")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "panel width in columns (default: terminal width)")
	cmd.Flags().String("style", "file", "byte count style: file, memory or none")
	cmd.Flags().String("storage", "/", "path of the volume to report")
	cmd.Flags().Bool("mock", false, "report the first fixture device")
	a.bind(cmd, map[string]string{
		"style":   config.KeyStorageStyle,
		"storage": config.KeyStoragePath,
		"mock":    config.KeyMock,
	})

	return cmd
}
