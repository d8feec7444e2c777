package main

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/dustin/go-humanize"
	"github.com/fxnlabs/densolver/internal/device"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func infoCommand(log func() *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Print the solver backend and the available devices",
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			fmt.Fprintln(w, figure.NewFigure("densolver", "", true).String())

			devices := device.NewManager(log())
			fmt.Fprintf(w, "Backend: %s\n", devices.BackendName())
			for _, d := range devices.Devices() {
				fmt.Fprintf(w, "Device %d: %s\n", d.ID, d.Name)
				if d.BLAS != "" {
					fmt.Fprintf(w, "   BLAS: %s\n", d.BLAS)
				}
				fmt.Fprintf(w, "   Memory: %s total, %s available\n",
					humanize.IBytes(d.TotalMemory), humanize.IBytes(d.AvailableMemory))
				fmt.Fprintf(w, "   Go: %s\n", d.GoVersion)
			}
			return nil
		},
	}
}
