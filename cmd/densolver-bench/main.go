package main

import (
	"fmt"
	"os"

	"github.com/fxnlabs/densolver/internal/config"
	"github.com/fxnlabs/densolver/internal/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if invalidArgument(err) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var cfg *config.Config
	var rootLogger *zap.Logger

	return &cli.App{
		Name:  "densolver-bench",
		Usage: "Benchmark the dense linear algebra solver",
		Description: "The arrays are initialized with random values. A parameter that is not given\n" +
			"takes its default; leading dimensions default to the smallest legal value.\n\n" +
			"Example: densolver-bench -f getrf --m 30 --lda 75",
		Flags: benchFlags(),
		Before: func(c *cli.Context) error {
			var err error
			cfg = config.Default()
			if path := c.String("config"); path != "" {
				cfg, err = config.LoadConfig(path)
				if err != nil {
					return err
				}
			}
			verbosity := cfg.Logger.Verbosity
			if c.IsSet("verbosity") {
				verbosity = c.String("verbosity")
			}
			zapLogger, err := logger.New(verbosity, cfg.Logger.Format)
			if err != nil {
				return err
			}
			rootLogger = zapLogger.Named("cli")
			return nil
		},
		After: func(c *cli.Context) error {
			if rootLogger != nil {
				_ = rootLogger.Sync()
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			return runBench(c, cfg, rootLogger)
		},
		Commands: []*cli.Command{
			infoCommand(func() *zap.Logger { return rootLogger }),
		},
	}
}
