package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fxnlabs/densolver/internal/bench"
	"github.com/fxnlabs/densolver/internal/config"
	"github.com/fxnlabs/densolver/internal/device"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func benchFlags() []cli.Flag {
	defaults := bench.DefaultArguments()
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "Path to a yaml config file"},
		&cli.StringFlag{Name: "verbosity", Usage: "Log level (debug, info, warn, error)"},
		&cli.StringFlag{Name: "metrics-out", Usage: "Write prometheus metrics in text format to this file"},

		&cli.IntFlag{Name: "device", Value: defaults.Device, Usage: "Device to run on"},
		&cli.StringFlag{Name: "function", Aliases: []string{"f"}, Value: defaults.Function, Usage: "The LAPACK function to test"},
		&cli.StringFlag{Name: "precision", Aliases: []string{"r"}, Value: string(defaults.Precision), Usage: "Precision: s, d, c or z"},
		&cli.IntFlag{Name: "iters", Aliases: []string{"i"}, Value: defaults.Iters, Usage: "Timed iterations; the reported time is the mean"},
		&cli.BoolFlag{Name: "perf", Usage: "Print only the timing and skip the device check"},
		&cli.BoolFlag{Name: "verify", Aliases: []string{"v"}, Usage: "Check results against gonum and print the relative error"},

		&cli.IntFlag{Name: "m", Value: defaults.M, Usage: "Rows of a matrix"},
		&cli.IntFlag{Name: "n", Value: defaults.N, Usage: "Columns of a matrix, or the order of a system"},
		&cli.IntFlag{Name: "k", Usage: "Number of Householder reflections"},
		&cli.IntFlag{Name: "nrhs", Value: defaults.NRHS, Usage: "Columns of the right-hand side"},
		&cli.IntFlag{Name: "lda", Usage: "Leading dimension of A"},
		&cli.IntFlag{Name: "ldb", Usage: "Leading dimension of B"},
		&cli.IntFlag{Name: "ldc", Usage: "Leading dimension of C"},
		&cli.IntFlag{Name: "ldu", Usage: "Leading dimension of U"},
		&cli.IntFlag{Name: "ldv", Usage: "Leading dimension of V"},
		&cli.IntFlag{Name: "batch_count", Value: defaults.BatchCount, Usage: "Matrices in a batch"},

		&cli.StringFlag{Name: "uplo", Value: string(defaults.Uplo), Usage: "U = upper, L = lower"},
		&cli.StringFlag{Name: "side", Value: string(defaults.Side), Usage: "L = left, R = right"},
		&cli.StringFlag{Name: "trans", Value: string(defaults.Trans), Usage: "N = none, T = transpose, C = conjugate transpose"},
		&cli.StringFlag{Name: "evect", Value: string(defaults.Evect), Usage: "N = eigenvalues only, V = with eigenvectors"},
		&cli.StringFlag{Name: "itype", Value: string(defaults.Itype), Usage: "Generalized eigenproblem type: 1, 2 or 3"},
		&cli.StringFlag{Name: "left_svect", Value: string(defaults.LeftSvect), Usage: "Left singular vectors: A, S, O or N"},
		&cli.StringFlag{Name: "right_svect", Value: string(defaults.RightSvect), Usage: "Right singular vectors: A, S, O or N"},
	}
}

func char(c *cli.Context, name string) (byte, error) {
	s := c.String(name)
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", bench.ErrInvalidArgument, name, s)
	}
	return s[0], nil
}

// arguments overlays the command line on the bench section of the config.
func arguments(c *cli.Context, cfg *config.Config) (bench.Arguments, error) {
	args := bench.DefaultArguments()
	if cfg.Bench.Function != "" {
		args.Function = cfg.Bench.Function
	}
	if len(cfg.Bench.Precision) == 1 {
		args.Precision = cfg.Bench.Precision[0]
	}
	if cfg.Bench.Iters > 0 {
		args.Iters = cfg.Bench.Iters
	}
	if cfg.Bench.M > 0 {
		args.M = cfg.Bench.M
	}
	if cfg.Bench.N > 0 {
		args.N = cfg.Bench.N
	}
	args.Device = cfg.Bench.Device

	ints := map[string]*int{
		"device": &args.Device, "iters": &args.Iters, "m": &args.M, "n": &args.N,
		"k": &args.K, "nrhs": &args.NRHS, "batch_count": &args.BatchCount,
		"lda": &args.LDA, "ldb": &args.LDB, "ldc": &args.LDC, "ldu": &args.LDU, "ldv": &args.LDV,
	}
	for name, p := range ints {
		if c.IsSet(name) {
			*p = c.Int(name)
		}
	}
	if c.IsSet("function") {
		args.Function = c.String("function")
	}

	chars := map[string]*byte{
		"precision": &args.Precision, "uplo": &args.Uplo, "side": &args.Side, "trans": &args.Trans,
		"evect": &args.Evect, "itype": &args.Itype, "left_svect": &args.LeftSvect, "right_svect": &args.RightSvect,
	}
	for name, p := range chars {
		if !c.IsSet(name) {
			continue
		}
		v, err := char(c, name)
		if err != nil {
			return args, err
		}
		*p = v
	}
	args.Perf = c.Bool("perf")
	args.Verify = c.Bool("verify")
	return args, nil
}

// invalidArgument reports errors the user can fix on the command line.
func invalidArgument(err error) bool {
	return errors.Is(err, bench.ErrInvalidArgument) ||
		errors.Is(err, bench.ErrInvalidPrecision) ||
		errors.Is(err, bench.ErrUnknownFunction) ||
		errors.Is(err, device.ErrInvalidDevice)
}

func runBench(c *cli.Context, cfg *config.Config, log *zap.Logger) error {
	args, err := arguments(c, cfg)
	if err != nil {
		return err
	}

	if !args.Perf {
		devices := device.NewManager(log)
		if err := devices.SetDevice(args.Device); err != nil {
			return err
		}
	}
	if err := args.ValidatePrecision(); err != nil {
		return err
	}

	var runner *bench.Runner
	app := fx.New(
		fx.Supply(log),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		bench.Module,
		fx.Populate(&runner),
	)
	ctx := c.Context
	if err := app.Start(ctx); err != nil {
		return err
	}
	res, runErr := runner.Run(ctx, args)
	stopErr := app.Stop(context.Background())
	if runErr != nil {
		return runErr
	}
	if stopErr != nil {
		return stopErr
	}

	printResult(c.App.Writer, args, res)

	out := cfg.Metrics.Out
	if c.IsSet("metrics-out") {
		out = c.String("metrics-out")
	}
	if out != "" {
		if err := writeMetrics(out); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Debug("metrics written", zap.String("path", out))
	}
	return nil
}

func printResult(w io.Writer, args bench.Arguments, res bench.Result) {
	us := float64(res.Mean.Nanoseconds()) / 1000
	if args.Perf {
		fmt.Fprintf(w, "%.3f\n", us)
		return
	}
	fmt.Fprintf(w, "function:   %s (%s)\n", res.Function, res.Precision)
	fmt.Fprintf(w, "size:       m=%d n=%d\n", res.M, res.N)
	fmt.Fprintf(w, "workspace:  %d bytes\n", res.Workspace)
	fmt.Fprintf(w, "iterations: %d\n", res.Iters)
	fmt.Fprintf(w, "time (us):  %.3f\n", us)
	fmt.Fprintf(w, "gflops:     %.3f\n", res.GFLOPS)
	if res.Info != 0 {
		fmt.Fprintf(w, "info:       %d\n", res.Info)
	}
	if res.Verified {
		fmt.Fprintf(w, "error:      %.3e\n", res.Error)
	}
}
