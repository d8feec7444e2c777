package bench

import (
	"context"

	"github.com/fxnlabs/densolver/pkg/solver"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module supplies a solver handle and a Runner. The handle is destroyed when
// the application stops.
var Module = fx.Module("bench",
	fx.Provide(
		NewHandle,
		NewRunner,
	),
)

func NewHandle(lc fx.Lifecycle, logger *zap.Logger) (*solver.Handle, error) {
	h, err := solver.Create(solver.WithLogger(logger.Named("solver")))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return h.Destroy()
		},
	})
	return h, nil
}

// Runner dispatches benchmark runs on one handle and logs their results.
type Runner struct {
	handle *solver.Handle
	logger *zap.Logger
}

func NewRunner(h *solver.Handle, logger *zap.Logger) *Runner {
	return &Runner{handle: h, logger: logger.Named("bench")}
}

func (r *Runner) Run(ctx context.Context, args Arguments) (Result, error) {
	r.logger.Debug("running benchmark",
		zap.String("function", args.Function),
		zap.String("precision", string(args.Precision)),
		zap.Int("m", args.M),
		zap.Int("n", args.N),
		zap.Int("iters", args.Iters))

	res, err := Dispatch(ctx, r.handle, args)
	if err != nil {
		r.logger.Error("benchmark failed", zap.String("function", args.Function), zap.Error(err))
		return res, err
	}

	fields := []zap.Field{
		zap.String("function", res.Function),
		zap.String("precision", res.Precision),
		zap.Duration("mean", res.Mean),
		zap.Float64("gflops", res.GFLOPS),
		zap.Int("workspace_bytes", res.Workspace),
		zap.Int32("info", res.Info),
	}
	if res.Verified {
		fields = append(fields, zap.Float64("relative_error", res.Error))
	}
	r.logger.Info("benchmark finished", fields...)
	return res, nil
}
