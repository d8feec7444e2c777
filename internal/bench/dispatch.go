package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fxnlabs/densolver/internal/metrics"
	"github.com/fxnlabs/densolver/pkg/solver"
)

// Result is the outcome of a benchmark run.
type Result struct {
	Function  string        `json:"function"`
	Precision string        `json:"precision"`
	M         int           `json:"m"`
	N         int           `json:"n"`
	Iters     int           `json:"iters"`
	Workspace int           `json:"workspaceBytes"`
	Mean      time.Duration `json:"meanNs"`
	GFLOPS    float64       `json:"gflops"`
	// Info is the devInfo of the last run: 0 on success, otherwise the
	// routine-specific failure index.
	Info int32 `json:"info"`
	// Verified reports whether Error was computed. Complex precisions and
	// routines without a reference are not verified.
	Verified bool    `json:"verified"`
	Error    float64 `json:"relativeError,omitempty"`
}

// Dispatch validates args, runs the selected routine args.Iters times on
// fresh copies of the same random inputs and reports the mean time. The
// workspace is sized with one size query and allocated exactly.
func Dispatch(ctx context.Context, h *solver.Handle, args Arguments) (Result, error) {
	if err := args.ValidatePrecision(); err != nil {
		return Result{}, err
	}
	if err := args.ValidateFunction(); err != nil {
		return Result{}, err
	}
	if err := args.Normalize(); err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewPCG(args.Seed, args.Seed^0x9e3779b97f4a7c15))
	var (
		p   *problem
		err error
	)
	switch args.Precision {
	case 's':
		p, err = build[float32, float32](h, &args, rng)
	case 'd':
		p, err = build[float64, float64](h, &args, rng)
	case 'c':
		p, err = build[solver.Complex, float32](h, &args, rng)
		p = complexFlops(p)
	case 'z':
		p, err = build[solver.DoubleComplex, float64](h, &args, rng)
		p = complexFlops(p)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", args.Function, err)
	}
	return measure(ctx, &args, p)
}

// complexFlops scales a real flop count: a complex multiply-add is four real
// ones.
func complexFlops(p *problem) *problem {
	if p != nil {
		p.flops *= 4
	}
	return p
}

func measure(ctx context.Context, args *Arguments, p *problem) (Result, error) {
	res := Result{
		Function:  args.Function,
		Precision: string(args.Precision),
		M:         args.M,
		N:         args.N,
		Iters:     args.Iters,
	}

	lwork, err := p.lwork()
	if err != nil {
		return res, fmt.Errorf("%s: buffer size: %w", args.Function, err)
	}
	res.Workspace = lwork
	work := make([]byte, lwork)

	duration := metrics.BenchDuration.WithLabelValues(args.Function, res.Precision)
	var total time.Duration
	for i := 0; i < args.Iters; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p.reset()
		start := time.Now()
		err := p.run(work)
		elapsed := time.Since(start)
		if err != nil {
			return res, fmt.Errorf("%s: %w", args.Function, err)
		}
		total += elapsed
		duration.Observe(float64(elapsed.Microseconds()) / 1000)
	}

	res.Mean = total / time.Duration(args.Iters)
	if secs := res.Mean.Seconds(); secs > 0 {
		res.GFLOPS = p.flops / secs / 1e9
	}
	metrics.BenchGFLOPS.Set(res.GFLOPS)
	res.Info = p.info()

	if args.Verify && p.verify != nil {
		res.Error, res.Verified = p.verify()
	}
	return res, nil
}
