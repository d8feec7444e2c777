package bench

import (
	"context"
	"testing"

	"github.com/fxnlabs/densolver/internal/metrics"
	"github.com/fxnlabs/densolver/pkg/solver"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newHandle(t *testing.T) *solver.Handle {
	t.Helper()
	h, err := solver.Create(solver.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Destroy() })
	return h
}

func smallArgs(function string, precision byte) Arguments {
	args := DefaultArguments()
	args.Function = function
	args.Precision = precision
	args.M, args.N, args.NRHS = 12, 8, 3
	args.Iters = 2
	args.Verify = true
	return args
}

func TestDispatchVerifies(t *testing.T) {
	h := newHandle(t)

	tests := []struct {
		function string
		tweak    func(a *Arguments)
		verified bool
	}{
		{function: "getrf", verified: true},
		{function: "getrf_npvt", tweak: square, verified: true},
		{function: "getrs", verified: true},
		{function: "getrs", tweak: func(a *Arguments) { a.Trans = 'T' }, verified: true},
		{function: "potrf", verified: true},
		{function: "potrf", tweak: func(a *Arguments) { a.Uplo = 'L' }, verified: true},
		{function: "potrf_batched", tweak: func(a *Arguments) { a.BatchCount = 3 }, verified: true},
		{function: "geqrf", verified: true},
		{function: "orgqr", verified: true},
		{function: "ormqr"},
		{function: "ormqr", tweak: func(a *Arguments) { a.Side, a.Trans = 'R', 'T' }},
		{function: "orgbr", verified: true},
		{function: "orgbr", tweak: func(a *Arguments) { a.M, a.N, a.Side = 8, 12, 'R' }, verified: true},
		{function: "orgtr", verified: true},
		{function: "ormtr"},
		{function: "gebrd", verified: true},
		{function: "gesvd", verified: true},
		{function: "gesvd", tweak: func(a *Arguments) { a.LeftSvect, a.RightSvect = 'S', 'A' }, verified: true},
		{function: "sytrd", verified: true},
		{function: "syevd", tweak: func(a *Arguments) { a.Evect = 'V' }, verified: true},
		{function: "sygvd", verified: true},
		{function: "sygvd", tweak: func(a *Arguments) { a.Itype, a.Uplo = '2', 'L' }, verified: true},
	}
	for _, tt := range tests {
		for _, precision := range []byte("sd") {
			t.Run(tt.function+"/"+string(precision), func(t *testing.T) {
				args := smallArgs(tt.function, precision)
				if tt.tweak != nil {
					tt.tweak(&args)
				}
				res, err := Dispatch(context.Background(), h, args)
				require.NoError(t, err)
				assert.Equal(t, int32(0), res.Info)
				assert.Equal(t, tt.verified, res.Verified)
				assert.Positive(t, res.Mean)

				tol := 1e-10
				if precision == 's' {
					tol = 1e-4
				}
				if res.Verified {
					assert.Less(t, res.Error, tol)
				}
			})
		}
	}
}

func square(a *Arguments) {
	a.M = a.N
}

func TestDispatchErrors(t *testing.T) {
	h := newHandle(t)

	t.Run("precision", func(t *testing.T) {
		_, err := Dispatch(context.Background(), h, smallArgs("getrf", 'q'))
		assert.ErrorIs(t, err, ErrInvalidPrecision)
	})

	t.Run("function", func(t *testing.T) {
		_, err := Dispatch(context.Background(), h, smallArgs("trsm", 'd'))
		assert.ErrorIs(t, err, ErrUnknownFunction)
	})

	t.Run("enum argument", func(t *testing.T) {
		args := smallArgs("potrf", 'd')
		args.Uplo = 'X'
		_, err := Dispatch(context.Background(), h, args)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("leading dimension too small", func(t *testing.T) {
		args := smallArgs("getrf", 'd')
		args.LDA = 2
		_, err := Dispatch(context.Background(), h, args)
		assert.ErrorIs(t, err, solver.StatusInvalidValue)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Dispatch(ctx, h, smallArgs("getrf", 'd'))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDispatchComplex(t *testing.T) {
	h := newHandle(t)
	for _, precision := range []byte("cz") {
		res, err := Dispatch(context.Background(), h, smallArgs("getrf", precision))
		if solver.Backend == "managed" {
			assert.ErrorIs(t, err, solver.StatusNotSupported)
			continue
		}
		require.NoError(t, err)
		assert.False(t, res.Verified)
	}
}

func TestDispatchMetrics(t *testing.T) {
	h := newHandle(t)
	args := smallArgs("potrf", 'd')
	args.N = 64
	res, err := Dispatch(context.Background(), h, args)
	require.NoError(t, err)
	assert.Equal(t, res.GFLOPS, testutil.ToFloat64(metrics.BenchGFLOPS))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.BenchDuration), 1)
}

func TestDispatchIsDeterministic(t *testing.T) {
	h := newHandle(t)
	args := smallArgs("gesvd", 'd')
	first, err := Dispatch(context.Background(), h, args)
	require.NoError(t, err)
	second, err := Dispatch(context.Background(), h, args)
	require.NoError(t, err)
	assert.Equal(t, first.Workspace, second.Workspace)
	assert.Equal(t, first.Error, second.Error)
}
