package solver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fxnlabs/densolver/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tol = 1e-10

func newHandle(t *testing.T) *Handle {
	t.Helper()
	h, err := Create(WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Destroy() })
	return h
}

// exactWork allocates the workspace size returned by a BufferSize call:
// exactWork(t)(PotrfBufferSize(...)).
func exactWork(t *testing.T) func(lwork int, err error) []byte {
	return func(lwork int, err error) []byte {
		t.Helper()
		require.NoError(t, err)
		require.GreaterOrEqual(t, lwork, 0)
		return make([]byte, lwork)
	}
}

func TestStatus(t *testing.T) {
	t.Run("StatusOf", func(t *testing.T) {
		assert.Equal(t, StatusSuccess, StatusOf(nil))
		assert.Equal(t, StatusInvalidValue, StatusOf(StatusInvalidValue))
		assert.Equal(t, StatusAllocFailed, StatusOf(fmt.Errorf("bench: %w", StatusAllocFailed)))
		assert.Equal(t, StatusUnknown, StatusOf(errors.New("other")))
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", StatusNotSupported)
		assert.True(t, errors.Is(err, StatusNotSupported))
		assert.False(t, errors.Is(err, StatusInvalidValue))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "invalid_enum", StatusInvalidEnum.String())
		assert.Equal(t, "densolver: alloc_failed", StatusAllocFailed.Error())
		assert.Equal(t, "status(42)", Status(42).String())
	})
}

func TestHandleLifecycle(t *testing.T) {
	t.Run("stream", func(t *testing.T) {
		h, err := Create(WithStream(7))
		require.NoError(t, err)
		s, err := h.Stream()
		require.NoError(t, err)
		assert.Equal(t, Stream(7), s)

		require.NoError(t, h.SetStream(9))
		s, err = h.Stream()
		require.NoError(t, err)
		assert.Equal(t, Stream(9), s)
		require.NoError(t, h.Destroy())
	})

	t.Run("destroyed handle", func(t *testing.T) {
		h, err := Create()
		require.NoError(t, err)
		require.NoError(t, h.Destroy())
		assert.ErrorIs(t, h.Destroy(), StatusNotInitialized)
		_, err = h.Stream()
		assert.ErrorIs(t, err, StatusNotInitialized)
	})

	t.Run("nil handle", func(t *testing.T) {
		calls := metrics.SolverCalls.WithLabelValues("getrf", "not_initialized")
		before := testutil.ToFloat64(calls)

		var info int32
		err := Getrf[float64](nil, 2, 2, make([]float64, 4), 2, nil, make([]int32, 2), &info)
		assert.ErrorIs(t, err, StatusNotInitialized)
		assert.Equal(t, before+1, testutil.ToFloat64(calls))

		_, err = PotrfBufferSize[float32](nil, FillLower, 2, nil, 2)
		assert.ErrorIs(t, err, StatusNotInitialized)
	})
}

func TestLUSolve(t *testing.T) {
	h := newHandle(t)
	orig := []float64{2, 1, 1, 4, 3, 3, 8, 7, 9}

	a := append([]float64(nil), orig...)
	ipiv := make([]int32, 3)
	var info int32
	work := exactWork(t)(GetrfBufferSize(h, 3, 3, a, 3))
	require.NoError(t, Getrf(h, 3, 3, a, 3, work, ipiv, &info))
	assert.Equal(t, int32(0), info)
	for _, p := range ipiv {
		assert.True(t, p >= 1 && p <= 3, "pivot %d out of range", p)
	}

	b := []float64{7, 19, 49}
	work = exactWork(t)(GetrsBufferSize(h, OpN, 3, 1, a, 3, ipiv, b, 1))
	require.NoError(t, Getrs(h, OpN, 3, 1, a, 3, ipiv, b, 1, work, &info))
	assert.InDeltaSlice(t, []float64{1, 2, 3}, b, tol)

	t.Run("transposed", func(t *testing.T) {
		// A^T * (1, 1, 1) = (14, 11, 13)
		bt := []float64{14, 11, 13}
		require.NoError(t, Getrs(h, OpT, 3, 1, a, 3, ipiv, bt, 1, nil, &info))
		assert.InDeltaSlice(t, []float64{1, 1, 1}, bt, tol)
	})

	t.Run("singular", func(t *testing.T) {
		s := []float64{1, 2, 2, 4}
		require.NoError(t, Getrf(h, 2, 2, s, 2, nil, make([]int32, 2), &info))
		assert.Equal(t, int32(2), info)
	})
}

func TestUnpivotedLU(t *testing.T) {
	h := newHandle(t)
	a := []float64{2, 1, 1, 4, 3, 3, 8, 7, 9}
	var info int32
	require.NoError(t, Getrf(h, 3, 3, a, 3, nil, nil, &info))
	assert.Equal(t, int32(0), info)
	// L has unit diagonal below, U on and above it.
	assert.InDeltaSlice(t, []float64{2, 1, 1, 2, 1, 1, 4, 3, 2}, a, tol)
}

func TestCholesky(t *testing.T) {
	h := newHandle(t)
	spd := []float64{4, 2, 2, 2, 5, 3, 2, 3, 6}

	t.Run("lower", func(t *testing.T) {
		a := append([]float64(nil), spd...)
		var info int32
		work := exactWork(t)(PotrfBufferSize(h, FillLower, 3, a, 3))
		require.NoError(t, Potrf(h, FillLower, 3, a, 3, work, &info))
		require.Equal(t, int32(0), info)
		for i := 0; i < 3; i++ {
			for j := 0; j <= i; j++ {
				var sum float64
				for k := 0; k <= j; k++ {
					sum += a[i*3+k] * a[j*3+k]
				}
				assert.InDelta(t, spd[i*3+j], sum, tol)
			}
		}
	})

	t.Run("not positive definite", func(t *testing.T) {
		a := []float64{1, 2, 2, 1}
		var info int32
		require.NoError(t, Potrf(h, FillUpper, 2, a, 2, nil, &info))
		assert.Equal(t, int32(2), info)
	})

	t.Run("batched", func(t *testing.T) {
		batch := [][]float32{
			{4, 2, 2, 5},
			{1, 2, 2, 1},
		}
		info := make([]int32, 2)
		work := exactWork(t)(PotrfBatchedBufferSize(h, FillLower, 2, batch, 2, 2))
		require.NoError(t, PotrfBatched(h, FillLower, 2, batch, 2, work, info, 2))
		assert.Equal(t, []int32{0, 2}, info)
		assert.InDelta(t, 2, batch[0][0], 1e-6)
	})
}

func TestQR(t *testing.T) {
	h := newHandle(t)
	orig := []float64{1, 2, 3, 4, 5, 6}
	a := append([]float64(nil), orig...)
	tau := make([]float64, 2)

	work := exactWork(t)(GeqrfBufferSize(h, 3, 2, a, 2))
	require.NoError(t, Geqrf(h, 3, 2, a, 2, tau, work, nil))
	r := []float64{a[0], a[1], 0, a[3]}

	work = exactWork(t)(OrgqrBufferSize(h, 3, 2, 2, a, 2, tau))
	require.NoError(t, Orgqr(h, 3, 2, 2, a, 2, tau, work, nil))

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			qr := a[i*2]*r[j] + a[i*2+1]*r[2+j]
			assert.InDelta(t, orig[i*2+j], qr, tol)
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var dot float64
			for k := 0; k < 3; k++ {
				dot += a[k*2+i] * a[k*2+j]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, dot, tol)
		}
	}
}

func TestSVD(t *testing.T) {
	h := newHandle(t)

	t.Run("values only", func(t *testing.T) {
		a := []float64{3, 0, 0, -2, 0, 0}
		s := make([]float64, 2)
		var info int32
		work := exactWork(t)(GesvdBufferSize[float64](h, 'N', 'N', 3, 2))
		require.NoError(t, Gesvd(h, 'N', 'N', 3, 2, a, 2, s, nil, 1, nil, 1, work, nil, &info))
		assert.Equal(t, int32(0), info)
		assert.InDeltaSlice(t, []float64{3, 2}, s, tol)
	})

	t.Run("vectors", func(t *testing.T) {
		orig := []float64{1, 2, 3, 4, 5, 6}
		a := append([]float64(nil), orig...)
		s := make([]float64, 2)
		u := make([]float64, 3*2)
		v := make([]float64, 2*2)
		rwork := make([]float64, 1)
		var info int32
		require.NoError(t, Gesvd(h, 'S', 'A', 3, 2, a, 2, s, u, 2, v, 2, nil, rwork, &info))
		require.Equal(t, int32(0), info)
		for i := 0; i < 3; i++ {
			for j := 0; j < 2; j++ {
				var sum float64
				for k := 0; k < 2; k++ {
					sum += u[i*2+k] * s[k] * v[k*2+j]
				}
				assert.InDelta(t, orig[i*2+j], sum, 1e-9)
			}
		}
	})

	t.Run("bad job", func(t *testing.T) {
		_, err := GesvdBufferSize[float64](h, 'X', 'N', 3, 2)
		assert.ErrorIs(t, err, StatusInvalidValue)
	})
}

func TestSymmetricEigen(t *testing.T) {
	h := newHandle(t)

	t.Run("syevd", func(t *testing.T) {
		orig := []float64{2, 1, 1, 2}
		a := append([]float64(nil), orig...)
		w := make([]float64, 2)
		var info int32
		work := exactWork(t)(SyevdBufferSize(h, EigModeVector, FillUpper, 2, a, 2, w))
		require.NoError(t, Syevd(h, EigModeVector, FillUpper, 2, a, 2, w, work, &info))
		require.Equal(t, int32(0), info)
		assert.InDeltaSlice(t, []float64{1, 3}, w, tol)
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				av := orig[i*2]*a[j] + orig[i*2+1]*a[2+j]
				assert.InDelta(t, w[j]*a[i*2+j], av, tol)
			}
		}
	})

	t.Run("sygvd", func(t *testing.T) {
		a := []float64{2, 0, 0, 6}
		b := []float64{4, 0, 0, 1}
		w := make([]float64, 2)
		var info int32
		work := exactWork(t)(SygvdBufferSize(h, EigType1, EigModeNoVector, FillLower, 2, a, 2, b, 2, w))
		require.NoError(t, Sygvd(h, EigType1, EigModeNoVector, FillLower, 2, a, 2, b, 2, w, work, &info))
		require.Equal(t, int32(0), info)
		assert.InDeltaSlice(t, []float64{0.5, 6}, w, tol)
	})

	t.Run("sygvd b not positive definite", func(t *testing.T) {
		a := []float64{2, 0, 0, 6}
		b := []float64{1, 0, 0, -1}
		w := make([]float64, 2)
		var info int32
		require.NoError(t, Sygvd(h, EigType1, EigModeNoVector, FillLower, 2, a, 2, b, 2, w, nil, &info))
		assert.Equal(t, int32(4), info)
	})

	t.Run("tridiagonal", func(t *testing.T) {
		a := []float64{4, 1, 2, 1, 5, 3, 2, 3, 6}
		d := make([]float64, 3)
		e := make([]float64, 2)
		tau := make([]float64, 2)
		work := exactWork(t)(SytrdBufferSize(h, FillLower, 3, a, 3, d, e, tau))
		require.NoError(t, Sytrd(h, FillLower, 3, a, 3, d, e, tau, work, nil))
		assert.InDelta(t, 15, d[0]+d[1]+d[2], tol)
	})
}

func TestArgumentErrors(t *testing.T) {
	h := newHandle(t)
	var info int32

	t.Run("invalid enum", func(t *testing.T) {
		err := Potrf(h, Fill(0), 2, make([]float64, 4), 2, nil, &info)
		assert.ErrorIs(t, err, StatusInvalidEnum)
		_, err = SyevdBufferSize[float64, float64](h, EigMode(7), FillUpper, 2, nil, 2, nil)
		assert.ErrorIs(t, err, StatusInvalidEnum)
	})

	t.Run("invalid size", func(t *testing.T) {
		err := Getrf(h, 3, 3, make([]float64, 9), 2, nil, make([]int32, 3), &info)
		assert.ErrorIs(t, err, StatusInvalidValue)
	})

	t.Run("mismatched real precision", func(t *testing.T) {
		err := Syevd(h, EigModeNoVector, FillUpper, 2, []float64{1, 0, 0, 1}, 2, make([]float32, 2), nil, &info)
		assert.ErrorIs(t, err, StatusInvalidValue)
	})
}

func TestRealSize(t *testing.T) {
	assert.Equal(t, 4, realSize[float32]())
	assert.Equal(t, 4, realSize[Complex]())
	assert.Equal(t, 8, realSize[float64]())
	assert.Equal(t, 8, realSize[DoubleComplex]())
	assert.True(t, realMatches[Complex, float32]())
	assert.False(t, realMatches[DoubleComplex, float32]())
	assert.Equal(t, 0, extent(0, 3, 3))
	assert.Equal(t, 8, extent(2, 3, 5))
	assert.Equal(t, 16, elemSize[DoubleComplex]())
}
