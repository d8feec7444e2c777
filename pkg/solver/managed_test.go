//go:build !lapacke

package solver

import (
	"testing"

	"github.com/fxnlabs/densolver/internal/devsolver"
	"github.com/fxnlabs/densolver/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslators(t *testing.T) {
	t.Run("operation", func(t *testing.T) {
		for _, op := range []Operation{OpN, OpT, OpC} {
			d, err := toDevOperation(op)
			require.NoError(t, err)
			back, err := fromDevOperation(d)
			require.NoError(t, err)
			assert.Equal(t, op, back)
		}
		_, err := toDevOperation(Operation(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
		_, err = fromDevOperation(devsolver.Operation(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
	})

	t.Run("fill", func(t *testing.T) {
		for _, f := range []Fill{FillUpper, FillLower} {
			d, err := toDevFill(f)
			require.NoError(t, err)
			back, err := fromDevFill(d)
			require.NoError(t, err)
			assert.Equal(t, f, back)
		}
		_, err := toDevFill(Fill(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
	})

	t.Run("side and storev", func(t *testing.T) {
		for _, s := range []Side{SideLeft, SideRight} {
			d, err := toDevSide(s)
			require.NoError(t, err)
			back, err := fromDevSide(d)
			require.NoError(t, err)
			assert.Equal(t, s, back)

			v, err := toDevStorev(s)
			require.NoError(t, err)
			back, err = fromDevStorev(v)
			require.NoError(t, err)
			assert.Equal(t, s, back)
		}
		_, err := toDevSide(Side(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
		_, err = toDevStorev(Side(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
	})

	t.Run("eigen", func(t *testing.T) {
		for _, m := range []EigMode{EigModeNoVector, EigModeVector} {
			d, err := toDevEvect(m)
			require.NoError(t, err)
			back, err := fromDevEvect(d)
			require.NoError(t, err)
			assert.Equal(t, m, back)
		}
		for _, it := range []EigType{EigType1, EigType2, EigType3} {
			d, err := toDevEform(it)
			require.NoError(t, err)
			back, err := fromDevEform(d)
			require.NoError(t, err)
			assert.Equal(t, it, back)
		}
		_, err := toDevEvect(EigMode(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
		_, err = toDevEform(EigType(99))
		assert.ErrorIs(t, err, StatusInvalidEnum)
	})

	t.Run("svd job", func(t *testing.T) {
		for _, job := range []byte("ASON") {
			d, err := toDevSvect(job)
			require.NoError(t, err)
			back, err := fromDevSvect(d)
			require.NoError(t, err)
			assert.Equal(t, job, back)
		}
		d, err := toDevSvect('s')
		require.NoError(t, err)
		assert.Equal(t, devsolver.SvectSingular, d)

		_, err = toDevSvect('X')
		assert.ErrorIs(t, err, StatusInvalidValue)
	})
}

func TestFromDevStatus(t *testing.T) {
	want := map[devsolver.Status]Status{
		devsolver.StatusSuccess:           StatusSuccess,
		devsolver.StatusInvalidHandle:     StatusNotInitialized,
		devsolver.StatusNotImplemented:    StatusNotSupported,
		devsolver.StatusInvalidPointer:    StatusInvalidValue,
		devsolver.StatusInvalidSize:       StatusInvalidValue,
		devsolver.StatusMemoryError:       StatusAllocFailed,
		devsolver.StatusInternalError:     StatusInternalError,
		devsolver.StatusPerfDegraded:      StatusUnknown,
		devsolver.StatusSizeQueryMismatch: StatusUnknown,
		devsolver.StatusSizeIncreased:     StatusSuccess,
		devsolver.StatusSizeUnchanged:     StatusSuccess,
		devsolver.StatusInvalidValue:      StatusInvalidValue,
		devsolver.StatusContinue:          StatusUnknown,
		devsolver.StatusCheckNumerics:     StatusUnknown,
	}
	for st := devsolver.Status(0); st <= devsolver.StatusCheckNumerics+2; st++ {
		expected, ok := want[st]
		if !ok {
			expected = StatusUnknown
		}
		assert.Equal(t, expected, fromDevStatus(st), "status %v", st)
	}
}

func TestWorkspaceSizing(t *testing.T) {
	h := newHandle(t)
	spd := func() []float32 { return []float32{4, 2, 2, 2, 5, 3, 2, 3, 6} }

	t.Run("exact buffer", func(t *testing.T) {
		var info int32

		a := spd()
		work := exactWork(t)(PotrfBufferSize(h, FillLower, 3, a, 3))
		require.NoError(t, Potrf(h, FillLower, 3, a, 3, work, &info))
		assert.Equal(t, int32(0), info)

		lu := []float64{2, 1, 1, 4, 3, 3, 8, 7, 9}
		work = exactWork(t)(GetrfBufferSize(h, 3, 3, lu, 3))
		require.NoError(t, Getrf(h, 3, 3, lu, 3, work, make([]int32, 3), &info))
		assert.Equal(t, int32(0), info)

		qr := []float32{1, 2, 3, 4, 5, 6}
		work = exactWork(t)(GeqrfBufferSize(h, 3, 2, qr, 2))
		require.NoError(t, Geqrf(h, 3, 2, qr, 2, make([]float32, 2), work, nil))

		sym := spd()
		w := make([]float32, 3)
		work = exactWork(t)(SyevdBufferSize(h, EigModeVector, FillUpper, 3, sym, 3, w))
		require.NoError(t, Syevd(h, EigModeVector, FillUpper, 3, sym, 3, w, work, &info))
		assert.Equal(t, int32(0), info)

		sv := []float32{1, 2, 3, 4, 5, 6}
		s := make([]float32, 2)
		work = exactWork(t)(GesvdBufferSize[float32](h, 'N', 'N', 3, 2))
		require.NoError(t, Gesvd[float32, float32](h, 'N', 'N', 3, 2, sv, 2, s, nil, 1, nil, 1, work, nil, &info))
		assert.Equal(t, int32(0), info)
	})

	t.Run("one byte short", func(t *testing.T) {
		a := spd()
		lwork, err := PotrfBufferSize(h, FillLower, 3, a, 3)
		require.NoError(t, err)
		require.Positive(t, lwork)

		var info int32
		err = Potrf(h, FillLower, 3, a, 3, make([]byte, lwork-1), &info)
		assert.ErrorIs(t, err, StatusAllocFailed)
	})

	t.Run("work smaller than aux", func(t *testing.T) {
		a := spd()
		var info int32
		err := Syevd(h, EigModeNoVector, FillUpper, 3, a, 3, make([]float32, 3), make([]byte, 8), &info)
		assert.ErrorIs(t, err, StatusAllocFailed)
	})

	t.Run("nil work runs one size query", func(t *testing.T) {
		before := h.native.dev.Stats().SizeQueries
		var info int32
		require.NoError(t, Potrf(h, FillLower, 3, spd(), 3, nil, &info))
		assert.Equal(t, before+1, h.native.dev.Stats().SizeQueries)
	})
}

func TestUserManagedPool(t *testing.T) {
	h := newHandle(t)
	dev := h.native.dev
	require.Equal(t, devsolver.StatusSuccess, dev.SetMemorySize(64))

	a := []float32{4, 2, 2, 2, 5, 3, 2, 3, 6}
	lwork, err := PotrfBufferSize(h, FillLower, 3, a, 3)
	require.NoError(t, err)
	require.Greater(t, lwork, 64)

	var info int32
	require.NoError(t, Potrf(h, FillLower, 3, a, 3, nil, &info))
	assert.Equal(t, int32(0), info)
	assert.True(t, dev.IsUserManagingMemory())
	assert.Equal(t, lwork, dev.MemorySize())

	// A pool that is already large enough is left alone.
	require.NoError(t, Potrf(h, FillLower, 2, []float32{4, 0, 0, 4}, 2, nil, &info))
	assert.Equal(t, lwork, dev.MemorySize())
}

func TestManagedLU(t *testing.T) {
	h := newHandle(t)
	for _, pivot := range []bool{true, false} {
		a := []float32{2, 1, 1, 4, 3, 3, 8, 7, 9}
		var ipiv []int32
		if pivot {
			ipiv = make([]int32, 3)
		}
		var info int32
		require.NoError(t, Getrf(h, 3, 3, a, 3, nil, ipiv, &info))
		assert.Equal(t, int32(0), info, "pivot=%v", pivot)
	}
}

func TestComplexNotSupported(t *testing.T) {
	h := newHandle(t)
	var info int32

	_, err := GeqrfBufferSize[Complex](h, 2, 2, nil, 2)
	assert.ErrorIs(t, err, StatusNotSupported)

	a := make([]DoubleComplex, 4)
	err = Getrf(h, 2, 2, a, 2, nil, make([]int32, 2), &info)
	assert.ErrorIs(t, err, StatusNotSupported)
}

func TestSizeQueryMetrics(t *testing.T) {
	h := newHandle(t)
	queries := metrics.SizeQueries.WithLabelValues("potrf")
	before := testutil.ToFloat64(queries)

	lwork, err := PotrfBufferSize[float32](h, FillUpper, 4, nil, 4)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(queries))
	assert.Equal(t, float64(lwork), testutil.ToFloat64(metrics.WorkspaceBytes.WithLabelValues("potrf")))
}

func TestWorkspaceLimit(t *testing.T) {
	h := newHandle(t)
	// float64 staging for a 30000 x 30000 float32 matrix needs 7.2e9 bytes.
	const n = 30000

	_, err := GetrfBufferSize[float32](h, n, n, nil, n)
	assert.ErrorIs(t, err, StatusInternalError)

	before := h.native.dev.Stats().Resizes
	var info int32
	err = Getrf(h, n, n, make([]float32, 1), n, nil, make([]int32, 1), &info)
	assert.ErrorIs(t, err, StatusInternalError)
	assert.Equal(t, before, h.native.dev.Stats().Resizes)
	assert.Zero(t, h.native.dev.MemorySize())
}
