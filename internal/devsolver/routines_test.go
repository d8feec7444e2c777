package devsolver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-10

func identity(n int) []float64 {
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] = 1
	}
	return a
}

// spd3 is symmetric positive definite and diagonally dominant.
func spd3() []float64 {
	return []float64{
		4, 1, 2,
		1, 5, 3,
		2, 3, 6,
	}
}

func matmul(m, k, n int, a, b []float64) []float64 {
	c := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			for l := 0; l < k; l++ {
				c[i*n+j] += a[i*k+l] * b[l*n+j]
			}
		}
	}
	return c
}

func transpose(m, n int, a []float64) []float64 {
	t := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			t[j*m+i] = a[i*n+j]
		}
	}
	return t
}

func TestGetrfGetrs(t *testing.T) {
	h := newHandle(t)

	t.Run("solve with pivoting", func(t *testing.T) {
		a := spd3()
		ipiv := make([]int32, 3)
		var info int32
		require.Equal(t, StatusSuccess, Getrf(h, 3, 3, a, 3, ipiv, &info))
		assert.Zero(t, info)
		for _, p := range ipiv {
			assert.GreaterOrEqual(t, p, int32(1))
			assert.LessOrEqual(t, p, int32(3))
		}

		b := []float64{12, 20, 26}
		require.Equal(t, StatusSuccess, Getrs(h, OperationNone, 3, 1, a, 3, ipiv, b, 1))
		assert.InDeltaSlice(t, []float64{1, 2, 3}, b, tol)
	})

	t.Run("float32 is staged", func(t *testing.T) {
		a := []float32{4, 1, 2, 1, 5, 3, 2, 3, 6}
		ipiv := make([]int32, 3)
		var info int32
		require.Equal(t, StatusSuccess, Getrf(h, 3, 3, a, 3, ipiv, &info))
		b := []float32{12, 20, 26}
		require.Equal(t, StatusSuccess, Getrs(h, OperationTranspose, 3, 1, a, 3, ipiv, b, 1))
		// spd3 is symmetric, so A^T x = b has the same solution.
		assert.InDeltaSlice(t, []float32{1, 2, 3}, b, 1e-5)
	})

	t.Run("singular matrix reports the zero pivot", func(t *testing.T) {
		a := []float64{1, 2, 2, 4}
		ipiv := make([]int32, 2)
		var info int32
		require.Equal(t, StatusSuccess, Getrf(h, 2, 2, a, 2, ipiv, &info))
		assert.Equal(t, int32(2), info)
	})

	t.Run("short ipiv", func(t *testing.T) {
		var info int32
		assert.Equal(t, StatusInvalidPointer, Getrf(h, 3, 3, spd3(), 3, make([]int32, 2), &info))
	})

	t.Run("pivot out of range", func(t *testing.T) {
		b := []float64{1, 1, 1}
		assert.Equal(t, StatusInvalidValue, Getrs(h, OperationNone, 3, 1, spd3(), 3, []int32{0, 1, 2}, b, 1))
	})

	t.Run("bad operation", func(t *testing.T) {
		b := []float64{1, 1, 1}
		assert.Equal(t, StatusInvalidValue, Getrs(h, Operation(5), 3, 1, spd3(), 3, []int32{1, 2, 3}, b, 1))
	})
}

func TestGetrfNpvt(t *testing.T) {
	h := newHandle(t)
	orig := spd3()
	a := spd3()
	var info int32
	require.Equal(t, StatusSuccess, GetrfNpvt(h, 3, 3, a, 3, &info))
	require.Zero(t, info)

	l, u := identity(3), make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if j < i {
				l[i*3+j] = a[i*3+j]
			} else {
				u[i*3+j] = a[i*3+j]
			}
		}
	}
	assert.InDeltaSlice(t, orig, matmul(3, 3, 3, l, u), tol)

	t.Run("zero pivot", func(t *testing.T) {
		a := []float64{0, 1, 1, 0}
		var info int32
		require.Equal(t, StatusSuccess, GetrfNpvt(h, 2, 2, a, 2, &info))
		assert.Equal(t, int32(1), info)
	})
}

func TestPotrf(t *testing.T) {
	h := newHandle(t)

	t.Run("lower factor reconstructs", func(t *testing.T) {
		a := spd3()
		var info int32
		require.Equal(t, StatusSuccess, Potrf(h, FillLower, 3, a, 3, &info))
		require.Zero(t, info)
		l := make([]float64, 9)
		for i := 0; i < 3; i++ {
			for j := 0; j <= i; j++ {
				l[i*3+j] = a[i*3+j]
			}
		}
		assert.InDeltaSlice(t, spd3(), matmul(3, 3, 3, l, transpose(3, 3, l)), tol)
	})

	t.Run("indefinite matrix reports the failing minor", func(t *testing.T) {
		a := []float64{1, 2, 2, 1}
		var info int32
		require.Equal(t, StatusSuccess, Potrf(h, FillLower, 2, a, 2, &info))
		assert.Equal(t, int32(2), info)
	})

	t.Run("batched", func(t *testing.T) {
		batch := [][]float32{
			{4, 1, 2, 1, 5, 3, 2, 3, 6},
			{1, 2, 0, 2, 1, 0, 0, 0, 1},
		}
		info := make([]int32, 2)
		require.Equal(t, StatusSuccess, PotrfBatched(h, FillUpper, 3, batch, 3, info, 2))
		assert.Equal(t, []int32{0, 2}, info)
		assert.InDelta(t, 2, batch[0][0], 1e-6)
	})

	t.Run("bad fill", func(t *testing.T) {
		var info int32
		assert.Equal(t, StatusInvalidValue, Potrf(h, FillFull, 3, spd3(), 3, &info))
	})
}

func TestQR(t *testing.T) {
	h := newHandle(t)
	orig := []float64{
		1, 2,
		3, 4,
		5, 6,
	}
	a := append([]float64(nil), orig...)
	tau := make([]float64, 2)
	require.Equal(t, StatusSuccess, Geqrf(h, 3, 2, a, 2, tau))

	r := []float64{a[0], a[1], 0, a[3]}
	q := append([]float64(nil), a...)
	require.Equal(t, StatusSuccess, Orgqr(h, 3, 2, 2, q, 2, tau))
	assert.InDeltaSlice(t, identity(2), matmul(2, 3, 2, transpose(3, 2, q), q), tol)
	assert.InDeltaSlice(t, orig, matmul(3, 2, 2, q, r), tol)

	t.Run("ormqr applies Q^T", func(t *testing.T) {
		c := append([]float64(nil), orig...)
		require.Equal(t, StatusSuccess, Ormqr(h, SideLeft, OperationTranspose, 3, 2, 2, a, 2, tau, c, 2))
		// Q^T * A = R padded with a zero row.
		assert.InDeltaSlice(t, []float64{r[0], r[1], 0, r[3], 0, 0}, c, tol)
	})

	t.Run("conjugate transpose is rejected for real data", func(t *testing.T) {
		c := make([]float64, 6)
		assert.Equal(t, StatusInvalidValue, Ormqr(h, SideLeft, OperationConjugateTranspose, 3, 2, 2, a, 2, tau, c, 2))
	})

	t.Run("orgqr needs m >= n >= k", func(t *testing.T) {
		assert.Equal(t, StatusInvalidSize, Orgqr(h, 2, 3, 2, make([]float64, 6), 3, tau))
	})
}

func TestBidiagonal(t *testing.T) {
	h := newHandle(t)
	orig := []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
		1, 0, 1,
	}
	a := append([]float64(nil), orig...)
	d, e := make([]float64, 3), make([]float64, 2)
	tauq, taup := make([]float64, 3), make([]float64, 3)
	require.Equal(t, StatusSuccess, Gebrd(h, 4, 3, a, 3, d, e, tauq, taup))

	q := append([]float64(nil), a...)
	require.Equal(t, StatusSuccess, Orgbr(h, ColumnWise, 4, 3, 3, q, 3, tauq))
	pt := make([]float64, 9)
	copy(pt, a[:9])
	require.Equal(t, StatusSuccess, Orgbr(h, RowWise, 3, 3, 4, pt, 3, taup))

	b := []float64{
		d[0], e[0], 0,
		0, d[1], e[1],
		0, 0, d[2],
	}
	assert.InDeltaSlice(t, orig, matmul(4, 3, 3, q, matmul(3, 3, 3, b, pt)), 1e-9)

	t.Run("invalid storev", func(t *testing.T) {
		assert.Equal(t, StatusInvalidValue, Orgbr(h, Storev(0), 3, 3, 3, make([]float64, 9), 3, tauq))
	})
}

func TestGesvd(t *testing.T) {
	h := newHandle(t)
	a := []float64{
		3, 0,
		0, 4,
		0, 0,
	}
	s := make([]float64, 2)
	u := make([]float64, 9)
	vt := make([]float64, 4)
	e := make([]float64, 1)
	var info int32
	require.Equal(t, StatusSuccess, Gesvd(h, SvectAll, SvectAll, 3, 2, a, 2, s, u, 3, vt, 2, e, OutOfPlace, &info))
	require.Zero(t, info)
	assert.InDeltaSlice(t, []float64{4, 3}, s, tol)

	t.Run("values only in float32", func(t *testing.T) {
		a := []float32{3, 0, 0, 4, 0, 0}
		s := make([]float32, 2)
		e := make([]float32, 1)
		var info int32
		require.Equal(t, StatusSuccess, Gesvd(h, SvectNone, SvectNone, 3, 2, a, 2, s, nil, 1, nil, 1, e, OutOfPlace, &info))
		assert.InDeltaSlice(t, []float32{4, 3}, s, 1e-5)
	})

	t.Run("both overwrite", func(t *testing.T) {
		var info int32
		assert.Equal(t, StatusInvalidValue, Gesvd(h, SvectOverwrite, SvectOverwrite, 3, 2, a, 2, s, u, 3, vt, 2, e, OutOfPlace, &info))
	})
}

func TestTridiagonal(t *testing.T) {
	h := newHandle(t)

	for _, fill := range []Fill{FillUpper, FillLower} {
		a := spd3()
		d, e, tau := make([]float64, 3), make([]float64, 2), make([]float64, 2)
		require.Equal(t, StatusSuccess, Sytrd(h, fill, 3, a, 3, d, e, tau))

		tri := []float64{
			d[0], e[0], 0,
			e[0], d[1], e[1],
			0, e[1], d[2],
		}

		// A = Q*T*Q^T, built with ormtr applied to T from both sides.
		c := append([]float64(nil), tri...)
		require.Equal(t, StatusSuccess, Ormtr(h, SideLeft, fill, OperationNone, 3, 3, a, 3, tau, c, 3))
		require.Equal(t, StatusSuccess, Ormtr(h, SideRight, fill, OperationTranspose, 3, 3, a, 3, tau, c, 3))
		assert.InDeltaSlice(t, spd3(), c, 1e-9, "fill %d", fill)

		q := append([]float64(nil), a...)
		require.Equal(t, StatusSuccess, Orgtr(h, fill, 3, q, 3, tau))
		assert.InDeltaSlice(t, spd3(), matmul(3, 3, 3, q, matmul(3, 3, 3, tri, transpose(3, 3, q))), 1e-9)
	}
}

func TestSyevd(t *testing.T) {
	h := newHandle(t)
	a := []float64{
		2, 1,
		1, 2,
	}
	d, e := make([]float64, 2), make([]float64, 2)
	var info int32
	require.Equal(t, StatusSuccess, Syevd(h, EvectOriginal, FillUpper, 2, a, 2, d, e, &info))
	require.Zero(t, info)
	assert.InDeltaSlice(t, []float64{1, 3}, d, tol)
	// Columns of a are unit eigenvectors.
	for j := 0; j < 2; j++ {
		v0, v1 := a[j], a[2+j]
		assert.InDelta(t, 1, v0*v0+v1*v1, tol)
		assert.InDelta(t, d[j]*v0, 2*v0+v1, tol)
	}

	t.Run("values only", func(t *testing.T) {
		a := []float32{4, 1, 2, 1, 5, 3, 2, 3, 6}
		d, e := make([]float32, 3), make([]float32, 3)
		var info int32
		require.Equal(t, StatusSuccess, Syevd(h, EvectNone, FillLower, 3, a, 3, d, e, &info))
		assert.InDelta(t, 15, d[0]+d[1]+d[2], 1e-4)
		assert.LessOrEqual(t, d[0], d[1])
		assert.LessOrEqual(t, d[1], d[2])
	})

	t.Run("tridiagonal vectors are not offered", func(t *testing.T) {
		var info int32
		assert.Equal(t, StatusInvalidValue, Syevd(h, EvectTridiagonal, FillLower, 2, a, 2, d, e, &info))
	})
}

func TestSygvd(t *testing.T) {
	h := newHandle(t)

	t.Run("A x = l B x", func(t *testing.T) {
		a := []float64{2, 1, 1, 2}
		b := []float64{2, 0, 0, 2}
		d, e := make([]float64, 2), make([]float64, 2)
		var info int32
		require.Equal(t, StatusSuccess, Sygvd(h, EformAx, EvectOriginal, FillLower, 2, a, 2, b, 2, d, e, &info))
		require.Zero(t, info)
		assert.InDeltaSlice(t, []float64{0.5, 1.5}, d, tol)
		for j := 0; j < 2; j++ {
			x0, x1 := a[j], a[2+j]
			assert.InDelta(t, d[j]*2*x0, 2*x0+x1, tol)
			assert.InDelta(t, d[j]*2*x1, x0+2*x1, tol)
			// Eigenvectors are B-orthonormal.
			assert.InDelta(t, 1, 2*(x0*x0+x1*x1), tol)
		}
	})

	t.Run("A B x = l x", func(t *testing.T) {
		a := []float64{2, 1, 1, 2}
		b := []float64{2, 0, 0, 2}
		d, e := make([]float64, 2), make([]float64, 2)
		var info int32
		require.Equal(t, StatusSuccess, Sygvd(h, EformAbx, EvectNone, FillUpper, 2, a, 2, b, 2, d, e, &info))
		assert.InDeltaSlice(t, []float64{2, 6}, d, tol)
	})

	t.Run("B not positive definite", func(t *testing.T) {
		a := []float64{2, 1, 1, 2}
		b := []float64{1, 2, 2, 1}
		d, e := make([]float64, 2), make([]float64, 2)
		var info int32
		require.Equal(t, StatusSuccess, Sygvd(h, EformAx, EvectOriginal, FillLower, 2, a, 2, b, 2, d, e, &info))
		assert.Equal(t, int32(4), info)
	})

	t.Run("bad itype", func(t *testing.T) {
		var info int32
		assert.Equal(t, StatusInvalidValue, Sygvd(h, Eform(0), EvectNone, FillLower, 1, []float64{1}, 1, []float64{1}, 1, []float64{0}, []float64{0}, &info))
	})
}

func TestQueryMatchesExecute(t *testing.T) {
	h := newHandle(t)
	n := 16
	require.Equal(t, StatusSuccess, h.StartSizeQuery())
	Syevd[float32, float32](h, EvectOriginal, FillUpper, n, nil, n, nil, nil, nil)
	size, st := h.StopSizeQuery()
	require.Equal(t, StatusSuccess, st)
	require.Positive(t, size)

	require.Equal(t, StatusSuccess, h.SetMemorySize(size))
	a := make([]float32, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = float32(1 / float64(i+j+1))
		}
		a[i*n+i] += float32(n)
	}
	d, e := make([]float32, n), make([]float32, n)
	var info int32
	require.Equal(t, StatusSuccess, Syevd(h, EvectOriginal, FillUpper, n, a, n, d, e, &info))
	assert.Zero(t, info)
	assert.False(t, math.IsNaN(float64(d[0])))
}

// fitted sizes the pool with a size query of run and then fixes it at that
// size, so the execute call fails unless it borrows no more than it reported.
func fitted(t *testing.T, h *Handle, run func() Status) Status {
	t.Helper()
	require.Equal(t, StatusSuccess, h.StartSizeQuery())
	run()
	size, st := h.StopSizeQuery()
	require.Equal(t, StatusSuccess, st)
	require.Positive(t, size)
	require.Equal(t, StatusSuccess, h.SetMemorySize(size))
	defer h.SetMemorySize(0)
	return run()
}

func TestOrgbrShiftedReflectors(t *testing.T) {
	h := newHandle(t)

	t.Run("P^T of a square reduction", func(t *testing.T) {
		orig := []float64{
			4, 1, 0, 2,
			1, 3, 1, 0,
			0, 1, 2, 1,
			2, 0, 1, 5,
		}
		a := append([]float64(nil), orig...)
		d, e := make([]float64, 4), make([]float64, 3)
		tauq, taup := make([]float64, 4), make([]float64, 4)
		require.Equal(t, StatusSuccess, Gebrd(h, 4, 4, a, 4, d, e, tauq, taup))

		q := append([]float64(nil), a...)
		require.Equal(t, StatusSuccess, Orgbr(h, ColumnWise, 4, 4, 4, q, 4, tauq))
		pt := append([]float64(nil), a...)
		var tmp []float64
		require.Equal(t, StatusSuccess, fitted(t, h, func() Status {
			tmp = append(tmp[:0], pt...)
			return Orgbr(h, RowWise, 4, 4, 4, tmp, 4, taup)
		}))
		pt = tmp

		b := []float64{
			d[0], e[0], 0, 0,
			0, d[1], e[1], 0,
			0, 0, d[2], e[2],
			0, 0, 0, d[3],
		}
		assert.InDeltaSlice(t, orig, matmul(4, 4, 4, q, matmul(4, 4, 4, b, pt)), 1e-9)
	})

	t.Run("Q of a wide reduction", func(t *testing.T) {
		orig := []float64{
			4, 1, 0, 2, 1, 0,
			1, 3, 1, 0, 0, 1,
			0, 1, 2, 1, 1, 0,
			2, 0, 1, 5, 0, 1,
		}
		a := append([]float64(nil), orig...)
		d, e := make([]float64, 4), make([]float64, 3)
		tauq, taup := make([]float64, 4), make([]float64, 4)
		require.Equal(t, StatusSuccess, Gebrd(h, 4, 6, a, 6, d, e, tauq, taup))

		// Q is 4x4 from the reduction of a 4x6 matrix, so k = 6 > m.
		var q []float64
		require.Equal(t, StatusSuccess, fitted(t, h, func() Status {
			q = append(q[:0], a...)
			return Orgbr(h, ColumnWise, 4, 4, 6, q, 6, tauq)
		}))
		qm := make([]float64, 16)
		for i := 0; i < 4; i++ {
			copy(qm[i*4:i*4+4], q[i*6:i*6+4])
		}

		pt := make([]float64, 36)
		copy(pt, a)
		require.Equal(t, StatusSuccess, Orgbr(h, RowWise, 6, 6, 4, pt, 6, taup))

		b := make([]float64, 24)
		for i := 0; i < 4; i++ {
			b[i*6+i] = d[i]
			if i > 0 {
				b[i*6+i-1] = e[i-1]
			}
		}
		assert.InDeltaSlice(t, orig, matmul(4, 4, 6, qm, matmul(4, 6, 6, b, pt)), 1e-9)
	})
}

func TestGesvdFitsQueriedSize(t *testing.T) {
	h := newHandle(t)
	jobs := []Svect{SvectNone, SvectSingular, SvectAll}
	shapes := [][2]int{{3, 2}, {2, 3}, {4, 4}, {6, 2}}
	for _, shape := range shapes {
		for _, left := range jobs {
			for _, right := range jobs {
				m, n := shape[0], shape[1]
				a := make([]float64, m*n)
				for i := 0; i < min(m, n); i++ {
					a[i*n+i] = float64(i + 1)
				}
				s := make([]float64, min(m, n))
				u, vt := make([]float64, m*m), make([]float64, n*n)
				e := make([]float64, min(m, n)-1)
				var info int32
				st := fitted(t, h, func() Status {
					w := append([]float64(nil), a...)
					return Gesvd(h, left, right, m, n, w, n, s, u, max(m, 1), vt, max(n, 1), e, OutOfPlace, &info)
				})
				require.Equal(t, StatusSuccess, st, "%dx%d jobs %d,%d", m, n, left, right)
				assert.Zero(t, info)
				assert.InDelta(t, float64(min(m, n)), s[0], tol)
			}
		}
	}
}
