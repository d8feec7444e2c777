package bench

import (
	"math/rand/v2"

	"github.com/fxnlabs/densolver/pkg/solver"
)

func scalar[T solver.Scalar](re, im float64) T {
	var z T
	switch p := any(&z).(type) {
	case *float32:
		*p = float32(re)
	case *float64:
		*p = re
	case *solver.Complex:
		*p = solver.Complex{Re: float32(re), Im: float32(im)}
	case *solver.DoubleComplex:
		*p = solver.DoubleComplex{Re: re, Im: im}
	}
	return z
}

func conj[T solver.Scalar](v T) T {
	switch c := any(v).(type) {
	case solver.Complex:
		return any(solver.Complex{Re: c.Re, Im: -c.Im}).(T)
	case solver.DoubleComplex:
		return any(solver.DoubleComplex{Re: c.Re, Im: -c.Im}).(T)
	}
	return v
}

func uniform(rng *rand.Rand) float64 {
	return 2*rng.Float64() - 1
}

// storage sizes a rows x cols matrix with row stride ld. A stride shorter
// than a row is rejected by the solver but must not make the fill panic.
func storage[T solver.Scalar](rows, cols, ld int) []T {
	return make([]T, max(rows*max(ld, cols), 1))
}

// general returns a rows x cols matrix with entries in [-1, 1) stored with
// row stride ld. Padding columns are zero.
func general[T solver.Scalar](rng *rand.Rand, rows, cols, ld int) []T {
	a := storage[T](rows, cols, ld)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a[i*ld+j] = scalar[T](uniform(rng), uniform(rng))
		}
	}
	return a
}

// hermitian returns a symmetric (Hermitian for complex T) n x n matrix with
// both triangles filled. A positive shift of at least n makes it diagonally
// dominant and so positive definite.
func hermitian[T solver.Scalar](rng *rand.Rand, n, ld int, shift float64) []T {
	a := storage[T](n, n, ld)
	for i := 0; i < n; i++ {
		a[i*ld+i] = scalar[T](uniform(rng)+shift, 0)
		for j := i + 1; j < n; j++ {
			v := scalar[T](uniform(rng), uniform(rng))
			a[i*ld+j] = v
			a[j*ld+i] = conj(v)
		}
	}
	return a
}

// dominant returns a general n x n matrix made well conditioned by adding n
// to the diagonal.
func dominant[T solver.Scalar](rng *rand.Rand, n, ld int) []T {
	a := general[T](rng, n, n, ld)
	for i := 0; i < n; i++ {
		a[i*ld+i] = scalar[T](float64(n)+uniform(rng), 0)
	}
	return a
}

// float64s widens real data for verification. It reports false for complex
// element types.
func float64s[T solver.Scalar](a []T) ([]float64, bool) {
	switch v := any(a).(type) {
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	case []float64:
		return v, true
	}
	return nil, false
}

func realFloat64s[R solver.Real](a []R) []float64 {
	out := make([]float64, len(a))
	for i, x := range a {
		out[i] = float64(x)
	}
	return out
}
