package devsolver

import "gonum.org/v1/gonum/lapack/gonum"

var native gonum.Implementation

// optimal runs a gonum workspace query (lwork == -1) and returns the
// reported length, never less than floor.
func optimal(floor int, query func(work []float64)) int {
	var w [1]float64
	query(w[:])
	return max(int(w[0]), floor, 1)
}

// placeholder stands in for a during a workspace query. The Dorgbr query
// slices a past its first row without reading it, directly or from Dgesvd.
func placeholder(lda int) []float64 {
	return make([]float64, lda+2)
}

// extent is the number of elements a rows x cols row-major matrix with row
// stride ld spans.
func extent(rows, cols, ld int) int {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return (rows-1)*ld + cols
}

// widen returns a float64 view of the first n elements of x. float64 data is
// returned in place; float32 data is copied into buf.
func widen[T Scalar](x []T, n int, buf []float64) []float64 {
	if n == 0 {
		return nil
	}
	switch v := any(x).(type) {
	case []float64:
		return v[:n]
	case []float32:
		w := buf[:n]
		for i := range w {
			w[i] = float64(v[i])
		}
		return w
	}
	return nil
}

// narrow writes a widened view back into x. It is a no-op for float64.
func narrow[T Scalar](x []T, w []float64) {
	if dst, ok := any(x).([]float32); ok {
		for i, v := range w {
			dst[i] = float32(v)
		}
	}
}

// widenMat returns a float64 view of the rows x cols matrix x with row stride
// ld, together with the stride of the view. float64 data is used in place.
// float32 data is copied into buf with a compact stride, so staging memory
// depends only on the matrix shape.
func widenMat[T Scalar](x []T, rows, cols, ld int, buf []float64) ([]float64, int) {
	switch v := any(x).(type) {
	case []float64:
		return v[:extent(rows, cols, ld)], ld
	case []float32:
		wld := max(cols, 1)
		w := buf[:rows*cols]
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				w[i*wld+j] = float64(v[i*ld+j])
			}
		}
		return w, wld
	}
	return nil, ld
}

// narrowMat writes a view from widenMat back into x.
func narrowMat[T Scalar](x []T, rows, cols, ld int, w []float64, wld int) {
	if dst, ok := any(x).([]float32); ok {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[i*ld+j] = float32(w[i*wld+j])
			}
		}
	}
}

func setInfo(info *int32, v int) {
	if info != nil {
		*info = int32(v)
	}
}

// firstNonPositiveDiag returns the 1-based index of the first diagonal entry
// of a that is not strictly positive, or 0 if there is none. After a failed
// Cholesky factorization this is the order of the first leading minor that is
// not positive definite.
func firstNonPositiveDiag(n int, a []float64, lda int) int {
	for i := 0; i < n; i++ {
		if !(a[i*lda+i] > 0) {
			return i + 1
		}
	}
	return 0
}

func firstZeroDiag(k int, a []float64, lda int) int {
	for i := 0; i < k; i++ {
		if a[i*lda+i] == 0 {
			return i + 1
		}
	}
	return 0
}

// unconverged counts the nonzero entries left in an off-diagonal array after
// an iteration that did not converge.
func unconverged(e []float64) int {
	n := 0
	for _, v := range e {
		if v != 0 {
			n++
		}
	}
	return max(n, 1)
}

// symmetrize mirrors the stored triangle of a into the other one.
func symmetrize(upper bool, n int, a []float64, lda int) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if upper {
				a[j*lda+i] = a[i*lda+j]
			} else {
				a[i*lda+j] = a[j*lda+i]
			}
		}
	}
}
