package devsolver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Getrf computes the LU factorization A = P*L*U of the m x n matrix a with
// partial pivoting. ipiv receives the 1-based row interchanges. info is set
// to i > 0 if U[i-1][i-1] is exactly zero.
func Getrf[T Scalar](h *Handle, m, n int, a []T, lda int, ipiv []int32, info *int32) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if m < 0 || n < 0 || lda < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	k := min(m, n)
	ext := extent(m, n, lda)
	s, st := h.borrow(stageMatBytes[T](m, n), intsBytes(k))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if info == nil {
		return StatusInvalidPointer
	}
	if k == 0 {
		setInfo(info, 0)
		return StatusSuccess
	}
	if len(a) < ext || len(ipiv) < k {
		return StatusInvalidPointer
	}

	w, wld := widenMat(a, m, n, lda, s.f64(0))
	piv := s.ints(1)[:k]
	native.Dgetrf(m, n, w, wld, piv)
	for i, p := range piv {
		ipiv[i] = int32(p + 1)
	}
	narrowMat(a, m, n, lda, w, wld)
	setInfo(info, firstZeroDiag(k, w, wld))
	return StatusSuccess
}

// GetrfNpvt computes A = L*U without pivoting. A zero pivot sets info to its
// 1-based position; the column is left unscaled and elimination continues.
func GetrfNpvt[T Scalar](h *Handle, m, n int, a []T, lda int, info *int32) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if m < 0 || n < 0 || lda < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	k := min(m, n)
	ext := extent(m, n, lda)
	s, st := h.borrow(stageMatBytes[T](m, n))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if info == nil {
		return StatusInvalidPointer
	}
	if k == 0 {
		setInfo(info, 0)
		return StatusSuccess
	}
	if len(a) < ext {
		return StatusInvalidPointer
	}

	w, wld := widenMat(a, m, n, lda, s.f64(0))
	setInfo(info, luNoPivot(m, n, w, wld))
	narrowMat(a, m, n, lda, w, wld)
	return StatusSuccess
}

func luNoPivot(m, n int, a []float64, lda int) int {
	first := 0
	for j := 0; j < min(m, n); j++ {
		ajj := a[j*lda+j]
		rows, cols := m-j-1, n-j-1
		if ajj == 0 {
			if first == 0 {
				first = j + 1
			}
			continue
		}
		if rows == 0 {
			continue
		}
		col := blas64.Vector{N: rows, Data: a[(j+1)*lda+j:], Inc: lda}
		blas64.Scal(1/ajj, col)
		if cols == 0 {
			continue
		}
		row := blas64.Vector{N: cols, Data: a[j*lda+j+1:], Inc: 1}
		trail := blas64.General{Rows: rows, Cols: cols, Data: a[(j+1)*lda+j+1:], Stride: lda}
		blas64.Ger(-1, col, row, trail)
	}
	return first
}

// Getrs solves op(A)*X = B using the factorization from Getrf. b is n x nrhs
// and is overwritten with X.
func Getrs[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	tr, ok := trans.transpose()
	if !ok {
		return StatusInvalidValue
	}
	if n < 0 || nrhs < 0 || lda < max(1, n) || ldb < max(1, nrhs) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	if tr == blas.ConjTrans {
		tr = blas.Trans
	}
	extA, extB := extent(n, n, lda), extent(n, nrhs, ldb)
	s, st := h.borrow(stageMatBytes[T](n, n), stageMatBytes[T](n, nrhs), intsBytes(n))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if n == 0 || nrhs == 0 {
		return StatusSuccess
	}
	if len(a) < extA || len(b) < extB || len(ipiv) < n {
		return StatusInvalidPointer
	}

	piv := s.ints(2)[:n]
	for i := range piv {
		p := int(ipiv[i]) - 1
		if p < 0 || p >= n {
			return StatusInvalidValue
		}
		piv[i] = p
	}
	wa, wlda := widenMat(a, n, n, lda, s.f64(0))
	wb, wldb := widenMat(b, n, nrhs, ldb, s.f64(1))
	native.Dgetrs(tr, n, nrhs, wa, wlda, piv, wb, wldb)
	narrowMat(b, n, nrhs, ldb, wb, wldb)
	return StatusSuccess
}
