package devsolver

import "gonum.org/v1/gonum/blas"

// Geqrf computes the QR factorization of the m x n matrix a. R is left on
// and above the diagonal, the Householder vectors below it, and the scalar
// factors in tau.
func Geqrf[T Scalar](h *Handle, m, n int, a []T, lda int, tau []T) Status {
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
	lwork := optimal(n, func(w []float64) { native.Dgeqrf(m, n, nil, lda, nil, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](m, n), stageBytes[T](k))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if k == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(tau) < k {
		return StatusInvalidPointer
	}

	w, wld := widenMat(a, m, n, lda, s.f64(1))
	t := widen(tau, k, s.f64(2))
	native.Dgeqrf(m, n, w, wld, t, s.f64(0)[:lwork], lwork)
	narrowMat(a, m, n, lda, w, wld)
	narrow(tau, t)
	return StatusSuccess
}

// Orgqr overwrites a with the m x n matrix Q that has orthonormal columns,
// defined by the first k reflectors returned by Geqrf.
func Orgqr[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if m < 0 || n < 0 || k < 0 || n > m || k > n || lda < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	ext := extent(m, n, lda)
	lwork := optimal(n, func(w []float64) { native.Dorgqr(m, n, k, nil, lda, nil, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](m, n), stageBytes[T](k))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if n == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(tau) < k {
		return StatusInvalidPointer
	}

	w, wld := widenMat(a, m, n, lda, s.f64(1))
	t := widen(tau, k, s.f64(2))
	native.Dorgqr(m, n, k, w, wld, t, s.f64(0)[:lwork], lwork)
	narrowMat(a, m, n, lda, w, wld)
	return StatusSuccess
}

// Ormqr overwrites the m x n matrix c with op(Q)*C or C*op(Q), where Q is
// the product of the k reflectors returned by Geqrf.
func Ormqr[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	sd, ok := side.side()
	if !ok {
		return StatusInvalidValue
	}
	tr, ok := trans.transpose()
	if !ok || tr == blas.ConjTrans {
		return StatusInvalidValue
	}
	nq, nw := m, n
	if sd == blas.Right {
		nq, nw = n, m
	}
	if m < 0 || n < 0 || k < 0 || k > nq || lda < max(1, k) || ldc < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	extA, extC := extent(nq, k, lda), extent(m, n, ldc)
	lwork := optimal(nw, func(w []float64) { native.Dormqr(sd, tr, m, n, k, nil, lda, nil, nil, ldc, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](nq, k), stageBytes[T](k), stageMatBytes[T](m, n))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if m == 0 || n == 0 || k == 0 {
		return StatusSuccess
	}
	if len(a) < extA || len(tau) < k || len(c) < extC {
		return StatusInvalidPointer
	}

	wa, wlda := widenMat(a, nq, k, lda, s.f64(1))
	t := widen(tau, k, s.f64(2))
	wc, wldc := widenMat(c, m, n, ldc, s.f64(3))
	native.Dormqr(sd, tr, m, n, k, wa, wlda, t, wc, wldc, s.f64(0)[:lwork], lwork)
	narrowMat(c, m, n, ldc, wc, wldc)
	return StatusSuccess
}
