package devsolver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Sytrd reduces the symmetric n x n matrix a to tridiagonal form
// T = Q^T * A * Q. The diagonal of T goes to d, the off-diagonal to e, and the
// reflectors defining Q stay in the uplo triangle of a with factors in tau.
func Sytrd[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	ul, ok := uplo.uplo()
	if !ok {
		return StatusInvalidValue
	}
	if n < 0 || lda < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	ext := extent(n, n, lda)
	ne := max(n-1, 0)
	lwork := optimal(1, func(w []float64) { native.Dsytrd(ul, n, nil, lda, nil, nil, nil, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](n, n), stageBytes[R](n), stageBytes[R](ne), stageBytes[T](ne))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if n == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(d) < n || len(e) < ne || len(tau) < ne {
		return StatusInvalidPointer
	}

	wa, wld := widenMat(a, n, n, lda, s.f64(1))
	wd := widen(d, n, s.f64(2))
	we := widen(e, ne, s.f64(3))
	t := widen(tau, ne, s.f64(4))
	native.Dsytrd(ul, n, wa, wld, wd, we, t, s.f64(0)[:lwork], lwork)
	narrowMat(a, n, n, lda, wa, wld)
	narrow(d, wd)
	narrow(e, we)
	narrow(tau, t)
	return StatusSuccess
}

// Orgtr overwrites a with the orthogonal matrix Q from Sytrd.
func Orgtr[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	ul, ok := uplo.uplo()
	if !ok {
		return StatusInvalidValue
	}
	if n < 0 || lda < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	ext := extent(n, n, lda)
	ne := max(n-1, 0)
	lwork := optimal(ne, func(w []float64) { native.Dorgtr(ul, n, nil, lda, nil, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](n, n), stageBytes[T](ne))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if n == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(tau) < ne {
		return StatusInvalidPointer
	}

	wa, wld := widenMat(a, n, n, lda, s.f64(1))
	t := widen(tau, ne, s.f64(2))
	native.Dorgtr(ul, n, wa, wld, t, s.f64(0)[:lwork], lwork)
	narrowMat(a, n, n, lda, wa, wld)
	return StatusSuccess
}

// Ormtr overwrites the m x n matrix c with op(Q)*C or C*op(Q), where Q comes
// from Sytrd. Lower reflectors are applied directly; Upper ones are first
// expanded into an explicit Q.
func Ormtr[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	sd, ok := side.side()
	if !ok {
		return StatusInvalidValue
	}
	ul, ok := uplo.uplo()
	if !ok {
		return StatusInvalidValue
	}
	tr, ok := trans.transpose()
	if !ok || tr == blas.ConjTrans {
		return StatusInvalidValue
	}
	nq := m
	if sd == blas.Right {
		nq = n
	}
	if m < 0 || n < 0 || lda < max(1, nq) || ldc < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}

	extA, extC := extent(nq, nq, lda), extent(m, n, ldc)
	ne := max(nq-1, 0)
	mi, ni := m, n
	if sd == blas.Left {
		mi = max(m-1, 0)
	} else {
		ni = max(n-1, 0)
	}
	var lwork, qBytes, rBytes int
	if ul == blas.Lower {
		lwork = optimal(1, func(w []float64) { native.Dormqr(sd, tr, mi, ni, ne, nil, lda, nil, nil, ldc, w, -1) })
	} else {
		lwork = optimal(ne, func(w []float64) { native.Dorgtr(ul, nq, nil, max(1, nq), nil, w, -1) })
		qBytes, rBytes = f64Bytes(nq*nq), f64Bytes(m*n)
	}
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](nq, nq), stageBytes[T](ne), stageMatBytes[T](m, n), qBytes, rBytes)
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if m == 0 || n == 0 || nq == 1 {
		return StatusSuccess
	}
	if len(a) < extA || len(tau) < ne || len(c) < extC {
		return StatusInvalidPointer
	}

	wa, wlda := widenMat(a, nq, nq, lda, s.f64(1))
	t := widen(tau, ne, s.f64(2))
	wc, wldc := widenMat(c, m, n, ldc, s.f64(3))
	work := s.f64(0)[:lwork]
	if ul == blas.Lower {
		sub := wc[wldc:]
		if sd == blas.Right {
			sub = wc[1:]
		}
		native.Dormqr(sd, tr, mi, ni, ne, wa[wlda:], wlda, t, sub, wldc, work, lwork)
	} else {
		q := s.f64(4)[:nq*nq]
		for i := 0; i < nq; i++ {
			copy(q[i*nq:(i+1)*nq], wa[i*wlda:i*wlda+nq])
		}
		native.Dorgtr(ul, nq, q, nq, t, work, lwork)
		qm := blas64.General{Rows: nq, Cols: nq, Data: q, Stride: nq}
		cm := blas64.General{Rows: m, Cols: n, Data: wc, Stride: wldc}
		rm := blas64.General{Rows: m, Cols: n, Data: s.f64(5)[:m*n], Stride: n}
		if sd == blas.Left {
			blas64.Gemm(tr, blas.NoTrans, 1, qm, cm, 0, rm)
		} else {
			blas64.Gemm(blas.NoTrans, tr, 1, cm, qm, 0, rm)
		}
		for i := 0; i < m; i++ {
			copy(wc[i*wldc:i*wldc+n], rm.Data[i*n:(i+1)*n])
		}
	}
	narrowMat(c, m, n, ldc, wc, wldc)
	return StatusSuccess
}
