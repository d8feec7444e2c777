package devsolver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
)

func eigenWork(vectors bool, ul blas.Uplo, n, lda int) int {
	lwork := optimal(max(2*n-2, 1), func(w []float64) { native.Dsytrd(ul, n, nil, lda, nil, nil, nil, w, -1) })
	if vectors {
		lwork = max(lwork, optimal(1, func(w []float64) { native.Dorgtr(ul, n, nil, lda, nil, w, -1) }))
	}
	return lwork
}

// tridiagEigen computes the eigenvalues of the symmetric matrix a into d in
// ascending order, and the eigenvectors into the columns of a if vectors is
// set. It returns 0 or the number of off-diagonal entries that did not
// converge.
func tridiagEigen(vectors bool, ul blas.Uplo, n int, a []float64, lda int, d, e, tau, work []float64) int {
	native.Dsytrd(ul, n, a, lda, d, e, tau, work, len(work))
	var ok bool
	if vectors {
		native.Dorgtr(ul, n, a, lda, tau, work, len(work))
		ok = native.Dsteqr(lapack.EVOrig, n, d, e, a, lda, work[:max(2*n-2, 1)])
	} else {
		ok = native.Dsterf(n, d, e)
	}
	if ok {
		return 0
	}
	return unconverged(e)
}

func evectMode(evect Evect) (bool, bool) {
	switch evect {
	case EvectOriginal:
		return true, true
	case EvectNone:
		return false, true
	}
	return false, false
}

// Syevd computes all eigenvalues, and optionally eigenvectors, of the
// symmetric n x n matrix a. Eigenvalues go to d in ascending order and
// eigenvectors overwrite the columns of a. e is scratch for the
// off-diagonal of the intermediate tridiagonal matrix and must hold n-1
// entries.
func Syevd[T Scalar, R Real](h *Handle, evect Evect, uplo Fill, n int, a []T, lda int, d, e []R, info *int32) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	vectors, ok := evectMode(evect)
	if !ok {
		return StatusInvalidValue
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
	lwork := eigenWork(vectors, ul, n, lda)
	s, st := h.borrow(f64Bytes(lwork), f64Bytes(ne), stageMatBytes[T](n, n), stageBytes[R](n), stageBytes[R](ne))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if info == nil {
		return StatusInvalidPointer
	}
	setInfo(info, 0)
	if n == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(d) < n || len(e) < ne {
		return StatusInvalidPointer
	}

	wa, wld := widenMat(a, n, n, lda, s.f64(2))
	wd := widen(d, n, s.f64(3))
	we := widen(e, ne, s.f64(4))
	if n == 1 {
		wd[0] = wa[0]
		if vectors {
			wa[0] = 1
		}
	} else {
		setInfo(info, tridiagEigen(vectors, ul, n, wa, wld, wd, we, s.f64(1)[:ne], s.f64(0)[:lwork]))
	}
	narrowMat(a, n, n, lda, wa, wld)
	narrow(d, wd)
	narrow(e, we)
	return StatusSuccess
}

// Sygvd computes the eigenvalues, and optionally eigenvectors, of the
// generalized symmetric-definite problem selected by itype. b is overwritten
// with its Cholesky factor. If b is not positive definite info is n+i, where
// i is the order of the first failing leading minor.
func Sygvd[T Scalar, R Real](h *Handle, itype Eform, evect Evect, uplo Fill, n int, a []T, lda int,
	b []T, ldb int, d, e []R, info *int32) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if itype != EformAx && itype != EformAbx && itype != EformBax {
		return StatusInvalidValue
	}
	vectors, ok := evectMode(evect)
	if !ok {
		return StatusInvalidValue
	}
	ul, ok := uplo.uplo()
	if !ok {
		return StatusInvalidValue
	}
	if n < 0 || lda < max(1, n) || ldb < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	extA, extB := extent(n, n, lda), extent(n, n, ldb)
	ne := max(n-1, 0)
	lwork := eigenWork(vectors, ul, n, lda)
	s, st := h.borrow(f64Bytes(lwork), f64Bytes(ne), stageMatBytes[T](n, n), stageMatBytes[T](n, n),
		stageBytes[R](n), stageBytes[R](ne))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if info == nil {
		return StatusInvalidPointer
	}
	setInfo(info, 0)
	if n == 0 {
		return StatusSuccess
	}
	if len(a) < extA || len(b) < extB || len(d) < n || len(e) < ne {
		return StatusInvalidPointer
	}

	wa, wlda := widenMat(a, n, n, lda, s.f64(2))
	wb, wldb := widenMat(b, n, n, ldb, s.f64(3))
	wd := widen(d, n, s.f64(4))
	we := widen(e, ne, s.f64(5))
	defer func() {
		narrowMat(a, n, n, lda, wa, wlda)
		narrowMat(b, n, n, ldb, wb, wldb)
		narrow(d, wd)
		narrow(e, we)
	}()

	if !native.Dpotrf(ul, n, wb, wldb) {
		setInfo(info, n+max(firstNonPositiveDiag(n, wb, wldb), 1))
		return StatusSuccess
	}
	upper := ul == blas.Upper
	symmetrize(upper, n, wa, wlda)
	f := blas64.Triangular{Uplo: ul, Diag: blas.NonUnit, N: n, Data: wb, Stride: wldb}
	g := blas64.General{Rows: n, Cols: n, Data: wa, Stride: wlda}

	// Reduce to a standard problem C*y = l*y. With B = L*L^T (or U^T*U):
	// itype 1 uses C = inv(L)*A*inv(L^T), itypes 2 and 3 use C = L^T*A*L.
	if itype == EformAx {
		if upper {
			blas64.Trsm(blas.Left, blas.Trans, 1, f, g)
			blas64.Trsm(blas.Right, blas.NoTrans, 1, f, g)
		} else {
			blas64.Trsm(blas.Left, blas.NoTrans, 1, f, g)
			blas64.Trsm(blas.Right, blas.Trans, 1, f, g)
		}
	} else {
		if upper {
			blas64.Trmm(blas.Left, blas.NoTrans, 1, f, g)
			blas64.Trmm(blas.Right, blas.Trans, 1, f, g)
		} else {
			blas64.Trmm(blas.Left, blas.Trans, 1, f, g)
			blas64.Trmm(blas.Right, blas.NoTrans, 1, f, g)
		}
	}

	if n == 1 {
		wd[0] = wa[0]
		if vectors {
			wa[0] = 1
		}
	} else if bad := tridiagEigen(vectors, ul, n, wa, wlda, wd, we, s.f64(1)[:ne], s.f64(0)[:lwork]); bad != 0 {
		setInfo(info, bad)
		return StatusSuccess
	}
	if !vectors {
		return StatusSuccess
	}

	// Back-transform the eigenvectors: x = inv(L^T)*y for itypes 1 and 2,
	// x = L*y for itype 3.
	if itype == EformBax {
		if upper {
			blas64.Trmm(blas.Left, blas.Trans, 1, f, g)
		} else {
			blas64.Trmm(blas.Left, blas.NoTrans, 1, f, g)
		}
	} else {
		if upper {
			blas64.Trsm(blas.Left, blas.NoTrans, 1, f, g)
		} else {
			blas64.Trsm(blas.Left, blas.Trans, 1, f, g)
		}
	}
	return StatusSuccess
}
