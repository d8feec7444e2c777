package devsolver

import "gonum.org/v1/gonum/lapack"

// Gebrd reduces the m x n matrix a to bidiagonal form B = Q^T * A * P. The
// diagonal and off-diagonal of B go to d and e and the reflectors stay in a
// with their factors in tauq and taup.
func Gebrd[T Scalar, R Real](h *Handle, m, n int, a []T, lda int, d, e []R, tauq, taup []T) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if m < 0 || n < 0 || lda < max(1, n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	minmn := min(m, n)
	ext := extent(m, n, lda)
	ne := max(minmn-1, 0)
	lwork := optimal(max(m, n), func(w []float64) { native.Dgebrd(m, n, nil, lda, nil, nil, nil, nil, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](m, n), stageBytes[R](minmn), stageBytes[R](ne),
		stageBytes[T](minmn), stageBytes[T](minmn))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if minmn == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(d) < minmn || len(e) < ne || len(tauq) < minmn || len(taup) < minmn {
		return StatusInvalidPointer
	}

	wa, wld := widenMat(a, m, n, lda, s.f64(1))
	wd := widen(d, minmn, s.f64(2))
	we := widen(e, ne, s.f64(3))
	tq := widen(tauq, minmn, s.f64(4))
	tp := widen(taup, minmn, s.f64(5))
	native.Dgebrd(m, n, wa, wld, wd, we, tq, tp, s.f64(0)[:lwork], lwork)
	narrowMat(a, m, n, lda, wa, wld)
	narrow(d, wd)
	narrow(e, we)
	narrow(tauq, tq)
	narrow(taup, tp)
	return StatusSuccess
}

// Orgbr overwrites a with Q (storev ColumnWise) or P^T (storev RowWise) from
// the reduction computed by Gebrd. k is the column count (for Q) or row
// count (for P^T) of the matrix that was reduced.
func Orgbr[T Scalar](h *Handle, storev Storev, m, n, k int, a []T, lda int, tau []T) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	vect, ok := storev.genOrtho()
	if !ok {
		return StatusInvalidValue
	}
	if m < 0 || n < 0 || k < 0 || lda < max(1, n) {
		return StatusInvalidSize
	}
	ntau := min(m, k)
	if vect == lapack.GenerateQ {
		if n > m || n < min(m, k) {
			return StatusInvalidSize
		}
	} else {
		if m > n || m < min(n, k) {
			return StatusInvalidSize
		}
		ntau = min(n, k)
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	ext := extent(m, n, lda)
	lwork := optimal(min(m, n), func(w []float64) { native.Dorgbr(vect, m, n, k, placeholder(lda), lda, nil, w, -1) })
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](m, n), stageBytes[T](ntau))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if m == 0 || n == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(tau) < ntau {
		return StatusInvalidPointer
	}

	wa, wld := widenMat(a, m, n, lda, s.f64(1))
	t := widen(tau, ntau, s.f64(2))
	native.Dorgbr(vect, m, n, k, wa, wld, t, s.f64(0)[:lwork], lwork)
	narrowMat(a, m, n, lda, wa, wld)
	return StatusSuccess
}

// Gesvd computes the singular value decomposition A = U * S * V^T. left and
// right select how much of U and V^T is computed; SvectOverwrite stores it in
// a. If the iteration does not converge, e receives the unconverged
// superdiagonal and info their count.
func Gesvd[T Scalar, R Real](h *Handle, left, right Svect, m, n int, a []T, lda int, sv []R,
	u []T, ldu int, v []T, ldv int, e []R, fast Workmode, info *int32) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	jobU, okU := left.job()
	jobVT, okV := right.job()
	if !okU || !okV || (left == SvectOverwrite && right == SvectOverwrite) {
		return StatusInvalidValue
	}
	if fast != OutOfPlace && fast != InPlace {
		return StatusInvalidValue
	}
	minmn := min(m, n)
	ucols, vrows := 0, 0
	switch left {
	case SvectAll:
		ucols = m
	case SvectSingular:
		ucols = minmn
	}
	switch right {
	case SvectAll:
		vrows = n
	case SvectSingular:
		vrows = minmn
	}
	if m < 0 || n < 0 || lda < max(1, n) || ldu < max(1, ucols) || ldv < 1 || (vrows > 0 && ldv < n) {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}

	ext := extent(m, n, lda)
	extU, extV := extent(m, ucols, ldu), extent(vrows, n, ldv)
	ne := max(minmn-1, 0)
	floor := max(3*minmn+max(m, n), 5*minmn)
	lwork := optimal(floor, func(w []float64) {
		native.Dgesvd(jobU, jobVT, m, n, placeholder(lda), lda, nil, nil, ldu, nil, ldv, w, -1)
	})
	s, st := h.borrow(f64Bytes(lwork), stageMatBytes[T](m, n), stageBytes[R](minmn),
		stageMatBytes[T](m, ucols), stageMatBytes[T](vrows, n), stageBytes[R](ne))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if info == nil {
		return StatusInvalidPointer
	}
	setInfo(info, 0)
	if minmn == 0 {
		return StatusSuccess
	}
	if len(a) < ext || len(sv) < minmn || len(u) < extU || len(v) < extV || len(e) < ne {
		return StatusInvalidPointer
	}

	wa, wlda := widenMat(a, m, n, lda, s.f64(1))
	ws := widen(sv, minmn, s.f64(2))
	wu, wldu := widenMat(u, m, ucols, ldu, s.f64(3))
	wv, wldv := widenMat(v, vrows, n, ldv, s.f64(4))
	we := widen(e, ne, s.f64(5))
	if ucols == 0 {
		wu, wldu = nil, ldu
	}
	if vrows == 0 {
		wv, wldv = nil, ldv
	}
	work := s.f64(0)[:lwork]
	ok := native.Dgesvd(jobU, jobVT, m, n, wa, wlda, ws, wu, wldu, wv, wldv, work, lwork)
	for i := range we {
		we[i] = 0
		if !ok {
			we[i] = work[i+1]
		}
	}
	if !ok {
		setInfo(info, unconverged(we))
	}
	narrowMat(a, m, n, lda, wa, wlda)
	narrow(sv, ws)
	narrowMat(u, m, ucols, ldu, wu, wldu)
	narrowMat(v, vrows, n, ldv, wv, wldv)
	narrow(e, we)
	return StatusSuccess
}
