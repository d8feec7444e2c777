//go:build lapacke

package solver

import (
	"gonum.org/v1/netlib/lapack/lapacke"
)

// Every routine with a LAPACK work array sizes it with an lwork = -1 query
// of the same entry point, and the buffer size is that query in bytes. The
// caller's work is carved into the arrays of the query; a nil work gets them
// freshly allocated. Arguments are checked here before any call: the
// bindings return a single bool, which after these checks can only mean a
// numerical failure.

// layout counts the workspace arrays of one LAPACKE call in elements: the
// LAPACK work array of the scalar type, then rwork of its real precision,
// then iwork.
type layout struct {
	lwork, lrwork, liwork int
}

func sizeOf[T Scalar](l layout) int {
	return l.lwork*elemSize[T]() + l.lrwork*realSize[T]() + l.liwork*4
}

func workBytes[T Scalar](l layout, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	return checkSize(sizeOf[T](l))
}

type workspace[T Scalar] struct {
	work  []T
	rwork []byte
	iwork []int32
}

// carve binds work to the arrays of l, or allocates them when work is nil.
// A work shorter than l fails with StatusAllocFailed.
func carve[T Scalar](work []byte, l layout) (workspace[T], error) {
	need := sizeOf[T](l)
	if work == nil {
		work = make([]byte, need)
	} else if len(work) < need {
		return workspace[T]{}, errNoMemory
	}
	nw := l.lwork * elemSize[T]()
	nr := nw + l.lrwork*realSize[T]()
	return workspace[T]{
		work:  byteView[T](work[:nw]),
		rwork: work[nw:nr],
		iwork: byteView[int32](work[nr:need]),
	}, nil
}

// queryWork runs call as an lwork = -1 query and reads back the optimal
// lwork.
func queryWork[T Scalar](call func(work []T, lwork int) bool) (layout, error) {
	w := make([]T, 1)
	if !call(w, -1) {
		return layout{}, errIllegalArg
	}
	return layout{lwork: max(int(diag(w, 0)), 1)}, nil
}

// queryAll runs call as a query of work, rwork and iwork together. Real
// routines have no rwork and leave it unset.
func queryAll[T Scalar, R Real](call func(work []T, lwork int, rwork []R, lrwork int, iwork []int32, liwork int) bool) (layout, error) {
	w, rw, iw := make([]T, 1), make([]R, 1), make([]int32, 1)
	if !call(w, -1, rw, -1, iw, -1) {
		return layout{}, errIllegalArg
	}
	l := layout{lwork: max(int(diag(w, 0)), 1), liwork: max(int(iw[0]), 1)}
	if kindOf[T]() >= kindComplex {
		l.lrwork = max(int(rw[0]), 1)
	}
	return l, nil
}

// one stands in for an array during a workspace query.
func one[E any]() []E {
	return make([]E, 1)
}

func getrfBufferSize[T Scalar](h *Handle, m, n int, a []T, lda int) (int, error) {
	if m < 0 || n < 0 || lda < max(1, n) {
		return 0, errIllegalArg
	}
	return checkSize(0)
}

func getrf[T Scalar](h *Handle, m, n int, a []T, lda int, work []byte, ipiv []int32, devInfo *int32) error {
	if m < 0 || n < 0 || lda < max(1, n) {
		return errIllegalArg
	}
	if err := needInfo(devInfo); err != nil {
		return err
	}
	k := min(m, n)
	if k == 0 {
		return nil
	}
	if len(a) < extent(m, n, lda) || (ipiv != nil && len(ipiv) < k) {
		return errIllegalArg
	}
	if ipiv == nil {
		// LAPACKE has no unpivoted LU.
		switch kindOf[T]() {
		case kindSingle:
			setInfo(devInfo, luNoPivot(m, n, reinterpret[float32](a), lda))
		case kindDouble:
			setInfo(devInfo, luNoPivot(m, n, reinterpret[float64](a), lda))
		case kindComplex:
			setInfo(devInfo, luNoPivot(m, n, reinterpret[complex64](a), lda))
		default:
			setInfo(devInfo, luNoPivot(m, n, reinterpret[complex128](a), lda))
		}
		return nil
	}
	var ok bool
	switch kindOf[T]() {
	case kindSingle:
		ok = lapacke.Sgetrf(m, n, reinterpret[float32](a), lda, ipiv)
	case kindDouble:
		ok = lapacke.Dgetrf(m, n, reinterpret[float64](a), lda, ipiv)
	case kindComplex:
		ok = lapacke.Cgetrf(m, n, reinterpret[complex64](a), lda, ipiv)
	default:
		ok = lapacke.Zgetrf(m, n, reinterpret[complex128](a), lda, ipiv)
	}
	if !ok {
		setInfo(devInfo, max(firstZeroDiag(k, a, lda), 1))
	}
	return nil
}

// luNoPivot factors a in place without row interchanges and returns the
// 1-based position of the first zero pivot, or 0.
func luNoPivot[E float32 | float64 | complex64 | complex128](m, n int, a []E, lda int) int {
	first := 0
	for j := 0; j < min(m, n); j++ {
		ajj := a[j*lda+j]
		if ajj == 0 {
			if first == 0 {
				first = j + 1
			}
			continue
		}
		for i := j + 1; i < m; i++ {
			l := a[i*lda+j] / ajj
			a[i*lda+j] = l
			for c := j + 1; c < n; c++ {
				a[i*lda+c] -= l * a[j*lda+c]
			}
		}
	}
	return first
}

func getrsBufferSize[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int) (int, error) {
	if _, err := toLapackOperation(trans); err != nil {
		return 0, err
	}
	return checkSize(0)
}

func getrs[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int, work []byte, devInfo *int32) error {
	tr, err := toLapackOperation(trans)
	if err != nil {
		return err
	}
	if n < 0 || nrhs < 0 || lda < max(1, n) || ldb < max(1, nrhs) {
		return errIllegalArg
	}
	setInfo(devInfo, 0)
	if n == 0 || nrhs == 0 {
		return nil
	}
	if len(a) < extent(n, n, lda) || len(b) < extent(n, nrhs, ldb) || len(ipiv) < n {
		return errIllegalArg
	}
	for _, p := range ipiv[:n] {
		if p < 1 || int(p) > n {
			return errIllegalArg
		}
	}
	if tr == 'C' && kindOf[T]() <= kindDouble {
		tr = 'T'
	}
	var ok bool
	switch kindOf[T]() {
	case kindSingle:
		ok = lapacke.Sgetrs(tr, n, nrhs, reinterpret[float32](a), lda, ipiv, reinterpret[float32](b), ldb)
	case kindDouble:
		ok = lapacke.Dgetrs(tr, n, nrhs, reinterpret[float64](a), lda, ipiv, reinterpret[float64](b), ldb)
	case kindComplex:
		ok = lapacke.Cgetrs(tr, n, nrhs, reinterpret[complex64](a), lda, ipiv, reinterpret[complex64](b), ldb)
	default:
		ok = lapacke.Zgetrs(tr, n, nrhs, reinterpret[complex128](a), lda, ipiv, reinterpret[complex128](b), ldb)
	}
	return failed(ok)
}

func potrfBufferSize[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int) (int, error) {
	if _, err := toLapackFill(uplo); err != nil {
		return 0, err
	}
	return checkSize(0)
}

func potrf[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, work []byte, devInfo *int32) error {
	ul, err := toLapackFill(uplo)
	if err != nil {
		return err
	}
	if n < 0 || lda < max(1, n) {
		return errIllegalArg
	}
	if err := needInfo(devInfo); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if len(a) < extent(n, n, lda) {
		return errIllegalArg
	}
	if !cholesky(ul, n, a, lda) {
		setInfo(devInfo, max(firstNonPositiveDiag(n, a, lda), 1))
	}
	return nil
}

func cholesky[T Scalar](ul byte, n int, a []T, lda int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Spotrf(ul, n, reinterpret[float32](a), lda)
	case kindDouble:
		return lapacke.Dpotrf(ul, n, reinterpret[float64](a), lda)
	case kindComplex:
		return lapacke.Cpotrf(ul, n, reinterpret[complex64](a), lda)
	}
	return lapacke.Zpotrf(ul, n, reinterpret[complex128](a), lda)
}

func potrfBatchedBufferSize[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda, batch int) (int, error) {
	if _, err := toLapackFill(uplo); err != nil {
		return 0, err
	}
	return checkSize(0)
}

func potrfBatched[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda int, work []byte, devInfo []int32, batch int) error {
	ul, err := toLapackFill(uplo)
	if err != nil {
		return err
	}
	if n < 0 || lda < max(1, n) || batch < 0 {
		return errIllegalArg
	}
	if batch == 0 {
		return nil
	}
	if len(a) < batch || len(devInfo) < batch {
		return errIllegalArg
	}
	ext := extent(n, n, lda)
	for _, ai := range a[:batch] {
		if len(ai) < ext {
			return errIllegalArg
		}
	}
	for i, ai := range a[:batch] {
		devInfo[i] = 0
		if n > 0 && !cholesky(ul, n, ai, lda) {
			devInfo[i] = int32(max(firstNonPositiveDiag(n, ai, lda), 1))
		}
	}
	return nil
}

// nonEmpty returns x, or a one-element slice in place of an empty one for
// the bindings to take the address of.
func nonEmpty[E any](x []E) []E {
	if len(x) == 0 {
		return make([]E, 1)
	}
	return x
}

// failed maps the result of a routine that has no numerical failure mode.
func failed(ok bool) error {
	if ok {
		return nil
	}
	return errIllegalArg
}

func geqrfCall[T Scalar](m, n int, a []T, lda int, tau, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sgeqrf(m, n, reinterpret[float32](a), lda, reinterpret[float32](tau), reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dgeqrf(m, n, reinterpret[float64](a), lda, reinterpret[float64](tau), reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cgeqrf(m, n, reinterpret[complex64](a), lda, reinterpret[complex64](tau), reinterpret[complex64](work), lwork)
	}
	return lapacke.Zgeqrf(m, n, reinterpret[complex128](a), lda, reinterpret[complex128](tau), reinterpret[complex128](work), lwork)
}

func geqrfLayout[T Scalar](m, n, lda int) (layout, error) {
	if m < 0 || n < 0 || lda < max(1, n) {
		return layout{}, errIllegalArg
	}
	if min(m, n) == 0 {
		return layout{}, nil
	}
	return queryWork(func(w []T, lwork int) bool {
		return geqrfCall(m, n, one[T](), lda, one[T](), w, lwork)
	})
}

func geqrfBufferSize[T Scalar](h *Handle, m, n int, a []T, lda int) (int, error) {
	return workBytes[T](geqrfLayout[T](m, n, lda))
}

func geqrf[T Scalar](h *Handle, m, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	l, err := geqrfLayout[T](m, n, lda)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	k := min(m, n)
	if k == 0 {
		return nil
	}
	if len(a) < extent(m, n, lda) || len(tau) < k {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(geqrfCall(m, n, a, lda, tau, ws.work, l.lwork))
}

func orgqrCall[T Scalar](m, n, k int, a []T, lda int, tau, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sorgqr(m, n, k, reinterpret[float32](a), lda, reinterpret[float32](tau), reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dorgqr(m, n, k, reinterpret[float64](a), lda, reinterpret[float64](tau), reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cungqr(m, n, k, reinterpret[complex64](a), lda, reinterpret[complex64](tau), reinterpret[complex64](work), lwork)
	}
	return lapacke.Zungqr(m, n, k, reinterpret[complex128](a), lda, reinterpret[complex128](tau), reinterpret[complex128](work), lwork)
}

func orgqrLayout[T Scalar](m, n, k, lda int) (layout, error) {
	if m < 0 || n < 0 || k < 0 || n > m || k > n || lda < max(1, n) {
		return layout{}, errIllegalArg
	}
	if n == 0 {
		return layout{}, nil
	}
	return queryWork(func(w []T, lwork int) bool {
		return orgqrCall(m, n, k, one[T](), lda, one[T](), w, lwork)
	})
}

func orgqrBufferSize[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T) (int, error) {
	return workBytes[T](orgqrLayout[T](m, n, k, lda))
}

func orgqr[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	l, err := orgqrLayout[T](m, n, k, lda)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	if n == 0 {
		return nil
	}
	if len(a) < extent(m, n, lda) || len(tau) < k {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(orgqrCall(m, n, k, a, lda, nonEmpty(tau), ws.work, l.lwork))
}

// reflectorTrans rejects the transpose a real or complex reflector product
// does not have: real routines take N or T, complex ones N or C.
func reflectorTrans[T Scalar](trans Operation) (byte, error) {
	tr, err := toLapackOperation(trans)
	if err != nil {
		return 0, err
	}
	isReal := kindOf[T]() <= kindDouble
	if (isReal && tr == 'C') || (!isReal && tr == 'T') {
		return 0, errIllegalArg
	}
	return tr, nil
}

func ormqrCall[T Scalar](sd, tr byte, m, n, k int, a []T, lda int, tau, c []T, ldc int, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sormqr(sd, tr, m, n, k, reinterpret[float32](a), lda, reinterpret[float32](tau),
			reinterpret[float32](c), ldc, reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dormqr(sd, tr, m, n, k, reinterpret[float64](a), lda, reinterpret[float64](tau),
			reinterpret[float64](c), ldc, reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cunmqr(sd, tr, m, n, k, reinterpret[complex64](a), lda, reinterpret[complex64](tau),
			reinterpret[complex64](c), ldc, reinterpret[complex64](work), lwork)
	}
	return lapacke.Zunmqr(sd, tr, m, n, k, reinterpret[complex128](a), lda, reinterpret[complex128](tau),
		reinterpret[complex128](c), ldc, reinterpret[complex128](work), lwork)
}

func ormqrLayout[T Scalar](side Side, trans Operation, m, n, k, lda, ldc int) (byte, byte, layout, error) {
	sd, err := toLapackSide(side)
	if err != nil {
		return 0, 0, layout{}, err
	}
	tr, err := reflectorTrans[T](trans)
	if err != nil {
		return 0, 0, layout{}, err
	}
	nq := m
	if sd == 'R' {
		nq = n
	}
	if m < 0 || n < 0 || k < 0 || k > nq || lda < max(1, k) || ldc < max(1, n) {
		return 0, 0, layout{}, errIllegalArg
	}
	if m == 0 || n == 0 || k == 0 {
		return sd, tr, layout{}, nil
	}
	l, err := queryWork(func(w []T, lwork int) bool {
		return ormqrCall(sd, tr, m, n, k, one[T](), lda, one[T](), one[T](), ldc, w, lwork)
	})
	return sd, tr, l, err
}

func ormqrBufferSize[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	_, _, l, err := ormqrLayout[T](side, trans, m, n, k, lda, ldc)
	return workBytes[T](l, err)
}

func ormqr[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	sd, tr, l, err := ormqrLayout[T](side, trans, m, n, k, lda, ldc)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	if m == 0 || n == 0 || k == 0 {
		return nil
	}
	nq := m
	if sd == 'R' {
		nq = n
	}
	if len(a) < extent(nq, k, lda) || len(tau) < k || len(c) < extent(m, n, ldc) {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(ormqrCall(sd, tr, m, n, k, a, lda, tau, c, ldc, ws.work, l.lwork))
}

func orgbrCall[T Scalar](vect byte, m, n, k int, a []T, lda int, tau, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sorgbr(vect, m, n, k, reinterpret[float32](a), lda, reinterpret[float32](tau), reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dorgbr(vect, m, n, k, reinterpret[float64](a), lda, reinterpret[float64](tau), reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cungbr(vect, m, n, k, reinterpret[complex64](a), lda, reinterpret[complex64](tau), reinterpret[complex64](work), lwork)
	}
	return lapacke.Zungbr(vect, m, n, k, reinterpret[complex128](a), lda, reinterpret[complex128](tau), reinterpret[complex128](work), lwork)
}

// orgbrLayout also returns the number of reflectors tau holds.
func orgbrLayout[T Scalar](side Side, m, n, k, lda int) (byte, int, layout, error) {
	vect, err := toLapackVect(side)
	if err != nil {
		return 0, 0, layout{}, err
	}
	if m < 0 || n < 0 || k < 0 || lda < max(1, n) {
		return 0, 0, layout{}, errIllegalArg
	}
	ntau := min(m, k)
	if vect == 'Q' {
		if n > m || n < min(m, k) {
			return 0, 0, layout{}, errIllegalArg
		}
	} else {
		if m > n || m < min(n, k) {
			return 0, 0, layout{}, errIllegalArg
		}
		ntau = min(n, k)
	}
	if m == 0 || n == 0 {
		return vect, ntau, layout{}, nil
	}
	l, err := queryWork(func(w []T, lwork int) bool {
		return orgbrCall(vect, m, n, k, one[T](), lda, one[T](), w, lwork)
	})
	return vect, ntau, l, err
}

func orgbrBufferSize[T Scalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T) (int, error) {
	_, _, l, err := orgbrLayout[T](side, m, n, k, lda)
	return workBytes[T](l, err)
}

func orgbr[T Scalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	vect, ntau, l, err := orgbrLayout[T](side, m, n, k, lda)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	if m == 0 || n == 0 {
		return nil
	}
	if len(a) < extent(m, n, lda) || len(tau) < ntau {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(orgbrCall(vect, m, n, k, a, lda, nonEmpty(tau), ws.work, l.lwork))
}

func orgtrCall[T Scalar](ul byte, n int, a []T, lda int, tau, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sorgtr(ul, n, reinterpret[float32](a), lda, reinterpret[float32](tau), reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dorgtr(ul, n, reinterpret[float64](a), lda, reinterpret[float64](tau), reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cungtr(ul, n, reinterpret[complex64](a), lda, reinterpret[complex64](tau), reinterpret[complex64](work), lwork)
	}
	return lapacke.Zungtr(ul, n, reinterpret[complex128](a), lda, reinterpret[complex128](tau), reinterpret[complex128](work), lwork)
}

func orgtrLayout[T Scalar](uplo Fill, n, lda int) (byte, layout, error) {
	ul, err := toLapackFill(uplo)
	if err != nil {
		return 0, layout{}, err
	}
	if n < 0 || lda < max(1, n) {
		return 0, layout{}, errIllegalArg
	}
	if n == 0 {
		return ul, layout{}, nil
	}
	l, err := queryWork(func(w []T, lwork int) bool {
		return orgtrCall(ul, n, one[T](), lda, one[T](), w, lwork)
	})
	return ul, l, err
}

func orgtrBufferSize[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T) (int, error) {
	_, l, err := orgtrLayout[T](uplo, n, lda)
	return workBytes[T](l, err)
}

func orgtr[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	ul, l, err := orgtrLayout[T](uplo, n, lda)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	if n == 0 {
		return nil
	}
	if len(a) < extent(n, n, lda) || len(tau) < n-1 {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(orgtrCall(ul, n, a, lda, nonEmpty(tau), ws.work, l.lwork))
}

func ormtrCall[T Scalar](sd, ul, tr byte, m, n int, a []T, lda int, tau, c []T, ldc int, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sormtr(sd, ul, tr, m, n, reinterpret[float32](a), lda, reinterpret[float32](tau),
			reinterpret[float32](c), ldc, reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dormtr(sd, ul, tr, m, n, reinterpret[float64](a), lda, reinterpret[float64](tau),
			reinterpret[float64](c), ldc, reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cunmtr(sd, ul, tr, m, n, reinterpret[complex64](a), lda, reinterpret[complex64](tau),
			reinterpret[complex64](c), ldc, reinterpret[complex64](work), lwork)
	}
	return lapacke.Zunmtr(sd, ul, tr, m, n, reinterpret[complex128](a), lda, reinterpret[complex128](tau),
		reinterpret[complex128](c), ldc, reinterpret[complex128](work), lwork)
}

type ormtrArgs struct {
	sd, ul, tr byte
	nq         int
}

func ormtrLayout[T Scalar](side Side, uplo Fill, trans Operation, m, n, lda, ldc int) (ormtrArgs, layout, error) {
	var args ormtrArgs
	var err error
	if args.sd, err = toLapackSide(side); err != nil {
		return args, layout{}, err
	}
	if args.ul, err = toLapackFill(uplo); err != nil {
		return args, layout{}, err
	}
	if args.tr, err = reflectorTrans[T](trans); err != nil {
		return args, layout{}, err
	}
	args.nq = m
	if args.sd == 'R' {
		args.nq = n
	}
	if m < 0 || n < 0 || lda < max(1, args.nq) || ldc < max(1, n) {
		return args, layout{}, errIllegalArg
	}
	if m == 0 || n == 0 || args.nq == 1 {
		return args, layout{}, nil
	}
	l, err := queryWork(func(w []T, lwork int) bool {
		return ormtrCall(args.sd, args.ul, args.tr, m, n, one[T](), lda, one[T](), one[T](), ldc, w, lwork)
	})
	return args, l, err
}

func ormtrBufferSize[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	_, l, err := ormtrLayout[T](side, uplo, trans, m, n, lda, ldc)
	return workBytes[T](l, err)
}

func ormtr[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	args, l, err := ormtrLayout[T](side, uplo, trans, m, n, lda, ldc)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	nq := args.nq
	if m == 0 || n == 0 || nq == 1 {
		return nil
	}
	if len(a) < extent(nq, nq, lda) || len(tau) < nq-1 || len(c) < extent(m, n, ldc) {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(ormtrCall(args.sd, args.ul, args.tr, m, n, a, lda, tau, c, ldc, ws.work, l.lwork))
}

func gebrdCall[T Scalar, R Real](m, n int, a []T, lda int, d, e []R, tauq, taup, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sgebrd(m, n, reinterpret[float32](a), lda, reinterpret[float32](d), reinterpret[float32](e),
			reinterpret[float32](tauq), reinterpret[float32](taup), reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dgebrd(m, n, reinterpret[float64](a), lda, reinterpret[float64](d), reinterpret[float64](e),
			reinterpret[float64](tauq), reinterpret[float64](taup), reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cgebrd(m, n, reinterpret[complex64](a), lda, reinterpret[float32](d), reinterpret[float32](e),
			reinterpret[complex64](tauq), reinterpret[complex64](taup), reinterpret[complex64](work), lwork)
	}
	return lapacke.Zgebrd(m, n, reinterpret[complex128](a), lda, reinterpret[float64](d), reinterpret[float64](e),
		reinterpret[complex128](tauq), reinterpret[complex128](taup), reinterpret[complex128](work), lwork)
}

// gebrdLayout queries with the densest row stride: the optimal lwork does
// not depend on lda.
func gebrdLayout[T Scalar, R Real](m, n int) (layout, error) {
	if m < 0 || n < 0 {
		return layout{}, errIllegalArg
	}
	if min(m, n) == 0 {
		return layout{}, nil
	}
	return queryWork(func(w []T, lwork int) bool {
		return gebrdCall(m, n, one[T](), max(1, n), one[R](), one[R](), one[T](), one[T](), w, lwork)
	})
}

func gebrdBufferSize[T Scalar](h *Handle, m, n int) (int, error) {
	if realSize[T]() == 4 {
		return workBytes[T](gebrdLayout[T, float32](m, n))
	}
	return workBytes[T](gebrdLayout[T, float64](m, n))
}

func gebrd[T Scalar, R Real](h *Handle, m, n int, a []T, lda int, d, e []R, tauq, taup []T, work []byte, devInfo *int32) error {
	if lda < max(1, n) {
		return errIllegalArg
	}
	l, err := gebrdLayout[T, R](m, n)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	minmn := min(m, n)
	if minmn == 0 {
		return nil
	}
	if len(a) < extent(m, n, lda) || len(d) < minmn || len(e) < minmn-1 || len(tauq) < minmn || len(taup) < minmn {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(gebrdCall(m, n, a, lda, d, nonEmpty(e), tauq, taup, ws.work, l.lwork))
}

func gesvdCall[T Scalar, R Real](ju, jv byte, m, n int, a []T, lda int, s []R, u []T, ldu int, v []T, ldv int,
	work []T, lwork int, rwork []R) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Sgesvd(ju, jv, m, n, reinterpret[float32](a), lda, reinterpret[float32](s),
			reinterpret[float32](u), ldu, reinterpret[float32](v), ldv, reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dgesvd(ju, jv, m, n, reinterpret[float64](a), lda, reinterpret[float64](s),
			reinterpret[float64](u), ldu, reinterpret[float64](v), ldv, reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Cgesvd(ju, jv, m, n, reinterpret[complex64](a), lda, reinterpret[float32](s),
			reinterpret[complex64](u), ldu, reinterpret[complex64](v), ldv, reinterpret[complex64](work), lwork,
			reinterpret[float32](rwork))
	}
	return lapacke.Zgesvd(ju, jv, m, n, reinterpret[complex128](a), lda, reinterpret[float64](s),
		reinterpret[complex128](u), ldu, reinterpret[complex128](v), ldv, reinterpret[complex128](work), lwork,
		reinterpret[float64](rwork))
}

// gesvdLayout queries with the densest strides LAPACKE accepts for every
// job. Complex gesvd also takes a real rwork of 5*min(m, n), which LAPACK
// does not report through the query.
func gesvdLayout[T Scalar, R Real](jobu, jobv byte, m, n int) (byte, byte, layout, error) {
	ju, err := toLapackSVDJob(jobu)
	if err != nil {
		return 0, 0, layout{}, err
	}
	jv, err := toLapackSVDJob(jobv)
	if err != nil {
		return 0, 0, layout{}, err
	}
	if m < 0 || n < 0 || (ju == 'O' && jv == 'O') {
		return 0, 0, layout{}, errIllegalArg
	}
	minmn := min(m, n)
	if minmn == 0 {
		return ju, jv, layout{}, nil
	}
	l, err := queryWork(func(w []T, lwork int) bool {
		return gesvdCall(ju, jv, m, n, one[T](), max(1, n), one[R](), one[T](), max(1, m), one[T](), max(1, n),
			w, lwork, one[R]())
	})
	if kindOf[T]() >= kindComplex {
		l.lrwork = 5 * minmn
	}
	return ju, jv, l, err
}

func gesvdBufferSize[T Scalar](h *Handle, jobu, jobv byte, m, n int) (int, error) {
	if realSize[T]() == 4 {
		_, _, l, err := gesvdLayout[T, float32](jobu, jobv, m, n)
		return workBytes[T](l, err)
	}
	_, _, l, err := gesvdLayout[T, float64](jobu, jobv, m, n)
	return workBytes[T](l, err)
}

// gesvd leaves the superdiagonal of an unconverged bidiagonal form in rwork
// when the caller passes one of at least min(m, n)-1 elements.
func gesvd[T Scalar, R Real](h *Handle, jobu, jobv byte, m, n int, a []T, lda int, s []R, u []T, ldu int, v []T, ldv int,
	work []byte, rwork []R, devInfo *int32) error {
	ju, jv, l, err := gesvdLayout[T, R](jobu, jobv, m, n)
	if err != nil {
		return err
	}
	minmn := min(m, n)
	ucols, vrows := svdExtent(ju, m, minmn), svdExtent(jv, n, minmn)
	if lda < max(1, n) || ldu < max(1, ucols) || ldv < 1 || (vrows > 0 && ldv < n) {
		return errIllegalArg
	}
	if err := needInfo(devInfo); err != nil {
		return err
	}
	if minmn == 0 {
		return nil
	}
	if len(a) < extent(m, n, lda) || len(s) < minmn || len(u) < extent(m, ucols, ldu) || len(v) < extent(vrows, n, ldv) {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	// LAPACKE checks ldvt against n even when v is not referenced.
	if vrows == 0 {
		ldv = max(ldv, n)
	}
	rw := byteView[R](ws.rwork)
	ok := gesvdCall(ju, jv, m, n, a, lda, s, u, ldu, v, ldv, ws.work, l.lwork, rw)

	// Real gesvd returns the superdiagonal in work[1:min(m, n)], complex
	// gesvd in rwork[:min(m, n)-1].
	var e []R
	if kindOf[T]() <= kindDouble {
		e = reinterpret[R](ws.work)[1:minmn]
	} else {
		e = rw[:minmn-1]
	}
	if len(rwork) >= minmn-1 {
		if ok {
			clear(rwork[:minmn-1])
		} else {
			copy(rwork, e)
		}
	}
	if !ok {
		setInfo(devInfo, unconverged(e))
	}
	return nil
}

// svdExtent is the number of singular vectors job asks for out of full.
func svdExtent(job byte, full, minmn int) int {
	switch job {
	case 'A':
		return full
	case 'S':
		return minmn
	}
	return 0
}

func sytrdCall[T Scalar, R Real](ul byte, n int, a []T, lda int, d, e []R, tau, work []T, lwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Ssytrd(ul, n, reinterpret[float32](a), lda, reinterpret[float32](d), reinterpret[float32](e),
			reinterpret[float32](tau), reinterpret[float32](work), lwork)
	case kindDouble:
		return lapacke.Dsytrd(ul, n, reinterpret[float64](a), lda, reinterpret[float64](d), reinterpret[float64](e),
			reinterpret[float64](tau), reinterpret[float64](work), lwork)
	case kindComplex:
		return lapacke.Chetrd(ul, n, reinterpret[complex64](a), lda, reinterpret[float32](d), reinterpret[float32](e),
			reinterpret[complex64](tau), reinterpret[complex64](work), lwork)
	}
	return lapacke.Zhetrd(ul, n, reinterpret[complex128](a), lda, reinterpret[float64](d), reinterpret[float64](e),
		reinterpret[complex128](tau), reinterpret[complex128](work), lwork)
}

func sytrdLayout[T Scalar, R Real](uplo Fill, n, lda int) (byte, layout, error) {
	ul, err := toLapackFill(uplo)
	if err != nil {
		return 0, layout{}, err
	}
	if n < 0 || lda < max(1, n) {
		return 0, layout{}, errIllegalArg
	}
	if n == 0 {
		return ul, layout{}, nil
	}
	l, err := queryWork(func(w []T, lwork int) bool {
		return sytrdCall(ul, n, one[T](), lda, one[R](), one[R](), one[T](), w, lwork)
	})
	return ul, l, err
}

func sytrdBufferSize[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T) (int, error) {
	_, l, err := sytrdLayout[T, R](uplo, n, lda)
	return workBytes[T](l, err)
}

func sytrd[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T, work []byte, devInfo *int32) error {
	ul, l, err := sytrdLayout[T, R](uplo, n, lda)
	if err != nil {
		return err
	}
	setInfo(devInfo, 0)
	if n == 0 {
		return nil
	}
	if len(a) < extent(n, n, lda) || len(d) < n || len(e) < n-1 || len(tau) < n-1 {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	return failed(sytrdCall(ul, n, a, lda, d, nonEmpty(e), nonEmpty(tau), ws.work, l.lwork))
}

func syevdCall[T Scalar, R Real](jz, ul byte, n int, a []T, lda int, w []R,
	work []T, lwork int, rwork []R, lrwork int, iwork []int32, liwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Ssyevd(jz, ul, n, reinterpret[float32](a), lda, reinterpret[float32](w),
			reinterpret[float32](work), lwork, iwork, liwork)
	case kindDouble:
		return lapacke.Dsyevd(jz, ul, n, reinterpret[float64](a), lda, reinterpret[float64](w),
			reinterpret[float64](work), lwork, iwork, liwork)
	case kindComplex:
		return lapacke.Cheevd(jz, ul, n, reinterpret[complex64](a), lda, reinterpret[float32](w),
			reinterpret[complex64](work), lwork, reinterpret[float32](rwork), lrwork, iwork, liwork)
	}
	return lapacke.Zheevd(jz, ul, n, reinterpret[complex128](a), lda, reinterpret[float64](w),
		reinterpret[complex128](work), lwork, reinterpret[float64](rwork), lrwork, iwork, liwork)
}

func syevdLayout[T Scalar, R Real](jobz EigMode, uplo Fill, n, lda int) (byte, byte, layout, error) {
	jz, err := toLapackJobz(jobz)
	if err != nil {
		return 0, 0, layout{}, err
	}
	ul, err := toLapackFill(uplo)
	if err != nil {
		return 0, 0, layout{}, err
	}
	if n < 0 || lda < max(1, n) {
		return 0, 0, layout{}, errIllegalArg
	}
	if n == 0 {
		return jz, ul, layout{}, nil
	}
	l, err := queryAll(func(work []T, lwork int, rwork []R, lrwork int, iwork []int32, liwork int) bool {
		return syevdCall(jz, ul, n, one[T](), lda, one[R](), work, lwork, rwork, lrwork, iwork, liwork)
	})
	return jz, ul, l, err
}

func syevdBufferSize[T Scalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R) (int, error) {
	_, _, l, err := syevdLayout[T, R](jobz, uplo, n, lda)
	return workBytes[T](l, err)
}

func syevd[T Scalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R, work []byte, devInfo *int32) error {
	jz, ul, l, err := syevdLayout[T, R](jobz, uplo, n, lda)
	if err != nil {
		return err
	}
	if err := needInfo(devInfo); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if len(a) < extent(n, n, lda) || len(w) < n {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	if !syevdCall(jz, ul, n, a, lda, w, ws.work, l.lwork, byteView[R](ws.rwork), l.lrwork, ws.iwork, l.liwork) {
		setInfo(devInfo, 1)
	}
	return nil
}

func sygvdCall[T Scalar, R Real](it int, jz, ul byte, n int, a []T, lda int, b []T, ldb int, w []R,
	work []T, lwork int, rwork []R, lrwork int, iwork []int32, liwork int) bool {
	switch kindOf[T]() {
	case kindSingle:
		return lapacke.Ssygvd(it, jz, ul, n, reinterpret[float32](a), lda, reinterpret[float32](b), ldb,
			reinterpret[float32](w), reinterpret[float32](work), lwork, iwork, liwork)
	case kindDouble:
		return lapacke.Dsygvd(it, jz, ul, n, reinterpret[float64](a), lda, reinterpret[float64](b), ldb,
			reinterpret[float64](w), reinterpret[float64](work), lwork, iwork, liwork)
	case kindComplex:
		return lapacke.Chegvd(it, jz, ul, n, reinterpret[complex64](a), lda, reinterpret[complex64](b), ldb,
			reinterpret[float32](w), reinterpret[complex64](work), lwork, reinterpret[float32](rwork), lrwork, iwork, liwork)
	}
	return lapacke.Zhegvd(it, jz, ul, n, reinterpret[complex128](a), lda, reinterpret[complex128](b), ldb,
		reinterpret[float64](w), reinterpret[complex128](work), lwork, reinterpret[float64](rwork), lrwork, iwork, liwork)
}

type sygvdArgs struct {
	it     int
	jz, ul byte
}

func sygvdLayout[T Scalar, R Real](itype EigType, jobz EigMode, uplo Fill, n, lda, ldb int) (sygvdArgs, layout, error) {
	var args sygvdArgs
	var err error
	if args.it, err = toLapackItype(itype); err != nil {
		return args, layout{}, err
	}
	if args.jz, err = toLapackJobz(jobz); err != nil {
		return args, layout{}, err
	}
	if args.ul, err = toLapackFill(uplo); err != nil {
		return args, layout{}, err
	}
	if n < 0 || lda < max(1, n) || ldb < max(1, n) {
		return args, layout{}, errIllegalArg
	}
	if n == 0 {
		return args, layout{}, nil
	}
	l, err := queryAll(func(work []T, lwork int, rwork []R, lrwork int, iwork []int32, liwork int) bool {
		return sygvdCall(args.it, args.jz, args.ul, n, one[T](), lda, one[T](), ldb, one[R](),
			work, lwork, rwork, lrwork, iwork, liwork)
	})
	return args, l, err
}

func sygvdBufferSize[T Scalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R) (int, error) {
	_, l, err := sygvdLayout[T, R](itype, jobz, uplo, n, lda, ldb)
	return workBytes[T](l, err)
}

func sygvd[T Scalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R, work []byte, devInfo *int32) error {
	args, l, err := sygvdLayout[T, R](itype, jobz, uplo, n, lda, ldb)
	if err != nil {
		return err
	}
	if err := needInfo(devInfo); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if len(a) < extent(n, n, lda) || len(b) < extent(n, n, ldb) || len(w) < n {
		return errIllegalArg
	}
	ws, err := carve[T](work, l)
	if err != nil {
		return err
	}
	ok := sygvdCall(args.it, args.jz, args.ul, n, a, lda, b, ldb, w,
		ws.work, l.lwork, byteView[R](ws.rwork), l.lrwork, ws.iwork, l.liwork)
	if !ok {
		// A failed Cholesky factorization of b leaves its non-positive pivot
		// on the diagonal; a failed eigensolve leaves b fully factored.
		if i := firstNonPositiveDiag(n, b, ldb); i > 0 {
			setInfo(devInfo, n+i)
		} else {
			setInfo(devInfo, 1)
		}
	}
	return nil
}
