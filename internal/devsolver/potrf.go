package devsolver

// Potrf computes the Cholesky factorization of the symmetric positive
// definite n x n matrix a. Only the uplo triangle is referenced and
// overwritten. info is set to i > 0 if the leading minor of order i is not
// positive definite.
func Potrf[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, info *int32) Status {
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
	s, st := h.borrow(stageMatBytes[T](n, n))
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
	if len(a) < ext {
		return StatusInvalidPointer
	}

	w, wld := widenMat(a, n, n, lda, s.f64(0))
	if !native.Dpotrf(ul, n, w, wld) {
		setInfo(info, max(firstNonPositiveDiag(n, w, wld), 1))
	}
	narrowMat(a, n, n, lda, w, wld)
	return StatusSuccess
}

// PotrfBatched runs Potrf on each of the batch matrices in a. info[i]
// receives the result for a[i].
func PotrfBatched[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda int, info []int32, batch int) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	ul, ok := uplo.uplo()
	if !ok {
		return StatusInvalidValue
	}
	if n < 0 || lda < max(1, n) || batch < 0 {
		return StatusInvalidSize
	}
	if isComplex[T]() {
		return StatusNotImplemented
	}
	ext := extent(n, n, lda)
	s, st := h.borrow(stageMatBytes[T](n, n))
	if st != StatusSuccess {
		return st
	}
	defer s.Release()
	if batch == 0 {
		return StatusSuccess
	}
	if len(info) < batch || len(a) < batch {
		return StatusInvalidPointer
	}
	for i := 0; i < batch; i++ {
		if n > 0 && len(a[i]) < ext {
			return StatusInvalidPointer
		}
	}

	for i := 0; i < batch; i++ {
		info[i] = 0
		if n == 0 {
			continue
		}
		w, wld := widenMat(a[i], n, n, lda, s.f64(0))
		if !native.Dpotrf(ul, n, w, wld) {
			info[i] = int32(max(firstNonPositiveDiag(n, w, wld), 1))
		}
		narrowMat(a[i], n, n, lda, w, wld)
	}
	return StatusSuccess
}
