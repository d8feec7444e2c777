package solver

// Complex names of the unitary and Hermitian routines. They are the same calls
// as their real counterparts, restricted to complex element types.

func UngqrBufferSize[T ComplexScalar](h *Handle, m, n, k int, a []T, lda int, tau []T) (int, error) {
	return OrgqrBufferSize(h, m, n, k, a, lda, tau)
}

func Ungqr[T ComplexScalar](h *Handle, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return Orgqr(h, m, n, k, a, lda, tau, work, devInfo)
}

func UnmqrBufferSize[T ComplexScalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	return OrmqrBufferSize(h, side, trans, m, n, k, a, lda, tau, c, ldc)
}

func Unmqr[T ComplexScalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	return Ormqr(h, side, trans, m, n, k, a, lda, tau, c, ldc, work, devInfo)
}

func UngbrBufferSize[T ComplexScalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T) (int, error) {
	return OrgbrBufferSize(h, side, m, n, k, a, lda, tau)
}

func Ungbr[T ComplexScalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return Orgbr(h, side, m, n, k, a, lda, tau, work, devInfo)
}

func UngtrBufferSize[T ComplexScalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T) (int, error) {
	return OrgtrBufferSize(h, uplo, n, a, lda, tau)
}

func Ungtr[T ComplexScalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return Orgtr(h, uplo, n, a, lda, tau, work, devInfo)
}

func UnmtrBufferSize[T ComplexScalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	return OrmtrBufferSize(h, side, uplo, trans, m, n, a, lda, tau, c, ldc)
}

func Unmtr[T ComplexScalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	return Ormtr(h, side, uplo, trans, m, n, a, lda, tau, c, ldc, work, devInfo)
}

func HetrdBufferSize[T ComplexScalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T) (int, error) {
	return SytrdBufferSize(h, uplo, n, a, lda, d, e, tau)
}

func Hetrd[T ComplexScalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T, work []byte, devInfo *int32) error {
	return Sytrd(h, uplo, n, a, lda, d, e, tau, work, devInfo)
}

func HeevdBufferSize[T ComplexScalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R) (int, error) {
	return SyevdBufferSize(h, jobz, uplo, n, a, lda, w)
}

func Heevd[T ComplexScalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R, work []byte, devInfo *int32) error {
	return Syevd(h, jobz, uplo, n, a, lda, w, work, devInfo)
}

func HegvdBufferSize[T ComplexScalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R) (int, error) {
	return SygvdBufferSize(h, itype, jobz, uplo, n, a, lda, b, ldb, w)
}

func Hegvd[T ComplexScalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R, work []byte, devInfo *int32) error {
	return Sygvd(h, itype, jobz, uplo, n, a, lda, b, ldb, w, work, devInfo)
}
