package solver

import "math"

// Every routine comes as a pair: XxxBufferSize reports the workspace bytes Xxx
// needs for the same arguments, and Xxx runs the routine. Passing a nil work
// to Xxx lets the backend provision the workspace itself. Matrices are
// row-major and every leading dimension is a row stride.
//
// devInfo receives 0 on success or the backend's failure index (> 0): the
// first zero pivot for getrf, the order of the failing minor for potrf, or the
// number of unconverged off-diagonals for the eigen and SVD routines.

// checkSize rejects workspace sizes that do not fit the 32-bit sizes the
// native libraries take.
func checkSize(sz int) (int, error) {
	if sz > math.MaxInt32 || sz < 0 {
		return 0, StatusInternalError
	}
	return sz, nil
}

func checkReal[T Scalar, R Real]() error {
	if !realMatches[T, R]() {
		return StatusInvalidValue
	}
	return nil
}

// GetrfBufferSize covers both the pivoted and the unpivoted factorization.
func GetrfBufferSize[T Scalar](h *Handle, m, n int, a []T, lda int) (int, error) {
	return h.sized("getrf", func() (int, error) { return getrfBufferSize(h, m, n, a, lda) })
}

// Getrf computes the LU factorization of the m x n matrix a. With ipiv nil
// the factorization is computed without pivoting.
func Getrf[T Scalar](h *Handle, m, n int, a []T, lda int, work []byte, ipiv []int32, devInfo *int32) error {
	return h.guard("getrf", func() error { return getrf(h, m, n, a, lda, work, ipiv, devInfo) })
}

func GetrsBufferSize[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int) (int, error) {
	return h.sized("getrs", func() (int, error) { return getrsBufferSize(h, trans, n, nrhs, a, lda, ipiv, b, ldb) })
}

// Getrs solves op(A)*X = B with the factorization from Getrf. b is n x nrhs.
func Getrs[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int, work []byte, devInfo *int32) error {
	return h.guard("getrs", func() error { return getrs(h, trans, n, nrhs, a, lda, ipiv, b, ldb, work, devInfo) })
}

func PotrfBufferSize[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int) (int, error) {
	return h.sized("potrf", func() (int, error) { return potrfBufferSize(h, uplo, n, a, lda) })
}

// Potrf computes the Cholesky factorization of a symmetric (Hermitian)
// positive definite matrix.
func Potrf[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, work []byte, devInfo *int32) error {
	return h.guard("potrf", func() error { return potrf(h, uplo, n, a, lda, work, devInfo) })
}

func PotrfBatchedBufferSize[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda, batch int) (int, error) {
	return h.sized("potrfBatched", func() (int, error) { return potrfBatchedBufferSize(h, uplo, n, a, lda, batch) })
}

// PotrfBatched runs Potrf on batch matrices; devInfo[i] belongs to a[i].
func PotrfBatched[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda int, work []byte, devInfo []int32, batch int) error {
	return h.guard("potrfBatched", func() error { return potrfBatched(h, uplo, n, a, lda, work, devInfo, batch) })
}

func GeqrfBufferSize[T Scalar](h *Handle, m, n int, a []T, lda int) (int, error) {
	return h.sized("geqrf", func() (int, error) { return geqrfBufferSize(h, m, n, a, lda) })
}

// Geqrf computes the QR factorization of the m x n matrix a.
func Geqrf[T Scalar](h *Handle, m, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return h.guard("geqrf", func() error { return geqrf(h, m, n, a, lda, tau, work, devInfo) })
}

func OrgqrBufferSize[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T) (int, error) {
	return h.sized("orgqr", func() (int, error) { return orgqrBufferSize(h, m, n, k, a, lda, tau) })
}

// Orgqr generates the m x n matrix Q with orthonormal columns from k
// reflectors returned by Geqrf. For complex T this is ungqr.
func Orgqr[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return h.guard("orgqr", func() error { return orgqr(h, m, n, k, a, lda, tau, work, devInfo) })
}

func OrmqrBufferSize[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	return h.sized("ormqr", func() (int, error) { return ormqrBufferSize(h, side, trans, m, n, k, a, lda, tau, c, ldc) })
}

// Ormqr overwrites the m x n matrix c with op(Q)*C or C*op(Q). For complex T
// this is unmqr.
func Ormqr[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	return h.guard("ormqr", func() error { return ormqr(h, side, trans, m, n, k, a, lda, tau, c, ldc, work, devInfo) })
}

func OrgbrBufferSize[T Scalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T) (int, error) {
	return h.sized("orgbr", func() (int, error) { return orgbrBufferSize(h, side, m, n, k, a, lda, tau) })
}

// Orgbr generates Q (SideLeft) or P^T (SideRight) from the reduction computed
// by Gebrd. For complex T this is ungbr.
func Orgbr[T Scalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return h.guard("orgbr", func() error { return orgbr(h, side, m, n, k, a, lda, tau, work, devInfo) })
}

func OrgtrBufferSize[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T) (int, error) {
	return h.sized("orgtr", func() (int, error) { return orgtrBufferSize(h, uplo, n, a, lda, tau) })
}

// Orgtr generates the orthogonal (unitary) Q from Sytrd. For complex T this
// is ungtr.
func Orgtr[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	return h.guard("orgtr", func() error { return orgtr(h, uplo, n, a, lda, tau, work, devInfo) })
}

func OrmtrBufferSize[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	return h.sized("ormtr", func() (int, error) { return ormtrBufferSize(h, side, uplo, trans, m, n, a, lda, tau, c, ldc) })
}

// Ormtr overwrites the m x n matrix c with op(Q)*C or C*op(Q), Q from Sytrd.
// For complex T this is unmtr.
func Ormtr[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	return h.guard("ormtr", func() error { return ormtr(h, side, uplo, trans, m, n, a, lda, tau, c, ldc, work, devInfo) })
}

func GebrdBufferSize[T Scalar](h *Handle, m, n int) (int, error) {
	return h.sized("gebrd", func() (int, error) { return gebrdBufferSize[T](h, m, n) })
}

// Gebrd reduces the m x n matrix a to bidiagonal form.
func Gebrd[T Scalar, R Real](h *Handle, m, n int, a []T, lda int, d, e []R, tauq, taup []T, work []byte, devInfo *int32) error {
	return h.guard("gebrd", func() error {
		if err := checkReal[T, R](); err != nil {
			return err
		}
		return gebrd(h, m, n, a, lda, d, e, tauq, taup, work, devInfo)
	})
}

// GesvdBufferSize takes the job characters of Gesvd: 'N', 'A', 'S' or 'O'.
func GesvdBufferSize[T Scalar](h *Handle, jobu, jobv byte, m, n int) (int, error) {
	return h.sized("gesvd", func() (int, error) { return gesvdBufferSize[T](h, jobu, jobv, m, n) })
}

// Gesvd computes the singular value decomposition A = U*S*V^T. jobu and jobv
// are 'A' (all vectors), 'S' (the leading min(m, n)), 'O' (overwrite a) or
// 'N' (none). rwork, if given, receives the unconverged superdiagonal when
// devInfo > 0; it needs min(m, n)-1 elements.
func Gesvd[T Scalar, R Real](h *Handle, jobu, jobv byte, m, n int, a []T, lda int, s []R, u []T, ldu int, v []T, ldv int, work []byte, rwork []R, devInfo *int32) error {
	return h.guard("gesvd", func() error {
		if err := checkReal[T, R](); err != nil {
			return err
		}
		return gesvd(h, jobu, jobv, m, n, a, lda, s, u, ldu, v, ldv, work, rwork, devInfo)
	})
}

func SytrdBufferSize[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T) (int, error) {
	return h.sized("sytrd", func() (int, error) {
		if err := checkReal[T, R](); err != nil {
			return 0, err
		}
		return sytrdBufferSize(h, uplo, n, a, lda, d, e, tau)
	})
}

// Sytrd reduces a symmetric (Hermitian) matrix to real tridiagonal form. For
// complex T this is hetrd.
func Sytrd[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T, work []byte, devInfo *int32) error {
	return h.guard("sytrd", func() error {
		if err := checkReal[T, R](); err != nil {
			return err
		}
		return sytrd(h, uplo, n, a, lda, d, e, tau, work, devInfo)
	})
}

func SyevdBufferSize[T Scalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R) (int, error) {
	return h.sized("syevd", func() (int, error) {
		if err := checkReal[T, R](); err != nil {
			return 0, err
		}
		return syevdBufferSize(h, jobz, uplo, n, a, lda, w)
	})
}

// Syevd computes the eigenvalues of a symmetric (Hermitian) matrix into w in
// ascending order and, with EigModeVector, the eigenvectors into the columns
// of a. For complex T this is heevd.
func Syevd[T Scalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R, work []byte, devInfo *int32) error {
	return h.guard("syevd", func() error {
		if err := checkReal[T, R](); err != nil {
			return err
		}
		return syevd(h, jobz, uplo, n, a, lda, w, work, devInfo)
	})
}

func SygvdBufferSize[T Scalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R) (int, error) {
	return h.sized("sygvd", func() (int, error) {
		if err := checkReal[T, R](); err != nil {
			return 0, err
		}
		return sygvdBufferSize(h, itype, jobz, uplo, n, a, lda, b, ldb, w)
	})
}

// Sygvd solves the generalized symmetric-definite (Hermitian-definite)
// eigenproblem of form itype. devInfo is n+i if b is not positive definite.
// For complex T this is hegvd.
func Sygvd[T Scalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R, work []byte, devInfo *int32) error {
	return h.guard("sygvd", func() error {
		if err := checkReal[T, R](); err != nil {
			return err
		}
		return sygvd(h, itype, jobz, uplo, n, a, lda, b, ldb, w, work, devInfo)
	})
}
