//go:build !lapacke

package solver

import "github.com/fxnlabs/densolver/internal/devsolver"

// The dev* functions forward to the devsolver routine of T's precision,
// reinterpreting Complex and DoubleComplex data as complex64 and complex128.
// Real companion arrays are reinterpreted the same way, so R must already
// match T.

func devGetrf[T Scalar](dev *devsolver.Handle, m, n int, a []T, lda int, ipiv []int32, info *int32) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Getrf(dev, m, n, reinterpret[float32](a), lda, ipiv, info)
	case kindDouble:
		return devsolver.Getrf(dev, m, n, reinterpret[float64](a), lda, ipiv, info)
	case kindComplex:
		return devsolver.Getrf(dev, m, n, reinterpret[complex64](a), lda, ipiv, info)
	}
	return devsolver.Getrf(dev, m, n, reinterpret[complex128](a), lda, ipiv, info)
}

func devGetrfNpvt[T Scalar](dev *devsolver.Handle, m, n int, a []T, lda int, info *int32) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.GetrfNpvt(dev, m, n, reinterpret[float32](a), lda, info)
	case kindDouble:
		return devsolver.GetrfNpvt(dev, m, n, reinterpret[float64](a), lda, info)
	case kindComplex:
		return devsolver.GetrfNpvt(dev, m, n, reinterpret[complex64](a), lda, info)
	}
	return devsolver.GetrfNpvt(dev, m, n, reinterpret[complex128](a), lda, info)
}

func devGetrs[T Scalar](dev *devsolver.Handle, trans devsolver.Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Getrs(dev, trans, n, nrhs, reinterpret[float32](a), lda, ipiv, reinterpret[float32](b), ldb)
	case kindDouble:
		return devsolver.Getrs(dev, trans, n, nrhs, reinterpret[float64](a), lda, ipiv, reinterpret[float64](b), ldb)
	case kindComplex:
		return devsolver.Getrs(dev, trans, n, nrhs, reinterpret[complex64](a), lda, ipiv, reinterpret[complex64](b), ldb)
	}
	return devsolver.Getrs(dev, trans, n, nrhs, reinterpret[complex128](a), lda, ipiv, reinterpret[complex128](b), ldb)
}

func devPotrf[T Scalar](dev *devsolver.Handle, uplo devsolver.Fill, n int, a []T, lda int, info *int32) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Potrf(dev, uplo, n, reinterpret[float32](a), lda, info)
	case kindDouble:
		return devsolver.Potrf(dev, uplo, n, reinterpret[float64](a), lda, info)
	case kindComplex:
		return devsolver.Potrf(dev, uplo, n, reinterpret[complex64](a), lda, info)
	}
	return devsolver.Potrf(dev, uplo, n, reinterpret[complex128](a), lda, info)
}

func devPotrfBatched[T Scalar](dev *devsolver.Handle, uplo devsolver.Fill, n int, a [][]T, lda int, info []int32, batch int) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.PotrfBatched(dev, uplo, n, reinterpret[[]float32](a), lda, info, batch)
	case kindDouble:
		return devsolver.PotrfBatched(dev, uplo, n, reinterpret[[]float64](a), lda, info, batch)
	case kindComplex:
		return devsolver.PotrfBatched(dev, uplo, n, reinterpret[[]complex64](a), lda, info, batch)
	}
	return devsolver.PotrfBatched(dev, uplo, n, reinterpret[[]complex128](a), lda, info, batch)
}

func devGeqrf[T Scalar](dev *devsolver.Handle, m, n int, a []T, lda int, tau []T) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Geqrf(dev, m, n, reinterpret[float32](a), lda, reinterpret[float32](tau))
	case kindDouble:
		return devsolver.Geqrf(dev, m, n, reinterpret[float64](a), lda, reinterpret[float64](tau))
	case kindComplex:
		return devsolver.Geqrf(dev, m, n, reinterpret[complex64](a), lda, reinterpret[complex64](tau))
	}
	return devsolver.Geqrf(dev, m, n, reinterpret[complex128](a), lda, reinterpret[complex128](tau))
}

func devOrgqr[T Scalar](dev *devsolver.Handle, m, n, k int, a []T, lda int, tau []T) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Orgqr(dev, m, n, k, reinterpret[float32](a), lda, reinterpret[float32](tau))
	case kindDouble:
		return devsolver.Orgqr(dev, m, n, k, reinterpret[float64](a), lda, reinterpret[float64](tau))
	case kindComplex:
		return devsolver.Orgqr(dev, m, n, k, reinterpret[complex64](a), lda, reinterpret[complex64](tau))
	}
	return devsolver.Orgqr(dev, m, n, k, reinterpret[complex128](a), lda, reinterpret[complex128](tau))
}

func devOrmqr[T Scalar](dev *devsolver.Handle, side devsolver.Side, trans devsolver.Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Ormqr(dev, side, trans, m, n, k, reinterpret[float32](a), lda, reinterpret[float32](tau), reinterpret[float32](c), ldc)
	case kindDouble:
		return devsolver.Ormqr(dev, side, trans, m, n, k, reinterpret[float64](a), lda, reinterpret[float64](tau), reinterpret[float64](c), ldc)
	case kindComplex:
		return devsolver.Ormqr(dev, side, trans, m, n, k, reinterpret[complex64](a), lda, reinterpret[complex64](tau), reinterpret[complex64](c), ldc)
	}
	return devsolver.Ormqr(dev, side, trans, m, n, k, reinterpret[complex128](a), lda, reinterpret[complex128](tau), reinterpret[complex128](c), ldc)
}

func devOrgbr[T Scalar](dev *devsolver.Handle, storev devsolver.Storev, m, n, k int, a []T, lda int, tau []T) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Orgbr(dev, storev, m, n, k, reinterpret[float32](a), lda, reinterpret[float32](tau))
	case kindDouble:
		return devsolver.Orgbr(dev, storev, m, n, k, reinterpret[float64](a), lda, reinterpret[float64](tau))
	case kindComplex:
		return devsolver.Orgbr(dev, storev, m, n, k, reinterpret[complex64](a), lda, reinterpret[complex64](tau))
	}
	return devsolver.Orgbr(dev, storev, m, n, k, reinterpret[complex128](a), lda, reinterpret[complex128](tau))
}

func devOrgtr[T Scalar](dev *devsolver.Handle, uplo devsolver.Fill, n int, a []T, lda int, tau []T) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Orgtr(dev, uplo, n, reinterpret[float32](a), lda, reinterpret[float32](tau))
	case kindDouble:
		return devsolver.Orgtr(dev, uplo, n, reinterpret[float64](a), lda, reinterpret[float64](tau))
	case kindComplex:
		return devsolver.Orgtr(dev, uplo, n, reinterpret[complex64](a), lda, reinterpret[complex64](tau))
	}
	return devsolver.Orgtr(dev, uplo, n, reinterpret[complex128](a), lda, reinterpret[complex128](tau))
}

func devOrmtr[T Scalar](dev *devsolver.Handle, side devsolver.Side, uplo devsolver.Fill, trans devsolver.Operation, m, n int, a []T, lda int, tau, c []T, ldc int) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Ormtr(dev, side, uplo, trans, m, n, reinterpret[float32](a), lda, reinterpret[float32](tau), reinterpret[float32](c), ldc)
	case kindDouble:
		return devsolver.Ormtr(dev, side, uplo, trans, m, n, reinterpret[float64](a), lda, reinterpret[float64](tau), reinterpret[float64](c), ldc)
	case kindComplex:
		return devsolver.Ormtr(dev, side, uplo, trans, m, n, reinterpret[complex64](a), lda, reinterpret[complex64](tau), reinterpret[complex64](c), ldc)
	}
	return devsolver.Ormtr(dev, side, uplo, trans, m, n, reinterpret[complex128](a), lda, reinterpret[complex128](tau), reinterpret[complex128](c), ldc)
}

func devGebrd[T Scalar, R Real](dev *devsolver.Handle, m, n int, a []T, lda int, d, e []R, tauq, taup []T) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Gebrd(dev, m, n, reinterpret[float32](a), lda, reinterpret[float32](d), reinterpret[float32](e),
			reinterpret[float32](tauq), reinterpret[float32](taup))
	case kindDouble:
		return devsolver.Gebrd(dev, m, n, reinterpret[float64](a), lda, reinterpret[float64](d), reinterpret[float64](e),
			reinterpret[float64](tauq), reinterpret[float64](taup))
	case kindComplex:
		return devsolver.Gebrd(dev, m, n, reinterpret[complex64](a), lda, reinterpret[float32](d), reinterpret[float32](e),
			reinterpret[complex64](tauq), reinterpret[complex64](taup))
	}
	return devsolver.Gebrd(dev, m, n, reinterpret[complex128](a), lda, reinterpret[float64](d), reinterpret[float64](e),
		reinterpret[complex128](tauq), reinterpret[complex128](taup))
}

func devGesvd[T Scalar, R Real](dev *devsolver.Handle, left, right devsolver.Svect, m, n int, a []T, lda int, s []R,
	u []T, ldu int, v []T, ldv int, e []R, info *int32) devsolver.Status {
	const mode = devsolver.OutOfPlace
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Gesvd(dev, left, right, m, n, reinterpret[float32](a), lda, reinterpret[float32](s),
			reinterpret[float32](u), ldu, reinterpret[float32](v), ldv, reinterpret[float32](e), mode, info)
	case kindDouble:
		return devsolver.Gesvd(dev, left, right, m, n, reinterpret[float64](a), lda, reinterpret[float64](s),
			reinterpret[float64](u), ldu, reinterpret[float64](v), ldv, reinterpret[float64](e), mode, info)
	case kindComplex:
		return devsolver.Gesvd(dev, left, right, m, n, reinterpret[complex64](a), lda, reinterpret[float32](s),
			reinterpret[complex64](u), ldu, reinterpret[complex64](v), ldv, reinterpret[float32](e), mode, info)
	}
	return devsolver.Gesvd(dev, left, right, m, n, reinterpret[complex128](a), lda, reinterpret[float64](s),
		reinterpret[complex128](u), ldu, reinterpret[complex128](v), ldv, reinterpret[float64](e), mode, info)
}

func devSytrd[T Scalar, R Real](dev *devsolver.Handle, uplo devsolver.Fill, n int, a []T, lda int, d, e []R, tau []T) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Sytrd(dev, uplo, n, reinterpret[float32](a), lda, reinterpret[float32](d), reinterpret[float32](e), reinterpret[float32](tau))
	case kindDouble:
		return devsolver.Sytrd(dev, uplo, n, reinterpret[float64](a), lda, reinterpret[float64](d), reinterpret[float64](e), reinterpret[float64](tau))
	case kindComplex:
		return devsolver.Sytrd(dev, uplo, n, reinterpret[complex64](a), lda, reinterpret[float32](d), reinterpret[float32](e), reinterpret[complex64](tau))
	}
	return devsolver.Sytrd(dev, uplo, n, reinterpret[complex128](a), lda, reinterpret[float64](d), reinterpret[float64](e), reinterpret[complex128](tau))
}

func devSyevd[T Scalar, R Real](dev *devsolver.Handle, evect devsolver.Evect, uplo devsolver.Fill, n int, a []T, lda int, w, e []R, info *int32) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Syevd(dev, evect, uplo, n, reinterpret[float32](a), lda, reinterpret[float32](w), reinterpret[float32](e), info)
	case kindDouble:
		return devsolver.Syevd(dev, evect, uplo, n, reinterpret[float64](a), lda, reinterpret[float64](w), reinterpret[float64](e), info)
	case kindComplex:
		return devsolver.Syevd(dev, evect, uplo, n, reinterpret[complex64](a), lda, reinterpret[float32](w), reinterpret[float32](e), info)
	}
	return devsolver.Syevd(dev, evect, uplo, n, reinterpret[complex128](a), lda, reinterpret[float64](w), reinterpret[float64](e), info)
}

func devSygvd[T Scalar, R Real](dev *devsolver.Handle, itype devsolver.Eform, evect devsolver.Evect, uplo devsolver.Fill, n int,
	a []T, lda int, b []T, ldb int, w, e []R, info *int32) devsolver.Status {
	switch kindOf[T]() {
	case kindSingle:
		return devsolver.Sygvd(dev, itype, evect, uplo, n, reinterpret[float32](a), lda, reinterpret[float32](b), ldb,
			reinterpret[float32](w), reinterpret[float32](e), info)
	case kindDouble:
		return devsolver.Sygvd(dev, itype, evect, uplo, n, reinterpret[float64](a), lda, reinterpret[float64](b), ldb,
			reinterpret[float64](w), reinterpret[float64](e), info)
	case kindComplex:
		return devsolver.Sygvd(dev, itype, evect, uplo, n, reinterpret[complex64](a), lda, reinterpret[complex64](b), ldb,
			reinterpret[float32](w), reinterpret[float32](e), info)
	}
	return devsolver.Sygvd(dev, itype, evect, uplo, n, reinterpret[complex128](a), lda, reinterpret[complex128](b), ldb,
		reinterpret[float64](w), reinterpret[float64](e), info)
}
