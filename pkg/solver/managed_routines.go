//go:build !lapacke

package solver

import "github.com/fxnlabs/densolver/internal/devsolver"

// Size queries pass nil data: devsolver validates the dimensions and records
// what it would borrow without reading any array.

func getrfBufferSize[T Scalar](h *Handle, m, n int, a []T, lda int) (int, error) {
	dev := h.native.dev
	return querySize(dev, 0,
		func() devsolver.Status { return devGetrf[T](dev, m, n, nil, lda, nil, nil) },
		func() devsolver.Status { return devGetrfNpvt[T](dev, m, n, nil, lda, nil) })
}

func getrf[T Scalar](h *Handle, m, n int, a []T, lda int, work []byte, ipiv []int32, devInfo *int32) error {
	dev := h.native.dev
	query := func() (int, error) { return getrfBufferSize(h, m, n, a, lda) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		if ipiv == nil {
			return devGetrfNpvt(dev, m, n, a, lda, devInfo)
		}
		return devGetrf(dev, m, n, a, lda, ipiv, devInfo)
	})
}

func getrsBufferSize[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int) (int, error) {
	op, err := toDevOperation(trans)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status {
		return devGetrs[T](dev, op, n, nrhs, nil, lda, nil, nil, ldb)
	})
}

func getrs[T Scalar](h *Handle, trans Operation, n, nrhs int, a []T, lda int, ipiv []int32, b []T, ldb int, work []byte, devInfo *int32) error {
	op, err := toDevOperation(trans)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return getrsBufferSize(h, trans, n, nrhs, a, lda, ipiv, b, ldb) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devGetrs(dev, op, n, nrhs, a, lda, ipiv, b, ldb), devInfo)
	})
}

func potrfBufferSize[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int) (int, error) {
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status { return devPotrf[T](dev, fill, n, nil, lda, nil) })
}

func potrf[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, work []byte, devInfo *int32) error {
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return potrfBufferSize(h, uplo, n, a, lda) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return devPotrf(dev, fill, n, a, lda, devInfo)
	})
}

func potrfBatchedBufferSize[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda, batch int) (int, error) {
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status {
		return devPotrfBatched[T](dev, fill, n, nil, lda, nil, batch)
	})
}

func potrfBatched[T Scalar](h *Handle, uplo Fill, n int, a [][]T, lda int, work []byte, devInfo []int32, batch int) error {
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return potrfBatchedBufferSize(h, uplo, n, a, lda, batch) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return devPotrfBatched(dev, fill, n, a, lda, devInfo, batch)
	})
}

func geqrfBufferSize[T Scalar](h *Handle, m, n int, a []T, lda int) (int, error) {
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status { return devGeqrf[T](dev, m, n, nil, lda, nil) })
}

func geqrf[T Scalar](h *Handle, m, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	dev := h.native.dev
	query := func() (int, error) { return geqrfBufferSize(h, m, n, a, lda) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devGeqrf(dev, m, n, a, lda, tau), devInfo)
	})
}

func orgqrBufferSize[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T) (int, error) {
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status { return devOrgqr[T](dev, m, n, k, nil, lda, nil) })
}

func orgqr[T Scalar](h *Handle, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	dev := h.native.dev
	query := func() (int, error) { return orgqrBufferSize(h, m, n, k, a, lda, tau) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devOrgqr(dev, m, n, k, a, lda, tau), devInfo)
	})
}

func ormqrBufferSize[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	sd, err := toDevSide(side)
	if err != nil {
		return 0, err
	}
	op, err := toDevOperation(trans)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status {
		return devOrmqr[T](dev, sd, op, m, n, k, nil, lda, nil, nil, ldc)
	})
}

func ormqr[T Scalar](h *Handle, side Side, trans Operation, m, n, k int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	sd, err := toDevSide(side)
	if err != nil {
		return err
	}
	op, err := toDevOperation(trans)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return ormqrBufferSize(h, side, trans, m, n, k, a, lda, tau, c, ldc) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devOrmqr(dev, sd, op, m, n, k, a, lda, tau, c, ldc), devInfo)
	})
}

func orgbrBufferSize[T Scalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T) (int, error) {
	storev, err := toDevStorev(side)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status { return devOrgbr[T](dev, storev, m, n, k, nil, lda, nil) })
}

func orgbr[T Scalar](h *Handle, side Side, m, n, k int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	storev, err := toDevStorev(side)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return orgbrBufferSize(h, side, m, n, k, a, lda, tau) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devOrgbr(dev, storev, m, n, k, a, lda, tau), devInfo)
	})
}

func orgtrBufferSize[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T) (int, error) {
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status { return devOrgtr[T](dev, fill, n, nil, lda, nil) })
}

func orgtr[T Scalar](h *Handle, uplo Fill, n int, a []T, lda int, tau []T, work []byte, devInfo *int32) error {
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return orgtrBufferSize(h, uplo, n, a, lda, tau) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devOrgtr(dev, fill, n, a, lda, tau), devInfo)
	})
}

func ormtrBufferSize[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int) (int, error) {
	sd, err := toDevSide(side)
	if err != nil {
		return 0, err
	}
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	op, err := toDevOperation(trans)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status {
		return devOrmtr[T](dev, sd, fill, op, m, n, nil, lda, nil, nil, ldc)
	})
}

func ormtr[T Scalar](h *Handle, side Side, uplo Fill, trans Operation, m, n int, a []T, lda int, tau, c []T, ldc int, work []byte, devInfo *int32) error {
	sd, err := toDevSide(side)
	if err != nil {
		return err
	}
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	op, err := toDevOperation(trans)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return ormtrBufferSize(h, side, uplo, trans, m, n, a, lda, tau, c, ldc) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devOrmtr(dev, sd, fill, op, m, n, a, lda, tau, c, ldc), devInfo)
	})
}

func gebrdBufferSize[T Scalar](h *Handle, m, n int) (int, error) {
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status {
		return devGebrd[T, float64](dev, m, n, nil, max(1, n), nil, nil, nil, nil)
	})
}

func gebrd[T Scalar, R Real](h *Handle, m, n int, a []T, lda int, d, e []R, tauq, taup []T, work []byte, devInfo *int32) error {
	dev := h.native.dev
	query := func() (int, error) { return gebrdBufferSize[T](h, m, n) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devGebrd(dev, m, n, a, lda, d, e, tauq, taup), devInfo)
	})
}

// gesvdBufferSize always reserves room for the superdiagonal scratch so the
// same size serves calls with and without rwork.
func gesvdBufferSize[T Scalar](h *Handle, jobu, jobv byte, m, n int) (int, error) {
	left, err := toDevSvect(jobu)
	if err != nil {
		return 0, err
	}
	right, err := toDevSvect(jobv)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	aux := max(min(m, n)-1, 0) * realSize[T]()
	return querySize(dev, aux, func() devsolver.Status {
		return devGesvd[T, float64](dev, left, right, m, n, nil, max(1, n), nil, nil, max(1, m), nil, max(1, n), nil, nil)
	})
}

func gesvd[T Scalar, R Real](h *Handle, jobu, jobv byte, m, n int, a []T, lda int, s []R, u []T, ldu int, v []T, ldv int,
	work []byte, rwork []R, devInfo *int32) error {
	left, err := toDevSvect(jobu)
	if err != nil {
		return err
	}
	right, err := toDevSvect(jobv)
	if err != nil {
		return err
	}
	dev := h.native.dev
	aux := 0
	if rwork == nil {
		aux = max(min(m, n)-1, 0) * elemSize[R]()
	}
	query := func() (int, error) { return gesvdBufferSize[T](h, jobu, jobv, m, n) }
	return execute(dev, work, aux, query, func(scratch []byte) devsolver.Status {
		e := rwork
		if e == nil {
			e = byteView[R](scratch)
		}
		return devGesvd(dev, left, right, m, n, a, lda, s, u, ldu, v, ldv, e, devInfo)
	})
}

func sytrdBufferSize[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T) (int, error) {
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, 0, func() devsolver.Status {
		return devSytrd[T, R](dev, fill, n, nil, lda, nil, nil, nil)
	})
}

func sytrd[T Scalar, R Real](h *Handle, uplo Fill, n int, a []T, lda int, d, e []R, tau []T, work []byte, devInfo *int32) error {
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return sytrdBufferSize(h, uplo, n, a, lda, d, e, tau) }
	return execute(dev, work, 0, query, func([]byte) devsolver.Status {
		return zeroInfo(devSytrd(dev, fill, n, a, lda, d, e, tau), devInfo)
	})
}

// The eigensolvers take the off-diagonal scratch E from the front of the
// workspace, or from handle memory when the workspace is provisioned.

func syevdBufferSize[T Scalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R) (int, error) {
	evect, err := toDevEvect(jobz)
	if err != nil {
		return 0, err
	}
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, n*elemSize[R](), func() devsolver.Status {
		return devSyevd[T, R](dev, evect, fill, n, nil, lda, nil, nil, nil)
	})
}

func syevd[T Scalar, R Real](h *Handle, jobz EigMode, uplo Fill, n int, a []T, lda int, w []R, work []byte, devInfo *int32) error {
	evect, err := toDevEvect(jobz)
	if err != nil {
		return err
	}
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return syevdBufferSize(h, jobz, uplo, n, a, lda, w) }
	return execute(dev, work, n*elemSize[R](), query, func(scratch []byte) devsolver.Status {
		return devSyevd(dev, evect, fill, n, a, lda, w, byteView[R](scratch), devInfo)
	})
}

func sygvdBufferSize[T Scalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R) (int, error) {
	form, err := toDevEform(itype)
	if err != nil {
		return 0, err
	}
	evect, err := toDevEvect(jobz)
	if err != nil {
		return 0, err
	}
	fill, err := toDevFill(uplo)
	if err != nil {
		return 0, err
	}
	dev := h.native.dev
	return querySize(dev, n*elemSize[R](), func() devsolver.Status {
		return devSygvd[T, R](dev, form, evect, fill, n, nil, lda, nil, ldb, nil, nil, nil)
	})
}

func sygvd[T Scalar, R Real](h *Handle, itype EigType, jobz EigMode, uplo Fill, n int, a []T, lda int, b []T, ldb int, w []R, work []byte, devInfo *int32) error {
	form, err := toDevEform(itype)
	if err != nil {
		return err
	}
	evect, err := toDevEvect(jobz)
	if err != nil {
		return err
	}
	fill, err := toDevFill(uplo)
	if err != nil {
		return err
	}
	dev := h.native.dev
	query := func() (int, error) { return sygvdBufferSize(h, itype, jobz, uplo, n, a, lda, b, ldb, w) }
	return execute(dev, work, n*elemSize[R](), query, func(scratch []byte) devsolver.Status {
		return devSygvd(dev, form, evect, fill, n, a, lda, b, ldb, w, byteView[R](scratch), devInfo)
	})
}
