package bench

import (
	"fmt"
	"math/rand/v2"

	"github.com/fxnlabs/densolver/pkg/solver"
)

// problem is one prepared routine call. reset restores the inputs before
// every timed run, so each run sees the same data.
type problem struct {
	flops  float64
	lwork  func() (int, error)
	reset  func()
	run    func(work []byte) error
	info   func() int32
	verify func() (float64, bool)
}

func single(info *int32) func() int32 {
	return func() int32 { return *info }
}

// build prepares the problem args.Function describes with element type T
// and real type R.
func build[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	switch args.Function {
	case "getrf":
		return luProblem[T](h, args, rng, true), nil
	case "getrf_npvt":
		return luProblem[T](h, args, rng, false), nil
	case "getrs":
		return solveProblem[T](h, args, rng)
	case "potrf":
		return choleskyProblem[T](h, args, rng)
	case "potrf_batched":
		return batchedCholeskyProblem[T](h, args, rng)
	case "geqrf":
		return qrProblem[T](h, args, rng), nil
	case "orgqr":
		return orgqrProblem[T](h, args, rng)
	case "ormqr":
		return ormqrProblem[T](h, args, rng)
	case "orgbr":
		return orgbrProblem[T, R](h, args, rng)
	case "orgtr":
		return orgtrProblem[T, R](h, args, rng)
	case "ormtr":
		return ormtrProblem[T, R](h, args, rng)
	case "gebrd":
		return gebrdProblem[T, R](h, args, rng), nil
	case "gesvd":
		return gesvdProblem[T, R](h, args, rng), nil
	case "sytrd":
		return sytrdProblem[T, R](h, args, rng)
	case "syevd":
		return syevdProblem[T, R](h, args, rng)
	case "sygvd":
		return sygvdProblem[T, R](h, args, rng)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, args.Function)
}

func luProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand, pivot bool) *problem {
	m, n, lda := args.M, args.N, args.LDA
	orig := general[T](rng, m, n, lda)
	var ipiv []int32
	if pivot {
		ipiv = make([]int32, max(min(m, n), 1))
	} else {
		// Without pivoting the leading minors must stay well away from
		// singular.
		for i := 0; i < min(m, n); i++ {
			orig[i*lda+i] = scalar[T](float64(max(m, n))+uniform(rng), 0)
		}
	}
	a := make([]T, len(orig))
	var info int32
	return &problem{
		flops: luFlops(m, n),
		lwork: func() (int, error) { return solver.GetrfBufferSize(h, m, n, a, lda) },
		reset: func() { copy(a, orig) },
		run:   func(work []byte) error { return solver.Getrf(h, m, n, a, lda, work, ipiv, &info) },
		info:  single(&info),
		verify: func() (float64, bool) {
			if ipiv != nil {
				return verifyLU(m, n, orig, a, lda, ipiv[:min(m, n)])
			}
			return verifyLU(m, n, orig, a, lda, nil)
		},
	}
}

func solveProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, nrhs, lda, ldb := args.N, args.NRHS, args.LDA, args.LDB
	trans, err := args.operation()
	if err != nil {
		return nil, err
	}
	orig := dominant[T](rng, n, lda)
	lu := append([]T(nil), orig...)
	ipiv := make([]int32, max(n, 1))
	var info int32
	if err := solver.Getrf(h, n, n, lu, lda, nil, ipiv, &info); err != nil {
		return nil, fmt.Errorf("factor: %w", err)
	}
	rhs := general[T](rng, n, nrhs, ldb)
	b := make([]T, len(rhs))
	return &problem{
		flops:  2 * float64(n) * float64(n) * float64(nrhs),
		lwork:  func() (int, error) { return solver.GetrsBufferSize(h, trans, n, nrhs, lu, lda, ipiv, b, ldb) },
		reset:  func() { copy(b, rhs) },
		run:    func(work []byte) error { return solver.Getrs(h, trans, n, nrhs, lu, lda, ipiv, b, ldb, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifySolve(trans, n, nrhs, orig, lda, rhs, b, ldb) },
	}, nil
}

func choleskyProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, lda := args.N, args.LDA
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	orig := hermitian[T](rng, n, lda, float64(n))
	a := make([]T, len(orig))
	var info int32
	return &problem{
		flops:  float64(n) * float64(n) * float64(n) / 3,
		lwork:  func() (int, error) { return solver.PotrfBufferSize(h, uplo, n, a, lda) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Potrf(h, uplo, n, a, lda, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyCholesky(uplo, n, orig, a, lda) },
	}, nil
}

func batchedCholeskyProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, lda, batch := args.N, args.LDA, args.BatchCount
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	orig := make([][]T, batch)
	a := make([][]T, batch)
	for i := range orig {
		orig[i] = hermitian[T](rng, n, lda, float64(n))
		a[i] = make([]T, len(orig[i]))
	}
	info := make([]int32, batch)
	return &problem{
		flops: float64(batch) * float64(n) * float64(n) * float64(n) / 3,
		lwork: func() (int, error) { return solver.PotrfBatchedBufferSize(h, uplo, n, a, lda, batch) },
		reset: func() {
			for i := range a {
				copy(a[i], orig[i])
			}
		},
		run: func(work []byte) error { return solver.PotrfBatched(h, uplo, n, a, lda, work, info, batch) },
		info: func() int32 {
			for _, v := range info {
				if v != 0 {
					return v
				}
			}
			return 0
		},
		verify: func() (float64, bool) {
			var worst float64
			for i := range a {
				e, ok := verifyCholesky(uplo, n, orig[i], a[i], lda)
				if !ok {
					return 0, false
				}
				worst = max(worst, e)
			}
			return worst, true
		},
	}, nil
}

func qrProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand) *problem {
	m, n, lda := args.M, args.N, args.LDA
	orig := general[T](rng, m, n, lda)
	a := make([]T, len(orig))
	tau := make([]T, max(min(m, n), 1))
	var info int32
	return &problem{
		flops:  qrFlops(m, n),
		lwork:  func() (int, error) { return solver.GeqrfBufferSize(h, m, n, a, lda) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Geqrf(h, m, n, a, lda, tau, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyR(m, n, orig, a, lda) },
	}
}

// reflectors factors a random rows x cols matrix with geqrf so generating
// and applying routines work on valid Householder vectors.
func reflectors[T solver.Scalar](h *solver.Handle, rng *rand.Rand, rows, cols, lda int) ([]T, []T, error) {
	a := general[T](rng, rows, cols, lda)
	tau := make([]T, max(min(rows, cols), 1))
	var info int32
	if err := solver.Geqrf(h, rows, cols, a, lda, tau, nil, &info); err != nil {
		return nil, nil, fmt.Errorf("geqrf: %w", err)
	}
	return a, tau, nil
}

func orgqrProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	m, n, k, lda := args.M, args.N, args.K, args.LDA
	orig, tau, err := reflectors[T](h, rng, m, n, lda)
	if err != nil {
		return nil, err
	}
	a := make([]T, len(orig))
	var info int32
	return &problem{
		flops:  orgqrFlops(m, n, k),
		lwork:  func() (int, error) { return solver.OrgqrBufferSize(h, m, n, k, a, lda, tau) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Orgqr(h, m, n, k, a, lda, tau, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyOrthonormal(m, n, a, lda) },
	}, nil
}

func ormqrProblem[T solver.Scalar](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	m, n, k, lda, ldc := args.M, args.N, args.K, args.LDA, args.LDC
	side, err := args.side()
	if err != nil {
		return nil, err
	}
	trans, err := args.operation()
	if err != nil {
		return nil, err
	}
	nq := m
	if side == solver.SideRight {
		nq = n
	}
	a, tau, err := reflectors[T](h, rng, nq, k, lda)
	if err != nil {
		return nil, err
	}
	orig := general[T](rng, m, n, ldc)
	c := make([]T, len(orig))
	var info int32
	return &problem{
		flops: 4 * float64(m) * float64(n) * float64(k),
		lwork: func() (int, error) {
			return solver.OrmqrBufferSize(h, side, trans, m, n, k, a, lda, tau, c, ldc)
		},
		reset: func() { copy(c, orig) },
		run: func(work []byte) error {
			return solver.Ormqr(h, side, trans, m, n, k, a, lda, tau, c, ldc, work, &info)
		},
		info: single(&info),
	}, nil
}

// bidiagonal reduces a random m x n matrix with gebrd.
func bidiagonal[T solver.Scalar, R solver.Real](h *solver.Handle, rng *rand.Rand, m, n, lda int) (a, tauq, taup []T, err error) {
	k := max(min(m, n), 1)
	a = general[T](rng, m, n, lda)
	d, e := make([]R, k), make([]R, k)
	tauq, taup = make([]T, k), make([]T, k)
	var info int32
	if err := solver.Gebrd(h, m, n, a, lda, d, e, tauq, taup, nil, &info); err != nil {
		return nil, nil, nil, fmt.Errorf("gebrd: %w", err)
	}
	return a, tauq, taup, nil
}

func orgbrProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	m, n, k, lda := args.M, args.N, args.K, args.LDA
	side, err := args.side()
	if err != nil {
		return nil, err
	}
	orig, tauq, taup, err := bidiagonal[T, R](h, rng, m, n, lda)
	if err != nil {
		return nil, err
	}
	tau := tauq
	if side == solver.SideRight {
		tau = taup
	}
	a := make([]T, len(orig))
	var info int32
	return &problem{
		flops: orgqrFlops(max(m, n), min(m, n), k),
		lwork: func() (int, error) { return solver.OrgbrBufferSize(h, side, m, n, k, a, lda, tau) },
		reset: func() { copy(a, orig) },
		run:   func(work []byte) error { return solver.Orgbr(h, side, m, n, k, a, lda, tau, work, &info) },
		info:  single(&info),
		verify: func() (float64, bool) {
			if side == solver.SideLeft {
				return verifyOrthonormal(m, n, a, lda)
			}
			return verifyOrthonormal(n, m, transpose(m, n, a, lda), max(m, 1))
		},
	}, nil
}

func transpose[T solver.Scalar](rows, cols int, a []T, lda int) []T {
	t := make([]T, max(rows*cols, 1))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t[j*rows+i] = a[i*lda+j]
		}
	}
	return t
}

// tridiagonal reduces a random symmetric n x n matrix with sytrd.
func tridiagonal[T solver.Scalar, R solver.Real](h *solver.Handle, rng *rand.Rand, uplo solver.Fill, n, lda int) ([]T, []T, error) {
	a := hermitian[T](rng, n, lda, 0)
	d, e := make([]R, max(n, 1)), make([]R, max(n-1, 1))
	tau := make([]T, max(n-1, 1))
	var info int32
	if err := solver.Sytrd(h, uplo, n, a, lda, d, e, tau, nil, &info); err != nil {
		return nil, nil, fmt.Errorf("sytrd: %w", err)
	}
	return a, tau, nil
}

func orgtrProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, lda := args.N, args.LDA
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	orig, tau, err := tridiagonal[T, R](h, rng, uplo, n, lda)
	if err != nil {
		return nil, err
	}
	a := make([]T, len(orig))
	var info int32
	return &problem{
		flops:  4 * float64(n) * float64(n) * float64(n) / 3,
		lwork:  func() (int, error) { return solver.OrgtrBufferSize(h, uplo, n, a, lda, tau) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Orgtr(h, uplo, n, a, lda, tau, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyOrthonormal(n, n, a, lda) },
	}, nil
}

func ormtrProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	m, n, lda, ldc := args.M, args.N, args.LDA, args.LDC
	side, err := args.side()
	if err != nil {
		return nil, err
	}
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	trans, err := args.operation()
	if err != nil {
		return nil, err
	}
	nq := m
	if side == solver.SideRight {
		nq = n
	}
	a, tau, err := tridiagonal[T, R](h, rng, uplo, nq, lda)
	if err != nil {
		return nil, err
	}
	orig := general[T](rng, m, n, ldc)
	c := make([]T, len(orig))
	var info int32
	return &problem{
		flops: 2 * float64(m) * float64(n) * float64(nq),
		lwork: func() (int, error) {
			return solver.OrmtrBufferSize(h, side, uplo, trans, m, n, a, lda, tau, c, ldc)
		},
		reset: func() { copy(c, orig) },
		run: func(work []byte) error {
			return solver.Ormtr(h, side, uplo, trans, m, n, a, lda, tau, c, ldc, work, &info)
		},
		info: single(&info),
	}, nil
}

func gebrdProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) *problem {
	m, n, lda := args.M, args.N, args.LDA
	k := max(min(m, n), 1)
	orig := general[T](rng, m, n, lda)
	a := make([]T, len(orig))
	d, e := make([]R, k), make([]R, k)
	tauq, taup := make([]T, k), make([]T, k)
	var info int32
	return &problem{
		flops:  2 * qrFlops(max(m, n), min(m, n)),
		lwork:  func() (int, error) { return solver.GebrdBufferSize[T](h, m, n) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Gebrd(h, m, n, a, lda, d, e, tauq, taup, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyBidiagonal(m, n, orig, lda, d, e) },
	}
}

func gesvdProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) *problem {
	m, n, lda, ldu, ldv := args.M, args.N, args.LDA, args.LDU, args.LDV
	jobu, jobv := args.LeftSvect, args.RightSvect
	orig := general[T](rng, m, n, lda)
	a := make([]T, len(orig))
	s := make([]R, max(min(m, n), 1))
	var u, v []T
	if uCols(jobu, m, n) > 0 {
		u = make([]T, max(m*ldu, 1))
	}
	if rows := vRows(jobv, m, n); rows > 0 {
		v = make([]T, max(rows*ldv, 1))
	}
	var info int32
	return &problem{
		flops: 4*float64(m)*float64(n)*float64(min(m, n)) + 8*float64(min(m, n))*float64(min(m, n))*float64(min(m, n)),
		lwork: func() (int, error) { return solver.GesvdBufferSize[T](h, jobu, jobv, m, n) },
		reset: func() { copy(a, orig) },
		run: func(work []byte) error {
			return solver.Gesvd(h, jobu, jobv, m, n, a, lda, s, u, ldu, v, ldv, work, nil, &info)
		},
		info:   single(&info),
		verify: func() (float64, bool) { return verifySingularValues(m, n, orig, lda, s[:min(m, n)]) },
	}
}

func sytrdProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, lda := args.N, args.LDA
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	orig := hermitian[T](rng, n, lda, 0)
	a := make([]T, len(orig))
	d, e := make([]R, max(n, 1)), make([]R, max(n-1, 1))
	tau := make([]T, max(n-1, 1))
	var info int32
	return &problem{
		flops:  4 * float64(n) * float64(n) * float64(n) / 3,
		lwork:  func() (int, error) { return solver.SytrdBufferSize(h, uplo, n, a, lda, d, e, tau) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Sytrd(h, uplo, n, a, lda, d, e, tau, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyTridiagonal(n, orig, lda, d, e) },
	}, nil
}

func syevdProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, lda := args.N, args.LDA
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	jobz, err := args.eigMode()
	if err != nil {
		return nil, err
	}
	orig := hermitian[T](rng, n, lda, 0)
	a := make([]T, len(orig))
	w := make([]R, max(n, 1))
	var info int32
	return &problem{
		flops:  eigenFlops(n, jobz),
		lwork:  func() (int, error) { return solver.SyevdBufferSize(h, jobz, uplo, n, a, lda, w) },
		reset:  func() { copy(a, orig) },
		run:    func(work []byte) error { return solver.Syevd(h, jobz, uplo, n, a, lda, w, work, &info) },
		info:   single(&info),
		verify: func() (float64, bool) { return verifyEigenvalues(n, orig, lda, w) },
	}, nil
}

func sygvdProblem[T solver.Scalar, R solver.Real](h *solver.Handle, args *Arguments, rng *rand.Rand) (*problem, error) {
	n, lda, ldb := args.N, args.LDA, args.LDB
	uplo, err := args.fill()
	if err != nil {
		return nil, err
	}
	jobz, err := args.eigMode()
	if err != nil {
		return nil, err
	}
	itype, err := args.eigType()
	if err != nil {
		return nil, err
	}
	origA := hermitian[T](rng, n, lda, 0)
	origB := hermitian[T](rng, n, ldb, float64(n))
	a, b := make([]T, len(origA)), make([]T, len(origB))
	w := make([]R, max(n, 1))
	var info int32
	return &problem{
		flops: eigenFlops(n, jobz) + float64(n)*float64(n)*float64(n),
		lwork: func() (int, error) {
			return solver.SygvdBufferSize(h, itype, jobz, uplo, n, a, lda, b, ldb, w)
		},
		reset: func() {
			copy(a, origA)
			copy(b, origB)
		},
		run: func(work []byte) error {
			return solver.Sygvd(h, itype, jobz, uplo, n, a, lda, b, ldb, w, work, &info)
		},
		info:   single(&info),
		verify: func() (float64, bool) { return verifyGeneralized(itype, n, origA, lda, origB, ldb, w) },
	}, nil
}

func luFlops(m, n int) float64 {
	fm, fn := float64(m), float64(n)
	k := float64(min(m, n))
	return fm*fn*k - (fm+fn)*k*k/2 + k*k*k/3
}

func qrFlops(m, n int) float64 {
	fm, fn := float64(m), float64(n)
	if m >= n {
		return 2*fm*fn*fn - 2*fn*fn*fn/3
	}
	return 2*fn*fm*fm - 2*fm*fm*fm/3
}

func orgqrFlops(m, n, k int) float64 {
	fm, fn, fk := float64(m), float64(n), float64(k)
	return 4*fm*fn*fk - 2*(fm+fn)*fk*fk + 4*fk*fk*fk/3
}

func eigenFlops(n int, jobz solver.EigMode) float64 {
	fn := float64(n)
	if jobz == solver.EigModeVector {
		return 4*fn*fn*fn/3 + 6*fn*fn*fn
	}
	return 4 * fn * fn * fn / 3
}
