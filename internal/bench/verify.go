package bench

import (
	"math"
	"slices"

	"github.com/fxnlabs/densolver/pkg/solver"
	"gonum.org/v1/gonum/mat"
)

// The checks below recompute a reference with gonum and return the relative
// error of the solver result. They only apply to real precisions.

func dense(rows, cols int, a []float64, ld int) *mat.Dense {
	d := mat.NewDense(max(rows, 1), max(cols, 1), nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d.Set(i, j, a[i*ld+j])
		}
	}
	return d
}

func sym(n int, a []float64, ld int) *mat.SymDense {
	s := mat.NewSymDense(max(n, 1), nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, a[i*ld+j])
		}
	}
	return s
}

func relative(diff, ref float64) float64 {
	if ref == 0 {
		return diff
	}
	return diff / ref
}

func diffNorm(got, want mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(got, want)
	return relative(mat.Norm(&d, 2), mat.Norm(want, 2))
}

func vectorError(got, want []float64) float64 {
	var diff, ref float64
	for i := range want {
		diff += (got[i] - want[i]) * (got[i] - want[i])
		ref += want[i] * want[i]
	}
	return relative(math.Sqrt(diff), math.Sqrt(ref))
}

func eigenvalues(s mat.Symmetric) ([]float64, bool) {
	var eig mat.EigenSym
	if !eig.Factorize(s, false) {
		return nil, false
	}
	return eig.Values(nil), true
}

// verifyLU compares P*A with L*U. ipiv is nil for an unpivoted factorization.
func verifyLU[T solver.Scalar](m, n int, orig, factor []T, lda int, ipiv []int32) (float64, bool) {
	a, ok := float64s(orig)
	f, _ := float64s(factor)
	if !ok || m == 0 || n == 0 {
		return 0, ok
	}
	k := min(m, n)
	l := mat.NewDense(m, k, nil)
	u := mat.NewDense(k, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			switch {
			case j < i && j < k:
				l.Set(i, j, f[i*lda+j])
			case i < k:
				u.Set(i, j, f[i*lda+j])
			}
		}
		if i < k {
			l.Set(i, i, 1)
		}
	}
	var lu mat.Dense
	lu.Mul(l, u)

	pa := dense(m, n, a, lda)
	for i, p := range ipiv {
		if r := int(p) - 1; r != i {
			ri, rp := mat.Row(nil, i, pa), mat.Row(nil, r, pa)
			pa.SetRow(i, rp)
			pa.SetRow(r, ri)
		}
	}
	return diffNorm(&lu, pa), true
}

// verifyCholesky compares L*L^T or U^T*U with A.
func verifyCholesky[T solver.Scalar](uplo solver.Fill, n int, orig, factor []T, lda int) (float64, bool) {
	a, ok := float64s(orig)
	f, _ := float64s(factor)
	if !ok || n == 0 {
		return 0, ok
	}
	t := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (uplo == solver.FillLower && j <= i) || (uplo == solver.FillUpper && j >= i) {
				t.Set(i, j, f[i*lda+j])
			}
		}
	}
	var got mat.Dense
	if uplo == solver.FillLower {
		got.Mul(t, t.T())
	} else {
		got.Mul(t.T(), t)
	}
	return diffNorm(&got, dense(n, n, a, lda)), true
}

// verifySolve returns the residual of op(A)*X = B relative to A and X.
func verifySolve[T solver.Scalar](trans solver.Operation, n, nrhs int, orig []T, lda int, rhs, x []T, ldb int) (float64, bool) {
	a, ok := float64s(orig)
	b, _ := float64s(rhs)
	xs, _ := float64s(x)
	if !ok || n == 0 || nrhs == 0 {
		return 0, ok
	}
	am := mat.Matrix(dense(n, n, a, lda))
	if trans != solver.OpN {
		am = am.T()
	}
	xm := dense(n, nrhs, xs, ldb)
	var ax, r mat.Dense
	ax.Mul(am, xm)
	r.Sub(&ax, dense(n, nrhs, b, ldb))
	return relative(mat.Norm(&r, 2), mat.Norm(am, 2)*mat.Norm(xm, 2)), true
}

// verifyR compares the R factor with gonum's up to the sign of each row.
func verifyR[T solver.Scalar](m, n int, orig, factor []T, lda int) (float64, bool) {
	a, ok := float64s(orig)
	f, _ := float64s(factor)
	if !ok || m == 0 || n == 0 {
		return 0, ok
	}
	var qr mat.QR
	qr.Factorize(dense(m, n, a, lda))
	var ref mat.Dense
	qr.RTo(&ref)

	k := min(m, n)
	got := mat.NewDense(k, n, nil)
	want := mat.NewDense(k, n, nil)
	for i := 0; i < k; i++ {
		for j := i; j < n; j++ {
			got.Set(i, j, math.Abs(f[i*lda+j]))
			want.Set(i, j, math.Abs(ref.At(i, j)))
		}
	}
	return diffNorm(got, want), true
}

// verifyOrthonormal measures how far the columns of the m x n matrix Q are
// from orthonormal.
func verifyOrthonormal[T solver.Scalar](m, n int, q []T, lda int) (float64, bool) {
	f, ok := float64s(q)
	if !ok || m == 0 || n == 0 {
		return 0, ok
	}
	qm := dense(m, n, f, lda)
	var qtq mat.Dense
	qtq.Mul(qm.T(), qm)
	var d mat.Dense
	d.Sub(&qtq, eye(n))
	return mat.Norm(&d, 2) / math.Sqrt(float64(n)), true
}

func eye(n int) *mat.DiagDense {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1
	}
	return mat.NewDiagDense(n, d)
}

// verifySingularValues compares s with the singular values of A.
func verifySingularValues[T solver.Scalar, R solver.Real](m, n int, orig []T, lda int, s []R) (float64, bool) {
	a, ok := float64s(orig)
	if !ok || m == 0 || n == 0 {
		return 0, ok
	}
	var svd mat.SVD
	if !svd.Factorize(dense(m, n, a, lda), mat.SVDNone) {
		return math.Inf(1), true
	}
	return vectorError(realFloat64s(s), svd.Values(nil)), true
}

// verifyBidiagonal compares the singular values of the bidiagonal form with
// those of A.
func verifyBidiagonal[T solver.Scalar, R solver.Real](m, n int, orig []T, lda int, d, e []R) (float64, bool) {
	k := min(m, n)
	if k == 0 {
		_, ok := float64s(orig)
		return 0, ok
	}
	b := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		b.Set(i, i, float64(d[i]))
		if i+1 < k {
			if m >= n {
				b.Set(i, i+1, float64(e[i]))
			} else {
				b.Set(i+1, i, float64(e[i]))
			}
		}
	}
	var svd mat.SVD
	if !svd.Factorize(b, mat.SVDNone) {
		return math.Inf(1), true
	}
	return verifySingularValues(m, n, orig, lda, svd.Values(nil))
}

// verifyEigenvalues compares w, in ascending order, with the eigenvalues of
// the symmetric A.
func verifyEigenvalues[T solver.Scalar, R solver.Real](n int, orig []T, lda int, w []R) (float64, bool) {
	a, ok := float64s(orig)
	if !ok || n == 0 {
		return 0, ok
	}
	want, ok := eigenvalues(sym(n, a, lda))
	if !ok {
		return math.Inf(1), true
	}
	return vectorError(realFloat64s(w[:n]), want), true
}

// verifyTridiagonal compares the eigenvalues of the tridiagonal form with
// those of A.
func verifyTridiagonal[T solver.Scalar, R solver.Real](n int, orig []T, lda int, d, e []R) (float64, bool) {
	if n == 0 {
		_, ok := float64s(orig)
		return 0, ok
	}
	t := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		t.SetSym(i, i, float64(d[i]))
		if i+1 < n {
			t.SetSym(i, i+1, float64(e[i]))
		}
	}
	got, ok := eigenvalues(t)
	if !ok {
		return math.Inf(1), true
	}
	return verifyEigenvalues(n, orig, lda, got)
}

// verifyGeneralized reduces the generalized problem to a standard one with
// the Cholesky factor of B and compares eigenvalues.
func verifyGeneralized[T solver.Scalar, R solver.Real](itype solver.EigType, n int, origA []T, lda int, origB []T, ldb int, w []R) (float64, bool) {
	a, ok := float64s(origA)
	b, _ := float64s(origB)
	if !ok || n == 0 {
		return 0, ok
	}
	var chol mat.Cholesky
	if !chol.Factorize(sym(n, b, ldb)) {
		return math.Inf(1), true
	}
	var l mat.TriDense
	chol.LTo(&l)

	var tmp, c mat.Dense
	am := sym(n, a, lda)
	if itype == solver.EigType1 {
		var linv mat.Dense
		if err := linv.Inverse(&l); err != nil {
			return math.Inf(1), true
		}
		tmp.Mul(&linv, am)
		c.Mul(&tmp, linv.T())
	} else {
		tmp.Mul(l.T(), am)
		c.Mul(&tmp, &l)
	}

	cs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cs.SetSym(i, j, (c.At(i, j)+c.At(j, i))/2)
		}
	}
	want, ok := eigenvalues(cs)
	if !ok {
		return math.Inf(1), true
	}
	got := realFloat64s(w[:n])
	slices.Sort(got)
	return vectorError(got, want), true
}
