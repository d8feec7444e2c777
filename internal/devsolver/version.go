package devsolver

// BLAS names the BLAS implementation gonum LAPACK runs on in this build.
func BLAS() string {
	return blasName
}
