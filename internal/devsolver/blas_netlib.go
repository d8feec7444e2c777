//go:build netlib && cgo

package devsolver

// The netlib implementation routes the BLAS calls made by gonum LAPACK to the
// system BLAS (OpenBLAS on Linux, Accelerate on macOS).

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/netlib/blas/netlib"
)

const blasName = "netlib"

func init() {
	blas64.Use(netlib.Implementation{})
}
