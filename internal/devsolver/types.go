package devsolver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack"
)

// Scalar is the set of element types accepted by devsolver routines.
type Scalar interface {
	float32 | float64 | complex64 | complex128
}

// Real is the set of element types for real companion arrays such as
// singular values, eigenvalues and bidiagonal or tridiagonal entries.
type Real interface {
	float32 | float64
}

// Stream identifies the queue work is submitted to.
type Stream uintptr

type Operation int

const (
	OperationNone Operation = 111 + iota
	OperationTranspose
	OperationConjugateTranspose
)

type Fill int

const (
	FillUpper Fill = 121 + iota
	FillLower
	FillFull
)

type Side int

const (
	SideLeft Side = 141 + iota
	SideRight
	SideBoth
)

// Storev selects where Householder vectors are stored: column-wise vectors
// build Q, row-wise vectors build P.
type Storev int

const (
	ColumnWise Storev = 171 + iota
	RowWise
)

// Svect selects how many singular vectors gesvd computes.
type Svect int

const (
	SvectAll Svect = 191 + iota
	SvectSingular
	SvectOverwrite
	SvectNone
)

type Workmode int

const (
	OutOfPlace Workmode = 201 + iota
	InPlace
)

// Evect selects whether eigenvectors are computed.
type Evect int

const (
	EvectOriginal Evect = 211 + iota
	EvectTridiagonal
	EvectNone
)

// Eform is the form of a generalized eigenproblem: A*x = l*B*x, A*B*x = l*x
// or B*A*x = l*x.
type Eform int

const (
	EformAx Eform = 221 + iota
	EformAbx
	EformBax
)

func (o Operation) transpose() (blas.Transpose, bool) {
	switch o {
	case OperationNone:
		return blas.NoTrans, true
	case OperationTranspose:
		return blas.Trans, true
	case OperationConjugateTranspose:
		return blas.ConjTrans, true
	}
	return 0, false
}

func (f Fill) uplo() (blas.Uplo, bool) {
	switch f {
	case FillUpper:
		return blas.Upper, true
	case FillLower:
		return blas.Lower, true
	}
	return 0, false
}

func (s Side) side() (blas.Side, bool) {
	switch s {
	case SideLeft:
		return blas.Left, true
	case SideRight:
		return blas.Right, true
	}
	return 0, false
}

func (s Storev) genOrtho() (lapack.GenOrtho, bool) {
	switch s {
	case ColumnWise:
		return lapack.GenerateQ, true
	case RowWise:
		return lapack.GeneratePT, true
	}
	return 0, false
}

func (s Svect) job() (lapack.SVDJob, bool) {
	switch s {
	case SvectAll:
		return lapack.SVDAll, true
	case SvectSingular:
		return lapack.SVDStore, true
	case SvectOverwrite:
		return lapack.SVDOverwrite, true
	case SvectNone:
		return lapack.SVDNone, true
	}
	return 0, false
}

func isComplex[T Scalar]() bool {
	var z T
	switch any(z).(type) {
	case complex64, complex128:
		return true
	}
	return false
}

func isSingle[T Scalar]() bool {
	var z T
	_, ok := any(z).(float32)
	return ok
}
