package solver

import "unsafe"

// Operation selects op(A).
type Operation int

const (
	OpN Operation = 111 + iota // A
	OpT                        // A^T
	OpC                        // A^H
)

// Fill selects the triangle of a symmetric or Hermitian matrix that is read.
type Fill int

const (
	FillUpper Fill = 121 + iota
	FillLower
)

// Side selects whether an orthogonal matrix is applied from the left or the
// right. For orgbr it selects Q (Left) or P^T (Right).
type Side int

const (
	SideLeft Side = 141 + iota
	SideRight
)

// EigMode selects whether eigenvectors are computed.
type EigMode int

const (
	EigModeNoVector EigMode = 201 + iota
	EigModeVector
)

// EigType is the form of a generalized eigenproblem.
type EigType int

const (
	EigType1 EigType = 211 + iota // A*x = lambda*B*x
	EigType2                      // A*B*x = lambda*x
	EigType3                      // B*A*x = lambda*x
)

// Complex is a single-precision complex number laid out like complex64.
type Complex struct {
	Re, Im float32
}

// DoubleComplex is a double-precision complex number laid out like complex128.
type DoubleComplex struct {
	Re, Im float64
}

// Scalar is the element type of matrices passed to the solver.
type Scalar interface {
	float32 | float64 | Complex | DoubleComplex
}

// ComplexScalar restricts Scalar to the complex precisions.
type ComplexScalar interface {
	Complex | DoubleComplex
}

// Real is the element type of real companion arrays: singular values,
// eigenvalues and the diagonals of bidiagonal or tridiagonal forms.
type Real interface {
	float32 | float64
}

// Stream identifies the queue solver work is submitted to.
type Stream uintptr

// reinterpret views x as a slice of E without copying. E must have the same
// size and layout as T.
func reinterpret[E, T any](x []T) []E {
	if x == nil {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(unsafe.SliceData(x))), len(x))
}

// elemSize returns the size in bytes of one T.
func elemSize[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// realMatches reports whether R is the real precision of T.
func realMatches[T Scalar, R Real]() bool {
	var t T
	var r R
	switch any(t).(type) {
	case float32, Complex:
		_, ok := any(r).(float32)
		return ok
	default:
		_, ok := any(r).(float64)
		return ok
	}
}

type kind int

const (
	kindSingle kind = iota
	kindDouble
	kindComplex
	kindDoubleComplex
)

func kindOf[T Scalar]() kind {
	var z T
	switch any(z).(type) {
	case float32:
		return kindSingle
	case float64:
		return kindDouble
	case Complex:
		return kindComplex
	}
	return kindDoubleComplex
}

// realSize returns the size in bytes of the real precision of T.
func realSize[T Scalar]() int {
	switch kindOf[T]() {
	case kindSingle, kindComplex:
		return 4
	}
	return 8
}

// byteView reinterprets a workspace byte buffer as elements of E.
func byteView[E any](b []byte) []E {
	if len(b) < elemSize[E]() {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/elemSize[E]())
}

// extent is the number of elements a rows x cols row-major matrix with row
// stride ld spans.
func extent(rows, cols, ld int) int {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return (rows-1)*ld + cols
}
