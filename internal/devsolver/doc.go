// Package devsolver is a dense solver library with device-style memory
// management, implemented over gonum LAPACK.
//
// A Handle owns a pool of device memory. Routines borrow their scratch from
// that pool at call time. The pool can be sized automatically, fixed by the
// caller with SetMemorySize, or replaced for a single call with a caller
// workspace bound through SetWorkspace. Between StartSizeQuery and
// StopSizeQuery routines perform no computation and only record how many bytes
// they would borrow, so a caller can learn the exact requirement up front.
//
// Matrices are stored row-major. float64 runs natively; float32 is widened into
// float64 staging memory that is also borrowed from the pool. Complex
// precisions report StatusNotImplemented.
package devsolver
