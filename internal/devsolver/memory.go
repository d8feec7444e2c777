package devsolver

import (
	"math/bits"
	"unsafe"
)

// Borrowed chunks start on this boundary relative to the pool base.
const alignment = 64

const intBytes = bits.UintSize / 8

// AlignedSize rounds n up to the granularity the pool hands out memory in.
// A caller reserving space for its own arrays ahead of a routine call adds
// AlignedSize of each array to the size the routine reports.
func AlignedSize(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + alignment - 1) &^ (alignment - 1)
}

// Scratch is a set of chunks borrowed from a handle's pool. Chunks are
// released together, in reverse order of borrowing.
type Scratch struct {
	h      *Handle
	base   int
	chunks [][]byte
}

// borrow reserves one chunk per size. In size-query mode it records the
// requirement and returns StatusSizeIncreased or StatusSizeUnchanged with a
// nil Scratch, and the caller must return that status without computing.
func (h *Handle) borrow(sizes ...int) (*Scratch, Status) {
	total := 0
	for _, sz := range sizes {
		total += AlignedSize(sz)
	}
	if h.querying {
		if need := h.top + total; need > h.queryHigh {
			h.queryHigh = need
			return nil, StatusSizeIncreased
		}
		return nil, StatusSizeUnchanged
	}

	pool := h.owned
	if h.workspace != nil {
		pool = h.workspace
	}
	if h.top+total > len(pool) {
		if h.workspace != nil || h.fixed {
			return nil, StatusMemoryError
		}
		// Earlier chunks keep the old backing array alive, so growing does
		// not disturb outstanding borrows.
		h.owned = make([]byte, h.top+total)
		h.stats.Resizes++
		pool = h.owned
	}

	s := &Scratch{h: h, base: h.top, chunks: make([][]byte, len(sizes))}
	off := h.top
	for i, sz := range sizes {
		s.chunks[i] = pool[off : off+sz : off+sz]
		off += AlignedSize(sz)
	}
	h.top = off
	if h.top > h.stats.PeakBytes {
		h.stats.PeakBytes = h.top
	}
	return s, StatusSuccess
}

// Release returns the chunks to the pool.
func (s *Scratch) Release() {
	if s == nil {
		return
	}
	s.h.top = s.base
}

// Bytes returns chunk i as raw bytes.
func (s *Scratch) Bytes(i int) []byte {
	return s.chunks[i]
}

func (s *Scratch) f64(i int) []float64 {
	return view[float64](s.chunks[i])
}

func (s *Scratch) ints(i int) []int {
	return view[int](s.chunks[i])
}

// Malloc borrows one chunk per size from the pool for use by the caller. The
// chunks stay reserved across routine calls until Release. In size-query mode
// the requirement is recorded and a nil Scratch is returned with
// StatusSizeIncreased or StatusSizeUnchanged.
func (h *Handle) Malloc(sizes ...int) (*Scratch, Status) {
	if st := h.check(); st != StatusSuccess {
		return nil, st
	}
	for _, sz := range sizes {
		if sz < 0 {
			return nil, StatusInvalidSize
		}
	}
	return h.borrow(sizes...)
}

func view[E float64 | int](b []byte) []E {
	if len(b) == 0 {
		return nil
	}
	var z E
	return unsafe.Slice((*E)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/int(unsafe.Sizeof(z)))
}

func f64Bytes(n int) int {
	return 8 * max(n, 0)
}

func intsBytes(n int) int {
	return intBytes * max(n, 0)
}

// stageBytes is the float64 staging memory needed to widen n elements of T.
// float64 data is used in place and needs none.
func stageBytes[T Scalar](n int) int {
	if isSingle[T]() {
		return f64Bytes(n)
	}
	return 0
}

// stageMatBytes is the staging memory widenMat needs for a rows x cols matrix.
func stageMatBytes[T Scalar](rows, cols int) int {
	return stageBytes[T](max(rows, 0) * max(cols, 0))
}
