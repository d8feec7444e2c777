package devsolver

import "unsafe"

// Stats counts memory events on a handle.
type Stats struct {
	SizeQueries int // completed StartSizeQuery/StopSizeQuery pairs
	Resizes     int // times the handle-owned pool was reallocated
	PeakBytes   int // largest number of pool bytes borrowed at once
}

// Handle carries the stream and the device memory pool routines borrow
// scratch from. A Handle is not safe for concurrent use.
type Handle struct {
	stream Stream
	alive  bool

	owned     []byte
	fixed     bool
	workspace []byte
	top       int

	querying  bool
	queryHigh int

	stats Stats
}

// NewHandle returns a handle with an empty, automatically sized memory pool.
func NewHandle() (*Handle, Status) {
	return &Handle{alive: true}, StatusSuccess
}

// Destroy releases the pool. Any later call on h fails with
// StatusInvalidHandle.
func (h *Handle) Destroy() Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	h.alive = false
	h.owned = nil
	h.workspace = nil
	h.top = 0
	return StatusSuccess
}

func (h *Handle) check() Status {
	if h == nil || !h.alive {
		return StatusInvalidHandle
	}
	return StatusSuccess
}

func (h *Handle) SetStream(s Stream) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	h.stream = s
	return StatusSuccess
}

func (h *Handle) GetStream() (Stream, Status) {
	if st := h.check(); st != StatusSuccess {
		return 0, st
	}
	return h.stream, StatusSuccess
}

// StartSizeQuery puts h in size-query mode. Routines called until
// StopSizeQuery validate their sizes and record their memory requirement
// without touching data. Queries do not nest.
func (h *Handle) StartSizeQuery() Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if h.querying {
		return StatusSizeQueryMismatch
	}
	h.querying = true
	h.queryHigh = 0
	return StatusSuccess
}

// StopSizeQuery leaves size-query mode and returns the largest number of bytes
// any routine called during the query would have borrowed.
func (h *Handle) StopSizeQuery() (int, Status) {
	if st := h.check(); st != StatusSuccess {
		return 0, st
	}
	if !h.querying {
		return 0, StatusSizeQueryMismatch
	}
	h.querying = false
	h.stats.SizeQueries++
	return h.queryHigh, StatusSuccess
}

func (h *Handle) IsSizeQuery() bool {
	return h != nil && h.querying
}

// SetWorkspace binds buf as the memory routines borrow from, replacing the
// handle-owned pool until it is unbound with a nil or empty buf. buf must be
// 8-byte aligned.
func (h *Handle) SetWorkspace(buf []byte) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if h.top != 0 {
		return StatusInternalError
	}
	if len(buf) == 0 {
		h.workspace = nil
		return StatusSuccess
	}
	if uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%8 != 0 {
		return StatusInvalidPointer
	}
	h.workspace = buf
	return StatusSuccess
}

// SetMemorySize fixes the handle-owned pool at exactly n bytes. Routines that
// need more fail with StatusMemoryError instead of growing the pool. n == 0
// returns the handle to automatic sizing. Any bound workspace is unbound.
func (h *Handle) SetMemorySize(n int) Status {
	if st := h.check(); st != StatusSuccess {
		return st
	}
	if n < 0 {
		return StatusInvalidSize
	}
	if h.top != 0 {
		return StatusInternalError
	}
	h.workspace = nil
	if n == 0 {
		h.fixed = false
		h.owned = nil
		return StatusSuccess
	}
	if n != len(h.owned) {
		h.owned = make([]byte, n)
		h.stats.Resizes++
	}
	h.fixed = true
	return StatusSuccess
}

// MemorySize returns the bytes currently available to routines: the bound
// workspace if there is one, the handle-owned pool otherwise.
func (h *Handle) MemorySize() int {
	if h.check() != StatusSuccess {
		return 0
	}
	if h.workspace != nil {
		return len(h.workspace)
	}
	return len(h.owned)
}

// IsUserManagingMemory reports whether the pool size was fixed with
// SetMemorySize.
func (h *Handle) IsUserManagingMemory() bool {
	return h != nil && h.fixed
}

func (h *Handle) Stats() Stats {
	if h == nil {
		return Stats{}
	}
	return h.stats
}
