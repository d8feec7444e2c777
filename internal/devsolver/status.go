package devsolver

import "fmt"

// Status is the result code of every devsolver call.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidHandle
	StatusNotImplemented
	StatusInvalidPointer
	StatusInvalidSize
	StatusMemoryError
	StatusInternalError
	StatusPerfDegraded
	StatusSizeQueryMismatch
	StatusSizeIncreased
	StatusSizeUnchanged
	StatusInvalidValue
	StatusContinue
	StatusCheckNumerics
)

var statusNames = map[Status]string{
	StatusSuccess:           "success",
	StatusInvalidHandle:     "invalid_handle",
	StatusNotImplemented:    "not_implemented",
	StatusInvalidPointer:    "invalid_pointer",
	StatusInvalidSize:       "invalid_size",
	StatusMemoryError:       "memory_error",
	StatusInternalError:     "internal_error",
	StatusPerfDegraded:      "perf_degraded",
	StatusSizeQueryMismatch: "size_query_mismatch",
	StatusSizeIncreased:     "size_increased",
	StatusSizeUnchanged:     "size_unchanged",
	StatusInvalidValue:      "invalid_value",
	StatusContinue:          "continue",
	StatusCheckNumerics:     "check_numerics_fail",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Ok reports whether s is one of the success codes. A size query answers
// with StatusSizeIncreased or StatusSizeUnchanged instead of StatusSuccess.
func (s Status) Ok() bool {
	return s == StatusSuccess || s == StatusSizeIncreased || s == StatusSizeUnchanged
}
