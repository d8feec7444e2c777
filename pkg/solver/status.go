package solver

import (
	"errors"
	"fmt"
)

// Status is the outcome of a solver call. Every non-nil error returned by this
// package is a Status, so errors.Is(err, StatusInvalidValue) and StatusOf
// both work on it.
type Status int

const (
	StatusSuccess Status = iota
	StatusNotInitialized
	StatusAllocFailed
	StatusInvalidValue
	StatusMappingError
	StatusExecutionFailed
	StatusInternalError
	StatusNotSupported
	StatusArchMismatch
	StatusInvalidEnum
	StatusUnknown
)

var statusNames = [...]string{
	StatusSuccess:         "success",
	StatusNotInitialized:  "not_initialized",
	StatusAllocFailed:     "alloc_failed",
	StatusInvalidValue:    "invalid_value",
	StatusMappingError:    "mapping_error",
	StatusExecutionFailed: "execution_failed",
	StatusInternalError:   "internal_error",
	StatusNotSupported:    "not_supported",
	StatusArchMismatch:    "arch_mismatch",
	StatusInvalidEnum:     "invalid_enum",
	StatusUnknown:         "unknown",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) Error() string {
	return "densolver: " + s.String()
}

// StatusOf extracts the Status carried by err. A nil error is StatusSuccess and
// an error that carries no Status is StatusUnknown.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var st Status
	if errors.As(err, &st) {
		return st
	}
	return StatusUnknown
}

// asError converts st to the error form returned from the API, where success
// is nil.
func asError(st Status) error {
	if st == StatusSuccess {
		return nil
	}
	return st
}
