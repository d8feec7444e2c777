//go:build lapacke

package solver

// Backend names the library calls are forwarded to.
const Backend = "lapacke"

// LAPACKE runs on the calling goroutine and keeps no context. The stream is
// recorded by the Handle only.
type nativeHandle struct{}

func newNative() (nativeHandle, error) {
	return nativeHandle{}, nil
}

func (nativeHandle) destroy() error {
	return nil
}

func (nativeHandle) setStream(Stream) error {
	return nil
}

// outcome is what a LAPACKE call, or the argument and workspace checks
// ahead of it, ended with. The bindings report success as a bool, so a
// failing call after the checks is a numerical failure.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeFailed
	outcomeIllegalArg
	outcomeBadEnum
	outcomeNoMemory
)

// fromOutcome translates an outcome. A numerical failure is not an error: it
// is reported through devInfo.
func fromOutcome(o outcome) Status {
	switch o {
	case outcomeOK, outcomeFailed:
		return StatusSuccess
	case outcomeIllegalArg:
		return StatusInvalidValue
	case outcomeBadEnum:
		return StatusInvalidEnum
	case outcomeNoMemory:
		return StatusAllocFailed
	}
	return StatusUnknown
}

var (
	errIllegalArg = asError(fromOutcome(outcomeIllegalArg))
	errBadEnum    = asError(fromOutcome(outcomeBadEnum))
	errNoMemory   = asError(fromOutcome(outcomeNoMemory))
)

func toLapackOperation(op Operation) (byte, error) {
	switch op {
	case OpN:
		return 'N', nil
	case OpT:
		return 'T', nil
	case OpC:
		return 'C', nil
	}
	return 0, errBadEnum
}

func fromLapackOperation(t byte) (Operation, error) {
	switch t {
	case 'N':
		return OpN, nil
	case 'T':
		return OpT, nil
	case 'C':
		return OpC, nil
	}
	return 0, errBadEnum
}

func toLapackFill(f Fill) (byte, error) {
	switch f {
	case FillUpper:
		return 'U', nil
	case FillLower:
		return 'L', nil
	}
	return 0, errBadEnum
}

func fromLapackFill(u byte) (Fill, error) {
	switch u {
	case 'U':
		return FillUpper, nil
	case 'L':
		return FillLower, nil
	}
	return 0, errBadEnum
}

func toLapackSide(s Side) (byte, error) {
	switch s {
	case SideLeft:
		return 'L', nil
	case SideRight:
		return 'R', nil
	}
	return 0, errBadEnum
}

func fromLapackSide(s byte) (Side, error) {
	switch s {
	case 'L':
		return SideLeft, nil
	case 'R':
		return SideRight, nil
	}
	return 0, errBadEnum
}

// toLapackVect maps the side argument of orgbr to the vect character.
func toLapackVect(s Side) (byte, error) {
	switch s {
	case SideLeft:
		return 'Q', nil
	case SideRight:
		return 'P', nil
	}
	return 0, errBadEnum
}

func fromLapackVect(v byte) (Side, error) {
	switch v {
	case 'Q':
		return SideLeft, nil
	case 'P':
		return SideRight, nil
	}
	return 0, errBadEnum
}

func toLapackJobz(m EigMode) (byte, error) {
	switch m {
	case EigModeNoVector:
		return 'N', nil
	case EigModeVector:
		return 'V', nil
	}
	return 0, errBadEnum
}

func fromLapackJobz(j byte) (EigMode, error) {
	switch j {
	case 'N':
		return EigModeNoVector, nil
	case 'V':
		return EigModeVector, nil
	}
	return 0, errBadEnum
}

func toLapackItype(t EigType) (int, error) {
	switch t {
	case EigType1, EigType2, EigType3:
		return int(t-EigType1) + 1, nil
	}
	return 0, errBadEnum
}

func fromLapackItype(i int) (EigType, error) {
	if i < 1 || i > 3 {
		return 0, errBadEnum
	}
	return EigType1 + EigType(i-1), nil
}

// toLapackSVDJob keeps the job character of gesvd. Only the four documented
// characters are accepted.
func toLapackSVDJob(job byte) (byte, error) {
	switch job {
	case 'A', 'S', 'O', 'N':
		return job, nil
	case 'a', 's', 'o', 'n':
		return job - 'a' + 'A', nil
	}
	return 0, errIllegalArg
}

func fromLapackSVDJob(j byte) (byte, error) {
	switch j {
	case 'A', 'S', 'O', 'N':
		return j, nil
	}
	return 0, errIllegalArg
}

// needInfo rejects a missing devInfo for routines that report through it.
func needInfo(devInfo *int32) error {
	if devInfo == nil {
		return errIllegalArg
	}
	*devInfo = 0
	return nil
}

func setInfo(devInfo *int32, v int) {
	if devInfo != nil {
		*devInfo = int32(v)
	}
}

// diag returns the real part of a[i].
func diag[T Scalar](a []T, i int) float64 {
	switch v := any(a).(type) {
	case []float32:
		return float64(v[i])
	case []float64:
		return v[i]
	case []Complex:
		return float64(v[i].Re)
	case []DoubleComplex:
		return v[i].Re
	}
	return 0
}

func firstZeroDiag[T Scalar](k int, a []T, lda int) int {
	var z T
	for i := 0; i < k; i++ {
		if a[i*lda+i] == z {
			return i + 1
		}
	}
	return 0
}

// firstNonPositiveDiag locates the failing minor after an unsuccessful
// Cholesky factorization: LAPACK leaves the non-positive pivot on the
// diagonal and every earlier one positive.
func firstNonPositiveDiag[T Scalar](n int, a []T, lda int) int {
	for i := 0; i < n; i++ {
		if !(diag(a, i*lda+i) > 0) {
			return i + 1
		}
	}
	return 0
}

func unconverged[R Real](e []R) int {
	n := 0
	for _, v := range e {
		if v != 0 {
			n++
		}
	}
	return max(n, 1)
}
