//go:build !lapacke

package solver

import "github.com/fxnlabs/densolver/internal/devsolver"

// Backend names the library calls are forwarded to.
const Backend = "managed"

type nativeHandle struct {
	dev *devsolver.Handle
}

func newNative() (nativeHandle, error) {
	dev, st := devsolver.NewHandle()
	if st != devsolver.StatusSuccess {
		return nativeHandle{}, asError(fromDevStatus(st))
	}
	return nativeHandle{dev: dev}, nil
}

func (n nativeHandle) destroy() error {
	return asError(fromDevStatus(n.dev.Destroy()))
}

func (n nativeHandle) setStream(s Stream) error {
	return asError(fromDevStatus(n.dev.SetStream(devsolver.Stream(s))))
}

func toDevOperation(op Operation) (devsolver.Operation, error) {
	switch op {
	case OpN:
		return devsolver.OperationNone, nil
	case OpT:
		return devsolver.OperationTranspose, nil
	case OpC:
		return devsolver.OperationConjugateTranspose, nil
	}
	return 0, StatusInvalidEnum
}

func fromDevOperation(op devsolver.Operation) (Operation, error) {
	switch op {
	case devsolver.OperationNone:
		return OpN, nil
	case devsolver.OperationTranspose:
		return OpT, nil
	case devsolver.OperationConjugateTranspose:
		return OpC, nil
	}
	return 0, StatusInvalidEnum
}

func toDevFill(f Fill) (devsolver.Fill, error) {
	switch f {
	case FillUpper:
		return devsolver.FillUpper, nil
	case FillLower:
		return devsolver.FillLower, nil
	}
	return 0, StatusInvalidEnum
}

func fromDevFill(f devsolver.Fill) (Fill, error) {
	switch f {
	case devsolver.FillUpper:
		return FillUpper, nil
	case devsolver.FillLower:
		return FillLower, nil
	}
	return 0, StatusInvalidEnum
}

func toDevSide(s Side) (devsolver.Side, error) {
	switch s {
	case SideLeft:
		return devsolver.SideLeft, nil
	case SideRight:
		return devsolver.SideRight, nil
	}
	return 0, StatusInvalidEnum
}

func fromDevSide(s devsolver.Side) (Side, error) {
	switch s {
	case devsolver.SideLeft:
		return SideLeft, nil
	case devsolver.SideRight:
		return SideRight, nil
	}
	return 0, StatusInvalidEnum
}

// toDevStorev maps the side argument of orgbr: Left generates Q from
// column-wise reflectors, Right generates P^T from row-wise ones.
func toDevStorev(s Side) (devsolver.Storev, error) {
	switch s {
	case SideLeft:
		return devsolver.ColumnWise, nil
	case SideRight:
		return devsolver.RowWise, nil
	}
	return 0, StatusInvalidEnum
}

func fromDevStorev(s devsolver.Storev) (Side, error) {
	switch s {
	case devsolver.ColumnWise:
		return SideLeft, nil
	case devsolver.RowWise:
		return SideRight, nil
	}
	return 0, StatusInvalidEnum
}

func toDevEvect(m EigMode) (devsolver.Evect, error) {
	switch m {
	case EigModeNoVector:
		return devsolver.EvectNone, nil
	case EigModeVector:
		return devsolver.EvectOriginal, nil
	}
	return 0, StatusInvalidEnum
}

func fromDevEvect(e devsolver.Evect) (EigMode, error) {
	switch e {
	case devsolver.EvectNone:
		return EigModeNoVector, nil
	case devsolver.EvectOriginal:
		return EigModeVector, nil
	}
	return 0, StatusInvalidEnum
}

func toDevEform(t EigType) (devsolver.Eform, error) {
	switch t {
	case EigType1:
		return devsolver.EformAx, nil
	case EigType2:
		return devsolver.EformAbx, nil
	case EigType3:
		return devsolver.EformBax, nil
	}
	return 0, StatusInvalidEnum
}

func fromDevEform(e devsolver.Eform) (EigType, error) {
	switch e {
	case devsolver.EformAx:
		return EigType1, nil
	case devsolver.EformAbx:
		return EigType2, nil
	case devsolver.EformBax:
		return EigType3, nil
	}
	return 0, StatusInvalidEnum
}

// toDevSvect maps a gesvd job character. Unlike the enum families, an
// unknown character is an invalid value.
func toDevSvect(job byte) (devsolver.Svect, error) {
	switch job {
	case 'A', 'a':
		return devsolver.SvectAll, nil
	case 'S', 's':
		return devsolver.SvectSingular, nil
	case 'O', 'o':
		return devsolver.SvectOverwrite, nil
	case 'N', 'n':
		return devsolver.SvectNone, nil
	}
	return 0, StatusInvalidValue
}

func fromDevSvect(s devsolver.Svect) (byte, error) {
	switch s {
	case devsolver.SvectAll:
		return 'A', nil
	case devsolver.SvectSingular:
		return 'S', nil
	case devsolver.SvectOverwrite:
		return 'O', nil
	case devsolver.SvectNone:
		return 'N', nil
	}
	return 0, StatusInvalidValue
}

func fromDevStatus(st devsolver.Status) Status {
	switch st {
	case devsolver.StatusSuccess, devsolver.StatusSizeUnchanged, devsolver.StatusSizeIncreased:
		return StatusSuccess
	case devsolver.StatusInvalidHandle:
		return StatusNotInitialized
	case devsolver.StatusNotImplemented:
		return StatusNotSupported
	case devsolver.StatusInvalidPointer, devsolver.StatusInvalidSize, devsolver.StatusInvalidValue:
		return StatusInvalidValue
	case devsolver.StatusMemoryError:
		return StatusAllocFailed
	case devsolver.StatusInternalError:
		return StatusInternalError
	}
	return StatusUnknown
}

func devError(st devsolver.Status) error {
	return asError(fromDevStatus(st))
}

// querySize runs calls in one size-query window and returns the bytes the
// largest of them would borrow, plus aux bytes reserved by the caller.
func querySize(dev *devsolver.Handle, aux int, calls ...func() devsolver.Status) (int, error) {
	if st := dev.StartSizeQuery(); st != devsolver.StatusSuccess {
		return 0, devError(st)
	}
	defer func() {
		if dev.IsSizeQuery() {
			dev.StopSizeQuery()
		}
	}()
	status := devsolver.StatusSuccess
	for _, call := range calls {
		if st := call(); !st.Ok() && status.Ok() {
			status = st
		}
	}
	sz, st := dev.StopSizeQuery()
	if !status.Ok() {
		return 0, devError(status)
	}
	if st != devsolver.StatusSuccess {
		return 0, devError(st)
	}
	return checkSize(sz + devsolver.AlignedSize(aux))
}

// manageWorkspace makes sure the handle can provide lwork bytes. A pool with
// a fixed size is grown when it is too small; it is never shrunk. An
// automatic pool grows by itself.
func manageWorkspace(dev *devsolver.Handle, lwork int) error {
	if !dev.IsUserManagingMemory() || lwork <= dev.MemorySize() {
		return nil
	}
	return devError(dev.SetMemorySize(lwork))
}

// execute runs call with the caller's workspace bound to the handle, or with
// handle memory provisioned from query when work is nil. The first auxBytes
// of the workspace are carved off and passed to call.
func execute(dev *devsolver.Handle, work []byte, auxBytes int, query func() (int, error),
	call func(aux []byte) devsolver.Status) error {
	if work == nil {
		lwork, err := query()
		if err != nil {
			return err
		}
		if err := manageWorkspace(dev, lwork); err != nil {
			return err
		}
		var aux []byte
		if auxBytes > 0 {
			s, st := dev.Malloc(auxBytes)
			if st != devsolver.StatusSuccess {
				return StatusAllocFailed
			}
			defer s.Release()
			aux = s.Bytes(0)
		}
		return devError(call(aux))
	}

	off := devsolver.AlignedSize(auxBytes)
	if len(work) < off {
		return StatusAllocFailed
	}
	if st := dev.SetWorkspace(work[off:]); st != devsolver.StatusSuccess {
		return devError(st)
	}
	defer dev.SetWorkspace(nil)
	return devError(call(work[:auxBytes:auxBytes]))
}

func zeroInfo(st devsolver.Status, devInfo *int32) devsolver.Status {
	if st.Ok() && devInfo != nil {
		*devInfo = 0
	}
	return st
}
