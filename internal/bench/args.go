package bench

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fxnlabs/densolver/pkg/solver"
)

var (
	ErrInvalidPrecision = errors.New("invalid precision")
	ErrUnknownFunction  = errors.New("unknown function")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Functions lists the routines Dispatch can run.
var Functions = []string{
	"getrf", "getrf_npvt", "getrs",
	"potrf", "potrf_batched",
	"geqrf", "orgqr", "ormqr",
	"orgbr", "orgtr", "ormtr",
	"gebrd", "gesvd",
	"sytrd", "syevd", "sygvd",
}

// Arguments describes one benchmark run. Leading dimensions and k left at
// zero are filled in by Normalize from the matrix shapes of the function.
type Arguments struct {
	Function  string
	Precision byte

	M, N, K, NRHS           int
	LDA, LDB, LDC, LDU, LDV int
	BatchCount              int

	Uplo, Side, Trans, Evect, Itype byte
	LeftSvect, RightSvect           byte

	Iters  int
	Perf   bool
	Verify bool
	Device int

	// Seed for the random inputs. Runs with the same seed see the same data.
	Seed uint64
}

// DefaultArguments returns the defaults of the benchmark client.
func DefaultArguments() Arguments {
	return Arguments{
		Function:   "getrf",
		Precision:  's',
		M:          128,
		N:          128,
		NRHS:       128,
		BatchCount: 1,
		Uplo:       'U',
		Side:       'L',
		Trans:      'N',
		Evect:      'N',
		Itype:      '1',
		LeftSvect:  'N',
		RightSvect: 'N',
		Iters:      10,
		Seed:       1,
	}
}

func (a *Arguments) ValidatePrecision() error {
	switch a.Precision {
	case 's', 'd', 'c', 'z':
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPrecision, a.Precision)
}

func (a *Arguments) ValidateFunction() error {
	if !slices.Contains(Functions, a.Function) {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, a.Function)
	}
	return nil
}

// Normalize validates the sizes and fills in missing k and leading
// dimensions with the smallest legal values. Storage is row-major, so a
// leading dimension is at least the column count.
func (a *Arguments) Normalize() error {
	if a.M < 0 || a.N < 0 || a.K < 0 || a.NRHS < 0 {
		return fmt.Errorf("%w: negative size", ErrInvalidArgument)
	}
	for _, ld := range []int{a.LDA, a.LDB, a.LDC, a.LDU, a.LDV} {
		if ld < 0 {
			return fmt.Errorf("%w: negative leading dimension", ErrInvalidArgument)
		}
	}
	if a.Iters < 1 {
		return fmt.Errorf("%w: iters must be positive", ErrInvalidArgument)
	}
	if a.BatchCount < 1 {
		a.BatchCount = 1
	}

	m, n := a.M, a.N
	if a.K == 0 {
		switch a.Function {
		case "orgqr":
			a.K = n
		case "ormqr":
			a.K = min(m, n)
		case "orgbr":
			if a.Side == 'R' {
				a.K = m
			} else {
				a.K = n
			}
		}
	}

	ld := func(p *int, cols int) {
		if *p == 0 {
			*p = max(1, cols)
		}
	}
	switch a.Function {
	case "getrs", "potrf", "potrf_batched", "orgtr", "sytrd", "syevd":
		ld(&a.LDA, n)
		ld(&a.LDB, a.NRHS)
	case "sygvd":
		ld(&a.LDA, n)
		ld(&a.LDB, n)
	case "ormqr":
		ld(&a.LDA, a.K)
		ld(&a.LDC, n)
	case "ormtr":
		if a.Side == 'R' {
			ld(&a.LDA, n)
		} else {
			ld(&a.LDA, m)
		}
		ld(&a.LDC, n)
	case "gesvd":
		ld(&a.LDA, n)
		ld(&a.LDU, uCols(a.LeftSvect, m, n))
		ld(&a.LDV, n)
	default:
		ld(&a.LDA, n)
	}
	return nil
}

func uCols(job byte, m, n int) int {
	switch job {
	case 'A', 'a':
		return m
	case 'S', 's':
		return min(m, n)
	}
	return 0
}

func vRows(job byte, m, n int) int {
	switch job {
	case 'A', 'a':
		return n
	case 'S', 's':
		return min(m, n)
	}
	return 0
}

func (a *Arguments) fill() (solver.Fill, error) {
	switch a.Uplo {
	case 'U', 'u':
		return solver.FillUpper, nil
	case 'L', 'l':
		return solver.FillLower, nil
	}
	return 0, fmt.Errorf("%w: uplo %q", ErrInvalidArgument, a.Uplo)
}

func (a *Arguments) side() (solver.Side, error) {
	switch a.Side {
	case 'L', 'l':
		return solver.SideLeft, nil
	case 'R', 'r':
		return solver.SideRight, nil
	}
	return 0, fmt.Errorf("%w: side %q", ErrInvalidArgument, a.Side)
}

func (a *Arguments) operation() (solver.Operation, error) {
	switch a.Trans {
	case 'N', 'n':
		return solver.OpN, nil
	case 'T', 't':
		return solver.OpT, nil
	case 'C', 'c':
		return solver.OpC, nil
	}
	return 0, fmt.Errorf("%w: trans %q", ErrInvalidArgument, a.Trans)
}

func (a *Arguments) eigMode() (solver.EigMode, error) {
	switch a.Evect {
	case 'N', 'n':
		return solver.EigModeNoVector, nil
	case 'V', 'v':
		return solver.EigModeVector, nil
	}
	return 0, fmt.Errorf("%w: evect %q", ErrInvalidArgument, a.Evect)
}

func (a *Arguments) eigType() (solver.EigType, error) {
	switch a.Itype {
	case '1':
		return solver.EigType1, nil
	case '2':
		return solver.EigType2, nil
	case '3':
		return solver.EigType3, nil
	}
	return 0, fmt.Errorf("%w: itype %q", ErrInvalidArgument, a.Itype)
}
