//go:build !lapacke

package device

import (
	"github.com/fxnlabs/densolver/internal/devsolver"
	"github.com/fxnlabs/densolver/pkg/solver"
	"go.uber.org/zap"
)

// NewBackend returns the backend the solver was compiled against.
func NewBackend(logger *zap.Logger) Backend {
	logger.Debug("using managed backend", zap.String("blas", devsolver.BLAS()))
	return hostBackend{name: solver.Backend, blas: devsolver.BLAS()}
}
