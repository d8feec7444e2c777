//go:build lapacke

package device

import (
	"github.com/fxnlabs/densolver/pkg/solver"
	"go.uber.org/zap"
)

// NewBackend returns the backend the solver was compiled against.
func NewBackend(logger *zap.Logger) Backend {
	logger.Debug("using lapacke backend")
	return hostBackend{name: solver.Backend, blas: "system"}
}
