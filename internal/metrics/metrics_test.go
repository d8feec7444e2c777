package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSolverMetrics(t *testing.T) {
	t.Run("SolverCalls", func(t *testing.T) {
		before := testutil.ToFloat64(SolverCalls.WithLabelValues("getrf", "success"))
		SolverCalls.WithLabelValues("getrf", "success").Inc()
		SolverCalls.WithLabelValues("getrf", "success").Inc()
		SolverCalls.WithLabelValues("getrf", "invalid_value").Inc()

		assert.Equal(t, before+2, testutil.ToFloat64(SolverCalls.WithLabelValues("getrf", "success")))
		assert.GreaterOrEqual(t, testutil.ToFloat64(SolverCalls.WithLabelValues("getrf", "invalid_value")), float64(1))
	})

	t.Run("SizeQueries", func(t *testing.T) {
		before := testutil.ToFloat64(SizeQueries.WithLabelValues("potrf"))
		SizeQueries.WithLabelValues("potrf").Inc()
		assert.Equal(t, before+1, testutil.ToFloat64(SizeQueries.WithLabelValues("potrf")))
	})

	t.Run("WorkspaceBytes", func(t *testing.T) {
		WorkspaceBytes.WithLabelValues("geqrf").Set(4096)
		assert.Equal(t, float64(4096), testutil.ToFloat64(WorkspaceBytes.WithLabelValues("geqrf")))
	})
}

func TestBenchMetrics(t *testing.T) {
	t.Run("BenchDuration", func(t *testing.T) {
		assert.NotPanics(t, func() {
			BenchDuration.WithLabelValues("getrf", "s").Observe(1.5)
			BenchDuration.WithLabelValues("getrf", "d").Observe(0.25)
		})
		assert.Equal(t, 2, testutil.CollectAndCount(BenchDuration))
	})

	t.Run("BenchGFLOPS", func(t *testing.T) {
		BenchGFLOPS.Set(12.5)
		assert.Equal(t, 12.5, testutil.ToFloat64(BenchGFLOPS))
	})
}
