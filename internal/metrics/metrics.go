package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SolverCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "densolver_calls_total",
		Help: "The total number of solver calls by routine and returned status",
	}, []string{"routine", "status"})

	SizeQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "densolver_size_queries_total",
		Help: "The total number of workspace size queries by routine",
	}, []string{"routine"})

	WorkspaceBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "densolver_workspace_bytes",
		Help: "Workspace size in bytes reported by the last size query of each routine",
	}, []string{"routine"})

	// Bench metrics
	BenchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "densolver_bench_duration_ms",
		Help:    "Duration of one benchmarked solver execution in milliseconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 20), // 10us to ~5s
	}, []string{"function", "precision"})

	BenchGFLOPS = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "densolver_bench_gflops",
		Help: "Performance of the last benchmarked function in GFLOPS",
	})
)
