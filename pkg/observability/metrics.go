package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the solver instrumentation.
type Metrics struct {
	// SolvesTotal counts solve calls by outcome ("converged", "failed",
	// "error", "cached").
	SolvesTotal *prometheus.CounterVec

	// InstancesTotal counts individual batch elements by outcome
	// ("converged", "failed").
	InstancesTotal *prometheus.CounterVec

	// SolveIterations observes Newton iterations of the winning candidate
	// per batch element.
	SolveIterations prometheus.Histogram

	// SolveAttempts observes multistart attempts consumed per batch element.
	SolveAttempts prometheus.Histogram
}

// NewMetrics creates and registers the solver metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SolvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atmodeller",
			Name:      "solves_total",
			Help:      "Solve calls by outcome.",
		}, []string{"outcome"}),
		InstancesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atmodeller",
			Name:      "instances_total",
			Help:      "Batch elements by convergence outcome.",
		}, []string{"outcome"}),
		SolveIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "atmodeller",
			Name:      "solve_iterations",
			Help:      "Newton iterations of the winning candidate per batch element.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 9),
		}),
		SolveAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "atmodeller",
			Name:      "solve_attempts",
			Help:      "Multistart attempts consumed per batch element.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 6),
		}),
	}
	reg.MustRegister(m.SolvesTotal, m.InstancesTotal, m.SolveIterations, m.SolveAttempts)
	return m
}

// ObserveInstance records one batch element outcome.
func (m *Metrics) ObserveInstance(converged bool, iterations, attempts int) {
	outcome := "failed"
	if converged {
		outcome = "converged"
	}
	m.InstancesTotal.WithLabelValues(outcome).Inc()
	m.SolveIterations.Observe(float64(iterations))
	m.SolveAttempts.Observe(float64(attempts))
}
