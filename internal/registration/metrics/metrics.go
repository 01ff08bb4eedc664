package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration pipeline.
type Metrics struct {
	// Submissions by result: accepted, rejected
	Submissions *prometheus.CounterVec

	// Side-effect outcomes by adapter and status
	SideEffects *prometheus.CounterVec

	SideEffectLatency *prometheus.HistogramVec
}

// New registers the registration metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "symposium_registration_submissions_total",
			Help: "Registration submissions by result",
		}, []string{"result"}),

		SideEffects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "symposium_registration_side_effects_total",
			Help: "Registration side effects by adapter and status",
		}, []string{"adapter", "status"}),

		SideEffectLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "symposium_registration_side_effect_duration_seconds",
			Help:    "Duration of registration side effects by adapter",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"adapter"}),
	}
}

// IncrementSubmission records an accepted or rejected submission.
func (m *Metrics) IncrementSubmission(result string) {
	if m != nil {
		m.Submissions.WithLabelValues(result).Inc()
	}
}

// ObserveSideEffect records one side-effect outcome.
func (m *Metrics) ObserveSideEffect(adapter, status string, d time.Duration) {
	if m != nil {
		m.SideEffects.WithLabelValues(adapter, status).Inc()
		m.SideEffectLatency.WithLabelValues(adapter).Observe(d.Seconds())
	}
}
