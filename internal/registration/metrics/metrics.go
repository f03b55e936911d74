package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for registration attempts.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

// Metrics holds Prometheus collectors for the registration workflow.
type Metrics struct {
	Registrations      *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	ConnectFailures    prometheus.Counter
	UpgradeFallbacks   prometheus.Counter
	RegisterLatency    prometheus.Histogram
}

// New registers registration collectors with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_registrations_total",
			Help: "Registration attempts, labeled by path taken and outcome",
		}, []string{"path", "outcome"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_validation_failures_total",
			Help: "Rejected registration requests, labeled by reason",
		}, []string{"reason"}),
		ConnectFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_db_connect_failures_total",
			Help: "Failed database connection attempts",
		}),
		UpgradeFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_upgrade_fallbacks_total",
			Help: "New-customer registrations that lost an email race and were recorded as upgrades",
		}),
		RegisterLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboarding_register_duration_seconds",
			Help:    "Latency of the registration workflow in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementRegistration(path, outcome string) {
	m.Registrations.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) IncrementValidationFailure(reason string) {
	m.ValidationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementConnectFailure() {
	m.ConnectFailures.Inc()
}

func (m *Metrics) IncrementUpgradeFallback() {
	m.UpgradeFallbacks.Inc()
}

func (m *Metrics) ObserveRegisterLatency(durationSeconds float64) {
	m.RegisterLatency.Observe(durationSeconds)
}
