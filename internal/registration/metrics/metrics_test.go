package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementRegistration("new_customer", OutcomeSuccess)
	m.IncrementRegistration("new_customer", OutcomeSuccess)
	m.IncrementValidationFailure("invalid_phone")
	m.IncrementConnectFailure()
	m.IncrementUpgradeFallback()
	m.ObserveRegisterLatency(0.05)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Registrations.WithLabelValues("new_customer", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("invalid_phone")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ConnectFailures), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.UpgradeFallbacks), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RegisterLatency))
}

func TestNewOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
