package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Login(true)
		m.OTPVerification(false)
		m.KeyExchange(true)
		m.ContentDelivered(false)
		m.LicenseEvent("approved")
		m.LicenseVerification("valid")
		m.PlanChange("FREE")
	})
}

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Login(true)
	m.Login(false)
	m.Login(false)
	m.ContentDelivered(true)
	m.LicenseEvent("approved")

	require.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues(OutcomeSuccess)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues(OutcomeFailure)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.contentDeliveries.WithLabelValues("true")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.licenseEvents.WithLabelValues("approved")))
}

func TestSessionKeyGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	n := 3
	RegisterSessionKeyGauge(reg, func() int { return n })

	count, err := testutil.GatherAndCount(reg, "tollgate_session_keys")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Equal(t, 3.0, families[0].GetMetric()[0].GetGauge().GetValue())
}
