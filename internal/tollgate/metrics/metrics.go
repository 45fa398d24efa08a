// Package metrics exposes the Prometheus collectors for the tollgate service.
// A nil *Metrics is valid and records nothing, which keeps services usable in
// tests without a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tollgate"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Metrics struct {
	logins            *prometheus.CounterVec
	otpVerifications  *prometheus.CounterVec
	keyExchanges      *prometheus.CounterVec
	contentDeliveries *prometheus.CounterVec
	licenseEvents     *prometheus.CounterVec
	signatureChecks   *prometheus.CounterVec
	planChanges       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Credential checks by outcome.",
		}, []string{"outcome"}),
		otpVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "One-time code verifications by outcome.",
		}, []string{"outcome"}),
		keyExchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_exchanges_total",
			Help:      "Session key exchanges by outcome.",
		}, []string{"outcome"}),
		contentDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_deliveries_total",
			Help:      "Premium content responses by whether they were encrypted.",
		}, []string{"encrypted"}),
		licenseEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "license_events_total",
			Help:      "License lifecycle events by resulting status.",
		}, []string{"status"}),
		signatureChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "license_verifications_total",
			Help:      "License signature checks by result.",
		}, []string{"result"}),
		planChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_changes_total",
			Help:      "Applied plan changes by resulting plan.",
		}, []string{"plan"}),
	}

	reg.MustRegister(
		m.logins,
		m.otpVerifications,
		m.keyExchanges,
		m.contentDeliveries,
		m.licenseEvents,
		m.signatureChecks,
		m.planChanges,
	)
	return m
}

// RegisterSessionKeyGauge exposes the number of live session keys through fn.
func RegisterSessionKeyGauge(reg prometheus.Registerer, fn func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_keys",
		Help:      "Identities currently holding a session key.",
	}, func() float64 { return float64(fn()) }))
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

func (m *Metrics) Login(ok bool) {
	if m != nil {
		m.logins.WithLabelValues(outcome(ok)).Inc()
	}
}

func (m *Metrics) OTPVerification(ok bool) {
	if m != nil {
		m.otpVerifications.WithLabelValues(outcome(ok)).Inc()
	}
}

func (m *Metrics) KeyExchange(ok bool) {
	if m != nil {
		m.keyExchanges.WithLabelValues(outcome(ok)).Inc()
	}
}

func (m *Metrics) ContentDelivered(encrypted bool) {
	if m != nil {
		if encrypted {
			m.contentDeliveries.WithLabelValues("true").Inc()
		} else {
			m.contentDeliveries.WithLabelValues("false").Inc()
		}
	}
}

func (m *Metrics) LicenseEvent(status string) {
	if m != nil {
		m.licenseEvents.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) LicenseVerification(result string) {
	if m != nil {
		m.signatureChecks.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) PlanChange(plan string) {
	if m != nil {
		m.planChanges.WithLabelValues(plan).Inc()
	}
}
