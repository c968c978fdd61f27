package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics shared across modules. Per-module
// latency metrics live next to their services; counters that feed the stats
// endpoint live here so one registry handles both.
type Metrics struct {
	Registrations  *prometheus.CounterVec
	RiskChecks     *prometheus.CounterVec
	RiskScore      prometheus.Histogram
	Disclosures    *prometheus.CounterVec
	DiscloseTime   prometheus.Histogram
	AuditPublished *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anonid_registrations_total",
			Help: "Total registration calls by status (new, existing, rejected)",
		}, []string{"status"}),

		RiskChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anonid_risk_checks_total",
			Help: "Total risk analyses by resulting level",
		}, []string{"level"}),

		RiskScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "anonid_risk_score",
			Help:    "Distribution of computed risk scores",
			Buckets: []float64{0, 15, 30, 45, 60, 75, 90, 100},
		}),

		Disclosures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anonid_disclosures_total",
			Help: "Total disclosure evaluations by outcome (granted, denied, failed)",
		}, []string{"outcome"}),

		DiscloseTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "anonid_disclosure_duration_seconds",
			Help:    "Duration of disclosure evaluation including decryption",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		AuditPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anonid_audit_events_total",
			Help: "Total audit events by sink (store, kafka) and result",
		}, []string{"sink", "result"}),
	}
}

// IncrementRegistration records a registration outcome.
func (m *Metrics) IncrementRegistration(status string) {
	if m != nil {
		m.Registrations.WithLabelValues(status).Inc()
	}
}

// ObserveRiskCheck records a risk analysis outcome.
func (m *Metrics) ObserveRiskCheck(level string, score int) {
	if m != nil {
		m.RiskChecks.WithLabelValues(level).Inc()
		m.RiskScore.Observe(float64(score))
	}
}

// ObserveDisclosure records a disclosure outcome and its duration.
func (m *Metrics) ObserveDisclosure(outcome string, d time.Duration) {
	if m != nil {
		m.Disclosures.WithLabelValues(outcome).Inc()
		m.DiscloseTime.Observe(d.Seconds())
	}
}

// IncrementAuditEvent records an audit publish attempt.
func (m *Metrics) IncrementAuditEvent(sink, result string) {
	if m != nil {
		m.AuditPublished.WithLabelValues(sink, result).Inc()
	}
}
