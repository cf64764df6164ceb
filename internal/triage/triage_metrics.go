package triage

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem. A nil *Metrics
// records nothing.
type Metrics struct {
	ClassificationsTotal *prometheus.CounterVec
	ClassifyDuration     *prometheus.HistogramVec
	RuleHitsTotal        *prometheus.CounterVec
	FreeTextItems        prometheus.Histogram
	ValidationFailures   *prometheus.CounterVec
	NotificationsTotal   *prometheus.CounterVec
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voxa_classifications_total",
			Help: "Total classifications by tier and strategy.",
		}, []string{"tier", "strategy"}),
		ClassifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voxa_classify_duration_seconds",
			Help:    "Duration of a single classification in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12), // 10us .. ~20ms
		}, []string{"strategy"}),
		RuleHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voxa_rule_hits_total",
			Help: "Free-text keyword rules fired, by rule name.",
		}, []string{"rule"}),
		FreeTextItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxa_free_text_items",
			Help:    "Free-text items per submission.",
			Buckets: prometheus.LinearBuckets(0, 1, 11), // 0 .. 10
		}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voxa_validation_failures_total",
			Help: "Submissions rejected before classification, by field.",
		}, []string{"field"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voxa_notifications_total",
			Help: "Result notifications by outcome.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.ClassificationsTotal,
		m.ClassifyDuration,
		m.RuleHitsTotal,
		m.FreeTextItems,
		m.ValidationFailures,
		m.NotificationsTotal,
	)

	return m
}

func (m *Metrics) observeResult(r *Result, seconds float64) {
	if m == nil {
		return
	}
	m.ClassificationsTotal.WithLabelValues(string(r.Tier), r.Strategy).Inc()
	m.ClassifyDuration.WithLabelValues(r.Strategy).Observe(seconds)
	m.FreeTextItems.Observe(float64(len(r.FreeText)))
	for _, rule := range r.Rules {
		m.RuleHitsTotal.WithLabelValues(rule).Inc()
	}
}

func (m *Metrics) observeInvalid(field string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(field).Inc()
}

func (m *Metrics) observeNotification(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.NotificationsTotal.WithLabelValues(status).Inc()
}
