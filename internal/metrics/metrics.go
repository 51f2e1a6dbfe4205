package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsGeneratedTotal counts rendered reports by variant.
	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chakra",
		Name:      "reports_generated_total",
		Help:      "Total reports rendered by variant.",
	}, []string{"variant"})

	// ReportRenderDuration tracks PDF rendering latency.
	ReportRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chakra",
		Name:      "report_render_duration_seconds",
		Help:      "PDF rendering duration in seconds.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"variant"})

	// ReportFailuresTotal counts failed submissions by error type.
	ReportFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chakra",
		Name:      "report_failures_total",
		Help:      "Total failed report submissions by error type.",
	}, []string{"type"})

	// EmailsTotal counts email attempts by outcome (sent, failed, not_configured).
	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chakra",
		Name:      "emails_total",
		Help:      "Total report email attempts by outcome.",
	}, []string{"outcome"})

	// LogoFetchTotal counts logo download attempts by outcome.
	LogoFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chakra",
		Name:      "logo_fetch_total",
		Help:      "Total logo fetch attempts by outcome.",
	}, []string{"outcome"})
)

// RecordReportGenerated records a successful render.
func RecordReportGenerated(variant string, elapsed time.Duration) {
	ReportsGeneratedTotal.WithLabelValues(variant).Inc()
	ReportRenderDuration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// RecordReportFailure records a rejected or failed submission.
func RecordReportFailure(errorType string) {
	ReportFailuresTotal.WithLabelValues(errorType).Inc()
}

// RecordEmail records the outcome of an email attempt.
func RecordEmail(outcome string) {
	EmailsTotal.WithLabelValues(outcome).Inc()
}

// RecordLogoFetch records the outcome of a logo download.
func RecordLogoFetch(outcome string) {
	LogoFetchTotal.WithLabelValues(outcome).Inc()
}
