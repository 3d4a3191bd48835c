package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hireflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AdmissionDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_admission_decisions_total",
			Help: "Quota gate decisions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	QuotaIncrementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_quota_increments_total",
			Help: "Recorded usage increments by resource and pool",
		},
		[]string{"resource", "source"},
	)

	PeriodRolloversTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hireflow_period_rollovers_total",
			Help: "One-time plan period resets applied",
		},
	)

	JobsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hireflow_jobs_created_total",
			Help: "Job postings created",
		},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_analyses_total",
			Help: "CV analyses and match executions run",
		},
		[]string{"kind"},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_subscriptions_created_total",
			Help: "Subscription records created by plan",
		},
		[]string{"plan"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hireflow_email_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAdmission(action, outcome string) {
	AdmissionDecisionsTotal.WithLabelValues(action, outcome).Inc()
}

func RecordQuotaIncrement(resource, source string) {
	QuotaIncrementsTotal.WithLabelValues(resource, source).Inc()
}

func RecordPeriodRollover() {
	PeriodRolloversTotal.Inc()
}

func RecordJobCreated() {
	JobsCreatedTotal.Inc()
}

func RecordAnalysis(kind string) {
	AnalysesTotal.WithLabelValues(kind).Inc()
}

func RecordSubscription(planID string) {
	SubscriptionsCreatedTotal.WithLabelValues(planID).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}
