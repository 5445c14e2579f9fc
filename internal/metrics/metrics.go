package metrics

import (
	"stepsurvey/internal/model"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the survey service
type Metrics struct {
	SessionsStarted prometheus.Counter
	Navigation      *prometheus.CounterVec

	Submissions     *prometheus.CounterVec
	SinkFailures    *prometheus.CounterVec
	WebhookDuration prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		SessionsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "survey_sessions_started_total",
				Help: "Total number of survey sessions started",
			},
		),
		Navigation: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survey_navigation_total",
				Help: "Next/back actions by direction and whether the cursor moved",
			},
			[]string{"direction", "moved"},
		),
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survey_submissions_total",
				Help: "Submission attempts by combined sink outcome",
			},
			[]string{"outcome"},
		),
		SinkFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survey_sink_failures_total",
				Help: "Failed sink writes by sink",
			},
			[]string{"sink"},
		),
		WebhookDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "survey_webhook_duration_seconds",
				Help:    "Duration of webhook POSTs",
				Buckets: []float64{.05, .1, .25, .5, 1, 2, 4, 6},
			},
		),
	}
}

// RecordSessionStart records a new session
func (m *Metrics) RecordSessionStart() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

// RecordNavigation records a next/back action
func (m *Metrics) RecordNavigation(direction string, moved bool) {
	if m == nil {
		return
	}
	m.Navigation.WithLabelValues(direction, strconv.FormatBool(moved)).Inc()
}

// RecordSubmission records the outcome of one submission attempt
func (m *Metrics) RecordSubmission(result model.SubmitResult) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(string(result.Outcome)).Inc()
	if !result.LocalOK {
		m.SinkFailures.WithLabelValues("local").Inc()
	}
	if !result.RemoteOK {
		m.SinkFailures.WithLabelValues("remote").Inc()
	}
}

// RecordWebhook records the duration of a webhook call
func (m *Metrics) RecordWebhook(d time.Duration) {
	if m == nil {
		return
	}
	m.WebhookDuration.Observe(d.Seconds())
}
