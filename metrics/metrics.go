// Package metrics holds the Prometheus instruments for vocabulary loading
// and graph resolution.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks requests, redirects and statement throughput of vocabulary
// loads, plus resolver warnings. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests           *prometheus.CounterVec
	Redirects          prometheus.Counter
	BytesRead          prometheus.Counter
	StatementsAccepted prometheus.Counter
	StatementsDropped  prometheus.Counter
	CommentWarnings    prometheus.Counter
	LoadDuration       prometheus.Histogram
}

// New registers all instruments on reg. A nil reg uses a fresh private
// registry so repeated calls in tests never collide.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schemagraph_http_requests_total",
			Help: "Vocabulary HTTP requests by status class",
		}, []string{"status"}),
		Redirects: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemagraph_http_redirects_total",
			Help: "Redirect responses followed while loading vocabularies",
		}),
		BytesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemagraph_body_bytes_total",
			Help: "Response body bytes consumed by the decoder",
		}),
		StatementsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemagraph_statements_accepted_total",
			Help: "Statements that passed the vocabulary filter",
		}),
		StatementsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemagraph_statements_dropped_total",
			Help: "Statements silently dropped by the vocabulary filter",
		}),
		CommentWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemagraph_duplicate_comment_warnings_total",
			Help: "Topics that carried more than one comment",
		}),
		LoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "schemagraph_load_duration_seconds",
			Help:    "Duration of a complete vocabulary load",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// IncRequest records one response, labelled by status class ("2xx", "3xx", ...).
func (m *Metrics) IncRequest(code int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(statusClass(code)).Inc()
}

// IncRedirect records one followed redirect.
func (m *Metrics) IncRedirect() {
	if m == nil {
		return
	}
	m.Redirects.Inc()
}

// AddBytes records body bytes read.
func (m *Metrics) AddBytes(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.BytesRead.Add(float64(n))
}

// AddStatements records filter outcomes for a finished or aborted load.
func (m *Metrics) AddStatements(accepted, dropped int) {
	if m == nil {
		return
	}
	m.StatementsAccepted.Add(float64(accepted))
	m.StatementsDropped.Add(float64(dropped))
}

// IncCommentWarning records one duplicate-comment warning.
func (m *Metrics) IncCommentWarning() {
	if m == nil {
		return
	}
	m.CommentWarnings.Inc()
}

// ObserveLoad records the duration of a load.
// Call with time.Now() at the start of the load.
func (m *Metrics) ObserveLoad(start time.Time) {
	if m == nil {
		return
	}
	m.LoadDuration.Observe(time.Since(start).Seconds())
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "other"
	}
}
