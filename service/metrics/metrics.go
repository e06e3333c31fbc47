package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
// It is passed explicitly to every component that records metrics; a nil
// *Metrics is accepted everywhere and disables recording.
type Metrics struct {
	// Explorer API metrics
	apiCallsTotal       *prometheus.CounterVec
	apiCallDuration     *prometheus.HistogramVec
	apiUnsuccessful     *prometheus.CounterVec
	apiItemsPerResponse *prometheus.HistogramVec

	// Section loading metrics
	sectionLoadsTotal   *prometheus.CounterVec
	staleResponsesTotal *prometheus.CounterVec

	// HTTP metrics
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		apiCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_api_calls_total",
				Help: "Total number of explorer API calls by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		apiCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_api_call_duration_seconds",
				Help:    "Duration of explorer API calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"endpoint"},
		),
		apiUnsuccessful: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_api_unsuccessful_total",
				Help: "Total number of well-formed API responses carrying success=false",
			},
			[]string{"endpoint"},
		),
		apiItemsPerResponse: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_api_items_per_response",
				Help:    "Number of list items returned per explorer API response",
				Buckets: []float64{0, 1, 5, 10, 20, 30, 50, 100},
			},
			[]string{"endpoint"},
		),

		sectionLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "section_loads_total",
				Help: "Total number of page section loads by section and outcome",
			},
			[]string{"section", "outcome"},
		),
		staleResponsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "section_stale_responses_total",
				Help: "Responses discarded because a newer load or close superseded them",
			},
			[]string{"section"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"handler", "method", "status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"handler", "method", "status"},
		),
	}
}

// Explorer API metric helpers

// RecordAPICall records an explorer API call with duration.
func (m *Metrics) RecordAPICall(endpoint, status string, duration float64) {
	m.apiCallsTotal.WithLabelValues(endpoint, status).Inc()
	m.apiCallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordUnsuccessful records a response whose envelope reported success=false.
func (m *Metrics) RecordUnsuccessful(endpoint string) {
	m.apiUnsuccessful.WithLabelValues(endpoint).Inc()
}

// RecordItems records how many list items an endpoint returned.
func (m *Metrics) RecordItems(endpoint string, count int) {
	m.apiItemsPerResponse.WithLabelValues(endpoint).Observe(float64(count))
}

// Section metric helpers

// RecordSectionLoad records the outcome of a section load ("ok", "error").
func (m *Metrics) RecordSectionLoad(section, outcome string) {
	m.sectionLoadsTotal.WithLabelValues(section, outcome).Inc()
}

// RecordStaleResponse records a response discarded as stale.
func (m *Metrics) RecordStaleResponse(section string) {
	m.staleResponsesTotal.WithLabelValues(section).Inc()
}

// HTTP metric helpers

// RecordHTTPRequest records an HTTP request with duration.
func (m *Metrics) RecordHTTPRequest(handler, method string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)
	m.httpRequestDuration.WithLabelValues(handler, method, status).Observe(duration)
	m.httpRequestsTotal.WithLabelValues(handler, method, status).Inc()
}

// Helper functions

func statusCodeToString(code int) string {
	// Group status codes by class
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
