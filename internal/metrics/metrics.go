package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
// A nil *Registry is valid and records nothing.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	reloadsTotal   *prometheus.CounterVec
	reloadDuration prometheus.Histogram
	fetchesTotal   *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	chartsLive     *prometheus.GaugeVec
	uiState        *prometheus.GaugeVec
}

// UI states exported on the evaldash_ui_state gauge.
var uiStates = []string{"loading", "error", "content"}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaldash_reloads_total",
			Help: "Total number of dashboard reload cycles by outcome",
		},
		[]string{"result"},
	)
	r.reloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evaldash_reload_duration_seconds",
			Help:    "Dashboard reload cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaldash_endpoint_requests_total",
			Help: "Total number of Metrics Service requests",
		},
		[]string{"endpoint", "status"},
	)
	r.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evaldash_endpoint_request_duration_seconds",
			Help:    "Metrics Service request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	r.chartsLive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evaldash_charts_live",
			Help: "Number of live chart instances per canvas",
		},
		[]string{"canvas"},
	)
	r.uiState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evaldash_ui_state",
			Help: "Current dashboard UI state (1 for the active state)",
		},
		[]string{"state"},
	)

	reg.MustRegister(r.reloadsTotal)
	reg.MustRegister(r.reloadDuration)
	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.chartsLive)
	reg.MustRegister(r.uiState)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	if r == nil {
		return
	}
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	if r == nil {
		return
	}
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	if r == nil {
		return
	}
	r.httpRequestsInFlight.Dec()
}

// RecordReload records a finished reload cycle. result is "success" or an error code.
func (r *Registry) RecordReload(result string, duration float64) {
	if r == nil {
		return
	}
	r.reloadsTotal.WithLabelValues(result).Inc()
	r.reloadDuration.Observe(duration)
}

// RecordFetch records a Metrics Service request. status 0 means the request
// never got a response.
func (r *Registry) RecordFetch(endpoint string, status int, duration float64) {
	if r == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.fetchesTotal.WithLabelValues(endpoint, label).Inc()
	r.fetchDuration.WithLabelValues(endpoint).Observe(duration)
}

// SetChartsLive sets the live chart count for a canvas.
func (r *Registry) SetChartsLive(canvas string, count int) {
	if r == nil {
		return
	}
	r.chartsLive.WithLabelValues(canvas).Set(float64(count))
}

// SetUIState marks state as the active UI state.
func (r *Registry) SetUIState(state string) {
	if r == nil {
		return
	}
	for _, s := range uiStates {
		v := 0.0
		if s == state {
			v = 1
		}
		r.uiState.WithLabelValues(s).Set(v)
	}
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
