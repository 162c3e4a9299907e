package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records a completed request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	route = normalizeLabel(route)
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ExportMetrics records outcomes of transfer-order workbook generation.
type ExportMetrics struct {
	generated *prometheus.CounterVec
	empty     *prometheus.CounterVec
	rows      *prometheus.HistogramVec
}

// NewExportMetrics registers the export metrics on the provided registerer.
func NewExportMetrics(reg prometheus.Registerer) *ExportMetrics {
	if reg == nil {
		return &ExportMetrics{}
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "export_workbooks_total",
		Help: "Transfer-order workbooks generated, by chain.",
	}, []string{"chain"})
	empty := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "export_empty_total",
		Help: "Export requests that produced no rows, by chain.",
	}, []string{"chain"})
	rows := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "export_rows",
		Help:    "Number of rows per generated workbook.",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
	}, []string{"chain"})
	reg.MustRegister(generated, empty, rows)
	return &ExportMetrics{
		generated: generated,
		empty:     empty,
		rows:      rows,
	}
}

// IncGenerated counts a successful workbook and records its row count.
func (e *ExportMetrics) IncGenerated(chain string, rowCount int) {
	if e == nil || e.generated == nil {
		return
	}
	chain = normalizeLabel(chain)
	e.generated.WithLabelValues(chain).Inc()
	e.rows.WithLabelValues(chain).Observe(float64(rowCount))
}

// IncEmpty counts an export request that matched no rows.
func (e *ExportMetrics) IncEmpty(chain string) {
	if e == nil || e.empty == nil {
		return
	}
	e.empty.WithLabelValues(normalizeLabel(chain)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
