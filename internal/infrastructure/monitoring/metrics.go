package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Lifecycle metrics
	ScansTotal        prometheus.Counter
	FilesScanned      prometheus.Counter
	FilesSkipped      prometheus.Counter
	EntriesCreated    *prometheus.CounterVec
	StaleFilesRemoved prometheus.Counter

	// Registry metrics
	SlotsRegistered prometheus.Gauge

	// Response channel metrics
	ResponsesSent    prometheus.Counter
	ResponsesDropped prometheus.Counter
}

// NewMetrics creates a metrics collector registered on its own registry,
// so tests can construct it repeatedly without duplicate registration.
func NewMetrics() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "binmgr_http_requests_total",
			Help: "Total HTTP requests by method, path, and status",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "binmgr_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "binmgr_scans_total",
			Help: "Directory scans performed",
		}),
		FilesScanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "binmgr_files_scanned_total",
			Help: "Binary files whose header was read during scans",
		}),
		FilesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "binmgr_files_skipped_total",
			Help: "Files skipped during scans due to unreadable headers",
		}),
		EntriesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "binmgr_entries_created_total",
			Help: "Create-entry requests by terminal result code",
		}, []string{"result"}),
		StaleFilesRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "binmgr_stale_files_removed_total",
			Help: "Stale version files removed by garbage collection",
		}),

		SlotsRegistered: factory.NewGauge(prometheus.GaugeOpts{
			Name: "binmgr_slots_registered",
			Help: "Binary slots currently registered",
		}),

		ResponsesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "binmgr_responses_sent_total",
			Help: "Response messages delivered to requester channels",
		}),
		ResponsesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "binmgr_responses_dropped_total",
			Help: "Response messages dropped because a requester queue was full",
		}),
	}

	return m, reg
}

// Middleware records request counts and latency for every route.
func Middleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
