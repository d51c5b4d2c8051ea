package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	registry = prometheus.NewRegistry()

	uploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resume_uploads_total",
		Help: "Total resume files accepted for analysis",
	})
	analysesDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyses_discarded_total",
		Help: "Total session analyses discarded",
	})
	rendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_renders_total",
		Help: "Total PDF report renders by result",
	}, []string{"result"})
	renderDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_render_duration_seconds",
		Help:    "PDF report render duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
	reportPages = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_pages",
		Help:    "Pages per rendered report",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})
	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Total requests rejected by the rate limiter",
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		uploadsTotal,
		analysesDiscarded,
		rendersTotal,
		renderDuration,
		reportPages,
		rateLimited,
	)
	for _, result := range []string{ResultOK, ResultError} {
		rendersTotal.WithLabelValues(result)
	}
}

// IncUploads counts an accepted upload.
func IncUploads() {
	uploadsTotal.Inc()
}

// IncDiscarded counts a discarded session analysis.
func IncDiscarded() {
	analysesDiscarded.Inc()
}

// IncRateLimited counts a rejected request.
func IncRateLimited() {
	rateLimited.Inc()
}

// ObserveRender records one render attempt. Pages are only observed for
// successful renders.
func ObserveRender(result string, elapsed time.Duration, pages int) {
	if elapsed < 0 {
		elapsed = 0
	}
	rendersTotal.WithLabelValues(result).Inc()
	renderDuration.Observe(elapsed.Seconds())
	if result == ResultOK && pages > 0 {
		reportPages.Observe(float64(pages))
	}
}

// Registry exposes the private registry for tests and the exporter.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}
