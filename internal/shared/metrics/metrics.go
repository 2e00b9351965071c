package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "consultant_docs"

// Upload outcomes.
const (
	OutcomeStored   = "stored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	registry = prometheus.NewRegistry()

	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Document uploads by document type and outcome.",
	}, []string{"doc_type", "outcome"})

	uploadBytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_bytes_total",
		Help:      "Bytes written to object storage by document type.",
	}, []string{"doc_type"})

	uploadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Time spent spooling and storing a document.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"outcome"})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		uploadsTotal,
		uploadBytesTotal,
		uploadDuration,
		httpRequestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveUpload records one upload attempt. bytes is only counted for stored
// documents. Callers pass "unknown" for document types they did not recognize.
func ObserveUpload(docType, outcome string, bytes int64, elapsed time.Duration) {
	if docType == "" {
		docType = "unknown"
	}
	uploadsTotal.WithLabelValues(docType, outcome).Inc()
	uploadDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == OutcomeStored && bytes > 0 {
		uploadBytesTotal.WithLabelValues(docType).Add(float64(bytes))
	}
}

// ObserveRequest counts a finished HTTP request. Unmatched routes share one
// label, as do non-standard methods.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(methodLabel(method), route, strconv.Itoa(status)).Inc()
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	default:
		return "other"
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}
