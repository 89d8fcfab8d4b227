package bitkubapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyMetrics = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bitkub_api_latency_ms",
		Help:    "The histogram of latency returned by Bitkub API",
		Buckets: prometheus.ExponentialBuckets(20, 2, 9), // 20ms to 5120ms
	},
	[]string{"path", "status_code"},
)

var errorCodeMetrics = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bitkub_api_error_code_total",
		Help: "The number of responses carrying a non-zero Bitkub error code",
	},
	[]string{"path", "code"},
)

// statusCode 0 means the request failed before any response was received
func recordLatencyMetrics(req *http.Request, statusCode int, latency time.Duration) {
	latencyMetrics.With(prometheus.Labels{
		"path":        req.URL.Path,
		"status_code": strconv.Itoa(statusCode),
	}).Observe(float64(latency) / float64(time.Millisecond))
}

func recordErrorCodeMetrics(req *http.Request, err error) {
	code, ok := ErrorCodeOf(err)
	if !ok {
		return
	}

	errorCodeMetrics.With(prometheus.Labels{
		"path": req.URL.Path,
		"code": strconv.Itoa(int(code)),
	}).Inc()
}
