package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// 业务指标
	OracleRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total number of AI oracle calls",
		},
		[]string{"operation", "status"},
	)

	ParseFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_parse_failures_total",
			Help: "Oracle responses that did not match the expected JSON contract",
		},
		[]string{"kind"},
	)

	TranscriptionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcription_requests_total",
			Help: "Total number of speech-to-text calls",
		},
		[]string{"status"},
	)

	TestEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_test_events_total",
			Help: "Interview test lifecycle events",
		},
		[]string{"event"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(OracleRequests)
	prometheus.MustRegister(ParseFailures)
	prometheus.MustRegister(TranscriptionRequests)
	prometheus.MustRegister(TestEvents)
}

// ObserveOracle 记录一次 AI 调用结果
func ObserveOracle(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	OracleRequests.WithLabelValues(operation, status).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
