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
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 自适应引擎业务指标
	ProfilesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adaptive_profiles_created_total",
			Help: "Total number of learning profiles created or rebuilt",
		},
	)

	RecommendationsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adaptive_recommendations_total",
			Help: "Total number of content recommendations served",
		},
		[]string{"content_type"},
	)

	OutcomesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adaptive_outcomes_recorded_total",
			Help: "Total number of learning outcomes recorded",
		},
	)

	ReclusterRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adaptive_recluster_runs_total",
			Help: "Total number of recluster attempts by result",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ProfilesCreated)
	prometheus.MustRegister(RecommendationsServed)
	prometheus.MustRegister(OutcomesRecorded)
	prometheus.MustRegister(ReclusterRuns)
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
