package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "social",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Requests currently being served",
	})

	// route 取 gin 注册的模板路径, 避免 id 撑爆标签
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "social",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests by route and status class",
	}, []string{"method", "route", "class"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "social",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Request latency by route",
		Buckets:   []float64{0.005, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})
)

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		begin := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).Inc()
		requestLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(begin).Seconds())
	}
}

// statusClass 404 -> "4xx"
func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
