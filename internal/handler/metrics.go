package handler

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics метрики HTTP API
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

var (
	httpMetricsOnce   sync.Once
	globalHTTPMetrics *HTTPMetrics
)

// NewHTTPMetrics возвращает глобальный экземпляр метрик HTTP
func NewHTTPMetrics() *HTTPMetrics {
	httpMetricsOnce.Do(func() {
		globalHTTPMetrics = &HTTPMetrics{
			RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Количество HTTP запросов",
			}, []string{"route", "status"}),
			RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Время обработки HTTP запроса в секундах",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			}, []string{"route"}),
		}
	})
	return globalHTTPMetrics
}

// instrument middleware, считающий запросы по шаблону маршрута
func (m *HTTPMetrics) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
