package vtex

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics метрики запросов к VTEX
type ClientMetrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

var (
	metricsOnce   sync.Once
	globalMetrics *ClientMetrics
)

// NewClientMetrics возвращает глобальный экземпляр метрик клиента
func NewClientMetrics() *ClientMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &ClientMetrics{
			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "vtex_request_duration_seconds",
					Help:    "Время выполнения запросов к VTEX в секундах",
					Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
				},
				[]string{"operation"},
			),
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "vtex_requests_total",
					Help: "Количество запросов к VTEX по операции и классу ответа",
				},
				[]string{"operation", "code"},
			),
		}
	})
	return globalMetrics
}
