package queue

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics метрики обработчика очереди
type Metrics struct {
	ProcessedTotal    prometheus.Counter
	FailedTotal       prometheus.Counter
	SkippedTotal      prometheus.Counter
	DeadLetteredTotal prometheus.Counter
	ItemDuration      prometheus.Histogram
}

var (
	metricsOnce   sync.Once
	globalMetrics *Metrics
)

// NewMetrics возвращает глобальный экземпляр метрик очереди
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "queue_processed_total",
				Help: "Количество успешно обработанных элементов очереди",
			}),
			FailedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "queue_failed_total",
				Help: "Количество элементов очереди, завершившихся ошибкой",
			}),
			SkippedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "queue_skipped_total",
				Help: "Количество пропущенных элементов, исчерпавших попытки",
			}),
			DeadLetteredTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "queue_dead_lettered_total",
				Help: "Количество элементов, отправленных в DLQ",
			}),
			ItemDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "queue_item_duration_seconds",
				Help:    "Время обработки элемента очереди в секундах",
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			}),
		}
	})
	return globalMetrics
}
