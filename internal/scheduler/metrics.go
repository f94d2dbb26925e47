package scheduler

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics метрики обхода списка заказов
type Metrics struct {
	PagesFetchedTotal    prometheus.Counter
	QueuedTotal          prometheus.Counter
	SkippedExistingTotal prometheus.Counter
}

var (
	metricsOnce   sync.Once
	globalMetrics *Metrics
)

// NewMetrics возвращает глобальный экземпляр метрик планировщика
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			PagesFetchedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "scheduler_pages_fetched_total",
				Help: "Количество загруженных страниц списка заказов",
			}),
			QueuedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "scheduler_orders_queued_total",
				Help: "Количество заказов, поставленных в очередь",
			}),
			SkippedExistingTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "scheduler_skipped_existing_total",
				Help: "Количество пропущенных уже сохраненных заказов",
			}),
		}
	})
	return globalMetrics
}
