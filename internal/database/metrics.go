package database

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DBMetrics содержит все метрики, связанные с базой данных
type DBMetrics struct {
	SuccessfulSavesTotal prometheus.Counter
	FailedSavesTotal     prometheus.Counter
	SaveDuration         prometheus.Histogram
	InitDuration         prometheus.Histogram

	TransactionErrorsTotal prometheus.Counter
	PurgedOrdersTotal      prometheus.Counter
	EnqueuedTotal          prometheus.Counter

	QueryDuration *prometheus.HistogramVec
	QueryErrors   *prometheus.CounterVec

	ConnectionEstablishDuration prometheus.Histogram
}

var (
	dbMetricsOnce   sync.Once
	globalDBMetrics *DBMetrics
)

// NewDBMetrics возвращает глобальный экземпляр метрик БД
func NewDBMetrics() *DBMetrics {
	dbMetricsOnce.Do(func() {
		globalDBMetrics = &DBMetrics{
			SuccessfulSavesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "db_successful_saves_total",
				Help: "Общее количество успешно сохраненных заказов",
			}),
			FailedSavesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "db_failed_saves_total",
				Help: "Общее количество заказов, которые не удалось сохранить",
			}),
			SaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "db_save_duration_seconds",
				Help:    "Время сохранения заказа со всеми строками в секундах",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			}),
			InitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "db_init_duration_seconds",
				Help:    "Время инициализации схемы в секундах",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			}),
			TransactionErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "db_transaction_errors_total",
				Help: "Общее количество ошибок транзакций в БД",
			}),
			PurgedOrdersTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "db_purged_orders_total",
				Help: "Количество заказов, удаленных как не относящиеся к каналу продаж",
			}),
			EnqueuedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "db_queue_enqueued_total",
				Help: "Количество новых элементов, добавленных в очередь",
			}),
			QueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "db_query_duration_seconds",
					Help:    "Время выполнения SQL-запросов в секундах, разбитое по типу операции",
					Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
				},
				[]string{"operation"},
			),
			QueryErrors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "db_query_errors_by_operation_total",
					Help: "Количество ошибок SQL-запросов, разбитое по типу операции",
				},
				[]string{"operation"},
			),
			ConnectionEstablishDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "db_connection_establish_duration_seconds",
				Help:    "Время установления подключения к БД в секундах",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			}),
		}
	})
	return globalDBMetrics
}
