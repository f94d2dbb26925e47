package kafka

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исход обработки запроса на повторную загрузку
const (
	replayRequeued = "requeued"
	replayInvalid  = "invalid"
	replayFailed   = "failed"
)

// KafkaMetrics метрики событий, DLQ и запросов на повторную загрузку
type KafkaMetrics struct {
	// Публикация, по топику
	Published      *prometheus.CounterVec
	PublishFailed  *prometheus.CounterVec
	PublishRetries prometheus.Counter

	// Запросы на повторную загрузку
	ReplayRequests *prometheus.CounterVec
	ReplayDuration prometheus.Histogram
	FetchErrors    prometheus.Counter
}

var (
	kafkaMetricsOnce   sync.Once
	globalKafkaMetrics *KafkaMetrics
)

// NewKafkaMetrics возвращает глобальный экземпляр метрик Kafka
func NewKafkaMetrics() *KafkaMetrics {
	kafkaMetricsOnce.Do(func() {
		globalKafkaMetrics = &KafkaMetrics{
			Published: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "kafka_published_total",
				Help: "Количество опубликованных сообщений по топику",
			}, []string{"topic"}),
			PublishFailed: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "kafka_publish_failed_total",
				Help: "Количество неудачных попыток записи по топику",
			}, []string{"topic"}),
			PublishRetries: promauto.NewCounter(prometheus.CounterOpts{
				Name: "kafka_publish_retries_total",
				Help: "Количество повторных попыток публикации событий о заказах",
			}),
			ReplayRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "kafka_replay_requests_total",
				Help: "Запросы на повторную загрузку заказа по исходу",
			}, []string{"result"}),
			ReplayDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "kafka_replay_duration_seconds",
				Help:    "Время обработки запроса на повторную загрузку в секундах",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			}),
			FetchErrors: promauto.NewCounter(prometheus.CounterOpts{
				Name: "kafka_fetch_errors_total",
				Help: "Количество ошибок чтения из топика запросов",
			}),
		}
	})
	return globalKafkaMetrics
}
