// Package kafka публикует события о заказах, принимает запросы на повторную
// загрузку и отправляет исчерпавшие попытки элементы очереди в DLQ
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
	"order_ingest/internal/retry"
)

// messageWriter часть kafka.Writer, используемая продюсерами
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // Один заказ всегда в одну партицию
		WriteTimeout:           10 * time.Second,
		ReadTimeout:            10 * time.Second,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}
}

// Producer публикует события о записанных заказах
type Producer struct {
	writer  messageWriter
	topic   string
	metrics *KafkaMetrics
	log     *zap.Logger
	now     func() time.Time
}

// NewProducer создает продюсера событий
func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	return newProducer(newWriter(brokers, topic), topic, log)
}

func newProducer(w messageWriter, topic string, log *zap.Logger) *Producer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Producer{
		writer:  w,
		topic:   topic,
		metrics: NewKafkaMetrics(),
		log:     log.Named("kafka.producer"),
		now:     time.Now,
	}
}

// PublishOrderIngested публикует событие с ключом по внешнему идентификатору заказа
func (p *Producer) PublishOrderIngested(ctx context.Context, order *models.Order) error {
	if order == nil || order.VtexOrderID == "" {
		return fmt.Errorf("событие без идентификатора заказа")
	}

	payload, err := json.Marshal(NewOrderIngestedEvent(order, p.now()))
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(order.VtexOrderID),
		Value: payload,
		Time:  p.now(),
	}

	attempt := 0
	err = retry.DoWithContext(ctx, retry.PublishPolicy(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			p.metrics.PublishRetries.Inc()
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.metrics.PublishFailed.WithLabelValues(p.topic).Inc()
			p.log.Warn("Ошибка отправки события в Kafka",
				zap.String("order_id", order.VtexOrderID), zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		p.metrics.Published.WithLabelValues(p.topic).Inc()
		return nil
	})
	if err != nil {
		return fmt.Errorf("публикация события %s в %s: %w", order.VtexOrderID, p.topic, err)
	}
	return nil
}

// Close закрывает writer Kafka
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka не настроена
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderIngested(context.Context, *models.Order) error { return nil }
func (NoopPublisher) Close() error                                                { return nil }

var (
	_ interfaces.EventPublisher = (*Producer)(nil)
	_ interfaces.EventPublisher = NoopPublisher{}
)
