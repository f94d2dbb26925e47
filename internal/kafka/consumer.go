package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/retry"
)

// Задержка после ошибки чтения, удваивается до потолка
const (
	fetchBackoffMin = 500 * time.Millisecond
	fetchBackoffMax = 30 * time.Second
)

// messageReader часть kafka.Reader, используемая консюмером
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer читает запросы на повторную загрузку и возвращает заказы в очередь
type Consumer struct {
	reader  messageReader
	queue   interfaces.QueueStore
	policy  retry.Policy
	metrics *KafkaMetrics
	log     *zap.Logger

	fetchBackoff    time.Duration
	fetchBackoffMax time.Duration
}

// NewConsumer создает консюмер запросов на повторную загрузку
func NewConsumer(brokers []string, topic, groupID string, queue interfaces.QueueStore, log *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		CommitInterval: time.Second,
	})
	return newConsumer(reader, queue, log)
}

func newConsumer(r messageReader, queue interfaces.QueueStore, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{
		reader:          r,
		queue:           queue,
		policy:          retry.StorePolicy(),
		metrics:         NewKafkaMetrics(),
		log:             log.Named("kafka.consumer"),
		fetchBackoff:    fetchBackoffMin,
		fetchBackoffMax: fetchBackoffMax,
	}
}

// Consume обрабатывает сообщения до отмены ctx. Offset подтверждается только после
// успешной обработки; если запрос не удалось выполнить и после повторов, чтение
// останавливается с ошибкой и сообщение будет прочитано заново после перезапуска.
func (c *Consumer) Consume(ctx context.Context) error {
	backoff := c.fetchBackoff
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.metrics.FetchErrors.Inc()
			c.log.Warn("Ошибка при получении сообщения", zap.Duration("backoff", backoff), zap.Error(err))
			if !sleep(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, c.fetchBackoffMax)
			continue
		}
		backoff = c.fetchBackoff

		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("запрос на повторную загрузку (partition %d, offset %d): %w",
				msg.Partition, msg.Offset, err)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Warn("Ошибка commit сообщения", zap.Error(err))
		}
	}
}

// handle возвращает ошибку, если сообщение нельзя подтверждать.
// Невалидные сообщения подтверждаются, чтобы не зациклиться.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	start := time.Now()
	defer func() { c.metrics.ReplayDuration.Observe(time.Since(start).Seconds()) }()

	var req ReplayRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		c.metrics.ReplayRequests.WithLabelValues(replayInvalid).Inc()
		c.log.Warn("Ошибка декодирования сообщения", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}
	if err := validate.Struct(req); err != nil {
		c.metrics.ReplayRequests.WithLabelValues(replayInvalid).Inc()
		c.log.Warn("Невалидный запрос на повторную загрузку", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}

	err := retry.DoWithContext(ctx, c.policy, func(ctx context.Context) error {
		return c.queue.RequeueOrder(ctx, req.VtexOrderID)
	})
	if err != nil {
		c.metrics.ReplayRequests.WithLabelValues(replayFailed).Inc()
		c.log.Error("Не удалось вернуть заказ в очередь",
			zap.String("order_id", req.VtexOrderID), zap.Error(err))
		return err
	}
	c.metrics.ReplayRequests.WithLabelValues(replayRequeued).Inc()
	c.log.Info("Заказ возвращен в очередь", zap.String("order_id", req.VtexOrderID))
	return nil
}

// sleep ждет d; false, если ctx отменен раньше
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close закрывает Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
