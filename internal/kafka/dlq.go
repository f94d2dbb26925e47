package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
)

// DLQProducer отправляет в DLQ элементы очереди, исчерпавшие попытки
type DLQProducer struct {
	writer  messageWriter
	topic   string
	metrics *KafkaMetrics
	now     func() time.Time
}

// NewDLQProducer создает DLQ producer
func NewDLQProducer(brokers []string, dlqTopic string) *DLQProducer {
	return newDLQProducer(newWriter(brokers, dlqTopic), dlqTopic)
}

func newDLQProducer(w messageWriter, topic string) *DLQProducer {
	return &DLQProducer{
		writer:  w,
		topic:   topic,
		metrics: NewKafkaMetrics(),
		now:     time.Now,
	}
}

// SendToDLQ отправляет сведения об элементе очереди в DLQ
func (d *DLQProducer) SendToDLQ(ctx context.Context, item models.QueueItem, cause error) error {
	msg := DLQMessage{
		QueueItemID: item.ID,
		VtexOrderID: item.VtexOrderID,
		Attempts:    item.Attempts,
		Timestamp:   d.now().UTC(),
	}
	if item.LastError != nil {
		msg.LastError = *item.LastError
	}
	if cause != nil {
		msg.Error = models.TruncateError(cause.Error())
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(item.VtexOrderID),
		Value: payload,
		Time:  d.now(),
	}); err != nil {
		d.metrics.PublishFailed.WithLabelValues(d.topic).Inc()
		return err
	}

	d.metrics.Published.WithLabelValues(d.topic).Inc()
	return nil
}

// Close закрывает DLQ producer
func (d *DLQProducer) Close() error {
	return d.writer.Close()
}

// NoopDeadLetter используется, когда Kafka не настроена
type NoopDeadLetter struct{}

func (NoopDeadLetter) SendToDLQ(context.Context, models.QueueItem, error) error { return nil }
func (NoopDeadLetter) Close() error                                           { return nil }

var (
	_ interfaces.DeadLetterSink = (*DLQProducer)(nil)
	_ interfaces.DeadLetterSink = NoopDeadLetter{}
)
