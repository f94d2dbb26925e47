// Package queue разбирает очередь заказов: загружает каждый заказ и удаляет
// элемент при успехе либо помечает его failed с текстом ошибки
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
)

// Значения по умолчанию
const (
	DefaultBatch       = 50
	DefaultMaxAttempts = 3
)

// Config параметры обработчика очереди
type Config struct {
	Batch       int // Размер выборки по умолчанию
	Concurrency int
	MaxAttempts int
}

// Options параметры запуска
type Options struct {
	Limit         int  // Размер выборки; <= 0: Config.Batch
	IncludeFailed bool // Повторять элементы в статусе failed
}

// Stats итог запуска
type Stats struct {
	Passes    int
	Processed int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// Processor обработчик очереди
type Processor struct {
	queue     interfaces.QueueStore
	processor interfaces.OrderProcessor
	dlq       interfaces.DeadLetterSink // nil: без DLQ
	cfg       Config
	metrics   *Metrics
	log       *zap.Logger
}

// New создает обработчик очереди. dlq может быть nil.
func New(queue interfaces.QueueStore, processor interfaces.OrderProcessor, dlq interfaces.DeadLetterSink,
	cfg Config, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Batch <= 0 {
		cfg.Batch = DefaultBatch
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Processor{
		queue:     queue,
		processor: processor,
		dlq:       dlq,
		cfg:       cfg,
		metrics:   NewMetrics(),
		log:       log.Named("queue"),
	}
}

// Run выбирает пачки элементов в порядке создания, пока очередь не опустеет,
// пачка не окажется целиком пропущенной или не будет отменен ctx.
// Начатые элементы дорабатываются и после отмены.
func (p *Processor) Run(ctx context.Context, opts Options) (Stats, error) {
	start := time.Now()
	limit := opts.Limit
	if limit <= 0 {
		limit = p.cfg.Batch
	}

	var stats Stats
	var processed, failed, skipped atomic.Int64
	finish := func(err error) (Stats, error) {
		stats.Processed = int(processed.Load())
		stats.Failed = int(failed.Load())
		stats.Skipped = int(skipped.Load())
		stats.Duration = time.Since(start)
		return stats, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		batch, err := p.queue.FetchQueueBatch(ctx, limit, opts.IncludeFailed, p.cfg.MaxAttempts)
		if err != nil {
			return finish(fmt.Errorf("выборка очереди: %w", err))
		}
		if len(batch) == 0 {
			p.log.Info("Очередь пуста")
			return finish(nil)
		}
		stats.Passes++
		p.log.Info("Обработка пачки очереди", zap.Int("pass", stats.Passes), zap.Int("items", len(batch)))

		var passSkipped atomic.Int64
		g := &errgroup.Group{}
		g.SetLimit(p.cfg.Concurrency)
		for _, item := range batch {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				switch p.handle(ctx, item) {
				case outcomeProcessed:
					processed.Add(1)
				case outcomeFailed:
					failed.Add(1)
				case outcomeSkipped:
					skipped.Add(1)
					passSkipped.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		if int(passSkipped.Load()) == len(batch) {
			p.log.Warn("Все элементы пачки исчерпали попытки, остановка", zap.Int("items", len(batch)))
			return finish(nil)
		}
	}
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeFailed
	outcomeSkipped
)

// handle обрабатывает один элемент. Запись состояния очереди выполняется
// с неотменяемым контекстом, чтобы остановка не оставляла элементы в processing.
func (p *Processor) handle(ctx context.Context, item models.QueueItem) outcome {
	log := p.log.With(zap.String("order_id", item.VtexOrderID), zap.Int("attempts", item.Attempts))

	// Выборка уже отсекает такие элементы; попытки мог увеличить другой обработчик
	if item.Attempts >= p.cfg.MaxAttempts {
		log.Warn("Элемент исчерпал попытки, пропуск")
		p.metrics.SkippedTotal.Inc()
		return outcomeSkipped
	}

	bg := context.WithoutCancel(ctx)
	start := time.Now()
	defer func() { p.metrics.ItemDuration.Observe(time.Since(start).Seconds()) }()

	if err := p.queue.MarkProcessing(bg, item.ID); err != nil {
		log.Error("Не удалось отметить элемент как processing", zap.Error(err))
		p.metrics.FailedTotal.Inc()
		return outcomeFailed
	}

	_, err := p.processor.ProcessOrderID(bg, item.VtexOrderID)
	if err == nil {
		if err := p.queue.DeleteQueueItem(bg, item.ID); err != nil {
			log.Error("Не удалось удалить обработанный элемент", zap.Error(err))
		}
		p.metrics.ProcessedTotal.Inc()
		return outcomeProcessed
	}

	msg := models.TruncateError(err.Error())
	log.Warn("Ошибка обработки заказа", zap.Error(err))
	p.metrics.FailedTotal.Inc()
	if markErr := p.queue.MarkFailed(bg, item.ID, msg); markErr != nil {
		log.Error("Не удалось отметить элемент как failed", zap.Error(markErr))
	}

	item.Attempts++
	if item.Attempts >= p.cfg.MaxAttempts {
		p.quarantine(bg, item, msg, err)
	}
	return outcomeFailed
}

// quarantine отправляет элемент, исчерпавший попытки, в DLQ
func (p *Processor) quarantine(ctx context.Context, item models.QueueItem, msg string, cause error) {
	if p.dlq == nil {
		return
	}
	item.ProcessingStatus = models.QueueFailed
	item.LastError = &msg
	if err := p.dlq.SendToDLQ(ctx, item, cause); err != nil {
		p.log.Error("Не удалось отправить элемент в DLQ",
			zap.String("order_id", item.VtexOrderID), zap.Error(err))
		return
	}
	p.metrics.DeadLetteredTotal.Inc()
}

// IsInterrupted сообщает, завершился ли Run из-за отмены контекста
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
