// Команда worker обрабатывает очередь заказов
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"order_ingest/internal/app"
	"order_ingest/internal/models"
	"order_ingest/internal/queue"
)

func main() {
	limit := flag.Int("limit", 0, "items per pass (default QUEUE_BATCH)")
	includeFailed := flag.Bool("include-failed", false, "retry failed items below QUEUE_MAX_ATTEMPTS")
	flag.Parse()

	app.Run("worker", app.Options{VTEX: true, Kafka: true}, func(ctx context.Context, a *app.App) error {
		svc := a.OrderService()
		p := queue.New(a.DB, svc, a.DLQ, queue.Config{
			Batch:       a.Config.QueueBatch,
			Concurrency: a.Config.Concurrency,
			MaxAttempts: a.Config.QueueMaxAttempts,
		}, a.Log)

		stats, err := p.Run(ctx, queue.Options{Limit: *limit, IncludeFailed: *includeFailed})
		a.Log.Info("Обработка очереди завершена",
			zap.Int("passes", stats.Passes),
			zap.Int("processed", stats.Processed),
			zap.Int("failed", stats.Failed),
			zap.Int("skipped", stats.Skipped),
			zap.Int64("upserted", svc.Stats().Upserted),
			zap.Duration("duration", stats.Duration))
		if queue.IsInterrupted(err) {
			a.Log.Warn("Обработка прервана, начатые элементы завершены")
		}

		counts, cerr := a.DB.QueueCounts(context.WithoutCancel(ctx))
		if cerr != nil {
			a.Log.Warn("Не удалось получить состояние очереди", zap.Error(cerr))
			return err
		}
		a.Log.Info("Осталось в очереди",
			zap.Int("pending", counts[models.QueuePending]),
			zap.Int("processing", counts[models.QueueProcessing]),
			zap.Int("failed", counts[models.QueueFailed]))

		exhausted, cerr := a.DB.CountExhausted(context.WithoutCancel(ctx), a.Config.QueueMaxAttempts)
		if cerr != nil {
			a.Log.Warn("Не удалось посчитать исчерпанные элементы", zap.Error(cerr))
		} else if exhausted > 0 {
			a.Log.Warn("Элементы исчерпали попытки и больше не выбираются",
				zap.Int("exhausted", exhausted),
				zap.Int("max_attempts", a.Config.QueueMaxAttempts))
		}
		return err
	})
}
