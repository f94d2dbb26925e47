// Команда refresh заново загружает из VTEX все сохраненные заказы
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"order_ingest/internal/app"
)

func main() {
	concurrency := flag.Int("concurrency", 30, "orders refreshed in parallel")
	flag.Parse()

	app.Run("refresh", app.Options{VTEX: true, Kafka: true}, func(ctx context.Context, a *app.App) error {
		svc := a.OrderService()
		stats, err := svc.RefreshAll(ctx, *concurrency)

		success := 0.0
		if stats.Total > 0 {
			success = float64(stats.Processed-stats.Errors) / float64(stats.Total) * 100
		}
		a.Log.Info("Обновление завершено",
			zap.Int("total", stats.Total),
			zap.Int("processed", stats.Processed),
			zap.Int("errors", stats.Errors),
			zap.Float64("success_pct", success),
			zap.Duration("last_upsert_duration", svc.Stats().LastUpsertDuration),
			zap.Duration("duration", stats.Duration))
		return err
	})
}
