// Команда ingest загружает заказы VTEX напрямую, без очереди
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"order_ingest/internal/app"
	"order_ingest/internal/scheduler"
)

func main() {
	days := flag.Int("days", 0, "number of days to load; a positional N works too (default INGEST_DAYS)")
	rescan := flag.Bool("rescan", false, "load from the oldest stored order to now, skipping stored orders")
	backfill := flag.Bool("backfill", false, "load N days before the oldest stored order, skipping stored orders")
	flag.Parse()

	app.Run("ingest", app.Options{VTEX: true, Kafka: true}, func(ctx context.Context, a *app.App) error {
		svc := a.OrderService()
		s := scheduler.New(a.VTEX, a.DB, nil, svc, scheduler.Config{
			PerPage:      a.Config.EffectivePerPage(),
			Concurrency:  a.Config.Concurrency,
			SalesChannel: a.Config.SalesChannel,
		}, a.Log)

		stats, err := s.Ingest(ctx, scheduler.Range{
			Mode: app.Mode(*rescan, *backfill),
			Days: app.Days(*days, flag.Args(), a.Config.IngestDays),
		})
		a.Log.Info("Загрузка завершена",
			zap.Int("windows", stats.Windows),
			zap.Int("listed", stats.Listed),
			zap.Int("processed", stats.Processed),
			zap.Int("skipped", stats.Skipped),
			zap.Int64("upserted", svc.Stats().Upserted),
			zap.Duration("duration", stats.Duration))
		return err
	})
}
