// Команда enqueue удаляет заказы чужого канала продаж и ставит в очередь
// заказы VTEX за выбранный интервал
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"order_ingest/internal/app"
	"order_ingest/internal/scheduler"
)

func main() {
	days := flag.Int("days", 0, "number of days to scan (default INGEST_DAYS)")
	from := flag.String("from", "", "range start, YYYY-MM-DD or RFC3339")
	to := flag.String("to", "", "range end, YYYY-MM-DD or RFC3339")
	rescan := flag.Bool("rescan", false, "scan from the oldest stored order to now")
	backfill := flag.Bool("backfill", false, "scan N days before the oldest stored order")
	flag.Parse()

	fromDate, toDate, err := app.ParseRange(*from, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enqueue: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	app.Run("enqueue", app.Options{VTEX: true}, func(ctx context.Context, a *app.App) error {
		s := scheduler.New(a.VTEX, a.DB, a.DB, nil, scheduler.Config{
			PerPage:      a.Config.EffectivePerPage(),
			Concurrency:  a.Config.Concurrency,
			SalesChannel: a.Config.SalesChannel,
		}, a.Log)

		stats, err := s.Enqueue(ctx, scheduler.Range{
			Mode: app.Mode(*rescan, *backfill),
			Days: app.Days(*days, flag.Args(), a.Config.IngestDays),
			From: fromDate,
			To:   toDate,
		})
		a.Log.Info("Постановка в очередь завершена",
			zap.Int("purged", stats.Purged),
			zap.Int("windows", stats.Windows),
			zap.Int("listed", stats.Listed),
			zap.Int("queued", stats.Queued),
			zap.Duration("duration", stats.Duration))
		return err
	})
}
