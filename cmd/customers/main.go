// Команда customers обслуживает замаскированные e-mail покупателей:
// синхронизация с Masterdata или выгрузка в JSON
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"order_ingest/internal/app"
	"order_ingest/internal/masterdata"
	"order_ingest/internal/service"
)

func main() {
	sync := flag.Bool("sync", false, "replace masked e-mails with e-mails found in Masterdata")
	limit := flag.Int("limit", 0, "max customers to sync, 0 = all")
	export := flag.String("export", "", "write masked e-mails to this JSON file")
	flag.Parse()

	if *sync == (*export != "") {
		fmt.Fprintln(os.Stderr, "customers: exactly one of --sync or --export=path is required")
		flag.Usage()
		os.Exit(2)
	}

	app.Run("customers", app.Options{VTEX: *sync}, func(ctx context.Context, a *app.App) error {
		if *export != "" {
			return exportEmails(ctx, a, *export)
		}

		resolver := masterdata.NewResolver(a.VTEX, a.Config.MasterdataCacheTTL, a.Log)
		svc := service.NewCustomerService(a.DB, resolver, a.Log)
		stats, err := svc.SyncMaskedEmails(ctx, *limit)
		a.Log.Info("Синхронизация e-mail завершена",
			zap.Int("total", stats.Total),
			zap.Int("updated", stats.Updated),
			zap.Int("skipped", stats.Skipped),
			zap.Int("failed", stats.Failed),
			zap.Int("cached_profiles", resolver.CacheSize()))
		return err
	})
}

func exportEmails(ctx context.Context, a *app.App, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("создание файла выгрузки: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	svc := service.NewCustomerService(a.DB, nil, a.Log)
	n, err := svc.ExportMaskedEmails(ctx, f)
	if err != nil {
		return err
	}
	a.Log.Info("Выгрузка замаскированных e-mail завершена", zap.Int("total", n), zap.String("path", path))
	return nil
}
