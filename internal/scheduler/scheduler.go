package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
	"order_ingest/internal/normalize"
)

const (
	// MaxPages потолок числа страниц на одно окно
	MaxPages = 30
	// MaxPerPage предельный размер страницы списка заказов
	MaxPerPage = 100
	// PurgeBatch размер пачки при удалении заказов чужого канала
	PurgeBatch = 500
	// ingestProgressEvery шаг логирования прямой загрузки
	ingestProgressEvery = 10
)

// Config параметры обхода
type Config struct {
	PerPage      int
	Concurrency  int
	SalesChannel string
}

// Scheduler обходит список заказов VTEX
type Scheduler struct {
	source    interfaces.OrderSource
	store     interfaces.OrderStore
	queue     interfaces.QueueStore
	processor interfaces.OrderProcessor
	cfg       Config
	metrics   *Metrics
	log       *zap.Logger
	now       func() time.Time
}

// New создает планировщик. queue нужна только для Enqueue, processor только для Ingest.
func New(source interfaces.OrderSource, store interfaces.OrderStore, queue interfaces.QueueStore,
	processor interfaces.OrderProcessor, cfg Config, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PerPage <= 0 || cfg.PerPage > MaxPerPage {
		cfg.PerPage = MaxPerPage
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Scheduler{
		source:    source,
		store:     store,
		queue:     queue,
		processor: processor,
		cfg:       cfg,
		metrics:   NewMetrics(),
		log:       log.Named("scheduler"),
		now:       time.Now,
	}
}

// EnqueueStats итог постановки в очередь
type EnqueueStats struct {
	Purged   int
	Windows  int
	Listed   int
	Queued   int
	Duration time.Duration
}

// IngestStats итог прямой загрузки
type IngestStats struct {
	Windows   int
	Listed    int
	Processed int
	Skipped   int
	Duration  time.Duration
}

// plan вычисляет окна обхода
func (s *Scheduler) plan(ctx context.Context, r Range) ([]Window, error) {
	var oldest *time.Time
	if r.From == nil && r.To == nil && r.Mode.SkipExisting() {
		var err error
		if oldest, err = s.store.OldestOrderDate(ctx); err != nil {
			return nil, err
		}
		if oldest == nil {
			s.log.Warn("Заказов в базе нет, используется интервал последних дней", zap.Int("days", r.Days))
		}
	}

	start, end := PlanRange(r, oldest, s.now())
	s.log.Info("Интервал обхода",
		zap.String("mode", string(r.Mode)),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Bool("skip_existing", r.Mode.SkipExisting()))
	return Windows(r.Mode, start, end), nil
}

// Enqueue удаляет заказы чужого канала продаж и ставит в очередь все заказы интервала.
// Уже стоящие в очереди заказы не дублируются. Ошибка любого окна прерывает запуск.
func (s *Scheduler) Enqueue(ctx context.Context, r Range) (EnqueueStats, error) {
	start := time.Now()
	var stats EnqueueStats
	if err := r.Validate(); err != nil {
		return stats, err
	}

	purged, err := s.store.PurgeOutsideChannel(ctx, s.cfg.SalesChannel, PurgeBatch)
	if err != nil {
		return stats, fmt.Errorf("удаление заказов чужого канала: %w", err)
	}
	stats.Purged = purged
	if purged > 0 {
		s.log.Info("Удалены заказы чужого канала продаж",
			zap.Int("deleted", purged), zap.String("sales_channel", s.cfg.SalesChannel))
	}

	windows, err := s.plan(ctx, r)
	if err != nil {
		return stats, err
	}
	stats.Windows = len(windows)

	var listed, queued atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, w := range windows {
		g.Go(func() error {
			windowStart := time.Now()
			l, q, err := s.enqueueWindow(gctx, w)
			if err != nil {
				return fmt.Errorf("окно %s: %w", w.Label(), err)
			}
			listed.Add(int64(l))
			queued.Add(int64(q))
			s.log.Info("Окно обработано",
				zap.String("day", w.Label()),
				zap.Int("listed", l),
				zap.Int("queued", q),
				zap.Duration("duration", time.Since(windowStart)))
			return nil
		})
	}
	err = g.Wait()

	stats.Listed = int(listed.Load())
	stats.Queued = int(queued.Load())
	stats.Duration = time.Since(start)
	return stats, err
}

func (s *Scheduler) enqueueWindow(ctx context.Context, w Window) (listed, queued int, err error) {
	err = s.walkPages(ctx, w, func(list []models.OrderSummary) error {
		listed += len(list)
		if len(list) == 0 {
			return nil
		}
		n, err := s.queue.EnqueueOrders(ctx, QueueItems(list))
		if err != nil {
			return err
		}
		queued += n
		s.metrics.QueuedTotal.Add(float64(n))
		return nil
	})
	return listed, queued, err
}

// walkPages вызывает fn для каждой страницы окна, не более MaxPages страниц
func (s *Scheduler) walkPages(ctx context.Context, w Window, fn func([]models.OrderSummary) error) error {
	for page, totalPages := 1, 1; page <= totalPages; page++ {
		list, err := s.source.ListOrders(ctx, models.OrderListQuery{
			Page:         page,
			PerPage:      s.cfg.PerPage,
			From:         w.From,
			To:           w.To,
			SalesChannel: s.cfg.SalesChannel,
		})
		if err != nil {
			return err
		}
		s.metrics.PagesFetchedTotal.Inc()
		totalPages = min(list.Paging.Pages, MaxPages)
		s.log.Debug("Страница списка заказов",
			zap.String("day", w.Label()),
			zap.Int("page", page),
			zap.Int("orders", len(list.List)),
			zap.Int("total", list.Paging.Total))

		if err := fn(list.List); err != nil {
			return err
		}
	}
	return nil
}

// Ingest загружает заказы интервала напрямую, без очереди. В режимах rescan и backfill
// уже сохраненные заказы пропускаются. Ошибка любого заказа прерывает запуск.
func (s *Scheduler) Ingest(ctx context.Context, r Range) (IngestStats, error) {
	start := time.Now()
	var stats IngestStats
	if err := r.Validate(); err != nil {
		return stats, err
	}

	windows, err := s.plan(ctx, r)
	if err != nil {
		return stats, err
	}
	stats.Windows = len(windows)
	skipExisting := r.Mode.SkipExisting()

	var processed, skipped atomic.Int64
	for _, w := range windows {
		err := s.walkPages(ctx, w, func(list []models.OrderSummary) error {
			stats.Listed += len(list)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(s.cfg.Concurrency)
			for _, summary := range list {
				g.Go(func() error {
					if skipExisting {
						exists, err := s.store.OrderExists(gctx, summary.OrderID)
						if err != nil {
							return err
						}
						if exists {
							skipped.Add(1)
							s.metrics.SkippedExistingTotal.Inc()
							return nil
						}
					}
					if _, err := s.processor.ProcessOrderID(gctx, summary.OrderID); err != nil {
						return err
					}
					if n := processed.Add(1); n%ingestProgressEvery == 0 {
						s.log.Info("Загружено заказов", zap.Int64("processed", n))
					}
					return nil
				})
			}
			return g.Wait()
		})
		if err != nil {
			stats.Processed = int(processed.Load())
			stats.Skipped = int(skipped.Load())
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("окно %s: %w", w.Label(), err)
		}
	}

	stats.Processed = int(processed.Load())
	stats.Skipped = int(skipped.Load())
	stats.Duration = time.Since(start)
	return stats, nil
}

// QueueItems переводит строки списка заказов в элементы очереди
func QueueItems(list []models.OrderSummary) []models.QueueItem {
	items := make([]models.QueueItem, 0, len(list))
	for _, o := range list {
		if o.OrderID == "" {
			continue
		}
		items = append(items, models.QueueItem{
			VtexOrderID:      o.OrderID,
			VtexSequence:     optional(o.Sequence),
			Status:           optional(o.Status),
			CreationDate:     normalize.ParseTime(o.CreationDate),
			LastChange:       normalize.ParseTime(o.LastChange),
			ProcessingStatus: models.QueuePending,
		})
	}
	return items
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
