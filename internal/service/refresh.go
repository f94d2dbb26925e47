package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressEvery шаг логирования прогресса полного обновления
const ProgressEvery = 50

// RefreshStats итог полного обновления
type RefreshStats struct {
	Total     int
	Processed int
	Errors    int
	Duration  time.Duration
}

// RefreshAll заново загружает и записывает все сохраненные заказы, новые первыми.
// Ошибки отдельных заказов считаются и не прерывают обход.
func (s *Service) RefreshAll(ctx context.Context, concurrency int) (RefreshStats, error) {
	start := time.Now()
	if concurrency < 1 {
		concurrency = 1
	}

	ids, err := s.store.ListOrderIDs(ctx)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("список заказов: %w", err)
	}
	total := len(ids)
	s.log.Info("Полное обновление заказов", zap.Int("total", total), zap.Int("concurrency", concurrency))

	var processed, failed atomic.Int64
	g := &errgroup.Group{}
	g.SetLimit(concurrency)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if _, err := s.ProcessOrderID(ctx, id); err != nil {
				failed.Add(1)
				s.log.Warn("Ошибка обновления заказа", zap.String("order_id", id), zap.Error(err))
			}
			done := int(processed.Add(1))
			if done%ProgressEvery == 0 || done == total {
				rate, eta := progress(done, total, time.Since(start))
				s.log.Info("Прогресс обновления",
					zap.Int("done", done),
					zap.Int("total", total),
					zap.Int64("errors", failed.Load()),
					zap.Float64("rate_per_sec", rate),
					zap.Duration("eta", eta))
			}
			return nil
		})
	}
	_ = g.Wait()

	stats := RefreshStats{
		Total:     total,
		Processed: int(processed.Load()),
		Errors:    int(failed.Load()),
		Duration:  time.Since(start),
	}
	return stats, ctx.Err()
}

// progress скорость (заказов в секунду) и оценка оставшегося времени
func progress(done, total int, elapsed time.Duration) (float64, time.Duration) {
	if done <= 0 || elapsed <= 0 {
		return 0, 0
	}
	rate := float64(done) / elapsed.Seconds()
	remaining := total - done
	if remaining <= 0 {
		return rate, 0
	}
	return rate, time.Duration(float64(remaining) / rate * float64(time.Second)).Round(time.Second)
}
