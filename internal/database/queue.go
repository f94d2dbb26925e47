package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"order_ingest/internal/models"
)

// EnqueueOrders добавляет элементы в очередь одной пачкой. Уже существующие пропускаются.
func (p *Postgres) EnqueueOrders(ctx context.Context, items []models.QueueItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(EnqueueOrderQuery, uuid.NewString(), it.VtexOrderID, it.VtexSequence, it.Status,
			it.CreationDate, it.LastChange)
	}

	var inserted int
	err := p.observe("enqueue_orders", func() error {
		var err error
		inserted, err = execBatchCount(ctx, p.pool, batch)
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("Ошибка добавления в очередь: %w", err)
	}
	p.metrics.EnqueuedTotal.Add(float64(inserted))
	return inserted, nil
}

// FetchQueueBatch выбирает элементы очереди для обработки в порядке создания
func (p *Postgres) FetchQueueBatch(ctx context.Context, limit int, includeFailed bool, maxAttempts int) ([]models.QueueItem, error) {
	var items []models.QueueItem
	err := p.observe("fetch_queue_batch", func() error {
		rows, err := p.pool.Query(ctx, FetchQueueBatchQuery, limit, includeFailed, maxAttempts)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				it     models.QueueItem
				status string
			)
			err := rows.Scan(&it.ID, &it.VtexOrderID, &it.VtexSequence, &it.Status, &it.CreationDate,
				&it.LastChange, &status, &it.Attempts, &it.LastError, &it.CreatedAt)
			if err != nil {
				return err
			}
			it.ProcessingStatus = models.QueueStatus(status)
			items = append(items, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка выборки очереди: %w", err)
	}
	return items, nil
}

// MarkProcessing переводит элемент в processing, увеличивает attempts и сбрасывает ошибку
func (p *Postgres) MarkProcessing(ctx context.Context, id string) error {
	return p.execQueue(ctx, "mark_processing", MarkProcessingQuery, id)
}

// MarkFailed переводит элемент в failed. Сообщение обрезается до models.MaxErrorLength.
func (p *Postgres) MarkFailed(ctx context.Context, id string, message string) error {
	return p.execQueue(ctx, "mark_failed", MarkFailedQuery, id, models.TruncateError(message))
}

// DeleteQueueItem удаляет обработанный элемент
func (p *Postgres) DeleteQueueItem(ctx context.Context, id string) error {
	return p.execQueue(ctx, "delete_queue_item", DeleteQueueItemQuery, id)
}

// RequeueOrder ставит заказ в очередь заново: pending, attempts = 0
func (p *Postgres) RequeueOrder(ctx context.Context, vtexOrderID string) error {
	return p.execQueue(ctx, "requeue_order", RequeueOrderQuery, uuid.NewString(), vtexOrderID)
}

func (p *Postgres) execQueue(ctx context.Context, operation, query string, args ...any) error {
	err := p.observe(operation, func() error {
		_, err := p.pool.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("Ошибка операции очереди %s: %w", operation, err)
	}
	return nil
}

// CountExhausted количество элементов, исчерпавших попытки
func (p *Postgres) CountExhausted(ctx context.Context, maxAttempts int) (int, error) {
	var n int
	err := p.observe("count_exhausted", func() error {
		return p.pool.QueryRow(ctx, CountExhaustedQuery, maxAttempts).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("Ошибка подсчета исчерпанных элементов очереди: %w", err)
	}
	return n, nil
}

// QueueCounts количество элементов очереди по статусам
func (p *Postgres) QueueCounts(ctx context.Context) (map[models.QueueStatus]int, error) {
	counts := make(map[models.QueueStatus]int)
	err := p.observe("queue_counts", func() error {
		rows, err := p.pool.Query(ctx, QueueCountsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				status string
				n      int
			)
			if err := rows.Scan(&status, &n); err != nil {
				return err
			}
			counts[models.QueueStatus(status)] = n
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка подсчета очереди: %w", err)
	}
	return counts, nil
}
