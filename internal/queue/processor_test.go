package queue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/memstore"
	"order_ingest/internal/mocks"
	"order_ingest/internal/models"
)

func TestProcessor_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memstore.New()
	ctx := context.Background()
	_, err := store.EnqueueOrders(ctx, []models.QueueItem{{VtexOrderID: "A-01"}, {VtexOrderID: "B-01"}})
	require.NoError(t, err)

	processor := mocks.NewMockOrderProcessor(ctrl)
	processor.EXPECT().ProcessOrderID(gomock.Any(), "A-01").Return(&models.Order{VtexOrderID: "A-01"}, nil)
	processor.EXPECT().ProcessOrderID(gomock.Any(), "B-01").DoAndReturn(
		func(context.Context, string) (*models.Order, error) {
			// Элемент отмечен processing до загрузки
			item, ok := store.QueueItem("B-01")
			assert.True(t, ok)
			assert.Equal(t, models.QueueProcessing, item.ProcessingStatus)
			assert.Equal(t, 1, item.Attempts)
			return nil, errors.New("VTEX 500 Internal Server Error")
		})

	p := New(store, processor, nil, Config{Concurrency: 2, MaxAttempts: 3}, nil)
	stats, err := p.Run(ctx, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Passes)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Failed)

	_, ok := store.QueueItem("A-01")
	assert.False(t, ok, "обработанный элемент удален")

	item, ok := store.QueueItem("B-01")
	require.True(t, ok)
	assert.Equal(t, models.QueueFailed, item.ProcessingStatus)
	assert.Equal(t, 1, item.Attempts)
	require.NotNil(t, item.LastError)
	assert.Contains(t, *item.LastError, "500")
}

func TestProcessor_RetriesFailedUntilMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memstore.New()
	ctx := context.Background()
	_, err := store.EnqueueOrders(ctx, []models.QueueItem{{VtexOrderID: "A-01"}})
	require.NoError(t, err)

	processor := mocks.NewMockOrderProcessor(ctrl)
	processor.EXPECT().ProcessOrderID(gomock.Any(), "A-01").Return(nil, errors.New("timeout")).Times(2)

	dlq := mocks.NewMockDeadLetterSink(ctrl)
	dlq.EXPECT().SendToDLQ(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.QueueItem, cause error) error {
			assert.Equal(t, "A-01", item.VtexOrderID)
			assert.Equal(t, 2, item.Attempts)
			assert.EqualError(t, cause, "timeout")
			return nil
		})

	p := New(store, processor, dlq, Config{Concurrency: 1, MaxAttempts: 2}, nil)
	stats, err := p.Run(ctx, Options{IncludeFailed: true})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Passes)
	assert.Equal(t, 2, stats.Failed)

	// Исчерпавший попытки элемент остается в очереди
	item, ok := store.QueueItem("A-01")
	require.True(t, ok)
	assert.Equal(t, models.QueueFailed, item.ProcessingStatus)
	assert.Equal(t, 2, item.Attempts)

	// Следующий запуск его не трогает
	stats, err = p.Run(ctx, Options{IncludeFailed: true})
	require.NoError(t, err)
	assert.Zero(t, stats.Passes)
}

func TestProcessor_SkipsExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueueStore(ctrl)
	processor := mocks.NewMockOrderProcessor(ctrl)

	queue.EXPECT().FetchQueueBatch(gomock.Any(), 10, true, 3).
		Return([]models.QueueItem{{ID: "q1", VtexOrderID: "A-01", Attempts: 3}}, nil)

	p := New(queue, processor, nil, Config{MaxAttempts: 3}, nil)
	stats, err := p.Run(context.Background(), Options{Limit: 10, IncludeFailed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped, "элемент не обрабатывается и не удаляется")
	assert.Equal(t, 1, stats.Passes)
}

func TestProcessor_TruncatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueueStore(ctrl)
	processor := mocks.NewMockOrderProcessor(ctrl)
	item := models.QueueItem{ID: "q1", VtexOrderID: "A-01"}

	gomock.InOrder(
		queue.EXPECT().FetchQueueBatch(gomock.Any(), DefaultBatch, false, 3).Return([]models.QueueItem{item}, nil),
		queue.EXPECT().MarkProcessing(gomock.Any(), "q1").Return(nil),
		processor.EXPECT().ProcessOrderID(gomock.Any(), "A-01").Return(nil, errors.New(strings.Repeat("x", 5000))),
		queue.EXPECT().MarkFailed(gomock.Any(), "q1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, msg string) error {
				assert.Len(t, msg, models.MaxErrorLength)
				return nil
			}),
		queue.EXPECT().FetchQueueBatch(gomock.Any(), DefaultBatch, false, 3).Return(nil, nil),
	)

	p := New(queue, processor, nil, Config{}, nil)
	stats, err := p.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
}

func TestProcessor_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueueStore(ctrl)
	queue.EXPECT().FetchQueueBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	p := New(queue, nil, nil, Config{}, nil)
	_, err := p.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.False(t, IsInterrupted(err))
}

func TestProcessor_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueueStore(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(queue, nil, nil, Config{}, nil)
	_, err := p.Run(ctx, Options{})
	assert.True(t, IsInterrupted(err))
}
