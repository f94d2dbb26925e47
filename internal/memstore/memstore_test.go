package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
	"order_ingest/internal/normalize"
)

func strPtr(s string) *string { return &s }

func TestStore_SaveOrderIdempotent(t *testing.T) {
	ctx := context.Background()
	store := New()
	detail := models.GenerateTestOrderDetail(1, 2)

	first, err := store.SaveOrder(ctx, normalize.Normalize(detail))
	require.NoError(t, err)
	second, err := store.SaveOrder(ctx, normalize.Normalize(detail))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, *first.CustomerID, *second.CustomerID)

	items, payments, shippings, promotions := store.Children(detail.OrderID)
	assert.Len(t, items, 2)
	assert.Len(t, payments, 1)
	assert.Len(t, shippings, 2)
	assert.Empty(t, promotions)

	orders, customers, addresses, products, skus := store.Counts()
	assert.Equal(t, 1, orders)
	assert.Equal(t, 1, customers)
	assert.Equal(t, 4, addresses, "адреса создаются заново при каждой записи")
	assert.Equal(t, 2, products)
	assert.Equal(t, 2, skus)
}

func TestStore_PurgeOutsideChannel(t *testing.T) {
	ctx := context.Background()
	store := New()

	saved := make(map[string]string) // канал -> внутренний id
	for i, channel := range []string{"1", "2", ""} {
		detail := models.GenerateTestOrderDetail(20+i, 2)
		detail.SalesChannel = channel
		ws := normalize.Normalize(detail)
		ws.Promotions = append(ws.Promotions, models.OrderPromotion{Name: strPtr("Frete grátis")})
		order, err := store.SaveOrder(ctx, ws)
		require.NoError(t, err)
		saved[channel] = order.ID
	}

	deleted, err := store.PurgeOutsideChannel(ctx, "1", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted, "удаляются чужой канал и заказы без канала")

	for _, channel := range []string{"2", ""} {
		items, payments, shippings, promotions := store.OrderChildCounts(saved[channel])
		assert.Zero(t, items+payments+shippings+promotions, "дочерние строки канала %q не должны остаться", channel)
	}

	items, payments, shippings, promotions := store.OrderChildCounts(saved["1"])
	assert.Equal(t, 2, items)
	assert.Equal(t, 1, payments)
	assert.Equal(t, 2, shippings)
	assert.Equal(t, 1, promotions)

	exists, err := store.OrderExists(ctx, models.GenerateTestOrderDetail(20, 2).OrderID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_CustomerLinking(t *testing.T) {
	ctx := context.Background()
	store := New()

	// Покупатель, известный только по e-mail
	byEmail := store.PutCustomer(models.Customer{Email: strPtr("ana@example.com")})

	ws := &models.OrderWriteSet{
		Order:    models.Order{VtexOrderID: "A-01"},
		Customer: &models.Customer{VtexCustomerID: strPtr("u1"), Email: strPtr("ana@example.com")},
	}
	saved, err := store.SaveOrder(ctx, ws)
	require.NoError(t, err)
	assert.Equal(t, byEmail, *saved.CustomerID, "запись без внешнего id привязывается по e-mail")

	// Другой внешний id с тем же e-mail: e-mail не переносится
	ws2 := &models.OrderWriteSet{
		Order:    models.Order{VtexOrderID: "B-01"},
		Customer: &models.Customer{VtexCustomerID: strPtr("u2"), Email: strPtr("ana@example.com")},
	}
	saved2, err := store.SaveOrder(ctx, ws2)
	require.NoError(t, err)
	assert.NotEqual(t, byEmail, *saved2.CustomerID)
	other, ok := store.Customer(*saved2.CustomerID)
	require.True(t, ok)
	assert.Nil(t, other.Email)
}

func TestStore_Queue(t *testing.T) {
	ctx := context.Background()
	store := New()

	n, err := store.EnqueueOrders(ctx, []models.QueueItem{{VtexOrderID: "A"}, {VtexOrderID: "B"}, {VtexOrderID: "A"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	batch, err := store.FetchQueueBatch(ctx, 1, false, 3)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "A", batch[0].VtexOrderID, "порядок создания")

	require.NoError(t, store.MarkProcessing(ctx, batch[0].ID))
	require.NoError(t, store.MarkFailed(ctx, batch[0].ID, "boom"))

	item, ok := store.QueueItem("A")
	require.True(t, ok)
	assert.Equal(t, models.QueueFailed, item.ProcessingStatus)
	assert.Equal(t, 1, item.Attempts)

	failed, err := store.FetchQueueBatch(ctx, 10, true, 1)
	require.NoError(t, err)
	require.Len(t, failed, 1, "исчерпавший попытки элемент не выбирается")
	assert.Equal(t, "B", failed[0].VtexOrderID)

	exhausted, err := store.CountExhausted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, exhausted)
	exhausted, err = store.CountExhausted(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, exhausted)

	require.NoError(t, store.RequeueOrder(ctx, "A"))
	exhausted, err = store.CountExhausted(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, exhausted, "RequeueOrder сбрасывает попытки")
	item, _ = store.QueueItem("A")
	assert.Equal(t, models.QueuePending, item.ProcessingStatus)
	assert.Equal(t, 0, item.Attempts)

	counts, err := store.QueueCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.QueuePending])
}

func TestStore_UpdateCustomerEmail(t *testing.T) {
	ctx := context.Background()
	store := New()
	a := store.PutCustomer(models.Customer{VtexCustomerID: strPtr("u1"), Email: strPtr("x-1@a.ct.vtex.com.br")})
	store.PutCustomer(models.Customer{Email: strPtr("taken@example.com")})

	masked, err := store.ListMaskedCustomers(ctx, ".ct.vtex.com.br", true, 0)
	require.NoError(t, err)
	require.Len(t, masked, 1)

	assert.ErrorIs(t, store.UpdateCustomerEmail(ctx, a, "taken@example.com"), interfaces.ErrEmailConflict)
	require.NoError(t, store.UpdateCustomerEmail(ctx, a, "real@example.com"))

	masked, err = store.ListMaskedCustomers(ctx, ".ct.vtex.com.br", true, 0)
	require.NoError(t, err)
	assert.Empty(t, masked)
}
