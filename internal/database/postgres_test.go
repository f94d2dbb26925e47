package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
	"order_ingest/internal/normalize"
)

var placeholder = regexp.MustCompile(`\$(\d+)`)

func maxPlaceholder(query string) int {
	max := 0
	for _, m := range placeholder.FindAllStringSubmatch(query, -1) {
		n, _ := strconv.Atoi(m[1])
		if n > max {
			max = n
		}
	}
	return max
}

// Количество аргументов совпадает с плейсхолдерами запросов
func TestQueryPlaceholders(t *testing.T) {
	assert.Equal(t, len(orderArgs(&models.Order{})), maxPlaceholder(UpsertOrderQuery))
	assert.Equal(t, len(customerArgs("id", &models.Customer{}, nil)), maxPlaceholder(InsertCustomerQuery))
	assert.Equal(t, len(customerArgs("id", &models.Customer{}, nil)), maxPlaceholder(UpdateCustomerQuery))
	assert.Equal(t, len(customerArgs("id", &models.Customer{}, nil)), maxPlaceholder(UpsertCustomerByEmailQuery))
	assert.Equal(t, 20, maxPlaceholder(InsertOrderItemQuery))
	assert.Equal(t, 17, maxPlaceholder(InsertOrderPaymentQuery))
	assert.Equal(t, 13, maxPlaceholder(InsertOrderShippingQuery))
	assert.Equal(t, 10, maxPlaceholder(InsertOrderPromotionQuery))
	assert.Equal(t, 1, maxPlaceholder(CountExhaustedQuery))

	f := models.ReportFilter{Start: "2024-01-01", End: "2024-01-31"}
	for name, q := range map[string]string{
		"summary":          SummaryReportQuery,
		"cohorts":          CustomerCohortsReportQuery,
		"types":            CustomerTypesReportQuery,
		"retention":        RetentionReportQuery,
		"cohort":           CohortReportQuery,
		"new_vs_returning": NewVsReturningReportQuery,
	} {
		assert.Equal(t, len(reportArgs(f)), maxPlaceholder(q), name)
	}
	for name, q := range map[string]string{
		"top_customers": TopCustomersReportQuery,
		"utm":           UTMReportQuery,
		"shipping":      ShippingReportQuery,
		"payments":      PaymentsReportQuery,
		"series":        fmt.Sprintf(ordersSeriesReportQuery, periodExpressions["week"]),
		"products":      fmt.Sprintf(topProductsReportQuery, productOrderings["quantity"]),
	} {
		assert.Equal(t, len(reportArgs(f, 1)), maxPlaceholder(q), name)
	}
}

func TestReportArgs(t *testing.T) {
	args := reportArgs(models.ReportFilter{Start: "2024-01-01", End: "2024-01-31", SalesChannel: "1"})
	require.Len(t, args, 5)
	assert.Equal(t, "UTC", args[2], "часовой пояс по умолчанию")
	assert.Equal(t, []string{}, args[3], "nil-список статусов передается пустым массивом")
	assert.Equal(t, "1", args[4])

	args = reportArgs(models.ReportFilter{Timezone: "America/Sao_Paulo", Statuses: []string{"invoiced"}}, 20)
	require.Len(t, args, 6)
	assert.Equal(t, "America/Sao_Paulo", args[2])
	assert.Equal(t, []string{"invoiced"}, args[3])
	assert.Equal(t, 20, args[5])
}

func TestRoundDiv(t *testing.T) {
	assert.Equal(t, int64(0), roundDiv(10, 0))
	assert.Equal(t, int64(3), roundDiv(10, 3))
	assert.Equal(t, int64(4), roundDiv(7, 2))
	assert.Equal(t, int64(2), roundDiv(5, 3))
	assert.Equal(t, int64(-4), roundDiv(-7, 2))
}

func TestJoinName(t *testing.T) {
	first, last, empty := "Ana", "Silva", ""
	assert.Equal(t, "Ana Silva", joinName(&first, &last))
	assert.Equal(t, "Silva", joinName(nil, &last))
	assert.Equal(t, "Ana", joinName(&first, &empty))
	assert.Equal(t, "", joinName(nil, nil))
}

func TestJSONArg(t *testing.T) {
	assert.Nil(t, jsonArg(nil))
	assert.Nil(t, jsonArg([]byte{}))
	assert.NotNil(t, jsonArg([]byte(`{"a":1}`)))
}

func TestPgErrorClassification(t *testing.T) {
	dataErr := fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "22P02"})
	uniqueErr := fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, isDataError(dataErr))
	assert.False(t, isDataError(uniqueErr))
	assert.True(t, isUniqueViolation(uniqueErr))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}

func TestMigrationIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range migrations {
		assert.False(t, seen[m.id], "повтор миграции %s", m.id)
		seen[m.id] = true
		assert.NotEmpty(t, m.sql)
	}
}

// Интеграционные тесты выполняются только при заданном TEST_POSTGRES_DSN
func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN не задан")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := NewPostgres(ctx, dsn, nil)
	require.NoError(t, err)
	require.NoError(t, pg.Init(ctx))
	_, err = pg.pool.Exec(ctx, `TRUNCATE order_items, order_payments, order_shippings, order_promotions,
		orders, addresses, skus, products, customers, order_queue CASCADE`)
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	return pg
}

func TestPostgres_SaveOrderIdempotent(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	detail := models.GenerateTestOrderDetail(1, 3)
	first, err := pg.SaveOrder(ctx, normalize.Normalize(detail))
	require.NoError(t, err)
	second, err := pg.SaveOrder(ctx, normalize.Normalize(detail))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "повторная запись обновляет тот же заказ")
	assert.Equal(t, first.CustomerID, second.CustomerID)

	counts, err := pg.OrderChildCounts(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, ChildCounts{Items: 3, Payments: 1, Shippings: 3, Promotions: 0}, counts)

	exists, err := pg.OrderExists(ctx, detail.OrderID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgres_SaveOrderShrinks(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	saved, err := pg.SaveOrder(ctx, normalize.Normalize(models.GenerateTestOrderDetail(2, 3)))
	require.NoError(t, err)

	smaller := models.GenerateTestOrderDetail(2, 1)
	_, err = pg.SaveOrder(ctx, normalize.Normalize(smaller))
	require.NoError(t, err)

	counts, err := pg.OrderChildCounts(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Items, "лишние позиции удалены")
	assert.Equal(t, 1, counts.Shippings)
}

func TestPostgres_PurgeOutsideChannel(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	var purged []string
	for i, channel := range []string{"1", "2", ""} {
		detail := models.GenerateTestOrderDetail(10+i, 2)
		detail.SalesChannel = channel
		saved, err := pg.SaveOrder(ctx, normalize.Normalize(detail))
		require.NoError(t, err)
		if channel != "1" {
			purged = append(purged, saved.ID)
		}
	}

	deleted, err := pg.PurgeOutsideChannel(ctx, "1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted, "удаляются чужой канал и заказы без канала")

	ids, err := pg.ListOrderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{models.GenerateTestOrderDetail(10, 2).OrderID}, ids)

	for _, id := range purged {
		counts, err := pg.OrderChildCounts(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, ChildCounts{}, counts, "дочерние строки удаленного заказа не должны остаться")
	}
}

func TestPostgres_QueueLifecycle(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	inserted, err := pg.EnqueueOrders(ctx, []models.QueueItem{{VtexOrderID: "A-01"}, {VtexOrderID: "B-01"}})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = pg.EnqueueOrders(ctx, []models.QueueItem{{VtexOrderID: "A-01"}})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted, "существующий элемент не дублируется")

	batch, err := pg.FetchQueueBatch(ctx, 10, false, 3)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "A-01", batch[0].VtexOrderID)

	require.NoError(t, pg.MarkProcessing(ctx, batch[0].ID))
	require.NoError(t, pg.MarkFailed(ctx, batch[0].ID, "VTEX 500 Internal Server Error - boom"))
	require.NoError(t, pg.MarkProcessing(ctx, batch[1].ID))
	require.NoError(t, pg.DeleteQueueItem(ctx, batch[1].ID))

	pending, err := pg.FetchQueueBatch(ctx, 10, false, 3)
	require.NoError(t, err)
	assert.Empty(t, pending)

	failed, err := pg.FetchQueueBatch(ctx, 10, true, 3)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Attempts)
	assert.Equal(t, models.QueueFailed, failed[0].ProcessingStatus)
	require.NotNil(t, failed[0].LastError)

	exhausted, err := pg.CountExhausted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, exhausted)
	exhausted, err = pg.CountExhausted(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, exhausted)

	require.NoError(t, pg.RequeueOrder(ctx, "A-01"))
	counts, err := pg.QueueCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.QueueStatus]int{models.QueuePending: 1}, counts)
}

func TestPostgres_CustomerEmailConflict(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	a := models.GenerateTestOrderDetail(20, 1)
	a.ClientProfileData.Email = "a-1@masked.ct.vtex.com.br"
	b := models.GenerateTestOrderDetail(21, 1)
	b.ClientProfileData.Email = "taken@example.com"

	savedA, err := pg.SaveOrder(ctx, normalize.Normalize(a))
	require.NoError(t, err)
	_, err = pg.SaveOrder(ctx, normalize.Normalize(b))
	require.NoError(t, err)

	masked, err := pg.ListMaskedCustomers(ctx, ".ct.vtex.com.br", true, 0)
	require.NoError(t, err)
	require.Len(t, masked, 1)
	assert.Equal(t, *savedA.CustomerID, masked[0].ID)

	err = pg.UpdateCustomerEmail(ctx, masked[0].ID, "taken@example.com")
	assert.ErrorIs(t, err, interfaces.ErrEmailConflict)

	require.NoError(t, pg.UpdateCustomerEmail(ctx, masked[0].ID, "real@example.com"))
}
