// Package database содержит логику работы с базой данных PostgreSQL
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
	"order_ingest/internal/retry"
)

var (
	_ interfaces.OrderStore    = (*Postgres)(nil)
	_ interfaces.QueueStore    = (*Postgres)(nil)
	_ interfaces.CustomerStore = (*Postgres)(nil)
	_ interfaces.Reports       = (*Postgres)(nil)
)

// Размер пачки при удалении заказов чужого канала
const DefaultPurgeBatch = 500

// Postgres представляет подключение к базе данных PostgreSQL
type Postgres struct {
	pool    *pgxpool.Pool // Пул соединений с базой данных
	log     *zap.Logger
	metrics *DBMetrics
}

// NewPostgres создает новое подключение к базе данных PostgreSQL
func NewPostgres(ctx context.Context, connectStr string, log *zap.Logger) (*Postgres, error) {
	if log == nil {
		log = zap.NewNop()
	}
	metrics := NewDBMetrics()
	start := time.Now()

	config, err := pgxpool.ParseConfig(connectStr)
	if err != nil {
		return nil, fmt.Errorf("Ошибка при анализе строки для подключения: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("Ошибка при создании подключения: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("Ошибка соединения с БД: %w", err)
	}
	metrics.ConnectionEstablishDuration.Observe(time.Since(start).Seconds())

	return &Postgres{pool: pool, log: log.Named("postgres"), metrics: metrics}, nil
}

type migration struct{ id, sql string }

// Индексы добавляются через журнал schema_migrations, каждый применяется один раз
var migrations = []migration{
	{"0001_orders_creation_date", IndexOrdersCreationDate},
	{"0002_orders_sales_channel", IndexOrdersSalesChannel},
	{"0003_orders_customer", IndexOrdersCustomer},
	{"0004_order_items_order", IndexOrderItemsOrder},
	{"0005_order_payments_order", IndexOrderPaymentsOrder},
	{"0006_order_shippings_order", IndexOrderShipOrder},
	{"0007_order_promotions_order", IndexOrderPromosOrder},
	{"0008_queue_status_created", IndexQueueStatusCreated},
	{"0009_customers_updated", IndexCustomersUpdated},
}

// Init создает таблицы (идемпотентно) и применяет недостающие миграции
func (p *Postgres) Init(ctx context.Context) error {
	start := time.Now()
	defer func() { p.metrics.InitDuration.Observe(time.Since(start).Seconds()) }()

	return retry.DoWithContext(ctx, retry.StorePolicy(), func(ctx context.Context) error {
		tables := []string{
			CreateCustomersTable,
			CreateAddressesTable,
			CreateProductsTable,
			CreateSkusTable,
			CreateOrdersTable,
			CreateOrderItemsTable,
			CreateOrderPaymentsTable,
			CreateOrderShippingsTable,
			CreateOrderPromotionsTable,
			CreateOrderQueueTable,
			CreateSchemaMigrationsTable,
		}
		for _, query := range tables {
			if _, err := p.pool.Exec(ctx, query); err != nil {
				return fmt.Errorf("Ошибка создания таблицы: %w", err)
			}
		}

		for _, m := range migrations {
			var exists bool
			err := p.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE id=$1)`, m.id).Scan(&exists)
			if err != nil {
				return fmt.Errorf("Ошибка проверки миграции %s: %w", m.id, err)
			}
			if exists {
				continue
			}
			if _, err := p.pool.Exec(ctx, m.sql); err != nil {
				return fmt.Errorf("Ошибка применения миграции %s: %w", m.id, err)
			}
			if _, err := p.pool.Exec(ctx, `INSERT INTO schema_migrations (id) VALUES ($1)`, m.id); err != nil {
				return fmt.Errorf("Ошибка записи миграции %s: %w", m.id, err)
			}
			p.log.Info("Применена миграция", zap.String("id", m.id))
		}

		p.log.Info("БД инициализирована")
		return nil
	})
}

// SaveOrder записывает заказ, покупателя, адреса, товары и дочерние строки
// в одной транзакции. Дочерние строки заказа заменяются целиком.
func (p *Postgres) SaveOrder(ctx context.Context, ws *models.OrderWriteSet) (*models.Order, error) {
	if ws == nil || ws.Order.VtexOrderID == "" {
		return nil, errors.New("пустой набор строк заказа")
	}
	start := time.Now()

	var saved *models.Order
	err := retry.DoWithContext(ctx, retry.StorePolicy(), func(ctx context.Context) error {
		tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return fmt.Errorf("Ошибка начала транзакции: %w", err)
		}

		// Откатываем транзакцию только в случае ошибки
		shouldRollback := true
		defer func() {
			if shouldRollback {
				if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
					p.log.Warn("Ошибка при откате транзакции", zap.Error(err))
				}
			}
		}()

		order, err := writeOrder(ctx, tx, ws)
		if err != nil {
			p.metrics.TransactionErrorsTotal.Inc()
			if isDataError(err) {
				return retry.Permanent(err)
			}
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			p.metrics.TransactionErrorsTotal.Inc()
			return fmt.Errorf("Ошибка коммита транзакции: %w", err)
		}
		shouldRollback = false
		saved = order
		return nil
	})

	p.metrics.SaveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.FailedSavesTotal.Inc()
		return nil, fmt.Errorf("Ошибка сохранения заказа %s: %w", ws.Order.VtexOrderID, err)
	}
	p.metrics.SuccessfulSavesTotal.Inc()
	return saved, nil
}

// writeOrder выполняет все шаги записи заказа внутри транзакции
func writeOrder(ctx context.Context, tx pgx.Tx, ws *models.OrderWriteSet) (*models.Order, error) {
	customerID, err := upsertCustomer(ctx, tx, ws.Customer)
	if err != nil {
		return nil, fmt.Errorf("Ошибка записи покупателя: %w", err)
	}

	shippingAddressID, err := insertAddress(ctx, tx, ws.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("Ошибка записи адреса доставки: %w", err)
	}
	billingAddressID, err := insertAddress(ctx, tx, ws.BillingAddress)
	if err != nil {
		return nil, fmt.Errorf("Ошибка записи платежного адреса: %w", err)
	}

	order := ws.Order
	order.ID = uuid.NewString()
	order.CustomerID = customerID
	order.ShippingAddressID = shippingAddressID
	order.BillingAddressID = billingAddressID

	err = tx.QueryRow(ctx, UpsertOrderQuery, orderArgs(&order)...).Scan(&order.ID, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("Ошибка при записи заказа: %w", err)
	}

	for _, query := range []string{DeleteOrderItemsQuery, DeleteOrderPaymentsQuery, DeleteOrderShippingsQuery, DeleteOrderPromotionsQuery} {
		if _, err := tx.Exec(ctx, query, order.ID); err != nil {
			return nil, fmt.Errorf("Ошибка удаления дочерних строк: %w", err)
		}
	}

	batch := &pgx.Batch{}
	for _, iw := range ws.Items {
		productID, skuID, err := upsertCatalog(ctx, tx, iw)
		if err != nil {
			return nil, err
		}
		it := iw.Item
		batch.Queue(InsertOrderItemQuery, uuid.NewString(), order.ID, it.UniqueItemID, productID, skuID, it.Seller,
			it.Quantity, it.Price, it.ListPrice, it.SellingPrice, it.ManualPrice, it.TotalPrice, it.TotalDiscount,
			it.Tax, it.MeasurementUnit, it.UnitMultiplier, it.IsGift, it.IsCustomized, it.RefID, it.SkuRefID)
	}
	for _, pm := range ws.Payments {
		batch.Queue(InsertOrderPaymentQuery, uuid.NewString(), order.ID, pm.TransactionID, pm.PaymentID,
			pm.PaymentSystem, pm.PaymentGroup, pm.PaymentName, pm.Installments, pm.Value, pm.Status,
			pm.AuthorizationID, pm.TID, pm.NSU, pm.Gateway, pm.CardBin, pm.CardLast4, pm.CardHolder)
	}
	for _, sh := range ws.Shippings {
		batch.Queue(InsertOrderShippingQuery, uuid.NewString(), order.ID, shippingAddressID, sh.DeliveryChannel,
			sh.ShippingSLA, sh.Carrier, sh.ShippingEstimate, sh.ShippingEstimateDate, sh.ShippingValue,
			jsonArg(sh.DeliveryWindow), sh.PickupPointID, sh.PickupFriendlyName, sh.IsDelivered)
	}
	for _, pr := range ws.Promotions {
		batch.Queue(InsertOrderPromotionQuery, uuid.NewString(), order.ID, pr.PromotionID, pr.Name, pr.Description,
			pr.Value, pr.IsCumulative, pr.Type, pr.CouponCode, jsonArg(pr.Raw))
	}
	if err := execBatch(ctx, tx, batch); err != nil {
		return nil, fmt.Errorf("Ошибка добавления дочерних строк: %w", err)
	}

	return &order, nil
}

// upsertCatalog обновляет товар и SKU позиции, возвращает их идентификаторы
func upsertCatalog(ctx context.Context, tx pgx.Tx, iw models.ItemWrite) (productID, skuID *string, err error) {
	if pr := iw.Product; pr != nil {
		var id string
		if err := tx.QueryRow(ctx, UpsertProductQuery, uuid.NewString(), pr.VtexProductID, pr.Name, pr.Brand).Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("Ошибка записи товара %s: %w", pr.VtexProductID, err)
		}
		productID = &id
	}
	if sk := iw.Sku; sk != nil {
		var id string
		if err := tx.QueryRow(ctx, UpsertSkuQuery, uuid.NewString(), sk.VtexSkuID, productID, sk.Name, sk.RefID, sk.EAN).Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("Ошибка записи SKU %s: %w", sk.VtexSkuID, err)
		}
		skuID = &id
	}
	return productID, skuID, nil
}

func insertAddress(ctx context.Context, tx pgx.Tx, a *models.Address) (*string, error) {
	if a == nil {
		return nil, nil
	}
	id := uuid.NewString()
	_, err := tx.Exec(ctx, InsertAddressQuery, id, a.Type, a.Street, a.Number, a.Complement, a.Neighborhood,
		a.City, a.State, a.PostalCode, a.Country, a.GeoLat, a.GeoLng)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func orderArgs(o *models.Order) []any {
	return []any{
		o.ID, o.VtexOrderID, o.VtexSequence, o.MarketplaceOrderID, o.Status,
		o.StatusDescription, o.IsCompleted, o.CreationDate, o.LastChange, o.TotalValue, o.ItemsValue,
		o.ShippingValue, o.DiscountsValue, o.TaxValue, o.RoundingValue, o.SalesChannel, o.Seller, o.AffiliateID,
		o.AffiliateName, o.Origin, o.Source, o.Device, o.UserAgent, o.UtmSource, o.UtmMedium, o.UtmCampaign,
		o.UtmTerm, o.UtmContent, o.UtmiCp, o.UtmiPart, o.Coupon, o.Currency, jsonArg(o.Raw), o.CustomerID,
		o.BillingAddressID, o.ShippingAddressID,
	}
}

// jsonArg пустой документ записывается как NULL
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// execBatch выполняет пачку запросов по порядку
func execBatch(ctx context.Context, conn batchSender, batch *pgx.Batch) error {
	_, err := execBatchCount(ctx, conn, batch)
	return err
}

// execBatchCount то же, что execBatch, и возвращает количество затронутых строк
func execBatchCount(ctx context.Context, conn batchSender, batch *pgx.Batch) (int, error) {
	if batch.Len() == 0 {
		return 0, nil
	}
	br := conn.SendBatch(ctx, batch)
	affected := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return affected, err
		}
		affected += int(tag.RowsAffected())
	}
	return affected, br.Close()
}

// isDataError ошибки класса 22 (некорректные данные) не исправляются повтором
func isDataError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "22"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// OrderExists проверяет наличие заказа по внешнему идентификатору
func (p *Postgres) OrderExists(ctx context.Context, vtexOrderID string) (bool, error) {
	var exists bool
	err := p.observe("order_exists", func() error {
		return p.pool.QueryRow(ctx, OrderExistsQuery, vtexOrderID).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("Ошибка проверки заказа %s: %w", vtexOrderID, err)
	}
	return exists, nil
}

// OldestOrderDate дата создания самого старого заказа
func (p *Postgres) OldestOrderDate(ctx context.Context) (*time.Time, error) {
	var oldest *time.Time
	err := p.observe("oldest_order_date", func() error {
		return p.pool.QueryRow(ctx, OldestOrderDateQuery).Scan(&oldest)
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка при запросе даты старейшего заказа: %w", err)
	}
	return oldest, nil
}

// ListOrderIDs возвращает внешние идентификаторы всех заказов, новые первыми
func (p *Postgres) ListOrderIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := p.observe("list_order_ids", func() error {
		rows, err := p.pool.Query(ctx, ListOrderIDsQuery)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка при запросе заказов: %w", err)
	}
	return ids, nil
}

// PurgeOutsideChannel удаляет заказы, чей канал продаж отличается от salesChannel
// (включая заказы без канала), пачками по batchSize. Дочерние строки удаляются каскадно.
func (p *Postgres) PurgeOutsideChannel(ctx context.Context, salesChannel string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultPurgeBatch
	}
	total := 0
	for {
		var deleted int
		err := p.observe("purge_outside_channel", func() error {
			tag, err := p.pool.Exec(ctx, PurgeOutsideChannelQuery, salesChannel, batchSize)
			deleted = int(tag.RowsAffected())
			return err
		})
		if err != nil {
			return total, fmt.Errorf("Ошибка удаления заказов чужого канала: %w", err)
		}
		if deleted == 0 {
			break
		}
		total += deleted
		p.metrics.PurgedOrdersTotal.Add(float64(deleted))
		p.log.Info("Удалены заказы чужого канала продаж",
			zap.String("sales_channel", salesChannel), zap.Int("batch", deleted), zap.Int("total", total))
	}
	return total, nil
}

// ChildCounts количество дочерних строк заказа
type ChildCounts struct {
	Items      int
	Payments   int
	Shippings  int
	Promotions int
}

// OrderChildCounts считает дочерние строки заказа по внутреннему идентификатору
func (p *Postgres) OrderChildCounts(ctx context.Context, orderID string) (ChildCounts, error) {
	var c ChildCounts
	err := p.pool.QueryRow(ctx, CountOrderChildrenQuery, orderID).Scan(&c.Items, &c.Payments, &c.Shippings, &c.Promotions)
	if err != nil {
		return c, fmt.Errorf("Ошибка подсчета строк заказа: %w", err)
	}
	return c, nil
}

// observe учитывает длительность и ошибки запроса в метриках
func (p *Postgres) observe(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.QueryErrors.WithLabelValues(operation).Inc()
	}
	return err
}

// Close закрывает соединение с базой данных
func (p *Postgres) Close() {
	p.pool.Close()
}
