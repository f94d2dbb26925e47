// Package memstore хранилище в памяти с той же семантикой, что и PostgreSQL.
// Используется в тестах сервисов и для пробных запусков без БД.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
)

type orderRecord struct {
	order      models.Order
	items      []models.OrderItem
	payments   []models.OrderPayment
	shippings  []models.OrderShipping
	promotions []models.OrderPromotion
}

type queueEntry struct {
	item models.QueueItem
	seq  int64
}

// Store реализует OrderStore, QueueStore и CustomerStore
type Store struct {
	mu        sync.RWMutex
	orders    map[string]*orderRecord // по vtex_order_id
	customers map[string]*models.Customer
	addresses map[string]models.Address
	products  map[string]*models.Product // по vtex_product_id
	skus      map[string]*models.Sku     // по vtex_sku_id
	queue     map[string]*queueEntry     // по vtex_order_id
	seq       int64
}

var (
	_ interfaces.OrderStore    = (*Store)(nil)
	_ interfaces.QueueStore    = (*Store)(nil)
	_ interfaces.CustomerStore = (*Store)(nil)
)

// New создает пустое хранилище
func New() *Store {
	return &Store{
		orders:    make(map[string]*orderRecord),
		customers: make(map[string]*models.Customer),
		addresses: make(map[string]models.Address),
		products:  make(map[string]*models.Product),
		skus:      make(map[string]*models.Sku),
		queue:     make(map[string]*queueEntry),
	}
}

// Init ничего не делает
func (s *Store) Init(context.Context) error { return nil }

// Close ничего не делает
func (s *Store) Close() {}

// SaveOrder записывает заказ атомарно под блокировкой
func (s *Store) SaveOrder(ctx context.Context, ws *models.OrderWriteSet) (*models.Order, error) {
	if ws == nil || ws.Order.VtexOrderID == "" {
		return nil, errors.New("пустой набор строк заказа")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := ws.Order
	order.CustomerID = s.upsertCustomer(ws.Customer)
	order.ShippingAddressID = s.insertAddress(ws.ShippingAddress)
	order.BillingAddressID = s.insertAddress(ws.BillingAddress)
	order.UpdatedAt = time.Now()

	rec, ok := s.orders[order.VtexOrderID]
	if ok {
		order.ID = rec.order.ID
	} else {
		order.ID = uuid.NewString()
		rec = &orderRecord{}
		s.orders[order.VtexOrderID] = rec
	}
	rec.order = order

	// Дочерние строки заменяются целиком
	rec.items = rec.items[:0]
	for _, iw := range ws.Items {
		item := iw.Item
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		item.ProductID, item.SkuID = s.upsertCatalog(iw)
		rec.items = append(rec.items, item)
	}
	rec.payments = rec.payments[:0]
	for _, pm := range ws.Payments {
		pm.ID = uuid.NewString()
		pm.OrderID = order.ID
		rec.payments = append(rec.payments, pm)
	}
	rec.shippings = rec.shippings[:0]
	for _, sh := range ws.Shippings {
		sh.ID = uuid.NewString()
		sh.OrderID = order.ID
		sh.AddressID = order.ShippingAddressID
		rec.shippings = append(rec.shippings, sh)
	}
	rec.promotions = rec.promotions[:0]
	for _, pr := range ws.Promotions {
		pr.ID = uuid.NewString()
		pr.OrderID = order.ID
		rec.promotions = append(rec.promotions, pr)
	}

	saved := order
	return &saved, nil
}

func (s *Store) upsertCustomer(c *models.Customer) *string {
	if c == nil {
		return nil
	}

	var existing *models.Customer
	switch {
	case c.VtexCustomerID != nil:
		existing = s.findCustomer(func(x *models.Customer) bool {
			return x.VtexCustomerID != nil && *x.VtexCustomerID == *c.VtexCustomerID
		})
		if existing == nil && c.Email != nil {
			existing = s.findCustomer(func(x *models.Customer) bool {
				return x.VtexCustomerID == nil && x.Email != nil && *x.Email == *c.Email
			})
		}
	case c.Email != nil:
		existing = s.findCustomer(func(x *models.Customer) bool {
			return x.Email != nil && *x.Email == *c.Email
		})
	}

	email := c.Email
	if email != nil {
		owner := s.findCustomer(func(x *models.Customer) bool { return x.Email != nil && *x.Email == *email })
		if owner != nil && (existing == nil || owner.ID != existing.ID) {
			email = nil
		}
	}

	next := *c
	next.UpdatedAt = time.Now()
	if existing != nil {
		next.ID = existing.ID
		if next.VtexCustomerID == nil {
			next.VtexCustomerID = existing.VtexCustomerID
		}
		if email == nil {
			email = existing.Email
		}
	} else {
		next.ID = uuid.NewString()
	}
	next.Email = email
	s.customers[next.ID] = &next

	id := next.ID
	return &id
}

func (s *Store) findCustomer(match func(*models.Customer) bool) *models.Customer {
	for _, c := range s.customers {
		if match(c) {
			return c
		}
	}
	return nil
}

func (s *Store) insertAddress(a *models.Address) *string {
	if a == nil {
		return nil
	}
	addr := *a
	addr.ID = uuid.NewString()
	s.addresses[addr.ID] = addr
	id := addr.ID
	return &id
}

func (s *Store) upsertCatalog(iw models.ItemWrite) (productID, skuID *string) {
	if pr := iw.Product; pr != nil {
		cur, ok := s.products[pr.VtexProductID]
		if !ok {
			cur = &models.Product{ID: uuid.NewString(), VtexProductID: pr.VtexProductID}
			s.products[pr.VtexProductID] = cur
		}
		cur.Name, cur.Brand = pr.Name, pr.Brand
		id := cur.ID
		productID = &id
	}
	if sk := iw.Sku; sk != nil {
		cur, ok := s.skus[sk.VtexSkuID]
		if !ok {
			cur = &models.Sku{ID: uuid.NewString(), VtexSkuID: sk.VtexSkuID}
			s.skus[sk.VtexSkuID] = cur
		}
		cur.ProductID, cur.Name, cur.RefID, cur.EAN = productID, sk.Name, sk.RefID, sk.EAN
		id := cur.ID
		skuID = &id
	}
	return productID, skuID
}

// OrderExists проверяет наличие заказа
func (s *Store) OrderExists(_ context.Context, vtexOrderID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.orders[vtexOrderID]
	return ok, nil
}

// OldestOrderDate дата создания самого старого заказа
func (s *Store) OldestOrderDate(context.Context) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var oldest *time.Time
	for _, rec := range s.orders {
		if d := rec.order.CreationDate; d != nil && (oldest == nil || d.Before(*oldest)) {
			t := *d
			oldest = &t
		}
	}
	return oldest, nil
}

// ListOrderIDs внешние идентификаторы заказов, новые первыми
func (s *Store) ListOrderIDs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*orderRecord, 0, len(s.orders))
	for _, rec := range s.orders {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i].order.CreationDate, recs[j].order.CreationDate
		switch {
		case a == nil && b == nil:
			return recs[i].order.VtexOrderID < recs[j].order.VtexOrderID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return recs[i].order.VtexOrderID < recs[j].order.VtexOrderID
	})

	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.order.VtexOrderID
	}
	return ids, nil
}

// PurgeOutsideChannel удаляет заказы с другим каналом продаж или без канала
func (s *Store) PurgeOutsideChannel(ctx context.Context, salesChannel string, _ int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, rec := range s.orders {
		if rec.order.SalesChannel == nil || *rec.order.SalesChannel != salesChannel {
			delete(s.orders, id)
			deleted++
		}
	}
	return deleted, nil
}

// Order возвращает сохраненный заказ
func (s *Store) Order(vtexOrderID string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[vtexOrderID]
	if !ok {
		return models.Order{}, false
	}
	return rec.order, true
}

// Children возвращает копии дочерних строк заказа
func (s *Store) Children(vtexOrderID string) ([]models.OrderItem, []models.OrderPayment, []models.OrderShipping, []models.OrderPromotion) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[vtexOrderID]
	if !ok {
		return nil, nil, nil, nil
	}
	return append([]models.OrderItem(nil), rec.items...),
		append([]models.OrderPayment(nil), rec.payments...),
		append([]models.OrderShipping(nil), rec.shippings...),
		append([]models.OrderPromotion(nil), rec.promotions...)
}

// OrderChildCounts считает дочерние строки всех заказов, ссылающиеся на внутренний идентификатор orderID
func (s *Store) OrderChildCounts(orderID string) (items, payments, shippings, promotions int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.orders {
		for _, it := range rec.items {
			if it.OrderID == orderID {
				items++
			}
		}
		for _, pm := range rec.payments {
			if pm.OrderID == orderID {
				payments++
			}
		}
		for _, sh := range rec.shippings {
			if sh.OrderID == orderID {
				shippings++
			}
		}
		for _, pr := range rec.promotions {
			if pr.OrderID == orderID {
				promotions++
			}
		}
	}
	return items, payments, shippings, promotions
}

// Customer возвращает покупателя по id
func (s *Store) Customer(id string) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return models.Customer{}, false
	}
	return *c, true
}

// Counts количество строк по сущностям
func (s *Store) Counts() (orders, customers, addresses, products, skus int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders), len(s.customers), len(s.addresses), len(s.products), len(s.skus)
}

// PutCustomer добавляет покупателя напрямую (для подготовки данных)
func (s *Store) PutCustomer(c models.Customer) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	s.customers[c.ID] = &c
	return c.ID
}

// EnqueueOrders добавляет элементы, пропуская существующие
func (s *Store) EnqueueOrders(ctx context.Context, items []models.QueueItem) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, it := range items {
		if _, ok := s.queue[it.VtexOrderID]; ok {
			continue
		}
		s.addQueueItem(it)
		inserted++
	}
	return inserted, nil
}

func (s *Store) addQueueItem(it models.QueueItem) *queueEntry {
	s.seq++
	it.ID = uuid.NewString()
	it.ProcessingStatus = models.QueuePending
	it.Attempts = 0
	it.LastError = nil
	it.CreatedAt = time.Now()
	e := &queueEntry{item: it, seq: s.seq}
	s.queue[it.VtexOrderID] = e
	return e
}

// FetchQueueBatch элементы pending (и failed при includeFailed) с attempts < maxAttempts
func (s *Store) FetchQueueBatch(ctx context.Context, limit int, includeFailed bool, maxAttempts int) ([]models.QueueItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*queueEntry
	for _, e := range s.queue {
		st := e.item.ProcessingStatus
		if st != models.QueuePending && !(includeFailed && st == models.QueueFailed) {
			continue
		}
		if e.item.Attempts >= maxAttempts {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]models.QueueItem, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	return items, nil
}

func (s *Store) byID(id string) (*queueEntry, error) {
	for _, e := range s.queue {
		if e.item.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("элемент очереди %s не найден", id)
}

// MarkProcessing переводит элемент в processing и увеличивает attempts
func (s *Store) MarkProcessing(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.byID(id)
	if err != nil {
		return err
	}
	e.item.ProcessingStatus = models.QueueProcessing
	e.item.Attempts++
	e.item.LastError = nil
	return nil
}

// MarkFailed переводит элемент в failed с обрезанным сообщением
func (s *Store) MarkFailed(_ context.Context, id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.byID(id)
	if err != nil {
		return err
	}
	msg := models.TruncateError(message)
	e.item.ProcessingStatus = models.QueueFailed
	e.item.LastError = &msg
	return nil
}

// DeleteQueueItem удаляет элемент
func (s *Store) DeleteQueueItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.byID(id)
	if err != nil {
		return nil
	}
	delete(s.queue, e.item.VtexOrderID)
	return nil
}

// RequeueOrder сбрасывает элемент в pending с attempts = 0 или добавляет новый
func (s *Store) RequeueOrder(_ context.Context, vtexOrderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.queue[vtexOrderID]; ok {
		e.item.ProcessingStatus = models.QueuePending
		e.item.Attempts = 0
		e.item.LastError = nil
		return nil
	}
	s.addQueueItem(models.QueueItem{VtexOrderID: vtexOrderID})
	return nil
}

// QueueCounts количество элементов по статусам
func (s *Store) QueueCounts(context.Context) (map[models.QueueStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[models.QueueStatus]int)
	for _, e := range s.queue {
		counts[e.item.ProcessingStatus]++
	}
	return counts, nil
}

// CountExhausted количество failed элементов с attempts >= maxAttempts
func (s *Store) CountExhausted(_ context.Context, maxAttempts int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.queue {
		if e.item.ProcessingStatus == models.QueueFailed && e.item.Attempts >= maxAttempts {
			n++
		}
	}
	return n, nil
}

// QueueItem возвращает элемент очереди по внешнему id заказа
func (s *Store) QueueItem(vtexOrderID string) (models.QueueItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.queue[vtexOrderID]
	if !ok {
		return models.QueueItem{}, false
	}
	return e.item, true
}

// ListMaskedCustomers покупатели с e-mail с суффиксом suffix, новые первыми
func (s *Store) ListMaskedCustomers(_ context.Context, suffix string, linkedOnly bool, limit int) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Customer
	for _, c := range s.customers {
		if c.Email == nil || !strings.HasSuffix(*c.Email, suffix) || (linkedOnly && c.VtexCustomerID == nil) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdateCustomerEmail обновляет e-mail, ErrEmailConflict если адрес занят
func (s *Store) UpdateCustomerEmail(_ context.Context, customerID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok {
		return fmt.Errorf("покупатель %s не найден", customerID)
	}
	for _, other := range s.customers {
		if other.ID != customerID && other.Email != nil && *other.Email == email {
			return fmt.Errorf("%w: %s", interfaces.ErrEmailConflict, email)
		}
	}
	c.Email = &email
	c.UpdatedAt = time.Now()
	return nil
}
