// Package interfaces содержит интерфейсы основных компонентов приложения
package interfaces

import (
	"context"
	"errors"
	"time"

	"order_ingest/internal/models"
)

// ErrEmailConflict e-mail уже принадлежит другому покупателю
var ErrEmailConflict = errors.New("email already belongs to another customer")

//go:generate mockgen -source=interfaces.go -destination=../mocks/mocks.go -package=mocks

// OrderStore хранилище нормализованных заказов
type OrderStore interface {
	// Init создает схему (идемпотентно)
	Init(ctx context.Context) error

	// SaveOrder записывает заказ со всеми связанными строками
	SaveOrder(ctx context.Context, ws *models.OrderWriteSet) (*models.Order, error)

	// OrderExists проверяет наличие заказа по внешнему идентификатору
	OrderExists(ctx context.Context, vtexOrderID string) (bool, error)

	// OldestOrderDate дата создания самого старого заказа, nil если заказов нет
	OldestOrderDate(ctx context.Context) (*time.Time, error)

	// ListOrderIDs возвращает внешние идентификаторы всех заказов, новые первыми
	ListOrderIDs(ctx context.Context) ([]string, error)

	// PurgeOutsideChannel удаляет заказы чужих каналов продаж пачками
	PurgeOutsideChannel(ctx context.Context, salesChannel string, batchSize int) (int, error)

	// Close закрывает соединение
	Close()
}

// QueueStore очередь заказов на загрузку
type QueueStore interface {
	// EnqueueOrders добавляет элементы, пропуская уже существующие. Возвращает число добавленных.
	EnqueueOrders(ctx context.Context, items []models.QueueItem) (int, error)

	// FetchQueueBatch выбирает до limit элементов pending (и failed при includeFailed)
	// с attempts < maxAttempts в порядке создания
	FetchQueueBatch(ctx context.Context, limit int, includeFailed bool, maxAttempts int) ([]models.QueueItem, error)

	// MarkProcessing переводит элемент в processing и увеличивает attempts
	MarkProcessing(ctx context.Context, id string) error

	// MarkFailed переводит элемент в failed с сообщением об ошибке
	MarkFailed(ctx context.Context, id string, message string) error

	// DeleteQueueItem удаляет обработанный элемент
	DeleteQueueItem(ctx context.Context, id string) error

	// RequeueOrder возвращает заказ в очередь: pending, attempts = 0
	RequeueOrder(ctx context.Context, vtexOrderID string) error

	// QueueCounts количество элементов по статусам
	QueueCounts(ctx context.Context) (map[models.QueueStatus]int, error)

	// CountExhausted количество failed элементов с attempts >= maxAttempts.
	// FetchQueueBatch их не выбирает; вернуть в работу можно только через RequeueOrder.
	CountExhausted(ctx context.Context, maxAttempts int) (int, error)
}

// CustomerStore операции обслуживания покупателей
type CustomerStore interface {
	// ListMaskedCustomers покупатели с e-mail, оканчивающимся на suffix, новые первыми.
	// linkedOnly: только с внешним id. limit <= 0: все.
	ListMaskedCustomers(ctx context.Context, suffix string, linkedOnly bool, limit int) ([]models.Customer, error)

	// UpdateCustomerEmail обновляет e-mail. ErrEmailConflict, если адрес занят.
	UpdateCustomerEmail(ctx context.Context, customerID, email string) error
}

// Reports агрегированные отчеты
type Reports interface {
	Summary(ctx context.Context, f models.ReportFilter) (*models.Summary, error)
	OrdersSeries(ctx context.Context, f models.ReportFilter, groupBy, utmSource string) ([]models.SeriesPoint, error)
	TopProducts(ctx context.Context, f models.ReportFilter, sort string, limit int) ([]models.ProductRow, error)
	Customers(ctx context.Context, f models.ReportFilter, limit int) (*models.CustomersReport, error)
	Retention(ctx context.Context, f models.ReportFilter) ([]models.RetentionRow, error)
	Cohort(ctx context.Context, f models.ReportFilter) ([]models.CohortRow, error)
	NewVsReturning(ctx context.Context, f models.ReportFilter) ([]models.NewVsReturningRow, error)
	// UTM limit <= 0: без ограничения
	UTM(ctx context.Context, f models.ReportFilter, limit int) ([]models.UTMRow, error)
	Shipping(ctx context.Context, f models.ReportFilter, limit int) ([]models.ShippingRow, error)
	Payments(ctx context.Context, f models.ReportFilter, limit int) ([]models.PaymentRow, error)
}

// OrderSource источник заказов (OMS VTEX)
type OrderSource interface {
	ListOrders(ctx context.Context, q models.OrderListQuery) (*models.OrderList, error)
	GetOrder(ctx context.Context, orderID string) (*models.OrderDetail, error)
}

// ProfileSource поиск профилей клиентов (Masterdata VTEX)
type ProfileSource interface {
	SearchProfiles(ctx context.Context, where string) ([]models.Profile, error)
}

// EmailResolver определяет настоящий e-mail покупателя
type EmailResolver interface {
	// Resolve никогда не возвращает ошибку: при сбое результат nil или fallback
	Resolve(ctx context.Context, userID, fallbackEmail string) *string
}

// OrderProcessor загружает и сохраняет заказ по внешнему идентификатору
type OrderProcessor interface {
	ProcessOrderID(ctx context.Context, vtexOrderID string) (*models.Order, error)
}

// EventPublisher публикует события о сохраненных заказах
type EventPublisher interface {
	PublishOrderIngested(ctx context.Context, order *models.Order) error
	Close() error
}

// DeadLetterSink принимает элементы очереди, исчерпавшие попытки
type DeadLetterSink interface {
	SendToDLQ(ctx context.Context, item models.QueueItem, cause error) error
	Close() error
}
