package kafka

import (
	"time"

	"github.com/go-playground/validator/v10"

	"order_ingest/internal/models"
)

var validate = validator.New()

// EventOrderIngested тип события о записанном заказе
const EventOrderIngested = "order.ingested"

// OrderIngestedEvent событие о записанном заказе
type OrderIngestedEvent struct {
	Type         string     `json:"type"`
	OrderID      string     `json:"order_id"`
	VtexOrderID  string     `json:"vtex_order_id"`
	Status       *string    `json:"status"`
	IsCompleted  bool       `json:"is_completed"`
	SalesChannel *string    `json:"sales_channel"`
	TotalValue   *int64     `json:"total_value"`
	CreationDate *time.Time `json:"creation_date"`
	IngestedAt   time.Time  `json:"ingested_at"`
}

// NewOrderIngestedEvent создает событие по сохраненному заказу
func NewOrderIngestedEvent(o *models.Order, now time.Time) OrderIngestedEvent {
	return OrderIngestedEvent{
		Type:         EventOrderIngested,
		OrderID:      o.ID,
		VtexOrderID:  o.VtexOrderID,
		Status:       o.Status,
		IsCompleted:  o.IsCompleted,
		SalesChannel: o.SalesChannel,
		TotalValue:   o.TotalValue,
		CreationDate: o.CreationDate,
		IngestedAt:   now.UTC(),
	}
}

// ReplayRequest запрос на повторную загрузку заказа
type ReplayRequest struct {
	VtexOrderID string `json:"vtex_order_id" validate:"required"`
}

// DLQMessage элемент очереди, исчерпавший попытки
type DLQMessage struct {
	QueueItemID string    `json:"queue_item_id"`
	VtexOrderID string    `json:"vtex_order_id"`
	Attempts    int       `json:"attempts"`
	LastError   string    `json:"last_error"`
	Error       string    `json:"error"` // Ошибка последней попытки
	Timestamp   time.Time `json:"timestamp"`
}
