package models

import "time"

// QueueStatus состояние элемента очереди
type QueueStatus string

const (
	QueuePending    QueueStatus = "pending"
	QueueProcessing QueueStatus = "processing"
	QueueFailed     QueueStatus = "failed"
)

// MaxErrorLength ограничение длины сохраняемого сообщения об ошибке
const MaxErrorLength = 2000

// QueueItem элемент очереди заказов на загрузку
type QueueItem struct {
	ID               string      `json:"id"`
	VtexOrderID      string      `json:"vtex_order_id"`
	VtexSequence     *string     `json:"vtex_sequence"`
	Status           *string     `json:"status"`
	CreationDate     *time.Time  `json:"creation_date"`
	LastChange       *time.Time  `json:"last_change"`
	ProcessingStatus QueueStatus `json:"processing_status"`
	Attempts         int         `json:"attempts"`
	LastError        *string     `json:"last_error"`
	CreatedAt        time.Time   `json:"created_at"`
}

// TruncateError обрезает сообщение об ошибке до MaxErrorLength байт,
// не разрывая многобайтовые символы
func TruncateError(msg string) string {
	if len(msg) <= MaxErrorLength {
		return msg
	}
	cut := MaxErrorLength
	for cut > 0 && !isRuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
