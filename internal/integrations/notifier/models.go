package notifier

import (
	"time"

	"github.com/google/uuid"
)

// Event тип события, по которому отправляется уведомление
type Event string

const (
	EventOrderCreated   Event = "order.created"
	EventOrderConfirmed Event = "order.confirmed"
	EventOrderCancelled Event = "order.cancelled"
	EventOrderCompleted Event = "order.completed"
)

// Notification уведомление для пользователя (клиента или мастера)
type Notification struct {
	ID          uuid.UUID         `json:"id"`
	Event       Event             `json:"event"`
	RecipientID int64             `json:"recipientId"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// New создает уведомление с новым идентификатором
func New(event Event, recipientID int64, title, body string, data map[string]string) Notification {
	return Notification{
		ID:          uuid.New(),
		Event:       event,
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
}
