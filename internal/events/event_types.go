package events

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	TotalCents int64 `json:"total_cents"`
	ItemCount  int   `json:"item_count"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
