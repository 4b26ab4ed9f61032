package domain

import "time"

// OrderStatus enumerates fulfilment states. The set is closed: status
// updates must name one of these values exactly.
type OrderStatus string

const (
	OrderStatusNotProcessed OrderStatus = "NOT_PROCESSED"
	OrderStatusProcessing   OrderStatus = "PROCESSING"
	OrderStatusShipped      OrderStatus = "SHIPPED"
	OrderStatusDelivered    OrderStatus = "DELIVERED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s names a known status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNotProcessed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a priced line item captured at checkout time. Name and
// price are denormalized so later product edits do not rewrite history.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int
}

// Order is a placed purchase.
type Order struct {
	ID         string
	UserID     string
	Status     OrderStatus
	PaymentRef string
	TotalCents int64
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
