package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// CartRequest replaces the caller's cart.
type CartRequest struct {
	Items []domain.CartItem `json:"items"`
}

// OrderStatusRequest updates an order's fulfilment status.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse projection.
type OrderItemResponse struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// OrderResponse projection.
type OrderResponse struct {
	ID         string              `json:"id"`
	UserID     string              `json:"user_id"`
	Status     string              `json:"status"`
	PaymentRef string              `json:"payment_ref"`
	TotalCents int64               `json:"total_cents"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewOrderResponse projects a domain order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}
	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		PaymentRef: o.PaymentRef,
		TotalCents: o.TotalCents,
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
}

// NewOrderResponses projects a slice.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
