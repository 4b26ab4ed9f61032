package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUnknownOrderStatus = errors.New("unknown order status")
)

// OrderService coordinates checkout and order management.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	carts      repository.CartRepository
	gateway    PaymentGateway
	dispatcher events.Dispatcher
	currency   string
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	Gateway     PaymentGateway
	Dispatcher  events.Dispatcher
	Currency    string
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		products:   deps.ProductRepo,
		carts:      deps.CartRepo,
		gateway:    deps.Gateway,
		dispatcher: deps.Dispatcher,
		currency:   deps.Currency,
	}
}

// Checkout turns the user's cart into an order: prices are resolved from
// the catalog (never trusted from the client), the gateway is charged,
// the order is persisted and the cart cleared.
func (s *OrderService) Checkout(ctx context.Context, userID string) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		items []domain.OrderItem
		total int64
	)
	for _, ci := range cart.Items {
		if ci.Quantity <= 0 {
			continue
		}
		product, err := s.products.GetByID(ctx, ci.ProductID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   ci.Quantity,
		})
		total += product.PriceCents * int64(ci.Quantity)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	paymentRef, err := s.gateway.Charge(ctx, userID, total, s.currency)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:     userID,
		Status:     domain.OrderStatusNotProcessed,
		PaymentRef: paymentRef,
		TotalCents: total,
		Items:      items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable.
		return order, nil
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderPlaced,
		OrderID:   order.ID,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload: events.OrderPlacedPayload{
			TotalCents: order.TotalCents,
			ItemCount:  len(order.Items),
		},
	})
	return order, nil
}

// ListForUser returns the caller's own orders.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order; admin only at the route level.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus moves an order to a new status and publishes the change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrUnknownOrderStatus
	}

	previous, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderStatusChanged,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Timestamp: time.Now(),
		Payload: events.OrderStatusChangedPayload{
			OldStatus: previous.Status,
			NewStatus: order.Status,
		},
	})
	return order, nil
}

// GetCart returns the user's cart.
func (s *OrderService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// PutCart replaces the user's cart, dropping non-positive quantities.
func (s *OrderService) PutCart(ctx context.Context, userID string, cart *domain.Cart) error {
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Quantity > 0 && item.ProductID != "" {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	return s.carts.Put(ctx, userID, cart)
}

// ClearCart empties the user's cart.
func (s *OrderService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}
