package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
)

type fakeOrderRepo struct {
	seq    int
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.seq++
	order.ID = fmt.Sprintf("order-%d", f.seq)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, nil
}

type fakeCartRepo struct {
	carts    map[string]*domain.Cart
	clearErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartRepo) Get(_ context.Context, userID string) (*domain.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}
	clone := *cart
	return &clone, nil
}

func (f *fakeCartRepo) Put(_ context.Context, userID string, cart *domain.Cart) error {
	clone := *cart
	f.carts[userID] = &clone
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.carts, userID)
	return nil
}

type fakeGateway struct {
	charges []int64
	err     error
}

func (f *fakeGateway) Charge(_ context.Context, _ string, amountCents int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.charges = append(f.charges, amountCents)
	return fmt.Sprintf("charge-%d", len(f.charges)), nil
}

type orderFixture struct {
	svc        *OrderService
	orders     *fakeOrderRepo
	products   *fakeProductRepo
	carts      *fakeCartRepo
	gateway    *fakeGateway
	dispatcher events.Dispatcher
	published  *[]events.Event
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	gateway := &fakeGateway{}
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	record := func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	}
	dispatcher.Subscribe(events.EventOrderPlaced, record)
	dispatcher.Subscribe(events.EventOrderStatusChanged, record)

	svc := NewOrderService(OrderDependencies{
		OrderRepo:   orders,
		ProductRepo: products,
		CartRepo:    carts,
		Gateway:     gateway,
		Dispatcher:  dispatcher,
		Currency:    "usd",
	})
	return &orderFixture{
		svc:        svc,
		orders:     orders,
		products:   products,
		carts:      carts,
		gateway:    gateway,
		dispatcher: dispatcher,
		published:  &published,
	}
}

func (fx *orderFixture) seedProduct(t *testing.T, name string, priceCents int64) *domain.Product {
	t.Helper()
	product := &domain.Product{Name: name, Slug: Slugify(name), PriceCents: priceCents, Quantity: 100}
	require.NoError(t, fx.products.Create(context.Background(), product))
	return product
}

func TestCheckout(t *testing.T) {
	fx := newOrderFixture(t)
	mug := fx.seedProduct(t, "Mug", 900)
	pen := fx.seedProduct(t, "Pen", 150)

	fx.carts.carts["user-1"] = &domain.Cart{Items: []domain.CartItem{
		{ProductID: mug.ID, Quantity: 2},
		{ProductID: pen.ID, Quantity: 3},
	}}

	order, err := fx.svc.Checkout(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(2*900+3*150), order.TotalCents)
	require.Equal(t, domain.OrderStatusNotProcessed, order.Status)
	require.Len(t, order.Items, 2)
	require.Equal(t, "charge-1", order.PaymentRef)

	// Catalog prices were charged, the cart cleared and an event published.
	require.Equal(t, []int64{2250}, fx.gateway.charges)
	cart, err := fx.carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Len(t, *fx.published, 1)
	require.Equal(t, events.EventOrderPlaced, (*fx.published)[0].Type)
	require.Equal(t, order.ID, (*fx.published)[0].OrderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.svc.Checkout(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Empty(t, fx.gateway.charges)
}

func TestCheckoutOnlyZeroQuantities(t *testing.T) {
	fx := newOrderFixture(t)
	mug := fx.seedProduct(t, "Mug", 900)

	fx.carts.carts["user-1"] = &domain.Cart{Items: []domain.CartItem{
		{ProductID: mug.ID, Quantity: 0},
	}}

	_, err := fx.svc.Checkout(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	fx := newOrderFixture(t)

	fx.carts.carts["user-1"] = &domain.Cart{Items: []domain.CartItem{
		{ProductID: "vanished", Quantity: 1},
	}}

	_, err := fx.svc.Checkout(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrProductNotFound)
	require.Empty(t, fx.gateway.charges)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	fx := newOrderFixture(t)
	mug := fx.seedProduct(t, "Mug", 900)
	fx.gateway.err = errors.New("card declined")

	fx.carts.carts["user-1"] = &domain.Cart{Items: []domain.CartItem{
		{ProductID: mug.ID, Quantity: 1},
	}}

	_, err := fx.svc.Checkout(context.Background(), "user-1")
	require.EqualError(t, err, "card declined")
	require.Empty(t, fx.orders.orders)

	// Cart is intact so the user can retry.
	cart, err := fx.carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCheckoutCartClearFailure(t *testing.T) {
	fx := newOrderFixture(t)
	mug := fx.seedProduct(t, "Mug", 900)
	fx.carts.carts["user-1"] = &domain.Cart{Items: []domain.CartItem{
		{ProductID: mug.ID, Quantity: 1},
	}}
	fx.carts.clearErr = errors.New("redis down")

	order, err := fx.svc.Checkout(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, fx.orders.orders, 1)
}

func TestUpdateStatusPublishesTransition(t *testing.T) {
	fx := newOrderFixture(t)
	seed := &domain.Order{UserID: "user-1", Status: domain.OrderStatusNotProcessed}
	require.NoError(t, fx.orders.Create(context.Background(), seed))

	order, err := fx.svc.UpdateStatus(context.Background(), seed.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusShipped, order.Status)

	require.Len(t, *fx.published, 1)
	payload, ok := (*fx.published)[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	require.Equal(t, domain.OrderStatusNotProcessed, payload.OldStatus)
	require.Equal(t, domain.OrderStatusShipped, payload.NewStatus)
}

func TestUpdateStatusUnknown(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.svc.UpdateStatus(context.Background(), "order-1", "TELEPORTED")
	require.ErrorIs(t, err, ErrUnknownOrderStatus)

	_, err = fx.svc.UpdateStatus(context.Background(), "missing", domain.OrderStatusShipped)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPutCartDropsNonPositiveQuantities(t *testing.T) {
	fx := newOrderFixture(t)

	err := fx.svc.PutCart(context.Background(), "user-1", &domain.Cart{Items: []domain.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 0},
		{ProductID: "p3", Quantity: -1},
		{ProductID: "", Quantity: 4},
	}})
	require.NoError(t, err)

	cart, err := fx.svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, []domain.CartItem{{ProductID: "p1", Quantity: 2}}, cart.Items)
}
