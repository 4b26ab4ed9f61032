package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// OrderHandler exposes cart, checkout and order endpoints.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler constructs handler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orderService}
}

func requireSubject(c *fiber.Ctx) (string, error) {
	subject, ok := auth.SubjectFromContext(c)
	if !ok {
		return "", failure(c, http.StatusUnauthorized, "Unauthorized Access")
	}
	return subject, nil
}

// GetCart handles GET /api/v1/cart.
func (h *OrderHandler) GetCart(c *fiber.Ctx) error {
	subject, err := requireSubject(c)
	if err != nil || subject == "" {
		return err
	}

	cart, err := h.orders.GetCart(c.Context(), subject)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

// PutCart handles PUT /api/v1/cart.
func (h *OrderHandler) PutCart(c *fiber.Ctx) error {
	subject, err := requireSubject(c)
	if err != nil || subject == "" {
		return err
	}

	var req dto.CartRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}

	cart := &domain.Cart{Items: req.Items}
	if err := h.orders.PutCart(c.Context(), subject, cart); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

// ClearCart handles DELETE /api/v1/cart.
func (h *OrderHandler) ClearCart(c *fiber.Ctx) error {
	subject, err := requireSubject(c)
	if err != nil || subject == "" {
		return err
	}

	if err := h.orders.ClearCart(c.Context(), subject); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Cart cleared"})
}

// Checkout handles POST /api/v1/orders/checkout.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	subject, err := requireSubject(c)
	if err != nil || subject == "" {
		return err
	}

	order, err := h.orders.Checkout(c.Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			return failure(c, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, service.ErrProductNotFound):
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed",
		"order":   dto.NewOrderResponse(order),
	})
}

// MyOrders handles GET /api/v1/auth/orders.
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	subject, err := requireSubject(c)
	if err != nil || subject == "" {
		return err
	}

	orders, err := h.orders.ListForUser(c.Context(), subject)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  dto.NewOrderResponses(orders),
	})
}

// AllOrders handles GET /api/v1/auth/all-orders (admin).
func (h *OrderHandler) AllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  dto.NewOrderResponses(orders),
	})
}

// UpdateStatus handles PUT /api/v1/auth/orders/:orderId (admin).
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}

	order, err := h.orders.UpdateStatus(c.Context(), c.Params("orderId"), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownOrderStatus):
			return failure(c, http.StatusBadRequest, "Unknown order status")
		case errors.Is(err, service.ErrOrderNotFound):
			return apperrors.NewNotFound("order", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated",
		"order":   dto.NewOrderResponse(order),
	})
}
