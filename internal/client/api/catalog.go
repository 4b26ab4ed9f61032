package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Category mirrors the server projection.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product mirrors the server projection.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
	CategoryID  string `json:"category_id"`
}

// OrderItem mirrors the server projection.
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Order mirrors the server projection.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Status     string      `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Envelope
		Categories []Category `json:"categories"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/categories/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Products lists a catalog page, optionally filtered by keyword.
func (c *Client) Products(ctx context.Context, keyword string, page int) ([]Product, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	path := "/api/v1/products/"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp struct {
		Envelope
		Products []Product `json:"products"`
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// MyOrders lists the caller's orders.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Envelope
		Orders []Order `json:"orders"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/auth/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// AllOrders lists every order; requires an admin token.
func (c *Client) AllOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Envelope
		Orders []Order `json:"orders"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/auth/all-orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}
