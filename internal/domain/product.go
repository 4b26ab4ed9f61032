package domain

import "time"

// Product is a catalog entry. Prices are stored in minor currency units
// (cents) to avoid floating point drift.
type Product struct {
	ID          string
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	Quantity    int
	CategoryID  string
	Shipping    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
