package domain

import "time"

// Category groups products for browsing and filtering.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
