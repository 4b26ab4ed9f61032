package service

import (
	"context"

	"github.com/google/uuid"
)

// PaymentGateway charges a checkout total and returns a provider
// transaction reference. Real provider integrations live behind this
// interface; the shipped implementation is the dev gateway.
type PaymentGateway interface {
	Charge(ctx context.Context, userID string, amountCents int64, currency string) (string, error)
}

type devGateway struct{}

// NewDevGateway returns a gateway that approves every charge with a
// generated transaction reference. Suitable for development and tests.
func NewDevGateway() PaymentGateway {
	return devGateway{}
}

func (devGateway) Charge(_ context.Context, _ string, _ int64, _ string) (string, error) {
	return "dev-" + uuid.NewString(), nil
}
