package usecase

import (
	"context"

	"veluna/internal/domain/entity"
)

// CheckoutInput carries the customer details of an order
type CheckoutInput struct {
	Customer      string `json:"customer" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"paymentMethod"`
	PromoCode     string `json:"promoCode"`
}

// OrderUsecase defines checkout and order management use cases
type OrderUsecase interface {
	// Checkout turns the cart into an order. The steps are separate writes
	// and a failure part way leaves the earlier ones in place.
	Checkout(ctx context.Context, input CheckoutInput) (*entity.Order, error)

	// ListOrders returns orders, optionally filtered by status
	ListOrders(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)

	// UpdateStatus sets the status of an order; any transition is allowed
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)

	// DeleteOrder removes an order
	DeleteOrder(ctx context.Context, id string) error
}
