package usecase

import (
	"context"

	"veluna/internal/domain/entity"
	"veluna/internal/usecase/derived"
)

// CustomerUsecase defines back-office customer use cases
type CustomerUsecase interface {
	// ListCustomers returns customers whose name, email or phone contains search
	ListCustomers(ctx context.Context, search string) ([]entity.User, error)

	// SetBlocked blocks or unblocks a customer
	SetBlocked(ctx context.Context, id int64, blocked bool) (*entity.User, error)

	// DeleteCustomer removes a customer
	DeleteCustomer(ctx context.Context, id int64) error

	// Summary aggregates the customer list
	Summary(ctx context.Context) derived.CustomerSummary
}
