package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/derived"
	"veluna/internal/usecase/state"
)

type customerService struct {
	state  *state.State
	logger *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		state:  params.State,
		logger: params.Logger,
	}
}

// ListCustomers returns customers whose name, email or phone contains search
func (s *customerService) ListCustomers(_ context.Context, search string) ([]entity.User, error) {
	users := s.state.Users.Items()

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return users, nil
	}

	return slices.DeleteFunc(users, func(u entity.User) bool {
		return !strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(u.Phone, search)
	}), nil
}

// SetBlocked blocks or unblocks a customer
func (s *customerService) SetBlocked(ctx context.Context, id int64, blocked bool) (*entity.User, error) {
	var updated entity.User
	if _, err := mutate(ctx, s.state.Users, func(users []entity.User) ([]entity.User, error) {
		i := collection.IndexOf(users, id)
		if i < 0 {
			return nil, domainerrors.ErrUserNotFound
		}
		updated = users[i]
		if users[i].Blocked == blocked {
			return nil, errUnchanged
		}
		users[i].Blocked = blocked
		updated = users[i]

		return users, nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Info("Customer block state changed", slog.Int64("id", id), slog.Bool("blocked", blocked))

	return &updated, nil
}

// DeleteCustomer removes a customer. Their orders are kept.
func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := s.state.Users.Mutate(ctx, func(users []entity.User) ([]entity.User, error) {
		next, removed := collection.Delete(users, id)
		if !removed {
			return nil, domainerrors.ErrUserNotFound
		}

		return next, nil
	})

	return err
}

// Summary aggregates the customer list
func (s *customerService) Summary(_ context.Context) derived.CustomerSummary {
	return derived.Customers(s.state.Users.Items())
}
