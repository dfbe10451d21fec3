// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	deliverycontext "veluna/internal/delivery/context"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/errors"
	"veluna/internal/usecase/view"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// errUnchanged aborts a mutation that would not change the document.
var errUnchanged = errors.New("unchanged")

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateEntity runs struct tag validation and maps failures to ErrValidationFailed.
func validateEntity(v any) error {
	if err := validate.Struct(v); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

// mutate runs fn through the view. When fn reports errUnchanged nothing is
// written and the current state is returned.
func mutate[T any](ctx context.Context, v *view.SyncedView[T], fn func(T) (T, error)) (T, error) {
	next, err := v.Mutate(ctx, fn)
	if errors.Is(err, errUnchanged) {
		return v.Items(), nil
	}

	return next, err
}

// loggerFrom returns a request-scoped logger if available, otherwise fallback.
func loggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, fallback)
}

type clock func() time.Time

func (c clock) today() string {
	return c().Format(dateLayout)
}
