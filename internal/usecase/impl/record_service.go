package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/state"
	"veluna/internal/usecase/view"
)

type recordService[T entity.Record, P entity.RecordPtr[T]] struct {
	view   *view.SyncedView[[]T]
	name   string
	logger *slog.Logger
}

// NewRecordService creates generic CRUD over one back-office collection
func NewRecordService[T entity.Record, P entity.RecordPtr[T]](v *view.SyncedView[[]T], name string, logger *slog.Logger) usecase.RecordUsecase[T] {
	return &recordService[T, P]{
		view:   v,
		name:   name,
		logger: logger,
	}
}

// List returns every record
func (s *recordService[T, P]) List(_ context.Context) ([]T, error) {
	return s.view.Items(), nil
}

// Get returns one record
func (s *recordService[T, P]) Get(_ context.Context, id int64) (*T, error) {
	items := s.view.Items()

	i := collection.IndexOf(items, id)
	if i < 0 {
		return nil, domainerrors.ErrNotFound.WithDetails(s.name)
	}

	return &items[i], nil
}

// Save validates the record, assigns an id when it is zero and upserts it
func (s *recordService[T, P]) Save(ctx context.Context, record T) (*T, error) {
	if err := validateEntity(record); err != nil {
		return nil, err
	}

	if record.GetID() == 0 {
		P(&record).SetID(collection.NewID())
	}

	if _, err := s.view.Mutate(ctx, func(items []T) ([]T, error) {
		return collection.Upsert(items, record), nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Debug("Record saved", slog.String("collection", s.name), slog.Int64("id", record.GetID()))

	return &record, nil
}

// Delete removes a record
func (s *recordService[T, P]) Delete(ctx context.Context, id int64) error {
	_, err := s.view.Mutate(ctx, func(items []T) ([]T, error) {
		next, removed := collection.Delete(items, id)
		if !removed {
			return nil, domainerrors.ErrNotFound.WithDetails(s.name)
		}

		return next, nil
	})

	return err
}

// RecordServiceParams holds dependencies for the record services, injected by Fx.
type RecordServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewCourierService creates CRUD over couriers
func NewCourierService(params RecordServiceParams) usecase.RecordUsecase[entity.Courier] {
	return NewRecordService(params.State.Couriers, "courier", params.Logger)
}

// NewShippingZoneService creates CRUD over shipping zones
func NewShippingZoneService(params RecordServiceParams) usecase.RecordUsecase[entity.ShippingZone] {
	return NewRecordService(params.State.ShippingZones, "shipping zone", params.Logger)
}

// NewPaymentMethodService creates CRUD over payment methods
func NewPaymentMethodService(params RecordServiceParams) usecase.RecordUsecase[entity.PaymentMethod] {
	return NewRecordService(params.State.PaymentMethods, "payment method", params.Logger)
}

// NewEmailCampaignService creates CRUD over email campaigns
func NewEmailCampaignService(params RecordServiceParams) usecase.RecordUsecase[entity.EmailCampaign] {
	return NewRecordService(params.State.EmailCampaigns, "email campaign", params.Logger)
}

// NewReviewService creates CRUD over product reviews
func NewReviewService(params RecordServiceParams) usecase.RecordUsecase[entity.Review] {
	return NewRecordService(params.State.Reviews, "review", params.Logger)
}

// NewCategoryService creates CRUD over catalog categories
func NewCategoryService(params RecordServiceParams) usecase.RecordUsecase[entity.Category] {
	return NewRecordService(params.State.Categories, "category", params.Logger)
}
