package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
)

func TestRecordService_SaveAssignsID(t *testing.T) {
	fx := newTestState(t)
	ctx := context.Background()
	couriers := NewCourierService(RecordServiceParams{State: fx.state, Logger: newDiscardLogger()})

	saved, err := couriers.Save(ctx, entity.Courier{Name: "Otabek", Phone: "+998 99 123 45 67", Vehicle: "Nexia", Active: true})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	all, err := couriers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	saved.Vehicle = "Cobalt"
	_, err = couriers.Save(ctx, *saved)
	require.NoError(t, err)

	got, err := couriers.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cobalt", got.Vehicle)

	all, err = couriers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordService_Validation(t *testing.T) {
	fx := newTestState(t)
	ctx := context.Background()
	zones := NewShippingZoneService(RecordServiceParams{State: fx.state, Logger: newDiscardLogger()})

	_, err := zones.Save(ctx, entity.ShippingZone{Price: 10_000})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = zones.Save(ctx, entity.ShippingZone{Name: "Qoraqalpog'iston", Price: -1})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	all, err := zones.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecordService_GetAndDelete(t *testing.T) {
	fx := newTestState(t)
	ctx := context.Background()
	methods := NewPaymentMethodService(RecordServiceParams{State: fx.state, Logger: newDiscardLogger()})

	got, err := methods.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Payme", got.Name)

	require.NoError(t, methods.Delete(ctx, 2))

	_, err = methods.Get(ctx, 2)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, methods.Delete(ctx, 2), domainerrors.ErrNotFound)
}
