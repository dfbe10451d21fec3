package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/infra/storage"
	"veluna/internal/usecase"
)

func newTestCartService(t *testing.T) (usecase.CartUsecase, stateFixture) {
	t.Helper()

	fx := newTestState(t)

	return NewCartService(CartServiceParams{State: fx.state, Logger: newDiscardLogger()}), fx
}

func TestCartService_AddItem_MergesSameTuple(t *testing.T) {
	svc, fx := newTestCartService(t)
	ctx := context.Background()

	input := usecase.CartItemInput{ProductID: 4, SelectedSize: "M", SelectedColor: "Qora"}
	_, err := svc.AddItem(ctx, input)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, input)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, float64(1_560_000), cart.Summary.Subtotal)

	stored, err := storage.GetJSON[[]entity.CartItem](ctx, fx.tab, fx.keys.Cart())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCartService_AddItem_DifferentTupleAppends(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, usecase.CartItemInput{ProductID: 4, SelectedSize: "M"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, usecase.CartItemInput{ProductID: 4, SelectedSize: "L"})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, usecase.CartItemInput{ProductID: 4, SelectedSize: "L", SelectedColor: "Qora"})
	require.NoError(t, err)

	require.Len(t, cart.Items, 3)
	for _, item := range cart.Items {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestCartService_AddItem_Errors(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, usecase.CartItemInput{ProductID: 3})
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)

	_, err = svc.AddItem(ctx, usecase.CartItemInput{ProductID: 999})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_UpdateQuantityAndRemove(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, usecase.CartItemInput{ProductID: 9})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, usecase.CartItemInput{ProductID: 10})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, usecase.CartItemInput{ProductID: 9, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Summary.Items)

	cart, err = svc.UpdateQuantity(ctx, usecase.CartItemInput{ProductID: 9, Quantity: 0})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(10), cart.Items[0].ID)

	_, err = svc.RemoveItem(ctx, usecase.CartItemInput{ProductID: 9})
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)

	require.NoError(t, svc.Clear(ctx))
	cart, err = svc.GetCart(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Summary.Total)
}

func TestCartService_GetCart_Discount(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, usecase.CartItemInput{ProductID: 10, Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, float64(240_000), cart.Summary.Subtotal)
	assert.Equal(t, float64(24_000), cart.Summary.Discount)
	assert.Equal(t, float64(216_000), cart.Summary.Total)
}
