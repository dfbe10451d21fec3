package impl

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
)

type orderServiceFixtures struct {
	orders        *orderService
	cart          usecase.CartUsecase
	marketing     *marketingService
	notifications *notificationService
	state         stateFixture
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	t.Helper()

	fx := newTestState(t)
	logger := newDiscardLogger()
	marketing := &marketingService{state: fx.state, now: fixedClock(), logger: logger}
	notifications := &notificationService{state: fx.state, now: fixedClock(), logger: logger}

	return orderServiceFixtures{
		orders: &orderService{
			state:         fx.state,
			marketing:     marketing,
			notifications: notifications,
			now:           fixedClock(),
			logger:        logger,
		},
		cart:          NewCartService(CartServiceParams{State: fx.state, Logger: logger}),
		marketing:     marketing,
		notifications: notifications,
		state:         fx,
	}
}

var testCheckoutInput = usecase.CheckoutInput{
	Customer:      "Aziz Karimov",
	Email:         "aziz@mail.uz",
	Phone:         "+998 90 111 22 33",
	Address:       "Toshkent",
	PaymentMethod: "click",
}

func TestOrderService_Checkout(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	_, err := fx.cart.AddItem(ctx, usecase.CartItemInput{ProductID: 1, Quantity: 2, SelectedColor: "Qora"})
	require.NoError(t, err)

	order, err := fx.orders.Checkout(ctx, testCheckoutInput)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Equal(t, float64(9_980_000), order.Amount)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "Smartfon Veluna X12", order.Product)
	assert.Equal(t, "2025-01-15", order.Date)
	assert.Equal(t, "14:30", order.Time)

	products := fx.state.state.Products.Items()
	require.NotNil(t, products[0].Stock)
	assert.Equal(t, 23, *products[0].Stock)

	assert.Empty(t, fx.state.state.Cart.Items())

	orders, err := fx.orders.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, order.ID, orders[0].ID)

	notifications, _, err := fx.notifications.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationTypeOrder, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, order.ID)
	assert.Contains(t, notifications[0].Message, "9 980 000 so'm")
}

func TestOrderService_Checkout_WithPromoCode(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	_, err := fx.cart.AddItem(ctx, usecase.CartItemInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = fx.cart.AddItem(ctx, usecase.CartItemInput{ProductID: 2})
	require.NoError(t, err)

	input := testCheckoutInput
	input.PromoCode = "veluna10"

	order, err := fx.orders.Checkout(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, float64(9_387_000), order.Amount)
	assert.Equal(t, "VELUNA10", order.PromoCode)
	assert.Equal(t, "Smartfon Veluna X12 va yana 1 ta", order.Product)

	promos := fx.state.state.PromoCodes.Items()
	assert.Equal(t, 43, promos[0].UsageCount)
}

func TestOrderService_Checkout_Rejected(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	_, err := fx.orders.Checkout(ctx, testCheckoutInput)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)

	_, err = fx.orders.Checkout(ctx, usecase.CheckoutInput{Customer: "Aziz"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.cart.AddItem(ctx, usecase.CartItemInput{ProductID: 2})
	require.NoError(t, err)

	input := testCheckoutInput
	input.PromoCode = "NEWYEAR25"
	_, err = fx.orders.Checkout(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrPromoCodeInactive)

	// A rejected promo code leaves the cart and stock untouched.
	assert.Len(t, fx.state.state.Cart.Items(), 1)
	assert.Equal(t, 60, *fx.state.state.Products.Items()[1].Stock)
}

func TestOrderService_DecrementStockClampsAtZero(t *testing.T) {
	stock := 1
	products := []entity.Product{{ID: 7, Name: "Kofe", Stock: &stock, InStock: true}, {ID: 8, Name: "Untracked"}}

	got := decrementStock(products, []entity.CartItem{
		{Product: entity.Product{ID: 7}, Quantity: 3},
		{Product: entity.Product{ID: 8}, Quantity: 1},
	})

	assert.Equal(t, 0, *got[0].Stock)
	assert.True(t, got[0].InStock)
	assert.Nil(t, got[1].Stock)
}

func TestOrderService_Statuses(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	pending, err := fx.orders.ListOrders(ctx, entity.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ORD-1003", pending[0].ID)

	_, err = fx.orders.ListOrders(ctx, "Lost")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

	updated, err := fx.orders.UpdateStatus(ctx, "ORD-1003", entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, updated.Status)

	_, err = fx.orders.UpdateStatus(ctx, "ORD-1003", "Lost")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

	_, err = fx.orders.UpdateStatus(ctx, "ORD-9999", entity.OrderStatusDelivered)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	require.NoError(t, fx.orders.DeleteOrder(ctx, "ORD-1003"))
	assert.ErrorIs(t, fx.orders.DeleteOrder(ctx, "ORD-1003"), domainerrors.ErrOrderNotFound)
}
