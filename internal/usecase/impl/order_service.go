package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/derived"
	"veluna/internal/usecase/state"
	"veluna/internal/util"
)

const orderIDPrefix = "ORD-"

type orderService struct {
	state         *state.State
	marketing     usecase.MarketingUsecase
	notifications usecase.NotificationUsecase
	now           clock
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	State         *state.State
	Marketing     usecase.MarketingUsecase
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		state:         params.State,
		marketing:     params.Marketing,
		notifications: params.Notifications,
		now:           time.Now,
		logger:        params.Logger,
	}
}

// Checkout turns the cart into an order. Stock, orders, cart, promo usage
// and notifications are written one after another; there is no rollback.
func (s *orderService) Checkout(ctx context.Context, input usecase.CheckoutInput) (*entity.Order, error) {
	if err := validateEntity(input); err != nil {
		return nil, err
	}

	items := s.state.Cart.Items()
	if len(items) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}

	discount := 0
	promoCode := strings.ToUpper(strings.TrimSpace(input.PromoCode))
	if promoCode != "" {
		applied, err := s.marketing.ApplyPromoCode(ctx, promoCode, derived.CartTotals(items, 0).Subtotal)
		if err != nil {
			return nil, err
		}
		discount = applied.Discount
	}

	now := s.now()
	order := entity.Order{
		ID:            orderIDPrefix + strconv.FormatInt(collection.NewID(), 10),
		Customer:      input.Customer,
		Email:         input.Email,
		Product:       orderSummary(items),
		Amount:        derived.CartTotals(items, discount).Total,
		Status:        entity.OrderStatusPending,
		Date:          now.Format(dateLayout),
		Time:          now.Format(timeLayout),
		Items:         items,
		Address:       input.Address,
		Phone:         input.Phone,
		PaymentMethod: input.PaymentMethod,
		PromoCode:     promoCode,
	}

	logger := loggerFrom(ctx, s.logger).With(slog.String("orderId", order.ID))

	if _, err := s.state.Products.Mutate(ctx, func(products []entity.Product) ([]entity.Product, error) {
		return decrementStock(products, items), nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.state.Orders.Mutate(ctx, func(orders []entity.Order) ([]entity.Order, error) {
		return slices.Insert(orders, 0, order), nil
	}); err != nil {
		logger.Error("Stock was decremented but the order was not saved", slog.Any("error", err))

		return nil, err
	}

	if _, err := s.state.Cart.Mutate(ctx, func([]entity.CartItem) ([]entity.CartItem, error) {
		return []entity.CartItem{}, nil
	}); err != nil {
		return nil, err
	}

	if promoCode != "" {
		if err := s.marketing.RedeemPromoCode(ctx, promoCode); err != nil {
			logger.Warn("Failed to record promo code usage", slog.Any("error", err))
		}
	}

	if _, err := s.notifications.Push(ctx, entity.Notification{
		Type:    entity.NotificationTypeOrder,
		Title:   "Buyurtma qabul qilindi",
		Message: fmt.Sprintf("%s buyurtmangiz qabul qilindi. Jami: %s", order.ID, util.FormatPrice(order.Amount)),
	}); err != nil {
		logger.Warn("Failed to push order notification", slog.Any("error", err))
	}

	logger.Info("Order placed", slog.Float64("amount", order.Amount), slog.Int("items", len(items)))

	return &order, nil
}

// decrementStock lowers the stock of every ordered product that tracks stock.
// The inStock flag is left as it is.
func decrementStock(products []entity.Product, items []entity.CartItem) []entity.Product {
	for _, item := range items {
		i := collection.IndexOf(products, item.ID)
		if i < 0 || products[i].Stock == nil {
			continue
		}
		stock := max(*products[i].Stock-item.Quantity, 0)
		products[i].Stock = &stock
	}

	return products
}

func orderSummary(items []entity.CartItem) string {
	if len(items) == 1 {
		return items[0].Name
	}

	return fmt.Sprintf("%s va yana %d ta", items[0].Name, len(items)-1)
}

// ListOrders returns orders, optionally filtered by status
func (s *orderService) ListOrders(_ context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	orders := s.state.Orders.Items()
	if status == "" {
		return orders, nil
	}
	if !status.Valid() {
		return nil, domainerrors.ErrInvalidOrderStatus
	}

	return slices.DeleteFunc(orders, func(o entity.Order) bool { return o.Status != status }), nil
}

// UpdateStatus sets the status of an order
func (s *orderService) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, domainerrors.ErrInvalidOrderStatus
	}

	var updated entity.Order
	if _, err := s.state.Orders.Mutate(ctx, func(orders []entity.Order) ([]entity.Order, error) {
		i := slices.IndexFunc(orders, func(o entity.Order) bool { return o.ID == id })
		if i < 0 {
			return nil, domainerrors.ErrOrderNotFound
		}
		orders[i].Status = status
		updated = orders[i]

		return orders, nil
	}); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteOrder removes an order
func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	_, err := s.state.Orders.Mutate(ctx, func(orders []entity.Order) ([]entity.Order, error) {
		i := slices.IndexFunc(orders, func(o entity.Order) bool { return o.ID == id })
		if i < 0 {
			return nil, domainerrors.ErrOrderNotFound
		}

		return slices.Delete(orders, i, i+1), nil
	})

	return err
}
