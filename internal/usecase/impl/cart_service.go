package impl

import (
	"context"
	"log/slog"
	"slices"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/derived"
	"veluna/internal/usecase/state"
)

type cartService struct {
	state  *state.State
	logger *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		state:  params.State,
		logger: params.Logger,
	}
}

func newCart(items []entity.CartItem, discountPercent int) *usecase.Cart {
	if items == nil {
		items = []entity.CartItem{}
	}

	return &usecase.Cart{
		Items:   items,
		Summary: derived.CartTotals(items, discountPercent),
	}
}

// GetCart returns the cart with totals
func (s *cartService) GetCart(_ context.Context, discountPercent int) (*usecase.Cart, error) {
	return newCart(s.state.Cart.Items(), discountPercent), nil
}

// AddItem merges the product into the line with the same tuple or appends a new line
func (s *cartService) AddItem(ctx context.Context, input usecase.CartItemInput) (*usecase.Cart, error) {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	products := s.state.Products.Items()
	i := collection.IndexOf(products, input.ProductID)
	if i < 0 {
		return nil, domainerrors.ErrProductNotFound
	}
	product := products[i]
	if !product.InStock {
		return nil, domainerrors.ErrOutOfStock
	}

	items, err := s.state.Cart.Mutate(ctx, func(items []entity.CartItem) ([]entity.CartItem, error) {
		return mergeCartItem(items, entity.CartItem{
			Product:       product,
			Quantity:      quantity,
			SelectedSize:  input.SelectedSize,
			SelectedColor: input.SelectedColor,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Debug("Cart item added",
		slog.Int64("productId", input.ProductID),
		slog.Int("quantity", quantity),
	)

	return newCart(items, 0), nil
}

// mergeCartItem adds quantity to the line with the same tuple, or appends the item.
func mergeCartItem(items []entity.CartItem, item entity.CartItem) []entity.CartItem {
	i := slices.IndexFunc(items, func(c entity.CartItem) bool {
		return c.Matches(item.ID, item.SelectedSize, item.SelectedColor)
	})
	if i >= 0 {
		items[i].Quantity += item.Quantity

		return items
	}

	return append(items, item)
}

// UpdateQuantity sets the quantity of a line; below 1 removes it
func (s *cartService) UpdateQuantity(ctx context.Context, input usecase.CartItemInput) (*usecase.Cart, error) {
	items, err := s.state.Cart.Mutate(ctx, func(items []entity.CartItem) ([]entity.CartItem, error) {
		i := indexOfCartItem(items, input)
		if i < 0 {
			return nil, domainerrors.ErrCartItemNotFound
		}
		if input.Quantity < 1 {
			return slices.Delete(items, i, i+1), nil
		}
		items[i].Quantity = input.Quantity

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return newCart(items, 0), nil
}

// RemoveItem removes a line
func (s *cartService) RemoveItem(ctx context.Context, input usecase.CartItemInput) (*usecase.Cart, error) {
	items, err := s.state.Cart.Mutate(ctx, func(items []entity.CartItem) ([]entity.CartItem, error) {
		i := indexOfCartItem(items, input)
		if i < 0 {
			return nil, domainerrors.ErrCartItemNotFound
		}

		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return nil, err
	}

	return newCart(items, 0), nil
}

// Clear empties the cart
func (s *cartService) Clear(ctx context.Context) error {
	_, err := s.state.Cart.Mutate(ctx, func([]entity.CartItem) ([]entity.CartItem, error) {
		return []entity.CartItem{}, nil
	})

	return err
}

func indexOfCartItem(items []entity.CartItem, input usecase.CartItemInput) int {
	return slices.IndexFunc(items, func(c entity.CartItem) bool {
		return c.Matches(input.ProductID, input.SelectedSize, input.SelectedColor)
	})
}
