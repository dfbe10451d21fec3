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
	"veluna/internal/usecase/state"
	"veluna/internal/usecase/view"
)

type productListService struct {
	state  *state.State
	logger *slog.Logger
}

// ProductListServiceParams holds dependencies for ProductListService, injected by Fx.
type ProductListServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewProductListService creates a new wishlist/compare/viewed service instance
func NewProductListService(params ProductListServiceParams) usecase.ProductListUsecase {
	return &productListService{
		state:  params.State,
		logger: params.Logger,
	}
}

func (s *productListService) listView(list usecase.ProductList) (*view.SyncedView[[]entity.Product], error) {
	switch list {
	case usecase.ListWishlist:
		return s.state.Wishlist, nil
	case usecase.ListCompare:
		return s.state.Compare, nil
	case usecase.ListViewed:
		return s.state.Viewed, nil
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown list " + string(list))
	}
}

func (s *productListService) product(id int64) (entity.Product, error) {
	products := s.state.Products.Items()
	i := collection.IndexOf(products, id)
	if i < 0 {
		return entity.Product{}, domainerrors.ErrProductNotFound
	}

	return products[i], nil
}

// List returns the products of a list
func (s *productListService) List(_ context.Context, list usecase.ProductList) ([]entity.Product, error) {
	v, err := s.listView(list)
	if err != nil {
		return nil, err
	}

	return v.Items(), nil
}

// Toggle adds the product when absent and removes it when present. The
// compare list drops its oldest entry when full.
func (s *productListService) Toggle(ctx context.Context, list usecase.ProductList, productID int64) (bool, error) {
	v, err := s.listView(list)
	if err != nil {
		return false, err
	}

	var added bool
	_, err = v.Mutate(ctx, func(items []entity.Product) ([]entity.Product, error) {
		if next, removed := collection.Delete(items, productID); removed {
			return next, nil
		}

		product, err := s.product(productID)
		if err != nil {
			return nil, err
		}
		added = true

		items = append(items, product)
		if list == usecase.ListCompare && len(items) > usecase.MaxCompare {
			items = items[len(items)-usecase.MaxCompare:]
		}

		return items, nil
	})
	if err != nil {
		return false, err
	}

	return added, nil
}

// Remove removes the product from a list
func (s *productListService) Remove(ctx context.Context, list usecase.ProductList, productID int64) error {
	v, err := s.listView(list)
	if err != nil {
		return err
	}

	_, err = mutate(ctx, v, func(items []entity.Product) ([]entity.Product, error) {
		next, removed := collection.Delete(items, productID)
		if !removed {
			return nil, errUnchanged
		}

		return next, nil
	})

	return err
}

// Clear empties a list
func (s *productListService) Clear(ctx context.Context, list usecase.ProductList) error {
	v, err := s.listView(list)
	if err != nil {
		return err
	}

	_, err = v.Mutate(ctx, func([]entity.Product) ([]entity.Product, error) {
		return []entity.Product{}, nil
	})

	return err
}

// RecordView moves the product to the front of the viewed list, keeping at most MaxViewed entries
func (s *productListService) RecordView(ctx context.Context, productID int64) error {
	product, err := s.product(productID)
	if err != nil {
		return err
	}

	_, err = s.state.Viewed.Mutate(ctx, func(items []entity.Product) ([]entity.Product, error) {
		items, _ = collection.Delete(items, productID)
		items = slices.Insert(items, 0, product)
		if len(items) > usecase.MaxViewed {
			items = items[:usecase.MaxViewed]
		}

		return items, nil
	})

	return err
}
