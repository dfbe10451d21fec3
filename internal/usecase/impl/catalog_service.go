package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/errors"
	"veluna/internal/infra/transfer"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/derived"
	"veluna/internal/usecase/state"
)

type catalogService struct {
	state  *state.State
	logger *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		state:  params.State,
		logger: params.Logger,
	}
}

// ListProducts filters, sorts and pages the catalog
func (s *catalogService) ListProducts(_ context.Context, query usecase.ProductQuery) (*usecase.ProductPage, error) {
	filter := derived.ProductFilter{
		Category: query.Category,
		InStock:  query.InStock,
		Search:   query.Search,
	}
	if query.MinPrice > 0 || query.MaxPrice > 0 {
		filter.PriceRange = &derived.PriceRange{Min: query.MinPrice, Max: query.MaxPrice}
	}

	products := derived.FilterProducts(s.state.Products.Items(), filter)
	products = derived.SortProducts(products, query.Sort)
	items, page := derived.PageItems(products, query.PerPage, query.Page)

	return &usecase.ProductPage{Items: items, Page: page}, nil
}

// GetProduct returns one product
func (s *catalogService) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	products := s.state.Products.Items()

	i := collection.IndexOf(products, id)
	if i < 0 {
		return nil, domainerrors.ErrProductNotFound
	}

	return &products[i], nil
}

// CreateProduct validates and appends a product with a fresh id
func (s *catalogService) CreateProduct(ctx context.Context, product entity.Product) (*entity.Product, error) {
	if err := validateEntity(product); err != nil {
		return nil, err
	}

	product.ID = collection.NewID()
	if _, err := s.state.Products.Mutate(ctx, func(products []entity.Product) ([]entity.Product, error) {
		return append(products, product), nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Info("Product created", slog.Int64("id", product.ID), slog.String("name", product.Name))

	return &product, nil
}

// UpdateProduct replaces a product
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, product entity.Product) (*entity.Product, error) {
	if err := validateEntity(product); err != nil {
		return nil, err
	}

	product.ID = id
	if _, err := s.state.Products.Mutate(ctx, func(products []entity.Product) ([]entity.Product, error) {
		i := collection.IndexOf(products, id)
		if i < 0 {
			return nil, domainerrors.ErrProductNotFound
		}
		products[i] = product

		return products, nil
	}); err != nil {
		return nil, err
	}

	return &product, nil
}

// DeleteProduct removes a product
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	_, err := s.state.Products.Mutate(ctx, func(products []entity.Product) ([]entity.Product, error) {
		next, removed := collection.Delete(products, id)
		if !removed {
			return nil, domainerrors.ErrProductNotFound
		}

		return next, nil
	})

	return err
}

// ImportProducts parses products, assigns fresh ids and appends them to the catalog
func (s *catalogService) ImportProducts(ctx context.Context, format string, r io.Reader) ([]entity.Product, error) {
	var (
		imported []entity.Product
		err      error
	)

	switch strings.ToLower(format) {
	case usecase.FormatCSV:
		imported, err = transfer.ReadProductsCSV(r)
	case usecase.FormatJSON:
		imported, err = transfer.ReadProductsJSON(r)
	default:
		return nil, domainerrors.ErrImportFailed.WithDetails("unsupported format " + format)
	}
	if err != nil {
		return nil, domainerrors.ErrImportFailed.WithDetails(err.Error())
	}

	for i := range imported {
		if err := validateEntity(imported[i]); err != nil {
			return nil, err
		}
		imported[i].ID = collection.NewID()
	}

	if _, err := s.state.Products.Mutate(ctx, func(products []entity.Product) ([]entity.Product, error) {
		return append(products, imported...), nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Info("Products imported", slog.String("format", format), slog.Int("count", len(imported)))

	return slices.Clone(imported), nil
}

// ExportProducts writes the whole catalog
func (s *catalogService) ExportProducts(_ context.Context, format string, w io.Writer) error {
	products := s.state.Products.Items()

	switch strings.ToLower(format) {
	case usecase.FormatCSV:
		return errors.Wrap(transfer.WriteProductsCSV(w, products), "export csv")
	case usecase.FormatJSON:
		return errors.Wrap(transfer.WriteProductsJSON(w, products), "export json")
	default:
		return domainerrors.ErrValidationFailed.WithDetails("unsupported format " + format)
	}
}

// Inventory summarizes stock levels
func (s *catalogService) Inventory(_ context.Context) derived.InventorySummary {
	return derived.Inventory(s.state.Products.Items())
}
