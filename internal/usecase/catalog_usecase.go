package usecase

import (
	"context"
	"io"

	"veluna/internal/domain/entity"
	"veluna/internal/usecase/derived"
)

// Transfer formats for product import and export
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ProductQuery selects, orders and pages the storefront product list
type ProductQuery struct {
	Category string
	MinPrice float64
	MaxPrice float64
	InStock  bool
	Search   string
	Sort     derived.SortKey
	Page     int
	PerPage  int
}

// ProductPage is one page of a product listing
type ProductPage struct {
	Items []entity.Product `json:"items"`
	Page  derived.Page     `json:"page"`
}

// CatalogUsecase defines the product catalog use cases
type CatalogUsecase interface {
	// ListProducts filters, sorts and pages the catalog
	ListProducts(ctx context.Context, query ProductQuery) (*ProductPage, error)

	// GetProduct returns one product
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)

	// CreateProduct validates and appends a product with a fresh id
	CreateProduct(ctx context.Context, product entity.Product) (*entity.Product, error)

	// UpdateProduct replaces a product. Orders referencing it are not touched.
	UpdateProduct(ctx context.Context, id int64, product entity.Product) (*entity.Product, error)

	// DeleteProduct removes a product
	DeleteProduct(ctx context.Context, id int64) error

	// ImportProducts parses products, assigns fresh ids and appends them to the catalog
	ImportProducts(ctx context.Context, format string, r io.Reader) ([]entity.Product, error)

	// ExportProducts writes the whole catalog
	ExportProducts(ctx context.Context, format string, w io.Writer) error

	// Inventory summarizes stock levels
	Inventory(ctx context.Context) derived.InventorySummary
}
