package usecase

import (
	"context"

	"veluna/internal/domain/entity"
	"veluna/internal/usecase/derived"
)

// CartItemInput identifies a cart line by product, size and color
type CartItemInput struct {
	ProductID     int64
	Quantity      int
	SelectedSize  string
	SelectedColor string
}

// Cart is the cart content with its totals
type Cart struct {
	Items   []entity.CartItem   `json:"items"`
	Summary derived.CartSummary `json:"summary"`
}

// CartUsecase defines the shopping cart use cases
type CartUsecase interface {
	// GetCart returns the cart with totals, applying discountPercent
	GetCart(ctx context.Context, discountPercent int) (*Cart, error)

	// AddItem merges the product into the line with the same tuple or appends a new line
	AddItem(ctx context.Context, input CartItemInput) (*Cart, error)

	// UpdateQuantity sets the quantity of a line. A quantity below 1 removes it.
	UpdateQuantity(ctx context.Context, input CartItemInput) (*Cart, error)

	// RemoveItem removes a line
	RemoveItem(ctx context.Context, input CartItemInput) (*Cart, error)

	// Clear empties the cart
	Clear(ctx context.Context) error
}

// ProductList names a per-session product list
type ProductList string

const (
	ListWishlist ProductList = "wishlist"
	ListCompare  ProductList = "compare"
	ListViewed   ProductList = "viewed"
)

// Product list capacities
const (
	MaxCompare = 4
	MaxViewed  = 10
)

// ProductListUsecase defines wishlist, compare and recently viewed use cases
type ProductListUsecase interface {
	// List returns the products of a list
	List(ctx context.Context, list ProductList) ([]entity.Product, error)

	// Toggle adds the product when absent and removes it when present
	Toggle(ctx context.Context, list ProductList, productID int64) (added bool, err error)

	// Remove removes the product from a list
	Remove(ctx context.Context, list ProductList, productID int64) error

	// Clear empties a list
	Clear(ctx context.Context, list ProductList) error

	// RecordView moves the product to the front of the viewed list
	RecordView(ctx context.Context, productID int64) error
}
