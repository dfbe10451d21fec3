package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/usecase"
)

// ShoppingHandlerParams holds dependencies for ShoppingHandler, injected by Fx.
type ShoppingHandlerParams struct {
	fx.In

	CartUC        usecase.CartUsecase
	ProductListUC usecase.ProductListUsecase
	MarketingUC   usecase.MarketingUsecase
	Logger        *slog.Logger
}

// ShoppingHandler serves the cart and the wishlist, compare and viewed lists
type ShoppingHandler struct {
	cartUC        usecase.CartUsecase
	productListUC usecase.ProductListUsecase
	marketingUC   usecase.MarketingUsecase
	logger        *slog.Logger
}

// NewShoppingHandler is the constructor for ShoppingHandler
func NewShoppingHandler(params ShoppingHandlerParams) *ShoppingHandler {
	return &ShoppingHandler{
		cartUC:        params.CartUC,
		productListUC: params.ProductListUC,
		marketingUC:   params.MarketingUC,
		logger:        params.Logger,
	}
}

// CartItemRequest identifies a cart line
type CartItemRequest struct {
	ProductID     int64  `json:"productId" query:"productId" validate:"required,gt=0"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	SelectedSize  string `json:"selectedSize" query:"size"`
	SelectedColor string `json:"selectedColor" query:"color"`
}

func (r CartItemRequest) input() usecase.CartItemInput {
	return usecase.CartItemInput{
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		SelectedSize:  r.SelectedSize,
		SelectedColor: r.SelectedColor,
	}
}

// GetCart returns the cart. An optional promoCode query parameter applies its discount to the totals.
func (h *ShoppingHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartUC.GetCart(ctx, 0)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if code := c.QueryParam("promoCode"); code != "" {
		applied, err := h.marketingUC.ApplyPromoCode(ctx, code, cart.Summary.Subtotal)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		if cart, err = h.cartUC.GetCart(ctx, applied.Discount); err != nil {
			return response.HandleAppError(c, err)
		}
	}

	return response.Success(c, http.StatusOK, cart)
}

// AddToCart merges a product into the cart
func (h *ShoppingHandler) AddToCart(c echo.Context) error {
	var req CartItemRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// UpdateCartItem sets the quantity of a line; zero removes it
func (h *ShoppingHandler) UpdateCartItem(c echo.Context) error {
	var req CartItemRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.UpdateQuantity(c.Request().Context(), req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// RemoveFromCart removes the line named by the productId, size and color
// query parameters, or empties the cart when productId is absent
func (h *ShoppingHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("productId") == "" {
		if err := h.cartUC.Clear(ctx); err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, usecase.Cart{})
	}

	var req CartItemRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.RemoveItem(ctx, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// ListProducts returns the products of one list
func (h *ShoppingHandler) ListProducts(list usecase.ProductList) echo.HandlerFunc {
	return func(c echo.Context) error {
		products, err := h.productListUC.List(c.Request().Context(), list)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, products)
	}
}

// ToggleProduct adds the product to the list or removes it
func (h *ShoppingHandler) ToggleProduct(list usecase.ProductList) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "productId")
		if !ok {
			return invalidID(c)
		}

		added, err := h.productListUC.Toggle(c.Request().Context(), list, id)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, map[string]any{
			"productId": id,
			"added":     added,
		})
	}
}

// RemoveProduct drops the product from the list
func (h *ShoppingHandler) RemoveProduct(list usecase.ProductList) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "productId")
		if !ok {
			return invalidID(c)
		}

		if err := h.productListUC.Remove(c.Request().Context(), list, id); err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Message(c, http.StatusOK, "Removed")
	}
}

// ClearProducts empties the list
func (h *ShoppingHandler) ClearProducts(list usecase.ProductList) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.productListUC.Clear(c.Request().Context(), list); err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Message(c, http.StatusOK, "Cleared")
	}
}

// RecordView moves the product to the front of the recently viewed list
func (h *ShoppingHandler) RecordView(c echo.Context) error {
	id, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c)
	}

	if err := h.productListUC.RecordView(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Recorded")
}
