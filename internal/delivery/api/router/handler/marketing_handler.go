package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
)

// MarketingHandlerParams holds dependencies for MarketingHandler, injected by Fx.
type MarketingHandlerParams struct {
	fx.In

	MarketingUC usecase.MarketingUsecase
	AdminUC     usecase.AdminUsecase
	Logger      *slog.Logger
}

// MarketingHandler serves banners and promo codes
type MarketingHandler struct {
	marketingUC usecase.MarketingUsecase
	activity    activityRecorder
}

// NewMarketingHandler is the constructor for MarketingHandler
func NewMarketingHandler(params MarketingHandlerParams) *MarketingHandler {
	return &MarketingHandler{
		marketingUC: params.MarketingUC,
		activity:    activityRecorder{adminUC: params.AdminUC, logger: params.Logger},
	}
}

// ApplyPromoRequest asks for the discount of a code on a subtotal
type ApplyPromoRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

// ScanPromoRequest carries the raw content of a scanned QR code
type ScanPromoRequest struct {
	QRData string `json:"qrData" validate:"required"`
}

// ListActiveBanners returns the storefront banners
func (h *MarketingHandler) ListActiveBanners(c echo.Context) error {
	banners, err := h.marketingUC.ListBanners(c.Request().Context(), true)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, banners)
}

// ListBanners returns every banner
func (h *MarketingHandler) ListBanners(c echo.Context) error {
	banners, err := h.marketingUC.ListBanners(c.Request().Context(), false)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, banners)
}

// SaveBanner creates a banner, or replaces the one named by the id path parameter
func (h *MarketingHandler) SaveBanner(c echo.Context) error {
	var banner entity.Banner
	if err := c.Bind(&banner); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid banner input")
	}

	status := http.StatusCreated
	if c.Param("id") != "" {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		banner.ID = id
		status = http.StatusOK
	} else {
		banner.ID = 0
	}

	saved, err := h.marketingUC.SaveBanner(c.Request().Context(), banner)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "save_banner", saved.Title)

	return response.Success(c, status, saved)
}

// DeleteBanner removes a banner
func (h *MarketingHandler) DeleteBanner(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.marketingUC.DeleteBanner(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "delete_banner", strconv.FormatInt(id, 10))

	return response.Message(c, http.StatusOK, "Banner deleted")
}

// ListPromoCodes returns every promo code
func (h *MarketingHandler) ListPromoCodes(c echo.Context) error {
	promos, err := h.marketingUC.ListPromoCodes(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, promos)
}

// CreatePromoCode adds a promo code
func (h *MarketingHandler) CreatePromoCode(c echo.Context) error {
	var promo entity.PromoCode
	if err := c.Bind(&promo); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo code input")
	}

	created, err := h.marketingUC.CreatePromoCode(c.Request().Context(), promo)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "create_promo_code", created.Code)

	return response.Success(c, http.StatusCreated, created)
}

// UpdatePromoCode replaces a promo code
func (h *MarketingHandler) UpdatePromoCode(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var promo entity.PromoCode
	if err := c.Bind(&promo); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo code input")
	}
	promo.ID = id

	updated, err := h.marketingUC.UpdatePromoCode(c.Request().Context(), promo)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "update_promo_code", updated.Code)

	return response.Success(c, http.StatusOK, updated)
}

// DeletePromoCode removes a promo code
func (h *MarketingHandler) DeletePromoCode(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.marketingUC.DeletePromoCode(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "delete_promo_code", strconv.FormatInt(id, 10))

	return response.Message(c, http.StatusOK, "Promo code deleted")
}

// TogglePromoCode flips the active flag of a promo code
func (h *MarketingHandler) TogglePromoCode(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	promo, err := h.marketingUC.TogglePromoCode(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "toggle_promo_code", promo.Code)

	return response.Success(c, http.StatusOK, promo)
}

// PromoCodeQR returns the promo code as a PNG QR image
func (h *MarketingHandler) PromoCodeQR(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	png, err := h.marketingUC.PromoCodeQR(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ApplyPromoCode previews the discount of a code
func (h *MarketingHandler) ApplyPromoCode(c echo.Context) error {
	var req ApplyPromoRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	applied, err := h.marketingUC.ApplyPromoCode(c.Request().Context(), req.Code, req.Subtotal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, applied)
}

// ScanPromoQR resolves the promo code of scanned QR content
func (h *MarketingHandler) ScanPromoQR(c echo.Context) error {
	var req ScanPromoRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	code, err := h.marketingUC.ScanPromoQR(c.Request().Context(), req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"code": code})
}
