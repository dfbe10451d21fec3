package usecase

import (
	"context"

	"veluna/internal/domain/entity"
)

// PromoApplication is the result of applying a promo code to an amount
type PromoApplication struct {
	Code     string  `json:"code"`
	Discount int     `json:"discount"`
	Subtotal float64 `json:"subtotal"`
	Savings  float64 `json:"savings"`
	Total    float64 `json:"total"`
}

// MarketingUsecase defines banner and promo code use cases
type MarketingUsecase interface {
	// ListBanners returns banners ordered by position
	ListBanners(ctx context.Context, activeOnly bool) ([]entity.Banner, error)

	// SaveBanner creates a banner when its id is zero, otherwise replaces it
	SaveBanner(ctx context.Context, banner entity.Banner) (*entity.Banner, error)

	// DeleteBanner removes a banner
	DeleteBanner(ctx context.Context, id int64) error

	// ListPromoCodes returns every promo code
	ListPromoCodes(ctx context.Context) ([]entity.PromoCode, error)

	// CreatePromoCode adds a promo code; codes are unique ignoring case
	CreatePromoCode(ctx context.Context, promo entity.PromoCode) (*entity.PromoCode, error)

	// UpdatePromoCode replaces a promo code
	UpdatePromoCode(ctx context.Context, promo entity.PromoCode) (*entity.PromoCode, error)

	// DeletePromoCode removes a promo code
	DeletePromoCode(ctx context.Context, id int64) error

	// TogglePromoCode flips the active flag
	TogglePromoCode(ctx context.Context, id int64) (*entity.PromoCode, error)

	// ApplyPromoCode computes the discount of an active code without recording usage
	ApplyPromoCode(ctx context.Context, code string, subtotal float64) (*PromoApplication, error)

	// RedeemPromoCode increments the usage count of a code
	RedeemPromoCode(ctx context.Context, code string) error

	// PromoCodeQR renders the code as a PNG QR image
	PromoCodeQR(ctx context.Context, id int64) ([]byte, error)

	// ScanPromoQR returns the promo code carried by scanned QR content
	ScanPromoQR(ctx context.Context, qrData string) (string, error)
}
