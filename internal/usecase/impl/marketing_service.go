package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/domain/service"
	"veluna/internal/errors"
	"veluna/internal/usecase"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/state"
)

type marketingService struct {
	state  *state.State
	qrcode service.QRCodeService
	now    clock
	logger *slog.Logger
}

// MarketingServiceParams holds dependencies for MarketingService, injected by Fx.
type MarketingServiceParams struct {
	fx.In

	State         *state.State
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewMarketingService creates a new marketing service instance
func NewMarketingService(params MarketingServiceParams) usecase.MarketingUsecase {
	return &marketingService{
		state:  params.State,
		qrcode: params.QRCodeService,
		now:    time.Now,
		logger: params.Logger,
	}
}

// ListBanners returns banners ordered by position
func (s *marketingService) ListBanners(_ context.Context, activeOnly bool) ([]entity.Banner, error) {
	banners := s.state.Banners.Items()
	if activeOnly {
		banners = slices.DeleteFunc(banners, func(b entity.Banner) bool { return !b.Active })
	}
	slices.SortStableFunc(banners, func(a, b entity.Banner) int { return cmp.Compare(a.Position, b.Position) })

	return banners, nil
}

// SaveBanner creates a banner when its id is zero, otherwise replaces it
func (s *marketingService) SaveBanner(ctx context.Context, banner entity.Banner) (*entity.Banner, error) {
	if err := validateEntity(banner); err != nil {
		return nil, err
	}

	if _, err := s.state.Banners.Mutate(ctx, func(banners []entity.Banner) ([]entity.Banner, error) {
		if banner.ID == 0 {
			banner.ID = collection.NewID()
			if banner.Position == 0 {
				banner.Position = len(banners) + 1
			}

			return append(banners, banner), nil
		}
		if collection.IndexOf(banners, banner.ID) < 0 {
			return nil, domainerrors.ErrNotFound
		}

		return collection.Upsert(banners, banner), nil
	}); err != nil {
		return nil, err
	}

	return &banner, nil
}

// DeleteBanner removes a banner
func (s *marketingService) DeleteBanner(ctx context.Context, id int64) error {
	_, err := s.state.Banners.Mutate(ctx, func(banners []entity.Banner) ([]entity.Banner, error) {
		next, removed := collection.Delete(banners, id)
		if !removed {
			return nil, domainerrors.ErrNotFound
		}

		return next, nil
	})

	return err
}

// ListPromoCodes returns every promo code
func (s *marketingService) ListPromoCodes(_ context.Context) ([]entity.PromoCode, error) {
	return s.state.PromoCodes.Items(), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func indexOfCode(promos []entity.PromoCode, code string) int {
	return slices.IndexFunc(promos, func(p entity.PromoCode) bool { return strings.EqualFold(p.Code, code) })
}

// CreatePromoCode adds a promo code
func (s *marketingService) CreatePromoCode(ctx context.Context, promo entity.PromoCode) (*entity.PromoCode, error) {
	promo.Code = normalizeCode(promo.Code)
	if err := validateEntity(promo); err != nil {
		return nil, err
	}

	promo.ID = collection.NewID()
	promo.UsageCount = 0
	if _, err := s.state.PromoCodes.Mutate(ctx, func(promos []entity.PromoCode) ([]entity.PromoCode, error) {
		if indexOfCode(promos, promo.Code) >= 0 {
			return nil, domainerrors.ErrPromoCodeExists
		}

		return append(promos, promo), nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Info("Promo code created", slog.String("code", promo.Code), slog.Int("discount", promo.Discount))

	return &promo, nil
}

// UpdatePromoCode replaces a promo code
func (s *marketingService) UpdatePromoCode(ctx context.Context, promo entity.PromoCode) (*entity.PromoCode, error) {
	promo.Code = normalizeCode(promo.Code)
	if err := validateEntity(promo); err != nil {
		return nil, err
	}

	if _, err := s.state.PromoCodes.Mutate(ctx, func(promos []entity.PromoCode) ([]entity.PromoCode, error) {
		i := collection.IndexOf(promos, promo.ID)
		if i < 0 {
			return nil, domainerrors.ErrPromoCodeNotFound
		}
		if j := indexOfCode(promos, promo.Code); j >= 0 && j != i {
			return nil, domainerrors.ErrPromoCodeExists
		}
		promos[i] = promo

		return promos, nil
	}); err != nil {
		return nil, err
	}

	return &promo, nil
}

// DeletePromoCode removes a promo code
func (s *marketingService) DeletePromoCode(ctx context.Context, id int64) error {
	_, err := s.state.PromoCodes.Mutate(ctx, func(promos []entity.PromoCode) ([]entity.PromoCode, error) {
		next, removed := collection.Delete(promos, id)
		if !removed {
			return nil, domainerrors.ErrPromoCodeNotFound
		}

		return next, nil
	})

	return err
}

// TogglePromoCode flips the active flag
func (s *marketingService) TogglePromoCode(ctx context.Context, id int64) (*entity.PromoCode, error) {
	var toggled entity.PromoCode
	if _, err := s.state.PromoCodes.Mutate(ctx, func(promos []entity.PromoCode) ([]entity.PromoCode, error) {
		i := collection.IndexOf(promos, id)
		if i < 0 {
			return nil, domainerrors.ErrPromoCodeNotFound
		}
		promos[i].Active = !promos[i].Active
		toggled = promos[i]

		return promos, nil
	}); err != nil {
		return nil, err
	}

	return &toggled, nil
}

// usable reports why a promo code cannot be applied today, or nil.
func (s *marketingService) usable(promo entity.PromoCode) error {
	if !promo.Active {
		return domainerrors.ErrPromoCodeInactive
	}
	if promo.UsageLimit > 0 && promo.UsageCount >= promo.UsageLimit {
		return domainerrors.ErrPromoCodeInactive.WithDetails("usage limit reached")
	}
	if promo.ExpiresAt != "" && promo.ExpiresAt < s.now.today() {
		return domainerrors.ErrPromoCodeInactive.WithDetails("expired on " + promo.ExpiresAt)
	}

	return nil
}

// ApplyPromoCode computes the discount of an active code without recording usage
func (s *marketingService) ApplyPromoCode(_ context.Context, code string, subtotal float64) (*usecase.PromoApplication, error) {
	promos := s.state.PromoCodes.Items()

	i := indexOfCode(promos, normalizeCode(code))
	if i < 0 {
		return nil, domainerrors.ErrPromoCodeNotFound
	}
	promo := promos[i]
	if err := s.usable(promo); err != nil {
		return nil, err
	}

	savings := subtotal * float64(promo.Discount) / 100

	return &usecase.PromoApplication{
		Code:     promo.Code,
		Discount: promo.Discount,
		Subtotal: subtotal,
		Savings:  savings,
		Total:    subtotal - savings,
	}, nil
}

// RedeemPromoCode increments the usage count of a code
func (s *marketingService) RedeemPromoCode(ctx context.Context, code string) error {
	_, err := s.state.PromoCodes.Mutate(ctx, func(promos []entity.PromoCode) ([]entity.PromoCode, error) {
		i := indexOfCode(promos, normalizeCode(code))
		if i < 0 {
			return nil, domainerrors.ErrPromoCodeNotFound
		}
		promos[i].UsageCount++

		return promos, nil
	})

	return err
}

// PromoCodeQR renders the code as a PNG QR image
func (s *marketingService) PromoCodeQR(_ context.Context, id int64) ([]byte, error) {
	promos := s.state.PromoCodes.Items()

	i := collection.IndexOf(promos, id)
	if i < 0 {
		return nil, domainerrors.ErrPromoCodeNotFound
	}

	png, err := s.qrcode.GeneratePromoQR(promos[i].Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate promo QR code")
	}

	return png, nil
}

// ScanPromoQR returns the promo code carried by scanned QR content
func (s *marketingService) ScanPromoQR(_ context.Context, qrData string) (string, error) {
	code, err := s.qrcode.ParsePromoQR(qrData)
	if err != nil {
		return "", domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return code, nil
}
