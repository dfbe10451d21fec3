package usecase

import (
	"context"

	"veluna/internal/domain/entity"
)

// SettingsUsecase defines the site contact settings use cases
type SettingsUsecase interface {
	// GetSettings returns the current settings
	GetSettings(ctx context.Context) entity.SiteSettings

	// UpdateSettings validates and overwrites the settings
	UpdateSettings(ctx context.Context, settings entity.SiteSettings) (*entity.SiteSettings, error)
}
