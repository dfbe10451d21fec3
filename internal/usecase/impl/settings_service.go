package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
	"veluna/internal/usecase/state"
)

type settingsService struct {
	state  *state.State
	logger *slog.Logger
}

// SettingsServiceParams holds dependencies for SettingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		state:  params.State,
		logger: params.Logger,
	}
}

// GetSettings returns the current settings
func (s *settingsService) GetSettings(_ context.Context) entity.SiteSettings {
	return s.state.Settings.Items()
}

// UpdateSettings validates and overwrites the settings
func (s *settingsService) UpdateSettings(ctx context.Context, settings entity.SiteSettings) (*entity.SiteSettings, error) {
	if err := validateEntity(settings); err != nil {
		return nil, err
	}

	if _, err := s.state.Settings.Mutate(ctx, func(entity.SiteSettings) (entity.SiteSettings, error) {
		return settings, nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Info("Site settings updated")

	return &settings, nil
}
