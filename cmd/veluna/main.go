package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"veluna/config"
	"veluna/internal/delivery"
	"veluna/internal/delivery/api"
	"veluna/internal/delivery/api/middleware"
	"veluna/internal/delivery/api/router/handler"
	"veluna/internal/domain/service"
	"veluna/internal/infra/auth"
	"veluna/internal/infra/broadcast"
	"veluna/internal/infra/chatnotify"
	logs "veluna/internal/infra/log"
	"veluna/internal/infra/qrcode"
	"veluna/internal/infra/storage"
	"veluna/internal/usecase/impl"
	"veluna/internal/usecase/state"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		storage.Module,
		broadcast.Module,
		chatnotify.Module,
		state.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(0, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewProductListService,
			impl.NewOrderService,
			impl.NewNotificationService,
			impl.NewMarketingService,
			impl.NewSettingsService,
			impl.NewCustomerService,
			impl.NewChatService,
			impl.NewAdminService,
			impl.NewAnalyticsService,
			impl.NewCourierService,
			impl.NewShippingZoneService,
			impl.NewPaymentMethodService,
			impl.NewEmailCampaignService,
			impl.NewReviewService,
			impl.NewCategoryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCatalogHandler,
			handler.NewShoppingHandler,
			handler.NewOrderHandler,
			handler.NewNotificationHandler,
			handler.NewMarketingHandler,
			handler.NewSettingsHandler,
			handler.NewCustomerHandler,
			handler.NewChatHandler,
			handler.NewAdminHandler,
			handler.NewRecordHandlers,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer serves every delivery once the state views are mounted.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
