package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"veluna/config"
	"veluna/internal/domain/constants"
	"veluna/internal/domain/lifecycle"
	"veluna/internal/domain/repository"
	"veluna/internal/errors"
	"veluna/internal/infra/storage/file"
	"veluna/internal/infra/storage/memory"
	"veluna/internal/infra/storage/mongo"
	"veluna/internal/infra/storage/postgres"
	"veluna/internal/infra/storage/redis"
)

// StoreParams holds dependencies for the KeyedStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewKeyedStore creates the KeyedStore selected by storage.provider
func NewKeyedStore(params StoreParams) (repository.KeyedStore, error) {
	cfg := params.Config.Storage
	logger := params.Logger

	origin := cfg.Origin
	if origin == "" {
		origin = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	var (
		store repository.KeyedStore
		err   error
	)

	switch cfg.Provider {
	case constants.StorageProviderMemory, "":
		logger.Info("Using in-memory storage", slog.String("origin", origin))

		store = memory.NewStorage().Tab(origin)

	case constants.StorageProviderFile:
		dir := ""
		if cfg.File != nil {
			dir = cfg.File.Dir
		}
		logger.Info("Using file storage", slog.String("dir", dir), slog.String("origin", origin))

		store, err = file.New(dir, origin)

	case constants.StorageProviderRedis:
		logger.Info("Using Redis storage", slog.String("origin", origin))

		store, err = redis.New(ctx, cfg.Redis, cfg.Namespace, origin, logger)

	case constants.StorageProviderMongo:
		logger.Info("Using MongoDB storage", slog.String("origin", origin))

		store, err = mongo.New(ctx, cfg.Mongo, origin)

	case constants.StorageProviderPostgres:
		logger.Info("Using PostgreSQL storage", slog.String("origin", origin))

		store, err = postgres.New(ctx, cfg.Postgres, params.Config.Env.Debug, origin, logger)

	default:
		return nil, errors.Errorf("unknown storage provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing KeyedStore")

			return store.Close()
		},
	})

	return store, nil
}

// NewKeys returns the storage key set for the configured namespace
func NewKeys(cfg *config.Config) repository.Keys {
	return repository.NewKeys(cfg.Storage.Namespace)
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewKeyedStore, NewKeys),
)
