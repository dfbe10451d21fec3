// Package postgres implements a KeyedStore on a single PostgreSQL table
// through gorm.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"veluna/internal/domain/repository"
	"veluna/internal/errors"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

type documentModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (documentModel) TableName() string {
	return "documents"
}

// Store is a PostgreSQL backed KeyedStore.
type Store struct {
	db            *gorm.DB
	sqlDB         *sql.DB
	origin        string
	cancelMonitor context.CancelFunc
}

var _ repository.KeyedStore = (*Store)(nil)

// New connects through the shared go-lib client, migrates the documents
// table and starts the pool monitor.
func New(ctx context.Context, cfg *pgLib.DBConn, debug bool, origin string, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("postgres connection config is required for postgres storage")
	}

	db, err := pgLib.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Every write is a single upsert of a whole document.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, debug),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()

		return nil, errors.Wrap(err, "failed to ping PostgreSQL")
	}

	if err := db.WithContext(ctx).AutoMigrate(&documentModel{}); err != nil {
		_ = sqlDB.Close()

		return nil, errors.Wrap(err, "failed to migrate documents table")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

	return &Store{
		db:            db,
		sqlDB:         sqlDB,
		origin:        origin,
		cancelMonitor: cancelMonitor,
	}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var model documentModel

	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", key)
	}

	return []byte(model.Value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	model := documentModel{Key: key, Value: string(value), UpdatedAt: time.Now()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return errors.Wrapf(err, "upsert %s", key)
	}

	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&documentModel{}).Error; err != nil {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) Close() error {
	s.cancelMonitor()

	return s.sqlDB.Close()
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration
			prev = cur
			if waitDelta <= 0 {
				continue
			}

			level := slog.LevelDebug
			if waitDurationDelta >= dbPoolWarnDurationThreshold {
				level = slog.LevelWarn
			}

			logger.LogAttrs(ctx, level, "Document store pool wait",
				slog.Int64("waitCountDelta", waitDelta),
				slog.Duration("waitDurationDelta", waitDurationDelta),
				slog.Int("openConns", cur.OpenConnections),
				slog.Int("inUseConns", cur.InUse),
				slog.Int("idleConns", cur.Idle),
			)
		}
	}
}
