package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/adisonshadow/adb/internal/cli/config"
	"github.com/adisonshadow/adb/pkg/enumsync"
)

// openDB is replaced in tests
var openDB = sql.Open

// enumStore is an open enum record repository and the connections behind it
type enumStore struct {
	repo    enumsync.Repository
	closers []func() error
}

func (s *enumStore) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openEnumStore connects to the configured database and, when redis.addr is
// set, puts the Redis cache in front of it. ensure creates the table first.
func openEnumStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, ensure bool) (*enumStore, error) {
	db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &enumStore{closers: []func() error{db.Close}}

	sqlRepo := enumsync.NewSQLRepository(db, enumsync.WithDialect(enumsync.DialectFor(cfg.Database.Driver)))
	if ensure {
		if err := sqlRepo.EnsureTable(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to create %s table: %w", enumsync.TableName, err)
		}
	}
	store.repo = sqlRepo

	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cached := enumsync.NewCachedRepository(sqlRepo, client, enumsync.CacheConfig{
			Prefix: cfg.Redis.Prefix,
			TTL:    cfg.Redis.TTL,
		}, logger)
		store.repo = cached
		store.closers = append(store.closers, cached.Close)
		logger.Debug("enum record cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	return store, nil
}
