// Package store persists the calculator state. Every backend keeps two
// records: the save preference, which is always written, and the state
// itself, which only exists while saving is enabled.
package store

import (
	"context"
	"fmt"

	"github.com/yungbote/gradecalc/internal/config"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
)

type Store interface {
	// Load returns the state to start from. found reports whether a saved
	// state record was restored; when it is false the result is the
	// default state carrying the stored save preference.
	Load(ctx context.Context) (st state.State, found bool, err error)
	Save(ctx context.Context, st state.State) error
	// Clear removes both records.
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := OpenGormDB(cfg.Driver, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return NewGormStore(ctx, db, cfg.ProfileKey, log)
	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.Redis, cfg.ProfileKey, log)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
