package storage

import (
	"context"
	"fmt"

	"github.com/hyperjump/notegraph/internal/config"
)

// Open returns the Storage backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewSQLiteStorage(cfg.DatabasePath)
	case config.DriverPostgres:
		return NewPostgresStorage(ctx, cfg.DSN)
	case config.DriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
