package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Connect.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect opens a pool for the given driver. A failed ping is logged and the
// pool is still returned, so a database that comes up later is picked up by
// the next request.
func Connect(ctx context.Context, driver, dsn string, logger *zap.Logger) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no data source name for driver %s", driver)
	}
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		logger.Warn("Database ping failed, proceeding", zap.String("driver", driver), zap.Error(err))
	}

	// Disable idle connections to avoid holding on to suspended compute
	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(10)

	logger.Info("Connected to database", zap.String("driver", driver))
	return db, nil
}
