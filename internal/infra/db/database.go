package db

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/pkg/errs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	_ "github.com/golang-migrate/migrate/v4/source/file"     // file:// source
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to parse database config")
	}
	poolCfg.MaxConns = 20
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to open database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, errs.Wrap(err, "failed to ping database")
	}

	return pool, pool.Close, nil
}

// Migrate applies every pending up-migration in cfg.MigrationsDir.
func Migrate(cfg config.DBConfig) error {
	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		return errs.Wrap(err, "failed to resolve migrations directory")
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.BuildMigrateURL())
	if err != nil {
		return errs.Wrap(err, "failed to initialise migrations")
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("failed to close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errs.Is(err, migrate.ErrNoChange) {
		return errs.Wrap(err, "failed to apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && !errs.Is(err, migrate.ErrNilVersion) {
		return errs.Wrap(err, "failed to read migration version")
	}
	slog.Info("database schema is up to date", "version", version, "dirty", dirty)
	return nil
}
