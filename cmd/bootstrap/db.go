package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"gst-lifecycle/internal/infra/db"
	"gst-lifecycle/internal/infra/memstore"
	"gst-lifecycle/internal/infra/pgstore"
	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewStores,
	),
)

type Stores struct {
	fx.Out

	Documents shared.DocumentStore
	Audits    shared.AuditLog
}

// NewStores selects the document store by STORE_DRIVER.
func NewStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Stores, error) {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Warn("Using in-memory document store; state is lost on restart")
		return Stores{
			Documents: memstore.NewDocumentStore(),
			Audits:    memstore.NewAuditLog(),
		}, nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return Stores{}, err
	}
	return Stores{
		Documents: pgstore.NewDocumentRepository(pool, logger),
		Audits:    pgstore.NewAuditRepository(pool, logger),
	}, nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DB.AutoMigrate {
		if err := db.Migrate(cfg.DB); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
