package bootstrap

import (
	"context"
	"time"

	"paylink-vending/cmd/bootstrap/components"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const migrateTimeout = 30 * time.Second

func NewPoolOpener(lc fx.Lifecycle, cfg config.Config) components.PoolOpener {
	return func() (*pgxpool.Pool, error) {
		return NewDB(lc, cfg)
	}
}

// NewDB connects and applies pending migrations. The pool is closed when the app stops.
func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	if err := db.Migrate(ctx, pool); err != nil {
		cleanup()
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
