package components

import (
	"log/slog"

	"paylink-vending/internal/infra/memstore"
	"paylink-vending/internal/infra/repository"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// PoolOpener defers the database connection so the memory driver never dials it.
type PoolOpener func() (*pgxpool.Pool, error)

type StoreParams struct {
	fx.In

	Config   config.Config
	Clock    clock.Clock
	Logger   *slog.Logger
	OpenPool PoolOpener
}

type Stores struct {
	fx.Out

	Products  shared.ProductRepository
	Catalogs  shared.CatalogRepository
	Ledger    shared.LedgerRepository
	Sessions  shared.SessionRepository
	Purchases shared.PurchaseRepository
}

func NewStores(p StoreParams) (Stores, error) {
	if p.Config.Storage.Driver == config.StorageDriverMemory {
		p.Logger.Warn("using in-memory storage; ledger and stock are lost on restart")
		return Stores{
			Products:  memstore.NewProductRepository(p.Clock),
			Catalogs:  memstore.NewCatalogRepository(),
			Ledger:    memstore.NewLedgerRepository(),
			Sessions:  memstore.NewSessionRepository(),
			Purchases: memstore.NewPurchaseRepository(),
		}, nil
	}

	pool, err := p.OpenPool()
	if err != nil {
		return Stores{}, err
	}
	u := uow.NewPostgresUoW(pool)
	return Stores{
		Products:  repository.NewProductRepository(u, p.Clock),
		Catalogs:  repository.NewCatalogRepository(u, p.Clock),
		Ledger:    repository.NewLedgerRepository(u),
		Sessions:  repository.NewSessionRepository(u),
		Purchases: repository.NewPurchaseRepository(u),
	}, nil
}
