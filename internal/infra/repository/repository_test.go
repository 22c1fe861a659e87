//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"paylink-vending/internal/domain/catalog"
	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/repository"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
	"paylink-vending/tests/common/builder"
	"paylink-vending/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

type RepositoryTestSuite struct {
	suite.Suite
	ctx       context.Context
	pool      *pgxpool.Pool
	products  *repository.ProductRepository
	catalogs  *repository.CatalogRepository
	ledger    *repository.LedgerRepository
	sessions  *repository.SessionRepository
	purchases *repository.PurchaseRepository
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool, _ = dbtest.NewPostgres(s.T())

	u := uow.NewPostgresUoW(s.pool)
	clk := clock.NewMockClock(t0)
	s.products = repository.NewProductRepository(u, clk)
	s.catalogs = repository.NewCatalogRepository(u, clk)
	s.ledger = repository.NewLedgerRepository(u)
	s.sessions = repository.NewSessionRepository(u)
	s.purchases = repository.NewPurchaseRepository(u)
}

func (s *RepositoryTestSuite) SetupTest() {
	s.Require().NoError(dbtest.ResetDB(s.pool))
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) save(b *builder.ProductBuilder) *product.Product {
	p := b.MustBuildDomain(s.T())
	s.Require().NoError(s.products.Save(s.ctx, p))
	return p
}

func (s *RepositoryTestSuite) TestProduct_RoundTrip() {
	p := s.save(builder.NewProductBuilder().WithPool(
		product.Credential{Login: "a@example.com", Secret: "pa", Note: "first"},
		product.Credential{Login: "b@example.com", Secret: "pb"},
	))

	got, err := s.products.FindByID(s.ctx, p.TenantID(), p.ID())

	s.Require().NoError(err)
	s.Equal(p.Name(), got.Name())
	s.Equal(p.UnitPrice(), got.UnitPrice())
	s.Equal(product.StockPool, got.Stock().Kind())
	s.Equal(p.Stock().Credentials(), got.Stock().Credentials())

	list, err := s.products.ListByTenant(s.ctx, p.TenantID())
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.products.FindByID(s.ctx, "other-tenant", p.ID())
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *RepositoryTestSuite) TestProduct_SaveReplacesStock() {
	p := s.save(builder.NewProductBuilder().WithPool(product.Credential{Login: "a", Secret: "x"}))
	s.save(builder.NewProductBuilder().WithID(p.ID()).WithCountedStock(9))

	got, err := s.products.FindByID(s.ctx, p.TenantID(), p.ID())
	s.Require().NoError(err)
	s.Equal(product.StockCounted, got.Stock().Kind())
	s.Equal(9, got.Stock().Count())
	s.Equal(0, dbtest.CountRows(s.T(), s.pool, "product_credentials", ""))
}

func (s *RepositoryTestSuite) TestProduct_ConcurrentAllocate() {
	cases := []struct {
		name    string
		stock   int
		workers int
	}{
		{name: "在庫より多い購入者", stock: 5, workers: 30},
		{name: "在庫と同数", stock: 12, workers: 12},
	}
	for i, tc := range cases {
		s.Run(tc.name, func() {
			p := s.save(builder.NewProductBuilder().WithID(fmt.Sprintf("counted-%d", i)).WithCountedStock(tc.stock))

			var ok, short atomic.Int64
			var wg sync.WaitGroup
			for range tc.workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.products.Allocate(s.ctx, p.TenantID(), p.ID(), 1)
					switch {
					case err == nil:
						ok.Add(1)
					case errs.Is(err, product.ErrInsufficientStock):
						short.Add(1)
					default:
						s.Failf("unexpected error", "%v", err)
					}
				}()
			}
			wg.Wait()

			want := min(tc.workers, tc.stock)
			s.EqualValues(want, ok.Load())
			s.EqualValues(tc.workers-want, short.Load())

			got, err := s.products.FindByID(s.ctx, p.TenantID(), p.ID())
			s.Require().NoError(err)
			s.Equal(tc.stock-want, got.Stock().Count())
		})
	}
}

func (s *RepositoryTestSuite) TestProduct_PoolAllocateIsFIFOAndExclusive() {
	creds := make([]product.Credential, 10)
	for i := range creds {
		creds[i] = product.Credential{Login: fmt.Sprintf("user-%02d", i), Secret: "pw"}
	}
	p := s.save(builder.NewProductBuilder().WithPool(creds...))

	first, err := s.products.Allocate(s.ctx, p.TenantID(), p.ID(), 2)
	s.Require().NoError(err)
	s.Equal(creds[:2], first.Credentials)
	s.Equal(8, first.Remaining)

	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			alloc, err := s.products.Allocate(s.ctx, p.TenantID(), p.ID(), 1)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, c := range alloc.Credentials {
				seen[c.Login]++
			}
		}()
	}
	wg.Wait()

	s.Len(seen, 8)
	for login, n := range seen {
		s.Equal(1, n, login)
	}
	s.Equal(0, dbtest.CountRows(s.T(), s.pool, "product_credentials", "product_id = $1", p.ID()))
}

func (s *RepositoryTestSuite) TestProduct_AllocateFailures() {
	counted := s.save(builder.NewProductBuilder().WithCountedStock(1))
	unlimited := s.save(builder.NewProductBuilder().WithID("link").WithUnlimitedStock())

	_, err := s.products.Allocate(s.ctx, counted.TenantID(), counted.ID(), 2)
	s.ErrorIs(err, product.ErrInsufficientStock)

	_, err = s.products.Allocate(s.ctx, counted.TenantID(), "missing", 1)
	s.True(infra.IsKind(err, infra.KindNotFound))

	alloc, err := s.products.Allocate(s.ctx, unlimited.TenantID(), unlimited.ID(), 100)
	s.Require().NoError(err)
	s.True(alloc.Unlimited)

	_, err = s.products.AddCredentials(s.ctx, counted.TenantID(), counted.ID(), []product.Credential{{Login: "x"}})
	s.ErrorIs(err, product.ErrStockKindMismatch)
}

func (s *RepositoryTestSuite) TestCatalog_RoundTrip() {
	c, err := catalog.NewCatalog("panel-1", "guild-1", "Main panel", "role-7")
	s.Require().NoError(err)
	s.Require().NoError(s.catalogs.Save(s.ctx, c))

	got, err := s.catalogs.FindByID(s.ctx, "guild-1", "panel-1")
	s.Require().NoError(err)
	s.Equal("Main panel", got.Title())
	s.Equal("role-7", got.RewardRoleID())

	_, err = s.catalogs.FindByID(s.ctx, "guild-1", "missing")
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *RepositoryTestSuite) TestLedger_Lifecycle() {
	_, err := s.ledger.Entry(s.ctx, "guild-1", "L1")
	s.True(infra.IsKind(err, infra.KindNotFound))

	s.Require().NoError(s.ledger.Begin(s.ctx, "guild-1", "L1", t0, t0.Add(time.Minute)))

	err = s.ledger.Begin(s.ctx, "guild-1", "L1", t0.Add(time.Second), t0.Add(time.Minute))
	s.True(errs.Is(err, errs.ErrClaimInProgress))

	s.Require().NoError(s.ledger.MarkConsumed(s.ctx, "guild-1", "L1", t0))
	s.Require().NoError(s.ledger.MarkConsumed(s.ctx, "guild-1", "L1", t0))
	s.Require().NoError(s.ledger.Release(s.ctx, "guild-1", "L1"))

	err = s.ledger.Begin(s.ctx, "guild-1", "L1", t0.Add(time.Hour), t0.Add(2*time.Hour))
	s.True(errs.Is(err, errs.ErrAlreadyConsumed))

	entry, err := s.ledger.Entry(s.ctx, "guild-1", "L1")
	s.Require().NoError(err)
	s.Equal(shared.LedgerConsumed, entry.Status)

	consumed, err := s.ledger.IsConsumed(s.ctx, "guild-2", "L1")
	s.Require().NoError(err)
	s.False(consumed)
}

func (s *RepositoryTestSuite) TestLedger_ReleaseAndExpiredLease() {
	s.Require().NoError(s.ledger.Begin(s.ctx, "guild-1", "L1", t0, t0.Add(time.Minute)))
	s.Require().NoError(s.ledger.Release(s.ctx, "guild-1", "L1"))
	s.Require().NoError(s.ledger.Begin(s.ctx, "guild-1", "L1", t0, t0.Add(time.Minute)))

	s.NoError(s.ledger.Begin(s.ctx, "guild-1", "L1", t0.Add(2*time.Minute), t0.Add(3*time.Minute)),
		"expired lease can be taken over")
}

func (s *RepositoryTestSuite) TestLedger_ConcurrentBeginSingleWinner() {
	var winners atomic.Int64
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ledger.Begin(s.ctx, "guild-1", "L-race", t0, t0.Add(time.Minute)); err == nil {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	s.EqualValues(1, winners.Load())
}

func (s *RepositoryTestSuite) TestSession_PutOverwrites() {
	_, err := s.sessions.Get(s.ctx, "guild-1")
	s.True(infra.IsKind(err, infra.KindNotFound))

	s.Require().NoError(s.sessions.Put(s.ctx, session.Sealed{TenantID: "guild-1", SealedAccess: "a1", SealedRefresh: "r1", UpdatedAt: t0}))
	s.Require().NoError(s.sessions.Put(s.ctx, session.Sealed{TenantID: "guild-1", SealedAccess: "a2", UpdatedAt: t0}))

	got, err := s.sessions.Get(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal("a2", got.SealedAccess)
	s.Empty(got.SealedRefresh)
}

func (s *RepositoryTestSuite) TestPurchase_ListByStatus() {
	for i := range 3 {
		s.Require().NoError(s.purchases.Append(s.ctx, purchase.Record{
			ID: uuid.New(), TenantID: "guild-1", ProductID: "item-1", BuyerID: "buyer-1",
			LinkID: fmt.Sprintf("L%d", i), Link: "https://pay.example.jp/L", Quantity: 1, Total: 500, Amount: 500,
			Status: purchase.RecordNeedsReconciliation, Outcome: purchase.OutcomeDispatchFailed,
			CreatedAt: t0.Add(time.Duration(i) * time.Minute),
		}))
	}
	s.Require().NoError(s.purchases.Append(s.ctx, purchase.Record{
		ID: uuid.New(), TenantID: "guild-1", ProductID: "item-1", BuyerID: "buyer-1",
		LinkID: "L9", Link: "https://pay.example.jp/L9", Quantity: 1, Total: 500, Amount: 500,
		Status: purchase.RecordCompleted, Outcome: purchase.OutcomeSuccess, CreatedAt: t0,
	}))

	got, err := s.purchases.ListByStatus(s.ctx, "guild-1", purchase.RecordNeedsReconciliation, nil, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("L2", got[0].LinkID)
	s.Equal("L1", got[1].LinkID)

	rest, err := s.purchases.ListByStatus(s.ctx, "guild-1", purchase.RecordNeedsReconciliation,
		&shared.RecordCursor{CreatedAt: got[1].CreatedAt, ID: got[1].ID}, 10)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal("L0", rest[0].LinkID)

	done, err := s.purchases.ListByStatus(s.ctx, "guild-1", purchase.RecordCompleted, nil, 10)
	s.Require().NoError(err)
	s.Len(done, 1)
}
