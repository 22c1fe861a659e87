//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"paylink-vending/internal/domain/catalog"
	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/memstore"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/commands"
	"paylink-vending/internal/usecase/shared"
	"paylink-vending/tests/common/builder"
	commandsmock "paylink-vending/tests/mock/commands"
	sharedmock "paylink-vending/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	tenant    = "guild-1"
	buyer     = "buyer-42"
	productID = "item-1"
	linkURL   = "https://pay.example.jp/AbCdEf123"
	linkID    = "AbCdEf123"
)

var testSession = shared.ProviderSession{AccessToken: "access-token"}

type PurchaseCommandsTestSuite struct {
	suite.Suite
	ctx context.Context

	mockCtrl   *gomock.Controller
	provider   *sharedmock.MockPaymentProvider
	dispatcher *sharedmock.MockDispatcher
	sessions   *commandsmock.MockSessionCommands

	clock     *clock.MockClock
	products  *memstore.ProductRepository
	catalogs  *memstore.CatalogRepository
	ledger    *memstore.LedgerRepository
	purchases *memstore.PurchaseRepository

	commands commands.PurchaseCommands
}

func (s *PurchaseCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.provider = sharedmock.NewMockPaymentProvider(s.mockCtrl)
	s.dispatcher = sharedmock.NewMockDispatcher(s.mockCtrl)
	s.sessions = commandsmock.NewMockSessionCommands(s.mockCtrl)

	s.clock = clock.NewMockClock(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))
	s.products = memstore.NewProductRepository(s.clock)
	s.catalogs = memstore.NewCatalogRepository()
	s.ledger = memstore.NewLedgerRepository()
	s.purchases = memstore.NewPurchaseRepository()

	c, err := catalog.NewCatalog("panel-1", tenant, "Main panel", "role-vip")
	s.Require().NoError(err)
	s.Require().NoError(s.catalogs.Save(s.ctx, c))

	s.commands = commands.NewPurchaseCommands(
		s.products, s.catalogs, s.ledger, s.purchases,
		s.sessions, s.provider, s.dispatcher,
		s.clock,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		commands.PurchaseSettings{
			ProviderTimeout: time.Second,
			DispatchTimeout: time.Second,
			ClaimLease:      time.Minute,
		},
	)
}

func (s *PurchaseCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPurchaseCommandsSuite(t *testing.T) {
	suite.Run(t, new(PurchaseCommandsTestSuite))
}

func (s *PurchaseCommandsTestSuite) seed(b *builder.ProductBuilder) *product.Product {
	p := b.MustBuildDomain(s.T())
	s.Require().NoError(s.products.Save(s.ctx, p))
	return p
}

func (s *PurchaseCommandsTestSuite) expectSession() {
	s.sessions.EXPECT().Acquire(gomock.Any(), tenant).Return(testSession, nil)
}

func (s *PurchaseCommandsTestSuite) expectCheckLink(amount int64, status string) {
	s.provider.EXPECT().CheckLink(gomock.Any(), testSession, linkURL).Return(shared.LinkInfo{
		SenderName: "Taro",
		SenderID:   "ext-1",
		IconURL:    "https://img.example/taro.png",
		Amount:     amount,
		Status:     status,
	}, nil)
}

func (s *PurchaseCommandsTestSuite) expectAfterDispatch() {
	s.dispatcher.EXPECT().GrantRole(gomock.Any(), tenant, buyer, "role-vip").Return(nil)
	s.dispatcher.EXPECT().PostPurchaseLog(gomock.Any(), gomock.Any()).Return(nil)
}

func (s *PurchaseCommandsTestSuite) stockCount() int {
	p, err := s.products.FindByID(s.ctx, tenant, productID)
	s.Require().NoError(err)
	return p.Stock().Count()
}

func (s *PurchaseCommandsTestSuite) consumed() bool {
	ok, err := s.ledger.IsConsumed(s.ctx, tenant, linkID)
	s.Require().NoError(err)
	return ok
}

func (s *PurchaseCommandsTestSuite) records(status purchase.RecordStatus) []purchase.Record {
	recs, err := s.purchases.ListByStatus(s.ctx, tenant, status, nil, 0)
	s.Require().NoError(err)
	return recs
}

func (s *PurchaseCommandsTestSuite) TestPurchase_Success() {
	s.seed(builder.NewProductBuilder().WithPrice(500).WithCountedStock(5))
	in := builder.NewIntentBuilder().WithQuantity(2).BuildDomain()

	s.expectSession()
	s.expectCheckLink(1000, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)
	var delivered shared.Delivery
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d shared.Delivery) error {
			delivered = d
			return nil
		})
	var logged shared.PurchaseLog
	s.dispatcher.EXPECT().GrantRole(gomock.Any(), tenant, buyer, "role-vip").Return(nil)
	s.dispatcher.EXPECT().PostPurchaseLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l shared.PurchaseLog) error {
			logged = l
			return nil
		})

	var progress []purchase.State
	res := s.commands.Purchase(s.ctx, in, func(state purchase.State, _ string) {
		progress = append(progress, state)
	})

	s.Require().NoError(res.Err)
	s.Equal(purchase.OutcomeSuccess, res.Outcome)
	s.Equal(purchase.StateLogged, res.State)
	s.False(res.NeedsReconciliation)

	s.Equal(3, s.stockCount())
	s.True(s.consumed())
	s.Equal(2, delivered.Quantity)
	s.Equal("Premium Pack", delivered.ProductName)
	s.Equal(int64(1000), logged.Total)
	s.Equal("Taro", logged.SenderName)

	s.Equal([]purchase.State{
		purchase.StateLinkSubmitted,
		purchase.StateSessionReady,
		purchase.StateIdempotencyChecked,
		purchase.StateFundsClaimed,
		purchase.StateStockAllocated,
	}, progress)

	want := purchase.Payload{
		Title:       "Purchase complete",
		Description: "Thank you! Your order has been sent to your DMs.",
		IconURL:     "https://img.example/taro.png",
		Fields: []purchase.Field{
			{Name: "Product", Value: "Premium Pack", Inline: true},
			{Name: "Quantity", Value: "2", Inline: true},
			{Name: "Total", Value: "1000 JPY", Inline: true},
			{Name: "Paid by", Value: "Taro"},
		},
	}
	if diff := cmp.Diff(want, res.Payload); diff != "" {
		s.Failf("payload mismatch", "(-want +got):\n%s", diff)
	}

	recs := s.records(purchase.RecordCompleted)
	s.Require().Len(recs, 1)
	s.Equal(res.RecordID, recs[0].ID)
	if diff := cmp.Diff(purchase.Record{
		TenantID:   tenant,
		ProductID:  productID,
		BuyerID:    buyer,
		SenderName: "Taro",
		SenderID:   "ext-1",
		LinkID:     linkID,
		Link:       linkURL,
		Quantity:   2,
		Total:      1000,
		Amount:     1000,
		Status:     purchase.RecordCompleted,
		Outcome:    purchase.OutcomeSuccess,
		CreatedAt:  s.clock.Now(),
	}, recs[0], cmpopts.IgnoreFields(purchase.Record{}, "ID")); diff != "" {
		s.Failf("record mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *PurchaseCommandsTestSuite) TestPurchase_ReplayAfterSuccess() {
	s.seed(builder.NewProductBuilder().WithPrice(500).WithCountedStock(5))
	in := builder.NewIntentBuilder().WithQuantity(2).BuildDomain()

	s.sessions.EXPECT().Acquire(gomock.Any(), tenant).Return(testSession, nil).Times(2)
	s.provider.EXPECT().CheckLink(gomock.Any(), testSession, linkURL).
		Return(shared.LinkInfo{Amount: 1000, Status: shared.LinkStatusPending}, nil).Times(2)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil).Times(1)
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.expectAfterDispatch()

	first := s.commands.Purchase(s.ctx, in, nil)
	s.Require().Equal(purchase.OutcomeSuccess, first.Outcome)

	second := s.commands.Purchase(s.ctx, in, nil)
	s.Equal(purchase.OutcomeAlreadyConsumed, second.Outcome)
	s.True(errs.Is(second.Err, errs.ErrAlreadyConsumed))
	s.Equal(3, s.stockCount())
	s.Len(s.records(purchase.RecordCompleted), 1)
}

func (s *PurchaseCommandsTestSuite) TestPurchase_InsufficientFunds() {
	s.seed(builder.NewProductBuilder().WithPrice(500).WithCountedStock(5))
	in := builder.NewIntentBuilder().WithQuantity(2).BuildDomain()

	s.expectSession()
	s.expectCheckLink(999, shared.LinkStatusPending)

	res := s.commands.Purchase(s.ctx, in, nil)

	s.Equal(purchase.OutcomeInsufficientFunds, res.Outcome)
	s.Equal(purchase.StateLinkVerified, res.State)
	s.True(errs.Is(res.Err, errs.ErrInsufficientFunds))
	s.Equal(5, s.stockCount())
	_, err := s.ledger.Entry(s.ctx, tenant, linkID)
	s.True(infra.IsKind(err, infra.KindNotFound), "ledger must stay untouched")
	s.Equal([]purchase.Field{
		{Name: "Required", Value: "1000 JPY", Inline: true},
		{Name: "Received", Value: "999 JPY", Inline: true},
	}, res.Payload.Fields)
}

func (s *PurchaseCommandsTestSuite) TestPurchase_OverpaymentAccepted() {
	s.seed(builder.NewProductBuilder().WithPrice(500).WithCountedStock(5))
	in := builder.NewIntentBuilder().BuildDomain()

	s.expectSession()
	s.expectCheckLink(10000, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).Return(nil)
	s.expectAfterDispatch()

	res := s.commands.Purchase(s.ctx, in, nil)

	s.Equal(purchase.OutcomeSuccess, res.Outcome)
	s.Equal(4, s.stockCount())
}

func (s *PurchaseCommandsTestSuite) TestPurchase_ProviderReportsTerminal() {
	for _, status := range []string{shared.LinkStatusCompleted, shared.LinkStatusSuccess} {
		s.Run(status, func() {
			s.SetupTest()
			s.seed(builder.NewProductBuilder())
			s.expectSession()
			s.expectCheckLink(500, status)

			res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

			s.Equal(purchase.OutcomeAlreadyConsumed, res.Outcome)
			s.True(s.consumed(), "terminal provider status converges the ledger")
			s.Equal(5, s.stockCount())
		})
	}
}

func (s *PurchaseCommandsTestSuite) TestPurchase_ClaimInProgress() {
	s.seed(builder.NewProductBuilder())
	now := s.clock.Now()
	s.Require().NoError(s.ledger.Begin(s.ctx, tenant, linkID, now, now.Add(time.Minute)))

	s.expectSession()
	s.expectCheckLink(500, shared.LinkStatusPending)

	res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

	s.Equal(purchase.OutcomeClaimInProgress, res.Outcome)
	s.True(errs.Is(res.Err, errs.ErrClaimInProgress))
}

func (s *PurchaseCommandsTestSuite) TestPurchase_ExpiredLeaseIsTakenOver() {
	s.seed(builder.NewProductBuilder())
	now := s.clock.Now()
	s.Require().NoError(s.ledger.Begin(s.ctx, tenant, linkID, now.Add(-time.Hour), now.Add(-time.Minute)))

	s.expectSession()
	s.expectCheckLink(500, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).Return(nil)
	s.expectAfterDispatch()

	res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

	s.Equal(purchase.OutcomeSuccess, res.Outcome)
}

func (s *PurchaseCommandsTestSuite) TestPurchase_ClaimFailures() {
	s.Run("受け取り失敗はリースを解放し在庫を変えない", func() {
		s.SetupTest()
		s.seed(builder.NewProductBuilder())
		s.expectSession()
		s.expectCheckLink(500, shared.LinkStatusPending)
		s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "pw").
			Return(errs.Mark(errs.New("wrong passcode"), errs.ErrClaimFailed))

		in := builder.NewIntentBuilder().WithPassword("pw").BuildDomain()
		res := s.commands.Purchase(s.ctx, in, nil)

		s.Equal(purchase.OutcomeClaimFailed, res.Outcome)
		s.Equal(purchase.StateIdempotencyChecked, res.State)
		s.False(res.NeedsReconciliation)
		s.Equal(5, s.stockCount())
		_, err := s.ledger.Entry(s.ctx, tenant, linkID)
		s.True(infra.IsKind(err, infra.KindNotFound), "lease must be released")
		s.Empty(s.records(purchase.RecordNeedsReconciliation))
	})

	s.Run("受け取り済みリンクは消費済みにする", func() {
		s.SetupTest()
		s.seed(builder.NewProductBuilder())
		s.expectSession()
		s.expectCheckLink(500, shared.LinkStatusPending)
		s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").
			Return(errs.Mark(errs.New("409"), errs.ErrLinkAlreadyUsed))

		res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

		s.Equal(purchase.OutcomeAlreadyConsumed, res.Outcome)
		s.True(s.consumed())
		s.Equal(5, s.stockCount())
	})

	s.Run("受け取り中のセッション失効", func() {
		s.SetupTest()
		s.seed(builder.NewProductBuilder())
		s.expectSession()
		s.expectCheckLink(500, shared.LinkStatusPending)
		s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").
			Return(errs.Mark(errs.New("401"), errs.ErrSessionExpired))

		res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

		s.Equal(purchase.OutcomeSessionExpired, res.Outcome)
		s.False(s.consumed())
	})
}

func (s *PurchaseCommandsTestSuite) TestPurchase_InsufficientStockAfterClaim() {
	s.seed(builder.NewProductBuilder().WithPrice(500).WithCountedStock(1))
	in := builder.NewIntentBuilder().WithQuantity(2).BuildDomain()

	s.expectSession()
	s.expectCheckLink(1000, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)

	res := s.commands.Purchase(s.ctx, in, nil)

	s.Equal(purchase.OutcomeInsufficientStock, res.Outcome)
	s.Equal(purchase.StateFundsClaimed, res.State)
	s.True(errs.Is(res.Err, errs.ErrInsufficientStock))
	s.True(res.NeedsReconciliation)
	s.Equal(1, s.stockCount())
	s.True(s.consumed(), "claimed link must never be accepted again")

	recs := s.records(purchase.RecordNeedsReconciliation)
	s.Require().Len(recs, 1)
	s.Equal(purchase.OutcomeInsufficientStock, recs[0].Outcome)
	s.Equal(int64(1000), recs[0].Amount)
	s.Equal(res.RecordID, recs[0].ID)
	s.Contains(res.Payload.Fields, purchase.Field{Name: "Reference", Value: res.RecordID.String()})
}

func (s *PurchaseCommandsTestSuite) TestPurchase_DispatchFailed() {
	s.seed(builder.NewProductBuilder().WithCountedStock(5))

	s.expectSession()
	s.expectCheckLink(500, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).Return(errs.New("dm closed"))

	res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

	s.Equal(purchase.OutcomeDispatchFailed, res.Outcome)
	s.Equal(purchase.StateStockAllocated, res.State)
	s.True(errs.Is(res.Err, errs.ErrDispatchFailed))
	s.True(res.NeedsReconciliation)
	s.Equal(4, s.stockCount(), "inventory is not reverted")
	s.True(s.consumed())
	s.Len(s.records(purchase.RecordNeedsReconciliation), 1)
}

func (s *PurchaseCommandsTestSuite) TestPurchase_PoolDeliversFIFO() {
	pool := []product.Credential{
		{Login: "a@example.com", Secret: "pa"},
		{Login: "b@example.com", Secret: "pb"},
		{Login: "c@example.com", Secret: "pc"},
	}
	s.seed(builder.NewProductBuilder().WithPool(pool...))

	s.expectSession()
	s.expectCheckLink(500, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)
	var delivered shared.Delivery
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d shared.Delivery) error {
			delivered = d
			return nil
		})
	s.expectAfterDispatch()

	res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

	s.Require().Equal(purchase.OutcomeSuccess, res.Outcome)
	s.Equal(pool[:1], delivered.Credentials)
	p, err := s.products.FindByID(s.ctx, tenant, productID)
	s.Require().NoError(err)
	s.Equal(pool[1:], p.Stock().Credentials())
}

func (s *PurchaseCommandsTestSuite) TestPurchase_CancelAfterClaimRunsToCompletion() {
	s.seed(builder.NewProductBuilder())
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.sessions.EXPECT().Acquire(gomock.Any(), tenant).Return(testSession, nil)
	s.provider.EXPECT().CheckLink(gomock.Any(), testSession, linkURL).
		Return(shared.LinkInfo{Amount: 500, Status: shared.LinkStatusPending}, nil)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").
		DoAndReturn(func(context.Context, shared.ProviderSession, string, string) error {
			cancel()
			return nil
		})
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ shared.Delivery) error {
			return ctx.Err()
		})
	s.expectAfterDispatch()

	res := s.commands.Purchase(ctx, builder.NewIntentBuilder().BuildDomain(), nil)

	s.Equal(purchase.OutcomeSuccess, res.Outcome)
	s.Equal(4, s.stockCount())
}

func (s *PurchaseCommandsTestSuite) TestPurchase_BestEffortSteps() {
	s.seed(builder.NewProductBuilder())
	s.expectSession()
	s.expectCheckLink(500, shared.LinkStatusPending)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").Return(nil)
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).Return(nil)
	s.dispatcher.EXPECT().GrantRole(gomock.Any(), tenant, buyer, "role-vip").Return(errs.New("missing permission"))
	s.dispatcher.EXPECT().PostPurchaseLog(gomock.Any(), gomock.Any()).Return(errs.New("channel deleted"))

	res := s.commands.Purchase(s.ctx, builder.NewIntentBuilder().BuildDomain(), nil)

	s.Equal(purchase.OutcomeSuccess, res.Outcome)
	s.True(s.consumed())
}

func (s *PurchaseCommandsTestSuite) TestPurchase_SameLinkConcurrently() {
	s.seed(builder.NewProductBuilder())
	entered := make(chan struct{})
	release := make(chan struct{})

	s.sessions.EXPECT().Acquire(gomock.Any(), tenant).Return(testSession, nil).Times(2)
	s.provider.EXPECT().CheckLink(gomock.Any(), testSession, linkURL).
		Return(shared.LinkInfo{Amount: 500, Status: shared.LinkStatusPending}, nil).Times(2)
	s.provider.EXPECT().Claim(gomock.Any(), testSession, linkURL, "").
		DoAndReturn(func(context.Context, shared.ProviderSession, string, string) error {
			close(entered)
			<-release
			return nil
		}).Times(1)
	s.dispatcher.EXPECT().DeliverGoods(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.expectAfterDispatch()

	in := builder.NewIntentBuilder().BuildDomain()
	done := make(chan *commands.PurchaseResult)
	go func() {
		done <- s.commands.Purchase(s.ctx, in, nil)
	}()

	<-entered
	second := s.commands.Purchase(s.ctx, in, nil)
	close(release)
	first := <-done

	s.Equal(purchase.OutcomeClaimInProgress, second.Outcome)
	s.Equal(purchase.OutcomeSuccess, first.Outcome)
	s.Equal(4, s.stockCount())
}

func (s *PurchaseCommandsTestSuite) TestPurchase_EarlyFailures() {
	cases := []struct {
		name    string
		intent  purchase.Intent
		setup   func()
		outcome purchase.Outcome
		errIs   error
	}{
		{
			name:    "数量ゼロ",
			intent:  builder.NewIntentBuilder().WithQuantity(0).BuildDomain(),
			outcome: purchase.OutcomeInvalidIntent,
			errIs:   errs.ErrInvalidIntent,
		},
		{
			name:    "リンクなし",
			intent:  builder.NewIntentBuilder().WithLink("  ").BuildDomain(),
			outcome: purchase.OutcomeInvalidIntent,
			errIs:   errs.ErrInvalidIntent,
		},
		{
			name:    "存在しない商品",
			intent:  builder.NewIntentBuilder().WithProduct("missing").BuildDomain(),
			outcome: purchase.OutcomeProductNotFound,
			errIs:   errs.ErrProductNotFound,
		},
		{
			name:   "セッション失効",
			intent: builder.NewIntentBuilder().BuildDomain(),
			setup: func() {
				s.sessions.EXPECT().Acquire(gomock.Any(), tenant).
					Return(shared.ProviderSession{}, errs.Mark(errs.New("refresh rejected"), errs.ErrSessionExpired))
			},
			outcome: purchase.OutcomeSessionExpired,
			errIs:   errs.ErrSessionExpired,
		},
		{
			name:   "決済サービス停止",
			intent: builder.NewIntentBuilder().BuildDomain(),
			setup: func() {
				s.sessions.EXPECT().Acquire(gomock.Any(), tenant).
					Return(shared.ProviderSession{}, errs.Mark(errs.New("503"), errs.ErrProviderUnavailable))
			},
			outcome: purchase.OutcomeProviderDown,
			errIs:   errs.ErrProviderUnavailable,
		},
		{
			name:   "パスフレーズ未設定",
			intent: builder.NewIntentBuilder().BuildDomain(),
			setup: func() {
				s.sessions.EXPECT().Acquire(gomock.Any(), tenant).
					Return(shared.ProviderSession{}, errs.Mark(errs.New("no passphrase"), errs.ErrConfigMissing))
			},
			outcome: purchase.OutcomeConfigMissing,
			errIs:   errs.ErrConfigMissing,
		},
		{
			name:   "復号失敗",
			intent: builder.NewIntentBuilder().BuildDomain(),
			setup: func() {
				s.sessions.EXPECT().Acquire(gomock.Any(), tenant).
					Return(shared.ProviderSession{}, errs.Mark(errs.New("bad tag"), errs.ErrCrypto))
			},
			outcome: purchase.OutcomeCryptoError,
			errIs:   errs.ErrCrypto,
		},
		{
			name:   "リンク確認失敗",
			intent: builder.NewIntentBuilder().BuildDomain(),
			setup: func() {
				s.expectSession()
				s.provider.EXPECT().CheckLink(gomock.Any(), testSession, linkURL).
					Return(shared.LinkInfo{}, errs.Mark(errs.New("404"), errs.ErrLinkCheckFailed))
			},
			outcome: purchase.OutcomeLinkCheckFailed,
			errIs:   errs.ErrLinkCheckFailed,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.seed(builder.NewProductBuilder())
			if tc.setup != nil {
				tc.setup()
			}

			res := s.commands.Purchase(s.ctx, tc.intent, nil)

			s.Equal(tc.outcome, res.Outcome)
			s.True(errs.Is(res.Err, tc.errIs), "got %v", res.Err)
			s.False(res.NeedsReconciliation)
			s.NotEmpty(res.Payload.Title)
			s.Equal(5, s.stockCount())
			s.False(s.consumed())
		})
	}
}
