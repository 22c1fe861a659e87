//go:build e2e

package purchase_test

import (
	"net/http"
	"testing"

	"paylink-vending/internal/domain/operator"
	"paylink-vending/internal/domain/purchase"
	reqdto "paylink-vending/internal/handler/dto/request"
	resdto "paylink-vending/internal/handler/dto/response"
	"paylink-vending/tests/common/builder"
	"paylink-vending/tests/common/dbtest"
	"paylink-vending/tests/common/httptest"
	"paylink-vending/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tenantURL    = "/api/tenants/guild-1"
	purchasesURL = tenantURL + "/purchases"
	sessionURL   = tenantURL + "/session"
	linkID       = "AbCdEf123"
)

type PurchaseSuite struct {
	e2e.SharedSuite
	admin   string
	gateway string
}

func TestPurchaseSuite(t *testing.T) {
	suite.Run(t, new(PurchaseSuite))
}

func (s *PurchaseSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.admin = s.JWT.GenerateToken(s.T(), operator.RoleAdmin)
	s.gateway = s.JWT.GenerateToken(s.T(), operator.RoleGateway)
}

// stockShop registers the provider session, a catalog with a reward role and one product.
func (s *PurchaseSuite) stockShop(product *builder.ProductBuilder) {
	t := s.T()
	access, refresh := s.Provider.Tokens()

	w := httptest.PerformRequest(t, s.Router, http.MethodPut, sessionURL,
		reqdto.RegisterSessionRequest{AccessToken: access, RefreshToken: refresh}, s.admin)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = httptest.PerformRequest(t, s.Router, http.MethodPut, tenantURL+"/catalogs/panel-1",
		reqdto.UpsertCatalogRequest{Title: "Main panel", RewardRoleID: "role-vip"}, s.admin)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = httptest.PerformRequest(t, s.Router, http.MethodPut, tenantURL+"/products/item-1",
		product.BuildUpsertDTO(t), s.admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *PurchaseSuite) buy(intent *builder.IntentBuilder) resdto.PurchaseResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, purchasesURL, intent.BuildDTO(), s.gateway)
	var resp resdto.PurchaseResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
	return resp
}

func (s *PurchaseSuite) product() resdto.ProductResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, tenantURL+"/products/item-1", nil, s.admin)
	var resp resdto.ProductResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
	return resp
}

func (s *PurchaseSuite) link() resdto.LinkStatusResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, tenantURL+"/links/"+linkID, nil, s.admin)
	var resp resdto.LinkStatusResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
	return resp
}

func (s *PurchaseSuite) TestPurchase() {
	s.Run("正常系: 支払い受領から配送まで完了する", func() {
		s.stockShop(builder.NewProductBuilder().WithCountedStock(3))
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 1000, Passcode: "1234", Sender: "Taro"})

		resp := s.buy(builder.NewIntentBuilder().WithQuantity(2).WithPassword("1234"))

		s.Equal(string(purchase.OutcomeSuccess), resp.Outcome)
		s.Equal(string(purchase.StateLogged), resp.State)
		s.NotEmpty(resp.RecordID)
		s.False(resp.NeedsReconciliation)
		s.NotEmpty(resp.Progress)

		s.Equal(1, s.Provider.Claims())
		s.Equal(1, s.product().StockCount)

		want := resdto.LinkStatusResponse{LinkID: linkID, Consumed: true, Status: "consumed"}
		if diff := cmp.Diff(want, s.link(), cmpopts.IgnoreFields(resdto.LinkStatusResponse{}, "UpdatedAt")); diff != "" {
			s.T().Errorf("link status mismatch (-want +got):\n%s", diff)
		}

		deliveries := s.Gateway.Deliveries()
		s.Require().Len(deliveries, 1)
		s.Equal("buyer-42", deliveries[0]["buyer_id"])
		s.EqualValues(2, deliveries[0]["quantity"])
		s.Len(s.Gateway.Roles(), 1)
		s.Len(s.Gateway.Logs(), 1)
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "purchases", "status = 'completed'"))
	})

	s.Run("同じリンクの再利用は二重請求しない", func() {
		s.stockShop(builder.NewProductBuilder().WithCountedStock(3))
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 500})

		first := s.buy(builder.NewIntentBuilder())
		second := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeSuccess), first.Outcome)
		s.Equal(string(purchase.OutcomeAlreadyConsumed), second.Outcome)
		s.Equal(1, s.Provider.Claims())
		s.Equal(2, s.product().StockCount)
		s.Len(s.Gateway.Deliveries(), 1)
	})

	s.Run("金額不足は受領しない", func() {
		s.stockShop(builder.NewProductBuilder().WithCountedStock(3))
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 300})

		resp := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeInsufficientFunds), resp.Outcome)
		s.Equal(0, s.Provider.Claims())
		s.Equal(3, s.product().StockCount)
		s.False(s.link().Consumed)
	})

	s.Run("アクセストークン失効時はリフレッシュして続行する", func() {
		s.stockShop(builder.NewProductBuilder().WithCountedStock(1))
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 500})
		s.Provider.RotateAccess()

		resp := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeSuccess), resp.Outcome)
		s.Equal(1, s.Provider.Claims())
	})

	s.Run("配送失敗は照合待ちとして記録される", func() {
		s.stockShop(builder.NewProductBuilder().WithCountedStock(1))
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 500})
		s.Gateway.FailDeliveries()

		resp := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeDispatchFailed), resp.Outcome)
		s.True(resp.NeedsReconciliation)
		s.Equal(1, s.Provider.Claims())

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, tenantURL+"/reconciliations", nil, s.admin)
		var page resdto.PurchaseRecordPageResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &page)
		s.Require().Len(page.Records, 1)
		s.Equal(linkID, page.Records[0].LinkID)
		s.Equal(string(purchase.OutcomeDispatchFailed), page.Records[0].Outcome)
		s.Empty(page.NextCursor)
	})

	s.Run("受領後の在庫不足は照合待ちとして記録される", func() {
		s.stockShop(builder.NewProductBuilder().WithCountedStock(1))
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 1000})

		resp := s.buy(builder.NewIntentBuilder().WithQuantity(2))

		s.Equal(string(purchase.OutcomeInsufficientStock), resp.Outcome)
		s.True(resp.NeedsReconciliation)
		s.Equal(1, s.Provider.Claims())
		s.Equal(1, s.product().StockCount)
		s.True(s.link().Consumed)
		s.Empty(s.Gateway.Deliveries())
	})

	s.Run("商品未登録", func() {
		resp := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeProductNotFound), resp.Outcome)
		s.Equal(0, s.Provider.Claims())
	})

	s.Run("決済セッション未登録", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, tenantURL+"/products/item-1",
			builder.NewProductBuilder().WithCatalog("").BuildUpsertDTO(s.T()), s.admin)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 500})

		resp := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeConfigMissing), resp.Outcome)
		s.Equal(0, s.Provider.Claims())
	})
}

func (s *PurchaseSuite) TestCredentialPool() {
	s.Run("プール商品は認証情報を先入れ先出しで配送する", func() {
		s.stockShop(builder.NewProductBuilder().WithPool())
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, tenantURL+"/products/item-1/credentials",
			reqdto.RestockRequest{Credentials: []reqdto.CredentialRequest{
				{Login: "first@example.com", Secret: "p1"},
				{Login: "second@example.com", Secret: "p2"},
			}}, s.admin)
		var restock resdto.RestockResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &restock)
		s.Equal(2, restock.PoolSize)

		s.Provider.AddLink(linkID, e2e.FakeLink{Amount: 500})
		resp := s.buy(builder.NewIntentBuilder())

		s.Equal(string(purchase.OutcomeSuccess), resp.Outcome)
		deliveries := s.Gateway.Deliveries()
		s.Require().Len(deliveries, 1)
		creds, ok := deliveries[0]["credentials"].([]any)
		s.Require().True(ok)
		s.Require().Len(creds, 1)
		s.Equal("first@example.com", creds[0].(map[string]any)["login"])
		s.Equal(1, s.product().StockCount)
	})
}
