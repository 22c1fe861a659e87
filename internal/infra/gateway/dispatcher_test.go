//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/infra/gateway"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliverGoods(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deliveries", r.URL.Path)
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := gateway.NewDispatcher(srv.URL, "gw-token", time.Second)
	err := d.DeliverGoods(context.Background(), shared.Delivery{
		TenantID:    "guild-1",
		BuyerID:     "buyer-1",
		ProductID:   "acct",
		ProductName: "Account",
		Quantity:    1,
		Credentials: []product.Credential{{Login: "a@example.com", Secret: "pw"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer gw-token", auth)
	assert.Equal(t, "buyer-1", got["buyer_id"])
	creds, ok := got["credentials"].([]any)
	require.True(t, ok)
	assert.Len(t, creds, 1)
}

func TestDispatcher_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	d := gateway.NewDispatcher(srv.URL, "gw-token", time.Second)

	t.Run("配送失敗は ErrDispatchFailed", func(t *testing.T) {
		err := d.DeliverGoods(context.Background(), shared.Delivery{TenantID: "g", BuyerID: "b"})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDispatchFailed))
	})

	t.Run("ロール付与失敗は ErrDispatchFailed ではない", func(t *testing.T) {
		err := d.GrantRole(context.Background(), "g", "b", "r")
		require.Error(t, err)
		assert.False(t, errs.Is(err, errs.ErrDispatchFailed))
	})

	t.Run("ログ投稿失敗", func(t *testing.T) {
		err := d.PostPurchaseLog(context.Background(), shared.PurchaseLog{TenantID: "g"})
		assert.Error(t, err)
	})
}
