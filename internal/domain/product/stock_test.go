//go:build unit

package product_test

import (
	"testing"

	"paylink-vending/internal/domain/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCounted(t *testing.T, n int) product.Stock {
	t.Helper()
	s, err := product.Counted(n)
	require.NoError(t, err)
	return s
}

func mustPool(t *testing.T, logins ...string) product.Stock {
	t.Helper()
	creds := make([]product.Credential, len(logins))
	for i, l := range logins {
		creds[i] = product.Credential{Login: l, Secret: "pw-" + l}
	}
	s, err := product.Pool(creds)
	require.NoError(t, err)
	return s
}

func TestStock_Take(t *testing.T) {
	tests := []struct {
		name          string
		stock         product.Stock
		qty           int
		errIs         error
		wantRemaining int
		wantLogins    []string
	}{
		{name: "無制限は常に成功", stock: product.Unlimited(), qty: 1000},
		{name: "カウント在庫を減算", stock: mustCounted(t, 5), qty: 2, wantRemaining: 3},
		{name: "カウント在庫ちょうど", stock: mustCounted(t, 2), qty: 2, wantRemaining: 0},
		{name: "カウント在庫不足", stock: mustCounted(t, 1), qty: 2, errIs: product.ErrInsufficientStock},
		{name: "プールは先頭から", stock: mustPool(t, "A", "B", "C"), qty: 1, wantRemaining: 2, wantLogins: []string{"A"}},
		{name: "プールを複数取得", stock: mustPool(t, "A", "B", "C"), qty: 2, wantRemaining: 1, wantLogins: []string{"A", "B"}},
		{name: "プール不足", stock: mustPool(t, "A"), qty: 2, errIs: product.ErrInsufficientStock},
		{name: "数量ゼロ", stock: mustCounted(t, 5), qty: 0, errIs: product.ErrInvalidQuantity},
		{name: "数量負数", stock: product.Unlimited(), qty: -1, errIs: product.ErrInvalidQuantity},
		{name: "ゼロ値の在庫", stock: product.Stock{}, qty: 1, errIs: product.ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.stock.Count()
			next, alloc, err := tt.stock.Take(tt.qty)

			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, before, next.Count(), "stock must be unchanged on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.qty, alloc.Quantity)
			assert.Equal(t, tt.stock.IsUnlimited(), alloc.Unlimited)
			if !tt.stock.IsUnlimited() {
				assert.Equal(t, tt.wantRemaining, next.Count())
				assert.Equal(t, tt.wantRemaining, alloc.Remaining)
			}
			got := make([]string, 0, len(alloc.Credentials))
			for _, c := range alloc.Credentials {
				got = append(got, c.Login)
			}
			assert.ElementsMatch(t, tt.wantLogins, got)
			if tt.wantLogins != nil {
				assert.Equal(t, tt.wantLogins, got)
			}
			assert.Equal(t, before, tt.stock.Count(), "receiver must not be modified")
		})
	}
}

func TestStock_Display(t *testing.T) {
	assert.Equal(t, "∞", product.Unlimited().Display())
	assert.Equal(t, "3", mustCounted(t, 3).Display())
	assert.Equal(t, product.DisplayOutOfStock, mustCounted(t, 0).Display())
	assert.Equal(t, "2", mustPool(t, "A", "B").Display())
	assert.Equal(t, product.DisplayOutOfStock, mustPool(t).Display())
}

func TestStock_Constructors(t *testing.T) {
	_, err := product.Counted(-1)
	assert.ErrorIs(t, err, product.ErrNegativeStock)

	_, err = product.Pool([]product.Credential{{Login: "a", Secret: "b"}, {}})
	assert.ErrorIs(t, err, product.ErrEmptyCredential)
}

func TestStock_Add(t *testing.T) {
	s := mustPool(t, "A")

	next, err := s.Add([]product.Credential{{Login: "B", Secret: "x"}})
	require.NoError(t, err)
	assert.Equal(t, 2, next.Count())
	assert.Equal(t, "A", next.Credentials()[0].Login)
	assert.Equal(t, 1, s.Count())

	_, err = mustCounted(t, 1).Add([]product.Credential{{Login: "B"}})
	assert.ErrorIs(t, err, product.ErrStockKindMismatch)

	_, err = s.Add([]product.Credential{{}})
	assert.ErrorIs(t, err, product.ErrEmptyCredential)
}
