//go:build unit

package operator_test

import (
	"testing"

	"paylink-vending/internal/domain/operator"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal_CanAccess(t *testing.T) {
	tests := []struct {
		name   string
		scope  string
		tenant string
		want   bool
	}{
		{name: "同じテナント", scope: "guild-1", tenant: "guild-1", want: true},
		{name: "別のテナント", scope: "guild-1", tenant: "guild-2", want: false},
		{name: "全テナント", scope: operator.AllTenants, tenant: "guild-2", want: true},
		{name: "空のテナント", scope: "", tenant: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := operator.Principal{Role: operator.RoleAdmin, Tenant: tt.scope}
			assert.Equal(t, tt.want, p.CanAccess(tt.tenant))
		})
	}
}

func TestNewTenantScope(t *testing.T) {
	got, err := operator.NewTenantScope(" guild-1 ")
	assert.NoError(t, err)
	assert.Equal(t, "guild-1", got)

	_, err = operator.NewTenantScope("  ")
	assert.ErrorIs(t, err, operator.ErrInvalidTenantScope)
}
