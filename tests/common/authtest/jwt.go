//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"paylink-vending/internal/domain/operator"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) Service(t *testing.T) *jwt.Service {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return jwt.NewService(h.cfg.Secret, duration)
}

// GenerateToken issues a token valid for every tenant.
func (h *JWTHelper) GenerateToken(t *testing.T, role operator.Role) string {
	t.Helper()
	return h.GenerateTenantToken(t, role, operator.AllTenants)
}

func (h *JWTHelper) GenerateTenantToken(t *testing.T, role operator.Role, tenant string) string {
	t.Helper()
	token, err := h.Service(t).GenerateToken(uuid.New(), role, tenant, "test-operator")
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, role operator.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(uuid.New(), role, operator.AllTenants, "test-operator")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
