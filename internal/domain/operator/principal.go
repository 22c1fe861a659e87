package operator

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidTenantScope = errors.New("invalid tenant scope")

// AllTenants scopes a token to every tenant. Issued to the chat gateway, which serves every guild.
const AllTenants = "*"

// Principal is an authenticated API caller.
type Principal struct {
	ID     uuid.UUID
	Role   Role
	Tenant string
}

func NewTenantScope(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidTenantScope
	}
	return s, nil
}

func (p Principal) CanAccess(tenantID string) bool {
	return p.Tenant == AllTenants || (tenantID != "" && p.Tenant == tenantID)
}
