package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"paylink-vending/internal/domain/operator"
	"paylink-vending/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxOperatorIDKey   = "operator_id"
	ctxOperatorRoleKey = "operator_role"
	ctxTenantScopeKey  = "operator_tenant"
	ctxClaimsKey       = "jwt_claims"
)

var roleHierarchy = map[operator.Role]int{
	operator.RoleViewer:  1,
	operator.RoleGateway: 2,
	operator.RoleAdmin:   3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			return
		}

		c.Set(ctxOperatorIDKey, principal.ID)
		c.Set(ctxOperatorRoleKey, principal.Role)
		c.Set(ctxTenantScopeKey, principal.Tenant)
		c.Set(ctxClaimsKey, map[string]any{
			"operator_id": principal.ID.String(),
			"role":        principal.Role.String(),
			"tenant":      principal.Tenant,
		})
		c.Next()
	}
}

// RequireTenant rejects callers whose token is scoped to a tenant other than the path's param.
func (m *AuthMiddleware) RequireTenant(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := GetTenantScope(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			return
		}

		principal := operator.Principal{Tenant: scope}
		if !principal.CanAccess(c.Param(param)) {
			slog.Warn("Operator token used outside its tenant",
				"tenant", c.Param(param),
				"scope", scope,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Tenant not permitted"},
			})
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole operator.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetOperatorRole(c)
		if !ok {
			// RequireAuth must run first
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Insufficient permissions"},
			})
			return
		}

		c.Next()
	}
}

func hasMinimumRole(role, minRole operator.Role) bool {
	level, ok := roleHierarchy[role]
	minLevel, minOK := roleHierarchy[minRole]
	return ok && minOK && level >= minLevel
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}

func GetOperatorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxOperatorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetTenantScope(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxTenantScopeKey)
	if !exists {
		return "", false
	}
	scope, ok := v.(string)
	return scope, ok
}

func GetOperatorRole(c *gin.Context) (operator.Role, bool) {
	v, exists := c.Get(ctxOperatorRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(operator.Role)
	return role, ok
}
