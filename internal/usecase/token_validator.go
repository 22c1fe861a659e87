package usecase

import (
	"paylink-vending/internal/domain/operator"
	"paylink-vending/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (operator.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (operator.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return operator.Principal{}, err
	}

	role, err := operator.NewRole(claims.Role)
	if err != nil {
		return operator.Principal{}, err
	}

	// tokens issued before tenant scoping carry no tenant and are refused
	tenant, err := operator.NewTenantScope(claims.Tenant)
	if err != nil {
		return operator.Principal{}, jwt.ErrInvalidToken
	}

	return operator.Principal{ID: claims.OperatorID, Role: role, Tenant: tenant}, nil
}
