package memstore

import (
	"context"
	"sync"

	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/infra"
)

type SessionRepository struct {
	mu sync.RWMutex
	m  map[string]session.Sealed
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{m: make(map[string]session.Sealed)}
}

func (r *SessionRepository) Get(_ context.Context, tenantID string) (*session.Sealed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[tenantID]
	if !ok {
		return nil, infra.NewNotFound("provider session not found")
	}
	return &s, nil
}

func (r *SessionRepository) Put(_ context.Context, s session.Sealed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[s.TenantID] = s
	return nil
}
