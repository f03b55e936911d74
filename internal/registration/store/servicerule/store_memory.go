package servicerule

import (
	"context"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
)

// InMemoryStore keeps service rules in memory for tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	rules map[int64]models.ServiceRule
}

// NewInMemory constructs an empty service rule store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{rules: make(map[int64]models.ServiceRule)}
}

func (s *InMemoryStore) Create(_ context.Context, r *models.ServiceRule) error {
	if r == nil {
		return pkgerrors.New("service rule is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[r.CustomerID]; ok {
		return pkgerrors.Errorf("service rule for customer %d exists", r.CustomerID)
	}
	s.rules[r.CustomerID] = *r
	return nil
}

func (s *InMemoryStore) FindByCustomer(_ context.Context, customerID int64) (*models.ServiceRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[customerID]
	if !ok {
		return nil, pkgerrors.Wrapf(sentinel.ErrNotFound, "service rule for customer %d", customerID)
	}
	return &r, nil
}

// Count returns the number of stored rules.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}
