package subscription

import (
	"context"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
)

// InMemoryStore appends subscriptions in memory for tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	subs []models.Subscription
}

// NewInMemory constructs an empty subscription store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Create(_ context.Context, sub *models.Subscription) error {
	if sub == nil {
		return pkgerrors.New("subscription is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, *sub)
	return nil
}

func (s *InMemoryStore) ListByEmail(_ context.Context, email string) ([]models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Subscription
	for _, sub := range s.subs {
		if sub.Email == email {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Count returns the number of stored subscriptions.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
