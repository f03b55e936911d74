package customer

import (
	"context"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
)

// InMemoryStore keeps customers in memory for tests. It honours the same
// uniqueness rules as the users table.
type InMemoryStore struct {
	mu        sync.RWMutex
	customers map[string]models.Customer
	ids       map[int64]struct{}
}

// NewInMemory constructs a store seeded with customers.
func NewInMemory(seed ...models.Customer) *InMemoryStore {
	s := &InMemoryStore{
		customers: make(map[string]models.Customer),
		ids:       make(map[int64]struct{}),
	}
	for _, c := range seed {
		s.customers[c.Email] = c
		s.ids[c.CustomerID] = struct{}{}
	}
	return s
}

func (s *InMemoryStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.customers[email]
	return ok, nil
}

func (s *InMemoryStore) NextCustomerID(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.ids) == 0 {
		return 0, pkgerrors.Wrap(sentinel.ErrEmptyCatalog, "no customer id to increment")
	}
	var maxID int64
	first := true
	for id := range s.ids {
		if first || id > maxID {
			maxID = id
			first = false
		}
	}
	return maxID + 1, nil
}

func (s *InMemoryStore) Create(_ context.Context, c *models.Customer) error {
	if c == nil {
		return pkgerrors.New("customer is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[c.Email]; ok {
		return pkgerrors.Wrapf(sentinel.ErrAlreadyUsed, "customer %s", c.Email)
	}
	if _, ok := s.ids[c.CustomerID]; ok {
		return pkgerrors.Errorf("customer id %d already assigned", c.CustomerID)
	}
	s.customers[c.Email] = *c
	s.ids[c.CustomerID] = struct{}{}
	return nil
}

// FindByEmail returns a copy of the stored customer.
func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[email]
	if !ok {
		return nil, pkgerrors.Wrapf(sentinel.ErrNotFound, "customer %s", email)
	}
	return &c, nil
}

// Count returns the number of stored customers.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}
