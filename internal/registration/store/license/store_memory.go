package license

import (
	"context"
	"sort"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
)

// InMemoryStore serves a fixed license catalog for tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	licenses map[string]models.License
}

// NewInMemory constructs a catalog holding licenses.
func NewInMemory(licenses ...models.License) *InMemoryStore {
	s := &InMemoryStore{licenses: make(map[string]models.License, len(licenses))}
	for _, l := range licenses {
		s.licenses[l.Name] = l
	}
	return s
}

func (s *InMemoryStore) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.licenses))
	for name := range s.licenses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (*models.License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.licenses[name]
	if !ok {
		return nil, pkgerrors.Wrapf(sentinel.ErrNotFound, "license %q", name)
	}
	return &l, nil
}

// Remove drops a license, simulating catalog drift between reads.
func (s *InMemoryStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.licenses, name)
}
