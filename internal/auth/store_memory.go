package auth

import (
	"context"
	"sync"

	"anonid/pkg/platform/sentinel"
)

// InMemoryOrganizationStore keeps enrollment lightweight for development and
// tests. It intentionally favors clarity over performance.
type InMemoryOrganizationStore struct {
	mu   sync.RWMutex
	orgs map[string]Organization
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{orgs: make(map[string]Organization)}
}

func (s *InMemoryOrganizationStore) Save(_ context.Context, org Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[org.Name]; exists {
		return sentinel.ErrConflict
	}
	s.orgs[org.Name] = org
	return nil
}

func (s *InMemoryOrganizationStore) FindByName(_ context.Context, name string) (Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if org, ok := s.orgs[name]; ok {
		return org, nil
	}
	return Organization{}, sentinel.ErrNotFound
}
