package storage

import (
	"context"
	"sync"

	"anonid/internal/identity"
	"anonid/pkg/platform/sentinel"
)

// InMemoryIdentityStore keeps the default deployment lightweight and testable.
// It intentionally favors clarity over performance.
type InMemoryIdentityStore struct {
	mu       sync.RWMutex
	byNIN    map[string]identity.Record
	byAnonID map[string]identity.Record
}

func NewInMemoryIdentityStore() *InMemoryIdentityStore {
	return &InMemoryIdentityStore{
		byNIN:    make(map[string]identity.Record),
		byAnonID: make(map[string]identity.Record),
	}
}

func (s *InMemoryIdentityStore) Create(_ context.Context, record identity.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byNIN[record.NIN]; exists {
		return sentinel.ErrConflict
	}
	s.byNIN[record.NIN] = record
	s.byAnonID[record.AnonID] = record
	return nil
}

func (s *InMemoryIdentityStore) FindByNIN(_ context.Context, nin string) (identity.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.byNIN[nin]; ok {
		return record, nil
	}
	return identity.Record{}, sentinel.ErrNotFound
}

func (s *InMemoryIdentityStore) FindByAnonID(_ context.Context, anonID string) (identity.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.byAnonID[anonID]; ok {
		return record, nil
	}
	return identity.Record{}, sentinel.ErrNotFound
}

func (s *InMemoryIdentityStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byNIN)), nil
}
