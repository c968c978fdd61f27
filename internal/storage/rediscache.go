package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"anonid/internal/identity"
)

// CachedIdentityStore is a read-through Redis cache in front of another
// IdentityStore. Records are immutable once written, so cached entries can
// never go stale; the TTL only bounds cache memory. Cache failures degrade to
// the backing store and are logged, never surfaced.
type CachedIdentityStore struct {
	next   IdentityStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedIdentityStore(next IdentityStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedIdentityStore {
	return &CachedIdentityStore{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKeyNIN(nin string) string       { return "anonid:record:nin:" + nin }
func cacheKeyAnonID(anonID string) string { return "anonid:record:anon:" + anonID }

func (s *CachedIdentityStore) Create(ctx context.Context, record identity.Record) error {
	if err := s.next.Create(ctx, record); err != nil {
		return err
	}
	s.put(ctx, record)
	return nil
}

func (s *CachedIdentityStore) FindByNIN(ctx context.Context, nin string) (identity.Record, error) {
	if record, ok := s.get(ctx, cacheKeyNIN(nin)); ok {
		return record, nil
	}
	record, err := s.next.FindByNIN(ctx, nin)
	if err != nil {
		return identity.Record{}, err
	}
	s.put(ctx, record)
	return record, nil
}

func (s *CachedIdentityStore) FindByAnonID(ctx context.Context, anonID string) (identity.Record, error) {
	if record, ok := s.get(ctx, cacheKeyAnonID(anonID)); ok {
		return record, nil
	}
	record, err := s.next.FindByAnonID(ctx, anonID)
	if err != nil {
		return identity.Record{}, err
	}
	s.put(ctx, record)
	return record, nil
}

// Count always hits the backing store; totals are cheap and must be exact.
func (s *CachedIdentityStore) Count(ctx context.Context) (int64, error) {
	return s.next.Count(ctx)
}

func (s *CachedIdentityStore) get(ctx context.Context, key string) (identity.Record, bool) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.WarnContext(ctx, "record cache read failed", "error", err)
		}
		return identity.Record{}, false
	}
	var record identity.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "record cache entry corrupt", "key", key, "error", err)
		}
		return identity.Record{}, false
	}
	return record, true
}

func (s *CachedIdentityStore) put(ctx context.Context, record identity.Record) {
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, cacheKeyNIN(record.NIN), payload, s.ttl)
	pipe.Set(ctx, cacheKeyAnonID(record.AnonID), payload, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "record cache write failed", "error", err)
	}
}
