package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"anonid/internal/identity"
	"anonid/internal/keychain"
	"anonid/pkg/platform/sentinel"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint hits.
const pgUniqueViolation = "23505"

// PostgresIdentityStore persists identity records in PostgreSQL. The
// encrypted blob is stored as jsonb with independently addressable
// iv/ciphertext/tag parts.
type PostgresIdentityStore struct {
	pool *pgxpool.Pool
}

func NewPostgresIdentityStore(pool *pgxpool.Pool) *PostgresIdentityStore {
	return &PostgresIdentityStore{pool: pool}
}

// EnsureSchema creates the users table when absent. Idempotent; called once
// at startup.
func (s *PostgresIdentityStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			nin                  TEXT PRIMARY KEY,
			anon_id              TEXT UNIQUE NOT NULL,
			public_profile       JSONB NOT NULL,
			encrypted_sensitive  JSONB NOT NULL,
			salt                 BYTEA NOT NULL,
			created_at           TIMESTAMPTZ NOT NULL,
			updated_at           TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

func (s *PostgresIdentityStore) Create(ctx context.Context, record identity.Record) error {
	profile, err := json.Marshal(record.PublicProfile)
	if err != nil {
		return fmt.Errorf("marshal public profile: %w", err)
	}
	blob, err := json.Marshal(record.EncryptedSensitive)
	if err != nil {
		return fmt.Errorf("marshal sealed blob: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO users (nin, anon_id, public_profile, encrypted_sensitive, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, record.NIN, record.AnonID, profile, blob, record.Salt, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert identity record: %w", err)
	}
	return nil
}

func (s *PostgresIdentityStore) FindByNIN(ctx context.Context, nin string) (identity.Record, error) {
	return s.findBy(ctx, "nin", nin)
}

func (s *PostgresIdentityStore) FindByAnonID(ctx context.Context, anonID string) (identity.Record, error) {
	return s.findBy(ctx, "anon_id", anonID)
}

func (s *PostgresIdentityStore) findBy(ctx context.Context, column, value string) (identity.Record, error) {
	// column is one of two compile-time constants, never caller input.
	query := fmt.Sprintf(`
		SELECT nin, anon_id, public_profile, encrypted_sensitive, salt, created_at, updated_at
		FROM users WHERE %s = $1
	`, column)

	var (
		record  identity.Record
		profile []byte
		blob    []byte
	)
	err := s.pool.QueryRow(ctx, query, value).Scan(
		&record.NIN, &record.AnonID, &profile, &blob, &record.Salt,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Record{}, sentinel.ErrNotFound
		}
		return identity.Record{}, fmt.Errorf("find identity record: %w", err)
	}

	if err := json.Unmarshal(profile, &record.PublicProfile); err != nil {
		return identity.Record{}, fmt.Errorf("unmarshal public profile: %w", err)
	}
	var sealed keychain.SealedBlob
	if err := json.Unmarshal(blob, &sealed); err != nil {
		return identity.Record{}, fmt.Errorf("unmarshal sealed blob: %w", err)
	}
	record.EncryptedSensitive = sealed
	return record, nil
}

func (s *PostgresIdentityStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count identity records: %w", err)
	}
	return count, nil
}
