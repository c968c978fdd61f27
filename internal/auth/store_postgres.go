package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"anonid/pkg/platform/sentinel"
)

// PostgresOrganizationStore persists organizations in Postgres.
type PostgresOrganizationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresOrganizationStore(pool *pgxpool.Pool) *PostgresOrganizationStore {
	return &PostgresOrganizationStore{pool: pool}
}

// EnsureSchema creates the organizations table if it does not exist.
func (s *PostgresOrganizationStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS organizations (
			id           UUID PRIMARY KEY,
			name         TEXT NOT NULL UNIQUE,
			api_key_hash BYTEA NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure organizations schema: %w", err)
	}
	return nil
}

func (s *PostgresOrganizationStore) Save(ctx context.Context, org Organization) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organizations (id, name, api_key_hash, created_at)
		VALUES ($1, $2, $3, $4)`,
		org.ID, org.Name, org.APIKeyHash, org.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *PostgresOrganizationStore) FindByName(ctx context.Context, name string) (Organization, error) {
	var org Organization
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, api_key_hash, created_at
		FROM organizations
		WHERE name = $1`, name).
		Scan(&org.ID, &org.Name, &org.APIKeyHash, &org.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organization{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Organization{}, fmt.Errorf("select organization: %w", err)
	}
	return org, nil
}
