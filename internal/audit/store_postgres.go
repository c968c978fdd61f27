package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists audit events in the api_access_logs table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the audit table when absent. Idempotent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS api_access_logs (
			id               UUID PRIMARY KEY,
			masked_nin       TEXT NOT NULL,
			endpoint         TEXT NOT NULL,
			requested_fields TEXT[],
			granted          BOOLEAN NOT NULL,
			risk_level       TEXT,
			risk_score       INTEGER,
			organization     TEXT,
			client_ip        TEXT,
			client_platform  TEXT,
			request_id       TEXT,
			ts               TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO api_access_logs
			(id, masked_nin, endpoint, requested_fields, granted, risk_level, risk_score,
			 organization, client_ip, client_platform, request_id, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, event.ID, event.MaskedNIN, event.Endpoint, event.RequestedFields, event.Granted,
		event.RiskLevel, event.RiskScore, event.Organization, event.ClientIP,
		event.ClientPlatform, event.RequestID, event.Timestamp)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountByOutcome(ctx context.Context) (granted, denied int64, err error) {
	err = s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE granted),
			COUNT(*) FILTER (WHERE NOT granted)
		FROM api_access_logs
	`).Scan(&granted, &denied)
	if err != nil {
		return 0, 0, fmt.Errorf("count audit outcomes: %w", err)
	}
	return granted, denied, nil
}
