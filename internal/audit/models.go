// Package audit records every access attempt against an identity record:
// which endpoint, which fields, whether policy granted it, and the risk
// verdict that drove the outcome. Events carry the masked identifier only;
// raw NINs never enter the audit trail.
package audit

import (
	"context"
	"time"
)

// Event is one append-only audit entry.
type Event struct {
	ID              string    `json:"id"`
	MaskedNIN       string    `json:"masked_nin"`
	Endpoint        string    `json:"endpoint"`
	RequestedFields []string  `json:"requested_fields,omitempty"`
	Granted         bool      `json:"granted"`
	RiskLevel       string    `json:"risk_level,omitempty"`
	RiskScore       int       `json:"risk_score"`
	Organization    string    `json:"organization,omitempty"`
	ClientIP        string    `json:"client_ip,omitempty"`
	ClientPlatform  string    `json:"client_platform,omitempty"`
	RequestID       string    `json:"request_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Store is the audit persistence boundary. Append-only; events are never
// updated or deleted.
type Store interface {
	Append(ctx context.Context, event Event) error
	CountByOutcome(ctx context.Context) (granted, denied int64, err error)
}
