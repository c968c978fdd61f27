// Package identity holds the domain types for anonymized identity records:
// the raw registry record, the split public profile / sealed sensitive blob,
// the sensitivity policy, and identifier masking.
package identity

import (
	"time"

	"anonid/internal/keychain"
)

// RawRecord is the flat field-name to value mapping supplied by the national
// registry for one person. It always includes the "nin" field. RawRecords are
// ephemeral: consumed during registration and never persisted.
type RawRecord map[string]string

// PublicProfile contains only fields classified Public or Medium. Persisted
// in clear.
type PublicProfile map[string]string

// Record is the persisted unit, one per NIN. Records are immutable once
// written; an update produces a new record carrying the same AnonID.
type Record struct {
	NIN                string              `json:"nin"`
	AnonID             string              `json:"anon_id"`
	PublicProfile      PublicProfile       `json:"public_profile"`
	EncryptedSensitive keychain.SealedBlob `json:"encrypted_sensitive"`
	Salt               []byte              `json:"salt"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// RegistrationStatus distinguishes a first registration from an idempotent
// repeat for the same NIN.
type RegistrationStatus string

const (
	StatusNew      RegistrationStatus = "new"
	StatusExisting RegistrationStatus = "existing"
)
