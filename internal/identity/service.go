package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	dErrors "anonid/pkg/domain-errors"
	"anonid/internal/keychain"
	"anonid/internal/platform/metrics"
	"anonid/pkg/platform/sentinel"
)

const anonIDLength = 12

var tracer = otel.Tracer("anonid/identity")

// RegistrySource fetches the raw record for a NIN from the national registry.
type RegistrySource interface {
	FetchRecord(ctx context.Context, nin string) (RawRecord, error)
}

// Store is the persistence contract the registrar depends on. The concrete
// implementations live in the storage package.
type Store interface {
	Create(ctx context.Context, record Record) error
	FindByNIN(ctx context.Context, nin string) (Record, error)
	FindByAnonID(ctx context.Context, anonID string) (Record, error)
	Count(ctx context.Context) (int64, error)
}

// RegistrationResult pairs the stored record with whether this call created
// it or found it already registered.
type RegistrationResult struct {
	Record Record
	Status RegistrationStatus
}

// Registrar turns raw registry records into anonymized, partially encrypted
// identity records. It holds the master passphrase; the passphrase never
// appears in logs, errors, or serialized output.
type Registrar struct {
	store      Store
	source     RegistrySource
	policy     *Policy
	passphrase string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewRegistrar(store Store, source RegistrySource, policy *Policy, passphrase string, logger *slog.Logger, m *metrics.Metrics) *Registrar {
	return &Registrar{
		store:      store,
		source:     source,
		policy:     policy,
		passphrase: passphrase,
		logger:     logger,
		metrics:    m,
	}
}

// Register anonymizes and stores the identity behind nin. Repeated calls for
// the same NIN are idempotent: the stored record is returned unchanged with
// StatusExisting, so the anon ID for a person never varies once assigned.
func (r *Registrar) Register(ctx context.Context, nin string) (RegistrationResult, error) {
	ctx, span := tracer.Start(ctx, "registrar.Register")
	defer span.End()

	if err := ValidateNIN(nin); err != nil {
		r.metrics.IncrementRegistration("rejected")
		return RegistrationResult{}, err
	}

	if existing, err := r.store.FindByNIN(ctx, nin); err == nil {
		span.SetAttributes(attribute.String("registration.status", string(StatusExisting)))
		r.metrics.IncrementRegistration("existing")
		return RegistrationResult{Record: existing, Status: StatusExisting}, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return RegistrationResult{}, fmt.Errorf("lookup existing record: %w", err)
	}

	raw, err := r.source.FetchRecord(ctx, nin)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.metrics.IncrementRegistration("rejected")
			return RegistrationResult{}, dErrors.New(dErrors.CodeNotFound, "nin not found in national registry")
		}
		return RegistrationResult{}, fmt.Errorf("fetch registry record: %w", err)
	}

	record, err := r.buildRecord(nin, raw)
	if err != nil {
		return RegistrationResult{}, err
	}

	if err := r.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost a race with a concurrent registration for the same NIN.
			winner, findErr := r.store.FindByNIN(ctx, nin)
			if findErr != nil {
				return RegistrationResult{}, fmt.Errorf("reread after conflict: %w", findErr)
			}
			r.metrics.IncrementRegistration("existing")
			return RegistrationResult{Record: winner, Status: StatusExisting}, nil
		}
		return RegistrationResult{}, fmt.Errorf("store record: %w", err)
	}

	r.logger.InfoContext(ctx, "identity registered",
		"anon_id", record.AnonID,
		"masked_nin", MaskNIN(nin),
		"public_fields", len(record.PublicProfile),
	)
	span.SetAttributes(attribute.String("registration.status", string(StatusNew)))
	r.metrics.IncrementRegistration("new")
	return RegistrationResult{Record: record, Status: StatusNew}, nil
}

func (r *Registrar) buildRecord(nin string, raw RawRecord) (Record, error) {
	public, sensitive := r.policy.Partition(raw)

	salt, err := keychain.GenerateSalt()
	if err != nil {
		return Record{}, fmt.Errorf("generate salt: %w", err)
	}
	key, err := keychain.DeriveKey(r.passphrase, salt)
	if err != nil {
		return Record{}, fmt.Errorf("derive record key: %w", err)
	}

	plaintext, err := json.Marshal(sensitive)
	if err != nil {
		return Record{}, fmt.Errorf("encode sensitive fields: %w", err)
	}
	blob, err := keychain.Seal(plaintext, key)
	if err != nil {
		return Record{}, fmt.Errorf("seal sensitive fields: %w", err)
	}

	anonID, err := deriveAnonID(nin)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	return Record{
		NIN:                nin,
		AnonID:             anonID,
		PublicProfile:      public,
		EncryptedSensitive: blob,
		Salt:               salt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// deriveAnonID hashes the NIN together with a fresh random nonce, so the ID
// is stable once stored but cannot be recomputed from the NIN alone.
func deriveAnonID(nin string) (string, error) {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate anon id nonce: %w", err)
	}
	sum := sha256.Sum256([]byte(nin + ":" + hex.EncodeToString(nonce)))
	return hex.EncodeToString(sum[:])[:anonIDLength], nil
}

// LookupByNIN resolves a NIN to its stored record. Unlike Register it never
// consults the national registry, so an unregistered NIN is a plain miss.
func (r *Registrar) LookupByNIN(ctx context.Context, nin string) (Record, error) {
	if err := ValidateNIN(nin); err != nil {
		return Record{}, err
	}
	record, err := r.store.FindByNIN(ctx, nin)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Record{}, dErrors.New(dErrors.CodeNotFound, "nin not found, register first")
	}
	if err != nil {
		return Record{}, fmt.Errorf("lookup nin: %w", err)
	}
	return record, nil
}

// Lookup resolves an anon ID to its stored record.
func (r *Registrar) Lookup(ctx context.Context, anonID string) (Record, error) {
	record, err := r.store.FindByAnonID(ctx, anonID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Record{}, dErrors.New(dErrors.CodeNotFound, "unknown anonymous id")
	}
	if err != nil {
		return Record{}, fmt.Errorf("lookup anon id: %w", err)
	}
	return record, nil
}

// Count reports how many identities are registered.
func (r *Registrar) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

// DecryptSensitive recovers the sensitive field map of a record. Any failure,
// whether wrong passphrase, corrupted blob, or tampered ciphertext, surfaces
// as a single decryption error that carries no key material.
func (r *Registrar) DecryptSensitive(_ context.Context, record Record) (map[string]string, error) {
	key, err := keychain.DeriveKey(r.passphrase, record.Salt)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDecryptionFailed, "unable to decrypt sensitive data", err)
	}
	plaintext, err := keychain.Open(record.EncryptedSensitive, key)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDecryptionFailed, "unable to decrypt sensitive data", err)
	}
	var sensitive map[string]string
	if err := json.Unmarshal(plaintext, &sensitive); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDecryptionFailed, "unable to decrypt sensitive data", err)
	}
	return sensitive, nil
}
