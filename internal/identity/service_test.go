package identity_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonid/internal/identity"
	"anonid/internal/registry"
	"anonid/internal/storage"
	dErrors "anonid/pkg/domain-errors"
)

const testPassphrase = "correct horse battery staple"

func newRegistrar() *identity.Registrar {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return identity.NewRegistrar(
		storage.NewInMemoryIdentityStore(),
		registry.NewMockSource(),
		identity.DefaultPolicy(),
		testPassphrase,
		logger,
		nil,
	)
}

func TestRegisterCreatesAnonymizedRecord(t *testing.T) {
	registrar := newRegistrar()

	result, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, identity.StatusNew, result.Status)

	record := result.Record
	assert.Len(t, record.AnonID, 12)
	assert.NotContains(t, record.AnonID, "12345678901")

	for _, value := range record.PublicProfile {
		assert.NotEqual(t, "Fatima Adeleke", value)
	}
	assert.NotEmpty(t, record.EncryptedSensitive.Ciphertext)
	assert.Len(t, record.Salt, 16)
}

func TestRegisterIsIdempotent(t *testing.T) {
	registrar := newRegistrar()

	first, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)
	require.Equal(t, identity.StatusNew, first.Status)

	second, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, identity.StatusExisting, second.Status)
	assert.Equal(t, first.Record.AnonID, second.Record.AnonID)
	assert.Equal(t, first.Record.EncryptedSensitive, second.Record.EncryptedSensitive)
}

func TestRegisterRejectsMalformedNIN(t *testing.T) {
	registrar := newRegistrar()

	for _, nin := range []string{"", "123", "1234567890a", "123456789012"} {
		_, err := registrar.Register(context.Background(), nin)
		assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err), "nin %q", nin)
	}
}

func TestRegisterUnknownNIN(t *testing.T) {
	registrar := newRegistrar()

	_, err := registrar.Register(context.Background(), "00000000000")
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func TestDistinctNINsGetDistinctAnonIDs(t *testing.T) {
	registrar := newRegistrar()

	a, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)
	b, err := registrar.Register(context.Background(), "98765432109")
	require.NoError(t, err)

	assert.NotEqual(t, a.Record.AnonID, b.Record.AnonID)
}

func TestDecryptSensitiveRoundTrip(t *testing.T) {
	registrar := newRegistrar()

	result, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)

	sensitive, err := registrar.DecryptSensitive(context.Background(), result.Record)
	require.NoError(t, err)
	assert.Equal(t, "Fatima Adeleke", sensitive["full name"])
	assert.Contains(t, sensitive, "date of birth")

	for field := range sensitive {
		_, inPublic := result.Record.PublicProfile[field]
		assert.False(t, inPublic, "field %q stored both in clear and encrypted", field)
	}
}

func TestDecryptSensitiveWrongPassphrase(t *testing.T) {
	registrar := newRegistrar()

	result, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	other := identity.NewRegistrar(
		storage.NewInMemoryIdentityStore(),
		registry.NewMockSource(),
		identity.DefaultPolicy(),
		"a different passphrase",
		logger,
		nil,
	)

	_, err = other.DecryptSensitive(context.Background(), result.Record)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeDecryptionFailed, dErrors.CodeOf(err))
	assert.NotContains(t, err.Error(), testPassphrase)
	assert.NotContains(t, err.Error(), "a different passphrase")
}

func TestDecryptSensitiveTamperedBlob(t *testing.T) {
	registrar := newRegistrar()

	result, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)

	record := result.Record
	record.EncryptedSensitive.Ciphertext[0] ^= 0xFF

	_, err = registrar.DecryptSensitive(context.Background(), record)
	assert.Equal(t, dErrors.CodeDecryptionFailed, dErrors.CodeOf(err))
}

func TestLookupByAnonID(t *testing.T) {
	registrar := newRegistrar()

	result, err := registrar.Register(context.Background(), "12345678901")
	require.NoError(t, err)

	found, err := registrar.Lookup(context.Background(), result.Record.AnonID)
	require.NoError(t, err)
	assert.Equal(t, result.Record.AnonID, found.AnonID)

	_, err = registrar.Lookup(context.Background(), "ffffffffffff")
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}
