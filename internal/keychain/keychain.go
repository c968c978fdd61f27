// Package keychain implements key derivation and authenticated encryption for
// sensitive identity fields. It knows nothing about records, storage, or HTTP;
// its only job is to turn a passphrase into a key and a payload into a sealed
// blob that fails closed on any tampering.
package keychain

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLength is the AES-256 key size in bytes.
	KeyLength = 32
	// SaltLength is the per-record KDF salt size: 16 bytes (128 bits).
	SaltLength = 16
	// Iterations is the fixed PBKDF2 iteration count. Changing it invalidates
	// every previously sealed blob, so it is a constant, not configuration.
	Iterations = 390_000
)

// KeyDerivationError reports malformed KDF input. Derivation itself never
// fails: for any non-empty passphrase and well-formed salt the output is
// deterministic.
type KeyDerivationError struct {
	Reason string
}

func (e *KeyDerivationError) Error() string {
	return "key derivation: " + e.Reason
}

// DeriveKey derives a 256-bit key from passphrase and salt using
// PBKDF2-HMAC-SHA256. Deterministic for a given (passphrase, salt) pair.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, &KeyDerivationError{Reason: "empty passphrase"}
	}
	if len(salt) != SaltLength {
		return nil, &KeyDerivationError{Reason: "salt must be exactly 16 bytes"}
	}
	return pbkdf2.Key([]byte(passphrase), salt, Iterations, KeyLength, sha256.New), nil
}

// GenerateSalt reads a fresh random salt from the OS CSPRNG. Salts are
// generated per record and never reused: reuse would let an attacker compare
// derived keys across records under the same passphrase.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}
