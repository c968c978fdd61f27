package keychain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// NonceLength is the AES-GCM nonce size: 12 bytes (96 bits).
	NonceLength = 12
	// TagLength is the GCM authentication tag size: 16 bytes (128 bits).
	TagLength = 16
)

// ErrAuthentication is returned by Open when the key is wrong or any part of
// the blob has been altered. Callers must treat it as "cannot decrypt" and
// never retry: a wrong passphrase does not change on retry.
var ErrAuthentication = errors.New("authentication failed")

// SealedBlob is the three-part AEAD output persisted alongside a record. The
// tag is held separately from the ciphertext so each part is independently
// byte-addressable in storage.
type SealedBlob struct {
	Nonce      []byte `json:"iv"`
	Ciphertext []byte `json:"ciphertext"`
	Tag        []byte `json:"tag"`
}

// Seal encrypts plaintext under key with AES-256-GCM and a fresh random
// nonce. It never logs or retains plaintext or key material.
func Seal(plaintext, key []byte) (SealedBlob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return SealedBlob{}, err
	}

	nonce := make([]byte, NonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return SealedBlob{}, fmt.Errorf("generate nonce: %w", err)
	}

	// gcm.Seal appends the tag to the ciphertext; split it back out so the
	// blob parts stay independently addressable.
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	boundary := len(sealed) - TagLength
	return SealedBlob{
		Nonce:      nonce,
		Ciphertext: sealed[:boundary],
		Tag:        sealed[boundary:],
	}, nil
}

// Open decrypts blob under key. Any wrong key, wrong nonce, or tampered
// ciphertext/tag yields ErrAuthentication; garbage plaintext is never
// returned as if valid.
func Open(blob SealedBlob, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(blob.Nonce) != NonceLength {
		return nil, ErrAuthentication
	}
	if len(blob.Tag) != TagLength {
		return nil, ErrAuthentication
	}

	sealed := make([]byte, 0, len(blob.Ciphertext)+len(blob.Tag))
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.Tag...)

	plaintext, err := gcm.Open(nil, blob.Nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeyLength {
		return nil, &KeyDerivationError{Reason: "key must be exactly 32 bytes"}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
