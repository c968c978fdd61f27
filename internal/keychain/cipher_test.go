package keychain

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeyLength)
	_, err := io.ReadFull(rand.Reader, key)
	require.NoError(t, err)
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := testKey(t)

	for _, plaintext := range [][]byte{
		[]byte(`{"full name":"Fatima Adeleke"}`),
		[]byte(""),
		[]byte("a"),
		make([]byte, 4096),
	} {
		blob, err := Seal(plaintext, key)
		require.NoError(t, err)
		assert.Len(t, blob.Nonce, NonceLength)
		assert.Len(t, blob.Tag, TagLength)

		got, err := Open(blob, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	key := testKey(t)

	b1, err := Seal([]byte("same plaintext"), key)
	require.NoError(t, err)
	b2, err := Seal([]byte("same plaintext"), key)
	require.NoError(t, err)

	assert.NotEqual(t, b1.Nonce, b2.Nonce)
	assert.NotEqual(t, b1.Ciphertext, b2.Ciphertext)
}

func TestOpenRejectsWrongKey(t *testing.T) {
	blob, err := Seal([]byte("sensitive"), testKey(t))
	require.NoError(t, err)

	_, err = Open(blob, testKey(t))
	require.ErrorIs(t, err, ErrAuthentication)
}

// TestOpenRejectsTampering flips every byte of every blob part in turn; each
// single-bit corruption must fail authentication rather than return garbage.
func TestOpenRejectsTampering(t *testing.T) {
	key := testKey(t)
	blob, err := Seal([]byte("tamper target"), key)
	require.NoError(t, err)

	tamper := func(name string, part []byte) {
		for i := range part {
			mutated := SealedBlob{
				Nonce:      append([]byte(nil), blob.Nonce...),
				Ciphertext: append([]byte(nil), blob.Ciphertext...),
				Tag:        append([]byte(nil), blob.Tag...),
			}
			switch name {
			case "nonce":
				mutated.Nonce[i] ^= 0x01
			case "ciphertext":
				mutated.Ciphertext[i] ^= 0x01
			case "tag":
				mutated.Tag[i] ^= 0x01
			}
			_, err := Open(mutated, key)
			assert.ErrorIs(t, err, ErrAuthentication, "%s byte %d", name, i)
		}
	}

	tamper("nonce", blob.Nonce)
	tamper("ciphertext", blob.Ciphertext)
	tamper("tag", blob.Tag)
}

func TestOpenRejectsMalformedBlob(t *testing.T) {
	key := testKey(t)

	_, err := Open(SealedBlob{Nonce: []byte("short"), Ciphertext: []byte("x"), Tag: make([]byte, TagLength)}, key)
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = Open(SealedBlob{Nonce: make([]byte, NonceLength), Ciphertext: []byte("x"), Tag: []byte("short")}, key)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestSealRejectsBadKeyLength(t *testing.T) {
	_, err := Seal([]byte("p"), []byte("too short"))
	var kdfErr *KeyDerivationError
	require.ErrorAs(t, err, &kdfErr)
}
