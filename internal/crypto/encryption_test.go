package crypto

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSealed reverses Encrypt for assertions.
func openSealed(t *testing.T, sealed string, key []byte) (string, error) {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	gcm, err := newGCM(key)
	require.NoError(t, err)
	require.Greater(t, len(raw), gcm.NonceSize())

	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	return string(plain), err
}

func TestEncrypt(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)

	sealed, err := Encrypt("203.0.113.5", key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "203.0.113.5")

	again, err := Encrypt("203.0.113.5", key)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per call")

	plain, err := openSealed(t, sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.5", plain)

	_, err = openSealed(t, sealed, bytes.Repeat([]byte{8}, 32))
	assert.Error(t, err)
}

func TestEncrypt_InvalidKey(t *testing.T) {
	_, err := Encrypt("x", []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestAddressSealer(t *testing.T) {
	_, err := NewAddressSealer("", "salt")
	assert.ErrorIs(t, err, ErrEmptyPassphrase)

	s, err := NewAddressSealer("passphrase", "salt")
	require.NoError(t, err)

	sealed, err := s.Seal("10.0.0.1")
	require.NoError(t, err)

	// Same passphrase and salt derive the same key.
	s2, err := NewAddressSealer("passphrase", "salt")
	require.NoError(t, err)
	assert.Equal(t, s.key, s2.key)
	opened, err := openSealed(t, sealed, s2.key)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", opened)

	s3, err := NewAddressSealer("passphrase", "other-salt")
	require.NoError(t, err)
	assert.NotEqual(t, s.key, s3.key)
	_, err = openSealed(t, sealed, s3.key)
	assert.Error(t, err)
}
