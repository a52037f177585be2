package utils

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{7}, 32)
}

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher(testKey())
	require.NoError(t, err)

	ct, err := c.Encrypt("see you in ten years")
	require.NoError(t, err)
	assert.NotContains(t, ct, "see you")

	ct2, err := c.Encrypt("see you in ten years")
	require.NoError(t, err)
	assert.NotEqual(t, ct, ct2, "nonce must differ per message")

	pt, err := c.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "see you in ten years", pt)
}

func TestCipherRejectsTamperedAndWrongKey(t *testing.T) {
	c, err := NewCipher(testKey())
	require.NoError(t, err)
	ct, err := c.Encrypt("secret")
	require.NoError(t, err)

	other, err := NewCipher(bytes.Repeat([]byte{8}, 32))
	require.NoError(t, err)
	_, err = other.Decrypt(ct)
	assert.Error(t, err)

	_, err = c.Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
}

func TestCipherEmptyString(t *testing.T) {
	c, err := NewCipher(testKey())
	require.NoError(t, err)
	ct, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, ct)
}

func TestParseEncryptionKey(t *testing.T) {
	good := base64.StdEncoding.EncodeToString(testKey())
	key, err := ParseEncryptionKey(" " + good + "\n")
	require.NoError(t, err)
	assert.Equal(t, testKey(), key)

	_, err = ParseEncryptionKey("not base64!")
	assert.Error(t, err)
	_, err = ParseEncryptionKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)
	_, err = ParseEncryptionKey("")
	assert.Error(t, err)
}

func TestDeriveKeyDeterministicPerSalt(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveKey("correct horse", salt)
	k2 := DeriveKey("correct horse", salt)
	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2)

	other, err := NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, k1, DeriveKey("correct horse", other))
}
