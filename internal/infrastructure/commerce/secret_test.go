package commerce

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *SecretCipher {
	t.Helper()
	c, err := NewSecretCipher("unit-test-secret-key")
	require.NoError(t, err)
	return c
}

func TestNewSecretCipher_EmptyKey(t *testing.T) {
	_, err := NewSecretCipher("")
	assert.Error(t, err)
}

func TestSecretCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)
	fields := map[string]string{
		"mallId":       "testmall",
		"clientId":     "client-id",
		"clientSecret": "client-secret",
		"refreshToken": "refresh-abc",
	}

	blob, err := c.Encrypt(fields)
	require.NoError(t, err)
	assert.NotContains(t, blob, "testmall")

	decrypted, err := c.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, fields, decrypted)
}

func TestSecretCipher_Decrypt_Malformed(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Decrypt("not base64!!!")
	assert.ErrorIs(t, err, ErrSecretBlobMalformed)
}

func TestSecretCipher_Decrypt_TooShort(t *testing.T) {
	c := newTestCipher(t)

	short := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02})
	_, err := c.Decrypt(short)
	assert.ErrorIs(t, err, ErrSecretBlobTooShort)
}

func TestSecretCipher_Decrypt_WrongKey(t *testing.T) {
	c := newTestCipher(t)
	other, err := NewSecretCipher("a-different-key")
	require.NoError(t, err)

	blob, err := c.Encrypt(map[string]string{"apiKey": "k"})
	require.NoError(t, err)

	_, err = other.Decrypt(blob)
	assert.ErrorIs(t, err, ErrSecretDecryptFailed)
}

func TestSecretCipher_Decrypt_NotAStringMap(t *testing.T) {
	c := newTestCipher(t)

	// Encrypt a payload by hand that is valid JSON but not a flat map.
	blob := encryptRaw(t, c, []byte(`["not", "a", "map"]`))
	_, err := c.Decrypt(blob)
	assert.Error(t, err)
}

// encryptRaw seals an arbitrary plaintext with the cipher's AEAD, bypassing
// the map marshaling in Encrypt.
func encryptRaw(t *testing.T, c *SecretCipher, plain []byte) string {
	t.Helper()
	nonce := make([]byte, c.aead.NonceSize())
	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed)
}
