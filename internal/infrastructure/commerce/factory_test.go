package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

func newTestFactory(t *testing.T) (*Factory, *SecretCipher) {
	t.Helper()
	cipher := newTestCipher(t)
	return NewFactory(cipher, nil), cipher
}

func encryptFields(t *testing.T, cipher *SecretCipher, fields map[string]string) string {
	t.Helper()
	blob, err := cipher.Encrypt(fields)
	require.NoError(t, err)
	return blob
}

func TestFactory_Build_UnknownPlatform(t *testing.T) {
	factory, _ := newTestFactory(t)

	// The registry check runs before any decryption, so even a garbage
	// secret never reaches the cipher.
	_, err := factory.Build(channel.PlatformCode("COUPANG"), "not even base64")

	assert.ErrorIs(t, err, channel.ErrUnknownPlatform)
	var configErr *channel.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, channel.PlatformCode("COUPANG"), configErr.Platform)
}

func TestFactory_Build_UndecryptableSecret(t *testing.T) {
	factory, _ := newTestFactory(t)

	_, err := factory.Build(channel.PlatformCodeAbly, "!!!")

	assert.ErrorIs(t, err, ErrSecretBlobMalformed)
	var configErr *channel.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestFactory_Build_MissingCredentialField(t *testing.T) {
	factory, cipher := newTestFactory(t)

	tests := []struct {
		name     string
		platform channel.PlatformCode
		fields   map[string]string
	}{
		{"ably without api key", channel.PlatformCodeAbly, map[string]string{"baseUrl": "https://example.com"}},
		{"cafe24 without refresh token", channel.PlatformCodeCafe24, map[string]string{
			"mallId": "m", "clientId": "c", "clientSecret": "s",
		}},
		{"zigzag without partner key", channel.PlatformCodeZigzag, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.Build(tt.platform, encryptFields(t, cipher, tt.fields))

			assert.ErrorIs(t, err, channel.ErrMissingCredential)
			var configErr *channel.ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.platform, configErr.Platform)
		})
	}
}

func TestFactory_Build_AllPlatforms(t *testing.T) {
	factory, cipher := newTestFactory(t)

	tests := []struct {
		platform channel.PlatformCode
		fields   map[string]string
	}{
		{channel.PlatformCodeAbly, map[string]string{"apiKey": "k"}},
		{channel.PlatformCodeCafe24, map[string]string{
			"mallId": "m", "clientId": "c", "clientSecret": "s", "refreshToken": "r",
		}},
		{channel.PlatformCodeZigzag, map[string]string{"partnerKey": "p"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			adapter, err := factory.Build(tt.platform, encryptFields(t, cipher, tt.fields))

			require.NoError(t, err)
			assert.Equal(t, tt.platform, adapter.PlatformCode())
		})
	}
}

func TestFactory_Build_AblyBaseURLOverride(t *testing.T) {
	factory, cipher := newTestFactory(t)

	blob := encryptFields(t, cipher, map[string]string{
		"apiKey":  "k",
		"baseUrl": "https://sandbox.example.com/v1",
	})
	adapter, err := factory.Build(channel.PlatformCodeAbly, blob)

	require.NoError(t, err)
	ably, ok := adapter.(*AblyAdapter)
	require.True(t, ok)
	assert.Equal(t, "https://sandbox.example.com/v1", ably.config.BaseURL)
}

func TestFactory_Build_Cafe24BaseURLOverride(t *testing.T) {
	factory, cipher := newTestFactory(t)

	blob := encryptFields(t, cipher, map[string]string{
		"mallId": "m", "clientId": "c", "clientSecret": "s", "refreshToken": "r",
		"baseUrl": "https://cafe24-staging.example.com",
	})
	adapter, err := factory.Build(channel.PlatformCodeCafe24, blob)

	require.NoError(t, err)
	cafe24, ok := adapter.(*Cafe24Adapter)
	require.True(t, ok)
	assert.Equal(t, "https://cafe24-staging.example.com", cafe24.config.BaseURL())

	// Without a blob baseUrl the factory-level override applies.
	factory.SetBaseURLOverride(channel.PlatformCodeCafe24, "https://override.example.com")
	blob = encryptFields(t, cipher, map[string]string{
		"mallId": "m", "clientId": "c", "clientSecret": "s", "refreshToken": "r",
	})
	adapter, err = factory.Build(channel.PlatformCodeCafe24, blob)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", adapter.(*Cafe24Adapter).config.BaseURL())

	// And a mall without either falls through to the mall-derived host.
	plain, _ := newTestFactory(t)
	adapter, err = plain.Build(channel.PlatformCodeCafe24, encryptFields(t, cipher, map[string]string{
		"mallId": "m", "clientId": "c", "clientSecret": "s", "refreshToken": "r",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://m.cafe24api.com", adapter.(*Cafe24Adapter).config.BaseURL())
}

func TestFactory_SetBaseURLOverride(t *testing.T) {
	factory, cipher := newTestFactory(t)
	factory.SetBaseURLOverride(channel.PlatformCodeAbly, "https://staging.example.com/v1")

	adapter, err := factory.Build(channel.PlatformCodeAbly, encryptFields(t, cipher, map[string]string{"apiKey": "k"}))
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/v1", adapter.(*AblyAdapter).config.BaseURL)

	// A baseUrl inside the secret blob beats the factory-level override.
	blob := encryptFields(t, cipher, map[string]string{
		"apiKey":  "k",
		"baseUrl": "https://blob.example.com/v1",
	})
	adapter, err = factory.Build(channel.PlatformCodeAbly, blob)
	require.NoError(t, err)
	assert.Equal(t, "https://blob.example.com/v1", adapter.(*AblyAdapter).config.BaseURL)
}

func TestFactory_Supported(t *testing.T) {
	factory, _ := newTestFactory(t)

	assert.Equal(t, []channel.PlatformCode{
		channel.PlatformCodeAbly,
		channel.PlatformCodeCafe24,
		channel.PlatformCodeZigzag,
	}, factory.Supported())
}
