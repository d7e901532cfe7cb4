package channel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError(PlatformCodeAbly, "apiKey", ErrMissingCredential)

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "ABLY")
	assert.Contains(t, err.Error(), "apiKey")

	// Field is optional
	noField := NewConfigError(PlatformCodeCafe24, "", ErrUnknownPlatform)
	assert.Contains(t, noField.Error(), "CAFE24")
	assert.NotContains(t, noField.Error(), `""`)
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{
		Platform: PlatformCodeAbly,
		BaseURL:  "https://api.a-bly.com/partner/v1",
		Err:      cause,
	}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "https://api.a-bly.com/partner/v1")
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network error", &NetworkError{Platform: PlatformCodeAbly, Err: errors.New("timeout")}, true},
		{"wrapped network error", fmt.Errorf("fetch: %w", &NetworkError{Platform: PlatformCodeAbly, Err: errors.New("timeout")}), true},
		{"rate limited", &APIError{Platform: PlatformCodeAbly, StatusCode: 429}, true},
		{"platform internal error", &APIError{Platform: PlatformCodeAbly, StatusCode: 500}, true},
		{"platform unavailable", &APIError{Platform: PlatformCodeAbly, StatusCode: 503}, true},
		{"bad request", &APIError{Platform: PlatformCodeAbly, StatusCode: 400}, false},
		{"unauthorized", &APIError{Platform: PlatformCodeAbly, StatusCode: 401}, false},
		{"forbidden", &APIError{Platform: PlatformCodeAbly, StatusCode: 403}, false},
		{"config error", NewConfigError(PlatformCodeAbly, "apiKey", ErrMissingCredential), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&APIError{Platform: PlatformCodeAbly, StatusCode: 401}))
	assert.True(t, IsAuthError(&APIError{Platform: PlatformCodeAbly, StatusCode: 403}))
	assert.False(t, IsAuthError(&APIError{Platform: PlatformCodeAbly, StatusCode: 500}))
	assert.False(t, IsAuthError(errors.New("boom")))
}
