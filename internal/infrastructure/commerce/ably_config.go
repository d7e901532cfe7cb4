package commerce

import (
	"errors"
)

// AblyConfig holds configuration for the Ably partner API integration.
// Authentication is a static credential header; there is no token lifecycle.
type AblyConfig struct {
	// APIKey is the partner API key, sent on every request
	APIKey string
	// BaseURL is the API base URL (configurable for sandbox/mock servers)
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// AblyProductionBaseURL is the production partner API endpoint
	AblyProductionBaseURL = "https://api.a-bly.com/partner/v1"
	// ablyDefaultTimeoutSeconds is the per-request timeout
	ablyDefaultTimeoutSeconds = 15
	// ablyAPIKeyHeader carries the static credential
	ablyAPIKeyHeader = "X-Api-Key"
)

// Errors for Ably configuration
var (
	ErrAblyConfigMissingAPIKey = errors.New("ably: api key is required")
)

// NewAblyConfig creates a new Ably configuration with defaults.
func NewAblyConfig(apiKey string) *AblyConfig {
	return &AblyConfig{
		APIKey:         apiKey,
		BaseURL:        AblyProductionBaseURL,
		TimeoutSeconds: ablyDefaultTimeoutSeconds,
	}
}

// Validate validates the Ably configuration and fills defaults.
func (c *AblyConfig) Validate() error {
	if c.APIKey == "" {
		return ErrAblyConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = AblyProductionBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = ablyDefaultTimeoutSeconds
	}
	return nil
}
