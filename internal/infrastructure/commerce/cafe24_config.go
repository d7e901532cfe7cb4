package commerce

import (
	"errors"
	"fmt"
)

// Cafe24Config holds configuration for the Cafe24 admin API integration.
// Cafe24 authenticates with an OAuth2 refresh-token exchange against the
// mall-specific token endpoint.
type Cafe24Config struct {
	// MallID is the mall identifier; it forms the API host
	MallID string
	// ClientID is the OAuth client ID
	ClientID string
	// ClientSecret is the OAuth client secret
	ClientSecret string
	// RefreshToken is the long-lived refresh token issued out-of-band
	RefreshToken string
	// BaseURLOverride replaces the mall-derived host when set, for staging
	BaseURLOverride string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// cafe24HostPattern is the mall-specific API host
	cafe24HostPattern = "https://%s.cafe24api.com"
	// cafe24DefaultTimeoutSeconds is the per-request timeout
	cafe24DefaultTimeoutSeconds = 15
)

// Errors for Cafe24 configuration
var (
	ErrCafe24ConfigMissingMallID       = errors.New("cafe24: mall id is required")
	ErrCafe24ConfigMissingClientID     = errors.New("cafe24: client id is required")
	ErrCafe24ConfigMissingClientSecret = errors.New("cafe24: client secret is required")
	ErrCafe24ConfigMissingRefreshToken = errors.New("cafe24: refresh token is required")
)

// NewCafe24Config creates a new Cafe24 configuration with defaults.
func NewCafe24Config(mallID, clientID, clientSecret, refreshToken string) *Cafe24Config {
	return &Cafe24Config{
		MallID:         mallID,
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		RefreshToken:   refreshToken,
		TimeoutSeconds: cafe24DefaultTimeoutSeconds,
	}
}

// Validate validates the Cafe24 configuration and fills defaults.
func (c *Cafe24Config) Validate() error {
	if c.MallID == "" {
		return ErrCafe24ConfigMissingMallID
	}
	if c.ClientID == "" {
		return ErrCafe24ConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrCafe24ConfigMissingClientSecret
	}
	if c.RefreshToken == "" {
		return ErrCafe24ConfigMissingRefreshToken
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = cafe24DefaultTimeoutSeconds
	}
	return nil
}

// BaseURL returns the mall-specific API base URL.
func (c *Cafe24Config) BaseURL() string {
	if c.BaseURLOverride != "" {
		return c.BaseURLOverride
	}
	return fmt.Sprintf(cafe24HostPattern, c.MallID)
}
