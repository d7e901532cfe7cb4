package channel

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrUnknownPlatform indicates a platform tag with no registered adapter.
	// Raised at construction time, before any network activity.
	ErrUnknownPlatform = errors.New("channel: unknown platform")
	// ErrMissingCredential indicates a required secret field is absent
	ErrMissingCredential = errors.New("channel: missing credential")
	// ErrClaimsNotSupported indicates the platform exposes no claim API
	ErrClaimsNotSupported = errors.New("channel: claims not supported by platform")
	// ErrProductStatusNotSupported indicates the platform exposes no
	// product listing-state API
	ErrProductStatusNotSupported = errors.New("channel: product status not supported by platform")
)

// ---------------------------------------------------------------------------
// ConfigError
// ---------------------------------------------------------------------------

// ConfigError is a fatal configuration problem detected while constructing an
// adapter: an unrecognized platform tag, an undecryptable secret blob, or a
// missing required secret field. It is never retried.
type ConfigError struct {
	// Platform is the platform tag the configuration was for
	Platform PlatformCode
	// Field is the offending configuration field, if one can be named
	Field string
	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("channel: invalid configuration for %s: field %q: %v", e.Platform, e.Field, e.Err)
	}
	return fmt.Sprintf("channel: invalid configuration for %s: %v", e.Platform, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError for the given platform and field.
func NewConfigError(platform PlatformCode, field string, err error) *ConfigError {
	return &ConfigError{Platform: platform, Field: field, Err: err}
}

// ---------------------------------------------------------------------------
// APIError
// ---------------------------------------------------------------------------

// APIError is a platform-reported failure, carrying the HTTP status code the
// platform answered with and a diagnostic message from the per-status catalog
// of the adapter that produced it.
type APIError struct {
	// Platform identifies the channel that reported the error
	Platform PlatformCode
	// StatusCode is the HTTP status the platform answered with
	StatusCode int
	// Message is the diagnostic text for this failure mode
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("channel: %s API error (HTTP %d): %s", e.Platform, e.StatusCode, e.Message)
}

// ---------------------------------------------------------------------------
// NetworkError
// ---------------------------------------------------------------------------

// NetworkError is a transport-level failure (timeout, DNS, connection reset)
// that never reached the platform. It carries no HTTP status and names the
// configured base URL so misconfiguration is visible in the message. It is
// kept distinct from APIError so callers can choose to retry.
type NetworkError struct {
	// Platform identifies the channel the request was for
	Platform PlatformCode
	// BaseURL is the configured base URL the request targeted
	BaseURL string
	// Err is the underlying transport error
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("channel: %s unreachable at %s: %v", e.Platform, e.BaseURL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ---------------------------------------------------------------------------
// Classification helpers
// ---------------------------------------------------------------------------

// IsRetryable reports whether the caller may reasonably retry the operation.
// No retry is performed anywhere inside this subsystem; the decision belongs
// entirely to the job orchestrator.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 503:
			return true
		}
	}
	return false
}

// IsAuthError reports whether the failure was an authentication problem.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
