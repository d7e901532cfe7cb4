package dto

import (
	"errors"
	"net/http"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Channel error codes
const (
	// ErrCodeChannelConfig is used when a channel is misconfigured
	ErrCodeChannelConfig = "ERR_CHANNEL_CONFIG"
	// ErrCodeChannelNotSupported is used when the channel lacks the
	// requested capability
	ErrCodeChannelNotSupported = "ERR_CHANNEL_NOT_SUPPORTED"
	// ErrCodeUpstreamAPI is used when the platform answered with an error
	ErrCodeUpstreamAPI = "ERR_UPSTREAM_API"
	// ErrCodeUpstreamUnreachable is used when the platform never answered
	ErrCodeUpstreamUnreachable = "ERR_UPSTREAM_UNREACHABLE"
	// ErrCodeScrapeFailed is used when a scrape job did not complete
	ErrCodeScrapeFailed = "ERR_SCRAPE_FAILED"
)

// httpStatusByCode maps API error codes to HTTP status codes
var httpStatusByCode = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeChannelConfig:       http.StatusUnprocessableEntity,
	ErrCodeChannelNotSupported: http.StatusUnprocessableEntity,
	ErrCodeUpstreamAPI:         http.StatusBadGateway,
	ErrCodeUpstreamUnreachable: http.StatusBadGateway,
	ErrCodeScrapeFailed:        http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an API error code
func GetHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MapChannelError translates a channel-layer error into an API error code
// and message. Configuration problems are the caller's to fix; platform and
// transport failures surface as upstream errors.
func MapChannelError(err error) (code string, message string) {
	if errors.Is(err, channel.ErrClaimsNotSupported) || errors.Is(err, channel.ErrProductStatusNotSupported) {
		return ErrCodeChannelNotSupported, err.Error()
	}

	var configErr *channel.ConfigError
	if errors.As(err, &configErr) {
		return ErrCodeChannelConfig, configErr.Error()
	}

	var apiErr *channel.APIError
	if errors.As(err, &apiErr) {
		return ErrCodeUpstreamAPI, apiErr.Error()
	}

	var netErr *channel.NetworkError
	if errors.As(err, &netErr) {
		return ErrCodeUpstreamUnreachable, netErr.Error()
	}

	if errors.Is(err, channel.ErrInvalidPeriod) {
		return ErrCodeBadRequest, err.Error()
	}

	return ErrCodeInternal, "An unexpected error occurred"
}
