package commerce

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// ZigzagConfig holds configuration for the Zigzag partner API. The whole
// credential is a static partner key carried on every request; no token
// endpoint exists.
type ZigzagConfig struct {
	// PartnerKey is the fixed credential header value
	PartnerKey string
	// BaseURL is the API base URL
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ZigzagProductionBaseURL is the production partner API endpoint
	ZigzagProductionBaseURL = "https://partner-api.zigzag.kr/v1"
	// zigzagPartnerKeyHeader carries the static credential
	zigzagPartnerKeyHeader = "X-Partner-Key"
	// zigzagDefaultTimeoutSeconds is the per-request timeout
	zigzagDefaultTimeoutSeconds = 15
)

// ErrZigzagConfigMissingPartnerKey indicates the partner key is absent.
var ErrZigzagConfigMissingPartnerKey = errors.New("zigzag: partner key is required")

// Validate validates the Zigzag configuration and fills defaults.
func (c *ZigzagConfig) Validate() error {
	if c.PartnerKey == "" {
		return ErrZigzagConfigMissingPartnerKey
	}
	if c.BaseURL == "" {
		c.BaseURL = ZigzagProductionBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = zigzagDefaultTimeoutSeconds
	}
	return nil
}

// ZigzagAdapter implements the channel.Adapter port for the Zigzag partner
// API. The fetch bodies are placeholders pending the partner API rollout for
// this account tier; the calling contract is honored so orchestration code
// never special-cases the platform.
type ZigzagAdapter struct {
	config *ZigzagConfig
	logger *zap.Logger
}

// NewZigzagAdapter creates a new Zigzag adapter with the given configuration.
func NewZigzagAdapter(config *ZigzagConfig, logger *zap.Logger) (*ZigzagAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, channel.NewConfigError(channel.PlatformCodeZigzag, "partnerKey", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZigzagAdapter{config: config, logger: logger}, nil
}

// PlatformCode returns the platform code this adapter handles.
func (a *ZigzagAdapter) PlatformCode() channel.PlatformCode {
	return channel.PlatformCodeZigzag
}

// Authenticate is a no-op: the static partner key is the whole credential.
func (a *ZigzagAdapter) Authenticate(_ context.Context) error {
	return nil
}

// FetchOrders returns no orders yet. Placeholder pending the partner order
// API; always callable per the adapter contract.
func (a *ZigzagAdapter) FetchOrders(_ context.Context, since time.Time) ([]channel.Order, error) {
	a.logger.Debug("zigzag: order fetch not yet available for this account tier",
		zap.Time("since", since))
	return []channel.Order{}, nil
}

// FetchSalesReport returns an empty aggregate for the period. Placeholder
// pending the partner settlement API.
func (a *ZigzagAdapter) FetchSalesReport(_ context.Context, period channel.Period) (*channel.SalesReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return &channel.SalesReport{
		PlatformCode: channel.PlatformCodeZigzag,
		PeriodStart:  period.From,
		PeriodEnd:    period.To,
	}, nil
}

// HandleWebhook logs the notification. Best-effort by contract.
func (a *ZigzagAdapter) HandleWebhook(_ context.Context, payload []byte) error {
	a.logger.Info("zigzag: webhook received", zap.Int("bytes", len(payload)))
	return nil
}

// Ensure ZigzagAdapter implements the channel port
var _ channel.Adapter = (*ZigzagAdapter)(nil)
