package channelsync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// SyncService orchestrates synchronization jobs against external commerce
// channels. Every job builds a fresh adapter through the factory, so no token
// or connection state survives across jobs.
type SyncService struct {
	factory  channel.AdapterFactory
	mappings channel.SkuMappingLookup
	logger   *zap.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(factory channel.AdapterFactory, mappings channel.SkuMappingLookup, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		factory:  factory,
		mappings: mappings,
		logger:   logger,
	}
}

// SupportedPlatforms returns the platform codes the factory can build.
func (s *SyncService) SupportedPlatforms() []channel.PlatformCode {
	return s.factory.Supported()
}

// ---------------------------------------------------------------------------
// Order synchronization
// ---------------------------------------------------------------------------

// SyncOrders fetches every order from since to now on one channel and
// resolves internal SKU mappings on the line items. A page failure upstream
// aborts the whole job; partial pages are never returned.
func (s *SyncService) SyncOrders(
	ctx context.Context,
	platform channel.PlatformCode,
	encryptedSecret string,
	since time.Time,
) (*OrderSyncResult, error) {
	adapter, err := s.factory.Build(platform, encryptedSecret)
	if err != nil {
		return nil, err
	}
	if err := adapter.Authenticate(ctx); err != nil {
		return nil, err
	}

	orders, err := adapter.FetchOrders(ctx, since)
	if err != nil {
		return nil, err
	}

	result := &OrderSyncResult{
		JobID:    uuid.New(),
		Platform: platform,
		Since:    since,
		Orders:   orders,
	}
	for i := range result.Orders {
		mapped, unmapped := s.applyMappings(platform, result.Orders[i].Items)
		result.Orders[i].Items = mapped
		result.MappedItemCount += len(mapped) - unmapped
		result.UnmappedItemCount += unmapped
	}

	s.logger.Info("order sync complete",
		zap.String("job_id", result.JobID.String()),
		zap.String("platform", platform.String()),
		zap.Int("orders", len(result.Orders)),
		zap.Int("unmapped_items", result.UnmappedItemCount))
	return result, nil
}

// applyMappings resolves internal SKUs on order items. A missing mapping is
// non-fatal; the item is flagged unmapped and kept.
func (s *SyncService) applyMappings(platform channel.PlatformCode, items []channel.OrderItem) ([]channel.OrderItem, int) {
	unmapped := 0
	for i := range items {
		sku, ok := s.mappings.Lookup(platform, items[i].ProductCode, items[i].OptionCode)
		items[i].MappedErpSku = sku
		items[i].IsMapped = ok
		if !ok {
			unmapped++
		}
	}
	return items, unmapped
}

// ---------------------------------------------------------------------------
// Claim synchronization
// ---------------------------------------------------------------------------

// SyncClaims fetches cancel/return/exchange claims from since to now on one
// channel. Channels without a claim API return ErrClaimsNotSupported.
func (s *SyncService) SyncClaims(
	ctx context.Context,
	platform channel.PlatformCode,
	encryptedSecret string,
	since time.Time,
) (*ClaimSyncResult, error) {
	adapter, err := s.factory.Build(platform, encryptedSecret)
	if err != nil {
		return nil, err
	}

	fetcher, ok := adapter.(channel.ClaimFetcher)
	if !ok {
		return nil, channel.NewConfigError(platform, "claims", channel.ErrClaimsNotSupported)
	}

	if err := adapter.Authenticate(ctx); err != nil {
		return nil, err
	}
	claims, err := fetcher.FetchClaims(ctx, since)
	if err != nil {
		return nil, err
	}

	result := &ClaimSyncResult{JobID: uuid.New(), Platform: platform, Since: since, Claims: claims}
	s.logger.Info("claim sync complete",
		zap.String("job_id", result.JobID.String()),
		zap.String("platform", platform.String()),
		zap.Int("claims", len(claims)))
	return result, nil
}

// ---------------------------------------------------------------------------
// Sales report
// ---------------------------------------------------------------------------

// FetchSalesReport fetches one per-channel sales aggregate for a period.
// Period boundaries stay platform-defined and are not normalized here.
func (s *SyncService) FetchSalesReport(
	ctx context.Context,
	platform channel.PlatformCode,
	encryptedSecret string,
	period channel.Period,
) (*channel.SalesReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	adapter, err := s.factory.Build(platform, encryptedSecret)
	if err != nil {
		return nil, err
	}
	if err := adapter.Authenticate(ctx); err != nil {
		return nil, err
	}
	return adapter.FetchSalesReport(ctx, period)
}

// ---------------------------------------------------------------------------
// Product listing states
// ---------------------------------------------------------------------------

// SyncProductStatuses fetches the listing state of every product on one
// channel. Channels without a product-status API return a ConfigError.
func (s *SyncService) SyncProductStatuses(
	ctx context.Context,
	platform channel.PlatformCode,
	encryptedSecret string,
) ([]channel.ProductStatus, error) {
	adapter, err := s.factory.Build(platform, encryptedSecret)
	if err != nil {
		return nil, err
	}

	fetcher, ok := adapter.(channel.ProductStatusFetcher)
	if !ok {
		return nil, channel.NewConfigError(platform, "product_status", channel.ErrProductStatusNotSupported)
	}

	if err := adapter.Authenticate(ctx); err != nil {
		return nil, err
	}
	statuses, err := fetcher.FetchProductStatuses(ctx)
	if err != nil {
		return nil, err
	}

	ownChannel := 0
	for _, st := range statuses {
		if st.IsOwnChannel {
			ownChannel++
		}
	}
	s.logger.Info("product status sync complete",
		zap.String("platform", platform.String()),
		zap.Int("products", len(statuses)),
		zap.Int("own_channel", ownChannel))
	return statuses, nil
}

// ---------------------------------------------------------------------------
// Webhooks
// ---------------------------------------------------------------------------

// DispatchWebhook routes a platform push notification to the channel's
// adapter. Webhook handling is best-effort: adapters log unknown payload
// shapes instead of failing, so an error here means the adapter could not be
// built at all.
func (s *SyncService) DispatchWebhook(
	ctx context.Context,
	platform channel.PlatformCode,
	encryptedSecret string,
	payload []byte,
) error {
	adapter, err := s.factory.Build(platform, encryptedSecret)
	if err != nil {
		return err
	}
	return adapter.HandleWebhook(ctx, payload)
}
