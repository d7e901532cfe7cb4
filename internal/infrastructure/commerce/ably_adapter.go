package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// Constants for the Ably partner API
const (
	// maxAblyResponseSize limits the response body size to prevent memory exhaustion
	maxAblyResponseSize = 10 * 1024 * 1024 // 10MB max response
	// ablyOrderPageSize is the fixed page size for order and claim listings
	ablyOrderPageSize = 50
	// ablyGoodsPageSize is the fixed page size for the product-status listing
	ablyGoodsPageSize = 100
	// ablyDateLayout is the query-parameter date format
	ablyDateLayout = "2006-01-02"
)

// ablyOrderStatusFilter is the ingestion allow-list: only orders in these
// native lifecycle states are fetched at all. The filter is applied
// server-side through the status query parameter, never client-side.
var ablyOrderStatusFilter = []string{"결제완료", "주문확인"}

// ablyErrorCatalog maps each documented HTTP failure status to its
// diagnostic text. The 403 text enumerates all three known causes because
// the platform response does not disambiguate them.
var ablyErrorCatalog = map[int]string{
	400: "malformed request or parameters; check date range and status values",
	401: "invalid or expired API key",
	403: "access denied: the server IP is not allow-listed, the key belongs to a different API agency, or a sub-account key was used where a master account is required",
	404: "endpoint not found; check the configured base path",
	429: "rate limited by the platform; back off before retrying",
	500: "platform internal error; transient, retry later",
	503: "platform temporarily unavailable; transient, retry later",
}

// AblyAdapter implements the channel.Adapter port for the Ably partner API.
// A fresh instance is constructed per synchronization job.
type AblyAdapter struct {
	config     *AblyConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAblyAdapter creates a new Ably adapter with the given configuration.
func NewAblyAdapter(config *AblyConfig, logger *zap.Logger) (*AblyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, channel.NewConfigError(channel.PlatformCodeAbly, "apiKey", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AblyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// PlatformCode returns the platform code this adapter handles.
func (a *AblyAdapter) PlatformCode() channel.PlatformCode {
	return channel.PlatformCodeAbly
}

// Authenticate is a no-op for the Ably platform: the static API key is the
// whole credential and was validated at construction, so there is no network
// work to skip. The method exists to honor the adapter contract.
func (a *AblyAdapter) Authenticate(_ context.Context) error {
	return nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// FetchOrders returns every order from since to now under the server-side
// status allow-list, following pagination until a short or empty page. A
// failed page fetch aborts the whole call; no page is silently dropped.
func (a *AblyAdapter) FetchOrders(ctx context.Context, since time.Time) ([]channel.Order, error) {
	statusParam := ""
	for i, s := range ablyOrderStatusFilter {
		if i > 0 {
			statusParam += ","
		}
		statusParam += s
	}

	var orders []channel.Order
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(ablyOrderPageSize))
		query.Set("startDate", since.Format(ablyDateLayout))
		query.Set("endDate", time.Now().Format(ablyDateLayout))
		query.Set("status", statusParam)

		respBody, err := a.doRequest(ctx, http.MethodGet, "/orders", query, nil)
		if err != nil {
			return nil, err
		}

		var resp AblyOrderListResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("ably: failed to parse order response: %w", err)
		}

		for i := range resp.Orders {
			orders = append(orders, convertAblyOrder(&resp.Orders[i]))
		}

		// A short or empty page means upstream pagination is exhausted.
		if len(resp.Orders) < ablyOrderPageSize {
			break
		}
	}
	return orders, nil
}

// ---------------------------------------------------------------------------
// Claim Operations
// ---------------------------------------------------------------------------

// FetchClaims returns every claim from since to now under the same
// pagination contract as FetchOrders. The claim API is read-only.
func (a *AblyAdapter) FetchClaims(ctx context.Context, since time.Time) ([]channel.Claim, error) {
	var claims []channel.Claim
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(ablyOrderPageSize))
		query.Set("startDate", since.Format(ablyDateLayout))
		query.Set("endDate", time.Now().Format(ablyDateLayout))

		respBody, err := a.doRequest(ctx, http.MethodGet, "/claims", query, nil)
		if err != nil {
			return nil, err
		}

		var resp AblyClaimListResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("ably: failed to parse claim response: %w", err)
		}

		for i := range resp.Claims {
			claims = append(claims, convertAblyClaim(&resp.Claims[i]))
		}

		if len(resp.Claims) < ablyOrderPageSize {
			break
		}
	}
	return claims, nil
}

// ---------------------------------------------------------------------------
// Sales Report
// ---------------------------------------------------------------------------

// FetchSalesReport returns one settlement aggregate for the period. Period
// boundaries are the platform's settlement cycle and are not normalized.
func (a *AblyAdapter) FetchSalesReport(ctx context.Context, period channel.Period) (*channel.SalesReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("startDate", period.From.Format(ablyDateLayout))
	query.Set("endDate", period.To.Format(ablyDateLayout))

	respBody, err := a.doRequest(ctx, http.MethodGet, "/settlements", query, nil)
	if err != nil {
		return nil, err
	}

	var resp AblySettlementResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("ably: failed to parse settlement response: %w", err)
	}

	return &channel.SalesReport{
		PlatformCode:    channel.PlatformCodeAbly,
		PeriodStart:     period.From,
		PeriodEnd:       period.To,
		TotalSales:      decimal.NewFromInt(resp.TotalSales),
		TotalCommission: decimal.NewFromInt(resp.TotalCommission),
		NetAmount:       decimal.NewFromInt(resp.NetAmount),
		OrderCount:      resp.OrderCount,
	}, nil
}

// ---------------------------------------------------------------------------
// Product Status
// ---------------------------------------------------------------------------

// FetchProductStatuses returns the listing state of every product, following
// pagination to the end.
func (a *AblyAdapter) FetchProductStatuses(ctx context.Context) ([]channel.ProductStatus, error) {
	var statuses []channel.ProductStatus
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(ablyGoodsPageSize))

		respBody, err := a.doRequest(ctx, http.MethodGet, "/goods", query, nil)
		if err != nil {
			return nil, err
		}

		var resp AblyGoodsListResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("ably: failed to parse goods response: %w", err)
		}

		for i := range resp.Goods {
			statuses = append(statuses, convertAblyGoods(&resp.Goods[i]))
		}

		if len(resp.Goods) < ablyGoodsPageSize {
			break
		}
	}
	return statuses, nil
}

// ---------------------------------------------------------------------------
// Webhook
// ---------------------------------------------------------------------------

// HandleWebhook processes a push notification. It is best-effort: unknown
// payload shapes are logged and dropped, never surfaced as errors.
func (a *AblyAdapter) HandleWebhook(_ context.Context, payload []byte) error {
	var event AblyWebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil || event.Event == "" {
		a.logger.Warn("ably: unrecognized webhook payload",
			zap.Int("bytes", len(payload)))
		return nil
	}
	a.logger.Info("ably: webhook received",
		zap.String("event", event.Event),
		zap.String("order_number", event.OrderNumber),
		zap.String("claim_number", event.ClaimNumber))
	return nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs one HTTP request against the configured base URL with
// the fixed credential header. Transport failures become NetworkError naming
// the base URL; platform-reported statuses become APIError from the catalog.
func (a *AblyAdapter) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	target := a.config.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ably: failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("ably: failed to create request: %w", err)
	}
	req.Header.Set(ablyAPIKeyHeader, a.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &channel.NetworkError{
			Platform: channel.PlatformCodeAbly,
			BaseURL:  a.config.BaseURL,
			Err:      err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxAblyResponseSize))
	if err != nil {
		return nil, &channel.NetworkError{
			Platform: channel.PlatformCodeAbly,
			BaseURL:  a.config.BaseURL,
			Err:      err,
		}
	}

	if resp.StatusCode >= 400 {
		return nil, ablyAPIError(resp.StatusCode)
	}
	return respBody, nil
}

// ablyAPIError builds an APIError from the per-status catalog.
func ablyAPIError(statusCode int) *channel.APIError {
	message, ok := ablyErrorCatalog[statusCode]
	if !ok {
		message = "unexpected platform error"
	}
	return &channel.APIError{
		Platform:   channel.PlatformCodeAbly,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// convertAblyOrder converts a raw Ably order to the canonical shape.
func convertAblyOrder(order *AblyOrder) channel.Order {
	out := channel.Order{
		ExternalOrderID: order.OrderNumber,
		PlatformCode:    channel.PlatformCodeAbly,
		Status:          channel.MapOrderStatus(order.Status),
		RawStatus:       order.Status,
		OrdererName:     order.OrdererName,
		OrdererPhone:    order.OrdererPhone,
		ReceiverName:    order.ReceiverName,
		ReceiverPhone:   order.ReceiverPhone,
		ReceiverAddress: order.ReceiverAddress,
		ReceiverZipCode: order.ReceiverZipCode,
		TotalAmount:     decimal.NewFromInt(order.TotalAmount),
		DiscountAmount:  decimal.NewFromInt(order.DiscountAmount),
		ShippingFee:     decimal.NewFromInt(order.ShippingFee),
		Items:           make([]channel.OrderItem, 0, len(order.Items)),
	}
	if t, err := time.Parse(time.RFC3339, order.OrderedAt); err == nil {
		out.OrderedAt = t
	}
	if order.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, order.PaidAt); err == nil {
			out.PaidAt = &t
		}
	}
	for i := range order.Items {
		out.Items = append(out.Items, convertAblyItem(&order.Items[i]))
	}
	return out
}

// convertAblyItem converts one order line. A malformed row missing quantity
// or price still produces a valid line item: quantity defaults to 1, price
// to 0.
func convertAblyItem(item *AblyOrderItem) channel.OrderItem {
	quantity := 1
	if item.Quantity != nil && *item.Quantity > 0 {
		quantity = *item.Quantity
	}
	unitPrice := decimal.Zero
	if item.UnitPrice != nil {
		unitPrice = decimal.NewFromInt(*item.UnitPrice)
	}
	return channel.OrderItem{
		ProductCode:    item.GoodsCode,
		OptionCode:     item.OptionCode,
		ProductName:    item.GoodsName,
		OptionName:     item.OptionName,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		DiscountAmount: decimal.NewFromInt(item.DiscountAmount),
	}
}

// convertAblyClaim converts a raw claim. ClaimStatus and ClaimReason pass
// through verbatim; the claim type maps through the fixed table with the
// CANCEL default.
func convertAblyClaim(claim *AblyClaim) channel.Claim {
	out := channel.Claim{
		ClaimID:         claim.ClaimNumber,
		ExternalOrderID: claim.OrderNumber,
		PlatformCode:    channel.PlatformCodeAbly,
		ClaimType:       channel.MapClaimType(claim.ClaimType),
		ClaimStatus:     claim.ClaimStatus,
		ClaimReason:     claim.ClaimReason,
	}
	if t, err := time.Parse(time.RFC3339, claim.RequestedAt); err == nil {
		out.RequestedAt = t
	}
	if claim.ProcessedAt != "" {
		if t, err := time.Parse(time.RFC3339, claim.ProcessedAt); err == nil {
			out.ProcessedAt = &t
		}
	}
	return out
}

// convertAblyGoods converts one product listing-state row.
func convertAblyGoods(goods *AblyGoods) channel.ProductStatus {
	out := channel.ProductStatus{
		GoodsNo:      goods.GoodsNo,
		ProductName:  goods.GoodsName,
		Status:       channel.ParseProductStatus(goods.Status),
		RawChannel:   goods.Channel,
		IsOwnChannel: channel.IsOwnChannel(goods.Channel),
	}
	if goods.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, goods.UpdatedAt); err == nil {
			out.UpdatedAt = t
		}
	}
	return out
}

// Ensure AblyAdapter implements the channel ports
var (
	_ channel.Adapter              = (*AblyAdapter)(nil)
	_ channel.ClaimFetcher         = (*AblyAdapter)(nil)
	_ channel.ProductStatusFetcher = (*AblyAdapter)(nil)
)
