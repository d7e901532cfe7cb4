package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// Constants for the Cafe24 admin API
const (
	// maxCafe24ResponseSize limits the response body size
	maxCafe24ResponseSize = 10 * 1024 * 1024
	// cafe24TokenPath is the OAuth token endpoint path
	cafe24TokenPath = "/api/v2/oauth/token"
	// cafe24OrderPageSize is the fixed limit for order listings
	cafe24OrderPageSize = 50
	// cafe24DateLayout is the query-parameter date format
	cafe24DateLayout = "2006-01-02"
	// cafe24ExpirySafetyMargin is subtracted from expires_in so a token is
	// refreshed before it lapses mid-request
	cafe24ExpirySafetyMargin = 60 * time.Second
)

// Cafe24Adapter implements the channel.Adapter port for the Cafe24 admin API.
// Token state lives only in the instance: a fresh adapter is constructed per
// synchronization job and never assumes a token survived a previous job.
type Cafe24Adapter struct {
	config     *Cafe24Config
	httpClient *http.Client
	logger     *zap.Logger

	// accessToken and tokenExpiry are mutated exclusively by Authenticate
	accessToken string
	tokenExpiry time.Time

	// now is injectable for expiry tests
	now func() time.Time
}

// NewCafe24Adapter creates a new Cafe24 adapter with the given configuration.
func NewCafe24Adapter(config *Cafe24Config, logger *zap.Logger) (*Cafe24Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, channel.NewConfigError(channel.PlatformCodeCafe24, "", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cafe24Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}, nil
}

// PlatformCode returns the platform code this adapter handles.
func (a *Cafe24Adapter) PlatformCode() channel.PlatformCode {
	return channel.PlatformCodeCafe24
}

// ---------------------------------------------------------------------------
// Authentication
// ---------------------------------------------------------------------------

// Authenticate performs the refresh-token exchange unless the cached access
// token's expiry is still in the future, in which case it returns without
// network work. A rotated refresh token in the response is logged but not
// persisted: this subsystem holds token state in instance memory only, so
// subsequent jobs keep using the configured token until it is re-issued
// out-of-band.
func (a *Cafe24Adapter) Authenticate(ctx context.Context) error {
	if a.accessToken != "" && a.now().Before(a.tokenExpiry) {
		return nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", a.config.RefreshToken)

	target := a.config.BaseURL() + cafe24TokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("cafe24: failed to create token request: %w", err)
	}
	req.SetBasicAuth(a.config.ClientID, a.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return &channel.NetworkError{
			Platform: channel.PlatformCodeCafe24,
			BaseURL:  a.config.BaseURL(),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCafe24ResponseSize))
	if err != nil {
		return &channel.NetworkError{
			Platform: channel.PlatformCodeCafe24,
			BaseURL:  a.config.BaseURL(),
			Err:      err,
		}
	}

	// Any non-2xx refresh response fails immediately; the refresh token is
	// the only recovery path and retrying with the same one cannot help.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &channel.APIError{
			Platform:   channel.PlatformCodeCafe24,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("refresh token exchange rejected for mall %s; re-issue the refresh token", a.config.MallID),
		}
	}

	var token Cafe24TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("cafe24: failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("cafe24: token response contained no access token")
	}

	a.accessToken = token.AccessToken
	a.tokenExpiry = a.now().Add(time.Duration(token.ExpiresIn)*time.Second - cafe24ExpirySafetyMargin)

	if token.RefreshToken != "" && token.RefreshToken != a.config.RefreshToken {
		// Rotated refresh token. Persisting it is out of this subsystem's
		// reach; subsequent jobs will fail once the old one is revoked.
		a.logger.Warn("cafe24: refresh token rotated by platform, not persisted",
			zap.String("mall_id", a.config.MallID))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// FetchOrders returns every order from since to now, authenticating first
// and following offset pagination until a short or empty page.
func (a *Cafe24Adapter) FetchOrders(ctx context.Context, since time.Time) ([]channel.Order, error) {
	if err := a.Authenticate(ctx); err != nil {
		return nil, err
	}

	var orders []channel.Order
	for offset := 0; ; offset += cafe24OrderPageSize {
		query := url.Values{}
		query.Set("start_date", since.Format(cafe24DateLayout))
		query.Set("end_date", a.now().Format(cafe24DateLayout))
		query.Set("limit", strconv.Itoa(cafe24OrderPageSize))
		query.Set("offset", strconv.Itoa(offset))
		query.Set("embed", "items,buyer,receivers")

		respBody, err := a.doRequest(ctx, http.MethodGet, "/api/v2/admin/orders", query)
		if err != nil {
			return nil, err
		}

		var resp Cafe24OrderListResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("cafe24: failed to parse order response: %w", err)
		}

		for i := range resp.Orders {
			orders = append(orders, convertCafe24Order(&resp.Orders[i]))
		}

		if len(resp.Orders) < cafe24OrderPageSize {
			break
		}
	}
	return orders, nil
}

// ---------------------------------------------------------------------------
// Sales Report
// ---------------------------------------------------------------------------

// FetchSalesReport returns one settlement aggregate for the period.
func (a *Cafe24Adapter) FetchSalesReport(ctx context.Context, period channel.Period) (*channel.SalesReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if err := a.Authenticate(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("start_date", period.From.Format(cafe24DateLayout))
	query.Set("end_date", period.To.Format(cafe24DateLayout))

	respBody, err := a.doRequest(ctx, http.MethodGet, "/api/v2/admin/settlements", query)
	if err != nil {
		return nil, err
	}

	var resp Cafe24SettlementResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("cafe24: failed to parse settlement response: %w", err)
	}

	return &channel.SalesReport{
		PlatformCode:    channel.PlatformCodeCafe24,
		PeriodStart:     period.From,
		PeriodEnd:       period.To,
		TotalSales:      parseDecimal(resp.Settlement.TotalSales),
		TotalCommission: parseDecimal(resp.Settlement.TotalCommission),
		NetAmount:       parseDecimal(resp.Settlement.NetAmount),
		OrderCount:      resp.Settlement.OrderCount,
	}, nil
}

// ---------------------------------------------------------------------------
// Webhook
// ---------------------------------------------------------------------------

// HandleWebhook processes a Cafe24 push notification. Best-effort: unknown
// shapes are logged and dropped.
func (a *Cafe24Adapter) HandleWebhook(_ context.Context, payload []byte) error {
	var event Cafe24WebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil || event.EventNo == 0 {
		a.logger.Warn("cafe24: unrecognized webhook payload",
			zap.Int("bytes", len(payload)))
		return nil
	}
	a.logger.Info("cafe24: webhook received",
		zap.Int("event_no", event.EventNo),
		zap.String("mall_id", a.config.MallID))
	return nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs one Bearer-authenticated request. Authenticate must
// have been called first; fetch operations enforce that.
func (a *Cafe24Adapter) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	target := a.config.BaseURL() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("cafe24: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &channel.NetworkError{
			Platform: channel.PlatformCodeCafe24,
			BaseURL:  a.config.BaseURL(),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCafe24ResponseSize))
	if err != nil {
		return nil, &channel.NetworkError{
			Platform: channel.PlatformCodeCafe24,
			BaseURL:  a.config.BaseURL(),
			Err:      err,
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &channel.APIError{
			Platform:   channel.PlatformCodeCafe24,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("admin API request failed: %s", strings.TrimSpace(string(body))),
		}
	}
	return body, nil
}

// convertCafe24Order converts a raw Cafe24 order to the canonical shape.
func convertCafe24Order(order *Cafe24Order) channel.Order {
	out := channel.Order{
		ExternalOrderID: order.OrderID,
		PlatformCode:    channel.PlatformCodeCafe24,
		Status:          channel.MapOrderStatus(order.OrderStatus),
		RawStatus:       order.OrderStatus,
		TotalAmount:     parseDecimal(order.PaymentAmount),
		DiscountAmount:  parseDecimal(order.DiscountPrice),
		ShippingFee:     parseDecimal(order.ShippingFee),
		Items:           make([]channel.OrderItem, 0, len(order.Items)),
	}
	if t, err := time.Parse(time.RFC3339, order.OrderDate); err == nil {
		out.OrderedAt = t
	}
	if order.Buyer != nil {
		out.OrdererName = order.Buyer.Name
		out.OrdererPhone = order.Buyer.Cellphone
		if out.OrdererPhone == "" {
			out.OrdererPhone = order.Buyer.Phone
		}
	}
	if order.Receiver != nil {
		out.ReceiverName = order.Receiver.Name
		out.ReceiverPhone = order.Receiver.Cellphone
		out.ReceiverZipCode = order.Receiver.ZipCode
		out.ReceiverAddress = strings.TrimSpace(order.Receiver.Address1 + " " + order.Receiver.Address2)
	}
	for i := range order.Items {
		out.Items = append(out.Items, convertCafe24Item(&order.Items[i]))
	}
	return out
}

// convertCafe24Item converts one order line with the malformed-row defaults.
func convertCafe24Item(item *Cafe24OrderItem) channel.OrderItem {
	quantity := 1
	if item.Quantity != nil && *item.Quantity > 0 {
		quantity = *item.Quantity
	}
	return channel.OrderItem{
		ProductCode:    item.ProductCode,
		OptionCode:     item.VariantCode,
		ProductName:    item.ProductName,
		OptionName:     item.OptionValue,
		Quantity:       quantity,
		UnitPrice:      parseDecimal(item.ProductPrice),
		DiscountAmount: parseDecimal(item.DiscountPrice),
	}
}

// parseDecimal parses a platform decimal string, defaulting to zero.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ensure Cafe24Adapter implements the channel port
var _ channel.Adapter = (*Cafe24Adapter)(nil)
