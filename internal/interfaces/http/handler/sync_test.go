package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerbridge/backend/internal/application/channelsync"
	"github.com/sellerbridge/backend/internal/domain/channel"
	"github.com/sellerbridge/backend/internal/infrastructure/commerce"
	"github.com/sellerbridge/backend/internal/infrastructure/mapping"
	"github.com/sellerbridge/backend/internal/interfaces/http/dto"
	"github.com/sellerbridge/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestAPI wires a real factory and sync service against a stub Ably
// upstream and returns the engine plus the configured secrets.
func newTestAPI(t *testing.T, upstream *httptest.Server) *gin.Engine {
	t.Helper()

	cipher, err := commerce.NewSecretCipher("handler-test-key")
	require.NoError(t, err)

	ablyBlob, err := cipher.Encrypt(map[string]string{
		"apiKey":  "test-key",
		"baseUrl": upstream.URL,
	})
	require.NoError(t, err)
	zigzagBlob, err := cipher.Encrypt(map[string]string{"partnerKey": "p"})
	require.NoError(t, err)
	secrets := map[string]string{
		"ABLY":   ablyBlob,
		"ZIGZAG": zigzagBlob,
	}

	store := mapping.NewInMemoryStore([]channel.SkuMapping{
		{PlatformCode: channel.PlatformCodeAbly, ProductCode: "P100", OptionCode: "OPT1", ErpSku: "SKU-001"},
	})
	factory := commerce.NewFactory(cipher, nil)
	service := channelsync.NewSyncService(factory, store, nil)

	engine, err := router.New(router.Config{},
		NewSystemHandler("sellerbridge-backend"),
		NewSyncHandler(service, secrets),
		NewWebhookHandler(service, secrets, nil),
		NewScrapeHandler(nil),
	)
	require.NoError(t, err)
	return engine
}

// stubAblyUpstream serves two order pages (50 then 10) and one claim page.
func stubAblyUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		count, prefix := 50, "A"
		if r.URL.Query().Get("page") != "1" {
			count, prefix = 10, "B"
		}
		resp := commerce.AblyOrderListResponse{}
		for i := 0; i < count; i++ {
			resp.Orders = append(resp.Orders, commerce.AblyOrder{
				OrderNumber: fmt.Sprintf("%s-%03d", prefix, i),
				Status:      "결제완료",
				OrderedAt:   "2026-08-27T10:00:00+09:00",
				Items: []commerce.AblyOrderItem{
					{GoodsCode: "P100", OptionCode: "OPT1", GoodsName: "티셔츠"},
				},
			})
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/claims", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(commerce.AblyClaimListResponse{Claims: []commerce.AblyClaim{
			{ClaimNumber: "C-1", OrderNumber: "A-001", ClaimType: "취소", RequestedAt: "2026-08-27T11:00:00+09:00"},
		}})
	})
	return httptest.NewServer(mux)
}

func doJSON(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSyncOrders_EndToEnd(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/sync/orders", gin.H{
		"platform": "ABLY",
		"since":    "2026-08-20T00:00:00Z",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	orders, ok := data["orders"].([]any)
	require.True(t, ok)
	assert.Len(t, orders, 60)
	assert.Equal(t, float64(60), data["mapped_item_count"])
	assert.Equal(t, float64(0), data["unmapped_item_count"])
	assert.NotEmpty(t, data["job_id"])
}

func TestSyncOrders_UnknownPlatform(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/sync/orders", gin.H{
		"platform": "COUPANG",
		"since":    "2026-08-20T00:00:00Z",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestSyncOrders_UnconfiguredPlatform(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	// CAFE24 is a valid platform but no secret blob is configured for it.
	w := doJSON(engine, http.MethodPost, "/api/v1/sync/orders", gin.H{
		"platform": "CAFE24",
		"since":    "2026-08-20T00:00:00Z",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
}

func TestSyncOrders_ValidationError(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/sync/orders", gin.H{"platform": "ABLY"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestSyncClaims_EndToEnd(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/sync/claims", gin.H{
		"platform": "ABLY",
		"since":    "2026-08-20T00:00:00Z",
	})

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	claims := data["claims"].([]any)
	assert.Len(t, claims, 1)
}

func TestSyncClaims_NotSupported(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/sync/claims", gin.H{
		"platform": "ZIGZAG",
		"since":    "2026-08-20T00:00:00Z",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeChannelNotSupported, decodeResponse(t, w).Error.Code)
}

func TestSalesReport_InvalidPeriod(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	// from after to: passes binding, fails domain validation.
	w := doJSON(engine, http.MethodPost, "/api/v1/sync/sales-report", gin.H{
		"platform": "ABLY",
		"from":     "2026-08-31T00:00:00Z",
		"to":       "2026-08-01T00:00:00Z",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, decodeResponse(t, w).Error.Code)
}

func TestListPlatforms(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodGet, "/api/v1/platforms", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.([]any)
	require.Len(t, data, 3)

	byCode := map[string]map[string]any{}
	for _, entry := range data {
		p := entry.(map[string]any)
		byCode[p["code"].(string)] = p
	}
	assert.Equal(t, true, byCode["ABLY"]["configured"])
	assert.Equal(t, false, byCode["CAFE24"]["configured"])
	assert.Equal(t, "에이블리", byCode["ABLY"]["display_name"])
}

func TestWebhook_Receive(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/webhooks/ABLY", gin.H{
		"event":        "order.created",
		"order_number": "A-001",
	})

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, true, data["received"])
}

func TestWebhook_UnknownPlatform(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/webhooks/COUPANG", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScrape_DisabledService(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodPost, "/api/v1/scrape/stock", nil)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrCodeScrapeFailed, decodeResponse(t, w).Error.Code)
}

func TestHealth(t *testing.T) {
	upstream := stubAblyUpstream(t)
	defer upstream.Close()
	engine := newTestAPI(t, upstream)

	w := doJSON(engine, http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "sellerbridge-backend", data["app"])
}
