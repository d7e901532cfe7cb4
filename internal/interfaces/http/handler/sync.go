package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sellerbridge/backend/internal/application/channelsync"
	"github.com/sellerbridge/backend/internal/domain/channel"
	"github.com/sellerbridge/backend/internal/interfaces/http/middleware"
)

// SyncHandler exposes on-demand synchronization jobs over HTTP. Channel
// credentials stay server-side: requests name a platform and the handler
// resolves that channel's encrypted secret blob from configuration.
type SyncHandler struct {
	BaseHandler
	service *channelsync.SyncService
	secrets map[string]string
}

// NewSyncHandler creates a new SyncHandler. secrets maps platform code to
// that channel's encrypted credential blob.
func NewSyncHandler(service *channelsync.SyncService, secrets map[string]string) *SyncHandler {
	return &SyncHandler{service: service, secrets: secrets}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/orders", h.SyncOrders)
		sync.POST("/claims", h.SyncClaims)
		sync.POST("/sales-report", h.SalesReport)
		sync.POST("/product-statuses", h.SyncProductStatuses)
	}
	rg.GET("/platforms", h.ListPlatforms)
}

// resolveChannel validates the platform tag and looks up its secret blob.
func (h *SyncHandler) resolveChannel(c *gin.Context, platform string) (channel.PlatformCode, string, bool) {
	code := channel.PlatformCode(platform)
	if !code.IsValid() {
		h.BadRequest(c, "unknown platform: "+platform)
		return "", "", false
	}
	secret, ok := h.secrets[platform]
	if !ok {
		h.NotFound(c, "no credentials configured for platform "+platform)
		return "", "", false
	}
	return code, secret, true
}

// SyncOrders runs an order synchronization job for one channel
// POST /api/v1/sync/orders
func (h *SyncHandler) SyncOrders(c *gin.Context) {
	var req syncOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	code, secret, ok := h.resolveChannel(c, req.Platform)
	if !ok {
		return
	}

	result, err := h.service.SyncOrders(c.Request.Context(), code, secret, req.Since)
	if err != nil {
		h.HandleChannelError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncClaims runs a claim synchronization job for one channel
// POST /api/v1/sync/claims
func (h *SyncHandler) SyncClaims(c *gin.Context) {
	var req syncClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	code, secret, ok := h.resolveChannel(c, req.Platform)
	if !ok {
		return
	}

	result, err := h.service.SyncClaims(c.Request.Context(), code, secret, req.Since)
	if err != nil {
		h.HandleChannelError(c, err)
		return
	}
	h.Success(c, result)
}

// SalesReport fetches a per-channel sales aggregate for a period
// POST /api/v1/sync/sales-report
func (h *SyncHandler) SalesReport(c *gin.Context) {
	var req salesReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	code, secret, ok := h.resolveChannel(c, req.Platform)
	if !ok {
		return
	}

	report, err := h.service.FetchSalesReport(c.Request.Context(), code, secret, channel.Period{From: req.From, To: req.To})
	if err != nil {
		h.HandleChannelError(c, err)
		return
	}
	h.Success(c, report)
}

// SyncProductStatuses fetches the listing state of every product on a channel
// POST /api/v1/sync/product-statuses
func (h *SyncHandler) SyncProductStatuses(c *gin.Context) {
	var req productStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	code, secret, ok := h.resolveChannel(c, req.Platform)
	if !ok {
		return
	}

	statuses, err := h.service.SyncProductStatuses(c.Request.Context(), code, secret)
	if err != nil {
		h.HandleChannelError(c, err)
		return
	}
	h.Success(c, statuses)
}

// ListPlatforms returns the platform codes with a registered adapter
// GET /api/v1/platforms
func (h *SyncHandler) ListPlatforms(c *gin.Context) {
	codes := h.service.SupportedPlatforms()
	platforms := make([]platformResponse, len(codes))
	for i, code := range codes {
		_, configured := h.secrets[code.String()]
		platforms[i] = platformResponse{
			Code:        code.String(),
			DisplayName: code.DisplayName(),
			Configured:  configured,
		}
	}
	h.Success(c, platforms)
}
