package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/application/channelsync"
	"github.com/sellerbridge/backend/internal/domain/channel"
)

// WebhookHandler receives platform push notifications. Webhook processing is
// best-effort: adapters log unknown payload shapes instead of failing, so a
// 200 answer only means the payload was accepted for processing.
type WebhookHandler struct {
	BaseHandler
	service *channelsync.SyncService
	secrets map[string]string
	logger  *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *channelsync.SyncService, secrets map[string]string, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{service: service, secrets: secrets, logger: logger}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/:platform", h.Receive)
}

// Receive accepts a push notification from one platform
// POST /api/v1/webhooks/:platform
func (h *WebhookHandler) Receive(c *gin.Context) {
	platform := c.Param("platform")
	code := channel.PlatformCode(platform)
	if !code.IsValid() {
		h.BadRequest(c, "unknown platform: "+platform)
		return
	}

	secret, ok := h.secrets[platform]
	if !ok {
		h.NotFound(c, "no credentials configured for platform "+platform)
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "failed to read payload")
		return
	}

	if err := h.service.DispatchWebhook(c.Request.Context(), code, secret, payload); err != nil {
		// Only adapter construction can fail here; payload problems are
		// logged by the adapter and acknowledged.
		h.HandleChannelError(c, err)
		return
	}

	h.logger.Debug("webhook accepted",
		zap.String("platform", platform),
		zap.Int("payload_bytes", len(payload)))
	h.Success(c, gin.H{"received": true})
}
