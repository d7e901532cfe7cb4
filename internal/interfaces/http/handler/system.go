package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler exposes health and version endpoints
type SystemHandler struct {
	BaseHandler
	appName   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName string) *SystemHandler {
	return &SystemHandler{appName: appName, startedAt: time.Now()}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health answers a liveness probe
// GET /api/v1/health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"app":    h.appName,
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}
