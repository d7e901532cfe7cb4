package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellerbridge/backend/internal/domain/scrape"
	"github.com/sellerbridge/backend/internal/infrastructure/scraper"
	"github.com/sellerbridge/backend/internal/interfaces/http/dto"
)

// ScrapeHandler exposes the browser-automation scrape jobs for the channel
// without an API. Scrape failures are soft: the job answers 200 with
// success=false and diagnostic context instead of an HTTP error, because the
// failure usually describes the target page, not this service.
type ScrapeHandler struct {
	BaseHandler
	service *scraper.Service
}

// NewScrapeHandler creates a new ScrapeHandler. service may be nil when the
// scraper is disabled by configuration.
func NewScrapeHandler(service *scraper.Service) *ScrapeHandler {
	return &ScrapeHandler{service: service}
}

// RegisterRoutes registers scrape routes
func (h *ScrapeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/scrape")
	{
		group.POST("/stock", h.run(scrape.ReportTypeStock))
		group.POST("/orders", h.run(scrape.ReportTypeOrder))
		group.POST("/product-statuses", h.run(scrape.ReportTypeProductStatus))
	}
}

// run builds the handler for one report type.
func (h *ScrapeHandler) run(reportType scrape.ReportType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.service == nil {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeScrapeFailed, "scraper is disabled by configuration")
			return
		}

		var result scrape.Result
		switch reportType {
		case scrape.ReportTypeStock:
			result = h.service.ScrapeStock(c.Request.Context())
		case scrape.ReportTypeOrder:
			result = h.service.ScrapeOrders(c.Request.Context())
		case scrape.ReportTypeProductStatus:
			result = h.service.ScrapeProductStatus(c.Request.Context())
		}

		c.JSON(http.StatusOK, result)
	}
}
