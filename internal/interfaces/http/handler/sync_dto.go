package handler

import "time"

// syncOrdersRequest is the body of POST /sync/orders
type syncOrdersRequest struct {
	Platform string    `json:"platform" binding:"required"`
	Since    time.Time `json:"since" binding:"required"`
}

// syncClaimsRequest is the body of POST /sync/claims
type syncClaimsRequest struct {
	Platform string    `json:"platform" binding:"required"`
	Since    time.Time `json:"since" binding:"required"`
}

// salesReportRequest is the body of POST /sync/sales-report
type salesReportRequest struct {
	Platform string    `json:"platform" binding:"required"`
	From     time.Time `json:"from" binding:"required"`
	To       time.Time `json:"to" binding:"required"`
}

// productStatusRequest is the body of POST /sync/product-statuses
type productStatusRequest struct {
	Platform string `json:"platform" binding:"required"`
}

// platformResponse describes one supported platform in API responses
type platformResponse struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Configured  bool   `json:"configured"`
}
