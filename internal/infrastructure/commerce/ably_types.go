package commerce

// ---------------------------------------------------------------------------
// Ably wire types
// ---------------------------------------------------------------------------

// AblyOrderListResponse is the response for GET /orders.
type AblyOrderListResponse struct {
	Orders []AblyOrder `json:"orders"`
}

// AblyOrder represents an order row from the Ably partner API.
type AblyOrder struct {
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"` // Korean status string
	OrdererName     string          `json:"orderer_name"`
	OrdererPhone    string          `json:"orderer_phone,omitempty"`
	ReceiverName    string          `json:"receiver_name"`
	ReceiverPhone   string          `json:"receiver_phone,omitempty"`
	ReceiverAddress string          `json:"receiver_address,omitempty"`
	ReceiverZipCode string          `json:"receiver_zip_code,omitempty"`
	TotalAmount     int64           `json:"total_amount"`    // KRW
	DiscountAmount  int64           `json:"discount_amount"` // KRW
	ShippingFee     int64           `json:"shipping_fee"`    // KRW
	OrderedAt       string          `json:"ordered_at"` // RFC3339
	PaidAt          string          `json:"paid_at,omitempty"`
	Items           []AblyOrderItem `json:"items"`
}

// AblyOrderItem is one order line. Quantity and UnitPrice are pointers
// because upstream occasionally omits them on option-less legacy rows.
type AblyOrderItem struct {
	GoodsCode      string `json:"goods_code"`
	OptionCode     string `json:"option_code,omitempty"`
	GoodsName      string `json:"goods_name"`
	OptionName     string `json:"option_name,omitempty"`
	Quantity       *int   `json:"quantity,omitempty"`
	UnitPrice      *int64 `json:"unit_price,omitempty"` // KRW
	DiscountAmount int64  `json:"discount_amount"`      // KRW
}

// AblyClaimListResponse is the response for GET /claims.
type AblyClaimListResponse struct {
	Claims []AblyClaim `json:"claims"`
}

// AblyClaim represents a claim row from the Ably partner API. The claim API
// is read-only by platform design.
type AblyClaim struct {
	ClaimNumber string `json:"claim_number"`
	OrderNumber string `json:"order_number"`
	ClaimType   string `json:"claim_type"`   // Korean or English
	ClaimStatus string `json:"claim_status"` // passed through verbatim
	ClaimReason string `json:"claim_reason,omitempty"`
	RequestedAt string `json:"requested_at"` // RFC3339
	ProcessedAt string `json:"processed_at,omitempty"`
}

// AblySettlementResponse is the response for GET /settlements.
type AblySettlementResponse struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalSales      int64  `json:"total_sales"`      // KRW
	TotalCommission int64  `json:"total_commission"` // KRW
	NetAmount       int64  `json:"net_amount"`       // KRW
	OrderCount      int    `json:"order_count"`
}

// AblyGoodsListResponse is the response for GET /goods.
type AblyGoodsListResponse struct {
	Goods []AblyGoods `json:"goods"`
}

// AblyGoods is one product listing-state row.
type AblyGoods struct {
	GoodsNo   string `json:"goods_no"`
	GoodsName string `json:"goods_name"`
	Status    string `json:"status"`  // Korean listing state
	Channel   string `json:"channel"` // free-text channel field
	UpdatedAt string `json:"updated_at,omitempty"`
}

// AblyWebhookPayload is the push notification envelope. Only the fields
// needed for dispatch are modeled; unknown shapes are logged and dropped.
type AblyWebhookPayload struct {
	Event       string `json:"event"`
	OrderNumber string `json:"order_number,omitempty"`
	ClaimNumber string `json:"claim_number,omitempty"`
	OccurredAt  string `json:"occurred_at,omitempty"`
}
