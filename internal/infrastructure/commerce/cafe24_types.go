package commerce

import "encoding/json"

// ---------------------------------------------------------------------------
// Cafe24 wire types
// ---------------------------------------------------------------------------

// Cafe24TokenResponse is the response of the OAuth token endpoint.
type Cafe24TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	// RefreshToken is present when the platform rotates the refresh token
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Cafe24OrderListResponse is the response for GET /api/v2/admin/orders.
type Cafe24OrderListResponse struct {
	Orders []Cafe24Order `json:"orders"`
}

// Cafe24Order represents an order from the Cafe24 admin API.
type Cafe24Order struct {
	OrderID       string            `json:"order_id"`
	OrderDate     string            `json:"order_date"` // RFC3339
	OrderStatus   string            `json:"order_status"`
	PaymentAmount string            `json:"payment_amount"` // decimal string
	DiscountPrice string            `json:"discount_price"` // decimal string
	ShippingFee   string            `json:"shipping_fee"`   // decimal string
	Buyer         *Cafe24Buyer      `json:"buyer,omitempty"`
	Receiver      *Cafe24Receiver   `json:"receiver,omitempty"`
	Items         []Cafe24OrderItem `json:"items"`
}

// Cafe24Buyer holds the orderer fields.
type Cafe24Buyer struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Cellphone string `json:"cellphone,omitempty"`
}

// Cafe24Receiver holds the recipient fields.
type Cafe24Receiver struct {
	Name         string `json:"name"`
	Cellphone    string `json:"cellphone,omitempty"`
	ZipCode      string `json:"zipcode,omitempty"`
	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
	ShippingCode string `json:"shipping_code,omitempty"`
}

// Cafe24OrderItem is one order line.
type Cafe24OrderItem struct {
	ProductCode   string `json:"product_code"`
	VariantCode   string `json:"variant_code,omitempty"`
	ProductName   string `json:"product_name"`
	OptionValue   string `json:"option_value,omitempty"`
	Quantity      *int   `json:"quantity,omitempty"`
	ProductPrice  string `json:"product_price,omitempty"`  // decimal string
	DiscountPrice string `json:"discount_price,omitempty"` // decimal string
}

// Cafe24SettlementResponse is the response for the settlements endpoint.
type Cafe24SettlementResponse struct {
	Settlement Cafe24Settlement `json:"settlement"`
}

// Cafe24Settlement is one settlement aggregate.
type Cafe24Settlement struct {
	TotalSales      string `json:"total_sales"`      // decimal string
	TotalCommission string `json:"total_commission"` // decimal string
	NetAmount       string `json:"net_amount"`       // decimal string
	OrderCount      int    `json:"order_count"`
}

// Cafe24WebhookPayload is the push notification envelope.
type Cafe24WebhookPayload struct {
	EventNo  int             `json:"event_no"`
	Resource json.RawMessage `json:"resource,omitempty"`
}
