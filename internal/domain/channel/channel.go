package channel

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// PlatformCode represents an external commerce channel
// ---------------------------------------------------------------------------

// PlatformCode represents the external commerce channel a record came from.
type PlatformCode string

const (
	// PlatformCodeAbly represents the Ably partner API (static key auth)
	PlatformCodeAbly PlatformCode = "ABLY"
	// PlatformCodeCafe24 represents the Cafe24 admin API (OAuth refresh token)
	PlatformCodeCafe24 PlatformCode = "CAFE24"
	// PlatformCodeZigzag represents the Zigzag partner API (fixed partner-key header)
	PlatformCodeZigzag PlatformCode = "ZIGZAG"
	// PlatformCodeMakeshop represents the MakeShop admin, reached by the
	// browser-automation scrape service because the platform exposes no API
	PlatformCodeMakeshop PlatformCode = "MAKESHOP"
)

// IsValid returns true if the platform code is one of the supported channels.
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeAbly, PlatformCodeCafe24, PlatformCodeZigzag, PlatformCodeMakeshop:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode.
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the channel.
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeAbly:
		return "에이블리"
	case PlatformCodeCafe24:
		return "카페24"
	case PlatformCodeZigzag:
		return "지그재그"
	case PlatformCodeMakeshop:
		return "메이크샵"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// Canonical Order
// ---------------------------------------------------------------------------

// OrderStatus is the canonical order status vocabulary. It is intentionally an
// open string type: adapters map platform-native statuses through a fixed
// table, and any native value without a table entry passes through unchanged
// rather than being rejected, so an upstream vocabulary change never drops an
// order.
type OrderStatus string

const (
	// OrderStatusPaid indicates payment completed, not yet confirmed
	OrderStatusPaid OrderStatus = "PAID"
	// OrderStatusConfirmed indicates the seller confirmed the order
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusPreparing indicates the order is being prepared for shipment
	OrderStatusPreparing OrderStatus = "PREPARING"
	// OrderStatusShipping indicates the order is in transit
	OrderStatusShipping OrderStatus = "SHIPPING"
	// OrderStatusDelivered indicates delivery completed
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusPurchaseConfirmed indicates the buyer confirmed the purchase
	OrderStatusPurchaseConfirmed OrderStatus = "PURCHASE_CONFIRMED"
	// OrderStatusCancelled indicates the order was cancelled
	OrderStatusCancelled OrderStatus = "CANCELLED"
	// OrderStatusReturned indicates the order was returned
	OrderStatusReturned OrderStatus = "RETURNED"
	// OrderStatusExchanged indicates the order was exchanged
	OrderStatusExchanged OrderStatus = "EXCHANGED"
)

// String returns the string representation of OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// Order is the canonical order shape every adapter converges to.
// Identity is ExternalOrderID within a platform.
type Order struct {
	// ExternalOrderID is the order identifier on the source platform
	ExternalOrderID string
	// PlatformCode identifies which channel this order came from
	PlatformCode PlatformCode
	// Status is the canonical status (or the native string passed through)
	Status OrderStatus
	// RawStatus is the platform-native status string before mapping
	RawStatus string
	// OrdererName is the buyer's name
	OrdererName string
	// OrdererPhone is the buyer's phone number
	OrdererPhone string
	// ReceiverName is the recipient's name
	ReceiverName string
	// ReceiverPhone is the recipient's phone number
	ReceiverPhone string
	// ReceiverAddress is the delivery address
	ReceiverAddress string
	// ReceiverZipCode is the delivery postal code
	ReceiverZipCode string
	// TotalAmount is the amount the buyer paid
	TotalAmount decimal.Decimal
	// DiscountAmount is the total discount applied to the order
	DiscountAmount decimal.Decimal
	// ShippingFee is the shipping fee
	ShippingFee decimal.Decimal
	// Items contains the order line items in platform order
	Items []OrderItem
	// OrderedAt is when the order was placed on the platform
	OrderedAt time.Time
	// PaidAt is when the payment was received
	PaidAt *time.Time
}

// OrderItem is a canonical order line item. The mapping fields MappedErpSku
// and IsMapped are filled in by a separate SKU mapping step, never by the
// adapters themselves.
type OrderItem struct {
	// ProductCode is the product identifier on the source platform
	ProductCode string
	// OptionCode is the option/variant identifier on the source platform
	OptionCode string
	// ProductName is the product name
	ProductName string
	// OptionName is the size/option text
	OptionName string
	// Quantity is the ordered quantity (defaults to 1 on a malformed row)
	Quantity int
	// UnitPrice is the unit price (defaults to 0 on a malformed row)
	UnitPrice decimal.Decimal
	// DiscountAmount is the discount applied to this line
	DiscountAmount decimal.Decimal
	// MappedErpSku is the internal SKU resolved by the mapping step
	MappedErpSku string
	// IsMapped indicates whether an internal SKU mapping was found
	IsMapped bool
}

// ---------------------------------------------------------------------------
// Canonical Claim
// ---------------------------------------------------------------------------

// ClaimType is the closed set of claim kinds.
type ClaimType string

const (
	// ClaimTypeCancel represents an order cancellation claim
	ClaimTypeCancel ClaimType = "CANCEL"
	// ClaimTypeReturn represents a return claim
	ClaimTypeReturn ClaimType = "RETURN"
	// ClaimTypeExchange represents an exchange claim
	ClaimTypeExchange ClaimType = "EXCHANGE"
)

// IsValid returns true if the claim type is in the closed set.
func (t ClaimType) IsValid() bool {
	switch t {
	case ClaimTypeCancel, ClaimTypeReturn, ClaimTypeExchange:
		return true
	default:
		return false
	}
}

// String returns the string representation of ClaimType.
func (t ClaimType) String() string {
	return string(t)
}

// Claim is the canonical claim (cancel/return/exchange) shape.
// Identity is ClaimID within a platform. ClaimStatus and ClaimReason carry the
// platform-native strings verbatim.
type Claim struct {
	// ClaimID is the claim identifier on the source platform
	ClaimID string
	// ExternalOrderID is the order the claim belongs to
	ExternalOrderID string
	// PlatformCode identifies which channel this claim came from
	PlatformCode PlatformCode
	// ClaimType is the canonical claim kind
	ClaimType ClaimType
	// ClaimStatus is the platform-native claim status, passed through verbatim
	ClaimStatus string
	// ClaimReason is the platform-native claim reason, passed through verbatim
	ClaimReason string
	// RequestedAt is when the claim was requested; always set
	RequestedAt time.Time
	// ProcessedAt is when the claim was processed, if it has been
	ProcessedAt *time.Time
}

// ---------------------------------------------------------------------------
// SKU mapping
// ---------------------------------------------------------------------------

// SkuMapping is a manually curated correspondence between a platform's
// product/option code pair and an internal ERP SKU.
type SkuMapping struct {
	// PlatformCode identifies the channel the codes belong to
	PlatformCode PlatformCode
	// ProductCode is the platform product code
	ProductCode string
	// OptionCode is the platform option code
	OptionCode string
	// ErpSku is the internal stock-keeping unit
	ErpSku string
}

// MappingKey returns the composite lookup key for a product/option pair.
func MappingKey(productCode, optionCode string) string {
	return productCode + ":" + optionCode
}

// SkuMappingLookup resolves platform product/option codes to internal SKUs.
// A missing mapping is non-fatal: the item is simply flagged as unmapped.
type SkuMappingLookup interface {
	// Lookup returns the internal SKU for the given codes, or ok=false when
	// no mapping exists
	Lookup(platform PlatformCode, productCode, optionCode string) (sku string, ok bool)
}

// ---------------------------------------------------------------------------
// Sales aggregate
// ---------------------------------------------------------------------------

// SalesReport is a per-channel sales aggregate for one period. Period
// boundaries are platform-defined (settlement cycles differ per channel) and
// are deliberately not normalized here.
type SalesReport struct {
	// PlatformCode identifies the channel
	PlatformCode PlatformCode
	// PeriodStart is the inclusive start of the reporting period
	PeriodStart time.Time
	// PeriodEnd is the inclusive end of the reporting period
	PeriodEnd time.Time
	// TotalSales is the gross sales amount
	TotalSales decimal.Decimal
	// TotalCommission is the platform commission
	TotalCommission decimal.Decimal
	// NetAmount is sales minus commission
	NetAmount decimal.Decimal
	// OrderCount is the number of orders in the period
	OrderCount int
}

// ---------------------------------------------------------------------------
// Product status
// ---------------------------------------------------------------------------

// ProductStatusCode is the closed domain of product listing states.
type ProductStatusCode string

const (
	// ProductStatusOnSale 판매중
	ProductStatusOnSale ProductStatusCode = "판매중"
	// ProductStatusSoldOut 품절
	ProductStatusSoldOut ProductStatusCode = "품절"
	// ProductStatusSuspended 판매중지
	ProductStatusSuspended ProductStatusCode = "판매중지"
	// ProductStatusRejected 검수반려
	ProductStatusRejected ProductStatusCode = "검수반려"
	// ProductStatusInReview 검수중
	ProductStatusInReview ProductStatusCode = "검수중"
	// ProductStatusDraft 임시저장
	ProductStatusDraft ProductStatusCode = "임시저장"
	// ProductStatusDeleted 삭제
	ProductStatusDeleted ProductStatusCode = "삭제"
	// ProductStatusUnknown 알수없음
	ProductStatusUnknown ProductStatusCode = "알수없음"
)

// IsValid returns true if the status is in the closed domain.
func (s ProductStatusCode) IsValid() bool {
	switch s {
	case ProductStatusOnSale, ProductStatusSoldOut, ProductStatusSuspended,
		ProductStatusRejected, ProductStatusInReview, ProductStatusDraft,
		ProductStatusDeleted, ProductStatusUnknown:
		return true
	default:
		return false
	}
}

// ProductStatus is a per-product listing state record. Identity is GoodsNo.
type ProductStatus struct {
	// GoodsNo is the product number on the source platform
	GoodsNo string
	// ProductName is the product name
	ProductName string
	// Status is the listing state
	Status ProductStatusCode
	// RawChannel is the platform-native channel field
	RawChannel string
	// IsOwnChannel is derived from a substring match on RawChannel
	IsOwnChannel bool
	// UpdatedAt is when the platform last changed the record
	UpdatedAt time.Time
}

// ---------------------------------------------------------------------------
// Fetch window
// ---------------------------------------------------------------------------

// ErrInvalidPeriod is returned when a report period is empty or inverted.
var ErrInvalidPeriod = errors.New("channel: period start must not be after period end")

// Period is a closed date range used for sales report fetches.
type Period struct {
	From time.Time
	To   time.Time
}

// Validate validates the period.
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() || p.From.After(p.To) {
		return ErrInvalidPeriod
	}
	return nil
}
