package channel

import "strings"

// orderStatusTable maps platform-native Korean order statuses to the
// canonical vocabulary. The table is fixed; values outside it pass through
// unchanged so an upstream vocabulary change never drops an order.
var orderStatusTable = map[string]OrderStatus{
	"결제완료":  OrderStatusPaid,
	"입금확인":  OrderStatusPaid,
	"주문확인":  OrderStatusConfirmed,
	"상품준비중": OrderStatusPreparing,
	"배송준비중": OrderStatusPreparing,
	"배송중":   OrderStatusShipping,
	"배송완료":  OrderStatusDelivered,
	"구매확정":  OrderStatusPurchaseConfirmed,
	"취소완료":  OrderStatusCancelled,
	"반품완료":  OrderStatusReturned,
	"교환완료":  OrderStatusExchanged,
}

// MapOrderStatus maps a platform-native order status to the canonical
// vocabulary. The mapping is total: an unknown native value is returned
// unchanged, never rejected.
func MapOrderStatus(native string) OrderStatus {
	if mapped, ok := orderStatusTable[strings.TrimSpace(native)]; ok {
		return mapped
	}
	return OrderStatus(native)
}

// claimTypeTable maps platform-native claim-type strings (Korean and
// English) to the canonical closed set.
var claimTypeTable = map[string]ClaimType{
	"취소":       ClaimTypeCancel,
	"주문취소":     ClaimTypeCancel,
	"cancel":   ClaimTypeCancel,
	"CANCEL":   ClaimTypeCancel,
	"반품":       ClaimTypeReturn,
	"return":   ClaimTypeReturn,
	"RETURN":   ClaimTypeReturn,
	"교환":       ClaimTypeExchange,
	"exchange": ClaimTypeExchange,
	"EXCHANGE": ClaimTypeExchange,
}

// MapClaimType maps a platform-native claim-type string to the canonical
// closed set. The mapping is total: any unrecognized value defaults to
// CANCEL, which may misclassify genuine return/exchange claims if a platform
// introduces new vocabulary.
func MapClaimType(native string) ClaimType {
	if mapped, ok := claimTypeTable[strings.TrimSpace(native)]; ok {
		return mapped
	}
	return ClaimTypeCancel
}

// ParseProductStatus parses a platform-native listing state into the closed
// product status domain, defaulting to 알수없음.
func ParseProductStatus(native string) ProductStatusCode {
	s := ProductStatusCode(strings.TrimSpace(native))
	if s.IsValid() {
		return s
	}
	return ProductStatusUnknown
}

// ownChannelMarker is the substring of the raw channel field that marks a
// product as listed on the platform's own channel.
const ownChannelMarker = "자사"

// IsOwnChannel derives the own-channel flag from a substring match on the
// platform's raw channel field. The field is free text upstream, so a
// substring match is the only stable signal available.
func IsOwnChannel(rawChannel string) bool {
	return strings.Contains(rawChannel, ownChannelMarker)
}
