package channel

import (
	"context"
	"time"
)

// Adapter is the port interface every concrete channel adapter implements.
// Concrete implementations (Ably, Cafe24, Zigzag) live in the infrastructure
// layer and are constructed fresh per synchronization job: an adapter instance
// lives only for its job's duration and is discarded afterwards, so token
// state is never shared across jobs.
type Adapter interface {
	// PlatformCode returns the channel this adapter talks to
	PlatformCode() PlatformCode

	// Authenticate establishes or refreshes credentials. It is idempotent and
	// must skip network work when the current credentials are still valid.
	Authenticate(ctx context.Context) error

	// FetchOrders returns every order discoverable by upstream pagination
	// from since to now, concatenated in page-arrival order. A failure on any
	// page propagates and aborts the whole call; no page is silently dropped.
	FetchOrders(ctx context.Context, since time.Time) ([]Order, error)

	// FetchSalesReport returns one sales aggregate for the given period.
	FetchSalesReport(ctx context.Context, period Period) (*SalesReport, error)

	// HandleWebhook processes a platform push notification. It is
	// best-effort: unknown payload shapes are logged, never returned as
	// errors.
	HandleWebhook(ctx context.Context, payload []byte) error
}

// ClaimFetcher is the optional claim capability. Platforms that expose a
// claim API (read-only by platform design) additionally implement it; callers
// discover the capability with a type assertion.
type ClaimFetcher interface {
	// FetchClaims returns every claim from since to now under the same
	// pagination contract as Adapter.FetchOrders.
	FetchClaims(ctx context.Context, since time.Time) ([]Claim, error)
}

// ProductStatusFetcher is the optional product listing-state capability.
type ProductStatusFetcher interface {
	// FetchProductStatuses returns the listing state of every product,
	// following upstream pagination to the end.
	FetchProductStatuses(ctx context.Context) ([]ProductStatus, error)
}

// AdapterFactory builds a fresh adapter for one synchronization job from a
// platform tag and that channel's encrypted secret blob. An unrecognized tag
// fails with a ConfigError before any network activity.
type AdapterFactory interface {
	// Build decrypts the secret blob and constructs the concrete adapter
	Build(platform PlatformCode, encryptedSecret string) (Adapter, error)

	// Supported returns the platform codes with a registered constructor
	Supported() []PlatformCode
}
