// Package channel defines the canonical, platform-independent order, claim,
// sales and product-status shapes that every external commerce channel is
// normalized into, together with the adapter port interface implemented by
// the concrete platform adapters in the infrastructure layer.
//
// This package follows the Ports & Adapters pattern: downstream order,
// inventory and settlement logic depends only on these types and never on a
// platform wire format.
package channel
