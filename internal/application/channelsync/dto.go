package channelsync

import (
	"time"

	"github.com/google/uuid"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// OrderSyncResult is the outcome of one order synchronization job. JobID
// identifies the job in logs and responses.
type OrderSyncResult struct {
	JobID             uuid.UUID            `json:"job_id"`
	Platform          channel.PlatformCode `json:"platform"`
	Since             time.Time            `json:"since"`
	Orders            []channel.Order      `json:"orders"`
	MappedItemCount   int                  `json:"mapped_item_count"`
	UnmappedItemCount int                  `json:"unmapped_item_count"`
}

// ClaimSyncResult is the outcome of one claim synchronization job.
type ClaimSyncResult struct {
	JobID    uuid.UUID            `json:"job_id"`
	Platform channel.PlatformCode `json:"platform"`
	Since    time.Time            `json:"since"`
	Claims   []channel.Claim      `json:"claims"`
}
