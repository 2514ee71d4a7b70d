package rooms

import (
	"encoding/json"
	"time"
)

const (
	EventRoomCreated  = "RoomCreated"
	EventItemAdded    = "ItemAdded"
	EventItemUpdated  = "ItemUpdated"
	EventItemRemoved  = "ItemRemoved"
	EventItemsClaimed = "ItemsClaimed"
	EventClaimRemoved = "ClaimRemoved"
	EventClaimUpdated = "ClaimUpdated"
)

type Envelope struct {
	EventID       string          `json:"event_id"`                 // uuid
	EventType     string          `json:"event_type"`               // salah satu const di atas
	EventVersion  int             `json:"event_version"`            // 1
	OccurredAt    time.Time       `json:"occurred_at"`              // RFC3339
	Producer      string          `json:"producer"`                 // e.g., "split-api"
	CorrelationID string          `json:"correlation_id,omitempty"` // room code
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
}

// CatalogChangedPayload dipakai ItemAdded / ItemUpdated / ItemRemoved.
// Item nil untuk remove, Index -1 untuk append.
type CatalogChangedPayload struct {
	RoomCode string `json:"room_code"`
	Index    int    `json:"index"`
	Item     *Item  `json:"item,omitempty"`
}

// ClaimsChangedPayload dipakai ItemsClaimed / ClaimRemoved / ClaimUpdated.
type ClaimsChangedPayload struct {
	RoomCode string `json:"room_code"`
	User     string `json:"user"`
	Items    []Item `json:"items,omitempty"`
	ItemName string `json:"item_name,omitempty"`
	NewItem  *Item  `json:"new_item,omitempty"`
}
