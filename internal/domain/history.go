package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one append-only audit record for an entity. The message is
// stored as a key plus positional arguments and localized on read.
type HistoryEntry struct {
	ID         string    `bson:"_id" json:"id"`
	EntityID   string    `bson:"entityId" json:"entityId"`
	MessageKey string    `bson:"messageKey" json:"messageKey"`
	Args       []string  `bson:"args,omitempty" json:"args,omitempty"`
	UserID     string    `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName   string    `bson:"userName,omitempty" json:"userName,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// NewHistoryEntry builds a history record for an entity
func NewHistoryEntry(entityID, messageKey string, user User, args ...string) HistoryEntry {
	return HistoryEntry{
		ID:         uuid.New().String(),
		EntityID:   entityID,
		MessageKey: messageKey,
		Args:       args,
		UserID:     user.ID,
		UserName:   user.Name,
		CreatedAt:  time.Now().UTC(),
	}
}

// NotificationType identifies an outbound notification kind
type NotificationType string

const (
	NotificationCancelShipping            NotificationType = "tms.shipping.cancelled"
	NotificationUpdateShippingRequestData NotificationType = "tms.shipping.request-data-updated"
	NotificationShippingRequestSent       NotificationType = "tms.shipping.request-sent"
)

// Notification is an outbound message staged during a save or action and
// dispatched asynchronously after commit. Delivery failures never propagate
// back into the operation result.
type Notification struct {
	Type       NotificationType `json:"type"`
	ShippingID string           `json:"shippingId"`
	CarrierID  *string          `json:"carrierId,omitempty"`
	Payload    map[string]any   `json:"payload,omitempty"`
}
