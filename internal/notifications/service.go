package notifications

import (
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/kafka"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/outbox"
)

// Service converts the notifications staged on a batch into outbox events.
// The events are written in the same transaction as the business change;
// the outbox publisher delivers them to Kafka afterwards, so a failed
// delivery never reaches the operation result.
type Service struct {
	source string
}

// NewService creates a notification service
func NewService() *Service {
	return &Service{source: "tms-backoffice"}
}

// envelope is the serialized notification payload
type envelope struct {
	Type       domain.NotificationType `json:"type"`
	ShippingID string                  `json:"shippingId"`
	CarrierID  *string                 `json:"carrierId,omitempty"`
	Payload    map[string]any          `json:"payload,omitempty"`
	OccurredAt time.Time               `json:"occurredAt"`
}

// ToOutboxEvents converts staged notifications into outbox events
func (s *Service) ToOutboxEvents(staged []domain.Notification) ([]*outbox.Event, error) {
	if len(staged) == 0 {
		return nil, nil
	}

	events := make([]*outbox.Event, 0, len(staged))
	for _, n := range staged {
		event, err := outbox.NewEvent(
			n.ShippingID,
			"shipping",
			string(n.Type),
			kafka.Topics.ShippingEvents,
			envelope{
				Type:       n.Type,
				ShippingID: n.ShippingID,
				CarrierID:  n.CarrierID,
				Payload:    n.Payload,
				OccurredAt: time.Now().UTC(),
			},
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
