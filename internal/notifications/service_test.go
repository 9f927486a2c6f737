package notifications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

func TestToOutboxEvents(t *testing.T) {
	carrierID := "c1"
	service := NewService()

	events, err := service.ToOutboxEvents([]domain.Notification{
		{
			Type:       domain.NotificationCancelShipping,
			ShippingID: "s1",
			CarrierID:  &carrierID,
			Payload:    map[string]any{"shippingNumber": "SH-001"},
		},
		{
			Type:       domain.NotificationShippingRequestSent,
			ShippingID: "s2",
		},
	})

	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "s1", first.AggregateID)
	assert.Equal(t, "shipping", first.AggregateType)
	assert.Equal(t, string(domain.NotificationCancelShipping), first.EventType)
	assert.Equal(t, "tms.shipping.events", first.Topic)
	assert.NotEmpty(t, first.ID)

	var payload envelope
	require.NoError(t, json.Unmarshal(first.Payload, &payload))
	assert.Equal(t, domain.NotificationCancelShipping, payload.Type)
	assert.Equal(t, "s1", payload.ShippingID)
	require.NotNil(t, payload.CarrierID)
	assert.Equal(t, "c1", *payload.CarrierID)
	assert.Equal(t, "SH-001", payload.Payload["shippingNumber"])
	assert.False(t, payload.OccurredAt.IsZero())
}

func TestToOutboxEventsEmpty(t *testing.T) {
	events, err := NewService().ToOutboxEvents(nil)

	require.NoError(t, err)
	assert.Nil(t, events)
}
