package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// RequestDataChanged reacts to edits of carrier-visible request data while a
// carrier request is pending: it raises the carrier backlight and notifies
// the carrier that the request changed. The backlight guard makes a repeat
// run over the same batch a no-op.
type RequestDataChanged struct{}

func NewRequestDataChanged() *RequestDataChanged {
	return &RequestDataChanged{}
}

func (t *RequestDataChanged) Name() string       { return "requestDataChanged" }
func (t *RequestDataChanged) Category() Category { return PostUpdates }

func (t *RequestDataChanged) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	relevant := FilterByFields(changes,
		fielddiff.FieldVehicleTypeID,
		fielddiff.FieldBodyTypeID,
		fielddiff.FieldTarifficationType,
		fielddiff.FieldBasicDeliveryCost,
	)
	var out []ShippingChanges
	for _, c := range relevant {
		if c.Entity.Status == domain.ShippingRequestSent {
			out = append(out, c)
		}
	}
	return out
}

func (t *RequestDataChanged) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	for _, c := range changes {
		s := c.Entity
		if s.IsNewCarrierRequest {
			continue
		}
		s.IsNewCarrierRequest = true
		batch.MarkShippingTouched(s)
		batch.AppendHistory(s.ID, "shippingRequestDataChanged", domain.SystemUser)
		batch.QueueNotification(domain.Notification{
			Type:       domain.NotificationUpdateShippingRequestData,
			ShippingID: s.ID,
			CarrierID:  s.CarrierID,
		})
	}
	return nil
}
