package triggers

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// CarrierFieldsSync copies the carrier, vehicle type, body type and
// tariffication fields onto every linked order whenever they change on the
// parent shipping.
type CarrierFieldsSync struct{}

func NewCarrierFieldsSync() *CarrierFieldsSync {
	return &CarrierFieldsSync{}
}

func (t *CarrierFieldsSync) Name() string       { return "carrierFieldsSync" }
func (t *CarrierFieldsSync) Category() Category { return SyncFields }

func (t *CarrierFieldsSync) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return FilterByFields(changes,
		fielddiff.FieldCarrierID,
		fielddiff.FieldVehicleTypeID,
		fielddiff.FieldBodyTypeID,
		fielddiff.FieldTarifficationType,
	)
}

func (t *CarrierFieldsSync) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	for _, c := range changes {
		shipping := c.Entity
		orders, err := batch.OrdersFor(ctx, shipping.ID)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.ShippingID == nil || *o.ShippingID != shipping.ID {
				continue
			}
			if !t.syncOrder(shipping, o, c) {
				continue
			}
			o.UpdatedAt = time.Now().UTC()
			batch.MarkOrderTouched(o)
		}
	}
	return nil
}

// syncOrder copies the changed fields onto one order, reporting whether
// anything actually moved.
func (t *CarrierFieldsSync) syncOrder(s *domain.Shipping, o *domain.Order, c ShippingChanges) bool {
	changed := false
	if c.FieldChanged(fielddiff.FieldCarrierID) && !strPtrEqual(o.CarrierID, s.CarrierID) {
		o.CarrierID = copyStrPtr(s.CarrierID)
		changed = true
	}
	if c.FieldChanged(fielddiff.FieldVehicleTypeID) && !strPtrEqual(o.VehicleTypeID, s.VehicleTypeID) {
		o.VehicleTypeID = copyStrPtr(s.VehicleTypeID)
		changed = true
	}
	if c.FieldChanged(fielddiff.FieldBodyTypeID) && !strPtrEqual(o.BodyTypeID, s.BodyTypeID) {
		o.BodyTypeID = copyStrPtr(s.BodyTypeID)
		changed = true
	}
	if c.FieldChanged(fielddiff.FieldTarifficationType) && !tariffPtrEqual(o.TarifficationType, s.TarifficationType) {
		o.TarifficationType = copyTariffPtr(s.TarifficationType)
		changed = true
	}
	return changed
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func tariffPtrEqual(a, b *domain.TarifficationType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyTariffPtr(p *domain.TarifficationType) *domain.TarifficationType {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
