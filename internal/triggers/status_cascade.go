package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// StatusCascade mirrors a changed shipping status onto every linked order,
// keeping Order.OrderShippingStatus equal to the parent status. Actions
// perform the same mirror themselves; the trigger makes the invariant hold
// for any other save path and is a no-op when values already agree.
type StatusCascade struct{}

func NewStatusCascade() *StatusCascade {
	return &StatusCascade{}
}

func (t *StatusCascade) Name() string       { return "statusCascade" }
func (t *StatusCascade) Category() Category { return Synchronization }

func (t *StatusCascade) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return FilterByFields(changes, fielddiff.FieldStatus)
}

func (t *StatusCascade) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
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
			if o.OrderShippingStatus != nil && *o.OrderShippingStatus == shipping.Status {
				continue
			}
			o.MirrorShippingStatus(shipping.Status)
			batch.MarkOrderTouched(o)
		}
	}
	return nil
}
