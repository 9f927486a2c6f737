package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
)

// SlotUpdater pushes a changed shipping to the external pooling service
type SlotUpdater interface {
	UpdateSlot(ctx context.Context, shipping *domain.Shipping, orders []*domain.Order) domain.ValidateResult
}

// PoolingSlotUpdate pushes slot-relevant changes of a synced pooling
// shipping to the external pooling API.
//
// Remote failures are soft: the local save proceeds, the failure is logged
// and recorded in the history trail, and SyncedWithPooling is lowered so
// the reconciliation poller picks the shipping up later. Blocking local
// edits on a third-party API was judged worse than temporary divergence.
type PoolingSlotUpdate struct {
	updater SlotUpdater
	logger  *logging.Logger
}

func NewPoolingSlotUpdate(updater SlotUpdater, logger *logging.Logger) *PoolingSlotUpdate {
	return &PoolingSlotUpdate{
		updater: updater,
		logger:  logger.WithComponent("poolingSlotUpdate"),
	}
}

func (t *PoolingSlotUpdate) Name() string       { return "poolingSlotUpdate" }
func (t *PoolingSlotUpdate) Category() Category { return PostUpdates }

func (t *PoolingSlotUpdate) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	relevant := FilterByFields(changes,
		fielddiff.FieldVehicleTypeID,
		fielddiff.FieldBodyTypeID,
		fielddiff.FieldTotalDeliveryCost,
		fielddiff.FieldSlotID,
		fielddiff.FieldConsolidationID,
	)
	var out []ShippingChanges
	for _, c := range relevant {
		if c.Entity.IsPooling && c.Entity.SyncedWithPooling && c.Entity.SlotID != nil {
			out = append(out, c)
		}
	}
	return out
}

func (t *PoolingSlotUpdate) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	for _, c := range changes {
		s := c.Entity
		orders, err := batch.OrdersFor(ctx, s.ID)
		if err != nil {
			return err
		}

		result := t.updater.UpdateSlot(ctx, s, orders)
		if !result.IsError {
			continue
		}

		t.logger.Warn("Pooling slot update rejected, local save proceeds",
			"shippingId", s.ID, "slotId", *s.SlotID, "message", result.Message)
		s.SyncedWithPooling = false
		batch.MarkShippingTouched(s)
		batch.AppendHistory(s.ID, "poolingSlotUpdateFailed", domain.SystemUser, result.Message)
	}
	return nil
}
