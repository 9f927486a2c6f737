package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// OrderCostDistribution spreads the shipping total across the linked orders
// after the total has been recalculated. Runs in the UpdateFields category
// so it always observes the post-calculation total.
type OrderCostDistribution struct {
	calculator *domain.DeliveryCostCalculator
}

func NewOrderCostDistribution(calculator *domain.DeliveryCostCalculator) *OrderCostDistribution {
	return &OrderCostDistribution{calculator: calculator}
}

func (t *OrderCostDistribution) Name() string       { return "orderCostDistribution" }
func (t *OrderCostDistribution) Category() Category { return UpdateFields }

func (t *OrderCostDistribution) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	// Component fields are included so a total recalculated by the
	// Calculation category still reaches the orders in the same run.
	return FilterByFields(changes,
		fielddiff.FieldTotalDeliveryCost,
		fielddiff.FieldBasicDeliveryCost,
		fielddiff.FieldDowntimeAmount,
		fielddiff.FieldOtherCosts,
	)
}

func (t *OrderCostDistribution) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	for _, c := range changes {
		orders, err := batch.OrdersFor(ctx, c.Entity.ID)
		if err != nil {
			return err
		}
		linked := make([]*domain.Order, 0, len(orders))
		for _, o := range orders {
			if o.ShippingID != nil && *o.ShippingID == c.Entity.ID {
				linked = append(linked, o)
			}
		}
		for _, o := range t.calculator.DistributeToOrders(c.Entity, linked) {
			batch.MarkOrderTouched(o)
		}
	}
	return nil
}
