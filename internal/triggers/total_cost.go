package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// TotalCostCalculation recomputes the shipping total whenever a component
// cost changes. Manual total overrides suppress the recalculation.
type TotalCostCalculation struct {
	calculator *domain.DeliveryCostCalculator
}

func NewTotalCostCalculation(calculator *domain.DeliveryCostCalculator) *TotalCostCalculation {
	return &TotalCostCalculation{calculator: calculator}
}

func (t *TotalCostCalculation) Name() string       { return "totalCostCalculation" }
func (t *TotalCostCalculation) Category() Category { return Calculation }

func (t *TotalCostCalculation) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return FilterByFields(changes,
		fielddiff.FieldBasicDeliveryCost,
		fielddiff.FieldDowntimeAmount,
		fielddiff.FieldOtherCosts,
	)
}

func (t *TotalCostCalculation) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	for _, c := range changes {
		if t.calculator.RecalculateTotal(c.Entity) {
			batch.MarkShippingTouched(c.Entity)
		}
	}
	return nil
}
