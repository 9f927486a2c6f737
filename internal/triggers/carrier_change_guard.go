package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// CarrierChangeGuard vetoes a carrier reassignment once the dispatch has
// progressed past the confirmation point. Late carrier swaps would orphan
// the request statistics and invoices already tied to the old carrier.
type CarrierChangeGuard struct{}

func NewCarrierChangeGuard() *CarrierChangeGuard { return &CarrierChangeGuard{} }

func (t *CarrierChangeGuard) Name() string { return "carrierChangeGuard" }

func (t *CarrierChangeGuard) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return FilterByFields(changes, fielddiff.FieldCarrierID)
}

func (t *CarrierChangeGuard) Validate(_ context.Context, _ *domain.BatchContext, changes []ShippingChanges) domain.ValidateResult {
	for _, c := range changes {
		switch c.Entity.Status {
		case domain.ShippingCompleted, domain.ShippingBillSend, domain.ShippingArhive:
			return domain.ValidationError(fielddiff.FieldCarrierID, domain.ValueIsReadonly,
				"carrier cannot be changed after the shipping is completed")
		}
	}
	return domain.ValidationOK()
}
