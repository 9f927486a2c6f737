package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// CancelShipping aborts a dispatch that has not yet been completed. Linked
// orders are detached and returned to the free pool, non-manual costs are
// cleared, and the carrier is notified about the cancellation.
type CancelShipping struct {
	calculator *domain.DeliveryCostCalculator
}

func NewCancelShipping(calculator *domain.DeliveryCostCalculator) *CancelShipping {
	return &CancelShipping{calculator: calculator}
}

func (a *CancelShipping) Name() string { return "cancelShipping" }

func (a *CancelShipping) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *CancelShipping) IsAvailable(status domain.ShippingStatus) bool {
	switch status {
	case domain.ShippingCreated, domain.ShippingRequestSent, domain.ShippingConfirmed,
		domain.ShippingSlotBooked, domain.ShippingChangesAgreeing:
		return true
	}
	return false
}

func (a *CancelShipping) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	orders, err := batch.OrdersFor(ctx, shipping.ID)
	if err != nil {
		return domain.Errorf("internalError")
	}
	for _, o := range orders {
		o.DetachFromShipping()
		batch.MarkOrderTouched(o)
	}

	shipping.Status = domain.ShippingCanceled
	shipping.IsNewCarrierRequest = false
	shipping.UpdatedAt = time.Now().UTC()
	a.calculator.ClearCosts(shipping)
	batch.MarkShippingTouched(shipping)

	batch.AppendHistory(shipping.ID, "shippingSetCancelled", user, shipping.ShippingNumber)
	batch.QueueNotification(domain.Notification{
		Type:       domain.NotificationCancelShipping,
		ShippingID: shipping.ID,
		CarrierID:  shipping.CarrierID,
		Payload:    map[string]any{"shippingNumber": shipping.ShippingNumber},
	})

	return domain.OK("shippingCanceled")
}
