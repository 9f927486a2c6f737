package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// ConfirmShipping records the carrier's confirmation of the request. The
// shipping moves to the confirmed state, the backlight is lowered, the
// confirmation timestamp lands in the request statistics and every linked
// order starts waiting for the vehicle.
type ConfirmShipping struct{}

func NewConfirmShipping() *ConfirmShipping { return &ConfirmShipping{} }

func (a *ConfirmShipping) Name() string { return "confirmShipping" }

func (a *ConfirmShipping) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager, domain.RoleCarrierManager}
}

func (a *ConfirmShipping) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingRequestSent
}

func (a *ConfirmShipping) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	shipping.Status = domain.ShippingConfirmed
	shipping.IsNewCarrierRequest = false
	shipping.UpdatedAt = time.Now().UTC()
	batch.MarkShippingTouched(shipping)

	orders, err := batch.OrdersFor(ctx, shipping.ID)
	if err != nil {
		return domain.Errorf("internalError")
	}
	waiting := domain.VehicleWaiting
	for _, o := range orders {
		o.MirrorShippingStatus(shipping.Status)
		v := waiting
		o.ShippingStatus = &v
		o.Status = domain.OrderInShipping
		batch.MarkOrderTouched(o)
	}

	stat, err := batch.StatFor(ctx, shipping)
	if err != nil {
		return domain.Errorf("internalError")
	}
	now := time.Now().UTC()
	stat.ConfirmedAt = &now

	batch.AppendHistory(shipping.ID, "shippingSetConfirmed", user, shipping.ShippingNumber)
	return domain.OK("shippingConfirmed")
}
