package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// CompleteShipping closes the physical leg of a confirmed dispatch. The
// vehicle is recorded as departed on every linked order.
type CompleteShipping struct{}

func NewCompleteShipping() *CompleteShipping { return &CompleteShipping{} }

func (a *CompleteShipping) Name() string { return "completeShipping" }

func (a *CompleteShipping) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *CompleteShipping) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingConfirmed
}

func (a *CompleteShipping) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	shipping.Status = domain.ShippingCompleted
	shipping.UpdatedAt = time.Now().UTC()
	batch.MarkShippingTouched(shipping)

	orders, err := batch.OrdersFor(ctx, shipping.ID)
	if err != nil {
		return domain.Errorf("internalError")
	}
	for _, o := range orders {
		o.MirrorShippingStatus(shipping.Status)
		v := domain.VehicleDepartured
		o.ShippingStatus = &v
		o.Status = domain.OrderShipped
		batch.MarkOrderTouched(o)
	}

	batch.AppendHistory(shipping.ID, "shippingSetCompleted", user, shipping.ShippingNumber)
	return domain.OK("shippingCompleted")
}
