package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// SendShippingBill marks the invoice for a completed dispatch as sent
type SendShippingBill struct{}

func NewSendShippingBill() *SendShippingBill { return &SendShippingBill{} }

func (a *SendShippingBill) Name() string { return "sendShippingBill" }

func (a *SendShippingBill) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *SendShippingBill) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingCompleted
}

func (a *SendShippingBill) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	shipping.Status = domain.ShippingBillSend
	shipping.UpdatedAt = time.Now().UTC()
	batch.MarkShippingTouched(shipping)

	orders, err := batch.OrdersFor(ctx, shipping.ID)
	if err != nil {
		return domain.Errorf("internalError")
	}
	for _, o := range orders {
		o.MirrorShippingStatus(shipping.Status)
		batch.MarkOrderTouched(o)
	}

	batch.AppendHistory(shipping.ID, "shippingSetBillSend", user, shipping.ShippingNumber)
	return domain.OK("shippingBillSend")
}
