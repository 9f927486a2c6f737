package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// RejectShippingRequest records the carrier's refusal of a pending request
type RejectShippingRequest struct{}

func NewRejectShippingRequest() *RejectShippingRequest { return &RejectShippingRequest{} }

func (a *RejectShippingRequest) Name() string { return "rejectShippingRequest" }

func (a *RejectShippingRequest) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleCarrierManager}
}

func (a *RejectShippingRequest) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingRequestSent
}

func (a *RejectShippingRequest) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	shipping.Status = domain.ShippingRejectedByTc
	shipping.IsNewCarrierRequest = false
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

	stat, err := batch.StatFor(ctx, shipping)
	if err != nil {
		return domain.Errorf("internalError")
	}
	now := time.Now().UTC()
	stat.RejectedAt = &now

	batch.AppendHistory(shipping.ID, "shippingSetRejected", user, shipping.ShippingNumber)
	return domain.OK("shippingRejectedByTc")
}
