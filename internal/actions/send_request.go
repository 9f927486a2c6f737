package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// SendShippingRequest sends the dispatch request to the assigned carrier
// and moves the shipping into the awaiting-confirmation state.
type SendShippingRequest struct{}

func NewSendShippingRequest() *SendShippingRequest { return &SendShippingRequest{} }

func (a *SendShippingRequest) Name() string { return "sendShippingRequest" }

func (a *SendShippingRequest) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *SendShippingRequest) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingCreated || status == domain.ShippingRejectedByTc
}

func (a *SendShippingRequest) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}
	if shipping.CarrierID == nil {
		return domain.Errorf("shippingRequestNeedsCarrier")
	}

	shipping.Status = domain.ShippingRequestSent
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
	stat.SentAt = &now
	stat.CarrierID = shipping.CarrierID

	batch.AppendHistory(shipping.ID, "shippingSetRequestSent", user, shipping.ShippingNumber)
	batch.QueueNotification(domain.Notification{
		Type:       domain.NotificationShippingRequestSent,
		ShippingID: shipping.ID,
		CarrierID:  shipping.CarrierID,
	})

	return domain.OK("shippingRequestSent")
}
