package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// SlotBooker books and releases slots at the external pooling service
type SlotBooker interface {
	BookSlot(ctx context.Context, shipping *domain.Shipping, orders []*domain.Order) (slotID string, result domain.ValidateResult)
	CancelSlot(ctx context.Context, shipping *domain.Shipping) domain.ValidateResult
}

// SendToPooling books a consolidation slot for the shipping. Beyond the
// status gate, availability depends on the whole set of child orders: one
// shared tariffication type, one shared carrier, and every order confirmed
// or created when company settings demand it. A shipping whose previous
// slot was cancelled may rebook regardless of the order states.
type SendToPooling struct {
	booker                 SlotBooker
	requireConfirmedOrders bool
}

func NewSendToPooling(booker SlotBooker, requireConfirmedOrders bool) *SendToPooling {
	return &SendToPooling{booker: booker, requireConfirmedOrders: requireConfirmedOrders}
}

func (a *SendToPooling) Name() string { return "sendToPooling" }

func (a *SendToPooling) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *SendToPooling) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingCreated || status == domain.ShippingSlotCancelled
}

func (a *SendToPooling) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	orders, err := batch.OrdersFor(ctx, shipping.ID)
	if err != nil {
		return domain.Errorf("internalError")
	}
	if shipping.Status != domain.ShippingSlotCancelled {
		if !ordersPoolable(orders, a.requireConfirmedOrders) {
			return domain.Errorf("poolingOrdersNotEligible")
		}
	}

	slotID, result := a.booker.BookSlot(ctx, shipping, orders)
	if result.IsError {
		batch.AppendHistory(shipping.ID, "poolingSlotBookingFailed", domain.SystemUser, result.Message)
		return domain.AppResult{IsError: true, Message: result.Message, MessageKey: "poolingSlotBookingFailed"}
	}

	shipping.Status = domain.ShippingSlotBooked
	shipping.IsPooling = true
	shipping.SyncedWithPooling = true
	shipping.SlotID = &slotID
	shipping.UpdatedAt = time.Now().UTC()
	batch.MarkShippingTouched(shipping)

	for _, o := range orders {
		o.MirrorShippingStatus(shipping.Status)
		batch.MarkOrderTouched(o)
	}

	batch.AppendHistory(shipping.ID, "shippingSlotBookedFor", user, shipping.ShippingNumber, slotID)
	return domain.OK("shippingSlotBooked")
}

// ordersPoolable checks the aggregate eligibility of a shipping's orders
func ordersPoolable(orders []*domain.Order, requireConfirmed bool) bool {
	if len(orders) == 0 {
		return false
	}

	first := orders[0]
	for _, o := range orders[1:] {
		if !tariffEqual(first.TarifficationType, o.TarifficationType) {
			return false
		}
		if !strEqual(first.CarrierID, o.CarrierID) {
			return false
		}
	}

	for _, o := range orders {
		switch o.Status {
		case domain.OrderConfirmed:
		case domain.OrderCreated, domain.OrderInShipping:
			if requireConfirmed {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// CancelPoolingSlot releases a booked slot back to the pooling service
type CancelPoolingSlot struct {
	booker SlotBooker
}

func NewCancelPoolingSlot(booker SlotBooker) *CancelPoolingSlot {
	return &CancelPoolingSlot{booker: booker}
}

func (a *CancelPoolingSlot) Name() string { return "cancelPoolingSlot" }

func (a *CancelPoolingSlot) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *CancelPoolingSlot) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingSlotBooked
}

func (a *CancelPoolingSlot) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	result := a.booker.CancelSlot(ctx, shipping)
	if result.IsError {
		batch.AppendHistory(shipping.ID, "poolingSlotCancelFailed", domain.SystemUser, result.Message)
		return domain.AppResult{IsError: true, Message: result.Message, MessageKey: "poolingSlotCancelFailed"}
	}

	shipping.Status = domain.ShippingSlotCancelled
	shipping.SyncedWithPooling = false
	shipping.SlotID = nil
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

	batch.AppendHistory(shipping.ID, "shippingSlotReleased", user, shipping.ShippingNumber)
	return domain.OK("shippingSlotCancelled")
}

func strEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func tariffEqual(a, b *domain.TarifficationType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
