package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// rollbackTable maps each rollbackable status to its predecessor
var rollbackTable = map[domain.ShippingStatus]domain.ShippingStatus{
	domain.ShippingCompleted: domain.ShippingConfirmed,
	domain.ShippingBillSend:  domain.ShippingCompleted,
	domain.ShippingArhive:    domain.ShippingBillSend,
}

// RollbackShipping steps a shipping one state back along the happy path.
// On a status with no rollback mapping it returns success with an
// empty-transition message and changes nothing; callers rely on that
// lenient behavior for mixed bulk selections.
type RollbackShipping struct{}

func NewRollbackShipping() *RollbackShipping { return &RollbackShipping{} }

func (a *RollbackShipping) Name() string { return "rollbackShipping" }

func (a *RollbackShipping) Roles() []string {
	return []string{domain.RoleAdministrator}
}

func (a *RollbackShipping) IsAvailable(status domain.ShippingStatus) bool {
	_, ok := rollbackTable[status]
	return ok
}

func (a *RollbackShipping) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	previous, ok := rollbackTable[shipping.Status]
	if !ok {
		return domain.OK("shippingRollbackNothingToDo")
	}

	shipping.Status = previous
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

	batch.AppendHistory(shipping.ID, "shippingRolledBack", user, shipping.ShippingNumber, string(previous))
	return domain.OK(string(previous))
}
