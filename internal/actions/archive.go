package actions

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// ArchiveShipping retires a billed or cancelled dispatch. The historical
// "shippingArhive" wire value is kept for stored documents and old clients.
type ArchiveShipping struct{}

func NewArchiveShipping() *ArchiveShipping { return &ArchiveShipping{} }

func (a *ArchiveShipping) Name() string { return "archiveShipping" }

func (a *ArchiveShipping) Roles() []string {
	return []string{domain.RoleAdministrator, domain.RoleLogisticsManager}
}

func (a *ArchiveShipping) IsAvailable(status domain.ShippingStatus) bool {
	return status == domain.ShippingBillSend || status == domain.ShippingCanceled
}

func (a *ArchiveShipping) Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult {
	if !a.IsAvailable(shipping.Status) {
		return unavailableResult(a.Name())
	}

	shipping.Status = domain.ShippingArhive
	shipping.UpdatedAt = time.Now().UTC()
	batch.MarkShippingTouched(shipping)

	orders, err := batch.OrdersFor(ctx, shipping.ID)
	if err != nil {
		return domain.Errorf("internalError")
	}
	for _, o := range orders {
		o.MirrorShippingStatus(shipping.Status)
		o.Status = domain.OrderArchive
		batch.MarkOrderTouched(o)
	}

	batch.AppendHistory(shipping.ID, "shippingSetArchived", user, shipping.ShippingNumber)
	return domain.OK("shippingArhive")
}
