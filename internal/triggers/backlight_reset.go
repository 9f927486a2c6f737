package triggers

import (
	"context"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// BacklightReset lowers the IsNewCarrierRequest backlight when the carrier
// is reassigned. The backlight marks an updated request awaiting the old
// carrier's attention; a new carrier starts from a clean request.
type BacklightReset struct{}

func NewBacklightReset() *BacklightReset { return &BacklightReset{} }

func (t *BacklightReset) Name() string       { return "backlightReset" }
func (t *BacklightReset) Category() Category { return Synchronization }

func (t *BacklightReset) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return FilterByFields(changes, fielddiff.FieldCarrierID)
}

func (t *BacklightReset) Execute(_ context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	for _, c := range changes {
		if !c.Entity.IsNewCarrierRequest {
			continue
		}
		c.Entity.IsNewCarrierRequest = false
		batch.MarkShippingTouched(c.Entity)
	}
	return nil
}
