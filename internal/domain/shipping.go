package domain

import (
	"time"
)

// Shipping is the aggregate root for one vehicle dispatch. It carries the
// lifecycle status, carrier and vehicle references, cost fields with their
// manual-override flags, and the external pooling integration state.
//
// Status transitions go through the action engine only; assigning Status
// directly bypasses validation and cascading and risks orphaned orders.
type Shipping struct {
	ID             string         `bson:"_id" json:"id"`
	ShippingNumber string         `bson:"shippingNumber" json:"shippingNumber"`
	Status         ShippingStatus `bson:"status" json:"status"`

	CarrierID         *string            `bson:"carrierId,omitempty" json:"carrierId,omitempty"`
	VehicleTypeID     *string            `bson:"vehicleTypeId,omitempty" json:"vehicleTypeId,omitempty"`
	BodyTypeID        *string            `bson:"bodyTypeId,omitempty" json:"bodyTypeId,omitempty"`
	TarifficationType *TarifficationType `bson:"tarifficationType,omitempty" json:"tarifficationType,omitempty"`

	BasicDeliveryCost *float64 `bson:"basicDeliveryCost,omitempty" json:"basicDeliveryCost,omitempty"`
	TotalDeliveryCost *float64 `bson:"totalDeliveryCost,omitempty" json:"totalDeliveryCost,omitempty"`
	DowntimeAmount    *float64 `bson:"downtimeAmount,omitempty" json:"downtimeAmount,omitempty"`
	OtherCosts        *float64 `bson:"otherCosts,omitempty" json:"otherCosts,omitempty"`

	// Manual overrides suppress recalculation of the corresponding field.
	ManualBasicDeliveryCost bool `bson:"manualBasicDeliveryCost" json:"manualBasicDeliveryCost"`
	ManualTotalDeliveryCost bool `bson:"manualTotalDeliveryCost" json:"manualTotalDeliveryCost"`
	ManualDowntimeAmount    bool `bson:"manualDowntimeAmount" json:"manualDowntimeAmount"`
	ManualOtherCosts        bool `bson:"manualOtherCosts" json:"manualOtherCosts"`

	// IsNewCarrierRequest is the carrier-facing backlight: set when request
	// data changes while a request is pending, cleared by a validation
	// trigger once the carrier picks the request up.
	IsNewCarrierRequest bool `bson:"isNewCarrierRequest" json:"isNewCarrierRequest"`

	IsPooling          bool    `bson:"isPooling" json:"isPooling"`
	SyncedWithPooling  bool    `bson:"syncedWithPooling" json:"syncedWithPooling"`
	ConsolidationID    *string `bson:"consolidationId,omitempty" json:"consolidationId,omitempty"`
	SlotID             *string `bson:"slotId,omitempty" json:"slotId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}

// NewShipping creates a Shipping in the initial lifecycle state
func NewShipping(id, number, createdBy string) *Shipping {
	now := time.Now().UTC()
	return &Shipping{
		ID:             id,
		ShippingNumber: number,
		Status:         ShippingCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      createdBy,
	}
}

// Clone returns a deep copy of the shipping, used for before/after diffing
func (s *Shipping) Clone() *Shipping {
	c := *s
	c.CarrierID = clonePtr(s.CarrierID)
	c.VehicleTypeID = clonePtr(s.VehicleTypeID)
	c.BodyTypeID = clonePtr(s.BodyTypeID)
	c.TarifficationType = clonePtr(s.TarifficationType)
	c.BasicDeliveryCost = clonePtr(s.BasicDeliveryCost)
	c.TotalDeliveryCost = clonePtr(s.TotalDeliveryCost)
	c.DowntimeAmount = clonePtr(s.DowntimeAmount)
	c.OtherCosts = clonePtr(s.OtherCosts)
	c.ConsolidationID = clonePtr(s.ConsolidationID)
	c.SlotID = clonePtr(s.SlotID)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
