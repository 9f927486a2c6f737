package domain

import (
	"time"
)

// Order is one consignment, optionally attached to a Shipping. Several
// fields mirror the parent shipping and are kept in sync by the trigger
// engine whenever the parent changes.
//
// Invariant: while ShippingID is set, OrderShippingStatus equals the parent
// shipping's Status. The invariant is maintained by triggers and actions,
// not by a storage constraint.
type Order struct {
	ID          string      `bson:"_id" json:"id"`
	OrderNumber string      `bson:"orderNumber" json:"orderNumber"`
	Status      OrderStatus `bson:"status" json:"status"`
	ClientName  string      `bson:"clientName,omitempty" json:"clientName,omitempty"`

	ShippingID          *string         `bson:"shippingId,omitempty" json:"shippingId,omitempty"`
	OrderShippingStatus *ShippingStatus `bson:"orderShippingStatus,omitempty" json:"orderShippingStatus,omitempty"`
	ShippingStatus      *VehicleStatus  `bson:"shippingStatus,omitempty" json:"shippingStatus,omitempty"`

	// Mirrored from the parent shipping.
	CarrierID         *string            `bson:"carrierId,omitempty" json:"carrierId,omitempty"`
	VehicleTypeID     *string            `bson:"vehicleTypeId,omitempty" json:"vehicleTypeId,omitempty"`
	BodyTypeID        *string            `bson:"bodyTypeId,omitempty" json:"bodyTypeId,omitempty"`
	TarifficationType *TarifficationType `bson:"tarifficationType,omitempty" json:"tarifficationType,omitempty"`

	DeliveryCost       *float64 `bson:"deliveryCost,omitempty" json:"deliveryCost,omitempty"`
	ManualDeliveryCost bool     `bson:"manualDeliveryCost" json:"manualDeliveryCost"`

	DeliveryWarehouseID *string    `bson:"deliveryWarehouseId,omitempty" json:"deliveryWarehouseId,omitempty"`
	DeliveryDate        *time.Time `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AttachToShipping links the order to a shipping and mirrors its fields
func (o *Order) AttachToShipping(s *Shipping) {
	id := s.ID
	o.ShippingID = &id
	status := s.Status
	o.OrderShippingStatus = &status
	o.CarrierID = clonePtr(s.CarrierID)
	o.VehicleTypeID = clonePtr(s.VehicleTypeID)
	o.BodyTypeID = clonePtr(s.BodyTypeID)
	o.TarifficationType = clonePtr(s.TarifficationType)
	o.Status = OrderInShipping
	o.UpdatedAt = time.Now().UTC()
}

// DetachFromShipping clears the shipping link and every mirrored field
func (o *Order) DetachFromShipping() {
	o.ShippingID = nil
	o.OrderShippingStatus = nil
	o.ShippingStatus = nil
	o.Status = OrderConfirmed
	if !o.ManualDeliveryCost {
		o.DeliveryCost = nil
	}
	o.UpdatedAt = time.Now().UTC()
}

// MirrorShippingStatus updates the mirrored shipping status on the order
func (o *Order) MirrorShippingStatus(status ShippingStatus) {
	s := status
	o.OrderShippingStatus = &s
	o.UpdatedAt = time.Now().UTC()
}
