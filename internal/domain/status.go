package domain

// ShippingStatus enumerates the shipping lifecycle.
//
// Wire values are carried over from the legacy back office unchanged,
// including the historical "shippingArhive" spelling, so that existing
// clients and stored documents keep working.
type ShippingStatus string

const (
	ShippingCreated         ShippingStatus = "shippingCreated"
	ShippingRequestSent     ShippingStatus = "shippingRequestSent"
	ShippingConfirmed       ShippingStatus = "shippingConfirmed"
	ShippingCompleted       ShippingStatus = "shippingCompleted"
	ShippingBillSend        ShippingStatus = "shippingBillSend"
	ShippingArhive          ShippingStatus = "shippingArhive"
	ShippingSlotBooked      ShippingStatus = "shippingSlotBooked"
	ShippingSlotCancelled   ShippingStatus = "shippingSlotCancelled"
	ShippingChangesAgreeing ShippingStatus = "shippingChangesAgreeing"
	ShippingCanceled        ShippingStatus = "shippingCanceled"
	ShippingRejectedByTc    ShippingStatus = "shippingRejectedByTc"
)

// IsValid reports whether the status is one of the known lifecycle values
func (s ShippingStatus) IsValid() bool {
	switch s {
	case ShippingCreated, ShippingRequestSent, ShippingConfirmed,
		ShippingCompleted, ShippingBillSend, ShippingArhive,
		ShippingSlotBooked, ShippingSlotCancelled, ShippingChangesAgreeing,
		ShippingCanceled, ShippingRejectedByTc:
		return true
	}
	return false
}

// MessageKey returns the localization key for the status display name
func (s ShippingStatus) MessageKey() string {
	return string(s)
}

// OrderStatus enumerates the order lifecycle
type OrderStatus string

const (
	OrderCreated    OrderStatus = "orderCreated"
	OrderConfirmed  OrderStatus = "orderConfirmed"
	OrderInShipping OrderStatus = "orderInShipping"
	OrderShipped    OrderStatus = "orderShipped"
	OrderDelivered  OrderStatus = "orderDelivered"
	OrderArchive    OrderStatus = "orderArchive"
	OrderCanceled   OrderStatus = "orderCanceled"
)

// VehicleStatus enumerates the vehicle arrival lifecycle mirrored onto orders
type VehicleStatus string

const (
	VehicleWaiting    VehicleStatus = "vehicleWaiting"
	VehicleArrived    VehicleStatus = "vehicleArrived"
	VehicleDepartured VehicleStatus = "vehicleDepartured"
)

// TarifficationType enumerates how a shipping is tariffed
type TarifficationType string

const (
	TarifficationFtl     TarifficationType = "ftl"
	TarifficationLtl     TarifficationType = "ltl"
	TarifficationPooling TarifficationType = "pooling"
	TarifficationMilkrun TarifficationType = "milkrun"
)
