package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestShippingClone(t *testing.T) {
	tariff := TarifficationPooling
	original := &Shipping{
		ID:                "s1",
		ShippingNumber:    "SH-001",
		Status:            ShippingConfirmed,
		CarrierID:         strptr("c1"),
		TarifficationType: &tariff,
		BasicDeliveryCost: f64(100),
		SlotID:            strptr("slot-1"),
	}

	clone := original.Clone()

	require.Equal(t, original, clone)

	// Mutating the clone must not leak into the original.
	*clone.CarrierID = "c2"
	*clone.BasicDeliveryCost = 500
	clone.Status = ShippingCanceled

	assert.Equal(t, "c1", *original.CarrierID)
	assert.Equal(t, 100.0, *original.BasicDeliveryCost)
	assert.Equal(t, ShippingConfirmed, original.Status)
}

func TestNewShippingStartsCreated(t *testing.T) {
	s := NewShipping("s1", "SH-001", "user-1")

	assert.Equal(t, ShippingCreated, s.Status)
	assert.Equal(t, "SH-001", s.ShippingNumber)
	assert.Equal(t, "user-1", s.CreatedBy)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestOrderAttachDetach(t *testing.T) {
	tariff := TarifficationFtl
	shipping := &Shipping{
		ID:                "s1",
		Status:            ShippingCreated,
		CarrierID:         strptr("c1"),
		VehicleTypeID:     strptr("v1"),
		TarifficationType: &tariff,
	}
	order := &Order{ID: "o1", Status: OrderConfirmed}

	order.AttachToShipping(shipping)

	require.NotNil(t, order.ShippingID)
	assert.Equal(t, "s1", *order.ShippingID)
	require.NotNil(t, order.OrderShippingStatus)
	assert.Equal(t, ShippingCreated, *order.OrderShippingStatus)
	assert.Equal(t, "c1", *order.CarrierID)
	assert.Equal(t, OrderInShipping, order.Status)

	order.DeliveryCost = f64(50)
	order.DetachFromShipping()

	assert.Nil(t, order.ShippingID)
	assert.Nil(t, order.OrderShippingStatus)
	assert.Nil(t, order.ShippingStatus)
	assert.Nil(t, order.DeliveryCost)
	assert.Equal(t, OrderConfirmed, order.Status)
}

func TestOrderDetachKeepsManualCost(t *testing.T) {
	order := &Order{
		ID:                 "o1",
		ShippingID:         strptr("s1"),
		DeliveryCost:       f64(75),
		ManualDeliveryCost: true,
	}

	order.DetachFromShipping()

	require.NotNil(t, order.DeliveryCost)
	assert.Equal(t, 75.0, *order.DeliveryCost)
}

func TestShippingStatusIsValid(t *testing.T) {
	for _, s := range []ShippingStatus{
		ShippingCreated, ShippingRequestSent, ShippingConfirmed, ShippingCompleted,
		ShippingBillSend, ShippingArhive, ShippingSlotBooked, ShippingSlotCancelled,
		ShippingChangesAgreeing, ShippingCanceled, ShippingRejectedByTc,
	} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, ShippingStatus("shippingUnknown").IsValid())
}

func TestUserRoles(t *testing.T) {
	user := User{Roles: []string{RoleLogisticsManager}}

	assert.True(t, user.HasRole(RoleLogisticsManager))
	assert.False(t, user.HasRole(RoleAdministrator))
	assert.True(t, user.HasAnyRole([]string{RoleAdministrator, RoleLogisticsManager}))
	assert.False(t, user.HasAnyRole([]string{RoleAdministrator}))
	assert.True(t, user.HasAnyRole(nil), "empty role list means unrestricted")
}
