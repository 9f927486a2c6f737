package fielddiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

func strptr(s string) *string { return &s }
func f64(v float64) *float64 { return &v }

func TestCollectDetectsChanges(t *testing.T) {
	before := &domain.Shipping{ID: "s1", ShippingNumber: "SH-001", Status: domain.ShippingCreated}
	after := before.Clone()
	after.ShippingNumber = "SH-002"
	after.Status = domain.ShippingRequestSent

	changes := Collect(ShippingSchema, before, after, nil)

	require.Len(t, changes.Changes, 2)
	assert.True(t, changes.FieldChanged(FieldShippingNumber))
	assert.True(t, changes.FieldChanged(FieldStatus))
	assert.False(t, changes.FieldChanged(FieldCarrierID))

	c, ok := changes.Change(FieldStatus)
	require.True(t, ok)
	assert.Equal(t, domain.ShippingCreated, c.Old)
	assert.Equal(t, domain.ShippingRequestSent, c.New)
}

func TestCollectNoChanges(t *testing.T) {
	before := &domain.Shipping{ID: "s1", ShippingNumber: "SH-001"}
	after := before.Clone()

	changes := Collect(ShippingSchema, before, after, nil)

	assert.False(t, changes.HasChanges())
}

func TestCollectRaisesManualFlag(t *testing.T) {
	before := &domain.Shipping{ID: "s1"}
	after := before.Clone()
	after.BasicDeliveryCost = f64(1000)

	changes := Collect(ShippingSchema, before, after, map[string]bool{FieldBasicDeliveryCost: true})

	c, ok := changes.Change(FieldBasicDeliveryCost)
	require.True(t, ok)
	assert.True(t, c.ManuallyChanged)
	assert.True(t, after.ManualBasicDeliveryCost, "manual override flag must be raised on the entity")
}

func TestCollectSystemChangeLeavesManualFlag(t *testing.T) {
	before := &domain.Shipping{ID: "s1"}
	after := before.Clone()
	after.TotalDeliveryCost = f64(500)

	changes := Collect(ShippingSchema, before, after, nil)

	c, ok := changes.Change(FieldTotalDeliveryCost)
	require.True(t, ok)
	assert.False(t, c.ManuallyChanged)
	assert.False(t, after.ManualTotalDeliveryCost)
}

func TestCollectPointerFields(t *testing.T) {
	before := &domain.Shipping{ID: "s1", CarrierID: strptr("c1")}
	after := before.Clone()
	after.CarrierID = strptr("c2")

	changes := Collect(ShippingSchema, before, after, nil)

	c, ok := changes.Change(FieldCarrierID)
	require.True(t, ok)
	assert.Equal(t, "c1", c.Old)
	assert.Equal(t, "c2", c.New)
}

func TestSchemaReadonlyStatuses(t *testing.T) {
	d, ok := ShippingSchema.Find(FieldCarrierID)
	require.True(t, ok)

	assert.True(t, d.ReadonlyIn(domain.ShippingCompleted))
	assert.True(t, d.ReadonlyIn(domain.ShippingArhive))
	assert.False(t, d.ReadonlyIn(domain.ShippingCreated))

	status, ok := ShippingSchema.Find(FieldStatus)
	require.True(t, ok)
	assert.False(t, status.ReadonlyIn(domain.ShippingCompleted),
		"status itself transitions through actions in any state")
}
