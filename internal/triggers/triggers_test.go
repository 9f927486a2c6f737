package triggers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

func f64(v float64) *float64 { return &v }

func statusPtr(s domain.ShippingStatus) *domain.ShippingStatus { return &s }

func TestStatusCascadeMirrorsOrders(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingConfirmed}
	linked := &domain.Order{ID: "o1", ShippingID: strptr("s1"), OrderShippingStatus: statusPtr(domain.ShippingRequestSent)}
	foreign := &domain.Order{ID: "o2", ShippingID: strptr("other")}
	batch, _ := newTestBatch(map[string][]*domain.Order{"s1": {linked, foreign}})

	trigger := NewStatusCascade()
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldStatus),
	})

	require.NoError(t, err)
	require.NotNil(t, linked.OrderShippingStatus)
	assert.Equal(t, domain.ShippingConfirmed, *linked.OrderShippingStatus)
	assert.Nil(t, foreign.OrderShippingStatus)

	touched := batch.TouchedOrders()
	require.Len(t, touched, 1)
	assert.Equal(t, "o1", touched[0].ID)
}

func TestStatusCascadeIdempotent(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingConfirmed}
	order := &domain.Order{ID: "o1", ShippingID: strptr("s1"), OrderShippingStatus: statusPtr(domain.ShippingConfirmed)}
	batch, _ := newTestBatch(map[string][]*domain.Order{"s1": {order}})

	trigger := NewStatusCascade()
	changes := []ShippingChanges{changesFor(shipping, fielddiff.FieldStatus)}

	require.NoError(t, trigger.Execute(context.Background(), batch, changes))
	require.NoError(t, trigger.Execute(context.Background(), batch, changes))

	assert.Empty(t, batch.TouchedOrders(), "already-mirrored order must not be re-staged")
}

func TestCarrierFieldsSyncCopiesChangedFields(t *testing.T) {
	tariff := domain.TarifficationFtl
	shipping := &domain.Shipping{
		ID:                "s1",
		CarrierID:         strptr("c2"),
		VehicleTypeID:     strptr("v1"),
		TarifficationType: &tariff,
	}
	order := &domain.Order{ID: "o1", ShippingID: strptr("s1"), CarrierID: strptr("c1")}
	batch, _ := newTestBatch(map[string][]*domain.Order{"s1": {order}})

	trigger := NewCarrierFieldsSync()
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldCarrierID),
	})

	require.NoError(t, err)
	require.NotNil(t, order.CarrierID)
	assert.Equal(t, "c2", *order.CarrierID)
	assert.Nil(t, order.VehicleTypeID, "only the changed fields are copied")
	assert.Len(t, batch.TouchedOrders(), 1)
}

func TestBacklightResetOnCarrierChange(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", IsNewCarrierRequest: true}
	batch, _ := newTestBatch(nil)

	trigger := NewBacklightReset()
	changes := []ShippingChanges{changesFor(shipping, fielddiff.FieldCarrierID)}

	require.NoError(t, trigger.Execute(context.Background(), batch, changes))
	assert.False(t, shipping.IsNewCarrierRequest)
	assert.Len(t, batch.TouchedShippings(), 1)
}

func TestBacklightResetIdempotent(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1"}
	batch, _ := newTestBatch(nil)

	trigger := NewBacklightReset()
	changes := []ShippingChanges{changesFor(shipping, fielddiff.FieldCarrierID)}

	require.NoError(t, trigger.Execute(context.Background(), batch, changes))
	assert.Empty(t, batch.TouchedShippings(), "lowered backlight stays untouched")
}

func TestTotalCostCalculation(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", BasicDeliveryCost: f64(1000), DowntimeAmount: f64(200)}
	batch, _ := newTestBatch(nil)

	trigger := NewTotalCostCalculation(domain.NewDeliveryCostCalculator())
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldBasicDeliveryCost),
	})

	require.NoError(t, err)
	require.NotNil(t, shipping.TotalDeliveryCost)
	assert.Equal(t, 1200.0, *shipping.TotalDeliveryCost)
	assert.Len(t, batch.TouchedShippings(), 1)
}

func TestTotalCostCalculationHonorsManualOverride(t *testing.T) {
	shipping := &domain.Shipping{
		ID:                      "s1",
		BasicDeliveryCost:       f64(1000),
		TotalDeliveryCost:       f64(5000),
		ManualTotalDeliveryCost: true,
	}
	batch, _ := newTestBatch(nil)

	trigger := NewTotalCostCalculation(domain.NewDeliveryCostCalculator())
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldBasicDeliveryCost),
	})

	require.NoError(t, err)
	assert.Equal(t, 5000.0, *shipping.TotalDeliveryCost)
	assert.Empty(t, batch.TouchedShippings())
}

func TestOrderCostDistribution(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", TotalDeliveryCost: f64(300)}
	o1 := &domain.Order{ID: "o1", ShippingID: strptr("s1")}
	o2 := &domain.Order{ID: "o2", ShippingID: strptr("s1")}
	detached := &domain.Order{ID: "o3"}
	batch, _ := newTestBatch(map[string][]*domain.Order{"s1": {o1, o2, detached}})

	trigger := NewOrderCostDistribution(domain.NewDeliveryCostCalculator())
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldTotalDeliveryCost),
	})

	require.NoError(t, err)
	assert.Equal(t, 150.0, *o1.DeliveryCost)
	assert.Equal(t, 150.0, *o2.DeliveryCost)
	assert.Nil(t, detached.DeliveryCost)
	assert.Len(t, batch.TouchedOrders(), 2)
}

func TestRequestDataChangedRaisesBacklight(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingRequestSent, CarrierID: strptr("c1")}
	batch, _ := newTestBatch(nil)

	trigger := NewRequestDataChanged()
	changes := trigger.FilterTriggered([]ShippingChanges{
		changesFor(shipping, fielddiff.FieldVehicleTypeID),
	})
	require.Len(t, changes, 1)

	require.NoError(t, trigger.Execute(context.Background(), batch, changes))

	assert.True(t, shipping.IsNewCarrierRequest)
	require.Len(t, batch.Notifications(), 1)
	assert.Equal(t, domain.NotificationUpdateShippingRequestData, batch.Notifications()[0].Type)
	require.Len(t, batch.HistoryEntries(), 1)
	assert.Equal(t, "shippingRequestDataChanged", batch.HistoryEntries()[0].MessageKey)

	// Re-running over the same batch must not duplicate the side effects.
	require.NoError(t, trigger.Execute(context.Background(), batch, changes))
	assert.Len(t, batch.Notifications(), 1)
	assert.Len(t, batch.HistoryEntries(), 1)
}

func TestRequestDataChangedIgnoresOtherStatuses(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingCreated}

	trigger := NewRequestDataChanged()
	changes := trigger.FilterTriggered([]ShippingChanges{
		changesFor(shipping, fielddiff.FieldVehicleTypeID),
	})

	assert.Empty(t, changes)
}

func TestCarrierChangeGuard(t *testing.T) {
	guard := NewCarrierChangeGuard()

	tests := []struct {
		name        string
		status      domain.ShippingStatus
		expectError bool
	}{
		{"Created allows carrier change", domain.ShippingCreated, false},
		{"RequestSent allows carrier change", domain.ShippingRequestSent, false},
		{"Completed rejects carrier change", domain.ShippingCompleted, true},
		{"BillSend rejects carrier change", domain.ShippingBillSend, true},
		{"Archive rejects carrier change", domain.ShippingArhive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shipping := &domain.Shipping{ID: "s1", Status: tt.status}
			batch, _ := newTestBatch(nil)

			result := guard.Validate(context.Background(), batch, []ShippingChanges{
				changesFor(shipping, fielddiff.FieldCarrierID),
			})

			assert.Equal(t, tt.expectError, result.IsError)
			if tt.expectError {
				assert.Equal(t, fielddiff.FieldCarrierID, result.Field)
				assert.Equal(t, domain.ValueIsReadonly, result.ErrorType)
			}
		})
	}
}

type fakeSlotUpdater struct {
	result domain.ValidateResult
	calls  int
}

func (u *fakeSlotUpdater) UpdateSlot(ctx context.Context, shipping *domain.Shipping, orders []*domain.Order) domain.ValidateResult {
	u.calls++
	return u.result
}

func TestPoolingSlotUpdateFilter(t *testing.T) {
	synced := &domain.Shipping{ID: "s1", IsPooling: true, SyncedWithPooling: true, SlotID: strptr("slot-1")}
	unsynced := &domain.Shipping{ID: "s2", IsPooling: true, SlotID: strptr("slot-2")}
	plain := &domain.Shipping{ID: "s3"}

	trigger := NewPoolingSlotUpdate(&fakeSlotUpdater{}, testLogger())
	filtered := trigger.FilterTriggered([]ShippingChanges{
		changesFor(synced, fielddiff.FieldVehicleTypeID),
		changesFor(unsynced, fielddiff.FieldVehicleTypeID),
		changesFor(plain, fielddiff.FieldVehicleTypeID),
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, "s1", filtered[0].Entity.ID)
}

func TestPoolingSlotUpdateSuccess(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", IsPooling: true, SyncedWithPooling: true, SlotID: strptr("slot-1")}
	batch, _ := newTestBatch(nil)
	updater := &fakeSlotUpdater{}

	trigger := NewPoolingSlotUpdate(updater, testLogger())
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldVehicleTypeID),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, updater.calls)
	assert.True(t, shipping.SyncedWithPooling)
	assert.Empty(t, batch.HistoryEntries())
}

func TestPoolingSlotUpdateSoftFailure(t *testing.T) {
	shipping := &domain.Shipping{ID: "s1", IsPooling: true, SyncedWithPooling: true, SlotID: strptr("slot-1")}
	batch, _ := newTestBatch(nil)
	updater := &fakeSlotUpdater{result: domain.ValidateResult{IsError: true, Message: "slot is frozen"}}

	trigger := NewPoolingSlotUpdate(updater, testLogger())
	err := trigger.Execute(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldVehicleTypeID),
	})

	require.NoError(t, err, "remote rejection never fails the local save")
	assert.False(t, shipping.SyncedWithPooling, "lowered flag hands the shipping to reconciliation")
	require.Len(t, batch.HistoryEntries(), 1)
	assert.Equal(t, "poolingSlotUpdateFailed", batch.HistoryEntries()[0].MessageKey)
	assert.Equal(t, domain.SystemUser.ID, batch.HistoryEntries()[0].UserID)
	assert.Len(t, batch.TouchedShippings(), 1)
}
