package triggers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
)

// Test fixtures

type fakeOrderRepo struct {
	orders map[string][]*domain.Order
	calls  int
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	for _, orders := range r.orders {
		for _, o := range orders {
			if o.ID == id {
				return o, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindByShippingID(ctx context.Context, shippingID string) ([]*domain.Order, error) {
	return r.orders[shippingID], nil
}

func (r *fakeOrderRepo) FindByShippingIDs(ctx context.Context, shippingIDs []string) (map[string][]*domain.Order, error) {
	r.calls++
	out := make(map[string][]*domain.Order)
	for _, id := range shippingIDs {
		out[id] = r.orders[id]
	}
	return out, nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, order *domain.Order) error { return nil }

type fakeStatRepo struct {
	stats map[string]*domain.CarrierRequestDatesStat
}

func (r *fakeStatRepo) FindByShippingID(ctx context.Context, shippingID string) (*domain.CarrierRequestDatesStat, error) {
	return r.stats[shippingID], nil
}

func (r *fakeStatRepo) Save(ctx context.Context, stat *domain.CarrierRequestDatesStat) error {
	return nil
}

func newTestBatch(orders map[string][]*domain.Order) (*domain.BatchContext, *fakeOrderRepo) {
	repo := &fakeOrderRepo{orders: orders}
	return domain.NewBatchContext(repo, &fakeStatRepo{stats: map[string]*domain.CarrierRequestDatesStat{}}), repo
}

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("test")
	cfg.Level = logging.LevelError
	return logging.New(cfg)
}

func changesFor(s *domain.Shipping, fields ...string) ShippingChanges {
	c := ShippingChanges{Entity: s}
	for _, f := range fields {
		c.Changes = append(c.Changes, fielddiff.FieldChange{Field: f})
	}
	return c
}

// recordingTrigger notes the order it was executed in
type recordingTrigger struct {
	name     string
	category Category
	log      *[]string
}

func (t *recordingTrigger) Name() string       { return t.name }
func (t *recordingTrigger) Category() Category { return t.category }

func (t *recordingTrigger) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return changes
}

func (t *recordingTrigger) Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	*t.log = append(*t.log, t.name)
	return nil
}

type rejectingValidation struct {
	field string
}

func (v *rejectingValidation) Name() string { return "rejecting" }

func (v *rejectingValidation) FilterTriggered(changes []ShippingChanges) []ShippingChanges {
	return FilterByFields(changes, v.field)
}

func (v *rejectingValidation) Validate(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) domain.ValidateResult {
	return domain.ValidationError(v.field, domain.ValueIsReadonly, "rejected")
}

func TestEngineRunsCategoriesInOrder(t *testing.T) {
	var log []string
	engine := NewEngine(testLogger(), nil, []Trigger{
		&recordingTrigger{name: "post", category: PostUpdates, log: &log},
		&recordingTrigger{name: "calc", category: Calculation, log: &log},
		&recordingTrigger{name: "sync", category: Synchronization, log: &log},
		&recordingTrigger{name: "update", category: UpdateFields, log: &log},
		&recordingTrigger{name: "fields", category: SyncFields, log: &log},
	}, nil)

	batch, _ := newTestBatch(nil)
	shipping := &domain.Shipping{ID: "s1"}
	err := engine.Run(context.Background(), batch, []ShippingChanges{
		changesFor(shipping, fielddiff.FieldStatus),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"sync", "fields", "calc", "update", "post"}, log)
}

func TestEngineStableOrderWithinCategory(t *testing.T) {
	var log []string
	engine := NewEngine(testLogger(), nil, []Trigger{
		&recordingTrigger{name: "first", category: Calculation, log: &log},
		&recordingTrigger{name: "second", category: Calculation, log: &log},
	}, nil)

	batch, _ := newTestBatch(nil)
	err := engine.Run(context.Background(), batch, []ShippingChanges{
		changesFor(&domain.Shipping{ID: "s1"}, fielddiff.FieldStatus),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, log)
}

func TestEnginePreloadsOrdersOnce(t *testing.T) {
	engine := NewEngine(testLogger(), nil, []Trigger{
		NewStatusCascade(),
		NewCarrierFieldsSync(),
	}, nil)

	s1 := &domain.Shipping{ID: "s1", Status: domain.ShippingConfirmed}
	s2 := &domain.Shipping{ID: "s2", Status: domain.ShippingConfirmed}
	batch, repo := newTestBatch(map[string][]*domain.Order{
		"s1": {{ID: "o1", ShippingID: strptr("s1")}},
		"s2": {{ID: "o2", ShippingID: strptr("s2")}},
	})

	err := engine.Run(context.Background(), batch, []ShippingChanges{
		changesFor(s1, fielddiff.FieldStatus, fielddiff.FieldCarrierID),
		changesFor(s2, fielddiff.FieldStatus, fielddiff.FieldCarrierID),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "children of the whole batch load with one query")
}

func TestEngineEmptyBatchIsNoop(t *testing.T) {
	engine := NewEngine(testLogger(), nil, nil, nil)
	batch, repo := newTestBatch(nil)

	require.NoError(t, engine.Run(context.Background(), batch, nil))
	assert.Zero(t, repo.calls)
}

func TestEngineValidateCollectsFailures(t *testing.T) {
	engine := NewEngine(testLogger(), nil, nil, []ValidationTrigger{
		&rejectingValidation{field: fielddiff.FieldCarrierID},
	})
	batch, _ := newTestBatch(nil)

	failures := engine.Validate(context.Background(), batch, []ShippingChanges{
		changesFor(&domain.Shipping{ID: "s1"}, fielddiff.FieldCarrierID),
	})

	require.Len(t, failures, 1)
	assert.Equal(t, fielddiff.FieldCarrierID, failures[0].Field)
}

func TestEngineValidateSkipsUnmatchedTriggers(t *testing.T) {
	engine := NewEngine(testLogger(), nil, nil, []ValidationTrigger{
		&rejectingValidation{field: fielddiff.FieldCarrierID},
	})
	batch, _ := newTestBatch(nil)

	failures := engine.Validate(context.Background(), batch, []ShippingChanges{
		changesFor(&domain.Shipping{ID: "s1"}, fielddiff.FieldStatus),
	})

	assert.Empty(t, failures)
}

func TestFilterByFields(t *testing.T) {
	s1 := &domain.Shipping{ID: "s1"}
	s2 := &domain.Shipping{ID: "s2"}
	batch := []ShippingChanges{
		changesFor(s1, fielddiff.FieldCarrierID),
		changesFor(s2, fielddiff.FieldStatus),
	}

	filtered := FilterByFields(batch, fielddiff.FieldCarrierID)

	require.Len(t, filtered, 1)
	assert.Equal(t, "s1", filtered[0].Entity.ID)

	assert.Empty(t, FilterByFields(batch, fielddiff.FieldSlotID))
}

func strptr(s string) *string { return &s }
