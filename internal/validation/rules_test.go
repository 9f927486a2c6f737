package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

type fakeCarrierRepo struct {
	carriers map[string]*domain.Carrier
}

func (r *fakeCarrierRepo) FindByID(ctx context.Context, id string) (*domain.Carrier, error) {
	return r.carriers[id], nil
}

func (r *fakeCarrierRepo) FindAll(ctx context.Context) ([]*domain.Carrier, error) { return nil, nil }
func (r *fakeCarrierRepo) Save(ctx context.Context, carrier *domain.Carrier) error {
	return nil
}
func (r *fakeCarrierRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeShippingRepo struct {
	byNumber map[string]*domain.Shipping
}

func (r *fakeShippingRepo) FindByID(ctx context.Context, id string) (*domain.Shipping, error) {
	return nil, nil
}

func (r *fakeShippingRepo) FindByNumber(ctx context.Context, number string) (*domain.Shipping, error) {
	return r.byNumber[number], nil
}

func (r *fakeShippingRepo) FindByStatus(ctx context.Context, status domain.ShippingStatus) ([]*domain.Shipping, error) {
	return nil, nil
}

func (r *fakeShippingRepo) FindPoolingOutOfSync(ctx context.Context, limit int) ([]*domain.Shipping, error) {
	return nil, nil
}

func (r *fakeShippingRepo) Save(ctx context.Context, shipping *domain.Shipping) error { return nil }

func strptr(s string) *string { return &s }

func changesWith(s *domain.Shipping, changes ...fielddiff.FieldChange) fielddiff.EntityChanges[domain.Shipping] {
	return fielddiff.EntityChanges[domain.Shipping]{Entity: s, Changes: changes}
}

func TestDetailedValidationResult(t *testing.T) {
	result := NewDetailedValidationResult()
	assert.False(t, result.IsError())

	result.AddError("carrierId", domain.InvalidDictionaryValue, "first")
	result.AddError("carrierId", domain.ValueIsRequired, "second")

	assert.True(t, result.IsError())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "first", result.Errors["carrierId"].Message, "first error per field wins")
}

func TestReadonlyFieldsRule(t *testing.T) {
	rule := NewReadonlyFieldsRule(fielddiff.ShippingSchema)

	t.Run("Locked state blocks commercial edits", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingCompleted}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldCarrierID, Old: "c1", New: "c2"},
		), result)

		require.NoError(t, err)
		require.True(t, result.IsError())
		assert.Equal(t, domain.ValueIsReadonly, result.Errors[fielddiff.FieldCarrierID].ErrorType)
	})

	t.Run("Open state allows edits", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingCreated}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldCarrierID, Old: "c1", New: "c2"},
		), result)

		require.NoError(t, err)
		assert.False(t, result.IsError())
	})

	t.Run("Readonly check uses the pre-save status", func(t *testing.T) {
		// The action already moved the entity to Canceled in this batch;
		// the fields were edited while it still was Created, so they pass.
		shipping := &domain.Shipping{ID: "s1", Status: domain.ShippingCanceled}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldStatus, Old: domain.ShippingCreated, New: domain.ShippingCanceled},
			fielddiff.FieldChange{Field: fielddiff.FieldCarrierID, Old: "c1", New: "c2"},
		), result)

		require.NoError(t, err)
		assert.False(t, result.IsError())
	})
}

func TestCarrierExistsRule(t *testing.T) {
	repo := &fakeCarrierRepo{carriers: map[string]*domain.Carrier{
		"c1": {ID: "c1", Title: "Active Carrier", IsActive: true},
		"c2": {ID: "c2", Title: "Inactive Carrier", IsActive: false},
	}}
	rule := NewCarrierExistsRule(repo)

	tests := []struct {
		name        string
		carrierID   *string
		expectError bool
	}{
		{"Active carrier passes", strptr("c1"), false},
		{"Inactive carrier fails", strptr("c2"), true},
		{"Unknown carrier fails", strptr("missing"), true},
		{"Cleared carrier passes", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shipping := &domain.Shipping{ID: "s1", CarrierID: tt.carrierID}
			result := NewDetailedValidationResult()

			err := rule.Validate(context.Background(), changesWith(shipping,
				fielddiff.FieldChange{Field: fielddiff.FieldCarrierID},
			), result)

			require.NoError(t, err)
			assert.Equal(t, tt.expectError, result.IsError())
			if tt.expectError {
				assert.Equal(t, domain.InvalidDictionaryValue, result.Errors[fielddiff.FieldCarrierID].ErrorType)
			}
		})
	}

	t.Run("Skips when carrier did not change", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "s1", CarrierID: strptr("missing")}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldStatus},
		), result)

		require.NoError(t, err)
		assert.False(t, result.IsError())
	})
}

func TestUniqueShippingNumberRule(t *testing.T) {
	repo := &fakeShippingRepo{byNumber: map[string]*domain.Shipping{
		"SH-TAKEN": {ID: "other", ShippingNumber: "SH-TAKEN"},
	}}
	rule := NewUniqueShippingNumberRule(repo)

	t.Run("Empty number is required", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "s1"}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldShippingNumber, Old: "SH-001", New: ""},
		), result)

		require.NoError(t, err)
		require.True(t, result.IsError())
		assert.Equal(t, domain.ValueIsRequired, result.Errors[fielddiff.FieldShippingNumber].ErrorType)
	})

	t.Run("Duplicate number rejected", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "s1", ShippingNumber: "SH-TAKEN"}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldShippingNumber, New: "SH-TAKEN"},
		), result)

		require.NoError(t, err)
		require.True(t, result.IsError())
		assert.Equal(t, domain.DuplicatedRecord, result.Errors[fielddiff.FieldShippingNumber].ErrorType)
	})

	t.Run("Own number is not a duplicate", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "other", ShippingNumber: "SH-TAKEN"}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldShippingNumber, New: "SH-TAKEN"},
		), result)

		require.NoError(t, err)
		assert.False(t, result.IsError())
	})

	t.Run("Fresh number passes", func(t *testing.T) {
		shipping := &domain.Shipping{ID: "s1", ShippingNumber: "SH-FRESH"}
		result := NewDetailedValidationResult()

		err := rule.Validate(context.Background(), changesWith(shipping,
			fielddiff.FieldChange{Field: fielddiff.FieldShippingNumber, New: "SH-FRESH"},
		), result)

		require.NoError(t, err)
		assert.False(t, result.IsError())
	})
}

func TestRuleEngineAggregatesOverBatch(t *testing.T) {
	engine := NewRuleEngine(
		NewReadonlyFieldsRule(fielddiff.ShippingSchema),
		NewUniqueShippingNumberRule(&fakeShippingRepo{byNumber: map[string]*domain.Shipping{}}),
	)

	locked := &domain.Shipping{ID: "s1", Status: domain.ShippingArhive}
	unnumbered := &domain.Shipping{ID: "s2", Status: domain.ShippingCreated}

	result, err := engine.Validate(context.Background(), []fielddiff.EntityChanges[domain.Shipping]{
		changesWith(locked, fielddiff.FieldChange{Field: fielddiff.FieldCarrierID}),
		changesWith(unnumbered, fielddiff.FieldChange{Field: fielddiff.FieldShippingNumber, New: ""}),
	})

	require.NoError(t, err)
	require.True(t, result.IsError())
	assert.Len(t, result.Errors, 2)
}
