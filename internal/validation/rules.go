package validation

import (
	"context"
	"errors"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// FieldError is one expected validation failure for a single field
type FieldError struct {
	ErrorType domain.ValidationErrorType `json:"errorType"`
	Message   string                     `json:"message"`
}

// DetailedValidationResult accumulates field-keyed errors over all rules.
// Any entry blocks persistence; the map travels back to the caller as data
// for UI display, never as a thrown error.
type DetailedValidationResult struct {
	Errors map[string]FieldError `json:"errors,omitempty"`
}

// NewDetailedValidationResult creates an empty result
func NewDetailedValidationResult() *DetailedValidationResult {
	return &DetailedValidationResult{Errors: make(map[string]FieldError)}
}

// AddError records a failure for one field. The first error per field wins.
func (r *DetailedValidationResult) AddError(field string, errorType domain.ValidationErrorType, message string) {
	if _, exists := r.Errors[field]; exists {
		return
	}
	r.Errors[field] = FieldError{ErrorType: errorType, Message: message}
}

// IsError reports whether any rule failed
func (r *DetailedValidationResult) IsError() bool {
	return len(r.Errors) > 0
}

// ShippingRule is one per-field validation rule for the shipping save
// pipeline. Rules append expected failures to the shared result; a non-nil
// error means infrastructure trouble and aborts the whole save.
type ShippingRule interface {
	Name() string
	Validate(ctx context.Context, changes fielddiff.EntityChanges[domain.Shipping], result *DetailedValidationResult) error
}

// RuleEngine runs every registered rule against every entity of a save batch
type RuleEngine struct {
	rules []ShippingRule
}

// NewRuleEngine creates a rule engine with the given registrations
func NewRuleEngine(rules ...ShippingRule) *RuleEngine {
	return &RuleEngine{rules: rules}
}

// Validate runs all rules over the batch and returns the accumulated
// field-keyed failures.
func (e *RuleEngine) Validate(ctx context.Context, batch []fielddiff.EntityChanges[domain.Shipping]) (*DetailedValidationResult, error) {
	result := NewDetailedValidationResult()
	for _, changes := range batch {
		for _, rule := range e.rules {
			if err := rule.Validate(ctx, changes, result); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// ReadonlyFieldsRule blocks edits to fields that are readonly in the
// shipping's pre-save lifecycle state, driven by the descriptor table.
type ReadonlyFieldsRule struct {
	schema fielddiff.Schema[domain.Shipping]
}

func NewReadonlyFieldsRule(schema fielddiff.Schema[domain.Shipping]) *ReadonlyFieldsRule {
	return &ReadonlyFieldsRule{schema: schema}
}

func (r *ReadonlyFieldsRule) Name() string { return "readonlyFields" }

func (r *ReadonlyFieldsRule) Validate(_ context.Context, changes fielddiff.EntityChanges[domain.Shipping], result *DetailedValidationResult) error {
	status := changes.Entity.Status
	if c, ok := changes.Change(fielddiff.FieldStatus); ok {
		if old, isStatus := c.Old.(domain.ShippingStatus); isStatus {
			status = old
		}
	}

	for _, change := range changes.Changes {
		d, ok := r.schema.Find(change.Field)
		if !ok {
			continue
		}
		if d.ReadonlyIn(status) {
			result.AddError(change.Field, domain.ValueIsReadonly,
				"field is readonly in the current shipping state")
		}
	}
	return nil
}

// CarrierExistsRule rejects a carrier reference that is not in the
// dictionary.
type CarrierExistsRule struct {
	carriers domain.CarrierRepository
}

func NewCarrierExistsRule(carriers domain.CarrierRepository) *CarrierExistsRule {
	return &CarrierExistsRule{carriers: carriers}
}

func (r *CarrierExistsRule) Name() string { return "carrierExists" }

func (r *CarrierExistsRule) Validate(ctx context.Context, changes fielddiff.EntityChanges[domain.Shipping], result *DetailedValidationResult) error {
	if !changes.FieldChanged(fielddiff.FieldCarrierID) {
		return nil
	}
	carrierID := changes.Entity.CarrierID
	if carrierID == nil {
		return nil
	}

	carrier, err := r.carriers.FindByID(ctx, *carrierID)
	if err != nil {
		if errors.Is(err, domain.ErrCarrierNotFound) {
			result.AddError(fielddiff.FieldCarrierID, domain.InvalidDictionaryValue,
				"carrier does not exist")
			return nil
		}
		return err
	}
	if carrier == nil || !carrier.IsActive {
		result.AddError(fielddiff.FieldCarrierID, domain.InvalidDictionaryValue,
			"carrier does not exist or is inactive")
	}
	return nil
}

// UniqueShippingNumberRule rejects a shipping number already taken by
// another shipping.
type UniqueShippingNumberRule struct {
	shippings domain.ShippingRepository
}

func NewUniqueShippingNumberRule(shippings domain.ShippingRepository) *UniqueShippingNumberRule {
	return &UniqueShippingNumberRule{shippings: shippings}
}

func (r *UniqueShippingNumberRule) Name() string { return "uniqueShippingNumber" }

func (r *UniqueShippingNumberRule) Validate(ctx context.Context, changes fielddiff.EntityChanges[domain.Shipping], result *DetailedValidationResult) error {
	if !changes.FieldChanged(fielddiff.FieldShippingNumber) {
		return nil
	}
	number := changes.Entity.ShippingNumber
	if number == "" {
		result.AddError(fielddiff.FieldShippingNumber, domain.ValueIsRequired,
			"shipping number is required")
		return nil
	}

	existing, err := r.shippings.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrShippingNotFound) {
			return nil
		}
		return err
	}
	if existing != nil && existing.ID != changes.Entity.ID {
		result.AddError(fielddiff.FieldShippingNumber, domain.DuplicatedRecord,
			"shipping number is already in use")
	}
	return nil
}
