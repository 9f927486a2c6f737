package triggers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/metrics"
)

// ShippingChanges is the per-entity diff the engine dispatches on
type ShippingChanges = fielddiff.EntityChanges[domain.Shipping]

// Category orders trigger execution. Later categories may depend on state
// written by earlier ones, so the relative order between categories is a
// hard contract. Ordering of triggers inside one category is unspecified.
type Category int

const (
	Synchronization Category = iota
	SyncFields
	Calculation
	UpdateFields
	PostUpdates
)

// String returns the category name for logs and metrics
func (c Category) String() string {
	switch c {
	case Synchronization:
		return "synchronization"
	case SyncFields:
		return "syncFields"
	case Calculation:
		return "calculation"
	case UpdateFields:
		return "updateFields"
	case PostUpdates:
		return "postUpdates"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Trigger is a field-change-driven side-effect handler. FilterTriggered is
// a pure filter narrowing the batch to the changes the trigger cares about;
// Execute processes the whole filtered batch in one pass so child loads
// happen once per batch instead of once per entity.
type Trigger interface {
	Name() string
	Category() Category
	FilterTriggered(changes []ShippingChanges) []ShippingChanges
	Execute(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error
}

// ValidationTrigger can veto a save. It runs during the validation phase,
// before any ordinary trigger executes.
type ValidationTrigger interface {
	Name() string
	FilterTriggered(changes []ShippingChanges) []ShippingChanges
	Validate(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) domain.ValidateResult
}

// Engine runs registered triggers against a save batch in category order.
// The registry is an explicit list built at startup; triggers are stateless
// and hold no state between invocations.
type Engine struct {
	triggers    []Trigger
	validations []ValidationTrigger
	logger      *logging.Logger
	metrics     *metrics.Metrics
}

// NewEngine creates a trigger engine with the given registrations
func NewEngine(logger *logging.Logger, m *metrics.Metrics, triggers []Trigger, validations []ValidationTrigger) *Engine {
	sorted := make([]Trigger, len(triggers))
	copy(sorted, triggers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category() < sorted[j].Category()
	})

	return &Engine{
		triggers:    sorted,
		validations: validations,
		logger:      logger.WithComponent("triggers"),
		metrics:     m,
	}
}

// Validate runs every validation trigger against the batch and returns the
// collected failures. Any failure vetoes the save; ordinary triggers must
// not have run yet.
func (e *Engine) Validate(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) []domain.ValidateResult {
	var failures []domain.ValidateResult
	for _, v := range e.validations {
		filtered := v.FilterTriggered(changes)
		if len(filtered) == 0 {
			continue
		}
		if result := v.Validate(ctx, batch, filtered); result.IsError {
			e.logger.Warn("Validation trigger rejected save",
				"trigger", v.Name(), "field", result.Field, "errorType", string(result.ErrorType))
			failures = append(failures, result)
		}
	}
	return failures
}

// Run executes all ordinary triggers over the batch, one trigger at a time
// in category order. Child orders of every changed shipping are preloaded
// once so triggers fan out in memory.
func (e *Engine) Run(ctx context.Context, batch *domain.BatchContext, changes []ShippingChanges) error {
	if len(changes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(changes))
	for _, c := range changes {
		ids = append(ids, c.Entity.ID)
	}
	if err := batch.PreloadOrders(ctx, ids); err != nil {
		return fmt.Errorf("preload batch orders: %w", err)
	}

	for _, t := range e.triggers {
		filtered := t.FilterTriggered(changes)
		if len(filtered) == 0 {
			continue
		}

		start := time.Now()
		err := t.Execute(ctx, batch, filtered)
		if e.metrics != nil {
			e.metrics.RecordTriggerExecution(t.Name(), t.Category().String(), err == nil, time.Since(start))
		}
		if err != nil {
			e.logger.WithError(err).Error("Trigger failed", "trigger", t.Name(), "category", t.Category().String())
			return fmt.Errorf("trigger %s: %w", t.Name(), err)
		}
	}
	return nil
}

// FilterByFields is the common FilterTriggered implementation: keep the
// entities for which at least one of the fields changed.
func FilterByFields(changes []ShippingChanges, fields ...string) []ShippingChanges {
	var out []ShippingChanges
	for _, c := range changes {
		if c.FieldChanged(fields...) {
			out = append(out, c)
		}
	}
	return out
}
