package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/actions"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/notifications"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/apperrors"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/metrics"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/outbox"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/translation"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/triggers"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/validation"
)

// ShippingService drives the shipping save and action pipelines. Every
// write path ends in one transactional commit of the touched shippings,
// orders, statistics, history entries and outbox events.
type ShippingService struct {
	shippings domain.ShippingRepository
	orders    domain.OrderRepository
	stats     domain.CarrierRequestStatRepository
	histories domain.HistoryRepository
	outbox    outbox.Repository
	uow       domain.UnitOfWork

	rules    *validation.RuleEngine
	triggers *triggers.Engine
	registry *actions.Registry
	notifier *notifications.Service

	translator *translation.Translator
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

// NewShippingService creates the shipping application service
func NewShippingService(
	shippings domain.ShippingRepository,
	orders domain.OrderRepository,
	stats domain.CarrierRequestStatRepository,
	histories domain.HistoryRepository,
	outboxRepo outbox.Repository,
	uow domain.UnitOfWork,
	rules *validation.RuleEngine,
	triggerEngine *triggers.Engine,
	registry *actions.Registry,
	notifier *notifications.Service,
	translator *translation.Translator,
	logger *logging.Logger,
	m *metrics.Metrics,
) *ShippingService {
	return &ShippingService{
		shippings:  shippings,
		orders:     orders,
		stats:      stats,
		histories:  histories,
		outbox:     outboxRepo,
		uow:        uow,
		rules:      rules,
		triggers:   triggerEngine,
		registry:   registry,
		notifier:   notifier,
		translator: translator,
		logger:     logger.WithComponent("shippingService"),
		metrics:    m,
	}
}

// SaveOrCreate saves one shipping, creating it when the DTO carries no ID
func (s *ShippingService) SaveOrCreate(ctx context.Context, cmd SaveOrCreateCommand) (*SaveResultDTO, error) {
	saved, validationResult, err := s.saveBatch(ctx, []ShippingSaveDto{cmd.Dto}, cmd.User)
	if err != nil {
		return nil, err
	}
	if validationResult != nil {
		return &SaveResultDTO{IsError: true, Validation: validationResult}, nil
	}
	return &SaveResultDTO{Shipping: ToShippingDTO(saved[0])}, nil
}

// BulkSaveResultDTO is the outcome of a bulk update
type BulkSaveResultDTO struct {
	IsError    bool                                 `json:"isError"`
	Shippings  []*ShippingDTO                       `json:"shippings,omitempty"`
	Validation *validation.DetailedValidationResult `json:"validation,omitempty"`
}

// UpdateShippings saves many shippings as one batch: one rule pass, one
// trigger pass with one bulk child-order load, one transaction. A
// validation failure anywhere in the batch rejects the whole batch.
func (s *ShippingService) UpdateShippings(ctx context.Context, cmd BulkUpdateCommand) (*BulkSaveResultDTO, error) {
	if len(cmd.Dtos) == 0 {
		return &BulkSaveResultDTO{}, nil
	}

	saved, validationResult, err := s.saveBatch(ctx, cmd.Dtos, cmd.User)
	if err != nil {
		return nil, err
	}
	if validationResult != nil {
		return &BulkSaveResultDTO{IsError: true, Validation: validationResult}, nil
	}

	dtos := make([]*ShippingDTO, 0, len(saved))
	for _, sh := range saved {
		dtos = append(dtos, ToShippingDTO(sh))
	}
	return &BulkSaveResultDTO{Shippings: dtos}, nil
}

// saveBatch runs the shared save pipeline. A non-nil validation result
// means the batch was rejected with zero side effects.
func (s *ShippingService) saveBatch(ctx context.Context, dtos []ShippingSaveDto, user domain.User) ([]*domain.Shipping, *validation.DetailedValidationResult, error) {
	batch := domain.NewBatchContext(s.orders, s.stats)

	var changesBatch []triggers.ShippingChanges
	saved := make([]*domain.Shipping, 0, len(dtos))

	for _, dto := range dtos {
		shipping, err := s.loadOrCreate(ctx, dto, user)
		if err != nil {
			return nil, nil, err
		}

		before := shipping.Clone()
		manual := applyShippingDto(dto, shipping)
		changes := fielddiff.Collect(fielddiff.ShippingSchema, before, shipping, manual)

		// A create funnels the number through the rules even when the DTO
		// left it out, so required and uniqueness checks always run.
		if dto.ID == nil && !changes.FieldChanged(fielddiff.FieldShippingNumber) {
			changes.Changes = append(changes.Changes, fielddiff.FieldChange{
				Field:           fielddiff.FieldShippingNumber,
				New:             shipping.ShippingNumber,
				ManuallyChanged: true,
			})
		}

		saved = append(saved, shipping)
		if !changes.HasChanges() && dto.ID != nil {
			continue
		}

		batch.MarkShippingTouched(shipping)
		changesBatch = append(changesBatch, changes)
	}

	ruleResult, err := s.rules.Validate(ctx, changesBatch)
	if err != nil {
		return nil, nil, fmt.Errorf("validation rules: %w", err)
	}
	if ruleResult.IsError() {
		return nil, ruleResult, nil
	}

	if failures := s.triggers.Validate(ctx, batch, changesBatch); len(failures) > 0 {
		result := validation.NewDetailedValidationResult()
		for _, f := range failures {
			result.AddError(f.Field, f.ErrorType, f.Message)
			if s.metrics != nil {
				s.metrics.RecordValidationFailure("shipping", string(f.ErrorType))
			}
		}
		return nil, result, nil
	}

	if err := s.triggers.Run(ctx, batch, changesBatch); err != nil {
		return nil, nil, err
	}

	if err := s.commit(ctx, batch); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Saved shipping batch", "count", len(saved), "userId", user.ID)
	return saved, nil, nil
}

func (s *ShippingService) loadOrCreate(ctx context.Context, dto ShippingSaveDto, user domain.User) (*domain.Shipping, error) {
	if dto.ID == nil {
		// The number is applied by the DTO mapper so the field diff sees it
		// as a change and the uniqueness rule runs on creates too.
		return domain.NewShipping(uuid.New().String(), "", user.ID), nil
	}

	shipping, err := s.shippings.FindByID(ctx, *dto.ID)
	if err != nil {
		return nil, fmt.Errorf("load shipping %s: %w", *dto.ID, err)
	}
	if shipping == nil {
		return nil, apperrors.ErrNotFoundWithID("shipping", *dto.ID)
	}
	return shipping, nil
}

// InvokeAction runs a named action over the selected shippings. Results are
// per shipping; a domain failure on one shipping does not stop the others.
func (s *ShippingService) InvokeAction(ctx context.Context, cmd InvokeActionCommand) ([]ActionResultDTO, error) {
	action, err := s.registry.Get(cmd.ActionName)
	if err != nil {
		return nil, apperrors.ErrNotFound("action " + cmd.ActionName)
	}
	if !cmd.User.HasAnyRole(action.Roles()) {
		return nil, apperrors.ErrForbidden("action " + cmd.ActionName + " is not permitted for this user")
	}

	batch := domain.NewBatchContext(s.orders, s.stats)
	if err := batch.PreloadOrders(ctx, cmd.ShippingIDs); err != nil {
		return nil, fmt.Errorf("preload orders: %w", err)
	}

	results := make([]ActionResultDTO, 0, len(cmd.ShippingIDs))
	var changesBatch []triggers.ShippingChanges

	for _, id := range cmd.ShippingIDs {
		shipping, err := s.shippings.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load shipping %s: %w", id, err)
		}
		if shipping == nil {
			results = append(results, ActionResultDTO{
				ShippingID: id,
				IsError:    true,
				Message:    s.translator.Translate(cmd.User.Language, "shippingNotFound"),
			})
			continue
		}

		before := shipping.Clone()
		res := action.Run(ctx, batch, cmd.User, shipping)
		if s.metrics != nil {
			s.metrics.RecordActionInvocation(action.Name(), res.IsError)
		}

		if !res.IsError {
			changes := fielddiff.Collect(fielddiff.ShippingSchema, before, shipping, nil)
			if changes.HasChanges() {
				changesBatch = append(changesBatch, changes)
			}
		}

		results = append(results, ActionResultDTO{
			ShippingID: id,
			IsError:    res.IsError,
			Message:    s.resolveMessage(cmd.User, res),
		})
	}

	if len(changesBatch) > 0 {
		if err := s.triggers.Run(ctx, batch, changesBatch); err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Audit(ctx, "invokeAction", "shipping", cmd.ActionName, cmd.User.ID,
		map[string]any{"shippingIds": cmd.ShippingIDs})
	return results, nil
}

// GetAvailableActions lists the actions the user may invoke on a shipping
func (s *ShippingService) GetAvailableActions(ctx context.Context, query GetAvailableActionsQuery) ([]AvailableActionDTO, error) {
	shipping, err := s.shippings.FindByID(ctx, query.ShippingID)
	if err != nil {
		return nil, fmt.Errorf("load shipping %s: %w", query.ShippingID, err)
	}
	if shipping == nil {
		return nil, apperrors.ErrNotFoundWithID("shipping", query.ShippingID)
	}

	available := s.registry.AvailableFor(shipping.Status, query.User)
	dtos := make([]AvailableActionDTO, 0, len(available))
	for _, a := range available {
		dtos = append(dtos, AvailableActionDTO{
			Name:        a.Name(),
			DisplayName: s.translator.Translate(query.User.Language, a.Name()),
		})
	}
	return dtos, nil
}

// GetShipping fetches one shipping by ID
func (s *ShippingService) GetShipping(ctx context.Context, query GetShippingQuery) (*ShippingDTO, error) {
	shipping, err := s.shippings.FindByID(ctx, query.ShippingID)
	if err != nil {
		return nil, fmt.Errorf("load shipping %s: %w", query.ShippingID, err)
	}
	if shipping == nil {
		return nil, apperrors.ErrNotFoundWithID("shipping", query.ShippingID)
	}
	return ToShippingDTO(shipping), nil
}

// GetShippingOrders lists the child orders of one shipping
func (s *ShippingService) GetShippingOrders(ctx context.Context, shippingID string) ([]*OrderDTO, error) {
	orders, err := s.orders.FindByShippingID(ctx, shippingID)
	if err != nil {
		return nil, fmt.Errorf("load orders of shipping %s: %w", shippingID, err)
	}

	dtos := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, ToOrderDTO(o))
	}
	return dtos, nil
}

// resolveMessage localizes an action result for the invoking user
func (s *ShippingService) resolveMessage(user domain.User, res domain.AppResult) string {
	if res.Message != "" {
		return res.Message
	}
	if res.MessageKey == "" {
		return ""
	}
	return s.translator.Translate(user.Language, res.MessageKey)
}

// commit persists everything the batch touched in one transaction
func (s *ShippingService) commit(ctx context.Context, batch *domain.BatchContext) error {
	events, err := s.notifier.ToOutboxEvents(batch.Notifications())
	if err != nil {
		return fmt.Errorf("build outbox events: %w", err)
	}

	return s.uow.Execute(ctx, func(txCtx context.Context) error {
		for _, sh := range batch.TouchedShippings() {
			if err := s.shippings.Save(txCtx, sh); err != nil {
				return fmt.Errorf("save shipping %s: %w", sh.ID, err)
			}
		}
		for _, o := range batch.TouchedOrders() {
			if err := s.orders.Save(txCtx, o); err != nil {
				return fmt.Errorf("save order %s: %w", o.ID, err)
			}
		}
		for _, stat := range batch.TouchedStats() {
			if err := s.stats.Save(txCtx, stat); err != nil {
				return fmt.Errorf("save carrier request stat %s: %w", stat.ID, err)
			}
		}
		if entries := batch.HistoryEntries(); len(entries) > 0 {
			if err := s.histories.SaveAll(txCtx, entries); err != nil {
				return fmt.Errorf("save history: %w", err)
			}
		}
		if len(events) > 0 {
			if err := s.outbox.SaveAll(txCtx, events); err != nil {
				return fmt.Errorf("save outbox events: %w", err)
			}
		}
		return nil
	})
}
