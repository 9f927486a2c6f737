package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/apperrors"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/validation"
)

// DictionaryService serves the carrier dictionary behind the generic grid
// endpoints. Dictionary writes share the validation error contract with
// the shipping pipeline: field-keyed errors as data, never thrown.
type DictionaryService struct {
	carriers domain.CarrierRepository
	logger   *logging.Logger
}

// NewDictionaryService creates a dictionary service
func NewDictionaryService(carriers domain.CarrierRepository, logger *logging.Logger) *DictionaryService {
	return &DictionaryService{
		carriers: carriers,
		logger:   logger.WithComponent("dictionaryService"),
	}
}

// ListCarriers returns every carrier dictionary entry
func (s *DictionaryService) ListCarriers(ctx context.Context) ([]*CarrierDTO, error) {
	carriers, err := s.carriers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}

	dtos := make([]*CarrierDTO, 0, len(carriers))
	for _, c := range carriers {
		dtos = append(dtos, ToCarrierDTO(c))
	}
	return dtos, nil
}

// GetCarrier fetches one carrier by ID
func (s *DictionaryService) GetCarrier(ctx context.Context, id string) (*CarrierDTO, error) {
	carrier, err := s.carriers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load carrier %s: %w", id, err)
	}
	if carrier == nil {
		return nil, apperrors.ErrNotFoundWithID("carrier", id)
	}
	return ToCarrierDTO(carrier), nil
}

// CarrierSaveResultDTO is the outcome of a carrier save
type CarrierSaveResultDTO struct {
	IsError    bool                                 `json:"isError"`
	Carrier    *CarrierDTO                          `json:"carrier,omitempty"`
	Validation *validation.DetailedValidationResult `json:"validation,omitempty"`
}

// SaveCarrier creates or updates a carrier dictionary entry
func (s *DictionaryService) SaveCarrier(ctx context.Context, dto CarrierSaveDto) (*CarrierSaveResultDTO, error) {
	result := validation.NewDetailedValidationResult()
	if dto.Title == "" {
		result.AddError("title", domain.ValueIsRequired, "carrier title is required")
		return &CarrierSaveResultDTO{IsError: true, Validation: result}, nil
	}

	var carrier *domain.Carrier
	if dto.ID != nil {
		existing, err := s.carriers.FindByID(ctx, *dto.ID)
		if err != nil {
			return nil, fmt.Errorf("load carrier %s: %w", *dto.ID, err)
		}
		if existing == nil {
			return nil, apperrors.ErrNotFoundWithID("carrier", *dto.ID)
		}
		carrier = existing
	} else {
		carrier = &domain.Carrier{
			ID:        uuid.New().String(),
			IsActive:  true,
			CreatedAt: domainNow(),
		}
	}

	carrier.Title = dto.Title
	carrier.Email = dto.Email
	if dto.IsActive != nil {
		carrier.IsActive = *dto.IsActive
	}
	carrier.UpdatedAt = domainNow()

	if err := s.carriers.Save(ctx, carrier); err != nil {
		return nil, fmt.Errorf("save carrier: %w", err)
	}

	s.logger.Info("Saved carrier", "carrierId", carrier.ID, "title", carrier.Title)
	return &CarrierSaveResultDTO{Carrier: ToCarrierDTO(carrier)}, nil
}

// DeleteCarrier removes a carrier dictionary entry
func (s *DictionaryService) DeleteCarrier(ctx context.Context, id string) error {
	carrier, err := s.carriers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load carrier %s: %w", id, err)
	}
	if carrier == nil {
		return apperrors.ErrNotFoundWithID("carrier", id)
	}
	if err := s.carriers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete carrier %s: %w", id, err)
	}
	return nil
}
