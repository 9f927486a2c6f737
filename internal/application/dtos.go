package application

import (
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/validation"
)

// ShippingSaveDto is the saveOrCreate payload. Nil pointers mean "field not
// supplied, leave as is"; a supplied cost field counts as a manual override
// and suppresses later recalculation of that field.
type ShippingSaveDto struct {
	ID                *string  `json:"id,omitempty"`
	ShippingNumber    *string  `json:"shippingNumber,omitempty"`
	CarrierID         *string  `json:"carrierId,omitempty"`
	VehicleTypeID     *string  `json:"vehicleTypeId,omitempty"`
	BodyTypeID        *string  `json:"bodyTypeId,omitempty"`
	TarifficationType *string  `json:"tarifficationType,omitempty"`
	BasicDeliveryCost *float64 `json:"basicDeliveryCost,omitempty"`
	TotalDeliveryCost *float64 `json:"totalDeliveryCost,omitempty"`
	DowntimeAmount    *float64 `json:"downtimeAmount,omitempty"`
	OtherCosts        *float64 `json:"otherCosts,omitempty"`
}

// ShippingDTO is a shipping in responses
type ShippingDTO struct {
	ID                  string   `json:"id"`
	ShippingNumber      string   `json:"shippingNumber"`
	Status              string   `json:"status"`
	CarrierID           *string  `json:"carrierId,omitempty"`
	VehicleTypeID       *string  `json:"vehicleTypeId,omitempty"`
	BodyTypeID          *string  `json:"bodyTypeId,omitempty"`
	TarifficationType   *string  `json:"tarifficationType,omitempty"`
	BasicDeliveryCost   *float64 `json:"basicDeliveryCost,omitempty"`
	TotalDeliveryCost   *float64 `json:"totalDeliveryCost,omitempty"`
	DowntimeAmount      *float64 `json:"downtimeAmount,omitempty"`
	OtherCosts          *float64 `json:"otherCosts,omitempty"`
	IsNewCarrierRequest bool     `json:"isNewCarrierRequest"`
	IsPooling           bool     `json:"isPooling"`
	SyncedWithPooling   bool     `json:"syncedWithPooling"`
	SlotID              *string  `json:"slotId,omitempty"`
	ConsolidationID     *string  `json:"consolidationId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderDTO is an order in responses
type OrderDTO struct {
	ID                  string   `json:"id"`
	OrderNumber         string   `json:"orderNumber"`
	Status              string   `json:"status"`
	ShippingID          *string  `json:"shippingId,omitempty"`
	OrderShippingStatus *string  `json:"orderShippingStatus,omitempty"`
	ShippingStatus      *string  `json:"shippingStatus,omitempty"`
	CarrierID           *string  `json:"carrierId,omitempty"`
	DeliveryCost        *float64 `json:"deliveryCost,omitempty"`
}

// SaveResultDTO is the outcome of a saveOrCreate call. On a validation
// failure Validation carries the field-keyed errors and the shipping is
// untouched.
type SaveResultDTO struct {
	IsError    bool                                 `json:"isError"`
	Shipping   *ShippingDTO                         `json:"shipping,omitempty"`
	Validation *validation.DetailedValidationResult `json:"validation,omitempty"`
}

// ActionResultDTO is one shipping's outcome of an action invocation
type ActionResultDTO struct {
	ShippingID string `json:"shippingId"`
	IsError    bool   `json:"isError"`
	Message    string `json:"message,omitempty"`
}

// AvailableActionDTO describes an action the user may invoke
type AvailableActionDTO struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// CarrierDTO is a carrier dictionary entry in responses
type CarrierDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"isActive"`
}

// CarrierSaveDto is the carrier dictionary save payload
type CarrierSaveDto struct {
	ID       *string `json:"id,omitempty"`
	Title    string  `json:"title"`
	Email    string  `json:"email,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ToShippingDTO converts a domain Shipping to its response form
func ToShippingDTO(s *domain.Shipping) *ShippingDTO {
	if s == nil {
		return nil
	}

	dto := &ShippingDTO{
		ID:                  s.ID,
		ShippingNumber:      s.ShippingNumber,
		Status:              string(s.Status),
		CarrierID:           s.CarrierID,
		VehicleTypeID:       s.VehicleTypeID,
		BodyTypeID:          s.BodyTypeID,
		BasicDeliveryCost:   s.BasicDeliveryCost,
		TotalDeliveryCost:   s.TotalDeliveryCost,
		DowntimeAmount:      s.DowntimeAmount,
		OtherCosts:          s.OtherCosts,
		IsNewCarrierRequest: s.IsNewCarrierRequest,
		IsPooling:           s.IsPooling,
		SyncedWithPooling:   s.SyncedWithPooling,
		SlotID:              s.SlotID,
		ConsolidationID:     s.ConsolidationID,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.TarifficationType != nil {
		v := string(*s.TarifficationType)
		dto.TarifficationType = &v
	}
	return dto
}

// ToOrderDTO converts a domain Order to its response form
func ToOrderDTO(o *domain.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	dto := &OrderDTO{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Status:       string(o.Status),
		ShippingID:   o.ShippingID,
		CarrierID:    o.CarrierID,
		DeliveryCost: o.DeliveryCost,
	}
	if o.OrderShippingStatus != nil {
		v := string(*o.OrderShippingStatus)
		dto.OrderShippingStatus = &v
	}
	if o.ShippingStatus != nil {
		v := string(*o.ShippingStatus)
		dto.ShippingStatus = &v
	}
	return dto
}

// ToCarrierDTO converts a domain Carrier to its response form
func ToCarrierDTO(c *domain.Carrier) *CarrierDTO {
	if c == nil {
		return nil
	}
	return &CarrierDTO{
		ID:       c.ID,
		Title:    c.Title,
		Email:    c.Email,
		IsActive: c.IsActive,
	}
}
