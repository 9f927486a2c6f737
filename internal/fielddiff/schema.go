package fielddiff

import (
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// Tracked field identifiers. These are the wire names shared by DTOs,
// stored documents and trigger filters.
const (
	FieldShippingNumber    = "shippingNumber"
	FieldStatus            = "status"
	FieldCarrierID         = "carrierId"
	FieldVehicleTypeID     = "vehicleTypeId"
	FieldBodyTypeID        = "bodyTypeId"
	FieldTarifficationType = "tarifficationType"
	FieldBasicDeliveryCost = "basicDeliveryCost"
	FieldTotalDeliveryCost = "totalDeliveryCost"
	FieldDowntimeAmount    = "downtimeAmount"
	FieldOtherCosts        = "otherCosts"
	FieldIsPooling         = "isPooling"
	FieldSlotID            = "slotId"
	FieldConsolidationID   = "consolidationId"
)

// Kind is the coarse value type of a tracked field
type Kind int

const (
	KindString Kind = iota
	KindEnum
	KindDecimal
	KindBool
)

// Descriptor describes one tracked field: how to read its current value,
// where its manual-override flag lives and in which lifecycle states it is
// readonly. The table replaces the legacy attribute-driven reflection
// metadata with an explicit schema built once at startup.
type Descriptor[T any] struct {
	Name             string
	DisplayKey       string
	Kind             Kind
	OrderNumber      int
	ReadonlyStatuses []domain.ShippingStatus
	Get              func(*T) any
	ManualFlag       func(*T) *bool
}

// ReadonlyIn reports whether the field is readonly in the given status
func (d Descriptor[T]) ReadonlyIn(status domain.ShippingStatus) bool {
	for _, s := range d.ReadonlyStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Schema is the ordered descriptor table for one entity type
type Schema[T any] []Descriptor[T]

// Find returns the descriptor for a field name
func (s Schema[T]) Find(name string) (Descriptor[T], bool) {
	for _, d := range s {
		if d.Name == name {
			return d, true
		}
	}
	var zero Descriptor[T]
	return zero, false
}

// lockedStatuses are the states in which commercial shipping fields can no
// longer be edited directly.
var lockedStatuses = []domain.ShippingStatus{
	domain.ShippingCompleted,
	domain.ShippingBillSend,
	domain.ShippingArhive,
	domain.ShippingCanceled,
}

// ShippingSchema is the tracked-field table for the Shipping aggregate
var ShippingSchema = Schema[domain.Shipping]{
	{
		Name:        FieldShippingNumber,
		DisplayKey:  "shippingNumber",
		Kind:        KindString,
		OrderNumber: 1,
		ReadonlyStatuses: []domain.ShippingStatus{
			domain.ShippingCompleted, domain.ShippingBillSend,
			domain.ShippingArhive, domain.ShippingCanceled,
		},
		Get: func(s *domain.Shipping) any { return s.ShippingNumber },
	},
	{
		Name:        FieldStatus,
		DisplayKey:  "shippingStatus",
		Kind:        KindEnum,
		OrderNumber: 2,
		Get:         func(s *domain.Shipping) any { return s.Status },
	},
	{
		Name:             FieldCarrierID,
		DisplayKey:       "carrier",
		Kind:             KindString,
		OrderNumber:      3,
		ReadonlyStatuses: lockedStatuses,
		Get:              func(s *domain.Shipping) any { return strOrNil(s.CarrierID) },
	},
	{
		Name:             FieldVehicleTypeID,
		DisplayKey:       "vehicleType",
		Kind:             KindString,
		OrderNumber:      4,
		ReadonlyStatuses: lockedStatuses,
		Get:              func(s *domain.Shipping) any { return strOrNil(s.VehicleTypeID) },
	},
	{
		Name:             FieldBodyTypeID,
		DisplayKey:       "bodyType",
		Kind:             KindString,
		OrderNumber:      5,
		ReadonlyStatuses: lockedStatuses,
		Get:              func(s *domain.Shipping) any { return strOrNil(s.BodyTypeID) },
	},
	{
		Name:             FieldTarifficationType,
		DisplayKey:       "tarifficationType",
		Kind:             KindEnum,
		OrderNumber:      6,
		ReadonlyStatuses: lockedStatuses,
		Get: func(s *domain.Shipping) any {
			if s.TarifficationType == nil {
				return nil
			}
			return *s.TarifficationType
		},
	},
	{
		Name:             FieldBasicDeliveryCost,
		DisplayKey:       "basicDeliveryCost",
		Kind:             KindDecimal,
		OrderNumber:      7,
		ReadonlyStatuses: []domain.ShippingStatus{domain.ShippingArhive},
		Get:              func(s *domain.Shipping) any { return floatOrNil(s.BasicDeliveryCost) },
		ManualFlag:       func(s *domain.Shipping) *bool { return &s.ManualBasicDeliveryCost },
	},
	{
		Name:             FieldTotalDeliveryCost,
		DisplayKey:       "totalDeliveryCost",
		Kind:             KindDecimal,
		OrderNumber:      8,
		ReadonlyStatuses: []domain.ShippingStatus{domain.ShippingArhive},
		Get:              func(s *domain.Shipping) any { return floatOrNil(s.TotalDeliveryCost) },
		ManualFlag:       func(s *domain.Shipping) *bool { return &s.ManualTotalDeliveryCost },
	},
	{
		Name:             FieldDowntimeAmount,
		DisplayKey:       "downtimeAmount",
		Kind:             KindDecimal,
		OrderNumber:      9,
		ReadonlyStatuses: []domain.ShippingStatus{domain.ShippingArhive},
		Get:              func(s *domain.Shipping) any { return floatOrNil(s.DowntimeAmount) },
		ManualFlag:       func(s *domain.Shipping) *bool { return &s.ManualDowntimeAmount },
	},
	{
		Name:             FieldOtherCosts,
		DisplayKey:       "otherCosts",
		Kind:             KindDecimal,
		OrderNumber:      10,
		ReadonlyStatuses: []domain.ShippingStatus{domain.ShippingArhive},
		Get:              func(s *domain.Shipping) any { return floatOrNil(s.OtherCosts) },
		ManualFlag:       func(s *domain.Shipping) *bool { return &s.ManualOtherCosts },
	},
	{
		Name:        FieldIsPooling,
		DisplayKey:  "isPooling",
		Kind:        KindBool,
		OrderNumber: 11,
		Get:         func(s *domain.Shipping) any { return s.IsPooling },
	},
	{
		Name:        FieldSlotID,
		DisplayKey:  "slotId",
		Kind:        KindString,
		OrderNumber: 12,
		Get:         func(s *domain.Shipping) any { return strOrNil(s.SlotID) },
	},
	{
		Name:        FieldConsolidationID,
		DisplayKey:  "consolidationId",
		Kind:        KindString,
		OrderNumber: 13,
		Get:         func(s *domain.Shipping) any { return strOrNil(s.ConsolidationID) },
	},
}

// strOrNil normalizes an optional string so values compare with ==
func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
