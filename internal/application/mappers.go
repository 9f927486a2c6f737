package application

import (
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

// applyShippingDto copies every supplied DTO field onto the shipping and
// returns the set of field names the user touched. The set feeds the field
// diff so supplied cost fields raise their manual-override flags.
func applyShippingDto(dto ShippingSaveDto, s *domain.Shipping) map[string]bool {
	manual := make(map[string]bool)

	if dto.ShippingNumber != nil {
		s.ShippingNumber = *dto.ShippingNumber
		manual[fielddiff.FieldShippingNumber] = true
	}
	if dto.CarrierID != nil {
		v := *dto.CarrierID
		s.CarrierID = &v
		manual[fielddiff.FieldCarrierID] = true
	}
	if dto.VehicleTypeID != nil {
		v := *dto.VehicleTypeID
		s.VehicleTypeID = &v
		manual[fielddiff.FieldVehicleTypeID] = true
	}
	if dto.BodyTypeID != nil {
		v := *dto.BodyTypeID
		s.BodyTypeID = &v
		manual[fielddiff.FieldBodyTypeID] = true
	}
	if dto.TarifficationType != nil {
		v := domain.TarifficationType(*dto.TarifficationType)
		s.TarifficationType = &v
		manual[fielddiff.FieldTarifficationType] = true
	}
	if dto.BasicDeliveryCost != nil {
		v := *dto.BasicDeliveryCost
		s.BasicDeliveryCost = &v
		manual[fielddiff.FieldBasicDeliveryCost] = true
	}
	if dto.TotalDeliveryCost != nil {
		v := *dto.TotalDeliveryCost
		s.TotalDeliveryCost = &v
		manual[fielddiff.FieldTotalDeliveryCost] = true
	}
	if dto.DowntimeAmount != nil {
		v := *dto.DowntimeAmount
		s.DowntimeAmount = &v
		manual[fielddiff.FieldDowntimeAmount] = true
	}
	if dto.OtherCosts != nil {
		v := *dto.OtherCosts
		s.OtherCosts = &v
		manual[fielddiff.FieldOtherCosts] = true
	}

	return manual
}
