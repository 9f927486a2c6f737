package application

import (
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// SaveOrCreateCommand saves one shipping, creating it when no ID is given
type SaveOrCreateCommand struct {
	Dto  ShippingSaveDto
	User domain.User
}

// BulkUpdateCommand saves many shippings as one batch. The whole batch
// shares one trigger pass and one transaction.
type BulkUpdateCommand struct {
	Dtos []ShippingSaveDto
	User domain.User
}

// InvokeActionCommand runs a named action over the selected shippings
type InvokeActionCommand struct {
	ActionName  string
	ShippingIDs []string
	User        domain.User
}

// GetShippingQuery fetches one shipping by ID
type GetShippingQuery struct {
	ShippingID string
}

// GetAvailableActionsQuery lists the actions the user may invoke on a shipping
type GetAvailableActionsQuery struct {
	ShippingID string
	User       domain.User
}
