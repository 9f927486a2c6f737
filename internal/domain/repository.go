package domain

import "context"

// ShippingRepository persists Shipping aggregates
type ShippingRepository interface {
	FindByID(ctx context.Context, id string) (*Shipping, error)
	FindByNumber(ctx context.Context, number string) (*Shipping, error)
	FindByStatus(ctx context.Context, status ShippingStatus) ([]*Shipping, error)
	FindPoolingOutOfSync(ctx context.Context, limit int) ([]*Shipping, error)
	Save(ctx context.Context, shipping *Shipping) error
}

// OrderRepository persists Orders and supports the bulk child loads the
// trigger engine relies on.
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByShippingID(ctx context.Context, shippingID string) ([]*Order, error)
	// FindByShippingIDs loads the children of a whole save batch in one
	// query, keyed by parent shipping id.
	FindByShippingIDs(ctx context.Context, shippingIDs []string) (map[string][]*Order, error)
	Save(ctx context.Context, order *Order) error
}

// CarrierRepository reads the carrier dictionary
type CarrierRepository interface {
	FindByID(ctx context.Context, id string) (*Carrier, error)
	FindAll(ctx context.Context) ([]*Carrier, error)
	Save(ctx context.Context, carrier *Carrier) error
	Delete(ctx context.Context, id string) error
}

// HistoryRepository appends and reads the audit trail
type HistoryRepository interface {
	SaveAll(ctx context.Context, entries []HistoryEntry) error
	FindByEntityID(ctx context.Context, entityID string) ([]HistoryEntry, error)
}

// CarrierRequestStatRepository persists carrier request date statistics
type CarrierRequestStatRepository interface {
	FindByShippingID(ctx context.Context, shippingID string) (*CarrierRequestDatesStat, error)
	Save(ctx context.Context, stat *CarrierRequestDatesStat) error
}

// UnitOfWork executes fn inside one storage transaction. Repositories called
// with the context passed to fn participate in that transaction, giving the
// all-or-nothing commit the save pipeline requires.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
