package domain

import (
	"context"
)

// BatchContext owns the state shared by triggers and actions while one save
// batch (or one action invocation) is processed: child orders loaded once
// per batch, the set of entities that were mutated, and the history entries
// and notifications staged for the single commit.
//
// One BatchContext lives for exactly one operation and is discarded after
// commit; it is never shared between requests.
type BatchContext struct {
	orderRepo OrderRepository
	statRepo  CarrierRequestStatRepository

	orders       map[string][]*Order
	ordersLoaded map[string]bool

	touchedShippings map[string]*Shipping
	touchedOrders    map[string]*Order
	touchedStats     map[string]*CarrierRequestDatesStat

	history       []HistoryEntry
	notifications []Notification
}

// NewBatchContext creates a BatchContext backed by the given repositories
func NewBatchContext(orderRepo OrderRepository, statRepo CarrierRequestStatRepository) *BatchContext {
	return &BatchContext{
		orderRepo:        orderRepo,
		statRepo:         statRepo,
		orders:           make(map[string][]*Order),
		ordersLoaded:     make(map[string]bool),
		touchedShippings: make(map[string]*Shipping),
		touchedOrders:    make(map[string]*Order),
		touchedStats:     make(map[string]*CarrierRequestDatesStat),
	}
}

// PreloadOrders loads the children of every shipping in the batch with one
// query. Triggers then fan out in memory instead of querying per entity.
func (b *BatchContext) PreloadOrders(ctx context.Context, shippingIDs []string) error {
	missing := make([]string, 0, len(shippingIDs))
	for _, id := range shippingIDs {
		if !b.ordersLoaded[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	loaded, err := b.orderRepo.FindByShippingIDs(ctx, missing)
	if err != nil {
		return err
	}
	for _, id := range missing {
		b.orders[id] = loaded[id]
		b.ordersLoaded[id] = true
	}
	return nil
}

// OrdersFor returns the child orders of one shipping, loading them on first
// access when they were not preloaded.
func (b *BatchContext) OrdersFor(ctx context.Context, shippingID string) ([]*Order, error) {
	if !b.ordersLoaded[shippingID] {
		if err := b.PreloadOrders(ctx, []string{shippingID}); err != nil {
			return nil, err
		}
	}
	return b.orders[shippingID], nil
}

// StatFor returns the carrier request stat row for a shipping, creating an
// empty row when none exists yet. The row is marked touched so the commit
// persists it.
func (b *BatchContext) StatFor(ctx context.Context, shipping *Shipping) (*CarrierRequestDatesStat, error) {
	if stat, ok := b.touchedStats[shipping.ID]; ok {
		return stat, nil
	}

	stat, err := b.statRepo.FindByShippingID(ctx, shipping.ID)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		stat = &CarrierRequestDatesStat{
			ID:         shipping.ID,
			ShippingID: shipping.ID,
			CarrierID:  clonePtr(shipping.CarrierID),
			CreatedAt:  timeNow(),
		}
	}
	b.touchedStats[shipping.ID] = stat
	return stat, nil
}

// MarkShippingTouched stages a mutated shipping for the commit
func (b *BatchContext) MarkShippingTouched(s *Shipping) {
	b.touchedShippings[s.ID] = s
}

// MarkOrderTouched stages a mutated order for the commit
func (b *BatchContext) MarkOrderTouched(o *Order) {
	b.touchedOrders[o.ID] = o
}

// AppendHistory stages one history entry for the commit
func (b *BatchContext) AppendHistory(entityID, messageKey string, user User, args ...string) {
	b.history = append(b.history, NewHistoryEntry(entityID, messageKey, user, args...))
}

// QueueNotification stages one outbound notification for post-commit dispatch
func (b *BatchContext) QueueNotification(n Notification) {
	b.notifications = append(b.notifications, n)
}

// TouchedShippings returns the staged shippings
func (b *BatchContext) TouchedShippings() []*Shipping {
	out := make([]*Shipping, 0, len(b.touchedShippings))
	for _, s := range b.touchedShippings {
		out = append(out, s)
	}
	return out
}

// TouchedOrders returns the staged orders
func (b *BatchContext) TouchedOrders() []*Order {
	out := make([]*Order, 0, len(b.touchedOrders))
	for _, o := range b.touchedOrders {
		out = append(out, o)
	}
	return out
}

// TouchedStats returns the staged carrier request stat rows
func (b *BatchContext) TouchedStats() []*CarrierRequestDatesStat {
	out := make([]*CarrierRequestDatesStat, 0, len(b.touchedStats))
	for _, s := range b.touchedStats {
		out = append(out, s)
	}
	return out
}

// HistoryEntries returns the staged history entries
func (b *BatchContext) HistoryEntries() []HistoryEntry {
	return b.history
}

// Notifications returns the staged notifications
func (b *BatchContext) Notifications() []Notification {
	return b.notifications
}
