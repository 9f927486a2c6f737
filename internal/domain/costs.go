package domain

import "time"

// DeliveryCostCalculator recomputes the derived cost fields of a shipping
// and distributes the total across child orders. Manual overrides always
// win over recalculation.
type DeliveryCostCalculator struct{}

// NewDeliveryCostCalculator creates a calculator
func NewDeliveryCostCalculator() *DeliveryCostCalculator {
	return &DeliveryCostCalculator{}
}

// RecalculateTotal recomputes TotalDeliveryCost from the component costs.
// Returns true when the stored total actually changed.
func (c *DeliveryCostCalculator) RecalculateTotal(s *Shipping) bool {
	if s.ManualTotalDeliveryCost {
		return false
	}

	var total float64
	hasAny := false
	for _, part := range []*float64{s.BasicDeliveryCost, s.DowntimeAmount, s.OtherCosts} {
		if part != nil {
			total += *part
			hasAny = true
		}
	}

	if !hasAny {
		if s.TotalDeliveryCost == nil {
			return false
		}
		s.TotalDeliveryCost = nil
		return true
	}

	if s.TotalDeliveryCost != nil && *s.TotalDeliveryCost == total {
		return false
	}
	s.TotalDeliveryCost = &total
	return true
}

// DistributeToOrders splits the shipping total evenly across the orders
// that do not carry a manual delivery cost. Returns the orders whose cost
// changed.
func (c *DeliveryCostCalculator) DistributeToOrders(s *Shipping, orders []*Order) []*Order {
	auto := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if !o.ManualDeliveryCost {
			auto = append(auto, o)
		}
	}
	if len(auto) == 0 {
		return nil
	}

	var changed []*Order
	if s.TotalDeliveryCost == nil {
		for _, o := range auto {
			if o.DeliveryCost != nil {
				o.DeliveryCost = nil
				o.UpdatedAt = time.Now().UTC()
				changed = append(changed, o)
			}
		}
		return changed
	}

	share := *s.TotalDeliveryCost / float64(len(auto))
	for _, o := range auto {
		if o.DeliveryCost != nil && *o.DeliveryCost == share {
			continue
		}
		v := share
		o.DeliveryCost = &v
		o.UpdatedAt = time.Now().UTC()
		changed = append(changed, o)
	}
	return changed
}

// ClearCosts drops every non-manual cost field on the shipping, used by
// cancellation.
func (c *DeliveryCostCalculator) ClearCosts(s *Shipping) {
	if !s.ManualBasicDeliveryCost {
		s.BasicDeliveryCost = nil
	}
	if !s.ManualDowntimeAmount {
		s.DowntimeAmount = nil
	}
	if !s.ManualOtherCosts {
		s.OtherCosts = nil
	}
	if !s.ManualTotalDeliveryCost {
		s.TotalDeliveryCost = nil
	}
}

func timeNow() time.Time {
	return time.Now().UTC()
}
