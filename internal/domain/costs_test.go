package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestRecalculateTotal(t *testing.T) {
	calc := NewDeliveryCostCalculator()

	tests := []struct {
		name          string
		shipping      *Shipping
		expectChanged bool
		expectTotal   *float64
	}{
		{
			name: "Sums component costs",
			shipping: &Shipping{
				BasicDeliveryCost: f64(1000),
				DowntimeAmount:    f64(150),
				OtherCosts:        f64(50),
			},
			expectChanged: true,
			expectTotal:   f64(1200),
		},
		{
			name: "Single component",
			shipping: &Shipping{
				BasicDeliveryCost: f64(500),
			},
			expectChanged: true,
			expectTotal:   f64(500),
		},
		{
			name: "Manual override suppresses recalculation",
			shipping: &Shipping{
				BasicDeliveryCost:       f64(1000),
				TotalDeliveryCost:       f64(9999),
				ManualTotalDeliveryCost: true,
			},
			expectChanged: false,
			expectTotal:   f64(9999),
		},
		{
			name: "All components empty clears stale total",
			shipping: &Shipping{
				TotalDeliveryCost: f64(300),
			},
			expectChanged: true,
			expectTotal:   nil,
		},
		{
			name:          "All components empty and no total is a no-op",
			shipping:      &Shipping{},
			expectChanged: false,
			expectTotal:   nil,
		},
		{
			name: "Unchanged total is a no-op",
			shipping: &Shipping{
				BasicDeliveryCost: f64(700),
				TotalDeliveryCost: f64(700),
			},
			expectChanged: false,
			expectTotal:   f64(700),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := calc.RecalculateTotal(tt.shipping)
			assert.Equal(t, tt.expectChanged, changed)
			if tt.expectTotal == nil {
				assert.Nil(t, tt.shipping.TotalDeliveryCost)
			} else {
				require.NotNil(t, tt.shipping.TotalDeliveryCost)
				assert.Equal(t, *tt.expectTotal, *tt.shipping.TotalDeliveryCost)
			}
		})
	}
}

func TestDistributeToOrders(t *testing.T) {
	calc := NewDeliveryCostCalculator()

	t.Run("Splits evenly across automatic orders", func(t *testing.T) {
		shipping := &Shipping{TotalDeliveryCost: f64(300)}
		orders := []*Order{
			{ID: "o1"},
			{ID: "o2"},
			{ID: "o3"},
		}

		changed := calc.DistributeToOrders(shipping, orders)

		require.Len(t, changed, 3)
		for _, o := range orders {
			require.NotNil(t, o.DeliveryCost)
			assert.Equal(t, 100.0, *o.DeliveryCost)
		}
	})

	t.Run("Manual delivery cost is left alone", func(t *testing.T) {
		shipping := &Shipping{TotalDeliveryCost: f64(200)}
		manual := &Order{ID: "o1", DeliveryCost: f64(999), ManualDeliveryCost: true}
		auto := &Order{ID: "o2"}

		changed := calc.DistributeToOrders(shipping, []*Order{manual, auto})

		require.Len(t, changed, 1)
		assert.Equal(t, "o2", changed[0].ID)
		assert.Equal(t, 999.0, *manual.DeliveryCost)
		assert.Equal(t, 200.0, *auto.DeliveryCost)
	})

	t.Run("Nil total clears automatic costs", func(t *testing.T) {
		shipping := &Shipping{}
		orders := []*Order{
			{ID: "o1", DeliveryCost: f64(100)},
			{ID: "o2"},
		}

		changed := calc.DistributeToOrders(shipping, orders)

		require.Len(t, changed, 1)
		assert.Nil(t, orders[0].DeliveryCost)
	})

	t.Run("All manual orders means nothing to distribute", func(t *testing.T) {
		shipping := &Shipping{TotalDeliveryCost: f64(100)}
		orders := []*Order{{ID: "o1", ManualDeliveryCost: true}}

		assert.Empty(t, calc.DistributeToOrders(shipping, orders))
	})

	t.Run("Distribution is idempotent", func(t *testing.T) {
		shipping := &Shipping{TotalDeliveryCost: f64(100)}
		orders := []*Order{{ID: "o1"}, {ID: "o2"}}

		first := calc.DistributeToOrders(shipping, orders)
		second := calc.DistributeToOrders(shipping, orders)

		assert.Len(t, first, 2)
		assert.Empty(t, second)
	})
}

func TestClearCosts(t *testing.T) {
	calc := NewDeliveryCostCalculator()

	shipping := &Shipping{
		BasicDeliveryCost:    f64(100),
		DowntimeAmount:       f64(20),
		OtherCosts:           f64(30),
		TotalDeliveryCost:    f64(150),
		ManualDowntimeAmount: true,
	}

	calc.ClearCosts(shipping)

	assert.Nil(t, shipping.BasicDeliveryCost)
	assert.Nil(t, shipping.OtherCosts)
	assert.Nil(t, shipping.TotalDeliveryCost)
	require.NotNil(t, shipping.DowntimeAmount)
	assert.Equal(t, 20.0, *shipping.DowntimeAmount)
}
