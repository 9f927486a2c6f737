package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/config"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/metrics"
)

// SlotUpdater pushes a shipping's current data to the pooling service
type SlotUpdater interface {
	UpdateSlot(ctx context.Context, shipping *domain.Shipping, orders []*domain.Order) domain.ValidateResult
}

// Poller re-synchronizes pooling shippings whose last remote update was
// rejected. It may race with interactive edits to the same shipping; the
// update is idempotent, so re-applying an already-synced state is harmless.
type Poller struct {
	shippings domain.ShippingRepository
	orders    domain.OrderRepository
	histories domain.HistoryRepository
	updater   SlotUpdater
	logger    *logging.Logger
	metrics   *metrics.Metrics

	interval  time.Duration
	batchSize int

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// NewPoller creates a reconciliation poller
func NewPoller(
	shippings domain.ShippingRepository,
	orders domain.OrderRepository,
	histories domain.HistoryRepository,
	updater SlotUpdater,
	cfg config.ReconciliationConfig,
	logger *logging.Logger,
	m *metrics.Metrics,
) *Poller {
	return &Poller{
		shippings: shippings,
		orders:    orders,
		histories: histories,
		updater:   updater,
		logger:    logger.WithComponent("reconcile"),
		metrics:   m,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start launches the poll loop
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.logger.Info("Starting pooling reconciliation poller",
		"interval", p.interval, "batchSize", p.batchSize)
	go p.run(ctx)
}

// Stop halts the poll loop and waits for it to finish
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	close(p.stopCh)
	<-p.stoppedCh

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.stoppedCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.reconcile(ctx)
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// reconcile pushes one batch of out-of-sync shippings to the pooling service
func (p *Poller) reconcile(ctx context.Context) {
	shippings, err := p.shippings.FindPoolingOutOfSync(ctx, p.batchSize)
	if err != nil {
		p.logger.WithError(err).Error("Failed to load out-of-sync shippings")
		if p.metrics != nil {
			p.metrics.RecordReconciliationRun(false)
		}
		return
	}
	if len(shippings) == 0 {
		if p.metrics != nil {
			p.metrics.RecordReconciliationRun(true)
		}
		return
	}

	p.logger.Info("Reconciling pooling shippings", "count", len(shippings))

	ok := true
	for _, shipping := range shippings {
		if err := p.reconcileOne(ctx, shipping); err != nil {
			p.logger.WithError(err).Error("Reconciliation failed", "shippingId", shipping.ID)
			ok = false
		}
	}
	if p.metrics != nil {
		p.metrics.RecordReconciliationRun(ok)
	}
}

func (p *Poller) reconcileOne(ctx context.Context, shipping *domain.Shipping) error {
	orders, err := p.orders.FindByShippingID(ctx, shipping.ID)
	if err != nil {
		return err
	}

	result := p.updater.UpdateSlot(ctx, shipping, orders)
	if result.IsError {
		// Still out of sync, the next cycle retries.
		p.logger.Warn("Pooling slot still rejects the update",
			"shippingId", shipping.ID, "message", result.Message)
		return nil
	}

	shipping.SyncedWithPooling = true
	if err := p.shippings.Save(ctx, shipping); err != nil {
		return err
	}

	entry := domain.NewHistoryEntry(shipping.ID, "poolingSlotResynced", domain.SystemUser)
	return p.histories.SaveAll(ctx, []domain.HistoryEntry{entry})
}
