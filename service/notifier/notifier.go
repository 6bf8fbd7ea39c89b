package notifier

import (
	"github.com/viney-shih/goroutines"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/metrics"
	"github.com/x-market/goapi/domain/marketplace"
)

const defaultPoolSize = 64

// Dispatcher fans marketplace events out to every subscriber on a worker
// pool. Delivery is fire-and-forget: a slow or failing subscriber never
// blocks the engine, events may be dropped on shutdown.
type Dispatcher struct {
	subscribers []marketplace.Notifier
	workerPool  *goroutines.Pool
	met         metrics.Service
}

func NewDispatcher(subscribers ...marketplace.Notifier) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		workerPool:  goroutines.NewPool(defaultPoolSize),
		met:         metrics.New("notifier"),
	}
}

// Shutdown waits for queued deliveries and releases the pool
func (d *Dispatcher) Shutdown() {
	d.workerPool.Release()
}

func (d *Dispatcher) NotifyListed(c ctx.Ctx, e *marketplace.ListedEvent) {
	d.met.BumpSum("event.listed", 1)
	for _, sub := range d.subscribers {
		sub := sub
		d.workerPool.Schedule(func() {
			sub.NotifyListed(c, e)
		})
	}
}

func (d *Dispatcher) NotifyPurchased(c ctx.Ctx, e *marketplace.PurchasedEvent) {
	d.met.BumpSum("event.purchased", 1)
	for _, sub := range d.subscribers {
		sub := sub
		d.workerPool.Schedule(func() {
			sub.NotifyPurchased(c, e)
		})
	}
}

func (d *Dispatcher) NotifyUnlisted(c ctx.Ctx, e *marketplace.UnlistedEvent) {
	d.met.BumpSum("event.unlisted", 1)
	for _, sub := range d.subscribers {
		sub := sub
		d.workerPool.Schedule(func() {
			sub.NotifyUnlisted(c, e)
		})
	}
}
