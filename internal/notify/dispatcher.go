package notify

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"rentauction/internal/models"
)

const publishTimeout = 5 * time.Second

// Dispatcher hands events to a worker pool and returns immediately. Publish
// errors of the wrapped Notifier are logged, never returned.
type Dispatcher struct {
	mu     sync.RWMutex
	closed bool
	pool   *workerpool.WorkerPool
	next   Notifier
}

var _ Notifier = (*Dispatcher)(nil)

func NewDispatcher(next Notifier, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		pool: workerpool.New(workers),
		next: next,
	}
}

func (d *Dispatcher) Publish(ctx context.Context, auctionID string, ev models.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		zap.L().Warn("notify.dropped", zap.String("auction_id", auctionID), zap.String("event", string(ev.Type)))
		return nil
	}

	// the request that produced the event may be gone by the time a worker runs
	ctx = context.WithoutCancel(ctx)
	d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := d.next.Publish(ctx, auctionID, ev); err != nil {
			zap.L().Warn("notify.publish",
				zap.String("auction_id", auctionID),
				zap.String("event", string(ev.Type)),
				zap.Error(err),
			)
		}
	})
	return nil
}

// Close waits for queued events to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()
	d.pool.StopWait()
}
