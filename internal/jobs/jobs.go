// Package jobs runs the periodic background work: the payment deadline sweep
// and the lifecycle tick that advances auctions whose start or end passed.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"rentauction/internal/services/auction"
)

const (
	DefaultSweepInterval     = time.Minute
	DefaultLifecycleInterval = 10 * time.Second
	defaultBatch             = 200
	tickTimeout              = 30 * time.Second
)

// DueLister finds auctions with a transition due at now.
type DueLister interface {
	ListDueAuctions(ctx context.Context, now time.Time, limit int) ([]string, error)
}

type Config struct {
	PaymentSweepInterval  time.Duration
	LifecycleTickInterval time.Duration
	BatchSize             int
}

type Runner struct {
	ctx   context.Context
	sched gocron.Scheduler
	svc   auction.IAuctionService
	due   DueLister
	clock clockwork.Clock
	batch int
}

// New registers both jobs. Each runs in singleton mode: a tick that is still
// running when the next one fires is rescheduled, never run twice at once.
func New(ctx context.Context, cfg Config, svc auction.IAuctionService, due DueLister, clock clockwork.Clock) (*Runner, error) {
	if cfg.PaymentSweepInterval <= 0 {
		cfg.PaymentSweepInterval = DefaultSweepInterval
	}
	if cfg.LifecycleTickInterval <= 0 {
		cfg.LifecycleTickInterval = DefaultLifecycleInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatch
	}

	sched, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	r := &Runner{ctx: ctx, sched: sched, svc: svc, due: due, clock: clock, batch: cfg.BatchSize}

	jobs := []struct {
		name     string
		interval time.Duration
		task     func()
	}{
		{"payment_sweep", cfg.PaymentSweepInterval, func() { r.SweepPayments(r.ctx) }},
		{"lifecycle_tick", cfg.LifecycleTickInterval, func() { r.AdvanceDue(r.ctx) }},
	}
	for _, j := range jobs {
		if _, err := sched.NewJob(
			gocron.DurationJob(j.interval),
			gocron.NewTask(j.task),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("schedule %s: %w", j.name, err)
		}
		zap.L().Info("job scheduled", zap.String("job", j.name), zap.Duration("every", j.interval))
	}
	return r, nil
}

func (r *Runner) Start() { r.sched.Start() }

func (r *Runner) Shutdown() error { return r.sched.Shutdown() }

// SweepPayments runs one payment deadline sweep.
func (r *Runner) SweepPayments(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, tickTimeout)
	defer cancel()
	if _, err := r.svc.SweepOverduePayments(ctx); err != nil {
		zap.L().Error("jobs.payment_sweep", zap.Error(err))
	}
}

// AdvanceDue evaluates every auction whose start or end time has passed.
func (r *Runner) AdvanceDue(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, tickTimeout)
	defer cancel()

	ids, err := r.due.ListDueAuctions(ctx, r.clock.Now(), r.batch)
	if err != nil {
		zap.L().Error("jobs.list_due", zap.Error(err))
		return
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.svc.Evaluate(ctx, id); err != nil {
			zap.L().Warn("jobs.evaluate", zap.String("auction_id", id), zap.Error(err))
		}
	}
}
