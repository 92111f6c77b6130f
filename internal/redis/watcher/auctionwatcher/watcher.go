package auctionwatcher

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentauction/internal/models"
)

const TimerKeyPrefix = "auc_t:"

// minTTL keeps an already-due timer alive long enough to expire through
// Redis rather than be rejected.
const minTTL = 10 * time.Millisecond

// Evaluator applies the transitions due for one auction.
type Evaluator interface {
	Evaluate(ctx context.Context, auctionID string) (*models.Auction, error)
}

// Timers arms one expiring key per auction at its next transition time.
// Expiry is delivered to Run through keyspace notifications.
type Timers struct {
	rdb   *redis.Client
	clock clockwork.Clock
}

func NewTimers(rdb *redis.Client, clock clockwork.Clock) *Timers {
	return &Timers{rdb: rdb, clock: clock}
}

func (t *Timers) Arm(ctx context.Context, auctionID string, at time.Time) error {
	ttl := at.Sub(t.clock.Now())
	if ttl < minTTL {
		ttl = minTTL
	}
	return t.rdb.Set(ctx, TimerKeyPrefix+auctionID, strconv.FormatInt(at.Unix(), 10), ttl).Err()
}

func (t *Timers) Disarm(ctx context.Context, auctionID string) error {
	return t.rdb.Del(ctx, TimerKeyPrefix+auctionID).Err()
}

// Run listens to key-expiry events and evaluates the matching auction.
// Run must be started once at service boot. The lifecycle job covers any
// event lost while no watcher was subscribed.
func Run(ctx context.Context, rdb *redis.Client, svc Evaluator) {
	if err := rdb.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err(); err != nil {
		zap.L().Warn("auctionwatcher.config", zap.Error(err))
	}
	ps := rdb.PSubscribe(ctx, "__keyevent@*__:expired")
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			handle(ctx, svc, m.Payload)
		}
	}
}

func handle(ctx context.Context, svc Evaluator, key string) {
	id, ok := strings.CutPrefix(key, TimerKeyPrefix)
	if !ok || id == "" {
		return
	}
	a, err := svc.Evaluate(ctx, id)
	if err != nil {
		zap.L().Warn("auctionwatcher.evaluate", zap.String("auction_id", id), zap.Error(err))
		return
	}
	zap.L().Debug("auctionwatcher.evaluated", zap.String("auction_id", id), zap.String("status", string(a.Status)))
}
