// Package redislock is a per-key lock shared by every instance of the
// service. It satisfies keylock.Locker.
package redislock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentauction/internal/keylock"
)

const (
	DefaultTTL   = 5 * time.Second
	retryBackoff = 25 * time.Millisecond
	fnUnlock     = "rentauction_unlock"
	fnExtend     = "rentauction_extend"
)

// ErrLockLost is the cause of the held context when the lease could not be
// extended before it expired, or another owner took the key.
var ErrLockLost = keylock.ErrLockLost

type Locker struct {
	rdb   *redis.Client
	ttl   time.Duration
	token func() string
}

var _ keylock.Locker = (*Locker)(nil)

func New(rdb *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locker{rdb: rdb, ttl: ttl, token: uuid.NewString}
}

// Lock spins on SET NX until it owns key or ctx is done. The lease is
// extended every ttl/3 until unlock is called. A failed extension is retried
// until the lease would have expired; after that the held context is
// cancelled with ErrLockLost.
func (l *Locker) Lock(ctx context.Context, key string) (context.Context, func(), error) {
	tok := l.token()
	for {
		acquired := time.Now()
		ok, err := l.rdb.SetNX(ctx, key, tok, l.ttl).Result()
		if err != nil {
			return nil, nil, err
		}
		if ok {
			held, cancel := context.WithCancelCause(ctx)
			stop := make(chan struct{})
			done := make(chan struct{})
			go l.keepAlive(key, tok, acquired.Add(l.ttl), stop, done, cancel)

			var once sync.Once
			return held, func() {
				once.Do(func() {
					close(stop)
					<-done
					cancel(nil)
					l.release(key, tok)
				})
			}, nil
		}
		t := time.NewTimer(retryBackoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, nil, ctx.Err()
		case <-t.C:
		}
	}
}

// keepAlive extends the lease until stop is closed. expires is the latest
// moment the current lease is known to be valid.
func (l *Locker) keepAlive(key, tok string, expires time.Time, stop <-chan struct{}, done chan<- struct{}, lost context.CancelCauseFunc) {
	defer close(done)
	every := l.ttl / 3
	t := time.NewTimer(every)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}

		if !time.Now().Before(expires) {
			zap.L().Warn("redislock.expired", zap.String("key", key))
			lost(ErrLockLost)
			return
		}
		sent := time.Now()
		ctx, cancel := context.WithDeadline(context.Background(), expires)
		n, err := l.rdb.FCall(ctx, fnExtend, []string{key}, tok, l.ttl.Milliseconds()).Int64()
		cancel()

		switch {
		case err == nil && n == 0:
			zap.L().Warn("redislock.taken", zap.String("key", key))
			lost(ErrLockLost)
			return
		case err == nil:
			expires = sent.Add(l.ttl)
			t.Reset(every)
		default:
			zap.L().Warn("redislock.extend", zap.String("key", key), zap.Error(err))
			wait := retryBackoff
			if left := time.Until(expires); left < wait {
				wait = max(left, 0)
			}
			t.Reset(wait)
		}
	}
}

func (l *Locker) release(key, tok string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.rdb.FCall(ctx, fnUnlock, []string{key}, tok).Err(); err != nil {
		zap.L().Warn("redislock.release", zap.String("key", key), zap.Error(err))
	}
}
