package keylock

import (
	"context"
	"errors"
	"sync"
)

// ErrLockLost is the cancel cause of a held context whose lease expired
// before the holder released it.
var ErrLockLost = errors.New("lock lost")

// Locker serialises work per key. Lock blocks until the key is free or ctx
// is done. The returned context is derived from ctx and is cancelled on
// unlock, or with cause ErrLockLost if a leased lock expires early. unlock
// must be called exactly once; further calls are no-ops.
type Locker interface {
	Lock(ctx context.Context, key string) (held context.Context, unlock func(), err error)
}

type entry struct {
	ch  chan struct{} // buffered(1): holding the token means holding the lock
	ref int
}

// Mutexes is an in-process keyed mutex. Entries are reference counted and
// dropped once no goroutine holds or waits on them, so memory stays bounded
// by the number of keys in flight.
type Mutexes struct {
	mu      sync.Mutex
	entries map[string]*entry
}

var _ Locker = (*Mutexes)(nil)

func New() *Mutexes {
	return &Mutexes{entries: make(map[string]*entry)}
}

func (m *Mutexes) Lock(ctx context.Context, key string) (context.Context, func(), error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.ref++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, e)
		return nil, nil, ctx.Err()
	}

	held, cancel := context.WithCancel(ctx)
	var once sync.Once
	return held, func() {
		once.Do(func() {
			cancel()
			<-e.ch
			m.release(key, e)
		})
	}, nil
}

func (m *Mutexes) release(key string, e *entry) {
	m.mu.Lock()
	e.ref--
	if e.ref == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

// Len reports how many keys are currently held or awaited.
func (m *Mutexes) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
