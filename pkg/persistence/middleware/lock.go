package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed writer.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type lockMiddleware struct {
	ports.DocumentStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	ttl    time.Duration
	logger *slog.Logger
}

// LockOption configures NewLockMiddleware.
type LockOption func(*lockMiddleware)

// WithLocker also takes a distributed lock around every write.
func WithLocker(locker ports.DistributedLocker) LockOption {
	return func(m *lockMiddleware) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) LockOption {
	return func(m *lockMiddleware) {
		m.ttl = ttl
	}
}

// WithLockLogger configures a logger for failed releases.
func WithLockLogger(logger *slog.Logger) LockOption {
	return func(m *lockMiddleware) {
		m.logger = logger
	}
}

// NewLockMiddleware creates a middleware that serializes Save and Delete per
// document ID. Locks are reference counted and dropped once unused.
func NewLockMiddleware(opts ...LockOption) Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		m := &lockMiddleware{
			DocumentStore: next,
			locks:         make(map[string]*lockEntry),
			ttl:           DefaultLockTTL,
			logger:        slog.New(slog.DiscardHandler),
		}
		for _, opt := range opts {
			opt(m)
		}
		return m
	}
}

func (m *lockMiddleware) Save(ctx context.Context, rec *domain.Record) error {
	return m.withLock(ctx, rec.ID, func(ctx context.Context) error {
		return m.DocumentStore.Save(ctx, rec)
	})
}

func (m *lockMiddleware) Delete(ctx context.Context, id string) error {
	return m.withLock(ctx, id, func(ctx context.Context) error {
		return m.DocumentStore.Delete(ctx, id)
	})
}

// acquire gets or creates the entry of id and increments its reference count.
func (m *lockMiddleware) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *lockMiddleware) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// held returns the number of live lock entries.
func (m *lockMiddleware) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

func (m *lockMiddleware) withLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.ttl)
		if err != nil {
			return fmt.Errorf("lock document %s: %w", id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release document lock (will expire via TTL)",
					"id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
