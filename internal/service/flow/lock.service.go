package flow

import (
	"context"
	"delegasi-pay/internal/pkg/logger"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const lockKeyPrefix = "delegasi-pay:lock:"

// Locker guards a session across every process sharing its store. A held
// key is reported busy, never waited on.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), ok bool, err error)
}

// keyedLock is a per-key try-lock inside one process.
type keyedLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newKeyedLock() *keyedLock {
	return &keyedLock{held: make(map[string]struct{})}
}

func (l *keyedLock) TryLock(_ context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, false, nil
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true, nil
}

// LockStore is the atomic primitive a shared lock needs.
type LockStore interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelIfValue(ctx context.Context, key, value string) error
}

// SharedLocker holds a session lock in a LockStore under a random token,
// so only the holder can release it. The ttl frees a lock whose holder died.
type SharedLocker struct {
	store    LockStore
	ttl      time.Duration
	newToken func() (string, error)
}

func NewSharedLocker(store LockStore, ttl time.Duration) *SharedLocker {
	return &SharedLocker{store: store, ttl: ttl, newToken: func() (string, error) { return gonanoid.New() }}
}

func (l *SharedLocker) TryLock(ctx context.Context, key string) (func(), bool, error) {
	token, err := l.newToken()
	if err != nil {
		return nil, false, err
	}

	ok, err := l.store.SetNX(ctx, lockKeyPrefix+key, token, l.ttl)
	if err != nil || !ok {
		return nil, false, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			if err := l.store.DelIfValue(releaseCtx, lockKeyPrefix+key, token); err != nil {
				logger.Warning.Printf("Failed to release session lock %s: %v", key, err)
			}
		})
	}, true, nil
}

// acquire takes the in-process lock first so local contention never reaches
// the shared store, then the shared lock when one is configured.
func (c *Controller) acquire(ctx context.Context, sessionID string) (func(), error) {
	unlock, ok, _ := c.locks.TryLock(ctx, sessionID)
	if !ok {
		return nil, ErrOperationInProgress
	}
	if c.shared == nil {
		return unlock, nil
	}

	release, ok, err := c.shared.TryLock(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if !ok {
		unlock()
		return nil, ErrOperationInProgress
	}
	return func() {
		release()
		unlock()
	}, nil
}
