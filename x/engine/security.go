package engine

import (
	"fmt"
	"sync"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// ReentrancyGuard serializes operations per resource key. A second
// entry on a held key is an error, not a wait: the engine treats
// nested entry as a bug in the caller.
type ReentrancyGuard struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

// NewReentrancyGuard returns an empty guard.
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{locks: make(map[string]struct{})}
}

func (g *ReentrancyGuard) acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.locks[key]; held {
		return types.ErrReentrancy.Wrapf("operation in progress on %s", key)
	}
	g.locks[key] = struct{}{}
	return nil
}

func (g *ReentrancyGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, key)
}

// WithLock runs fn while holding the key, releasing on every path.
func (g *ReentrancyGuard) WithLock(key string, fn func() error) error {
	if err := g.acquire(key); err != nil {
		return err
	}
	defer g.release(key)
	return fn()
}

func poolKey(poolID uint64) string {
	return fmt.Sprintf("pool/%d", poolID)
}

func saleKey(token string) string {
	return "sale/" + token
}

// checkDeadline enforces the caller-supplied transaction deadline.
// A zero deadline means no expiry.
func checkDeadline(deadline, now int64) error {
	if deadline != 0 && now > deadline {
		return types.ErrTransactionExpired.Wrapf("deadline %d, now %d", deadline, now)
	}
	return nil
}
