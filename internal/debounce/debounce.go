// Package debounce coalesces bursts of updates to the same key so only the
// last value of a burst is committed.
//
// It is clock-free: callers schedule their own timer (a tea.Tick in the
// shell) carrying the Token from Submit, and commit only if Due reports the
// token is still the latest for its key.
package debounce

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultDelay is used when BUILDPLAN_DEBOUNCE_MS is unset or invalid.
const DefaultDelay = 300 * time.Millisecond

// DelayFromEnv reads BUILDPLAN_DEBOUNCE_MS.
func DelayFromEnv() time.Duration {
	if v := os.Getenv("BUILDPLAN_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return DefaultDelay
}

// Token identifies one submission.
type Token[K comparable] struct {
	Key K
	Seq uint64
}

type entry[V any] struct {
	value V
	seq   uint64
}

// Coalescer holds the latest pending value per key. Safe for concurrent use.
type Coalescer[K comparable, V any] struct {
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	pending map[K]entry[V]
}

func New[K comparable, V any](delay time.Duration) *Coalescer[K, V] {
	return &Coalescer[K, V]{delay: delay, pending: make(map[K]entry[V])}
}

// Delay is how long callers should wait before calling Due.
func (c *Coalescer[K, V]) Delay() time.Duration {
	return c.delay
}

// Submit replaces the pending value for key. Earlier tokens for the key
// become stale.
func (c *Coalescer[K, V]) Submit(key K, value V) Token[K] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.pending[key] = entry[V]{value: value, seq: c.seq}
	return Token[K]{Key: key, Seq: c.seq}
}

// Due returns and clears the pending value if tok is the latest submission
// for its key. Stale or already-flushed tokens return false.
func (c *Coalescer[K, V]) Due(tok Token[K]) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pending[tok.Key]
	if !ok || e.seq != tok.Seq {
		var zero V
		return zero, false
	}
	delete(c.pending, tok.Key)
	return e.value, true
}

// Peek returns the pending value for key without clearing it.
func (c *Coalescer[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pending[key]
	return e.value, ok
}

// Flush clears and returns every pending value.
func (c *Coalescer[K, V]) Flush() map[K]V {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[K]V, len(c.pending))
	for k, e := range c.pending {
		out[k] = e.value
	}
	clear(c.pending)
	return out
}

// Cancel drops the pending value for key.
func (c *Coalescer[K, V]) Cancel(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, key)
}

// Len is the number of keys with a pending value.
func (c *Coalescer[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
