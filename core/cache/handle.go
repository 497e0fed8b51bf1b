// ABOUTME: Reclaimable handles and the reclamation-notification queue
// ABOUTME: The cache owns handles, not values; a reclaimed handle is an empty shell

package cache

import "sync"

// Handle is the indirection the cache holds instead of a direct value
// reference. The active reclaim policy may invalidate it at any time;
// lookups treat a reclaimed handle as a miss.
type Handle struct {
	mu        sync.Mutex
	value     interface{}
	reclaimed bool
}

func newHandle(value interface{}) *Handle {
	return &Handle{value: value}
}

// Get returns the held value, or false when the handle was reclaimed
func (h *Handle) Get() (interface{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reclaimed {
		return nil, false
	}
	return h.value, true
}

// Reclaim invalidates the handle and drops the value reference
func (h *Handle) Reclaim() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reclaimed = true
	h.value = nil
}

// ReclaimQueue collects the keys of reclaimed handles until a lookup
// drains it. Eviction notices arrive from whatever goroutine the policy
// runs on; draining happens under the cache lock.
type ReclaimQueue struct {
	mu   sync.Mutex
	keys []string
}

// Push appends a reclaimed key
func (q *ReclaimQueue) Push(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.keys = append(q.keys, key)
}

// Drain returns and clears the pending keys
func (q *ReclaimQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	keys := q.keys
	q.keys = nil
	return keys
}
