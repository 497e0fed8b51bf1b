// ABOUTME: Pluggable reclaim policies deciding when cache handles are invalidated
// ABOUTME: Default policy rides go-cache TTL eviction; the manual policy is for tests

package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ReclaimPolicy decides when tracked handles are reclaimed. A policy
// invalidates the handle and pushes its key onto the bound queue; the
// cache notices on its next sweep.
type ReclaimPolicy interface {
	// Bind attaches the reclamation queue. Called once before Track.
	Bind(q *ReclaimQueue)

	// Track registers a newly stored handle under its key
	Track(key string, h *Handle)

	// Close releases policy resources
	Close()
}

// DefaultReclaimPolicy approximates memory-pressure reclamation with a
// TTL: go-cache's janitor expires tracked entries and the eviction
// callback feeds the reclamation queue.
type DefaultReclaimPolicy struct {
	store *gocache.Cache
}

// NewDefaultReclaimPolicy creates a TTL-based policy. Entries older than
// ttl become reclaimable; the janitor wakes at cleanupInterval.
func NewDefaultReclaimPolicy(ttl, cleanupInterval time.Duration) *DefaultReclaimPolicy {
	return &DefaultReclaimPolicy{store: gocache.New(ttl, cleanupInterval)}
}

// Bind attaches the reclamation queue
func (p *DefaultReclaimPolicy) Bind(q *ReclaimQueue) {
	p.store.OnEvicted(func(key string, value interface{}) {
		if h, ok := value.(*Handle); ok {
			h.Reclaim()
			q.Push(key)
		}
	})
}

// Track registers the handle with the TTL store
func (p *DefaultReclaimPolicy) Track(key string, h *Handle) {
	p.store.SetDefault(key, h)
}

// Close drops all tracked handles without reclaiming them
func (p *DefaultReclaimPolicy) Close() {
	p.store.OnEvicted(nil)
	p.store.Flush()
}

// ManualReclaimPolicy reclaims only when told to, making eviction timing
// deterministic for tests.
type ManualReclaimPolicy struct {
	mu      sync.Mutex
	queue   *ReclaimQueue
	tracked map[string]*Handle
}

// NewManualReclaimPolicy creates an empty manual policy
func NewManualReclaimPolicy() *ManualReclaimPolicy {
	return &ManualReclaimPolicy{tracked: make(map[string]*Handle)}
}

// Bind attaches the reclamation queue
func (p *ManualReclaimPolicy) Bind(q *ReclaimQueue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = q
}

// Track registers the handle
func (p *ManualReclaimPolicy) Track(key string, h *Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracked[key] = h
}

// Close forgets all tracked handles
func (p *ManualReclaimPolicy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracked = make(map[string]*Handle)
}

// Reclaim invalidates the handle stored under key and queues the
// notification, simulating the memory manager reclaiming the entry.
func (p *ManualReclaimPolicy) Reclaim(key string) {
	p.mu.Lock()
	h, ok := p.tracked[key]
	if ok {
		delete(p.tracked, key)
	}
	q := p.queue
	p.mu.Unlock()

	if !ok {
		return
	}
	h.Reclaim()
	if q != nil {
		q.Push(key)
	}
}

// ReclaimAll invalidates every tracked handle
func (p *ManualReclaimPolicy) ReclaimAll() {
	p.mu.Lock()
	keys := make([]string, 0, len(p.tracked))
	for k := range p.tracked {
		keys = append(keys, k)
	}
	p.mu.Unlock()

	for _, k := range keys {
		p.Reclaim(k)
	}
}
