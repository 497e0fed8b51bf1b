// ABOUTME: Registry resolves the canonical client instance for a base URL
// ABOUTME: A registered cache wrapper is preferred over the raw client

package catalog

import (
	"strings"
	"sync"

	"marketplace-client-api/core/interfaces"
)

// Registry tracks the client instances bound to each catalog base URL so
// collaborating services can route lookups through the cache-wrapping
// client when one exists.
type Registry struct {
	mu        sync.RWMutex
	raw       map[string]interfaces.CatalogClient
	preferred map[string]interfaces.CatalogClient
}

// DefaultRegistry is the process-wide registry used unless a service is
// given its own.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		raw:       make(map[string]interfaces.CatalogClient),
		preferred: make(map[string]interfaces.CatalogClient),
	}
}

// Register records a raw client for its base URL
func (r *Registry) Register(c interfaces.CatalogClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw[normalizeBase(c.BaseURL())] = c
}

// RegisterPreferred records a cache-wrapping client for its base URL. It
// takes precedence over any raw client registered for the same URL.
func (r *Registry) RegisterPreferred(c interfaces.CatalogClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preferred[normalizeBase(c.BaseURL())] = c
}

// ClientFor returns the preferred client for the base URL, falling back to
// the raw client, or nil when none is registered.
func (r *Registry) ClientFor(baseURL string) interfaces.CatalogClient {
	key := normalizeBase(baseURL)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.preferred[key]; ok {
		return c
	}
	return r.raw[key]
}

func normalizeBase(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/")
}
