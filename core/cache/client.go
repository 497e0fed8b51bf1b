// ABOUTME: Memoizing wrapper around a catalog client behind reclaimable handles
// ABOUTME: Every lookup first drains the reclamation queue, then consults the map

package cache

import (
	"context"
	"sync"

	"marketplace-client-api/core/domain"
	"marketplace-client-api/core/interfaces"
)

// Client wraps a CatalogClient with memoization. Entities are stored under
// every key they are reachable by; named query results are stored under
// their operation signature. One mutex guards the whole map, so the
// reclamation sweep never races a lookup. There is no request
// deduplication: two concurrent misses issue two requests.
type Client struct {
	wrapped interfaces.CatalogClient
	log     interfaces.Logger

	mu      sync.Mutex
	entries map[string]*Handle
	queue   *ReclaimQueue
	policy  ReclaimPolicy
}

// New wraps a catalog client with the given reclaim policy
func New(wrapped interfaces.CatalogClient, policy ReclaimPolicy, log interfaces.Logger) *Client {
	c := &Client{
		wrapped: wrapped,
		log:     log,
		entries: make(map[string]*Handle),
		queue:   &ReclaimQueue{},
		policy:  policy,
	}
	policy.Bind(c.queue)
	return c
}

// Close releases the reclaim policy
func (c *Client) Close() {
	c.policy.Close()
}

// BaseURL returns the wrapped client's base URL
func (c *Client) BaseURL() string {
	return c.wrapped.BaseURL()
}

// lookup sweeps the reclamation queue, then consults the map. Both happen
// under the instance lock.
func (c *Client) lookup(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()

	h, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	v, alive := h.Get()
	if !alive {
		delete(c.entries, key)
		return nil, false
	}
	return v, true
}

func (c *Client) sweepLocked() {
	for _, key := range c.queue.Drain() {
		if h, ok := c.entries[key]; ok {
			if _, alive := h.Get(); !alive {
				delete(c.entries, key)
			}
		}
	}
}

func (c *Client) store(key string, value interface{}) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	h := newHandle(value)
	c.entries[key] = h
	c.policy.Track(key, h)
}

// storeNode stores a node under every key it is reachable by: id, url and
// the canonical node-content url.
func (c *Client) storeNode(n *domain.Node) {
	if n == nil {
		return
	}
	if n.ID != "" {
		c.store("Node:"+n.ID, n)
	}
	if n.URL != "" {
		c.store("Node:"+n.URL, n)
	}
	c.store(n.ContentKey(c.BaseURL()), n)
}

func (c *Client) storeCategory(cat *domain.Category) {
	if cat == nil {
		return
	}
	c.store(domain.EntityKey(cat), cat)
	for _, n := range cat.Nodes {
		c.storeNode(n)
	}
}

func (c *Client) storeMarket(m *domain.Market) {
	if m == nil {
		return
	}
	c.store(domain.EntityKey(m), m)
	for _, cat := range m.Categories {
		c.storeCategory(cat)
	}
}

func (c *Client) storeResult(key string, r *domain.SearchResult) {
	c.store(key, r)
	for _, n := range r.Nodes {
		c.storeNode(n)
	}
}

// queryKey composes the signature of a named query operation
func queryKey(op string, market *domain.Market, category *domain.Category, query string) string {
	var m, cat string
	if market != nil {
		m = market.ID
	}
	if category != nil {
		cat = category.ID
	}
	return op + ":" + m + "|" + cat + "|" + query
}

// ListMarkets memoizes the market list and every nested entity
func (c *Client) ListMarkets(ctx context.Context) ([]*domain.Market, error) {
	const key = "Markets:"
	if v, ok := c.lookup(key); ok {
		return v.([]*domain.Market), nil
	}
	markets, err := c.wrapped.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}
	c.store(key, markets)
	for _, m := range markets {
		c.storeMarket(m)
	}
	return markets, nil
}

// GetMarket memoizes by the reference's derived key. A nil reference is
// delegated so the wrapped client's error surfaces.
func (c *Client) GetMarket(ctx context.Context, market *domain.Market) (*domain.Market, error) {
	if market == nil {
		return c.wrapped.GetMarket(ctx, market)
	}
	key := domain.EntityKey(market)
	if v, ok := c.lookup(key); ok {
		return v.(*domain.Market), nil
	}
	out, err := c.wrapped.GetMarket(ctx, market)
	if err != nil {
		return nil, err
	}
	c.storeMarket(out)
	return out, nil
}

// GetCategory memoizes by the reference's derived key. A nil reference is
// delegated so the wrapped client's error surfaces.
func (c *Client) GetCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return c.wrapped.GetCategory(ctx, category)
	}
	key := domain.EntityKey(category)
	if v, ok := c.lookup(key); ok {
		return v.(*domain.Category), nil
	}
	out, err := c.wrapped.GetCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.storeCategory(out)
	return out, nil
}

// GetNode memoizes under all three node keys
func (c *Client) GetNode(ctx context.Context, node *domain.Node) (*domain.Node, error) {
	if node != nil {
		if v, ok := c.lookup(domain.EntityKey(node)); ok {
			return v.(*domain.Node), nil
		}
	}
	out, err := c.wrapped.GetNode(ctx, node)
	if err != nil {
		return nil, err
	}
	c.storeNode(out)
	return out, nil
}

// GetNodes serves what it can from the cache and delegates the rest in a
// single batch, preserving the caller's order.
func (c *Client) GetNodes(ctx context.Context, nodes []*domain.Node) ([]*domain.Node, error) {
	cached := make(map[int]*domain.Node, len(nodes))
	var misses []*domain.Node
	for i, ref := range nodes {
		if ref == nil {
			continue
		}
		if v, ok := c.lookup(domain.EntityKey(ref)); ok {
			cached[i] = v.(*domain.Node)
			continue
		}
		misses = append(misses, ref)
	}

	resolved := make(map[string]*domain.Node)
	if len(misses) > 0 {
		fetched, err := c.wrapped.GetNodes(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, n := range fetched {
			c.storeNode(n)
			if n.ID != "" {
				resolved["Node:"+n.ID] = n
			}
			if n.URL != "" {
				resolved["Node:"+n.URL] = n
			}
		}
	}

	out := make([]*domain.Node, 0, len(nodes))
	for i, ref := range nodes {
		if ref == nil {
			continue
		}
		if n, ok := cached[i]; ok {
			out = append(out, n)
			continue
		}
		if ref.ID != "" {
			if n, ok := resolved["Node:"+ref.ID]; ok {
				out = append(out, n)
				continue
			}
		}
		if ref.URL != "" {
			if n, ok := resolved["Node:"+ref.URL]; ok {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

// Search memoizes by the normalized operation signature
func (c *Client) Search(ctx context.Context, market *domain.Market, category *domain.Category, query string) (*domain.SearchResult, error) {
	key := queryKey("Search", market, category, query)
	if v, ok := c.lookup(key); ok {
		return v.(*domain.SearchResult), nil
	}
	out, err := c.wrapped.Search(ctx, market, category, query)
	if err != nil {
		return nil, err
	}
	c.storeResult(key, out)
	return out, nil
}

// Tagged memoizes by the tag signature
func (c *Client) Tagged(ctx context.Context, tag string) (*domain.SearchResult, error) {
	key := queryKey("Tagged", nil, nil, tag)
	if v, ok := c.lookup(key); ok {
		return v.(*domain.SearchResult), nil
	}
	out, err := c.wrapped.Tagged(ctx, tag)
	if err != nil {
		return nil, err
	}
	c.storeResult(key, out)
	return out, nil
}

// Featured memoizes by the normalized operation signature
func (c *Client) Featured(ctx context.Context, market *domain.Market, category *domain.Category) (*domain.SearchResult, error) {
	key := queryKey("Featured", market, category, "")
	if v, ok := c.lookup(key); ok {
		return v.(*domain.SearchResult), nil
	}
	out, err := c.wrapped.Featured(ctx, market, category)
	if err != nil {
		return nil, err
	}
	c.storeResult(key, out)
	return out, nil
}

// Recent memoizes the recent listing
func (c *Client) Recent(ctx context.Context) (*domain.SearchResult, error) {
	return c.namedListing(ctx, "Recent", c.wrapped.Recent)
}

// Popular memoizes the popular listing
func (c *Client) Popular(ctx context.Context) (*domain.SearchResult, error) {
	return c.namedListing(ctx, "Popular", c.wrapped.Popular)
}

// TopFavorites memoizes the top-favorites listing
func (c *Client) TopFavorites(ctx context.Context) (*domain.SearchResult, error) {
	return c.namedListing(ctx, "TopFavorites", c.wrapped.TopFavorites)
}

func (c *Client) namedListing(ctx context.Context, op string, fetch func(context.Context) (*domain.SearchResult, error)) (*domain.SearchResult, error) {
	key := queryKey(op, nil, nil, "")
	if v, ok := c.lookup(key); ok {
		return v.(*domain.SearchResult), nil
	}
	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.storeResult(key, out)
	return out, nil
}

// Related memoizes by the sorted basis id signature
func (c *Client) Related(ctx context.Context, basedOn []*domain.Node) (*domain.SearchResult, error) {
	sig := ""
	for _, n := range basedOn {
		if n != nil && n.ID != "" {
			sig += n.ID + "+"
		}
	}
	key := queryKey("Related", nil, nil, sig)
	if v, ok := c.lookup(key); ok {
		return v.(*domain.SearchResult), nil
	}
	out, err := c.wrapped.Related(ctx, basedOn)
	if err != nil {
		return nil, err
	}
	c.storeResult(key, out)
	return out, nil
}

// News memoizes the news entry
func (c *Client) News(ctx context.Context) (*domain.News, error) {
	const key = "News:"
	if v, ok := c.lookup(key); ok {
		return v.(*domain.News), nil
	}
	out, err := c.wrapped.News(ctx)
	if err != nil {
		return nil, err
	}
	if out != nil {
		c.store(key, out)
	}
	return out, nil
}

// ListCatalogs memoizes the catalog branding list
func (c *Client) ListCatalogs(ctx context.Context) ([]*domain.Catalog, error) {
	const key = "Catalogs:"
	if v, ok := c.lookup(key); ok {
		return v.([]*domain.Catalog), nil
	}
	out, err := c.wrapped.ListCatalogs(ctx)
	if err != nil {
		return nil, err
	}
	c.store(key, out)
	return out, nil
}

// UserFavorites is deliberately never cached: favorite status must be
// recomputed on every call. Only the node content underneath benefits from
// this cache, via the registry.
func (c *Client) UserFavorites(ctx context.Context) ([]*domain.Node, error) {
	return c.wrapped.UserFavorites(ctx)
}

// FavoritesFromList delegates uncached for the same reason as UserFavorites
func (c *Client) FavoritesFromList(ctx context.Context, listURL string) ([]*domain.Node, error) {
	return c.wrapped.FavoritesFromList(ctx, listURL)
}

// ReportInstallError delegates; telemetry is not cacheable
func (c *Client) ReportInstallError(ctx context.Context, status string, statusMessage string, nodes []*domain.Node, ius []string, detail string) error {
	return c.wrapped.ReportInstallError(ctx, status, statusMessage, nodes, ius, detail)
}

// ReportInstallSuccess delegates
func (c *Client) ReportInstallSuccess(ctx context.Context, node *domain.Node) {
	c.wrapped.ReportInstallSuccess(ctx, node)
}
