// ABOUTME: Catalog service maps domain operations onto relative endpoint paths
// ABOUTME: Post-processes decoded root documents into typed operation results

package catalog

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"marketplace-client-api/core/domain"
	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/favorites"
	"marketplace-client-api/core/interfaces"
	"marketplace-client-api/core/request"
)

// Service is the raw marketplace client bound to one catalog base URL
type Service struct {
	deps      interfaces.Dependencies
	exec      *request.Executor
	meta      *request.ClientMeta
	favorites interfaces.FavoritesProvider
	registry  *Registry
}

// NewService creates a catalog service. meta may be nil to disable client
// identification parameters.
func NewService(deps interfaces.Dependencies, baseURL string, meta *request.ClientMeta) *Service {
	return &Service{
		deps:     deps,
		exec:     request.NewExecutor(deps, baseURL, meta),
		meta:     meta,
		registry: DefaultRegistry,
	}
}

// SetFavoritesProvider wires in the favorites synchronizer. Without it the
// user-favorites operation fails with a configuration error.
func (s *Service) SetFavoritesProvider(p interfaces.FavoritesProvider) {
	s.favorites = p
}

// SetRegistry overrides the client registry, for tests
func (s *Service) SetRegistry(r *Registry) {
	s.registry = r
}

// BaseURL returns the catalog base URL this service is bound to
func (s *Service) BaseURL() string {
	return s.exec.BaseURL()
}

// ListMarkets fetches the market and category taxonomy from the root
// listing endpoint.
func (s *Service) ListMarkets(ctx context.Context) ([]*domain.Market, error) {
	mp, err := s.exec.Execute(ctx, apiMarker, true)
	if err != nil {
		return nil, err
	}
	return mp.Markets, nil
}

// GetMarket resolves a market reference against the fetched market list,
// matching by id when one is given and by url otherwise.
func (s *Service) GetMarket(ctx context.Context, market *domain.Market) (*domain.Market, error) {
	if market == nil || (market.ID == "" && market.URL == "") {
		return nil, errors.New("market reference needs an id or url")
	}
	markets, err := s.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range markets {
		if market.ID != "" {
			if m.ID == market.ID {
				return m, nil
			}
			continue
		}
		if m.URL == market.URL {
			return m, nil
		}
	}
	return nil, &cerrors.NotFoundError{Resource: "Market", URI: domain.EntityKey(market)}
}

// GetCategory resolves a category reference. An id-only reference is first
// resolved to a url through the market list, then fetched directly.
func (s *Service) GetCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil || (category.ID == "" && category.URL == "") {
		return nil, errors.New("category reference needs an id or url")
	}

	if category.URL == "" {
		markets, err := s.ListMarkets(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range markets {
			for _, c := range m.Categories {
				if c.ID == category.ID {
					return s.GetCategory(ctx, c)
				}
			}
		}
		return nil, &cerrors.NotFoundError{Resource: "Category", URI: domain.EntityKey(category)}
	}

	uri := strings.TrimSuffix(category.URL, "/") + "/" + apiMarker
	mp, err := s.exec.ExecuteURL(ctx, uri, true)
	if err != nil {
		return nil, err
	}
	if len(mp.Categories) != 1 {
		return nil, &cerrors.UnexpectedResponseError{
			URI:     uri,
			Message: "expected exactly one category",
		}
	}
	return mp.Categories[0], nil
}

// Search runs a full-text or taxonomy search. Empty criteria mean an empty
// result with zero matches, not an error.
func (s *Service) Search(ctx context.Context, market *domain.Market, category *domain.Category, query string) (*domain.SearchResult, error) {
	rel := computeRelativeSearchURL(entityID(market), entityID(category), query, true)
	if rel == "" {
		return &domain.SearchResult{}, nil
	}
	mp, err := s.exec.Execute(ctx, rel, true)
	if err != nil {
		return nil, err
	}
	return searchResultFrom(mp), nil
}

// Tagged fetches the listings labeled with the given tag via the taxonomy
// path. An empty tag means an empty result with zero matches, not an error.
func (s *Service) Tagged(ctx context.Context, tag string) (*domain.SearchResult, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return &domain.SearchResult{}, nil
	}
	rel := taxonomyPath + "/" + url.PathEscape(tag) + "/" + apiMarker
	mp, err := s.exec.Execute(ctx, rel, true)
	if err != nil {
		return nil, err
	}
	return searchResultFrom(mp), nil
}

// Featured fetches the featured listing, optionally scoped by market and
// category.
func (s *Service) Featured(ctx context.Context, market *domain.Market, category *domain.Category) (*domain.SearchResult, error) {
	rel := "featured/"
	if ids := appendNonEmpty(entityID(market), entityID(category)); len(ids) > 0 {
		rel += strings.Join(ids, ",") + "/"
	}
	rel += apiMarker

	mp, err := s.exec.Execute(ctx, rel, true)
	if err != nil {
		return nil, err
	}
	return pickListing(mp.Featured, rel)
}

// Recent fetches the most recently updated listings
func (s *Service) Recent(ctx context.Context) (*domain.SearchResult, error) {
	mp, err := s.exec.Execute(ctx, "recent/"+apiMarker, true)
	if err != nil {
		return nil, err
	}
	return pickListing(mp.Recent, "recent")
}

// Popular fetches the most installed listings
func (s *Service) Popular(ctx context.Context) (*domain.SearchResult, error) {
	mp, err := s.exec.Execute(ctx, "popular/top/"+apiMarker, true)
	if err != nil {
		return nil, err
	}
	return pickListing(mp.Popular, "popular")
}

// TopFavorites fetches the most favorited listings
func (s *Service) TopFavorites(ctx context.Context) (*domain.SearchResult, error) {
	mp, err := s.exec.Execute(ctx, "favorites/top/"+apiMarker, true)
	if err != nil {
		return nil, err
	}
	return pickListing(mp.Favorites, "favorites")
}

// Related fetches listings related to the given basis nodes
func (s *Service) Related(ctx context.Context, basedOn []*domain.Node) (*domain.SearchResult, error) {
	rel := "related/" + apiMarker
	var ids []string
	for _, n := range basedOn {
		if n != nil && n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) > 0 {
		rel += "?nodes=" + strings.Join(ids, "+")
	}

	mp, err := s.exec.Execute(ctx, rel, true)
	if err != nil {
		return nil, err
	}
	return pickListing(mp.Related, "related")
}

// News fetches the news banner entry. A response without one yields nil,
// not an error.
func (s *Service) News(ctx context.Context) (*domain.News, error) {
	mp, err := s.exec.Execute(ctx, "news/"+apiMarker, true)
	if err != nil {
		return nil, err
	}
	return mp.News, nil
}

// ListCatalogs fetches catalog branding metadata
func (s *Service) ListCatalogs(ctx context.Context) ([]*domain.Catalog, error) {
	mp, err := s.exec.Execute(ctx, "catalogs/"+apiMarker, true)
	if err != nil {
		return nil, err
	}
	return mp.Catalogs, nil
}

// UserFavorites resolves the current user's favorite nodes. Resolution
// goes through the preferred client registered for this base URL so node
// content benefits from the cache when one is wrapped around this service.
func (s *Service) UserFavorites(ctx context.Context) ([]*domain.Node, error) {
	if s.favorites == nil {
		return nil, errors.New("favorites synchronizer is not configured")
	}
	ids, err := s.favorites.FavoriteIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveFavoriteIDs(ctx, ids)
}

// FavoritesFromList resolves the favorite nodes named by an arbitrary
// favorites-list document. An absent document yields an empty result, not
// an error. Resolution goes through the preferred client like UserFavorites.
func (s *Service) FavoritesFromList(ctx context.Context, listURL string) ([]*domain.Node, error) {
	ids, err := favorites.FavoriteIDsFromList(ctx, s.deps.Transport, listURL)
	if err != nil {
		return nil, err
	}
	return s.resolveFavoriteIDs(ctx, ids)
}

func (s *Service) resolveFavoriteIDs(ctx context.Context, ids []string) ([]*domain.Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, &domain.Node{Identifiable: domain.Identifiable{ID: id}})
	}

	var client interfaces.CatalogClient = s
	if s.registry != nil {
		if preferred := s.registry.ClientFor(s.BaseURL()); preferred != nil {
			client = preferred
		}
	}
	return client.GetNodes(ctx, refs)
}

func searchResultFrom(mp *domain.Marketplace) *domain.SearchResult {
	if mp.Search != nil {
		return mp.Search
	}
	// Taxonomy browse responses return the category listing directly
	// instead of a search envelope.
	var nodes []*domain.Node
	for _, c := range mp.Categories {
		nodes = append(nodes, c.Nodes...)
	}
	nodes = append(nodes, mp.Nodes...)
	return &domain.SearchResult{MatchCount: len(nodes), Nodes: nodes}
}

func pickListing(r *domain.SearchResult, what string) (*domain.SearchResult, error) {
	if r == nil {
		return nil, &cerrors.UnexpectedResponseError{
			URI:     what,
			Message: "response did not contain the " + what + " listing",
		}
	}
	return r, nil
}

func entityID(e domain.Entity) string {
	if e == nil {
		return ""
	}
	// A typed nil pointer still reaches here as a non-nil Entity.
	switch v := e.(type) {
	case *domain.Market:
		if v == nil {
			return ""
		}
	case *domain.Category:
		if v == nil {
			return ""
		}
	}
	return e.Ident().ID
}

func (s *Service) warn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}
