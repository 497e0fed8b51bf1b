// ABOUTME: CatalogClient is the contract shared by the raw client and its cache wrapper
// ABOUTME: Every public operation blocks for the duration of its round trips

package interfaces

import (
	"context"

	"marketplace-client-api/core/domain"
)

// CatalogClient maps domain operations onto the remote catalog service.
// The raw client and the caching wrapper both implement it, so callers can
// be handed either.
type CatalogClient interface {
	// BaseURL returns the catalog base URL this client is bound to
	BaseURL() string

	// ListMarkets fetches the market and category taxonomy
	ListMarkets(ctx context.Context) ([]*domain.Market, error)

	// GetMarket resolves a market reference by id or url
	GetMarket(ctx context.Context, market *domain.Market) (*domain.Market, error)

	// GetCategory resolves a category reference by id or url
	GetCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)

	// GetNode resolves a single node reference by id or url
	GetNode(ctx context.Context, node *domain.Node) (*domain.Node, error)

	// GetNodes resolves a collection of node references. Partial success
	// is the policy: unresolved nodes are omitted and logged, the input
	// order is preserved.
	GetNodes(ctx context.Context, nodes []*domain.Node) ([]*domain.Node, error)

	// Search runs a full-text or taxonomy search scoped by the optional
	// market and category. Empty criteria yield an empty result, not an
	// error.
	Search(ctx context.Context, market *domain.Market, category *domain.Category, query string) (*domain.SearchResult, error)

	// Tagged fetches the listings labeled with the given tag. An empty
	// tag yields an empty result, not an error.
	Tagged(ctx context.Context, tag string) (*domain.SearchResult, error)

	// Featured, Recent, Popular, TopFavorites and Related fetch the named
	// server-side listings
	Featured(ctx context.Context, market *domain.Market, category *domain.Category) (*domain.SearchResult, error)
	Recent(ctx context.Context) (*domain.SearchResult, error)
	Popular(ctx context.Context) (*domain.SearchResult, error)
	TopFavorites(ctx context.Context) (*domain.SearchResult, error)
	Related(ctx context.Context, basedOn []*domain.Node) (*domain.SearchResult, error)

	// News fetches the news banner entry, if the server has one
	News(ctx context.Context) (*domain.News, error)

	// ListCatalogs fetches catalog branding metadata
	ListCatalogs(ctx context.Context) ([]*domain.Catalog, error)

	// UserFavorites resolves the current user's favorite nodes
	UserFavorites(ctx context.Context) ([]*domain.Node, error)

	// FavoritesFromList resolves the favorite nodes named by an arbitrary
	// favorites-list document. An absent document yields an empty result.
	FavoritesFromList(ctx context.Context, listURL string) ([]*domain.Node, error)

	// ReportInstallError and ReportInstallSuccess are best-effort
	// telemetry; their failures are logged, never surfaced, except when
	// the request cannot even be built.
	ReportInstallError(ctx context.Context, status string, statusMessage string, nodes []*domain.Node, ius []string, detail string) error
	ReportInstallSuccess(ctx context.Context, node *domain.Node)
}

// FavoritesProvider is the slice of the favorites synchronizer the catalog
// client needs: the current favorite id set.
type FavoritesProvider interface {
	FavoriteIDs(ctx context.Context) ([]string, error)
}
