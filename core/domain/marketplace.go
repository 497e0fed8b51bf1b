// ABOUTME: Marketplace is the transient root document of one decoded response
// ABOUTME: Holds whichever entities and sub-results that response contained

package domain

// Marketplace is the root of one decoded catalog response. It lives only
// for the duration of one decode; callers extract the sub-result they need
// and discard the rest.
type Marketplace struct {
	// Markets, Categories and Nodes are the entities attached directly
	// to the document root
	Markets    []*Market
	Categories []*Category
	Nodes      []*Node

	// At most one of each named sub-result per response
	Search    *SearchResult
	Featured  *SearchResult
	Recent    *SearchResult
	Popular   *SearchResult
	Related   *SearchResult
	Favorites *SearchResult

	// News is the news banner entry, if the response carried one
	News *News

	// Catalogs holds branding metadata when the response is a catalog
	// listing document
	Catalogs []*Catalog
}

// SearchResult is an ordered list of nodes plus the server-side match
// count. MatchCount may exceed len(Nodes) when the server truncated the
// page.
type SearchResult struct {
	MatchCount int
	Nodes      []*Node
}

// News is a news banner entry
type News struct {
	URL        string
	ShortTitle string
	Timestamp  int64
}

// Catalog describes one hosted marketplace catalog
type Catalog struct {
	Identifiable

	SelfContained bool
	Icon          string
	Description   string

	// Wizard carries the branding of the catalog browse UI
	Wizard *CatalogBranding
}

// Kind implements Entity
func (c *Catalog) Kind() string {
	return "Catalog"
}

// CatalogBranding configures which tabs a catalog exposes
type CatalogBranding struct {
	Title      string
	Icon       string
	SearchTab  bool
	PopularTab bool
	RecentTab  bool
	NewsTab    bool
}
