// ABOUTME: Immutable element-name dispatch table for the streaming decoder
// ABOUTME: Built once at startup; unknown elements are skipped wholesale

package decode

import (
	"strconv"
	"strings"
	"time"

	"marketplace-client-api/core/domain"
)

// frameSpecs is the fixed name-to-prototype table. It is read-only after
// package initialization.
var frameSpecs map[string]*frameSpec

func init() {
	frameSpecs = map[string]*frameSpec{
		"marketplace": {
			root:   true,
			create: func(at attrs) interface{} { return &domain.Marketplace{} },
			leaves: map[string]leafFunc{
				"news": setNews,
			},
		},
		"catalogs": {
			// Catalog listing documents share the marketplace root
			// model so the catalog entries have somewhere to attach.
			root:   true,
			create: func(at attrs) interface{} { return &domain.Marketplace{} },
		},
		"market": {
			create: func(at attrs) interface{} {
				return &domain.Market{Identifiable: identFrom(at)}
			},
			attach: attachMarket,
		},
		"category": {
			create: func(at attrs) interface{} {
				return &domain.Category{
					Identifiable: identFrom(at),
					Count:        atoi(at.get("count")),
				}
			},
			attach: attachCategory,
		},
		"node": {
			create: func(at attrs) interface{} {
				return &domain.Node{Identifiable: identFrom(at)}
			},
			leaves: nodeLeaves,
			attach: attachNode,
		},
		"search":    listingSpec(func(m *domain.Marketplace, r *domain.SearchResult) { m.Search = r }),
		"featured":  listingSpec(func(m *domain.Marketplace, r *domain.SearchResult) { m.Featured = r }),
		"recent":    listingSpec(func(m *domain.Marketplace, r *domain.SearchResult) { m.Recent = r }),
		"popular":   listingSpec(func(m *domain.Marketplace, r *domain.SearchResult) { m.Popular = r }),
		"related":   listingSpec(func(m *domain.Marketplace, r *domain.SearchResult) { m.Related = r }),
		"favorites": listingSpec(func(m *domain.Marketplace, r *domain.SearchResult) { m.Favorites = r }),
		"catalog": {
			create: func(at attrs) interface{} {
				return &domain.Catalog{
					Identifiable:  identFrom(at),
					SelfContained: parseFlag(at.get("selfContained")) || parseFlag(at.get("selfcontained")),
					Icon:          at.get("icon"),
				}
			},
			leaves: map[string]leafFunc{
				"description": func(model interface{}, text string, at attrs) {
					if c, ok := model.(*domain.Catalog); ok {
						c.Description = text
					}
				},
			},
			attach: func(parent, child interface{}) bool {
				m, ok := parent.(*domain.Marketplace)
				if !ok {
					return false
				}
				m.Catalogs = append(m.Catalogs, child.(*domain.Catalog))
				return true
			},
		},
		"wizard": {
			create: func(at attrs) interface{} {
				return &domain.CatalogBranding{
					Title: at.get("title"),
					Icon:  at.get("icon"),
				}
			},
			leaves: map[string]leafFunc{
				"searchtab":  brandingTab(func(b *domain.CatalogBranding, on bool) { b.SearchTab = on }),
				"populartab": brandingTab(func(b *domain.CatalogBranding, on bool) { b.PopularTab = on }),
				"recenttab":  brandingTab(func(b *domain.CatalogBranding, on bool) { b.RecentTab = on }),
				"newstab":    brandingTab(func(b *domain.CatalogBranding, on bool) { b.NewsTab = on }),
			},
			attach: func(parent, child interface{}) bool {
				c, ok := parent.(*domain.Catalog)
				if !ok {
					return false
				}
				c.Wizard = child.(*domain.CatalogBranding)
				return true
			},
		},
		// Grouping elements pass the parent model through so their
		// children attach to the enclosing entity.
		"categories": {},
		"tags": {
			leaves: map[string]leafFunc{
				"tag": func(model interface{}, text string, at attrs) {
					n, ok := model.(*domain.Node)
					if !ok {
						return
					}
					name := at.get("name")
					if name == "" {
						name = text
					}
					n.Tags = append(n.Tags, domain.Tag{
						ID:   at.get("id"),
						Name: name,
						URL:  at.get("url"),
					})
				},
			},
		},
		"ius": {
			leaves: map[string]leafFunc{
				"iu": func(model interface{}, text string, at attrs) {
					n, ok := model.(*domain.Node)
					if !ok {
						return
					}
					id := at.get("id")
					if id == "" {
						id = text
					}
					if id == "" {
						return
					}
					n.IUs = append(n.IUs, domain.InstallUnit{
						ID:       id,
						Optional: parseFlag(at.get("optional")),
						Selected: parseFlag(at.get("selected")),
					})
				},
			},
		},
		"platforms": {
			leaves: map[string]leafFunc{
				"platform": func(model interface{}, text string, at attrs) {
					n, ok := model.(*domain.Node)
					if !ok {
						return
					}
					if text != "" {
						n.Platforms = append(n.Platforms, text)
					}
				},
			},
		},
	}
}

// listingSpec builds the spec shared by the named node-listing sub-results
func listingSpec(assign func(m *domain.Marketplace, r *domain.SearchResult)) *frameSpec {
	return &frameSpec{
		create: func(at attrs) interface{} {
			return &domain.SearchResult{MatchCount: atoi(at.get("count"))}
		},
		attach: func(parent, child interface{}) bool {
			m, ok := parent.(*domain.Marketplace)
			if !ok {
				return false
			}
			assign(m, child.(*domain.SearchResult))
			return true
		},
	}
}

func attachMarket(parent, child interface{}) bool {
	m, ok := parent.(*domain.Marketplace)
	if !ok {
		return false
	}
	m.Markets = append(m.Markets, child.(*domain.Market))
	return true
}

func attachCategory(parent, child interface{}) bool {
	c := child.(*domain.Category)
	switch p := parent.(type) {
	case *domain.Marketplace:
		p.Categories = append(p.Categories, c)
	case *domain.Market:
		p.Categories = append(p.Categories, c)
	case *domain.Node:
		p.Categories = append(p.Categories, c)
	default:
		return false
	}
	return true
}

func attachNode(parent, child interface{}) bool {
	n := child.(*domain.Node)
	switch p := parent.(type) {
	case *domain.Marketplace:
		p.Nodes = append(p.Nodes, n)
	case *domain.Category:
		p.Nodes = append(p.Nodes, n)
	case *domain.SearchResult:
		p.Nodes = append(p.Nodes, n)
	default:
		return false
	}
	return true
}

// nodeLeaves maps the node's interior text elements onto Node fields
var nodeLeaves = map[string]leafFunc{
	"type":             nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Type = text }),
	"owner":            nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Owner = text }),
	"shortdescription": nodeLeaf(func(n *domain.Node, text string, at attrs) { n.ShortDescription = text }),
	"body":             nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Body = text }),
	"created":          nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Created = unixTime(text) }),
	"changed":          nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Changed = unixTime(text) }),
	"homepageurl":      nodeLeaf(func(n *domain.Node, text string, at attrs) { n.HomepageURL = text }),
	"image":            nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Image = text }),
	"license":          nodeLeaf(func(n *domain.Node, text string, at attrs) { n.License = text }),
	"companyname":      nodeLeaf(func(n *domain.Node, text string, at attrs) { n.CompanyName = text }),
	"status":           nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Status = text }),
	"version":          nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Version = text }),
	"eclipseversion":   nodeLeaf(func(n *domain.Node, text string, at attrs) { n.EclipseVersion = text }),
	"updateurl":        nodeLeaf(func(n *domain.Node, text string, at attrs) { n.UpdateURL = text }),
	"favorited":        nodeLeaf(func(n *domain.Node, text string, at attrs) { n.Favorited = atoi(text) }),
	"installstotal":    nodeLeaf(func(n *domain.Node, text string, at attrs) { n.InstallsTotal = atoi(text) }),
	"installsrecent":   nodeLeaf(func(n *domain.Node, text string, at attrs) { n.InstallsRecent = atoi(text) }),
}

func nodeLeaf(set func(n *domain.Node, text string, at attrs)) leafFunc {
	return func(model interface{}, text string, at attrs) {
		if n, ok := model.(*domain.Node); ok {
			set(n, text, at)
		}
	}
}

func brandingTab(set func(b *domain.CatalogBranding, on bool)) leafFunc {
	return func(model interface{}, text string, at attrs) {
		b, ok := model.(*domain.CatalogBranding)
		if !ok {
			return
		}
		enabled := at.get("enabled")
		set(b, enabled == "" || parseFlag(enabled))
	}
}

func setNews(model interface{}, text string, at attrs) {
	m, ok := model.(*domain.Marketplace)
	if !ok {
		return
	}
	url := at.get("url")
	if url == "" {
		url = text
	}
	m.News = &domain.News{
		URL:        url,
		ShortTitle: at.get("shorttitle"),
		Timestamp:  int64(atoi(at.get("timestamp"))),
	}
}

func identFrom(at attrs) domain.Identifiable {
	return domain.Identifiable{
		ID:   at.get("id"),
		Name: at.get("name"),
		URL:  at.get("url"),
	}
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func unixTime(s string) time.Time {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
