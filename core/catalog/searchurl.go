// ABOUTME: Deterministic relative URL construction for the search family
// ABOUTME: API and browser-facing forms order the taxonomy identifiers differently

package catalog

import (
	"net/url"
	"strings"
)

const (
	// apiMarker suffixes every machine-readable endpoint path
	apiMarker = "api/p"

	fullTextPath = "search/apachesolr_search"
	taxonomyPath = "taxonomy/term"
)

// computeRelativeSearchURL builds the relative URL for a search scoped by
// an optional market id, an optional category id and an optional full-text
// query.
//
// With a non-blank query the full-text path is used and the taxonomy
// filter orders market before category in the API form, category before
// market in the browser form. Without a query the taxonomy path is used,
// ordering category before market in both forms. With neither query nor
// identifiers there is no URL: the caller must treat that as an empty
// search, not an error.
func computeRelativeSearchURL(marketID, categoryID, query string, api bool) string {
	query = strings.TrimSpace(query)

	if query != "" {
		rel := fullTextPath + "/" + url.QueryEscape(query)
		var ids []string
		if api {
			ids = appendNonEmpty(marketID, categoryID)
		} else {
			ids = appendNonEmpty(categoryID, marketID)
		}
		if len(ids) > 0 {
			rel += "?filters=tid:" + ids[0]
			if len(ids) > 1 {
				rel += "%20tid:" + ids[1]
			}
		}
		return rel
	}

	ids := appendNonEmpty(categoryID, marketID)
	if len(ids) == 0 {
		return ""
	}
	rel := taxonomyPath + "/" + strings.Join(ids, ",")
	if api {
		rel += "/" + apiMarker
	}
	return rel
}

func appendNonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
