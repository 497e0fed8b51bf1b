package catalog

import "testing"

func TestComputeRelativeSearchURL(t *testing.T) {
	tests := []struct {
		name       string
		marketID   string
		categoryID string
		query      string
		api        bool
		want       string
	}{
		{
			"full text with both identifiers, api form orders market first",
			"31", "38", "some query", true,
			"search/apachesolr_search/some+query?filters=tid:31%20tid:38",
		},
		{
			"full text with both identifiers, browser form orders category first",
			"31", "38", "some query", false,
			"search/apachesolr_search/some+query?filters=tid:38%20tid:31",
		},
		{
			"full text with market only",
			"31", "", "some query", true,
			"search/apachesolr_search/some+query?filters=tid:31",
		},
		{
			"full text without identifiers",
			"", "", "editor", true,
			"search/apachesolr_search/editor",
		},
		{
			"taxonomy with market only carries the api marker",
			"31", "", "", true,
			"taxonomy/term/31/api/p",
		},
		{
			"taxonomy with both identifiers orders category first",
			"31", "38", "", true,
			"taxonomy/term/38,31/api/p",
		},
		{
			"taxonomy browser form has no api marker",
			"31", "38", "", false,
			"taxonomy/term/38,31",
		},
		{
			"no criteria yields no url",
			"", "", "", true,
			"",
		},
		{
			"blank query is treated as absent",
			"", "", "   ", true,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeRelativeSearchURL(tt.marketID, tt.categoryID, tt.query, tt.api)
			if got != tt.want {
				t.Errorf("computeRelativeSearchURL = %q\nwant %q", got, tt.want)
			}
		})
	}
}
