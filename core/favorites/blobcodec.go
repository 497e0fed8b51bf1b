// ABOUTME: Wire codec for the favorites record blob
// ABOUTME: A comma-separated, ascending-sorted list of node ids

package favorites

import (
	"sort"
	"strings"
)

// BlobKey is the well-known blob store key of the favorites record
const BlobKey = "marketplace_favorites"

// encodeIDs serializes the id set as a sorted comma-separated list
func encodeIDs(ids map[string]struct{}) string {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// decodeIDs parses the blob content with a plain delimiter split. Token
// ordering is irrelevant and blank tokens are skipped, so a hand-edited or
// legacy blob still parses.
func decodeIDs(content string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, token := range strings.Split(content, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			ids[token] = struct{}{}
		}
	}
	return ids
}

// sortedIDs returns the set as an ascending slice
func sortedIDs(ids map[string]struct{}) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
