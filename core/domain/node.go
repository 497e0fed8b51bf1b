// ABOUTME: Node domain model represents a single marketplace listing
// ABOUTME: Carries descriptive metadata, install units, platforms and tags

package domain

import "time"

// Node represents a single catalog entry (a plugin or solution)
type Node struct {
	Identifiable

	// Type is the listing type reported by the server
	Type string

	// Owner is the display name of the listing owner
	Owner string

	// ShortDescription is the one-line summary
	ShortDescription string

	// Body is the long description, may contain markup
	Body string

	// Created is when the listing was first published
	Created time.Time

	// Changed is when the listing was last updated
	Changed time.Time

	// Additional descriptive fields
	HomepageURL    string
	Image          string
	License        string
	CompanyName    string
	Status         string
	Version        string
	EclipseVersion string
	UpdateURL      string

	// Favorited is the server-reported favorite counter
	Favorited int

	// InstallsTotal and InstallsRecent are server-side install counters
	InstallsTotal  int
	InstallsRecent int

	// IUs lists the installable units associated with this listing.
	// A non-empty list is what makes a node installable.
	IUs []InstallUnit

	// Platforms lists the supported platforms
	Platforms []string

	// Categories holds the nested category references, if the response
	// carried any
	Categories []*Category

	// Tags holds the nested tag references, if any
	Tags []Tag
}

// InstallUnit identifies one installable component of a listing
type InstallUnit struct {
	ID       string
	Optional bool
	Selected bool
}

// Tag is a lightweight label attached to a node
type Tag struct {
	ID   string
	Name string
	URL  string
}

// Kind implements Entity
func (n *Node) Kind() string {
	return "Node"
}

// Installable reports whether the node carries at least one install unit
func (n *Node) Installable() bool {
	return len(n.IUs) > 0
}

// ContentKey derives the cache key for the canonical node-content URL under
// the given base URL. It is empty when the node has no id.
func (n *Node) ContentKey(baseURL string) string {
	if n.ID == "" || baseURL == "" {
		return ""
	}
	return "Node:" + baseURL + "/node/" + n.ID
}
