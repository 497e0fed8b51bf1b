// ABOUTME: Market and Category domain models forming the catalog taxonomy
// ABOUTME: A Market owns Categories and a Category owns Nodes

package domain

// Market is the top level of the catalog taxonomy
type Market struct {
	Identifiable

	// Categories contains the categories owned by this market
	Categories []*Category
}

// Kind implements Entity
func (m *Market) Kind() string {
	return "Market"
}

// Category groups nodes within a market
type Category struct {
	Identifiable

	// Count is the server-reported number of nodes in this category
	Count int

	// Nodes contains the listings attached to this category
	Nodes []*Node
}

// Kind implements Entity
func (c *Category) Kind() string {
	return "Category"
}
