package model

// Group is a set of pages sharing the same normalized metadata.
// Only groups with at least two pages are ever reported.
type Group struct {
	// ID is the 1-based position of the group in discovery order within
	// its stage.
	ID int `json:"id"`

	// Key is the composite key (or single normalized value) shared by
	// every page in the group.
	Key string `json:"key"`

	// Pages lists the members in dataset order.
	Pages []Page `json:"pages"`
}

// Size returns the number of pages in the group.
func (g Group) Size() int {
	return len(g.Pages)
}
