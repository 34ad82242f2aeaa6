package models

// All is the pass-through option of every category and tag filter.
const All = "All"

// Filterable is implemented by every record that can be listed through the
// filter engine.
type Filterable interface {
	FilterCategory() string
	FilterTags() []string
	// SearchFields are the values the free-text query is matched against.
	SearchFields() []string
}

// FilterState is the user's current selection. It is rebuilt from the request
// on every call and never stored.
type FilterState struct {
	Category string `form:"category" json:"category"`
	Tag      string `form:"tag" json:"tag"`
	Query    string `form:"q" json:"q"`
}

// FilterResult is a filtered view together with the options it was chosen from.
type FilterResult[T any] struct {
	Items      []T         `json:"items"`
	Total      int         `json:"total"`
	Categories []string    `json:"categories"`
	Tags       []string    `json:"tags,omitempty"`
	State      FilterState `json:"state"`
}
