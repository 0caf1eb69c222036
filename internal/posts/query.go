package posts

import "strings"

// FilterAll is the sentinel value that disables a category, tag, or status filter.
const FilterAll = "all"

// SortKey identifies the active sort column.
type SortKey string

const (
	SortByTitle       SortKey = "title"
	SortByPublishedAt SortKey = "publishedAt"
	SortByViews       SortKey = "views"
	SortByComments    SortKey = "comments"
	SortByOrder       SortKey = "order"
)

// SortDirection flips the comparator sign.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query holds the active filter, sort, and pagination state for a projection.
// It is a pure value type owned by the caller; the projection engine only
// reads it. Callers must reset Page to 1 whenever a filter field changes —
// the engine deliberately never mutates the query.
type Query struct {
	Search   string
	DateFrom string
	DateTo   string
	Category string
	Tag      string
	Status   string
	SortBy   SortKey
	SortDir  SortDirection
	Page     int
	PerPage  int
}

// DefaultQuery returns the neutral session-start state: no filters, manual
// ordering ascending, first page.
func DefaultQuery() Query {
	return Query{
		Category: FilterAll,
		Tag:      FilterAll,
		Status:   FilterAll,
		SortBy:   SortByOrder,
		SortDir:  SortAsc,
		Page:     1,
		PerPage:  10,
	}
}

// WithFilterReset returns a copy of the query with the page rewound to 1.
// Intended for callers applying a filter change.
func (q Query) WithFilterReset() Query {
	q.Page = 1
	return q
}

func (q Query) categoryActive() bool {
	return filterActive(q.Category)
}

func (q Query) tagActive() bool {
	return filterActive(q.Tag)
}

func (q Query) statusActive() bool {
	return filterActive(q.Status)
}

func filterActive(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && !strings.EqualFold(trimmed, FilterAll)
}
