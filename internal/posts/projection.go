package posts

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Projection is the filtered, sorted, paginated view of the full record set.
type Projection struct {
	Page         []*Post
	TotalMatched int
	TotalPages   int
}

// titleCollator compares string sort keys with locale-aware rules instead of
// raw byte order. Collators are not safe for concurrent use, so Project builds
// a fresh one per call rather than sharing this configuration.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}

// Project derives the visible page from the full record set and the query
// state. It is a pure function: the input slice is never reordered or
// mutated, and the same inputs always produce the same projection.
//
// The pipeline applies filters before the sort so the comparator only runs
// over surviving records: search, date range, category, tag, status, then a
// stable sort and the page slice. A page past the end yields an empty slice.
func Project(records []*Post, query Query) Projection {
	matched := make([]*Post, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if !matchesQuery(record, query) {
			continue
		}
		matched = append(matched, record)
	}

	sortPosts(matched, query.SortBy, query.SortDir)

	total := len(matched)
	perPage := query.PerPage
	if perPage <= 0 {
		return Projection{Page: matched, TotalMatched: total, TotalPages: 1}
	}

	totalPages := (total + perPage - 1) / perPage
	page := query.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= total {
		return Projection{Page: []*Post{}, TotalMatched: total, TotalPages: totalPages}
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return Projection{Page: matched[start:end], TotalMatched: total, TotalPages: totalPages}
}

func matchesQuery(record *Post, query Query) bool {
	if !matchesSearch(record, query.Search) {
		return false
	}
	if !matchesDateRange(record.PublishedAt, query.DateFrom, query.DateTo) {
		return false
	}
	if query.categoryActive() && !strings.EqualFold(record.Category, strings.TrimSpace(query.Category)) {
		return false
	}
	if query.tagActive() && !hasTag(record.Tags, strings.TrimSpace(query.Tag)) {
		return false
	}
	if query.statusActive() && !strings.EqualFold(record.Status, strings.TrimSpace(query.Status)) {
		return false
	}
	return true
}

func matchesSearch(record *Post, search string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(record.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(record.Excerpt), term) {
		return true
	}
	if strings.Contains(strings.ToLower(record.Category), term) {
		return true
	}
	return false
}

// matchesDateRange relies on the YYYY-MM-DD ingestion invariant: fixed-width
// dates compare correctly as strings.
func matchesDateRange(publishedAt, from, to string) bool {
	if from = strings.TrimSpace(from); from != "" && publishedAt < from {
		return false
	}
	if to = strings.TrimSpace(to); to != "" && publishedAt > to {
		return false
	}
	return true
}

func hasTag(tags []string, filter string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, filter) {
			return true
		}
	}
	return false
}

// sortPosts orders records in place by the active key. The sort is stable so
// records sharing a key value retain their relative input order, which the
// order-key sort depends on during transient renumbering states.
func sortPosts(records []*Post, key SortKey, dir SortDirection) {
	if len(records) < 2 {
		return
	}
	collator := newCollator()
	desc := dir == SortDesc
	sort.SliceStable(records, func(i, j int) bool {
		cmp := comparePosts(collator, records[i], records[j], key)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func comparePosts(collator *collate.Collator, left, right *Post, key SortKey) int {
	switch key {
	case SortByTitle:
		return collator.CompareString(left.Title, right.Title)
	case SortByPublishedAt:
		return strings.Compare(left.PublishedAt, right.PublishedAt)
	case SortByViews:
		return compareInts(left.Views, right.Views)
	case SortByComments:
		return compareInts(left.Comments, right.Comments)
	case SortByOrder:
		return compareInts(left.Order, right.Order)
	default:
		return compareInts(left.Order, right.Order)
	}
}

func compareInts(left, right int) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}
