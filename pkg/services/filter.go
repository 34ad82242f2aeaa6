package services

import (
	"sort"
	"strings"

	"coffee-house/pkg/models"
)

// IsAll reports whether a category or tag selection means "no restriction".
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, models.All)
}

// MatchesCategory is the category predicate.
func MatchesCategory(item models.Filterable, category string) bool {
	return IsAll(category) || item.FilterCategory() == category
}

// MatchesTag is the tag predicate.
func MatchesTag(item models.Filterable, tag string) bool {
	if IsAll(tag) {
		return true
	}
	for _, t := range item.FilterTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesQuery is the free-text predicate: a case-insensitive substring test
// against the item's search fields.
func MatchesQuery(item models.Filterable, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Matches combines the three predicates with AND.
func Matches(item models.Filterable, state models.FilterState) bool {
	return MatchesCategory(item, state.Category) &&
		MatchesTag(item, state.Tag) &&
		MatchesQuery(item, state.Query)
}

// Filter returns the items that satisfy state, in source order. The result
// never shares a backing array with items.
func Filter[T models.Filterable](items []T, state models.FilterState) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, state) {
			out = append(out, item)
		}
	}
	return out
}

// CategoryOptions lists the distinct categories of items, sorted, with All first.
func CategoryOptions[T models.Filterable](items []T) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if c := item.FilterCategory(); c != "" {
			seen[c] = struct{}{}
		}
	}
	return withAll(seen)
}

// TagOptions lists the distinct tags of items, sorted, with All first.
func TagOptions[T models.Filterable](items []T) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, t := range item.FilterTags() {
			if t != "" {
				seen[t] = struct{}{}
			}
		}
	}
	return withAll(seen)
}

func withAll(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{models.All}, values...)
}

// Apply filters items and bundles the view with its option lists.
func Apply[T models.Filterable](items []T, state models.FilterState) models.FilterResult[T] {
	return models.FilterResult[T]{
		Items:      Filter(items, state),
		Total:      len(items),
		Categories: CategoryOptions(items),
		Tags:       TagOptions(items),
		State:      state,
	}
}

type featurable interface {
	IsFeatured() bool
}

// Featured returns up to limit featured items in source order. A limit of
// zero or less means no limit.
func Featured[T featurable](items []T, limit int) []T {
	out := make([]T, 0)
	for _, item := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		if item.IsFeatured() {
			out = append(out, item)
		}
	}
	return out
}

// RelatedPosts returns up to limit posts from the same category as post,
// excluding post itself.
func RelatedPosts(posts []models.BlogPost, post models.BlogPost, limit int) []models.BlogPost {
	related := make([]models.BlogPost, 0, limit)
	for _, p := range posts {
		if len(related) == limit {
			break
		}
		if p.ID != post.ID && p.Category == post.Category {
			related = append(related, p)
		}
	}
	return related
}
