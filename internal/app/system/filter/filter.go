// Package filter holds the pure list predicates used by every page view.
//
// Nothing here mutates its input: each function returns a fresh slice, so a
// view can always be recomputed from the full fetched collection.
package filter

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Searchable is implemented by every entity that can be searched.
type Searchable interface {
	SearchText() []string
}

// Matches reports whether term occurs in any of fields, ignoring case and
// diacritics. A blank term matches everything.
func Matches(term string, fields ...string) bool {
	q := text.Fold(strings.TrimSpace(term))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(text.Fold(f), q) {
			return true
		}
	}
	return false
}

// Search keeps the items whose SearchText matches term.
func Search[T Searchable](items []T, term string) []T {
	return SearchBy(items, term, func(it T) []string { return it.SearchText() })
}

// SearchBy is Search with an explicit field selector.
func SearchBy[T any](items []T, term string, fields func(T) []string) []T {
	q := strings.TrimSpace(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q == "" || Matches(q, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}

// Where keeps the items satisfying keep.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Count returns how many items satisfy keep.
func Count[T any](items []T, keep func(T) bool) int {
	n := 0
	for _, it := range items {
		if keep(it) {
			n++
		}
	}
	return n
}

// GroupCount counts items per key. Every key in order is present in the
// result, with zero when no item carries it.
func GroupCount[T any, K comparable](items []T, key func(T) K, order []K) map[K]int {
	out := make(map[K]int, len(order))
	for _, k := range order {
		out[k] = 0
	}
	for _, it := range items {
		out[key(it)]++
	}
	return out
}
