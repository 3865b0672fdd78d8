// Package membership implements set semantics over identifier lists
// (endorsements, supports, members). Every function returns a new slice.
package membership

import "slices"

// Contains reports whether id is in list.
func Contains(list []string, id string) bool {
	return slices.Contains(list, id)
}

// Add appends id unless it is already present.
func Add(list []string, id string) []string {
	out := Dedupe(list)
	if id == "" || slices.Contains(out, id) {
		return out
	}
	return append(out, id)
}

// Remove drops every occurrence of id.
func Remove(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle removes id when present and appends it otherwise. It also reports
// whether id is a member afterwards.
func Toggle(list []string, id string) ([]string, bool) {
	if Contains(list, id) {
		return Remove(list, id), false
	}
	return Add(list, id), true
}

// Dedupe returns list with repeated identifiers removed, first occurrence kept.
// The result is never nil.
func Dedupe(list []string) []string {
	out := make([]string, 0, len(list)+1)
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
