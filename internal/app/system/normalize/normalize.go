// Package normalize trims and canonicalises user-entered form values.
package normalize

import (
	"strings"

	"github.com/dalemusser/raizes/internal/app/system/membership"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding space and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Key lowercases and trims an enumeration value such as a tab or a type.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// List splits a comma-separated field (themes, recipients, leaders) into
// trimmed, non-empty, unique entries in input order.
func List(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = Name(p); p != "" {
			out = append(out, p)
		}
	}
	return membership.Dedupe(out)
}

// Lines is List for newline-separated input.
func Lines(s string) []string {
	return List(strings.NewReplacer("\r\n", ",", "\n", ",").Replace(s))
}
