// Package tenant derives the per-tenant storage namespace.
package tenant

import "strings"

// RootPath builds the tenant namespace from business name and email by
// stripping every non-alphanumeric rune from both and concatenating them.
// It is pure and stable for a given pair, so callers recompute it instead of
// storing it. Two pairs differing only in stripped characters collapse to
// the same path; registry queries additionally filter by owner id so such a
// collision cannot leak data across owners.
func RootPath(businessName, email string) string {
	return sanitize(businessName) + sanitize(email)
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
