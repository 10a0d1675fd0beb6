// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity fields before they
// are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Username trims a username, preserving case. Case-insensitive uniqueness is
// handled by the folded username_ci key, not here.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// SportType lowercases and trims a sport-type string so path and query
// parameters match stored values.
func SportType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
