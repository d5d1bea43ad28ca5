// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical way to normalize emails before a directory lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Origin trims a configured CORS origin and drops a trailing slash, which
// browsers never send in the Origin header.
func Origin(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), "/")
}

// List splits a comma-separated config value, trimming each entry and
// dropping empties.
func List(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
