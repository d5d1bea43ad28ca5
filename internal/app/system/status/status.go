// Package status provides canonical account status values found in
// directory records.
//
// Directories are not required to carry a status column. A record without
// one is treated as active.
package status

import "strings"

// Account status values.
const (
	Active   = "active"
	Disabled = "disabled"
)

// Key is the record field holding the status.
const Key = "status"

// Default returns the status assumed for records without one.
func Default() string {
	return Active
}

// Of returns the normalized status of a record field value. Missing,
// empty, or non-string values yield Default().
func Of(v any) string {
	s, _ := v.(string)
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default()
	}
	return s
}

// CanLogin reports whether an account with status s may sign in. Only an
// explicit Disabled blocks it; unknown values are left to the directory.
func CanLogin(s string) bool {
	return s != Disabled
}
