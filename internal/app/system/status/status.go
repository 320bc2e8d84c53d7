// Package status defines account lifecycle states shared by users and
// organizations.
package status

const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a known lifecycle status.
func IsValid(s string) bool {
	return s == Active || s == Disabled
}
