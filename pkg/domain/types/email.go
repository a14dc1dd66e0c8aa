package types

import "strings"

// Email represents a mail address as reported by the directory or Grafana
type Email string

// String returns the string representation
func (e Email) String() string {
	return string(e)
}

// Normalize returns the address trimmed and lowercased, used as a lookup key
func (e Email) Normalize() string {
	return strings.ToLower(strings.TrimSpace(string(e)))
}

// Equal compares two addresses case-insensitively
func (e Email) Equal(other Email) bool {
	return e.Normalize() == other.Normalize()
}
