// Package validation holds the pure input validators used by the mutation
// pipeline. Every function is side-effect free and fails closed.
package validation

import "regexp"

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneIntlPattern = regexp.MustCompile(`^\+\d{10,15}$`)
	phoneDashPattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s is an accepted phone format: "+" followed by
// 10-15 digits, or NNN-NNN-NNNN. The field is optional, so empty is valid.
func Phone(s string) bool {
	if s == "" {
		return true
	}
	return phoneIntlPattern.MatchString(s) || phoneDashPattern.MatchString(s)
}

// Price reports whether p is a valid product price (strictly positive).
func Price(p float64) bool {
	return p > 0
}

// Stock reports whether n is a valid stock quantity (never negative).
func Stock(n int) bool {
	return n >= 0
}
