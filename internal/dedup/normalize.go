package dedup

import "strings"

// Normalize returns the comparable form of a raw field value.
// Surrounding whitespace is removed, so missing, empty and whitespace-only
// values all normalize to "". Normalize is idempotent.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// IsEmpty reports whether raw normalizes to the empty string.
func IsEmpty(raw string) bool {
	return Normalize(raw) == ""
}
