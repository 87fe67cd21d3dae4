// Package utils provides shared utilities for text, geometry, and logging.
package utils

import "strings"

// Truncate returns s cut to maxLen characters, with "..." appended if truncated.
// Counts runes, so multi-byte titles are never split mid-character.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// TitleCase upper-cases the first letter of the trimmed input and lower-cases the rest.
func TitleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
