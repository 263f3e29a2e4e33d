package core

import "strings"

// NormalizeTag canonicalizes a project or context label for comparison:
// leading and trailing whitespace is trimmed, interior runs of whitespace
// collapse to a single space, and the result is lowercased. Idempotent.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.Join(strings.Fields(tag), " "))
}
