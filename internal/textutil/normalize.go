// Package textutil provides text canonicalization helpers shared by the
// inference pipeline and the catalog tooling.
package textutil

import (
	"fmt"
	"strings"
)

// Normalize canonicalizes a value for comparison and output. Strings are
// trimmed and lowercased. Non-string values are rendered with their default
// formatting, untouched, so already-resolved labels pass through unchanged.
func Normalize(v any) string {
	if s, ok := v.(string); ok {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return fmt.Sprintf("%v", v)
}
