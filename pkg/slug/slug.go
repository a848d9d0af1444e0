package slug

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegexp = regexp.MustCompile(`[\s\p{Zs}]+`)
	invalidRegexp    = regexp.MustCompile(`[^a-z0-9-]`)
)

// Generate creates a URL-friendly slug from the given name. The name is
// lower-cased, every run of whitespace becomes a single hyphen and every
// character outside [a-z0-9-] is dropped. Hyphens left behind by dropped
// characters are kept as-is, so existing slugs stored by the backend keep
// resolving.
//
// Examples:
//   - "Premium Almonds" → "premium-almonds"
//   - "Nuts & Dry Fruits" → "nuts--dry-fruits"
//   - "Kaju (W240)" → "kaju-w240"
func Generate(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRegexp.ReplaceAllString(s, "-")
	return invalidRegexp.ReplaceAllString(s, "")
}

// IsValid reports whether s is already in slug form.
func IsValid(s string) bool {
	return s != "" && !invalidRegexp.MatchString(s)
}
