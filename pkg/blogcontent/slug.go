package blogcontent

import (
	"regexp"
	"strings"
)

var (
	// slugInvalid matches anything that isn't a lowercase letter, digit,
	// space or hyphen.
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	// slugHyphens collapses consecutive hyphens into one.
	slugHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" -> "hello-world-2026"
func Slugify(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = slugInvalid.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = slugHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
