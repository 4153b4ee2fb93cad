package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a category or product name.
//
//   - "Artificial Grass" → "artificial-grass"
//   - "Carpets & Rugs" → "carpets-rugs"
//   - "Décor  Items!" → "decor-items"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripMarks(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripMarks removes combining accents after canonical decomposition.
func stripMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
