package seedexp

import (
	"strings"
	"unicode"

	"github.com/hirelens/hirelens/internal/domain/slug"
)

// stopWords are navigation and boilerplate tokens that directory extractors
// pick up alongside real company names. A name made entirely of these is
// noise.
var stopWords = map[string]bool{
	"about":     true,
	"all":       true,
	"apply":     true,
	"blog":      true,
	"careers":   true,
	"companies": true,
	"company":   true,
	"contact":   true,
	"cookie":    true,
	"faq":       true,
	"help":      true,
	"hiring":    true,
	"home":      true,
	"jobs":      true,
	"login":     true,
	"more":      true,
	"new":       true,
	"next":      true,
	"open":      true,
	"policy":    true,
	"positions": true,
	"privacy":   true,
	"remote":    true,
	"roles":     true,
	"search":    true,
	"see":       true,
	"sign":      true,
	"signup":    true,
	"terms":     true,
	"the":       true,
	"view":      true,
}

// sanitizeName strips markup remnants and collapses whitespace. Angle
// brackets and quotes never belong in a company name; they indicate the
// extractor caught markup.
func sanitizeName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case '<', '>', '"', '\'', '`':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// acceptName applies the expander's name filters: length within bounds, at
// least one letter, and not composed solely of stop words.
func acceptName(name string, minLen, maxLen int) bool {
	if len(name) < minLen || len(name) > maxLen {
		return false
	}

	hasLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}

	words := slug.Words(name)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !stopWords[w] {
			return true
		}
	}
	return false
}
