// Package slug canonicalizes company names into board tokens and generates
// the deterministic candidate-token variants the probe engine tests.
package slug

import "strings"

// corporateSuffixes are trailing name tokens dropped during slugification.
var corporateSuffixes = map[string]bool{
	"inc":  true,
	"llc":  true,
	"ltd":  true,
	"co":   true,
	"corp": true,
	"gmbh": true,
	"sa":   true,
}

// Make canonicalizes a company name: lowercase, strip trailing corporate
// suffixes (inc/llc/ltd/co/corp/gmbh/sa), drop characters outside
// [a-z0-9\s-], collapse whitespace and hyphen runs to a single hyphen, and
// trim leading/trailing hyphens. Make is idempotent: Make(Make(x)) == Make(x).
func Make(name string) string {
	words := Words(name)
	return strings.Join(words, "-")
}

// Words returns the slug word list for a company name, after lowercasing,
// character filtering and suffix stripping. Variant generation builds on the
// same word list so every variant agrees on what the name's words are.
func Words(name string) []string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '-':
			b.WriteByte(' ')
		default:
			// dropped
		}
	}

	words := strings.Fields(b.String())

	// Strip trailing corporate suffixes, keeping at least one word so a
	// degenerate name like "Co" still slugs to something.
	for len(words) > 1 && corporateSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}

	return words
}
