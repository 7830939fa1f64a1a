package slug

import "strings"

const (
	// MaxCandidates caps the variant list per company name.
	MaxCandidates = 50
	// minTokenLen drops degenerate variants like single letters.
	minTokenLen = 2
)

var vowels = map[byte]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true}

// Candidates generates the deterministic candidate tokens for a company
// name, ordered by heuristic priority with the exact slug first. Duplicates
// and empty or single-character variants are dropped; at most MaxCandidates
// are returned.
func Candidates(name string) []string {
	words := Words(name)
	if len(words) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(token string) {
		if len(token) < minTokenLen || seen[token] {
			return
		}
		if len(out) >= MaxCandidates {
			return
		}
		seen[token] = true
		out = append(out, token)
	}

	joined := strings.Join(words, "")

	add(strings.Join(words, "-")) // exact slug
	add(strings.Join(words, "_"))
	add(joined)
	add(words[0]) // first word
	if len(words) >= 2 {
		add(words[0] + "-" + words[1])
		add(words[0] + "_" + words[1])
		add(words[0] + words[1])
		add(initials(words))
	}
	add(stripVowels(joined))

	// Ampersand names often register under an "and" token.
	if strings.Contains(name, "&") {
		withAnd := Words(strings.ReplaceAll(name, "&", " and "))
		add(strings.Join(withAnd, "-"))
		add(strings.Join(withAnd, ""))
	}

	// Leading articles are another common registration difference.
	if words[0] == "the" && len(words) > 1 {
		rest := words[1:]
		add(strings.Join(rest, "-"))
		add(strings.Join(rest, ""))
		add(rest[0])
	}

	return out
}

// initials joins the first letter of every word.
func initials(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteByte(w[0])
	}
	return b.String()
}

// stripVowels removes vowels but always keeps the first character, so the
// variant stays anchored to the name.
func stripVowels(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.WriteByte(s[0])
	for i := 1; i < len(s); i++ {
		if !vowels[s[i]] {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
