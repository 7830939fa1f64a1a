package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"comma and suffix", "Acme, Inc.", "acme"},
		{"llc suffix", "Acme LLC", "acme"},
		{"hyphenated suffix", "Acme-Corp", "acme"},
		{"gmbh suffix", "Siemens GmbH", "siemens"},
		{"multi word", "General Motors", "general-motors"},
		{"stacked suffixes", "Acme Co Inc", "acme"},
		{"digits kept", "7-Eleven", "7-eleven"},
		{"punctuation dropped", "O'Reilly Media", "oreilly-media"},
		{"whitespace collapsed", "  Big   Data  Ltd ", "big-data"},
		{"suffix only keeps one word", "Co", "co"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{"Acme, Inc.", "Stripe", "General Motors Corp", "Müller & Sons GmbH", "x-y-z"}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "slug(slug(%q))", in)
	}
}

func TestCandidates_ExactSlugFirst(t *testing.T) {
	got := Candidates("Acme Labs Inc")
	require.NotEmpty(t, got)
	assert.Equal(t, "acme-labs", got[0])
}

func TestCandidates_Variants(t *testing.T) {
	got := Candidates("Acme Labs")

	assert.Contains(t, got, "acme-labs")
	assert.Contains(t, got, "acme_labs")
	assert.Contains(t, got, "acmelabs")
	assert.Contains(t, got, "acme")
	assert.Contains(t, got, "al") // initials
}

func TestCandidates_NoDuplicatesNoEmpties(t *testing.T) {
	got := Candidates("Stripe")

	seen := make(map[string]bool)
	for _, token := range got {
		assert.GreaterOrEqual(t, len(token), 2, "token %q too short", token)
		assert.False(t, seen[token], "duplicate token %q", token)
		seen[token] = true
	}
	// Single-word names collapse most variants into one.
	assert.Equal(t, "stripe", got[0])
}

func TestCandidates_AmpersandAndArticle(t *testing.T) {
	withAnd := Candidates("Bolt & Nut")
	assert.Contains(t, withAnd, "bolt-and-nut")

	withThe := Candidates("The Boring Company")
	assert.Contains(t, withThe, "boring-company")
	assert.Contains(t, withThe, "boring")
}

func TestCandidates_Bounded(t *testing.T) {
	long := "Alpha Beta Gamma Delta Epsilon Zeta Eta Theta Iota Kappa Lambda"
	got := Candidates(long)
	assert.LessOrEqual(t, len(got), MaxCandidates)
}

func TestCandidates_EmptyName(t *testing.T) {
	assert.Nil(t, Candidates(""))
	assert.Nil(t, Candidates("!!!"))
}
