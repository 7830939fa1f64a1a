package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLToText strips markup from an HTML fragment and returns its visible
// text with whitespace collapsed. Script and style contents are skipped.
// Plain text input passes through unchanged apart from the collapsing.
func HTMLToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsRune(fragment, '<') {
		return CollapseSpace(fragment)
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return CollapseSpace(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isSkippedTag(name string) bool {
	return name == "script" || name == "style"
}

// CollapseSpace trims a string and collapses internal whitespace runs to a
// single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
