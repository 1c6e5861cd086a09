// Package inline splits the text of one block into plain and link fragments.
//
// Only links survive as structure. Bold, italic, strikethrough and code markers are
// stripped to their inner text; the PDF path renders a block in a single style.
package inline

import (
	"regexp"
	"strings"
)

// Fragment is one inline piece; concatenating Content in order gives the
// rendered text of the block.
type Fragment interface {
	Content() string
}

// PlainText is unstyled text.
type PlainText struct {
	Text string
}

// Link is a hyperlink with its visible label.
type Link struct {
	Text string
	Href string
}

func (p PlainText) Content() string { return p.Text }
func (l Link) Content() string      { return l.Text }

// linkPattern matches [label](url) with an optional quoted title.
var linkPattern = regexp.MustCompile(`\[([^\[\]]+)\]\(\s*([^()\s]+)(?:\s+"[^"]*")?\s*\)`)

// Parse scans text left to right for non-overlapping links.
func Parse(text string) []Fragment {
	var out []Fragment
	plain := func(s string) {
		if s = StripMarkers(s); s != "" {
			out = append(out, PlainText{Text: s})
		}
	}

	pos := 0
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		plain(text[pos:m[0]])
		out = append(out, Link{
			Text: StripMarkers(text[m[2]:m[3]]),
			Href: text[m[4]:m[5]],
		})
		pos = m[1]
	}
	plain(text[pos:])
	return out
}

// Text concatenates fragment contents.
func Text(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Content())
	}
	return b.String()
}

var (
	codeSpan = regexp.MustCompile("`([^`]+)`")

	// Order matters: paired markers before single ones.
	emphasis = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
		{regexp.MustCompile(`~~(.+?)~~`), "$1"},
		{regexp.MustCompile(`(^|[^\p{L}\p{N}_])__([^_].*?)__($|[^\p{L}\p{N}_])`), "$1$2$3"},
		{regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`), "$1"},
		{regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^_\s](?:[^_]*[^_\s])?)_($|[^\p{L}\p{N}_])`), "$1$2$3"},
	}
)

// StripMarkers removes emphasis and code markers, keeping inner text. Code span
// contents are kept literally. Underscore emphasis needs word boundaries so
// snake_case identifiers survive.
func StripMarkers(s string) string {
	if !strings.ContainsAny(s, "*_~`") {
		return s
	}

	var b strings.Builder
	pos := 0
	for _, m := range codeSpan.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(stripEmphasis(s[pos:m[0]]))
		b.WriteString(s[m[2]:m[3]])
		pos = m[1]
	}
	b.WriteString(stripEmphasis(s[pos:]))
	return b.String()
}

// stripEmphasis applies the emphasis rules until nothing changes. Boundary
// groups consume a neighbor character, so adjacent spans need another pass.
func stripEmphasis(s string) string {
	for i := 0; i < 8; i++ {
		prev := s
		for _, e := range emphasis {
			s = e.re.ReplaceAllString(s, e.repl)
		}
		if s == prev {
			break
		}
	}
	return s
}
