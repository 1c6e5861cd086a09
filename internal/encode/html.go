package encode

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/layout"
)

// renderBody writes the page tree as HTML elements styled by the theme CSS.
func renderBody(tree *layout.PageTree) string {
	var b strings.Builder
	for _, el := range tree.Elements {
		switch el := el.(type) {
		case layout.HeadingElement:
			tag := "h" + strconv.Itoa(clampLevel(el.Level))
			b.WriteString("<" + tag + ">")
			writeFragments(&b, el.Fragments)
			b.WriteString("</" + tag + ">\n")
		case layout.ParagraphElement:
			b.WriteString("<p>")
			writeFragments(&b, el.Fragments)
			b.WriteString("</p>\n")
		case layout.ListElement:
			tag := "ul"
			if el.Ordered {
				tag = "ol"
			}
			b.WriteString("<" + tag + ">\n")
			for _, item := range el.Items {
				b.WriteString("<li>")
				writeFragments(&b, item)
				b.WriteString("</li>\n")
			}
			b.WriteString("</" + tag + ">\n")
		case layout.BlockquoteElement:
			b.WriteString("<blockquote>")
			writeFragments(&b, el.Fragments)
			b.WriteString("</blockquote>\n")
		case layout.CodeBlockElement:
			b.WriteString("<pre><code")
			if el.Language != "" {
				b.WriteString(` class="language-` + html.EscapeString(el.Language) + `"`)
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(strings.Join(el.Lines, "\n")))
			b.WriteString("</code></pre>\n")
		case layout.RuleElement:
			b.WriteString("<hr>\n")
		case layout.ImageElement:
			b.WriteString(`<img alt="diagram" src="` + html.EscapeString(el.URI) + `"`)
			b.WriteString(` style="width:` + strconv.FormatFloat(el.Width, 'f', 1, 64) + `pt;height:` +
				strconv.FormatFloat(el.Height, 'f', 1, 64) + `pt">` + "\n")
		}
	}
	return b.String()
}

func writeFragments(b *strings.Builder, frags []inline.Fragment) {
	for _, f := range frags {
		link, ok := f.(inline.Link)
		if !ok {
			b.WriteString(html.EscapeString(f.Content()))
			continue
		}
		href, safe := safeHref(link.Href)
		if !safe {
			b.WriteString(html.EscapeString(link.Text))
			continue
		}
		b.WriteString(`<a href="` + html.EscapeString(href) + `">`)
		b.WriteString(html.EscapeString(link.Text))
		b.WriteString("</a>")
	}
}

// safeHref rejects script-capable URL schemes.
func safeHref(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "ftp":
		return u.String(), true
	}
	return "", false
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
