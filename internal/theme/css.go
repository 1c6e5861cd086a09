package theme

import (
	"fmt"
	"strings"
)

// cssSelectors maps each role to the HTML elements that carry it.
var cssSelectors = [roleCount]string{
	RolePage:            "body",
	RoleHeading1:        "h1",
	RoleHeading2:        "h2",
	RoleHeading3:        "h3",
	RoleHeading4:        "h4",
	RoleHeading5:        "h5",
	RoleHeading6:        "h6",
	RoleParagraph:       "p",
	RoleLink:            "a",
	RoleCode:            "code",
	RoleCodeBlock:       "pre",
	RoleBlockquote:      "blockquote",
	RoleList:            "ul, ol",
	RoleListItem:        "li",
	RoleTable:           "table",
	RoleTableCell:       "td",
	RoleTableCellHeader: "th",
	RoleHorizontalRule:  "hr",
	RoleImage:           "img",
}

// CSS renders the sheet as a print style sheet. Units are points so the
// browser output matches the native encoder's geometry.
func (s *StyleSheet) CSS() string {
	var buf strings.Builder
	for _, r := range Roles() {
		buf.WriteString(cssSelectors[r])
		buf.WriteString(" {\n")
		writeDeclarations(&buf, r, s.Style(r))
		buf.WriteString("}\n")
	}
	// Code inside a block inherits the panel instead of drawing its own.
	buf.WriteString("pre code {\n  background: transparent;\n  padding: 0;\n  font-size: inherit;\n}\n")
	buf.WriteString("img {\n  display: block;\n  max-width: 100%;\n  margin-left: auto;\n  margin-right: auto;\n}\n")
	return buf.String()
}

func writeDeclarations(buf *strings.Builder, r Role, st Style) {
	decl := func(prop, format string, args ...any) {
		fmt.Fprintf(buf, "  %s: %s;\n", prop, fmt.Sprintf(format, args...))
	}

	if st.FontFamily != "" {
		decl("font-family", "%s", st.FontFamily)
	}
	if st.FontSize > 0 {
		decl("font-size", "%.1fpt", st.FontSize)
	}
	if st.LineHeight > 0 {
		decl("line-height", "%.2f", st.LineHeight)
	}
	if st.Bold {
		decl("font-weight", "bold")
	} else if r != RolePage {
		decl("font-weight", "normal")
	}
	if st.Italic {
		decl("font-style", "italic")
	}
	if st.Underline {
		decl("text-decoration", "underline")
	} else if r == RoleLink {
		decl("text-decoration", "none")
	}
	decl("color", "%s", st.Color.Hex())
	if st.Background != nil {
		decl("background", "%s", st.Background.Hex())
	}

	if r != RolePage {
		decl("margin-top", "%.1fpt", st.MarginTop)
		decl("margin-bottom", "%.1fpt", st.MarginBottom)
	}
	if st.Padding > 0 {
		decl("padding", "%.1fpt", st.Padding)
	}
	// Lists and quotes indent their content inside the box, like the PDF.
	if st.Indent > 0 {
		if r == RoleList || r == RoleBlockquote {
			decl("padding-left", "%.1fpt", st.Indent)
		} else {
			decl("margin-left", "%.1fpt", st.Indent)
		}
	}
	if st.BorderBottom.Width > 0 {
		decl("border-bottom", "%.1fpt solid %s", st.BorderBottom.Width, st.BorderBottom.Color.Hex())
	}
	if st.BorderLeft.Width > 0 {
		decl("border-left", "%.1fpt solid %s", st.BorderLeft.Width, st.BorderLeft.Color.Hex())
	}
	if r == RoleHorizontalRule {
		decl("border", "none")
		w := st.BorderBottom.Width
		if w <= 0 {
			w = 1
		}
		decl("border-top", "%.1fpt solid %s", w, st.BorderBottom.Color.Hex())
	}
	if r == RoleCodeBlock {
		decl("white-space", "pre-wrap")
		decl("word-wrap", "break-word")
	}
}
