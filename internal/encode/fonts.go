package encode

import (
	"math"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/alnah/go-mdpdf/internal/theme"
)

// Core PDF font families.
const (
	fontSans  = "Helvetica"
	fontSerif = "Times"
	fontMono  = "Courier"
)

// tabWidth is the number of spaces a tab expands to in code blocks.
const tabWidth = 4

var familyAliases = map[string]string{
	"helvetica":       fontSans,
	"helvetica neue":  fontSans,
	"arial":           fontSans,
	"inter":           fontSans,
	"system-ui":       fontSans,
	"segoe ui":        fontSans,
	"roboto":          fontSans,
	"sans-serif":      fontSans,
	"times":           fontSerif,
	"times new roman": fontSerif,
	"georgia":         fontSerif,
	"cambria":         fontSerif,
	"serif":           fontSerif,
	"courier":         fontMono,
	"courier new":     fontMono,
	"consolas":        fontMono,
	"menlo":           fontMono,
	"monaco":          fontMono,
	"sfmono-regular":  fontMono,
	"monospace":       fontMono,
}

// coreFont maps a CSS font stack to the first core font it names.
func coreFont(stack string) string {
	for _, name := range strings.Split(stack, ",") {
		key := strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
		if f, ok := familyAliases[key]; ok {
			return f
		}
	}
	return fontSans
}

func fontStyle(st theme.Style) string {
	var s string
	if st.Bold {
		s += "B"
	}
	if st.Italic {
		s += "I"
	}
	if st.Underline {
		s += "U"
	}
	return s
}

// columns is how many monospace characters fit in width.
func columns(width, charWidth float64) int {
	if charWidth <= 0 {
		return 80
	}
	n := int(math.Floor(width / charWidth))
	if n < 1 {
		n = 1
	}
	return n
}

// wrapCode wraps code lines to at most cols characters. Breaks prefer
// whitespace; tokens longer than a row are cut hard. Leading indentation
// is kept on the first row of each source line.
func wrapCode(lines []string, cols int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		if len([]rune(line)) <= cols {
			out = append(out, line)
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		if len(indent) >= cols {
			indent = ""
		}
		wrapped := wordwrap.WrapString(trimmed, uint(cols-len(indent)))
		for i, row := range strings.Split(wrapped, "\n") {
			if i == 0 {
				row = indent + row
			}
			out = append(out, hardBreak(row, cols)...)
		}
	}
	return out
}

func hardBreak(s string, cols int) []string {
	r := []rune(s)
	if len(r) <= cols {
		return []string{s}
	}
	var rows []string
	for len(r) > cols {
		rows = append(rows, string(r[:cols]))
		r = r[cols:]
	}
	return append(rows, string(r))
}
