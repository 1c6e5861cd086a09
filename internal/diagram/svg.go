package diagram

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
)

// Sizing constants, in CSS pixels.
const (
	SupersampleScale = 2.0
	MinDimension     = 50.0
	FallbackWidth    = 800.0
	FallbackHeight   = 600.0
)

const svgNamespace = "http://www.w3.org/2000/svg"

// ErrNoSVGRoot is returned when markup has no <svg> element.
var ErrNoSVGRoot = errors.New("no svg root element")

// SVG is vector markup normalized for rasterization.
type SVG struct {
	Markup  string // root element carries explicit width, height and viewBox
	DataURI string // base64 data URI of Markup
	Width   float64
	Height  float64
}

var (
	attrPattern  = regexp.MustCompile(`([^\s=/>]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	lengthSuffix = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*(px)?$`)
)

type attr struct {
	name, value string
}

// Prepare measures markup and rewrites its root element with explicit
// dimensions. Missing or tiny dimensions are replaced by the fallback size.
func Prepare(markup string) (SVG, error) {
	start, end, err := rootTag(markup)
	if err != nil {
		return SVG{}, err
	}
	tag := markup[start:end]
	attrs := parseAttrs(tag)

	w, h := intrinsicSize(tag, attrs)
	viewBox := lookup(attrs, "viewBox")
	if w < MinDimension || h < MinDimension {
		w, h = FallbackWidth, FallbackHeight
	}
	if _, _, ok := parseViewBox(viewBox); !ok {
		viewBox = fmt.Sprintf("0 0 %s %s", formatNum(w), formatNum(h))
	}

	kept := make([]attr, 0, len(attrs)+4)
	hasNS := false
	for _, a := range attrs {
		switch a.name {
		case "width", "height", "viewBox":
			continue
		case "xmlns":
			hasNS = true
		}
		kept = append(kept, a)
	}
	if !hasNS {
		kept = append(kept, attr{"xmlns", svgNamespace})
	}
	kept = append(kept,
		attr{"width", formatNum(w)},
		attr{"height", formatNum(h)},
		attr{"viewBox", viewBox},
	)

	var b strings.Builder
	b.WriteString("<svg")
	for _, a := range kept {
		fmt.Fprintf(&b, " %s=\"%s\"", a.name, strings.ReplaceAll(a.value, `"`, "&quot;"))
	}
	if strings.HasSuffix(tag, "/>") {
		b.WriteString("/>")
	} else {
		b.WriteString(">")
	}

	out := markup[:start] + b.String() + markup[end:]
	return SVG{
		Markup:  out,
		DataURI: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(out)),
		Width:   w,
		Height:  h,
	}, nil
}

// rootTag returns the byte span of the first <svg ...> start tag.
func rootTag(markup string) (int, int, error) {
	start := -1
	for i := 0; i+4 <= len(markup); i++ {
		if markup[i] != '<' || !strings.EqualFold(markup[i+1:i+4], "svg") {
			continue
		}
		if i+4 == len(markup) || strings.ContainsRune(" \t\r\n>/", rune(markup[i+4])) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, ErrNoSVGRoot
	}

	var quote byte
	for i := start; i < len(markup); i++ {
		c := markup[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return start, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: unterminated tag", ErrNoSVGRoot)
}

func parseAttrs(tag string) []attr {
	// Skip "<svg" so the element name is not mistaken for an attribute.
	body := tag[4:]
	var attrs []attr
	for _, m := range attrPattern.FindAllStringSubmatch(body, -1) {
		v := m[2]
		if v == "" {
			v = m[3]
		}
		attrs = append(attrs, attr{name: m[1], value: v})
	}
	return attrs
}

func lookup(attrs []attr, name string) string {
	for _, a := range attrs {
		if a.name == name {
			return a.value
		}
	}
	return ""
}

// intrinsicSize prefers absolute width/height attributes, then the viewBox.
func intrinsicSize(tag string, attrs []attr) (float64, float64) {
	w := parseLength(lookup(attrs, "width"))
	h := parseLength(lookup(attrs, "height"))
	if w > 0 && h > 0 {
		return w, h
	}
	vw, vh, ok := measureRoot(tag)
	if !ok {
		vw, vh, ok = parseViewBox(lookup(attrs, "viewBox"))
	}
	if ok {
		if w <= 0 {
			w = vw
		}
		if h <= 0 {
			h = vh
		}
	}
	return w, h
}

// measureRoot reads the root element's view box with oksvg, which falls back to
// width and height when viewBox is absent. Only the start tag is parsed; roots
// oksvg rejects (percent sizes, unsupported style values) report !ok.
func measureRoot(tag string) (float64, float64, bool) {
	doc := tag
	if !strings.HasSuffix(tag, "/>") {
		doc += "</svg>"
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return 0, 0, false
	}
	return icon.ViewBox.W, icon.ViewBox.H, true
}

// parseLength accepts unitless and px values; percentages and other units yield 0.
func parseLength(s string) float64 {
	m := lengthSuffix.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

func parseViewBox(s string) (float64, float64, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, err1 := strconv.ParseFloat(fields[2], 64)
	h, err2 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
