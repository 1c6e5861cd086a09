package theme

import (
	"fmt"
	"strings"
	"time"
)

// Theme is a user-authored style definition. Built-in presets are expressed with the
// same model plus preset-specific decoration.
type Theme struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Colors     Colors     `yaml:"colors"`
	Typography Typography `yaml:"typography"`
	Spacing    Spacing    `yaml:"spacing"`
	CreatedAt  time.Time  `yaml:"createdAt"`
	UpdatedAt  time.Time  `yaml:"updatedAt"`
}

// Colors holds hex (#rgb, #rrggbb) or named colors.
// Headings 4-6 have no entry and use Text.
type Colors struct {
	Background       string `yaml:"background"`
	Text             string `yaml:"text"`
	Heading1         string `yaml:"heading1"`
	Heading2         string `yaml:"heading2"`
	Heading3         string `yaml:"heading3"`
	Link             string `yaml:"link"`
	Code             string `yaml:"code"`
	CodeBackground   string `yaml:"codeBackground"`
	Blockquote       string `yaml:"blockquote"`
	BlockquoteBorder string `yaml:"blockquoteBorder"`
	TableHeader      string `yaml:"tableHeader"`
	TableBorder      string `yaml:"tableBorder"`
	Rule             string `yaml:"rule"`
}

// Typography sizes are in points; LineHeight is a multiplier.
type Typography struct {
	FontFamily        string  `yaml:"fontFamily"`
	FontSize          float64 `yaml:"fontSize"`
	HeadingFontFamily string  `yaml:"headingFontFamily"`
	Heading1Size      float64 `yaml:"heading1Size"`
	Heading2Size      float64 `yaml:"heading2Size"`
	Heading3Size      float64 `yaml:"heading3Size"`
	Heading4Size      float64 `yaml:"heading4Size"`
	Heading5Size      float64 `yaml:"heading5Size"`
	Heading6Size      float64 `yaml:"heading6Size"`
	LineHeight        float64 `yaml:"lineHeight"`
	CodeFontFamily    string  `yaml:"codeFontFamily"`
	CodeFontSize      float64 `yaml:"codeFontSize"`
}

// HeadingSpacing is the vertical space around one heading level, in points.
// A nil side inherits from the default preset; zero is kept.
type HeadingSpacing struct {
	Top    *float64 `yaml:"top"`
	Bottom *float64 `yaml:"bottom"`
}

// Spacing values are in points. Headings is indexed by level-1.
// Nil fields inherit from the default preset, so an explicit 0 removes the space.
type Spacing struct {
	Headings         []HeadingSpacing `yaml:"headings"`
	Paragraph        *float64         `yaml:"paragraph"`
	List             *float64         `yaml:"list"`
	BlockquoteIndent *float64         `yaml:"blockquoteIndent"`
	CodeBlockPadding *float64         `yaml:"codeBlockPadding"`
}

// Points returns a pointer to v, for spacing literals.
func Points(v float64) *float64 { return &v }

// pt dereferences an optional spacing value; nil reads as zero.
func pt(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// heading returns spacing for level 1..6; missing entries are unset.
func (s Spacing) heading(level int) HeadingSpacing {
	if level < 1 || level > len(s.Headings) {
		return HeadingSpacing{}
	}
	return s.Headings[level-1]
}

// Clone copies the heading slice and every set value so the copy shares no memory with s.
func (s Spacing) Clone() Spacing {
	cp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return Points(*v)
	}
	out := Spacing{
		Paragraph:        cp(s.Paragraph),
		List:             cp(s.List),
		BlockquoteIndent: cp(s.BlockquoteIndent),
		CodeBlockPadding: cp(s.CodeBlockPadding),
	}
	if s.Headings != nil {
		out.Headings = make([]HeadingSpacing, len(s.Headings))
		for i, h := range s.Headings {
			out.Headings[i] = HeadingSpacing{Top: cp(h.Top), Bottom: cp(h.Bottom)}
		}
	}
	return out
}

// headingSize returns the configured size for level 1..6.
func (t Typography) headingSize(level int) float64 {
	switch level {
	case 1:
		return t.Heading1Size
	case 2:
		return t.Heading2Size
	case 3:
		return t.Heading3Size
	case 4:
		return t.Heading4Size
	case 5:
		return t.Heading5Size
	default:
		return t.Heading6Size
	}
}

// headingColor returns the configured color for level 1..6.
// Levels 4-6 are not covered by the color model and use the text color.
func (c Colors) headingColor(level int) string {
	switch level {
	case 1:
		return c.Heading1
	case 2:
		return c.Heading2
	case 3:
		return c.Heading3
	default:
		return c.Text
	}
}

// Validate checks that colors parse and numeric fields are non-negative.
// Empty colors and zero sizes are allowed: they inherit from the default preset.
func (t *Theme) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyThemeName
	}

	colors := []struct {
		field, value string
	}{
		{"colors.background", t.Colors.Background},
		{"colors.text", t.Colors.Text},
		{"colors.heading1", t.Colors.Heading1},
		{"colors.heading2", t.Colors.Heading2},
		{"colors.heading3", t.Colors.Heading3},
		{"colors.link", t.Colors.Link},
		{"colors.code", t.Colors.Code},
		{"colors.codeBackground", t.Colors.CodeBackground},
		{"colors.blockquote", t.Colors.Blockquote},
		{"colors.blockquoteBorder", t.Colors.BlockquoteBorder},
		{"colors.tableHeader", t.Colors.TableHeader},
		{"colors.tableBorder", t.Colors.TableBorder},
		{"colors.rule", t.Colors.Rule},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if _, err := ParseColor(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.field, err)
		}
	}

	type numField struct {
		field string
		value float64
	}
	opt := func(field string, v *float64) numField {
		return numField{field, pt(v)}
	}
	numbers := []numField{
		{"typography.fontSize", t.Typography.FontSize},
		{"typography.heading1Size", t.Typography.Heading1Size},
		{"typography.heading2Size", t.Typography.Heading2Size},
		{"typography.heading3Size", t.Typography.Heading3Size},
		{"typography.heading4Size", t.Typography.Heading4Size},
		{"typography.heading5Size", t.Typography.Heading5Size},
		{"typography.heading6Size", t.Typography.Heading6Size},
		{"typography.lineHeight", t.Typography.LineHeight},
		{"typography.codeFontSize", t.Typography.CodeFontSize},
		opt("spacing.paragraph", t.Spacing.Paragraph),
		opt("spacing.list", t.Spacing.List),
		opt("spacing.blockquoteIndent", t.Spacing.BlockquoteIndent),
		opt("spacing.codeBlockPadding", t.Spacing.CodeBlockPadding),
	}
	for i, h := range t.Spacing.Headings {
		numbers = append(numbers,
			opt(fmt.Sprintf("spacing.headings[%d].top", i), h.Top),
			opt(fmt.Sprintf("spacing.headings[%d].bottom", i), h.Bottom),
		)
	}
	for _, n := range numbers {
		if n.value < 0 {
			return fmt.Errorf("%s: %w: %.2f", n.field, ErrNegativeValue, n.value)
		}
	}
	return nil
}

// withDefaults fills empty fields from base. Sizes and line height inherit when
// not positive since they cannot render at zero; spacing inherits only when unset.
// The heading spacing slice is completed entry by entry so a theme may override
// only the first levels.
func (t Theme) withDefaults(base Theme) Theme {
	str := func(v *string, d string) {
		if strings.TrimSpace(*v) == "" {
			*v = d
		}
	}
	num := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	space := func(v **float64, d *float64) {
		if *v == nil {
			*v = Points(pt(d))
		}
	}

	c, bc := &t.Colors, base.Colors
	str(&c.Background, bc.Background)
	str(&c.Text, bc.Text)
	str(&c.Heading1, bc.Heading1)
	str(&c.Heading2, bc.Heading2)
	str(&c.Heading3, bc.Heading3)
	str(&c.Link, bc.Link)
	str(&c.Code, bc.Code)
	str(&c.CodeBackground, bc.CodeBackground)
	str(&c.Blockquote, bc.Blockquote)
	str(&c.BlockquoteBorder, bc.BlockquoteBorder)
	str(&c.TableHeader, bc.TableHeader)
	str(&c.TableBorder, bc.TableBorder)
	str(&c.Rule, bc.Rule)

	ty, bt := &t.Typography, base.Typography
	str(&ty.FontFamily, bt.FontFamily)
	num(&ty.FontSize, bt.FontSize)
	str(&ty.HeadingFontFamily, bt.HeadingFontFamily)
	num(&ty.Heading1Size, bt.Heading1Size)
	num(&ty.Heading2Size, bt.Heading2Size)
	num(&ty.Heading3Size, bt.Heading3Size)
	num(&ty.Heading4Size, bt.Heading4Size)
	num(&ty.Heading5Size, bt.Heading5Size)
	num(&ty.Heading6Size, bt.Heading6Size)
	num(&ty.LineHeight, bt.LineHeight)
	str(&ty.CodeFontFamily, bt.CodeFontFamily)
	num(&ty.CodeFontSize, bt.CodeFontSize)

	t.Spacing = t.Spacing.Clone()
	sp, bs := &t.Spacing, base.Spacing
	headings := make([]HeadingSpacing, 6)
	for level := 1; level <= 6; level++ {
		h := sp.heading(level)
		d := bs.heading(level)
		space(&h.Top, d.Top)
		space(&h.Bottom, d.Bottom)
		headings[level-1] = h
	}
	sp.Headings = headings
	space(&sp.Paragraph, bs.Paragraph)
	space(&sp.List, bs.List)
	space(&sp.BlockquoteIndent, bs.BlockquoteIndent)
	space(&sp.CodeBlockPadding, bs.CodeBlockPadding)

	return t
}

// colorOr parses s, falling back to def for values that slipped past Validate.
func colorOr(s string, def RGB) RGB {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

var (
	black = RGB{}
	white = RGB{R: 0xff, G: 0xff, B: 0xff}
)

// StyleSheet maps every theme field onto its role attribute.
// The receiver must be complete (see withDefaults).
func (t Theme) StyleSheet() StyleSheet {
	c, ty, sp := t.Colors, t.Typography, t.Spacing
	paragraphGap := pt(sp.Paragraph)
	text := colorOr(c.Text, black)
	bg := colorOr(c.Background, white)
	codeBg := colorOr(c.CodeBackground, white)
	tableHeader := colorOr(c.TableHeader, white)
	tableBorder := colorOr(c.TableBorder, text)

	body := Style{
		FontFamily: ty.FontFamily,
		FontSize:   ty.FontSize,
		LineHeight: ty.LineHeight,
		Color:      text,
	}

	heading := func(level int) Style {
		h := sp.heading(level)
		return Style{
			FontFamily:   ty.HeadingFontFamily,
			FontSize:     ty.headingSize(level),
			Bold:         true,
			LineHeight:   1.25,
			Color:        colorOr(c.headingColor(level), text),
			MarginTop:    pt(h.Top),
			MarginBottom: pt(h.Bottom),
		}
	}

	paragraph := body
	paragraph.MarginBottom = paragraphGap

	link := body
	link.Color = colorOr(c.Link, text)
	link.Underline = true

	code := Style{
		FontFamily: ty.CodeFontFamily,
		FontSize:   ty.CodeFontSize,
		LineHeight: ty.LineHeight,
		Color:      colorOr(c.Code, text),
		Background: &codeBg,
	}

	codeBlock := code
	codeBlock.LineHeight = 1.4
	codeBlock.Padding = pt(sp.CodeBlockPadding)
	codeBlock.MarginBottom = paragraphGap

	blockquote := body
	blockquote.Italic = true
	blockquote.Color = colorOr(c.Blockquote, text)
	blockquote.Indent = pt(sp.BlockquoteIndent)
	blockquote.MarginBottom = paragraphGap
	blockquote.BorderLeft = Border{Width: 3, Color: colorOr(c.BlockquoteBorder, text)}

	list := body
	list.MarginBottom = pt(sp.List)
	list.Indent = ty.FontSize * 1.5

	listItem := body
	listItem.MarginBottom = ty.FontSize * 0.25

	table := body
	table.MarginBottom = paragraphGap
	table.BorderBottom = Border{Width: 0.5, Color: tableBorder}

	cell := body
	cell.Padding = ty.FontSize * 0.4
	cell.BorderBottom = Border{Width: 0.5, Color: tableBorder}

	cellHeader := cell
	cellHeader.Bold = true
	cellHeader.Background = &tableHeader

	rule := Style{
		Color:        colorOr(c.Rule, text),
		MarginTop:    paragraphGap,
		MarginBottom: paragraphGap,
		BorderBottom: Border{Width: 1, Color: colorOr(c.Rule, text)},
	}

	image := Style{
		MarginTop:    paragraphGap / 2,
		MarginBottom: paragraphGap,
	}

	page := body
	page.Background = &bg

	return StyleSheet{
		Name:            t.Name,
		Page:            page,
		Heading1:        heading(1),
		Heading2:        heading(2),
		Heading3:        heading(3),
		Heading4:        heading(4),
		Heading5:        heading(5),
		Heading6:        heading(6),
		Paragraph:       paragraph,
		Link:            link,
		Code:            code,
		CodeBlock:       codeBlock,
		Blockquote:      blockquote,
		List:            list,
		ListItem:        listItem,
		Table:           table,
		TableCell:       cell,
		TableCellHeader: cellHeader,
		HorizontalRule:  rule,
		Image:           image,
	}
}
