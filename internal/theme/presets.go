package theme

import "sort"

// Built-in preset names.
const (
	PresetModern    = "modern"
	PresetClassic   = "classic"
	PresetMinimal   = "minimal"
	PresetTechnical = "technical"

	// DefaultPreset is used for empty and unresolvable identifiers.
	DefaultPreset = PresetModern
)

type preset struct {
	base     func() Theme
	decorate func(*StyleSheet)
}

var presets = map[string]preset{
	PresetModern:    {base: modernTheme, decorate: decorateModern},
	PresetClassic:   {base: classicTheme, decorate: decorateClassic},
	PresetMinimal:   {base: minimalTheme, decorate: decorateMinimal},
	PresetTechnical: {base: technicalTheme, decorate: decorateTechnical},
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPreset reports whether name is a built-in preset.
func IsPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// Preset returns a fresh style sheet for a built-in preset.
func Preset(name string) (StyleSheet, bool) {
	p, ok := presets[name]
	if !ok {
		return StyleSheet{}, false
	}
	sheet := p.base().StyleSheet()
	p.decorate(&sheet)
	return sheet, true
}

// PresetTheme returns the theme definition behind a preset, without decoration.
// Useful as a starting point for custom themes.
func PresetTheme(name string) (Theme, bool) {
	p, ok := presets[name]
	if !ok {
		return Theme{}, false
	}
	return p.base(), true
}

func headingGap(top, bottom float64) HeadingSpacing {
	return HeadingSpacing{Top: Points(top), Bottom: Points(bottom)}
}

func standardHeadingSpacing() []HeadingSpacing {
	return []HeadingSpacing{
		headingGap(24, 12),
		headingGap(20, 10),
		headingGap(16, 8),
		headingGap(14, 6),
		headingGap(12, 6),
		headingGap(12, 6),
	}
}

func modernTheme() Theme {
	return Theme{
		ID:   PresetModern,
		Name: PresetModern,
		Colors: Colors{
			Background:       "#ffffff",
			Text:             "#1f2933",
			Heading1:         "#1a56db",
			Heading2:         "#1e429f",
			Heading3:         "#233876",
			Link:             "#1c64f2",
			Code:             "#c81e1e",
			CodeBackground:   "#f3f4f6",
			Blockquote:       "#374151",
			BlockquoteBorder: "#3f83f8",
			TableHeader:      "#e1effe",
			TableBorder:      "#d1d5db",
			Rule:             "#d1d5db",
		},
		Typography: Typography{
			FontFamily:        "Helvetica, Arial, sans-serif",
			FontSize:          11,
			HeadingFontFamily: "Helvetica, Arial, sans-serif",
			Heading1Size:      24,
			Heading2Size:      20,
			Heading3Size:      16,
			Heading4Size:      14,
			Heading5Size:      12,
			Heading6Size:      11,
			LineHeight:        1.5,
			CodeFontFamily:    "Courier, monospace",
			CodeFontSize:      9.5,
		},
		Spacing: Spacing{
			Headings:         standardHeadingSpacing(),
			Paragraph:        Points(10),
			List:             Points(10),
			BlockquoteIndent: Points(16),
			CodeBlockPadding: Points(8),
		},
	}
}

// decorateModern puts blockquotes on a tinted background panel.
func decorateModern(s *StyleSheet) {
	panel := MustParseColor("#eff6ff")
	s.Blockquote.Background = &panel
	s.Blockquote.Padding = 8
	s.Blockquote.Italic = false
}

func classicTheme() Theme {
	return Theme{
		ID:   PresetClassic,
		Name: PresetClassic,
		Colors: Colors{
			Background:       "#fffdf8",
			Text:             "#222222",
			Heading1:         "#111111",
			Heading2:         "#222222",
			Heading3:         "#333333",
			Link:             "#7b2d26",
			Code:             "#333333",
			CodeBackground:   "#f5f1e8",
			Blockquote:       "#555555",
			BlockquoteBorder: "#b8a88a",
			TableHeader:      "#efe8d8",
			TableBorder:      "#b8a88a",
			Rule:             "#8c7b5e",
		},
		Typography: Typography{
			FontFamily:        "Times, Georgia, serif",
			FontSize:          12,
			HeadingFontFamily: "Times, Georgia, serif",
			Heading1Size:      26,
			Heading2Size:      21,
			Heading3Size:      17,
			Heading4Size:      14,
			Heading5Size:      12,
			Heading6Size:      12,
			LineHeight:        1.45,
			CodeFontFamily:    "Courier, monospace",
			CodeFontSize:      10,
		},
		Spacing: Spacing{
			Headings:         standardHeadingSpacing(),
			Paragraph:        Points(12),
			List:             Points(12),
			BlockquoteIndent: Points(24),
			CodeBlockPadding: Points(6),
		},
	}
}

// decorateClassic underlines the top two heading levels with a border rule.
func decorateClassic(s *StyleSheet) {
	rule := MustParseColor("#8c7b5e")
	s.Heading1.BorderBottom = Border{Width: 1.5, Color: rule}
	s.Heading2.BorderBottom = Border{Width: 0.75, Color: rule}
	s.Blockquote.BorderLeft = Border{}
}

func minimalTheme() Theme {
	return Theme{
		ID:   PresetMinimal,
		Name: PresetMinimal,
		Colors: Colors{
			Background:       "#ffffff",
			Text:             "#333333",
			Heading1:         "#000000",
			Heading2:         "#111111",
			Heading3:         "#222222",
			Link:             "#000000",
			Code:             "#333333",
			CodeBackground:   "#fafafa",
			Blockquote:       "#666666",
			BlockquoteBorder: "#dddddd",
			TableHeader:      "#f5f5f5",
			TableBorder:      "#e5e5e5",
			Rule:             "#e5e5e5",
		},
		Typography: Typography{
			FontFamily:        "Helvetica, Arial, sans-serif",
			FontSize:          10.5,
			HeadingFontFamily: "Helvetica, Arial, sans-serif",
			Heading1Size:      20,
			Heading2Size:      16,
			Heading3Size:      13,
			Heading4Size:      12,
			Heading5Size:      11,
			Heading6Size:      10.5,
			LineHeight:        1.6,
			CodeFontFamily:    "Courier, monospace",
			CodeFontSize:      9,
		},
		Spacing: Spacing{
			Headings: []HeadingSpacing{
				headingGap(18, 10),
				headingGap(16, 8),
				headingGap(14, 6),
				headingGap(12, 6),
				headingGap(10, 4),
				headingGap(10, 4),
			},
			Paragraph:        Points(9),
			List:             Points(9),
			BlockquoteIndent: Points(12),
			CodeBlockPadding: Points(6),
		},
	}
}

// decorateMinimal drops link underlines and blockquote borders.
func decorateMinimal(s *StyleSheet) {
	s.Link.Underline = false
	s.Blockquote.BorderLeft = Border{}
}

func technicalTheme() Theme {
	return Theme{
		ID:   PresetTechnical,
		Name: PresetTechnical,
		Colors: Colors{
			Background:       "#ffffff",
			Text:             "#24292f",
			Heading1:         "#0b3d2e",
			Heading2:         "#115e45",
			Heading3:         "#14735a",
			Link:             "#0969da",
			Code:             "#e6edf3",
			CodeBackground:   "#161b22",
			Blockquote:       "#57606a",
			BlockquoteBorder: "#1f883d",
			TableHeader:      "#eaeef2",
			TableBorder:      "#d0d7de",
			Rule:             "#d0d7de",
		},
		Typography: Typography{
			FontFamily:        "Helvetica, Arial, sans-serif",
			FontSize:          10.5,
			HeadingFontFamily: "Courier, monospace",
			Heading1Size:      22,
			Heading2Size:      18,
			Heading3Size:      15,
			Heading4Size:      13,
			Heading5Size:      11.5,
			Heading6Size:      10.5,
			LineHeight:        1.5,
			CodeFontFamily:    "Courier, monospace",
			CodeFontSize:      9,
		},
		Spacing: Spacing{
			Headings:         standardHeadingSpacing(),
			Paragraph:        Points(10),
			List:             Points(10),
			BlockquoteIndent: Points(14),
			CodeBlockPadding: Points(10),
		},
	}
}

// decorateTechnical keeps inline code readable on light paper while code
// blocks use the dark panel.
func decorateTechnical(s *StyleSheet) {
	inline := MustParseColor("#eff1f3")
	s.Code.Background = &inline
	s.Code.Color = MustParseColor("#cf222e")
	s.Blockquote.BorderLeft.Width = 4
}
