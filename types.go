package mdpdf

import (
	"fmt"

	"github.com/alnah/go-mdpdf/internal/emoji"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Page size constants.
const (
	PageSizeA3     = string(layout.PageA3)
	PageSizeA4     = string(layout.PageA4)
	PageSizeA5     = string(layout.PageA5)
	PageSizeLetter = string(layout.PageLetter)
	PageSizeLegal  = string(layout.PageLegal)
)

// Orientation constants.
const (
	OrientationPortrait  = string(layout.Portrait)
	OrientationLandscape = string(layout.Landscape)
)

// Emoji modes.
const (
	EmojiRemove  = string(emoji.ModeRemove)
	EmojiReplace = string(emoji.ModeReplace)
)

// Built-in style presets.
const (
	StyleModern    = theme.PresetModern
	StyleClassic   = theme.PresetClassic
	StyleMinimal   = theme.PresetMinimal
	StyleTechnical = theme.PresetTechnical
)

// Metadata length limits, matching the CLI config limits.
const (
	MaxTitleLength   = 200
	MaxAuthorLength  = 100
	MaxSubjectLength = 300
)

// DefaultMargin is used for every side left unset, in points.
const DefaultMargin = layout.DefaultMargin

// Input is one conversion request.
type Input struct {
	Markdown string
	Options  Options
}

// Margins holds optional per-side overrides in points. Nil sides use DefaultMargin.
type Margins struct {
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// UniformMargins sets every side to v points.
func UniformMargins(v float64) Margins {
	return Margins{Top: &v, Right: &v, Bottom: &v, Left: &v}
}

// Options configures one conversion. The zero value is A4 portrait, default
// margins, the modern preset and emoji removal.
type Options struct {
	PageSize    string // a3, a4, a5, letter, legal
	Orientation string // portrait, landscape
	Margins     Margins

	// Style is a preset name or a custom theme id. Unknown values fall back
	// to the modern preset.
	Style string

	Title   string // empty = first level-1 heading
	Author  string
	Subject string

	EmojiMode string // remove (default), replace
}

// Validate checks option values. Unknown style names are not an error.
func (o Options) Validate() error {
	if err := o.page().Validate(); err != nil {
		return err
	}
	if _, err := emoji.ParseMode(o.EmojiMode); err != nil {
		return err
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"title", o.Title, MaxTitleLength},
		{"author", o.Author, MaxAuthorLength},
		{"subject", o.Subject, MaxSubjectLength},
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, l.field, len(l.value), l.max)
		}
	}
	return nil
}

func (o Options) page() layout.PageConfig {
	return layout.PageConfig{
		Size:        layout.PageSize(o.PageSize),
		Orientation: layout.Orientation(o.Orientation),
		Margins: layout.Margins{
			Top:    o.Margins.Top,
			Right:  o.Margins.Right,
			Bottom: o.Margins.Bottom,
			Left:   o.Margins.Left,
		},
	}
}

// Validate checks the markdown and the options.
//
// This is the trust boundary for library users who build Input by hand.
// CLI input is validated earlier by config.Validate, and both paths end here.
func (in Input) Validate() error {
	if in.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return in.Options.Validate()
}
