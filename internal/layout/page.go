package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for page configuration.
var (
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

// PageSize names a standard paper size.
type PageSize string

const (
	PageA3     PageSize = "a3"
	PageA4     PageSize = "a4"
	PageA5     PageSize = "a5"
	PageLetter PageSize = "letter"
	PageLegal  PageSize = "legal"
)

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Page defaults, in points.
const (
	DefaultPageSize    = PageA4
	DefaultOrientation = Portrait
	DefaultMargin      = 36.0
	MaxMargin          = 288.0
)

// portrait dimensions in points (1/72 inch).
var pageDimensions = map[PageSize][2]float64{
	PageA3:     {841.89, 1190.55},
	PageA4:     {595.28, 841.89},
	PageA5:     {419.53, 595.28},
	PageLetter: {612, 792},
	PageLegal:  {612, 1008},
}

// PageSizes returns the supported size names.
func PageSizes() []PageSize {
	return []PageSize{PageA3, PageA4, PageA5, PageLetter, PageLegal}
}

// Margins holds optional per-side margins in points; nil sides use DefaultMargin.
type Margins struct {
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// Uniform returns Margins with every side set to v.
func Uniform(v float64) Margins {
	return Margins{Top: &v, Right: &v, Bottom: &v, Left: &v}
}

// PageConfig is the caller's page request. Zero values mean defaults.
type PageConfig struct {
	Size        PageSize
	Orientation Orientation
	Margins     Margins
}

// Validate checks size, orientation and margins, including that the
// margins fit the resolved page.
func (c PageConfig) Validate() error {
	if c.Size != "" {
		if _, ok := pageDimensions[PageSize(strings.ToLower(string(c.Size)))]; !ok {
			return fmt.Errorf("%w: %q (must be a3, a4, a5, letter or legal)", ErrInvalidPageSize, c.Size)
		}
	}
	switch Orientation(strings.ToLower(string(c.Orientation))) {
	case "", Portrait, Landscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, c.Orientation)
	}
	sides := []struct {
		name string
		v    *float64
	}{
		{"top", c.Margins.Top}, {"right", c.Margins.Right},
		{"bottom", c.Margins.Bottom}, {"left", c.Margins.Left},
	}
	for _, s := range sides {
		if s.v == nil {
			continue
		}
		if *s.v < 0 || *s.v > MaxMargin {
			return fmt.Errorf("%w: %s %.1f (must be between 0 and %.0f points)", ErrInvalidMargin, s.name, *s.v, MaxMargin)
		}
	}

	// Margins must leave a printable area once orientation is applied.
	p := c.Resolve()
	if p.ContentWidth() <= 0 {
		return fmt.Errorf("%w: left %.1f + right %.1f leave no room on a %.2f point wide page",
			ErrInvalidMargin, p.Margin.Left, p.Margin.Right, p.Width)
	}
	if p.ContentHeight() <= 0 {
		return fmt.Errorf("%w: top %.1f + bottom %.1f leave no room on a %.2f point high page",
			ErrInvalidMargin, p.Margin.Top, p.Margin.Bottom, p.Height)
	}
	return nil
}

// Box is a four-sided measure in points.
type Box struct {
	Top, Right, Bottom, Left float64
}

// Page is a resolved page geometry in points.
type Page struct {
	Size        PageSize
	Orientation Orientation
	Width       float64
	Height      float64
	Margin      Box
}

// ContentWidth is the printable width between left and right margins.
func (p Page) ContentWidth() float64 {
	return p.Width - p.Margin.Left - p.Margin.Right
}

// ContentHeight is the printable height between top and bottom margins.
func (p Page) ContentHeight() float64 {
	return p.Height - p.Margin.Top - p.Margin.Bottom
}

// Resolve applies defaults and orientation. Call Validate first; unknown
// values resolve to defaults here.
func (c PageConfig) Resolve() Page {
	size := PageSize(strings.ToLower(string(c.Size)))
	dims, ok := pageDimensions[size]
	if !ok {
		size = DefaultPageSize
		dims = pageDimensions[size]
	}

	orient := Orientation(strings.ToLower(string(c.Orientation)))
	if orient != Landscape {
		orient = Portrait
	}
	w, h := dims[0], dims[1]
	if orient == Landscape {
		w, h = h, w
	}

	side := func(v *float64) float64 {
		if v == nil {
			return DefaultMargin
		}
		return *v
	}
	return Page{
		Size:        size,
		Orientation: orient,
		Width:       w,
		Height:      h,
		Margin: Box{
			Top:    side(c.Margins.Top),
			Right:  side(c.Margins.Right),
			Bottom: side(c.Margins.Bottom),
			Left:   side(c.Margins.Left),
		},
	}
}
