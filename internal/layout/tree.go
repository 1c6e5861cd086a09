package layout

import (
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Metadata is written into the document info dictionary.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// PageTree is the fully resolved document handed to an encoder.
type PageTree struct {
	Page     Page
	Metadata Metadata
	Styles   theme.StyleSheet
	Elements []Element
}

// Element is one positioned piece of content. Style is already resolved from
// the element's role; encoders never consult the theme.
type Element interface {
	Role() theme.Role
}

type HeadingElement struct {
	Level     int
	Fragments []inline.Fragment
	Style     theme.Style
}

type ParagraphElement struct {
	Fragments []inline.Fragment
	Style     theme.Style
}

// ListElement keeps the list container style and the per-item style apart.
type ListElement struct {
	Ordered   bool
	Items     [][]inline.Fragment
	Style     theme.Style
	ItemStyle theme.Style
}

type BlockquoteElement struct {
	Fragments []inline.Fragment
	Style     theme.Style
}

type CodeBlockElement struct {
	Language string
	Lines    []string
	Style    theme.Style
}

type RuleElement struct {
	Style theme.Style
}

// ImageElement is a bitmap scaled to fit the content box. Width and Height are
// display sizes in points.
type ImageElement struct {
	URI    string
	Width  float64
	Height float64
	Style  theme.Style
}

func (e HeadingElement) Role() theme.Role  { return theme.HeadingRole(e.Level) }
func (ParagraphElement) Role() theme.Role  { return theme.RoleParagraph }
func (ListElement) Role() theme.Role       { return theme.RoleList }
func (BlockquoteElement) Role() theme.Role { return theme.RoleBlockquote }
func (CodeBlockElement) Role() theme.Role  { return theme.RoleCodeBlock }
func (RuleElement) Role() theme.Role       { return theme.RoleHorizontalRule }
func (ImageElement) Role() theme.Role      { return theme.RoleImage }
