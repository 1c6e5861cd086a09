package theme

import "fmt"

// Role names one slot in the closed set of styled document parts.
type Role int

// Style roles. The set is closed and identical across every theme.
const (
	RolePage Role = iota
	RoleHeading1
	RoleHeading2
	RoleHeading3
	RoleHeading4
	RoleHeading5
	RoleHeading6
	RoleParagraph
	RoleLink
	RoleCode
	RoleCodeBlock
	RoleBlockquote
	RoleList
	RoleListItem
	RoleTable
	RoleTableCell
	RoleTableCellHeader
	RoleHorizontalRule
	RoleImage

	roleCount // sentinel, keep last
)

var roleNames = [roleCount]string{
	RolePage:            "page",
	RoleHeading1:        "heading1",
	RoleHeading2:        "heading2",
	RoleHeading3:        "heading3",
	RoleHeading4:        "heading4",
	RoleHeading5:        "heading5",
	RoleHeading6:        "heading6",
	RoleParagraph:       "paragraph",
	RoleLink:            "link",
	RoleCode:            "code",
	RoleCodeBlock:       "codeBlock",
	RoleBlockquote:      "blockquote",
	RoleList:            "list",
	RoleListItem:        "listItem",
	RoleTable:           "table",
	RoleTableCell:       "tableCell",
	RoleTableCellHeader: "tableCellHeader",
	RoleHorizontalRule:  "horizontalRule",
	RoleImage:           "image",
}

// String returns the role name used in style sheets and CSS class names.
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Roles returns every role in declaration order.
func Roles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// HeadingRole returns the role for a heading level, clamped to 1..6.
func HeadingRole(level int) Role {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return RoleHeading1 + Role(level-1)
}

// Border is a single border edge. Zero width means no border.
type Border struct {
	Width float64
	Color RGB
}

// Style holds the concrete visual attributes of one role.
// Sizes and spacing are in points.
type Style struct {
	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
	Underline  bool
	LineHeight float64 // multiplier of FontSize

	Color      RGB
	Background *RGB // nil means transparent

	MarginTop    float64
	MarginBottom float64
	Indent       float64
	Padding      float64

	BorderBottom Border
	BorderLeft   Border
}

// Leading returns the line advance in points.
func (s Style) Leading() float64 {
	lh := s.LineHeight
	if lh <= 0 {
		lh = 1.2
	}
	return s.FontSize * lh
}

// StyleSheet is the resolved style for every role.
type StyleSheet struct {
	Name string // preset name or custom theme name

	Page            Style
	Heading1        Style
	Heading2        Style
	Heading3        Style
	Heading4        Style
	Heading5        Style
	Heading6        Style
	Paragraph       Style
	Link            Style
	Code            Style
	CodeBlock       Style
	Blockquote      Style
	List            Style
	ListItem        Style
	Table           Style
	TableCell       Style
	TableCellHeader Style
	HorizontalRule  Style
	Image           Style
}

// Style returns the style for role.
// Panics on a role outside the closed set: that is a programming error.
func (s *StyleSheet) Style(role Role) Style {
	switch role {
	case RolePage:
		return s.Page
	case RoleHeading1:
		return s.Heading1
	case RoleHeading2:
		return s.Heading2
	case RoleHeading3:
		return s.Heading3
	case RoleHeading4:
		return s.Heading4
	case RoleHeading5:
		return s.Heading5
	case RoleHeading6:
		return s.Heading6
	case RoleParagraph:
		return s.Paragraph
	case RoleLink:
		return s.Link
	case RoleCode:
		return s.Code
	case RoleCodeBlock:
		return s.CodeBlock
	case RoleBlockquote:
		return s.Blockquote
	case RoleList:
		return s.List
	case RoleListItem:
		return s.ListItem
	case RoleTable:
		return s.Table
	case RoleTableCell:
		return s.TableCell
	case RoleTableCellHeader:
		return s.TableCellHeader
	case RoleHorizontalRule:
		return s.HorizontalRule
	case RoleImage:
		return s.Image
	}
	panic(fmt.Sprintf("theme: unknown style role %d", int(role)))
}

// textRoles must carry a positive font size to be renderable.
var textRoles = []Role{
	RoleHeading1, RoleHeading2, RoleHeading3, RoleHeading4, RoleHeading5, RoleHeading6,
	RoleParagraph, RoleLink, RoleCode, RoleCodeBlock, RoleBlockquote,
	RoleList, RoleListItem, RoleTableCell, RoleTableCellHeader,
}

// Validate reports the first role whose attributes cannot be rendered.
func (s *StyleSheet) Validate() error {
	for _, r := range textRoles {
		st := s.Style(r)
		if st.FontSize <= 0 {
			return fmt.Errorf("%w: %s font size %.1f", ErrNegativeValue, r, st.FontSize)
		}
	}
	for _, r := range Roles() {
		st := s.Style(r)
		if st.MarginTop < 0 || st.MarginBottom < 0 || st.Indent < 0 || st.Padding < 0 {
			return fmt.Errorf("%w: %s spacing", ErrNegativeValue, r)
		}
	}
	return nil
}
