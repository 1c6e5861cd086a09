package blocks

// Kind discriminates block nodes.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindBlockquote
	KindCodeBlock
	KindHorizontalRule
	KindDiagram
)

var kindNames = [...]string{
	KindHeading:        "heading",
	KindParagraph:      "paragraph",
	KindList:           "list",
	KindBlockquote:     "blockquote",
	KindCodeBlock:      "codeBlock",
	KindHorizontalRule: "horizontalRule",
	KindDiagram:        "diagram",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Block is one structural node. The set of implementations is closed.
type Block interface {
	Kind() Kind
}

// Heading is an ATX heading, level 1..6.
type Heading struct {
	Level int
	Text  string
}

// Paragraph joins consecutive text lines with single spaces.
type Paragraph struct {
	Text string
}

// ListBlock holds flat list items; nesting is not recognized.
type ListBlock struct {
	Items   []string
	Ordered bool
}

// Blockquote is a single quoted line.
type Blockquote struct {
	Text string
}

// CodeBlock holds fenced lines verbatim.
type CodeBlock struct {
	Language string
	Lines    []string
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// DiagramPlaceholder marks the Index-th diagram fence in the document.
// Source keeps the fence body so an unrendered diagram can still be shown as code.
type DiagramPlaceholder struct {
	Index  int
	Source []string
}

func (Heading) Kind() Kind            { return KindHeading }
func (Paragraph) Kind() Kind          { return KindParagraph }
func (ListBlock) Kind() Kind          { return KindList }
func (Blockquote) Kind() Kind         { return KindBlockquote }
func (CodeBlock) Kind() Kind          { return KindCodeBlock }
func (HorizontalRule) Kind() Kind     { return KindHorizontalRule }
func (DiagramPlaceholder) Kind() Kind { return KindDiagram }
