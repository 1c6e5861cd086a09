// Package layout assembles parsed blocks, inline fragments, rasterized diagrams
// and a resolved style sheet into a PageTree.
package layout

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdpdf/internal/blocks"
	"github.com/alnah/go-mdpdf/internal/diagram"
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Sentinel errors for assembly. Both indicate a bug upstream, not bad input.
var (
	ErrInvalidStyleSheet = errors.New("invalid style sheet")
	ErrUnknownBlock      = errors.New("unknown block type")
)

// pxToPt converts CSS pixels (96 dpi) to points (72 dpi).
const pxToPt = 0.75

// Input groups everything Assemble consumes.
type Input struct {
	Blocks   []blocks.Block
	Styles   theme.StyleSheet
	Diagrams diagram.Batch
	Page     PageConfig
	Metadata Metadata
}

// Assemble walks blocks in order and resolves each into an element.
//
// Diagram placeholders take the batch result at their index: a rendered
// diagram becomes an image, a skipped one falls back to a code block of its
// source, and an index with no result is dropped.
func Assemble(in Input) (*PageTree, error) {
	if err := in.Styles.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyleSheet, err)
	}
	if err := in.Page.Validate(); err != nil {
		return nil, err
	}

	page := in.Page.Resolve()
	s := &in.Styles
	tree := &PageTree{
		Page:     page,
		Metadata: in.Metadata,
		Styles:   in.Styles,
		Elements: make([]Element, 0, len(in.Blocks)),
	}

	for _, b := range in.Blocks {
		switch n := b.(type) {
		case blocks.Heading:
			tree.Elements = append(tree.Elements, HeadingElement{
				Level:     n.Level,
				Fragments: inline.Parse(n.Text),
				Style:     s.Style(theme.HeadingRole(n.Level)),
			})
		case blocks.Paragraph:
			tree.Elements = append(tree.Elements, ParagraphElement{
				Fragments: inline.Parse(n.Text),
				Style:     s.Paragraph,
			})
		case blocks.ListBlock:
			items := make([][]inline.Fragment, len(n.Items))
			for i, item := range n.Items {
				items[i] = inline.Parse(item)
			}
			tree.Elements = append(tree.Elements, ListElement{
				Ordered:   n.Ordered,
				Items:     items,
				Style:     s.List,
				ItemStyle: s.ListItem,
			})
		case blocks.Blockquote:
			tree.Elements = append(tree.Elements, BlockquoteElement{
				Fragments: inline.Parse(n.Text),
				Style:     s.Blockquote,
			})
		case blocks.CodeBlock:
			tree.Elements = append(tree.Elements, CodeBlockElement{
				Language: n.Language,
				Lines:    n.Lines,
				Style:    s.CodeBlock,
			})
		case blocks.HorizontalRule:
			tree.Elements = append(tree.Elements, RuleElement{Style: s.HorizontalRule})
		case blocks.DiagramPlaceholder:
			if el, ok := diagramElement(n, in.Diagrams, page, s); ok {
				tree.Elements = append(tree.Elements, el)
			}
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownBlock, b)
		}
	}
	return tree, nil
}

func diagramElement(n blocks.DiagramPlaceholder, batch diagram.Batch, page Page, s *theme.StyleSheet) (Element, bool) {
	res, ok := batch.At(n.Index)
	if !ok {
		return nil, false
	}
	switch r := res.(type) {
	case diagram.Rendered:
		w, h := fit(r.Width*pxToPt, r.Height*pxToPt, page.ContentWidth(), page.ContentHeight())
		return ImageElement{URI: r.URI, Width: w, Height: h, Style: s.Image}, true
	case diagram.Skipped:
		return CodeBlockElement{Language: blocks.DiagramLanguage, Lines: n.Source, Style: s.CodeBlock}, true
	default:
		return nil, false
	}
}

// fit scales w x h down (never up) to fit in maxW x maxH, keeping aspect ratio.
func fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = maxW / w
	}
	if maxH > 0 && h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}
