package encode

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// DefaultCreator is written to the PDF info dictionary when the tree names none.
const DefaultCreator = "go-mdpdf"

// fallbackFontSize is used for styles that carry no size (page, rule, image).
const fallbackFontSize = 11

// footerFontSize is the size of page numbers.
const footerFontSize = 8

// NativeEncoder draws the page tree with fpdf. Core fonts only, so text is
// limited to the Windows-1252 repertoire; other characters print as '.'.
type NativeEncoder struct {
	logger      *zap.Logger
	pageNumbers bool
	compress    bool
	now         func() time.Time
}

// NativeOption configures a NativeEncoder.
type NativeOption func(*NativeEncoder)

// WithPageNumbers prints a centered page number in the bottom margin.
func WithPageNumbers(on bool) NativeOption {
	return func(e *NativeEncoder) { e.pageNumbers = on }
}

// WithCompression toggles stream compression. Tests turn it off to inspect output.
func WithCompression(on bool) NativeOption {
	return func(e *NativeEncoder) { e.compress = on }
}

// WithClock fixes the creation date, which makes output reproducible.
func WithClock(now func() time.Time) NativeOption {
	return func(e *NativeEncoder) { e.now = now }
}

// NewNativeEncoder creates a NativeEncoder. A nil logger discards output.
func NewNativeEncoder(logger *zap.Logger, opts ...NativeOption) *NativeEncoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &NativeEncoder{logger: logger, compress: true, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode renders tree into a PDF document.
func (e *NativeEncoder) Encode(ctx context.Context, tree *layout.PageTree) ([]byte, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	w := e.newWriter(tree)
	w.pdf.AddPage()

	for i, el := range tree.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.element(el); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrEncode, i, err)
		}
		if err := w.pdf.Error(); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrEncode, i, err)
		}
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	e.logger.Debug("encoded document",
		zap.String("stage", "encode"),
		zap.String("encoder", "native"),
		zap.Int("pages", w.pdf.PageCount()),
		zap.Int("bytes", buf.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return buf.Bytes(), nil
}

// pdfWriter carries the drawing state of one document.
type pdfWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	page   layout.Page
	link   theme.Style
	images int
}

func (e *NativeEncoder) newWriter(tree *layout.PageTree) *pdfWriter {
	page := tree.Page
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P", // page dimensions are already oriented
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetCompression(e.compress)
	now := e.now()
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetMargins(page.Margin.Left, page.Margin.Top, page.Margin.Right)
	pdf.SetAutoPageBreak(true, page.Margin.Bottom)
	pdf.SetCellMargin(0)

	meta := tree.Metadata
	creator := meta.Creator
	if creator == "" {
		creator = DefaultCreator
	}
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(creator, true)

	w := &pdfWriter{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		page: page,
		link: tree.Styles.Link,
	}

	if bg := tree.Styles.Page.Background; bg != nil && *bg != (theme.RGB{R: 255, G: 255, B: 255}) {
		fill := *bg
		pdf.SetHeaderFunc(func() {
			pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
			pdf.Rect(0, 0, page.Width, page.Height, "F")
		})
	}

	if e.pageNumbers {
		body := tree.Styles.Page
		pdf.SetFooterFunc(func() {
			pdf.SetFont(coreFont(body.FontFamily), "", footerFontSize)
			pdf.SetTextColor(int(body.Color.R), int(body.Color.G), int(body.Color.B))
			pdf.SetXY(page.Margin.Left, page.Height-page.Margin.Bottom/2-footerFontSize/2)
			pdf.CellFormat(page.ContentWidth(), footerFontSize, strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
		})
	}
	return w
}

func (w *pdfWriter) element(el layout.Element) error {
	switch el := el.(type) {
	case layout.HeadingElement:
		w.heading(el)
	case layout.ParagraphElement:
		w.paragraph(el)
	case layout.ListElement:
		w.list(el)
	case layout.BlockquoteElement:
		w.blockquote(el)
	case layout.CodeBlockElement:
		w.codeBlock(el)
	case layout.RuleElement:
		w.rule(el)
	case layout.ImageElement:
		return w.image(el)
	default:
		return fmt.Errorf("unknown element %T", el)
	}
	return nil
}

// use makes st the current font and text color.
func (w *pdfWriter) use(st theme.Style) {
	size := st.FontSize
	if size <= 0 {
		size = fallbackFontSize
	}
	w.pdf.SetFont(coreFont(st.FontFamily), fontStyle(st), size)
	w.pdf.SetTextColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
}

// atTop reports whether nothing has been drawn on the current page yet.
func (w *pdfWriter) atTop() bool {
	return w.pdf.GetY() <= w.page.Margin.Top+0.01
}

// space adds vertical space, except at the top of a page.
func (w *pdfWriter) space(h float64) {
	if h > 0 && !w.atTop() {
		w.pdf.Ln(h)
	}
}

// reserve starts a new page when h does not fit below the cursor. Blocks
// taller than a whole page are left to the automatic page break.
func (w *pdfWriter) reserve(h float64) {
	bottom := w.page.Height - w.page.Margin.Bottom
	if w.pdf.GetY()+h > bottom && h <= w.page.ContentHeight() && !w.atTop() {
		w.pdf.AddPage()
	}
}

// fragments writes flowing text; links keep the surrounding font and take
// the link role's color and decoration.
func (w *pdfWriter) fragments(frags []inline.Fragment, st theme.Style) {
	lh := st.Leading()
	w.use(st)
	for _, f := range frags {
		switch f := f.(type) {
		case inline.Link:
			ls := st
			ls.Color = w.link.Color
			ls.Underline = w.link.Underline
			w.use(ls)
			w.pdf.WriteLinkString(lh, w.tr(f.Text), f.Href)
			w.use(st)
		default:
			w.pdf.Write(lh, w.tr(f.Content()))
		}
	}
}

func (w *pdfWriter) hline(y float64, b theme.Border) {
	w.pdf.SetDrawColor(int(b.Color.R), int(b.Color.G), int(b.Color.B))
	w.pdf.SetLineWidth(b.Width)
	w.pdf.Line(w.page.Margin.Left, y, w.page.Width-w.page.Margin.Right, y)
}

func (w *pdfWriter) heading(el layout.HeadingElement) {
	st := el.Style
	w.space(st.MarginTop)
	// Keep the heading with at least one following line.
	w.reserve(st.Leading() * 2)
	w.fragments(el.Fragments, st)
	w.pdf.Ln(st.Leading())
	if b := st.BorderBottom; b.Width > 0 {
		y := w.pdf.GetY() + b.Width*2
		w.hline(y, b)
		w.pdf.SetY(y + b.Width)
	}
	w.pdf.Ln(st.MarginBottom)
}

func (w *pdfWriter) paragraph(el layout.ParagraphElement) {
	st := el.Style
	w.space(st.MarginTop)
	w.fragments(el.Fragments, st)
	w.pdf.Ln(st.Leading())
	w.pdf.Ln(st.MarginBottom)
}

func (w *pdfWriter) list(el layout.ListElement) {
	st, item := el.Style, el.ItemStyle
	left := w.page.Margin.Left
	textX := left + st.Indent
	defer w.pdf.SetLeftMargin(left)

	w.space(st.MarginTop)
	for i, frags := range el.Items {
		marker := "•"
		if el.Ordered {
			marker = strconv.Itoa(i+1) + "."
		}
		marker = w.tr(marker) + " "

		w.pdf.SetLeftMargin(left)
		w.reserve(item.Leading())
		w.use(item)
		mx := textX - w.pdf.GetStringWidth(marker)
		if mx < left {
			mx = left
		}
		w.pdf.SetX(mx)
		w.pdf.Write(item.Leading(), marker)

		// Wrapped lines hang at the text column.
		w.pdf.SetLeftMargin(textX)
		w.pdf.SetX(textX)
		w.fragments(frags, item)
		w.pdf.Ln(item.Leading())
		if i < len(el.Items)-1 {
			w.pdf.Ln(item.MarginBottom)
		}
	}
	w.pdf.SetLeftMargin(left)
	w.pdf.Ln(st.MarginBottom)
}

func (w *pdfWriter) blockquote(el layout.BlockquoteElement) {
	st := el.Style
	lh := st.Leading()
	left, right := w.page.Margin.Left, w.page.Margin.Right
	width := w.page.ContentWidth()
	inset := st.Indent
	if inset < st.BorderLeft.Width+st.Padding {
		inset = st.BorderLeft.Width + st.Padding
	}

	w.space(st.MarginTop)
	w.use(st)
	lines := w.pdf.SplitText(w.tr(inline.Text(el.Fragments)), width-inset-st.Padding)
	if len(lines) == 0 {
		lines = []string{""}
	}
	h := float64(len(lines))*lh + 2*st.Padding
	w.reserve(h)

	y := w.pdf.GetY()
	page := w.pdf.PageNo()
	if bg := st.Background; bg != nil {
		w.pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		w.pdf.Rect(left, y, width, h, "F")
	}
	if b := st.BorderLeft; b.Width > 0 {
		w.pdf.SetFillColor(int(b.Color.R), int(b.Color.G), int(b.Color.B))
		w.pdf.Rect(left, y, b.Width, h, "F")
	}

	w.pdf.SetLeftMargin(left + inset)
	w.pdf.SetRightMargin(right + st.Padding)
	w.pdf.SetXY(left+inset, y+st.Padding)
	w.fragments(el.Fragments, st)
	w.pdf.Ln(lh)
	w.pdf.SetLeftMargin(left)
	w.pdf.SetRightMargin(right)

	if w.pdf.PageNo() == page && w.pdf.GetY() < y+h {
		w.pdf.SetY(y + h)
	} else {
		w.pdf.Ln(st.Padding)
	}
	w.pdf.Ln(st.MarginBottom)
}

func (w *pdfWriter) codeBlock(el layout.CodeBlockElement) {
	st := el.Style
	lh := st.Leading()
	width := w.page.ContentWidth()

	w.space(st.MarginTop)
	w.use(st)
	charW := w.pdf.GetStringWidth("M")
	lines := wrapCode(el.Lines, columns(width-2*st.Padding, charW))

	fill := st.Background != nil
	if fill {
		bg := *st.Background
		w.pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	}
	w.reserve(float64(len(lines))*lh + 2*st.Padding)

	// Each row is its own filled cell so the panel splits cleanly across pages.
	w.pdf.SetCellMargin(st.Padding)
	if st.Padding > 0 {
		w.pdf.CellFormat(width, st.Padding, "", "", 1, "L", fill, 0, "")
	}
	for _, line := range lines {
		w.pdf.CellFormat(width, lh, w.tr(line), "", 1, "L", fill, 0, "")
	}
	if st.Padding > 0 {
		w.pdf.CellFormat(width, st.Padding, "", "", 1, "L", fill, 0, "")
	}
	w.pdf.SetCellMargin(0)
	w.pdf.Ln(st.MarginBottom)
}

func (w *pdfWriter) rule(el layout.RuleElement) {
	st := el.Style
	b := st.BorderBottom
	if b.Width <= 0 {
		b = theme.Border{Width: 1, Color: st.Color}
	}
	w.space(st.MarginTop)
	y := w.pdf.GetY()
	w.hline(y, b)
	w.pdf.SetY(y + b.Width)
	w.pdf.Ln(st.MarginBottom)
}

func (w *pdfWriter) image(el layout.ImageElement) error {
	img, err := decodeImage(el.URI)
	if err != nil {
		return err
	}
	st := el.Style

	w.images++
	name := "diagram-" + strconv.Itoa(w.images)
	opts := fpdf.ImageOptions{ImageType: img.kind}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	width, height := el.Width, el.Height
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: zero display size", ErrBadImage)
	}

	w.space(st.MarginTop)
	w.reserve(height)
	x := w.page.Margin.Left + (w.page.ContentWidth()-width)/2
	y := w.pdf.GetY()
	w.pdf.ImageOptions(name, x, y, width, height, false, opts, 0, "")
	w.pdf.SetY(y + height)
	w.pdf.Ln(st.MarginBottom)
	return nil
}
