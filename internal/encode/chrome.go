package encode

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/browser"
	"github.com/alnah/go-mdpdf/internal/layout"
)

// pointsPerInch converts page geometry to Chrome's paper units.
const pointsPerInch = 72.0

// ChromeEncoder prints an HTML rendition of the page tree with headless Chrome.
// Text keeps full Unicode coverage, at the cost of a browser.
type ChromeEncoder struct {
	browser *browser.Browser
	tmpl    *template.Template
	baseCSS string
	lang    string
	logger  *zap.Logger
}

// NewChromeEncoder parses the print template from loader.
func NewChromeEncoder(b *browser.Browser, loader assets.AssetLoader, logger *zap.Logger) (*ChromeEncoder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := assets.ParseTemplate(loader, assets.TemplatePrint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTemplate, err)
	}
	base, err := loader.LoadStyle(assets.StyleBase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTemplate, err)
	}
	return &ChromeEncoder{browser: b, tmpl: tmpl, baseCSS: base, lang: "en", logger: logger}, nil
}

type printData struct {
	Lang     string
	Title    string
	Author   string
	Subject  string
	BaseCSS  template.CSS
	ThemeCSS template.CSS
	Body     template.HTML
}

// Document returns the complete HTML page that Encode prints.
func (e *ChromeEncoder) Document(tree *layout.PageTree) (string, error) {
	if tree == nil {
		return "", ErrNilTree
	}
	title := tree.Metadata.Title
	if title == "" {
		title = DefaultCreator
	}
	data := printData{
		Lang:     e.lang,
		Title:    title,
		Author:   tree.Metadata.Author,
		Subject:  tree.Metadata.Subject,
		BaseCSS:  template.CSS(e.baseCSS),         // #nosec G203 -- embedded or operator-supplied
		ThemeCSS: template.CSS(tree.Styles.CSS()), // #nosec G203 -- generated from validated styles
		Body:     template.HTML(renderBody(tree)), // #nosec G203 -- every text node escaped in renderBody
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.String(), nil
}

// Encode implements Encoder.
func (e *ChromeEncoder) Encode(ctx context.Context, tree *layout.PageTree) ([]byte, error) {
	doc, err := e.Document(tree)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	page, release, err := e.browser.OpenHTML(ctx, doc)
	if err != nil {
		return nil, err
	}
	defer release()

	reader, err := page.PDF(printOptions(tree.Page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrEncode, err)
	}

	e.logger.Debug("encoded document",
		zap.String("stage", "encode"),
		zap.String("encoder", "chrome"),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}

// printOptions sizes the paper from the resolved page; dimensions are
// already oriented, so Landscape stays false.
func printOptions(p layout.Page) *proto.PagePrintToPDF {
	in := func(pt float64) *float64 {
		v := pt / pointsPerInch
		return &v
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      in(p.Width),
		PaperHeight:     in(p.Height),
		MarginTop:       in(p.Margin.Top),
		MarginBottom:    in(p.Margin.Bottom),
		MarginLeft:      in(p.Margin.Left),
		MarginRight:     in(p.Margin.Right),
		PrintBackground: true,
	}
}
