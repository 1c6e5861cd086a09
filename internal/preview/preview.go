package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/blocks"
	"github.com/alnah/go-mdpdf/internal/diagram"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// ErrRender indicates the Markdown could not be rendered to HTML.
var ErrRender = errors.New("preview rendering failed")

// highlightStyles picks a chroma palette that suits each preset.
var highlightStyles = map[string]string{
	"modern":    "github",
	"classic":   "friendly",
	"minimal":   "bw",
	"technical": "monokai",
}

const defaultHighlightStyle = "github"

// Renderer converts Markdown to a standalone HTML preview. Safe for
// concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	tmpl      *template.Template
	baseCSS   string
	scriptURL string
	logger    *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMermaidScript sets the mermaid.js bundle loaded by previews with diagrams.
func WithMermaidScript(url string) Option {
	return func(r *Renderer) {
		if url != "" {
			r.scriptURL = url
		}
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Renderer with templates from loader.
func New(loader assets.AssetLoader, opts ...Option) (*Renderer, error) {
	tmpl, err := assets.ParseTemplate(loader, assets.TemplatePreview)
	if err != nil {
		return nil, err
	}
	base, err := loader.LoadStyle(assets.StyleBase)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				highlighting.NewHighlighting(
					highlighting.WithGuessLanguage(false),
					highlighting.WithWrapperRenderer(mermaidWrapper()),
					highlighting.WithFormatOptions(
						html.WithClasses(true),
					),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithXHTML(),
				// WithUnsafe is not set: raw HTML in the source is dropped.
			),
		),
		tmpl:      tmpl,
		baseCSS:   base,
		scriptURL: assets.DefaultMermaidScript,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Fragment converts Markdown to an HTML fragment without the page shell.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns as soon as ctx is done.
func (r *Renderer) Fragment(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

type pageData struct {
	Lang          string
	Title         string
	BaseCSS       template.CSS
	ThemeCSS      template.CSS
	HighlightCSS  template.CSS
	Body          template.HTML
	Diagrams      bool
	MermaidScript template.URL
	MermaidConfig template.JS
}

// Render converts Markdown to a complete HTML page styled by sheet.
func (r *Renderer) Render(ctx context.Context, markdown string, sheet theme.StyleSheet, title string) (string, error) {
	start := time.Now()
	body, err := r.Fragment(ctx, markdown)
	if err != nil {
		return "", err
	}

	hlCSS, err := highlightCSS(sheet.Name)
	if err != nil {
		return "", err
	}

	cfg := diagram.Config()
	cfg["startOnLoad"] = false
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("%w: mermaid config: %v", ErrRender, err)
	}

	if title == "" {
		title = "Preview"
	}
	data := pageData{
		Lang:          "en",
		Title:         title,
		BaseCSS:       template.CSS(r.baseCSS),   // #nosec G203 -- embedded or operator-supplied
		ThemeCSS:      template.CSS(sheet.CSS()), // #nosec G203 -- generated from validated styles
		HighlightCSS:  template.CSS(hlCSS),       // #nosec G203 -- generated by chroma
		Body:          template.HTML(body),       // #nosec G203 -- goldmark output without unsafe HTML
		Diagrams:      len(blocks.DiagramFences(markdown)) > 0,
		MermaidScript: template.URL(r.scriptURL), // #nosec G203 -- trusted configuration
		MermaidConfig: template.JS(cfgJSON),      // #nosec G203 -- marshalled from a static map
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	r.logger.Debug("rendered preview",
		zap.String("stage", "preview"),
		zap.String("theme", sheet.Name),
		zap.Duration("duration", time.Since(start)),
	)
	return buf.String(), nil
}

// highlightCSS returns the chroma class rules for the palette matching preset.
func highlightCSS(preset string) (string, error) {
	name, ok := highlightStyles[preset]
	if !ok {
		name = defaultHighlightStyle
	}
	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return "", fmt.Errorf("%w: highlight css: %v", ErrRender, err)
	}
	return buf.String(), nil
}
