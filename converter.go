package mdpdf

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/blocks"
	"github.com/alnah/go-mdpdf/internal/browser"
	"github.com/alnah/go-mdpdf/internal/diagram"
	"github.com/alnah/go-mdpdf/internal/emoji"
	"github.com/alnah/go-mdpdf/internal/encode"
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/preview"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Converter runs the Markdown to PDF pipeline.
// Create with NewConverter, call Convert, and Close when done.
//
// Convert calls on one Converter may run concurrently: each call owns its
// parse state and diagram session. Chrome, when needed, is shared.
type Converter struct {
	logger *zap.Logger
	loader assets.AssetLoader

	store    theme.Store
	resolver *theme.Resolver

	engine           diagram.Engine
	rasterizer       diagram.Rasterizer
	extractor        *diagram.Extractor
	diagramsDisabled bool
	scriptURL        string
	diagramScale     float64

	encoder     encode.Encoder
	useChrome   bool
	pageNumbers bool

	preview *preview.Renderer

	browser     *browser.Browser
	ownsBrowser bool

	assetPath string
	timeout   time.Duration
}

// NewConverter creates a Converter. Chrome is not started here; it launches
// on the first conversion that needs it.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger: zap.NewNop(),
		loader: assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.loader = resolver
	}

	if c.browser == nil {
		c.browser = browser.New(c.logger)
		c.ownsBrowser = true
	}

	c.resolver = theme.NewResolver(c.store, c.logger)

	if err := c.initDiagrams(); err != nil {
		return nil, err
	}
	if err := c.initEncoder(); err != nil {
		return nil, err
	}

	var err error
	c.preview, err = preview.New(c.loader,
		preview.WithMermaidScript(c.scriptURL),
		preview.WithLogger(c.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing preview: %w", err)
	}

	return c, nil
}

func (c *Converter) initDiagrams() error {
	if c.diagramsDisabled {
		c.extractor = diagram.NewExtractor(nil, nil, c.logger)
		return nil
	}

	if c.engine == nil {
		host, err := assets.MermaidHost(c.loader, c.scriptURL)
		if err != nil {
			return fmt.Errorf("loading diagram host page: %w", err)
		}
		c.engine = diagram.NewMermaidEngine(c.browser, host)
		if c.rasterizer == nil {
			c.rasterizer = diagram.NewBrowserRasterizer(c.browser, diagram.WithScale(c.diagramScale))
		}
	}
	if c.rasterizer == nil {
		c.rasterizer = diagram.NewVectorRasterizer(diagram.WithScale(c.diagramScale))
	}

	c.extractor = diagram.NewExtractor(c.engine, c.rasterizer, c.logger)
	return nil
}

func (c *Converter) initEncoder() error {
	if c.encoder != nil {
		return nil
	}
	if c.useChrome {
		enc, err := encode.NewChromeEncoder(c.browser, c.loader, c.logger)
		if err != nil {
			return fmt.Errorf("initializing chrome encoder: %w", err)
		}
		c.encoder = enc
		return nil
	}
	c.encoder = encode.NewNativeEncoder(c.logger, encode.WithPageNumbers(c.pageNumbers))
	return nil
}

// Convert runs sanitize, diagrams, block parse, assembly and encoding in that
// order. Diagram failures never fail the call: the diagram is rendered as
// its source instead. Anything past validation that does fail is reported
// as ErrConversion. Internal panics are recovered into ErrConversion.
func (c *Converter) Convert(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("conversion panicked", zap.Any("panic", r))
			res, err = nil, fmt.Errorf("%w: internal error: %v", ErrConversion, r)
		}
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := time.Now()
	opts := in.Options

	// Validate accepted the mode, so the error is always nil.
	mode, _ := emoji.ParseMode(opts.EmojiMode)
	start := time.Now()
	md := emoji.Sanitize(in.Markdown, mode)
	c.stage("sanitize", start)

	sess := diagram.NewSession()
	defer sess.Close()
	batch := c.extractor.Run(ctx, sess, md)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	nodes := blocks.Parse(md)
	c.stage("parse", start, zap.Int("blocks", len(nodes)))

	sheet, source := c.resolver.ResolveWithSource(opts.Style)
	c.logger.Debug("theme resolved",
		zap.String("theme", opts.Style),
		zap.String("sheet", sheet.Name),
		zap.Stringer("source", source))

	meta := layout.Metadata{
		Title:   opts.Title,
		Author:  opts.Author,
		Subject: opts.Subject,
	}
	if meta.Title == "" {
		meta.Title = documentTitle(nodes)
	}

	start = time.Now()
	tree, err := layout.Assemble(layout.Input{
		Blocks:   nodes,
		Styles:   sheet,
		Diagrams: batch,
		Page:     opts.page(),
		Metadata: meta,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	c.stage("assemble", start, zap.Int("elements", len(tree.Elements)))

	pdf, err := c.encoder.Encode(ctx, tree)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	c.logger.Debug("conversion complete",
		zap.Int("bytes", len(pdf)),
		zap.Int("diagrams", len(batch.Results)),
		zap.Int("diagramsSkipped", batch.Skipped()),
		zap.Duration("duration", time.Since(total)))
	return newResult(pdf), nil
}

// Preview renders markdown as a standalone HTML page styled with the theme
// named by style. Unlike Convert it keeps inline styling and highlights code.
func (c *Converter) Preview(ctx context.Context, markdown, style string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyMarkdown
	}
	sheet := c.resolver.Resolve(style)
	return c.preview.Render(ctx, markdown, sheet, documentTitle(blocks.Parse(markdown)))
}

// Close releases the browser if this converter created it.
func (c *Converter) Close() error {
	if c.ownsBrowser && c.browser != nil {
		return c.browser.Close()
	}
	return nil
}

func (c *Converter) stage(name string, start time.Time, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("stage", name),
		zap.Duration("duration", time.Since(start)),
	}, fields...)
	c.logger.Debug("stage complete", fields...)
}

// documentTitle returns the plain text of the first level-1 heading.
func documentTitle(nodes []blocks.Block) string {
	for _, n := range nodes {
		if h, ok := n.(blocks.Heading); ok && h.Level == 1 {
			return inline.Text(inline.Parse(h.Text))
		}
	}
	return ""
}
