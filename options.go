package mdpdf

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/browser"
	"github.com/alnah/go-mdpdf/internal/diagram"
	"github.com/alnah/go-mdpdf/internal/encode"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithThemeStore makes custom theme ids resolvable. Without a store only the
// built-in presets are available.
func WithThemeStore(s theme.Store) Option {
	return func(c *Converter) {
		c.store = s
	}
}

// WithDiagramEngine replaces the default mermaid.js engine, for example with
// diagram.CLIEngine. Unless WithRasterizer is also given, diagrams from a
// custom engine are rasterized in pure Go.
func WithDiagramEngine(e diagram.Engine) Option {
	return func(c *Converter) {
		c.engine = e
	}
}

// WithRasterizer replaces the default rasterizer.
func WithRasterizer(r diagram.Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
	}
}

// WithDiagramsDisabled skips diagram rendering. Diagram fences are kept as
// code blocks of their source.
func WithDiagramsDisabled() Option {
	return func(c *Converter) {
		c.diagramsDisabled = true
	}
}

// WithMermaidScript sets the mermaid.js bundle URL used by the diagram engine
// and the HTML preview. Empty keeps the CDN default.
func WithMermaidScript(url string) Option {
	return func(c *Converter) {
		c.scriptURL = url
	}
}

// WithDiagramScale sets the supersampling factor of rasterized diagrams.
// Values below 1 keep the default.
func WithDiagramScale(scale float64) Option {
	return func(c *Converter) {
		c.diagramScale = scale
	}
}

// WithEncoder replaces the document encoder.
func WithEncoder(e encode.Encoder) Option {
	return func(c *Converter) {
		c.encoder = e
	}
}

// WithChromeEncoder prints with headless Chrome instead of the native
// encoder. Text keeps full Unicode coverage.
func WithChromeEncoder() Option {
	return func(c *Converter) {
		c.useChrome = true
	}
}

// WithPageNumbers adds "n / total" footers. Native encoder only.
func WithPageNumbers(on bool) Option {
	return func(c *Converter) {
		c.pageNumbers = on
	}
}

// WithTimeout bounds each Convert call. Zero means no bound beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAssetPath overrides embedded templates with files under path. Missing
// files fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.assetPath = path
	}
}

// WithBrowser shares a browser between converters. The converter does not
// close a browser it did not create.
func WithBrowser(b *browser.Browser) Option {
	return func(c *Converter) {
		if b != nil {
			c.browser = b
		}
	}
}
