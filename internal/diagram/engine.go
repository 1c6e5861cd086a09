package diagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/alnah/go-mdpdf/internal/browser"
)

// Engine renders diagram source to SVG markup. Implementations may reject any
// source; the Extractor treats that as a per-diagram skip.
type Engine interface {
	Render(ctx context.Context, sess *Session, source string) (string, error)
}

// Rasterizer turns prepared SVG into a bitmap data URI drawn on white at
// SupersampleScale.
type Rasterizer interface {
	Rasterize(ctx context.Context, sess *Session, svg SVG) (string, error)
}

// Compile-time interface checks.
var (
	_ Engine     = (*MermaidEngine)(nil)
	_ Engine     = (*CLIEngine)(nil)
	_ Rasterizer = (*BrowserRasterizer)(nil)
	_ Rasterizer = (*VectorRasterizer)(nil)
)

// Sentinel errors for diagram engines.
var (
	ErrEngineInit   = errors.New("diagram engine initialization failed")
	ErrRender       = errors.New("diagram render failed")
	ErrEmptyDiagram = errors.New("empty diagram source")
)

// Config returns the Mermaid configuration used for every render. Fixed palette,
// font and spacing make repeated renders of the same source identical.
// htmlLabels is off because foreignObject labels do not survive rasterization.
func Config() map[string]any {
	return map[string]any{
		"startOnLoad":         false,
		"theme":               "base",
		"securityLevel":       "strict",
		"fontFamily":          "arial",
		"htmlLabels":          false,
		"deterministicIds":    true,
		"deterministicIDSeed": "mdpdf",
		"themeVariables": map[string]any{
			"background":         "#ffffff",
			"fontFamily":         "arial",
			"fontSize":           "14px",
			"primaryColor":       "#ffffff",
			"primaryTextColor":   "#000000",
			"primaryBorderColor": "#333333",
			"lineColor":          "#333333",
			"secondaryColor":     "#f4f4f4",
			"tertiaryColor":      "#ffffff",
		},
		"flowchart": map[string]any{
			"htmlLabels":     false,
			"useMaxWidth":    false,
			"nodeSpacing":    50,
			"rankSpacing":    50,
			"diagramPadding": 8,
			"curve":          "basis",
		},
		"sequence": map[string]any{"useMaxWidth": false},
		"gantt":    map[string]any{"useMaxWidth": false},
	}
}

const (
	mermaidResource = "mermaid"
	canvasResource  = "canvas"
)

// MermaidEngine renders with mermaid.js inside a headless Chrome page. The host
// page must load mermaid synchronously; see assets "mermaid" template.
type MermaidEngine struct {
	browser  *browser.Browser
	hostHTML string
}

// NewMermaidEngine creates an engine that opens hostHTML once per Session.
func NewMermaidEngine(b *browser.Browser, hostHTML string) *MermaidEngine {
	return &MermaidEngine{browser: b, hostHTML: hostHTML}
}

const initJS = `(cfg) => {
	if (typeof mermaid === 'undefined') { throw new Error('mermaid not loaded'); }
	mermaid.initialize(cfg);
	return true;
}`

const renderJS = `async (id, src) => {
	try {
		const out = await mermaid.render(id, src);
		return out.svg;
	} finally {
		const stray = document.getElementById('d' + id);
		if (stray) { stray.remove(); }
	}
}`

// Render implements Engine.
func (e *MermaidEngine) Render(ctx context.Context, sess *Session, source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptyDiagram
	}

	v, err := sess.Resource(mermaidResource, func() (any, func(), error) {
		page, release, err := e.browser.OpenHTML(ctx, e.hostHTML)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrEngineInit, err)
		}
		if _, err := page.Eval(initJS, Config()); err != nil {
			release()
			return nil, nil, fmt.Errorf("%w: %v", ErrEngineInit, err)
		}
		return page, release, nil
	})
	if err != nil {
		return "", err
	}

	page := v.(*rod.Page).Context(ctx)
	res, err := page.Eval(renderJS, sess.NextID(), source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	svg := res.Value.Str()
	if svg == "" {
		return "", fmt.Errorf("%w: empty output", ErrRender)
	}
	return svg, nil
}

// CLIEngine renders with the mermaid-cli binary (mmdc). It needs no browser
// of its own but spawns one process per diagram.
type CLIEngine struct {
	Bin     string
	Timeout time.Duration
}

// DefaultCLITimeout bounds one mmdc run.
const DefaultCLITimeout = 30 * time.Second

// NewCLIEngine locates mmdc on PATH.
func NewCLIEngine() (*CLIEngine, error) {
	bin, err := exec.LookPath("mmdc")
	if err != nil {
		return nil, fmt.Errorf("%w: mmdc not found: %v", ErrEngineInit, err)
	}
	return &CLIEngine{Bin: bin, Timeout: DefaultCLITimeout}, nil
}

// Render implements Engine.
func (e *CLIEngine) Render(ctx context.Context, sess *Session, source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptyDiagram
	}

	tmpDir, err := os.MkdirTemp("", "mdpdf-mmdc-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	cfg, err := json.Marshal(Config())
	if err != nil {
		return "", err
	}
	inPath := filepath.Join(tmpDir, sess.NextID()+".mmd")
	outPath := filepath.Join(tmpDir, "out.svg")
	cfgPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(inPath, []byte(source), 0o600); err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, cfg, 0o600); err != nil {
		return "", err
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultCLITimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Bin, // #nosec G204 -- binary resolved via LookPath
		"-i", inPath,
		"-o", outPath,
		"-c", cfgPath,
		"-b", "white",
		"--quiet",
	)
	// mmdc writes temp files next to input; keep cwd in tmpdir
	cmd.Dir = tmpDir

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: mmdc: %v: %s", ErrRender, err, strings.TrimSpace(string(output)))
	}

	data, err := os.ReadFile(outPath) // #nosec G304 -- path inside our temp dir
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: mmdc produced empty svg", ErrRender)
	}
	return string(data), nil
}
