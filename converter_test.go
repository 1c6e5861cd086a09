package mdpdf

// Notes:
// - Convert is tested with a capturing encoder so the assembled page tree can
//   be inspected without decoding PDF bytes.
// - Diagram tests stub the engine and use the pure-Go rasterizer: no Chrome.
// - One test runs the native encoder end to end; it needs no browser either.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-mdpdf/internal/diagram"
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/theme"
	"github.com/alnah/go-mdpdf/internal/themestore"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

const stubSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="60"><rect x="10" y="10" width="80" height="40" fill="#1a56db"/></svg>`

type stubEngine struct {
	err   error
	calls int
}

func (s *stubEngine) Render(_ context.Context, _ *diagram.Session, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return stubSVG, nil
}

type captureEncoder struct {
	tree  *layout.PageTree
	err   error
	panic bool
}

func (e *captureEncoder) Encode(_ context.Context, tree *layout.PageTree) ([]byte, error) {
	if e.panic {
		panic("encoder exploded")
	}
	e.tree = tree
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-1.3 stub"), nil
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *captureEncoder) {
	t.Helper()
	enc := &captureEncoder{}
	conv, err := NewConverter(append([]Option{WithEncoder(enc)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv, enc
}

func convertTree(t *testing.T, conv *Converter, enc *captureEncoder, in Input) *layout.PageTree {
	t.Helper()
	if _, err := conv.Convert(context.Background(), in); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if enc.tree == nil {
		t.Fatal("encoder was not called")
	}
	return enc.tree
}

func fragmentsText(frags []inline.Fragment) string {
	return inline.Text(frags)
}

// ---------------------------------------------------------------------------
// TestInput_Validate - Trust boundary
// ---------------------------------------------------------------------------

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	neg, wide := -1.0, 288.0
	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"valid minimal", Input{Markdown: "# Hi"}, nil},
		{"empty markdown", Input{}, ErrEmptyMarkdown},
		{"valid full", Input{Markdown: "x", Options: Options{
			PageSize: "Letter", Orientation: "landscape", Margins: UniformMargins(20),
			Style: "no-such-theme", EmojiMode: "replace",
		}}, nil},
		{"bad page size", Input{Markdown: "x", Options: Options{PageSize: "b5"}}, ErrInvalidPageSize},
		{"bad orientation", Input{Markdown: "x", Options: Options{Orientation: "diagonal"}}, ErrInvalidOrientation},
		{"negative margin", Input{Markdown: "x", Options: Options{Margins: Margins{Left: &neg}}}, ErrInvalidMargin},
		{"margins wider than page", Input{Markdown: "x", Options: Options{
			PageSize: PageSizeA5, Margins: Margins{Left: &wide, Right: &wide},
		}}, ErrInvalidMargin},
		{"bad emoji mode", Input{Markdown: "x", Options: Options{EmojiMode: "keep"}}, ErrInvalidEmojiMode},
		{"title too long", Input{Markdown: "x", Options: Options{Title: strings.Repeat("t", MaxTitleLength+1)}}, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.input.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Pipeline behavior
// ---------------------------------------------------------------------------

func TestConvert_HeadingAndParagraph(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t)
	tree := convertTree(t, conv, enc, Input{
		Markdown: "# Title\n\nHello **world**.",
		Options:  Options{Style: StyleModern},
	})

	if len(tree.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(tree.Elements))
	}
	h, ok := tree.Elements[0].(layout.HeadingElement)
	if !ok || h.Level != 1 || fragmentsText(h.Fragments) != "Title" {
		t.Errorf("element 0 = %#v, want level-1 heading \"Title\"", tree.Elements[0])
	}
	p, ok := tree.Elements[1].(layout.ParagraphElement)
	if !ok || fragmentsText(p.Fragments) != "Hello world." {
		t.Errorf("element 1 = %#v, want paragraph \"Hello world.\"", tree.Elements[1])
	}
	if h.Style.FontSize <= p.Style.FontSize {
		t.Errorf("heading1 size %.1f should exceed paragraph size %.1f", h.Style.FontSize, p.Style.FontSize)
	}
	if tree.Styles.Name != StyleModern {
		t.Errorf("style sheet = %q, want modern", tree.Styles.Name)
	}
}

func TestConvert_BlockCountRoundTrip(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t)
	tree := convertTree(t, conv, enc, Input{
		Markdown: "# One\n\nfirst para\n\n## Two\n\nsecond\npara\n\n---\n\nthird",
	})
	// heading, paragraph, heading, paragraph, rule, paragraph
	if len(tree.Elements) != 6 {
		t.Errorf("got %d elements, want 6", len(tree.Elements))
	}
}

func TestConvert_ListThenParagraph(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t)
	tree := convertTree(t, conv, enc, Input{Markdown: "- a\n- b\n\nNext paragraph"})

	if len(tree.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(tree.Elements))
	}
	list, ok := tree.Elements[0].(layout.ListElement)
	if !ok || len(list.Items) != 2 || list.Ordered {
		t.Fatalf("element 0 = %#v, want unordered list of 2", tree.Elements[0])
	}
	if fragmentsText(list.Items[0]) != "a" || fragmentsText(list.Items[1]) != "b" {
		t.Errorf("items = %q, %q", fragmentsText(list.Items[0]), fragmentsText(list.Items[1]))
	}
	if p, ok := tree.Elements[1].(layout.ParagraphElement); !ok || fragmentsText(p.Fragments) != "Next paragraph" {
		t.Errorf("element 1 = %#v, want paragraph", tree.Elements[1])
	}
}

func TestConvert_DiagramEngineRejects(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{err: errors.New("parse error on line 2")}
	conv, enc := newTestConverter(t, WithDiagramEngine(engine))
	tree := convertTree(t, conv, enc, Input{Markdown: "```mermaid\nflowchart TD\nA-->B\n```"})

	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1", engine.calls)
	}
	for _, el := range tree.Elements {
		if _, ok := el.(layout.ImageElement); ok {
			t.Error("rejected diagram produced an image")
		}
	}
	if len(tree.Elements) != 1 {
		t.Fatalf("got %d elements, want 1 fallback code block", len(tree.Elements))
	}
	code, ok := tree.Elements[0].(layout.CodeBlockElement)
	if !ok || !strings.Contains(strings.Join(code.Lines, "\n"), "A-->B") {
		t.Errorf("fallback = %#v, want code block with diagram source", tree.Elements[0])
	}
}

func TestConvert_DiagramRendered(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t,
		WithDiagramEngine(&stubEngine{}),
		WithRasterizer(diagram.NewVectorRasterizer()),
	)
	tree := convertTree(t, conv, enc, Input{
		Markdown: "before\n\n```mermaid\nflowchart TD\nA-->B\n```\n\nafter",
	})

	if len(tree.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(tree.Elements))
	}
	img, ok := tree.Elements[1].(layout.ImageElement)
	if !ok {
		t.Fatalf("element 1 = %T, want ImageElement", tree.Elements[1])
	}
	if !strings.HasPrefix(img.URI, "data:image/png;base64,") {
		t.Errorf("image URI = %.40q, want PNG data URI", img.URI)
	}
	if img.Width <= 0 || img.Height <= 0 {
		t.Errorf("image size = %.1fx%.1f, want positive", img.Width, img.Height)
	}
}

func TestConvert_DiagramsDisabled(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{}
	conv, enc := newTestConverter(t, WithDiagramEngine(engine), WithDiagramsDisabled())
	tree := convertTree(t, conv, enc, Input{Markdown: "```mermaid\nflowchart TD\nA-->B\n```"})

	if engine.calls != 0 {
		t.Errorf("engine called %d times with diagrams disabled", engine.calls)
	}
	if _, ok := tree.Elements[0].(layout.CodeBlockElement); !ok {
		t.Errorf("element 0 = %T, want CodeBlockElement", tree.Elements[0])
	}
}

func TestConvert_EmojiModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode string
		want string
	}{
		{"", "Launch "},
		{EmojiRemove, "Launch "},
		{EmojiReplace, "Launch [Rocket]"},
	}

	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			t.Parallel()
			conv, enc := newTestConverter(t)
			tree := convertTree(t, conv, enc, Input{
				Markdown: "Launch 🚀",
				Options:  Options{EmojiMode: tt.mode},
			})
			p := tree.Elements[0].(layout.ParagraphElement)
			if got := fragmentsText(p.Fragments); strings.TrimSpace(got) != strings.TrimSpace(tt.want) {
				t.Errorf("paragraph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvert_Metadata(t *testing.T) {
	t.Parallel()

	t.Run("title from first level-1 heading", func(t *testing.T) {
		t.Parallel()
		conv, enc := newTestConverter(t)
		tree := convertTree(t, conv, enc, Input{Markdown: "## Sub\n\n# The [Guide](https://x.test)\n\n# Later"})
		if tree.Metadata.Title != "The Guide" {
			t.Errorf("title = %q, want %q", tree.Metadata.Title, "The Guide")
		}
	})

	t.Run("explicit metadata wins", func(t *testing.T) {
		t.Parallel()
		conv, enc := newTestConverter(t)
		tree := convertTree(t, conv, enc, Input{
			Markdown: "# Heading",
			Options:  Options{Title: "Report", Author: "Ops", Subject: "Q3"},
		})
		want := layout.Metadata{Title: "Report", Author: "Ops", Subject: "Q3"}
		if tree.Metadata != want {
			t.Errorf("metadata = %+v, want %+v", tree.Metadata, want)
		}
	})
}

func TestConvert_PageSettings(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t)
	top := 72.0
	tree := convertTree(t, conv, enc, Input{
		Markdown: "text",
		Options: Options{
			PageSize:    PageSizeLetter,
			Orientation: OrientationLandscape,
			Margins:     Margins{Top: &top},
		},
	})

	if tree.Page.Width != 792 || tree.Page.Height != 612 {
		t.Errorf("page = %.0fx%.0f, want 792x612", tree.Page.Width, tree.Page.Height)
	}
	if tree.Page.Margin.Top != 72 || tree.Page.Margin.Left != DefaultMargin {
		t.Errorf("margins = %+v", tree.Page.Margin)
	}
}

func TestConvert_CustomThemes(t *testing.T) {
	t.Parallel()

	store := themestore.NewMemoryStore()
	brand, err := store.Create(theme.Theme{Name: "Brand", Colors: theme.Colors{Heading1: "#ff0000"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	gone, err := store.Create(theme.Theme{Name: "Gone"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Delete(gone.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	tests := []struct {
		name     string
		style    string
		wantName string
	}{
		{"custom theme by id", brand.ID, "Brand"},
		{"deleted theme falls back", gone.ID, StyleModern},
		{"unknown name falls back", "no-such-theme", StyleModern},
		{"preset", StyleClassic, StyleClassic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			conv, enc := newTestConverter(t, WithThemeStore(store))
			tree := convertTree(t, conv, enc, Input{Markdown: "# H", Options: Options{Style: tt.style}})
			if tree.Styles.Name != tt.wantName {
				t.Errorf("style sheet = %q, want %q", tree.Styles.Name, tt.wantName)
			}
			if err := tree.Styles.Validate(); err != nil {
				t.Errorf("style sheet incomplete: %v", err)
			}
		})
	}

	conv, enc := newTestConverter(t, WithThemeStore(store))
	tree := convertTree(t, conv, enc, Input{Markdown: "# H", Options: Options{Style: brand.ID}})
	if got := tree.Styles.Heading1.Color.Hex(); got != "#ff0000" {
		t.Errorf("custom heading1 color = %s, want #ff0000", got)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Errors
// ---------------------------------------------------------------------------

func TestConvert_ValidationError(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t)
	_, err := conv.Convert(context.Background(), Input{Markdown: "x", Options: Options{PageSize: "tabloid"}})
	if !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("error = %v, want ErrInvalidPageSize", err)
	}
	if enc.tree != nil {
		t.Error("encoder called despite invalid input")
	}
}

func TestConvert_EncoderError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	conv, err := NewConverter(WithEncoder(&captureEncoder{err: cause}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	_, err = conv.Convert(context.Background(), Input{Markdown: "x"})
	if !errors.Is(err, ErrConversion) {
		t.Errorf("error = %v, want ErrConversion", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want cause preserved", err)
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithEncoder(&captureEncoder{panic: true}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), Input{Markdown: "x"})
	if res != nil {
		t.Error("expected nil result after panic")
	}
	if !errors.Is(err, ErrConversion) {
		t.Errorf("error = %v, want ErrConversion", err)
	}
}

func TestConvert_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv, enc := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if enc.tree != nil {
		t.Error("encoder called after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Native encoder end to end
// ---------------------------------------------------------------------------

func TestConvert_NativePDF(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithPageNumbers(true))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), Input{
		Markdown: "# Report\n\nSee [docs](https://example.com).\n\n> quoted\n\n```go\nfunc main() {}\n```\n\n1. one\n2. two",
		Options:  Options{Style: StyleTechnical, Author: "Ops"},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.HasPrefix(string(res.PDF), "%PDF-") {
		t.Errorf("output does not start with %%PDF-: %.10q", res.PDF)
	}
	if res.Size != len(res.PDF) {
		t.Errorf("Size = %d, len(PDF) = %d", res.Size, len(res.PDF))
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Construction
// ---------------------------------------------------------------------------

func TestNewConverter_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithAssetPath("/definitely/not/here"))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewConverter_AssetPathOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conv, err := NewConverter(WithAssetPath(dir), WithDiagramsDisabled())
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	// Nothing under dir: every asset falls back to the embedded copy.
	if _, err := conv.Preview(context.Background(), "# ok", ""); err != nil {
		t.Errorf("Preview() error = %v", err)
	}
}

func TestConverter_CloseWithoutUse(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestPreview - HTML preview
// ---------------------------------------------------------------------------

func TestPreview(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	html, err := conv.Preview(context.Background(), "# Notes\n\nSome **bold** text.", StyleClassic)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	for _, want := range []string{"<title>Notes</title>", "<strong>bold</strong>", "h1 {"} {
		if !strings.Contains(html, want) {
			t.Errorf("preview missing %q", want)
		}
	}

	if _, err := conv.Preview(context.Background(), "", ""); !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("Preview(\"\") error = %v, want ErrEmptyMarkdown", err)
	}
}

// ---------------------------------------------------------------------------
// TestResult - Handle lifecycle
// ---------------------------------------------------------------------------

func TestResult_HandleAndRelease(t *testing.T) {
	t.Parallel()

	res := newResult([]byte("%PDF-1.3 body"))

	path, err := res.Handle()
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	again, err := res.Handle()
	if err != nil || again != path {
		t.Errorf("second Handle() = %q, %v; want %q", again, err, path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.3 body" {
		t.Fatalf("handle content = %q, %v", data, err)
	}

	if err := res.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file survived Release: %v", err)
	}
	if err := res.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
	if _, err := res.Handle(); !errors.Is(err, ErrResultReleased) {
		t.Errorf("Handle() after Release error = %v, want ErrResultReleased", err)
	}
}

func TestResult_ReleaseWithoutHandle(t *testing.T) {
	t.Parallel()

	res := newResult([]byte("x"))
	if err := res.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}
