package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// marginUnset detects if a margin flag was explicitly set.
// Margins must be >= 0, so any negative value is safely outside the range.
const marginUnset = -1.0

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags. Margins are in points.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
	top         float64
	right       float64
	bottom      float64
	left        float64
}

// documentFlags holds PDF metadata flags.
type documentFlags struct {
	title   string
	author  string
	subject string
}

// styleFlags holds theme selection flags.
type styleFlags struct {
	preset    string
	themesDir string
}

// diagramFlags holds diagram rendering flags.
type diagramFlags struct {
	disabled      bool
	engine        string
	mermaidScript string
	scale         float64
}

// renderFlags holds encoder and text handling flags.
type renderFlags struct {
	encoder     string
	pageNumbers bool
	emoji       string
	assetPath   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	preview  bool
	page     pageFlags
	document documentFlags
	style    styleFlags
	diagrams diagramFlags
	render   renderFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a3, a4, a5, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", marginUnset, "margin on every side in points")
	fs.Float64Var(&f.top, "margin-top", marginUnset, "top margin in points")
	fs.Float64Var(&f.right, "margin-right", marginUnset, "right margin in points")
	fs.Float64Var(&f.bottom, "margin-bottom", marginUnset, "bottom margin in points")
	fs.Float64Var(&f.left, "margin-left", marginUnset, "left margin in points")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first H1)")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.subject, "subject", "", "document subject")
}

// addStyleFlags adds theme flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.preset, "style", "s", "", "preset name or custom theme id")
	fs.StringVar(&f.themesDir, "themes-dir", "", "custom theme directory")
}

// addDiagramFlags adds diagram flags to a FlagSet.
func addDiagramFlags(fs *flag.FlagSet, f *diagramFlags) {
	fs.BoolVar(&f.disabled, "no-diagrams", false, "render mermaid fences as code")
	fs.StringVar(&f.engine, "diagram-engine", "", "diagram engine: browser, cli")
	fs.StringVar(&f.mermaidScript, "mermaid-script", "", "mermaid.js path or URL")
	fs.Float64Var(&f.scale, "diagram-scale", 0, "diagram supersampling factor (1-4)")
}

// addRenderFlags adds encoder flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.encoder, "encoder", "", "PDF encoder: native, chrome")
	fs.BoolVar(&f.pageNumbers, "page-numbers", false, "number pages (native encoder)")
	fs.StringVar(&f.emoji, "emoji", "", "emoji handling: remove, replace")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.preview, "preview", false, "also write an HTML preview")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addDocumentFlags(fs, &f.document)
	addStyleFlags(fs, &f.style)
	addDiagramFlags(fs, &f.diagrams)
	addRenderFlags(fs, &f.render)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
