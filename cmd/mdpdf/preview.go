package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common        commonFlags
	output        string
	style         styleFlags
	mermaidScript string
	assetPath     string
}

// runPreview renders one markdown file as a standalone HTML page.
// Diagrams are left to mermaid.js in the browser that opens the page.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	f := &previewFlags{}
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: next to the input)")
	fs.StringVar(&f.mermaidScript, "mermaid-script", "", "mermaid.js path or URL")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	fs.Usage = func() { printPreviewUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: preview takes one markdown file", ErrUsage)
	}
	input := fs.Arg(0)
	if err := validateMarkdownExtension(input); err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if f.style.preset != "" {
		cfg.Style.Preset = f.style.preset
	}
	if f.style.themesDir != "" {
		cfg.Style.ThemesDir = f.style.themesDir
	}
	if f.mermaidScript != "" {
		cfg.Diagrams.ScriptURL = f.mermaidScript
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, f.common.quiet, f.common.verbose)
	defer func() { _ = logger.Sync() }()

	opts := []mdpdf.Option{mdpdf.WithLogger(logger), mdpdf.WithDiagramsDisabled()}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Diagrams.ScriptURL != "" {
		u, err := fileutil.FileURL(cfg.Diagrams.ScriptURL)
		if err != nil {
			return fmt.Errorf("diagrams.scriptURL: %w", err)
		}
		opts = append(opts, mdpdf.WithMermaidScript(u))
	}
	store, err := openThemeStore(cfg, false)
	if err != nil {
		return err
	}
	if store != nil {
		opts = append(opts, mdpdf.WithThemeStore(store))
	}

	pool := env.NewPool(1, opts...)
	defer func() { _ = pool.Close() }()
	conv, err := pool.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServiceInit, err)
	}
	defer pool.Release(conv)

	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	page, err := conv.Preview(ctx, string(content), cfg.Style.Preset)
	if err != nil {
		return err
	}

	out := f.output
	if out == "" {
		out = previewOutputPath(input)
	}
	if err := os.MkdirAll(filepath.Dir(out), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(out, []byte(page), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWritePreview, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}
