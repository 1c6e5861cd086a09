package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/diagram"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
	"github.com/alnah/go-mdpdf/internal/themestore"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	options mdpdf.Options
	preview bool
	native  bool
	logger  *zap.Logger
	now     func() time.Time
}

// clock returns the time source for per-file durations.
func (p *conversionParams) clock() func() time.Time {
	if p.now == nil {
		return time.Now
	}
	return p.now
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	timeout, err := parseTimeout(flags.timeout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	opts, err := converterOptions(cfg, logger, timeout)
	if err != nil {
		return err
	}

	size := mdpdf.ResolvePoolSize(flags.workers)
	if size > len(files) {
		size = len(files)
	}
	logger.Debug("starting conversion", zap.Int("files", len(files)), zap.Int("workers", size))

	pool := env.NewPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", zap.Error(err))
		}
	}()

	params := &conversionParams{
		options: documentOptions(cfg),
		preview: flags.preview,
		native:  !strings.EqualFold(cfg.Output.Encoder, config.EncoderChrome),
		logger:  logger,
		now:     env.Now,
	}

	results := convertBatch(ctx, pool, files, params)

	failed, firstErr := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failed, firstErr)
	}

	return nil
}

// loadConfig reads the named config (or the defaults) and applies MDPDF_*
// overrides on top of it.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				var searched []string
				if dir, derr := config.UserDir(); derr == nil {
					searched = append(searched, filepath.Join(dir, name+".yaml"))
				}
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searched))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(env.getenv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	str := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}

	// Page
	str(f.page.size, &cfg.Page.Size)
	str(f.page.orientation, &cfg.Page.Orientation)
	if f.page.margin != marginUnset {
		m := f.page.margin
		cfg.Page.Margins = config.MarginsConfig{Top: &m, Right: &m, Bottom: &m, Left: &m}
	}
	side := func(v float64, dst **float64) {
		if v != marginUnset {
			*dst = &v
		}
	}
	side(f.page.top, &cfg.Page.Margins.Top)
	side(f.page.right, &cfg.Page.Margins.Right)
	side(f.page.bottom, &cfg.Page.Margins.Bottom)
	side(f.page.left, &cfg.Page.Margins.Left)

	// Document
	str(f.document.title, &cfg.Document.Title)
	str(f.document.author, &cfg.Document.Author)
	str(f.document.subject, &cfg.Document.Subject)

	// Style
	str(f.style.preset, &cfg.Style.Preset)
	str(f.style.themesDir, &cfg.Style.ThemesDir)

	// Diagrams
	if f.diagrams.disabled {
		off := false
		cfg.Diagrams.Enabled = &off
	}
	str(f.diagrams.engine, &cfg.Diagrams.Engine)
	str(f.diagrams.mermaidScript, &cfg.Diagrams.ScriptURL)
	if f.diagrams.scale != 0 {
		cfg.Diagrams.Scale = f.diagrams.scale
	}

	// Rendering
	str(f.render.encoder, &cfg.Output.Encoder)
	if f.render.pageNumbers {
		cfg.Output.PageNumbers = true
	}
	str(f.render.emoji, &cfg.Emoji.Mode)
	str(f.render.assetPath, &cfg.Assets.BasePath)
}

// converterOptions translates the converter-wide part of the config.
func converterOptions(cfg *config.Config, logger *zap.Logger, timeout time.Duration) ([]mdpdf.Option, error) {
	opts := []mdpdf.Option{
		mdpdf.WithLogger(logger),
		mdpdf.WithPageNumbers(cfg.Output.PageNumbers),
	}
	if timeout > 0 {
		opts = append(opts, mdpdf.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if strings.EqualFold(cfg.Output.Encoder, config.EncoderChrome) {
		opts = append(opts, mdpdf.WithChromeEncoder())
	}

	store, err := openThemeStore(cfg, false)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, mdpdf.WithThemeStore(store))
	}

	if !cfg.Diagrams.IsEnabled() {
		return append(opts, mdpdf.WithDiagramsDisabled()), nil
	}
	if cfg.Diagrams.ScriptURL != "" {
		u, err := fileutil.FileURL(cfg.Diagrams.ScriptURL)
		if err != nil {
			return nil, fmt.Errorf("diagrams.scriptURL: %w", err)
		}
		opts = append(opts, mdpdf.WithMermaidScript(u))
	}
	if cfg.Diagrams.Scale != 0 {
		opts = append(opts, mdpdf.WithDiagramScale(cfg.Diagrams.Scale))
	}
	if strings.EqualFold(cfg.Diagrams.Engine, config.EngineCLI) {
		engine, err := diagram.NewCLIEngine()
		if err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForDiagramEngine(config.EngineCLI))
		}
		opts = append(opts, mdpdf.WithDiagramEngine(engine))
	}
	return opts, nil
}

// openThemeStore opens the custom theme directory. An explicit directory is
// created on demand; the per-user default is only read when it exists unless
// create is set.
func openThemeStore(cfg *config.Config, create bool) (*themestore.FileStore, error) {
	dir := cfg.Style.ThemesDir
	if dir == "" {
		def, err := config.DefaultThemesDir()
		if err != nil {
			if create {
				return nil, fmt.Errorf("locating theme directory: %w", err)
			}
			return nil, nil
		}
		if !create && !fileutil.DirExists(def) {
			return nil, nil
		}
		dir = def
	}
	store, err := themestore.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening themes: %w", err)
	}
	return store, nil
}

// documentOptions translates the per-document part of the config.
func documentOptions(cfg *config.Config) mdpdf.Options {
	return mdpdf.Options{
		PageSize:    cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margins: mdpdf.Margins{
			Top:    cfg.Page.Margins.Top,
			Right:  cfg.Page.Margins.Right,
			Bottom: cfg.Page.Margins.Bottom,
			Left:   cfg.Page.Margins.Left,
		},
		Style:     cfg.Style.Preset,
		Title:     cfg.Document.Title,
		Author:    cfg.Document.Author,
		Subject:   cfg.Document.Subject,
		EmojiMode: cfg.Emoji.Mode,
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// parseTimeout parses the --timeout value. Empty means no timeout.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, s)
	}
	return d, nil
}
