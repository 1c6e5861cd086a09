package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/emoji"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-mdpdf"

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxURLLength     = 2048 // Browser limit
	MaxTitleLength   = 200  // Document title
	MaxAuthorLength  = 100  // Author name
	MaxSubjectLength = 300  // Subject line
	MaxPresetLength  = 100  // Preset name or theme id
	MaxEnumLength    = 20   // "landscape", "replace", "chrome"
)

// Encoder names.
const (
	EncoderNative = "native"
	EncoderChrome = "chrome"
)

// Diagram engine names.
const (
	EngineBrowser = "browser"
	EngineCLI     = "cli"
)

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Style    StyleConfig    `yaml:"style"`
	Emoji    EmojiConfig    `yaml:"emoji"`
	Diagrams DiagramsConfig `yaml:"diagrams"`
	Document DocumentConfig `yaml:"document"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir  string `yaml:"defaultDir"`  // Default output directory (empty = same as source)
	Encoder     string `yaml:"encoder"`     // "native" (default) or "chrome"
	PageNumbers bool   `yaml:"pageNumbers"` // Native encoder only
}

// PageConfig defines PDF page settings. Margins are in points.
type PageConfig struct {
	Size        string        `yaml:"size"`        // a3, a4, a5, letter, legal (default: a4)
	Orientation string        `yaml:"orientation"` // portrait, landscape (default: portrait)
	Margins     MarginsConfig `yaml:"margins"`
}

// MarginsConfig holds per-side margins. Unset sides use the default.
type MarginsConfig struct {
	Top    *float64 `yaml:"top"`
	Right  *float64 `yaml:"right"`
	Bottom *float64 `yaml:"bottom"`
	Left   *float64 `yaml:"left"`
}

// StyleConfig selects the theme.
type StyleConfig struct {
	Preset    string `yaml:"preset"`    // Preset name or custom theme id (empty = modern)
	ThemesDir string `yaml:"themesDir"` // Custom theme directory (empty = user config dir)
}

// EmojiConfig defines emoji handling.
type EmojiConfig struct {
	Mode string `yaml:"mode"` // "remove" (default) or "replace"
}

// DiagramsConfig defines diagram rendering.
type DiagramsConfig struct {
	Enabled   *bool   `yaml:"enabled"`   // nil means enabled
	Engine    string  `yaml:"engine"`    // "browser" (default) or "cli"
	ScriptURL string  `yaml:"scriptURL"` // mermaid.js bundle (empty = CDN)
	Scale     float64 `yaml:"scale"`     // supersampling factor (0 = default)
}

// IsEnabled reports whether diagrams should be rendered.
func (d DiagramsConfig) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// DocumentConfig holds PDF metadata.
type DocumentConfig struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Subject string `yaml:"subject"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Layout converts the page section to the layout package's form.
func (p PageConfig) Layout() layout.PageConfig {
	return layout.PageConfig{
		Size:        layout.PageSize(p.Size),
		Orientation: layout.Orientation(p.Orientation),
		Margins: layout.Margins{
			Top:    p.Margins.Top,
			Right:  p.Margins.Right,
			Bottom: p.Margins.Bottom,
			Left:   p.Margins.Left,
		},
	}
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.encoder", c.Output.Encoder, MaxEnumLength},
		{"page.size", c.Page.Size, MaxEnumLength},
		{"page.orientation", c.Page.Orientation, MaxEnumLength},
		{"style.preset", c.Style.Preset, MaxPresetLength},
		{"style.themesDir", c.Style.ThemesDir, MaxPathLength},
		{"emoji.mode", c.Emoji.Mode, MaxEnumLength},
		{"diagrams.engine", c.Diagrams.Engine, MaxEnumLength},
		{"diagrams.scriptURL", c.Diagrams.ScriptURL, MaxURLLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxAuthorLength},
		{"document.subject", c.Document.Subject, MaxSubjectLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Output.Encoder) {
	case "", EncoderNative, EncoderChrome:
	default:
		return fmt.Errorf("%w: output.encoder %q (must be native or chrome)", ErrInvalidValue, c.Output.Encoder)
	}

	if err := c.Page.Layout().Validate(); err != nil {
		return fmt.Errorf("page: %w", err)
	}

	if _, err := emoji.ParseMode(c.Emoji.Mode); err != nil {
		return fmt.Errorf("emoji.mode: %w", err)
	}

	switch strings.ToLower(c.Diagrams.Engine) {
	case "", EngineBrowser, EngineCLI:
	default:
		return fmt.Errorf("%w: diagrams.engine %q (must be browser or cli)", ErrInvalidValue, c.Diagrams.Engine)
	}
	if c.Diagrams.Scale != 0 && (c.Diagrams.Scale < 1 || c.Diagrams.Scale > 4) {
		return fmt.Errorf("%w: diagrams.scale must be between 1 and 4, got %.2f", ErrInvalidValue, c.Diagrams.Scale)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Encoder: EncoderNative},
		Page: PageConfig{
			Size:        string(layout.DefaultPageSize),
			Orientation: string(layout.DefaultOrientation),
		},
		Emoji:    EmojiConfig{Mode: string(emoji.ModeRemove)},
		Diagrams: DiagramsConfig{Engine: EngineBrowser},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UserDir returns the per-user configuration directory of the tool.
func UserDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

// DefaultThemesDir is where custom themes live unless style.themesDir says otherwise.
func DefaultThemesDir() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdpdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userDir, err := UserDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
