package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MDPDF_"

// Environment variable names, without EnvPrefix.
const (
	EnvOutputDir    = "OUTPUT_DIR"
	EnvEncoder      = "ENCODER"
	EnvPageNumbers  = "PAGE_NUMBERS"
	EnvPageSize     = "PAGE_SIZE"
	EnvOrientation  = "ORIENTATION"
	EnvMargin       = "MARGIN"
	EnvStyle        = "STYLE"
	EnvThemesDir    = "THEMES_DIR"
	EnvEmoji        = "EMOJI"
	EnvDiagrams     = "DIAGRAMS"
	EnvEngine       = "DIAGRAM_ENGINE"
	EnvMermaidURL   = "MERMAID_SCRIPT"
	EnvDiagramScale = "DIAGRAM_SCALE"
	EnvTitle        = "TITLE"
	EnvAuthor       = "AUTHOR"
	EnvSubject      = "SUBJECT"
	EnvAssets       = "ASSETS"
)

// ApplyEnv overrides c with MDPDF_* variables read through getenv.
// Unset or empty variables leave the field alone. The result is validated.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	get := func(name string) string {
		return strings.TrimSpace(getenv(EnvPrefix + name))
	}
	str := func(name string, dst *string) {
		if v := get(name); v != "" {
			*dst = v
		}
	}

	str(EnvOutputDir, &c.Output.DefaultDir)
	str(EnvEncoder, &c.Output.Encoder)
	str(EnvPageSize, &c.Page.Size)
	str(EnvOrientation, &c.Page.Orientation)
	str(EnvStyle, &c.Style.Preset)
	str(EnvThemesDir, &c.Style.ThemesDir)
	str(EnvEmoji, &c.Emoji.Mode)
	str(EnvEngine, &c.Diagrams.Engine)
	str(EnvMermaidURL, &c.Diagrams.ScriptURL)
	str(EnvTitle, &c.Document.Title)
	str(EnvAuthor, &c.Document.Author)
	str(EnvSubject, &c.Document.Subject)
	str(EnvAssets, &c.Assets.BasePath)

	if v := get(EnvPageNumbers); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, EnvPrefix, EnvPageNumbers, v, err)
		}
		c.Output.PageNumbers = b
	}
	if v := get(EnvDiagrams); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, EnvPrefix, EnvDiagrams, v, err)
		}
		c.Diagrams.Enabled = &b
	}
	if v := get(EnvDiagramScale); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, EnvPrefix, EnvDiagramScale, v, err)
		}
		c.Diagrams.Scale = f
	}
	if v := get(EnvMargin); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, EnvPrefix, EnvMargin, v, err)
		}
		c.Page.Margins = MarginsConfig{Top: &f, Right: &f, Bottom: &f, Left: &f}
	}

	return c.Validate()
}
