package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdpdf/internal/emoji"
	"github.com/alnah/go-mdpdf/internal/layout"
)

func ptr(v float64) *float64 { return &v }

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Output.Encoder != EncoderNative {
		t.Errorf("Output.Encoder = %q, want %q", cfg.Output.Encoder, EncoderNative)
	}
	if cfg.Page.Size != string(layout.PageA4) {
		t.Errorf("Page.Size = %q, want a4", cfg.Page.Size)
	}
	if !cfg.Diagrams.IsEnabled() {
		t.Error("diagrams should be enabled by default")
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.max)
			if tt.wantErr != errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	off := false
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"chrome encoder", func(c *Config) { c.Output.Encoder = "Chrome" }, nil},
		{"unknown encoder", func(c *Config) { c.Output.Encoder = "latex" }, ErrInvalidValue},
		{"letter landscape", func(c *Config) { c.Page.Size, c.Page.Orientation = "letter", "landscape" }, nil},
		{"bad page size", func(c *Config) { c.Page.Size = "b5" }, layout.ErrInvalidPageSize},
		{"bad orientation", func(c *Config) { c.Page.Orientation = "diagonal" }, layout.ErrInvalidOrientation},
		{"negative margin", func(c *Config) { c.Page.Margins.Left = ptr(-1) }, layout.ErrInvalidMargin},
		{"huge margin", func(c *Config) { c.Page.Margins.Top = ptr(1000) }, layout.ErrInvalidMargin},
		{"replace emoji", func(c *Config) { c.Emoji.Mode = "replace" }, nil},
		{"bad emoji mode", func(c *Config) { c.Emoji.Mode = "keep" }, emoji.ErrInvalidMode},
		{"cli engine", func(c *Config) { c.Diagrams.Engine = "cli" }, nil},
		{"bad engine", func(c *Config) { c.Diagrams.Engine = "graphviz" }, ErrInvalidValue},
		{"scale out of range", func(c *Config) { c.Diagrams.Scale = 8 }, ErrInvalidValue},
		{"diagrams off", func(c *Config) { c.Diagrams.Enabled = &off }, nil},
		{"title too long", func(c *Config) { c.Document.Title = strings.Repeat("x", MaxTitleLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
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

func TestPageConfig_Layout(t *testing.T) {
	t.Parallel()

	pc := PageConfig{Size: "a5", Orientation: "landscape", Margins: MarginsConfig{Top: ptr(10)}}
	page := pc.Layout().Resolve()

	if page.Width <= page.Height {
		t.Errorf("landscape page %vx%v should be wider than tall", page.Width, page.Height)
	}
	if page.Margin.Top != 10 || page.Margin.Left != layout.DefaultMargin {
		t.Errorf("margins = %+v, want top 10 and default elsewhere", page.Margin)
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "doc.yaml", `
output:
  encoder: chrome
  pageNumbers: true
page:
  size: letter
  orientation: landscape
  margins:
    top: 50
    left: 20
style:
  preset: classic
emoji:
  mode: replace
diagrams:
  enabled: false
  scale: 3
document:
  title: Handbook
  author: Platform Team
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Encoder != EncoderChrome || !cfg.Output.PageNumbers {
			t.Errorf("output = %+v", cfg.Output)
		}
		if cfg.Page.Margins.Top == nil || *cfg.Page.Margins.Top != 50 || cfg.Page.Margins.Right != nil {
			t.Errorf("margins = %+v", cfg.Page.Margins)
		}
		if cfg.Diagrams.IsEnabled() || cfg.Diagrams.Scale != 3 {
			t.Errorf("diagrams = %+v", cfg.Diagrams)
		}
		if cfg.Document.Title != "Handbook" {
			t.Errorf("title = %q", cfg.Document.Title)
		}
		if cfg.Diagrams.Engine != EngineBrowser {
			t.Errorf("unset fields should keep defaults, engine = %q", cfg.Diagrams.Engine)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "page:\n  color: red\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "page:\n  size: b5\n")
		if _, err := LoadConfig(path); !errors.Is(err, layout.ErrInvalidPageSize) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidPageSize", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
		}
	})
}

// Changes the working directory and environment: not parallel.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)

	writeConfig(t, dir, "work.yml", "style:\n  preset: minimal\n")

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig(work) error = %v", err)
	}
	if cfg.Style.Preset != "minimal" {
		t.Errorf("preset = %q, want minimal", cfg.Style.Preset)
	}

	_, err = LoadConfig("absent")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(absent) error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "absent.yaml") {
		t.Errorf("error should list tried paths: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		check   func(*testing.T, *Config)
		wantErr error
	}{
		{
			name: "strings and flags",
			env: map[string]string{
				"MDPDF_STYLE":        "technical",
				"MDPDF_ENCODER":      "chrome",
				"MDPDF_DIAGRAMS":     "false",
				"MDPDF_MARGIN":       "24",
				"MDPDF_PAGE_NUMBERS": "1",
				"MDPDF_TITLE":        "  Spaced  ",
			},
			check: func(t *testing.T, c *Config) {
				if c.Style.Preset != "technical" || c.Output.Encoder != "chrome" {
					t.Errorf("style/encoder = %q/%q", c.Style.Preset, c.Output.Encoder)
				}
				if c.Diagrams.IsEnabled() {
					t.Error("MDPDF_DIAGRAMS=false should disable diagrams")
				}
				if *c.Page.Margins.Left != 24 || *c.Page.Margins.Bottom != 24 {
					t.Errorf("margins = %+v", c.Page.Margins)
				}
				if !c.Output.PageNumbers {
					t.Error("page numbers should be on")
				}
				if c.Document.Title != "Spaced" {
					t.Errorf("title = %q", c.Document.Title)
				}
			},
		},
		{
			name: "empty leaves defaults",
			env:  map[string]string{"MDPDF_STYLE": ""},
			check: func(t *testing.T, c *Config) {
				if c.Style.Preset != "" {
					t.Errorf("preset = %q, want empty", c.Style.Preset)
				}
			},
		},
		{name: "bad bool", env: map[string]string{"MDPDF_DIAGRAMS": "maybe"}, wantErr: ErrInvalidValue},
		{name: "bad number", env: map[string]string{"MDPDF_MARGIN": "wide"}, wantErr: ErrInvalidValue},
		{name: "invalid value validated", env: map[string]string{"MDPDF_EMOJI": "keep"}, wantErr: emoji.ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			err := cfg.ApplyEnv(func(k string) string { return tt.env[k] })
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ApplyEnv() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}
