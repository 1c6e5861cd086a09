package theme

import (
	"errors"

	"go.uber.org/zap"
)

// Store is the read side of custom theme storage. The resolver never writes.
type Store interface {
	// GetTheme returns the theme for id, or ErrThemeNotFound.
	GetTheme(id string) (*Theme, error)
	// ListThemes returns all stored themes.
	ListThemes() ([]Theme, error)
}

// Source tells where a resolved style sheet came from.
type Source int

const (
	SourcePreset Source = iota
	SourceCustom
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourcePreset:
		return "preset"
	case SourceCustom:
		return "custom"
	default:
		return "fallback"
	}
}

// Resolver maps preset names and custom theme ids to style sheets.
type Resolver struct {
	store  Store
	logger *zap.Logger
}

// NewResolver creates a Resolver. store may be nil (presets only).
// A nil logger is replaced by a no-op logger.
func NewResolver(store Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the style sheet for presetOrID. It never fails: unknown or
// deleted identifiers resolve to the default preset.
func (r *Resolver) Resolve(presetOrID string) StyleSheet {
	sheet, _ := r.ResolveWithSource(presetOrID)
	return sheet
}

// ResolveWithSource is Resolve plus the origin of the result.
func (r *Resolver) ResolveWithSource(presetOrID string) (StyleSheet, Source) {
	if sheet, ok := Preset(presetOrID); ok {
		return sheet, SourcePreset
	}

	if presetOrID != "" && r.store != nil {
		t, err := r.store.GetTheme(presetOrID)
		switch {
		case err == nil && t != nil:
			return Custom(*t), SourceCustom
		case err != nil && !errors.Is(err, ErrThemeNotFound):
			r.logger.Warn("theme lookup failed, using default preset",
				zap.String("theme", presetOrID), zap.Error(err))
		default:
			r.logger.Debug("theme not found, using default preset", zap.String("theme", presetOrID))
		}
	}

	sheet, _ := Preset(DefaultPreset)
	return sheet, SourceFallback
}

// Custom synthesizes a style sheet from a user-authored theme. Missing or
// invalid fields inherit from the default preset's theme.
func Custom(t Theme) StyleSheet {
	base, _ := PresetTheme(DefaultPreset)
	sheet := t.withDefaults(base).StyleSheet()
	if sheet.Name == "" {
		sheet.Name = t.ID
	}
	return sheet
}
