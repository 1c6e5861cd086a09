package theme

import "errors"

// Sentinel errors for theme operations.
var (
	// ErrThemeNotFound indicates no custom theme exists for the identifier.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidColor indicates a color is neither hex nor a known color name.
	ErrInvalidColor = errors.New("invalid color")

	// ErrNegativeValue indicates a size or spacing field is below zero.
	ErrNegativeValue = errors.New("negative value")

	// ErrEmptyThemeName indicates a custom theme was saved without a name.
	ErrEmptyThemeName = errors.New("theme name cannot be empty")
)
