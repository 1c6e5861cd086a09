package themestore

import "errors"

// Sentinel errors for theme store operations.
// Missing themes are reported with theme.ErrThemeNotFound.
var (
	ErrInvalidThemeID = errors.New("invalid theme id")
	ErrCorruptTheme   = errors.New("corrupt theme file")
	ErrEmptyStoreDir  = errors.New("theme store directory cannot be empty")
)
