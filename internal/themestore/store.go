package themestore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-mdpdf/internal/theme"
)

// Store is the full read/write contract used by the CLI. The conversion core only
// needs the theme.Store subset.
type Store interface {
	theme.Store
	Create(t theme.Theme) (theme.Theme, error)
	Update(t theme.Theme) (theme.Theme, error)
	Delete(id string) error
}

// Compile-time interface checks.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// ValidateID rejects ids that could escape the store directory.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidThemeID)
	}
	if strings.ContainsAny(id, "/\\\x00") || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidThemeID, id)
	}
	return nil
}

// clone deep-copies spacing so callers cannot mutate stored state.
func clone(t theme.Theme) theme.Theme {
	t.Spacing = t.Spacing.Clone()
	return t
}

func sortByName(themes []theme.Theme) {
	sort.SliceStable(themes, func(i, j int) bool {
		if themes[i].Name == themes[j].Name {
			return themes[i].ID < themes[j].ID
		}
		return themes[i].Name < themes[j].Name
	})
}
