package themestore

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-mdpdf/internal/theme"
)

// MemoryStore keeps themes in a map. Safe for concurrent use.
type MemoryStore struct {
	// Now stamps CreatedAt/UpdatedAt. Defaults to time.Now.
	Now func() time.Time

	mu     sync.RWMutex
	themes map[string]theme.Theme
}

// NewMemoryStore returns a store pre-populated with seed themes.
// Seed themes keep their ids; entries without one get a fresh UUID.
func NewMemoryStore(seed ...theme.Theme) *MemoryStore {
	s := &MemoryStore{themes: make(map[string]theme.Theme, len(seed))}
	for _, t := range seed {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		s.themes[t.ID] = clone(t)
	}
	return s
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetTheme returns a copy of the stored theme.
func (s *MemoryStore) GetTheme(id string) (*theme.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.themes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", theme.ErrThemeNotFound, id)
	}
	c := clone(t)
	return &c, nil
}

// ListThemes returns copies of every theme, sorted by name.
func (s *MemoryStore) ListThemes() ([]theme.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]theme.Theme, 0, len(s.themes))
	for _, t := range s.themes {
		out = append(out, clone(t))
	}
	sortByName(out)
	return out, nil
}

// Create validates t, assigns a new id and timestamps, and stores it.
func (s *MemoryStore) Create(t theme.Theme) (theme.Theme, error) {
	if err := t.Validate(); err != nil {
		return theme.Theme{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	s.themes[t.ID] = clone(t)
	return clone(t), nil
}

// Update replaces an existing theme, keeping its creation time.
func (s *MemoryStore) Update(t theme.Theme) (theme.Theme, error) {
	if err := t.Validate(); err != nil {
		return theme.Theme{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.themes[t.ID]
	if !ok {
		return theme.Theme{}, fmt.Errorf("%w: %s", theme.ErrThemeNotFound, t.ID)
	}
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = s.now()
	s.themes[t.ID] = clone(t)
	return clone(t), nil
}

// Delete removes a theme. Deleting a missing id reports theme.ErrThemeNotFound.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.themes[id]; !ok {
		return fmt.Errorf("%w: %s", theme.ErrThemeNotFound, id)
	}
	delete(s.themes, id)
	return nil
}
