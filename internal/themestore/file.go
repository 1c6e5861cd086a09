package themestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-mdpdf/internal/theme"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

const themeExt = ".yaml"

// FileStore persists each theme as <dir>/<id>.yaml.
// Writes go through a temp file and rename so readers never see partial files.
type FileStore struct {
	// Now stamps CreatedAt/UpdatedAt. Defaults to time.Now.
	Now func() time.Time

	dir string
	mu  sync.RWMutex
}

// NewFileStore opens (and creates if needed) a theme directory.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrEmptyStoreDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating theme directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+themeExt)
}

// GetTheme reads and decodes one theme file.
func (s *FileStore) GetTheme(id string) (*theme.Theme, error) {
	if err := ValidateID(id); err != nil {
		// An id that cannot name a file cannot exist in the store.
		return nil, fmt.Errorf("%w: %v", theme.ErrThemeNotFound, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.read(s.path(id))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListThemes decodes every *.yaml file in the directory, sorted by name.
// Corrupt files are skipped and reported together in the returned error,
// alongside the themes that did decode.
func (s *FileStore) ListThemes() ([]theme.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading theme directory: %w", err)
	}

	var (
		themes []theme.Theme
		errs   []error
	)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != themeExt {
			continue
		}
		t, err := s.read(filepath.Join(s.dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		themes = append(themes, t)
	}
	sortByName(themes)
	return themes, errors.Join(errs...)
}

// Create validates t, assigns a UUID and timestamps, and writes it.
func (s *FileStore) Create(t theme.Theme) (theme.Theme, error) {
	if err := t.Validate(); err != nil {
		return theme.Theme{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	if err := s.write(t); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}

// Update rewrites an existing theme, keeping its creation time.
func (s *FileStore) Update(t theme.Theme) (theme.Theme, error) {
	if err := ValidateID(t.ID); err != nil {
		return theme.Theme{}, err
	}
	if err := t.Validate(); err != nil {
		return theme.Theme{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.read(s.path(t.ID))
	if err != nil {
		return theme.Theme{}, err
	}
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = s.now().UTC()
	if err := s.write(t); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}

// Delete removes a theme file.
func (s *FileStore) Delete(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", theme.ErrThemeNotFound, id)
		}
		return fmt.Errorf("deleting theme %s: %w", id, err)
	}
	return nil
}

func (s *FileStore) read(path string) (theme.Theme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path built from a validated id
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			id := strings.TrimSuffix(filepath.Base(path), themeExt)
			return theme.Theme{}, fmt.Errorf("%w: %s", theme.ErrThemeNotFound, id)
		}
		return theme.Theme{}, fmt.Errorf("reading theme file: %w", err)
	}

	var t theme.Theme
	if err := yamlutil.UnmarshalStrict(data, &t); err != nil {
		return theme.Theme{}, fmt.Errorf("%w: %s: %v", ErrCorruptTheme, filepath.Base(path), err)
	}
	if t.ID == "" {
		t.ID = strings.TrimSuffix(filepath.Base(path), themeExt)
	}
	return t, nil
}

func (s *FileStore) write(t theme.Theme) error {
	data, err := yamlutil.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding theme: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".theme-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp theme file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing theme file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing theme file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(t.ID)); err != nil {
		cleanup()
		return fmt.Errorf("saving theme file: %w", err)
	}
	return nil
}

// LoadThemeFile decodes a standalone theme definition, e.g. for `themes create`.
// The id and timestamps in the file, if any, are ignored by Create.
func LoadThemeFile(path string) (theme.Theme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return theme.Theme{}, fmt.Errorf("reading theme file: %w", err)
	}
	var t theme.Theme
	if err := yamlutil.UnmarshalStrict(data, &t); err != nil {
		return theme.Theme{}, fmt.Errorf("%w: %s: %v", ErrCorruptTheme, filepath.Base(path), err)
	}
	if err := t.Validate(); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}
