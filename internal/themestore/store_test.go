package themestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-mdpdf/internal/theme"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleTheme(name string) theme.Theme {
	return theme.Theme{
		Name:   name,
		Colors: theme.Colors{Text: "#222222", Heading1: "navy"},
		Typography: theme.Typography{
			FontFamily: "Times",
			FontSize:   12,
		},
		Spacing: theme.Spacing{
			Headings:  []theme.HeadingSpacing{{Top: theme.Points(20), Bottom: theme.Points(10)}},
			Paragraph: theme.Points(0),
		},
	}
}

// storeFactories lets every behavioral test run against both implementations.
var storeFactories = map[string]func(t *testing.T) Store{
	"memory": func(t *testing.T) Store {
		s := NewMemoryStore()
		s.Now = func() time.Time { return fixedNow }
		return s
	},
	"file": func(t *testing.T) Store {
		t.Helper()
		s, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		s.Now = func() time.Time { return fixedNow }
		return s
	},
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "uuid", id: "5b1f0c52-3c1e-4b8e-9d43-2f6f1c0d9a11"},
		{name: "simple", id: "ocean"},
		{name: "empty", id: "", wantErr: true},
		{name: "blank", id: "   ", wantErr: true},
		{name: "slash", id: "a/b", wantErr: true},
		{name: "backslash", id: "a\\b", wantErr: true},
		{name: "parent", id: "..", wantErr: true},
		{name: "null byte", id: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateID(tt.id)
			if tt.wantErr && !errors.Is(err, ErrInvalidThemeID) {
				t.Errorf("ValidateID(%q) = %v, want ErrInvalidThemeID", tt.id, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateID(%q) unexpected error: %v", tt.id, err)
			}
		})
	}
}

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newStore(t)

			created, err := s.Create(sampleTheme("Ocean"))
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := ValidateID(created.ID); err != nil {
				t.Fatalf("Create assigned unusable id %q: %v", created.ID, err)
			}
			if !created.CreatedAt.Equal(fixedNow) || !created.UpdatedAt.Equal(fixedNow) {
				t.Errorf("timestamps = %v/%v, want %v", created.CreatedAt, created.UpdatedAt, fixedNow)
			}

			got, err := s.GetTheme(created.ID)
			if err != nil {
				t.Fatalf("GetTheme: %v", err)
			}
			if got.Name != "Ocean" || got.Colors.Heading1 != "navy" || got.Typography.FontSize != 12 {
				t.Errorf("GetTheme returned %+v", got)
			}
			if len(got.Spacing.Headings) != 1 || *got.Spacing.Headings[0].Top != 20 {
				t.Errorf("heading spacing not preserved: %+v", got.Spacing.Headings)
			}
			if got.Spacing.Paragraph == nil || *got.Spacing.Paragraph != 0 || got.Spacing.List != nil {
				t.Errorf("explicit zero and unset spacing not preserved: paragraph=%v list=%v",
					got.Spacing.Paragraph, got.Spacing.List)
			}

			got.Name = "Deep Ocean"
			updated, err := s.Update(*got)
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if updated.Name != "Deep Ocean" {
				t.Errorf("Update name = %q", updated.Name)
			}
			if !updated.CreatedAt.Equal(fixedNow) {
				t.Errorf("Update changed CreatedAt to %v", updated.CreatedAt)
			}

			if err := s.Delete(created.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.GetTheme(created.ID); !errors.Is(err, theme.ErrThemeNotFound) {
				t.Errorf("GetTheme after delete = %v, want ErrThemeNotFound", err)
			}
			if err := s.Delete(created.ID); !errors.Is(err, theme.ErrThemeNotFound) {
				t.Errorf("second Delete = %v, want ErrThemeNotFound", err)
			}
		})
	}
}

func TestStore_ListSortedByName(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newStore(t)
			for _, n := range []string{"Zebra", "Alpha", "Mango"} {
				if _, err := s.Create(sampleTheme(n)); err != nil {
					t.Fatalf("Create(%s): %v", n, err)
				}
			}

			themes, err := s.ListThemes()
			if err != nil {
				t.Fatalf("ListThemes: %v", err)
			}
			want := []string{"Alpha", "Mango", "Zebra"}
			if len(themes) != len(want) {
				t.Fatalf("ListThemes returned %d themes, want %d", len(themes), len(want))
			}
			for i, th := range themes {
				if th.Name != want[i] {
					t.Errorf("themes[%d] = %q, want %q", i, th.Name, want[i])
				}
			}
		})
	}
}

func TestStore_RejectsInvalidThemes(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newStore(t)

			bad := sampleTheme("Bad")
			bad.Colors.Link = "#12"
			if _, err := s.Create(bad); !errors.Is(err, theme.ErrInvalidColor) {
				t.Errorf("Create(bad color) = %v, want ErrInvalidColor", err)
			}

			if _, err := s.Create(theme.Theme{}); !errors.Is(err, theme.ErrEmptyThemeName) {
				t.Errorf("Create(no name) = %v, want ErrEmptyThemeName", err)
			}

			missing := sampleTheme("Ghost")
			missing.ID = "does-not-exist"
			if _, err := s.Update(missing); !errors.Is(err, theme.ErrThemeNotFound) {
				t.Errorf("Update(missing) = %v, want ErrThemeNotFound", err)
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(theme.Theme{ID: "fixed", Name: "Seed", Spacing: theme.Spacing{
		Headings:  []theme.HeadingSpacing{{Top: theme.Points(10), Bottom: theme.Points(5)}},
		Paragraph: theme.Points(0),
	}})

	got, err := s.GetTheme("fixed")
	if err != nil {
		t.Fatalf("GetTheme: %v", err)
	}
	*got.Spacing.Headings[0].Top = 99
	*got.Spacing.Paragraph = 7

	again, _ := s.GetTheme("fixed")
	if *again.Spacing.Headings[0].Top != 10 || *again.Spacing.Paragraph != 0 {
		t.Error("mutating a returned theme changed the stored one")
	}
}

func TestFileStore_AtomicLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	created, err := s.Create(sampleTheme("Ocean"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != created.ID+".yaml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only %s.yaml", names, created.ID)
	}
}

func TestFileStore_ListSkipsCorruptFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := s.Create(sampleTheme("Good")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	themes, err := s.ListThemes()
	if !errors.Is(err, ErrCorruptTheme) {
		t.Errorf("ListThemes error = %v, want ErrCorruptTheme", err)
	}
	if len(themes) != 1 || themes[0].Name != "Good" {
		t.Errorf("ListThemes = %+v, want only Good", themes)
	}
}

func TestFileStore_GetRejectsTraversal(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := s.GetTheme("../etc/passwd"); !errors.Is(err, theme.ErrThemeNotFound) {
		t.Errorf("GetTheme(traversal) = %v, want ErrThemeNotFound", err)
	}
	if err := s.Delete("../x"); !errors.Is(err, ErrInvalidThemeID) {
		t.Errorf("Delete(traversal) = %v, want ErrInvalidThemeID", err)
	}
}

func TestNewFileStore_EmptyDir(t *testing.T) {
	t.Parallel()

	if _, err := NewFileStore(""); !errors.Is(err, ErrEmptyStoreDir) {
		t.Errorf("NewFileStore(\"\") = %v, want ErrEmptyStoreDir", err)
	}
}

func TestLoadThemeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "ocean.yaml")
	content := `name: Ocean
colors:
  text: "#102030"
  link: teal
typography:
  fontSize: 12
`
	if err := os.WriteFile(good, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("name: X\nbogus: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	th, err := LoadThemeFile(good)
	if err != nil {
		t.Fatalf("LoadThemeFile: %v", err)
	}
	if th.Name != "Ocean" || th.Colors.Link != "teal" || th.Typography.FontSize != 12 {
		t.Errorf("LoadThemeFile = %+v", th)
	}

	if _, err := LoadThemeFile(unknown); !errors.Is(err, ErrCorruptTheme) {
		t.Errorf("LoadThemeFile(unknown key) = %v, want ErrCorruptTheme", err)
	}
}

func TestResolverReadsFromStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	created, err := s.Create(sampleTheme("Ocean"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	r := theme.NewResolver(s, nil)

	sheet, src := r.ResolveWithSource(created.ID)
	if src != theme.SourceCustom || sheet.Name != "Ocean" {
		t.Errorf("resolve = %q/%v, want Ocean/custom", sheet.Name, src)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	sheet, src = r.ResolveWithSource(created.ID)
	if src != theme.SourceFallback || sheet.Name != theme.PresetModern {
		t.Errorf("resolve after delete = %q/%v, want modern/fallback", sheet.Name, src)
	}
}
