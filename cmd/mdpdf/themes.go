package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpdf/internal/hints"
	"github.com/alnah/go-mdpdf/internal/theme"
	"github.com/alnah/go-mdpdf/internal/themestore"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// runThemes manages custom themes in the theme directory.
func runThemes(args []string, env *Environment) error {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var configName, dir string
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	fs.StringVar(&dir, "themes-dir", "", "custom theme directory")
	fs.Usage = func() { printThemesUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	sub := fs.Args()
	if len(sub) == 0 {
		printThemesUsage(env.Stdout)
		return nil
	}

	cfg, err := loadConfig(configName, env)
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.Style.ThemesDir = dir
	}

	want := func(n int) error {
		if len(sub) != n+1 {
			return fmt.Errorf("%w: themes %s takes %d argument(s)", ErrUsage, sub[0], n)
		}
		return nil
	}

	switch sub[0] {
	case "list":
		if err := want(0); err != nil {
			return err
		}
		store, err := openThemeStore(cfg, false)
		if err != nil {
			return err
		}
		return listThemes(env.Stdout, store)

	case "show":
		if err := want(1); err != nil {
			return err
		}
		store, err := openThemeStore(cfg, false)
		if err != nil {
			return err
		}
		return showTheme(env.Stdout, store, sub[1])

	case "create":
		if err := want(1); err != nil {
			return err
		}
		store, err := openThemeStore(cfg, true)
		if err != nil {
			return err
		}
		t, err := themestore.LoadThemeFile(sub[1])
		if err != nil {
			return err
		}
		created, err := store.Create(t)
		if err != nil {
			return fmt.Errorf("creating theme: %w", err)
		}
		fmt.Fprintf(env.Stdout, "Created theme %s (%s)\n", created.ID, created.Name)
		return nil

	case "delete":
		if err := want(1); err != nil {
			return err
		}
		store, err := openThemeStore(cfg, true)
		if err != nil {
			return err
		}
		if err := store.Delete(sub[1]); err != nil {
			return fmt.Errorf("deleting theme: %w", err)
		}
		fmt.Fprintf(env.Stdout, "Deleted theme %s\n", sub[1])
		return nil
	}

	return fmt.Errorf("%w: unknown themes command %q", ErrUsage, sub[0])
}

// listThemes prints the presets followed by the custom themes, if any.
func listThemes(w io.Writer, store *themestore.FileStore) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSOURCE")
	for _, name := range theme.PresetNames() {
		t, _ := theme.PresetTheme(name)
		fmt.Fprintf(tw, "%s\t%s\tpreset\n", name, t.Name)
	}
	// Corrupt files are reported after the themes that did decode.
	var listErr error
	if store != nil {
		custom, err := store.ListThemes()
		for _, t := range custom {
			fmt.Fprintf(tw, "%s\t%s\tcustom\n", t.ID, t.Name)
		}
		if err != nil {
			listErr = fmt.Errorf("listing themes: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return listErr
}

// showTheme prints a preset or custom theme as YAML, in the format
// accepted by "themes create".
func showTheme(w io.Writer, store *themestore.FileStore, id string) error {
	var t *theme.Theme
	if preset, ok := theme.PresetTheme(id); ok {
		t = &preset
	} else if store != nil {
		found, err := store.GetTheme(id)
		if err != nil && !errors.Is(err, theme.ErrThemeNotFound) {
			return err
		}
		t = found
	}
	if t == nil {
		return fmt.Errorf("%w: %q%s", theme.ErrThemeNotFound, id, hints.ForThemeNotFound(theme.PresetNames()))
	}

	data, err := yamlutil.Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
