// Package hints builds the actionable suffixes the CLI appends to errors,
// always formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// inContainer reports whether the process runs in Docker.
func inContainer() bool {
	return fileutil.FileExists("/.dockerenv")
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ForBrowserConnect returns hints for a Chrome launch or connection failure,
// tuned to the CI or container the process runs in.
func ForBrowserConnect() string {
	return formatHints(browserHints(os.Getenv, inContainer()))
}

func browserHints(getenv func(string) string, container bool) []string {
	var hints []string

	inCI := false
	for _, v := range ciVars {
		if getenv(v) != "" {
			inCI = true
			break
		}
	}
	if (inCI || container) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a custom Chrome")
	}
	// Without diagrams the native encoder never starts a browser.
	hints = append(hints, "or convert without Chrome: --encoder native --no-diagrams")
	return hints
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the per-user location if it was searched
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-mdpdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the presets when a style name resolves to nothing.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("presets: " + strings.Join(available, ", ") + "; custom themes: mdpdf themes list")
}

// ForDiagramEngine returns hints when diagrams could not be rendered.
func ForDiagramEngine(engine string) string {
	if engine == "cli" {
		return format("install mermaid-cli (npm i -g @mermaid-js/mermaid-cli) or set diagrams.engine: browser")
	}
	return format("diagrams need Chrome and network access to the mermaid script; use --no-diagrams to skip them")
}

// ForNativeGlyphs explains characters lost by the core-font encoder.
func ForNativeGlyphs() string {
	return format("the native encoder covers Latin-1 text only; use --encoder chrome for other scripts")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
