package assets

import (
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	StyleBase       = "base"
	TemplatePrint   = "print"
	TemplatePreview = "preview"
	TemplateMermaid = "mermaid"
)

// DefaultMermaidScript is the mermaid.js bundle loaded by the host page and
// the preview when no other URL is configured.
const DefaultMermaidScript = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// maxAssetName bounds names coming from configuration.
const maxAssetName = 64

// kind locates one family of assets inside a loader root.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name relative to the loader root.
func (k kind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

// ValidateAssetName rejects names that could leave the asset directory or
// change the extension: empty names, separators, dots and overlong names.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetName:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetName)
	case strings.ContainsAny(name, "/\\."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
