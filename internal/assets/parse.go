package assets

import (
	"bytes"
	"fmt"
	"html/template"
)

// ParseTemplate loads and parses an HTML template.
func ParseTemplate(loader AssetLoader, name string) (*template.Template, error) {
	src, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	return tmpl, nil
}

// MermaidHost renders the diagram engine host page loading scriptURL.
// An empty scriptURL selects DefaultMermaidScript.
func MermaidHost(loader AssetLoader, scriptURL string) (string, error) {
	if scriptURL == "" {
		scriptURL = DefaultMermaidScript
	}
	tmpl, err := ParseTemplate(loader, TemplateMermaid)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	// The script URL comes from trusted configuration and may be a file:// path.
	data := struct{ MermaidScript template.URL }{template.URL(scriptURL)} // #nosec G203

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateParse, TemplateMermaid, err)
	}
	return buf.String(), nil
}
