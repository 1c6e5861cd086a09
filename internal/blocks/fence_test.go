package blocks

import (
	"testing"
)

func TestScanFences(t *testing.T) {
	t.Parallel()

	input := "intro\n```go\nx := 1\n```\n- item\n  ```mermaid\n  graph TD\n  ```\n```mermaid\nopen"
	fences := ScanFences(input)
	if len(fences) != 3 {
		t.Fatalf("ScanFences found %d fences, want 3: %+v", len(fences), fences)
	}

	tests := []struct {
		lang       string
		start, end int
		terminated bool
		diagram    bool
		source     string
	}{
		{lang: "go", start: 1, end: 3, terminated: true, source: "x := 1"},
		{lang: "mermaid", start: 5, end: 7, terminated: true, diagram: true, source: "  graph TD"},
		{lang: "mermaid", start: 8, end: 9, terminated: false, source: "open"},
	}
	for i, tt := range tests {
		f := fences[i]
		if f.Language != tt.lang || f.StartLine != tt.start || f.EndLine != tt.end ||
			f.Terminated != tt.terminated || f.IsDiagram() != tt.diagram || f.Source() != tt.source {
			t.Errorf("fence %d = %+v (diagram=%v), want %+v", i, f, f.IsDiagram(), tt)
		}
	}
}

func TestFenceLanguage(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"```":                "",
		"```go":              "go",
		"``` python":         "python",
		"```mermaid title=x": "mermaid",
		"````js":             "js",
		"```rust{.numbered}": "rust",
	}
	for input, want := range tests {
		if got := fenceLanguage(input); got != want {
			t.Errorf("fenceLanguage(%q) = %q, want %q", input, got, want)
		}
	}
}

// Diagram placeholders and extracted fences must pair up by index for any input.
func TestDiagramFencesAgreeWithParse(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"```mermaid\na\n```\n```mermaid\nb\n```",
		"- list\n```mermaid\na\n```\n> q\n```mermaid\nb",
		"```\n```mermaid\n```\n```mermaid\nreal\n```",
		"text ```mermaid inline is not a fence\n```mermaid\nx\n```",
		"```go\n```mermaid\n```",
	}

	for _, input := range inputs {
		var placeholders []DiagramPlaceholder
		for _, b := range Parse(input) {
			if d, ok := b.(DiagramPlaceholder); ok {
				placeholders = append(placeholders, d)
			}
		}
		fences := DiagramFences(input)
		if len(placeholders) != len(fences) {
			t.Errorf("input %q: %d placeholders, %d diagram fences", input, len(placeholders), len(fences))
			continue
		}
		for i, d := range placeholders {
			if d.Index != i {
				t.Errorf("input %q: placeholder %d has index %d", input, i, d.Index)
			}
			if got, want := fences[i].Source(), joinLines(d.Source); got != want {
				t.Errorf("input %q: fence %d source %q, placeholder source %q", input, i, got, want)
			}
		}
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
