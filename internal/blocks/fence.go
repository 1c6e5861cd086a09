package blocks

import "strings"

// DiagramLanguage is the fence info string that marks a diagram block.
const DiagramLanguage = "mermaid"

const fenceMarker = "```"

// Fence is one fenced block found by ScanFences. Line numbers are zero-based
// indexes into the normalized input lines.
type Fence struct {
	Language   string
	Lines      []string
	StartLine  int
	EndLine    int // closing fence line, or last line when unterminated
	Terminated bool
}

// IsDiagram reports whether the fence is a closed diagram block. Unterminated
// diagram fences are treated as ordinary code.
func (f Fence) IsDiagram() bool {
	return f.Terminated && isDiagramLanguage(f.Language)
}

// Source returns the fence body joined with newlines.
func (f Fence) Source() string {
	return strings.Join(f.Lines, "\n")
}

// ScanFences finds fenced blocks using exactly the fence rules of Parse: any
// line whose trimmed content starts with ``` toggles fence mode, whatever
// precedes it. Diagram placeholders from Parse and diagram fences from
// ScanFences therefore always pair up by index.
func ScanFences(markdown string) []Fence {
	var (
		fences []Fence
		cur    *Fence
	)
	for i, raw := range splitLines(markdown) {
		trimmed := strings.TrimSpace(raw)
		if !isFence(trimmed) {
			if cur != nil {
				cur.Lines = append(cur.Lines, raw)
			}
			continue
		}
		if cur == nil {
			cur = &Fence{Language: fenceLanguage(trimmed), StartLine: i}
			continue
		}
		cur.EndLine = i
		cur.Terminated = true
		fences = append(fences, *cur)
		cur = nil
	}
	if cur != nil {
		cur.EndLine = cur.StartLine + len(cur.Lines)
		fences = append(fences, *cur)
	}
	return fences
}

// DiagramFences returns the diagram fences of markdown in source order.
func DiagramFences(markdown string) []Fence {
	var out []Fence
	for _, f := range ScanFences(markdown) {
		if f.IsDiagram() {
			out = append(out, f)
		}
	}
	return out
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, fenceMarker)
}

// fenceLanguage returns the first word of the info string.
func fenceLanguage(trimmed string) string {
	info := strings.TrimSpace(strings.TrimLeft(trimmed, "`"))
	if i := strings.IndexAny(info, " \t{"); i >= 0 {
		info = info[:i]
	}
	return info
}

func isDiagramLanguage(lang string) bool {
	return strings.EqualFold(lang, DiagramLanguage)
}

// splitLines normalizes line endings and splits. A trailing newline does not
// produce an extra empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
