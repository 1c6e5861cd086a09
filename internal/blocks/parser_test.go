package blocks

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "heading and paragraph",
			input: "# Title\n\nHello **world**.",
			want: []Block{
				Heading{Level: 1, Text: "Title"},
				Paragraph{Text: "Hello **world**."},
			},
		},
		{
			name:  "heading levels",
			input: "# one\n## two\n### three\n#### four\n##### five\n###### six",
			want: []Block{
				Heading{Level: 1, Text: "one"},
				Heading{Level: 2, Text: "two"},
				Heading{Level: 3, Text: "three"},
				Heading{Level: 4, Text: "four"},
				Heading{Level: 5, Text: "five"},
				Heading{Level: 6, Text: "six"},
			},
		},
		{
			name:  "seven hashes is text",
			input: "####### seven",
			want:  []Block{Paragraph{Text: "####### seven"}},
		},
		{
			name:  "hash without space is text",
			input: "#hashtag",
			want:  []Block{Paragraph{Text: "#hashtag"}},
		},
		{
			name:  "paragraph lines joined with spaces",
			input: "first line\nsecond line\n  third  ",
			want:  []Block{Paragraph{Text: "first line second line third"}},
		},
		{
			name:  "horizontal rules",
			input: "---\n***\n___",
			want:  []Block{HorizontalRule{}, HorizontalRule{}, HorizontalRule{}},
		},
		{
			name:  "rule flushes paragraph",
			input: "text\n---\nmore",
			want:  []Block{Paragraph{Text: "text"}, HorizontalRule{}, Paragraph{Text: "more"}},
		},
		{
			name:  "blockquote lines are not merged",
			input: "> one\n> two",
			want:  []Block{Blockquote{Text: "one"}, Blockquote{Text: "two"}},
		},
		{
			name:  "unordered list then paragraph",
			input: "- a\n- b\n\nNext paragraph",
			want: []Block{
				ListBlock{Items: []string{"a", "b"}},
				Paragraph{Text: "Next paragraph"},
			},
		},
		{
			name:  "list markers mix",
			input: "* a\n+ b\n- c",
			want:  []Block{ListBlock{Items: []string{"a", "b", "c"}}},
		},
		{
			name:  "ordered list",
			input: "1. first\n2. second\n10. tenth",
			want:  []Block{ListBlock{Items: []string{"first", "second", "tenth"}, Ordered: true}},
		},
		{
			name:  "nested items are flattened",
			input: "- a\n  - b",
			want:  []Block{ListBlock{Items: []string{"a", "b"}}},
		},
		{
			name:  "text line ends list",
			input: "- a\nplain",
			want:  []Block{ListBlock{Items: []string{"a"}}, Paragraph{Text: "plain"}},
		},
		{
			name:  "heading ends list",
			input: "- a\n## H",
			want:  []Block{ListBlock{Items: []string{"a"}}, Heading{Level: 2, Text: "H"}},
		},
		{
			name:  "list item ends paragraph",
			input: "intro\n- a",
			want:  []Block{Paragraph{Text: "intro"}, ListBlock{Items: []string{"a"}}},
		},
		{
			name:  "number without dot space is text",
			input: "3.14 is pi",
			want:  []Block{Paragraph{Text: "3.14 is pi"}},
		},
		{
			name:  "code block verbatim",
			input: "```go\nfunc main() {\n\n    # not a heading\n}\n```",
			want: []Block{CodeBlock{Language: "go", Lines: []string{
				"func main() {", "", "    # not a heading", "}",
			}}},
		},
		{
			name:  "code block without language",
			input: "```\nx\n```",
			want:  []Block{CodeBlock{Lines: []string{"x"}}},
		},
		{
			name:  "fence flushes paragraph and list",
			input: "para\n```\nx\n```\n- a\n```\ny\n```",
			want: []Block{
				Paragraph{Text: "para"},
				CodeBlock{Lines: []string{"x"}},
				ListBlock{Items: []string{"a"}},
				CodeBlock{Lines: []string{"y"}},
			},
		},
		{
			name:  "unterminated code block keeps content",
			input: "```python\nprint(1)\nprint(2)",
			want:  []Block{CodeBlock{Language: "python", Lines: []string{"print(1)", "print(2)"}}},
		},
		{
			name:  "diagram fences become indexed placeholders",
			input: "```mermaid\nflowchart TD\nA-->B\n```\n\ntext\n\n```Mermaid\ngraph LR\n```",
			want: []Block{
				DiagramPlaceholder{Index: 0, Source: []string{"flowchart TD", "A-->B"}},
				Paragraph{Text: "text"},
				DiagramPlaceholder{Index: 1, Source: []string{"graph LR"}},
			},
		},
		{
			name:  "unterminated diagram fence is code",
			input: "```mermaid\nflowchart TD",
			want:  []Block{CodeBlock{Language: "mermaid", Lines: []string{"flowchart TD"}}},
		},
		{
			name:  "crlf line endings",
			input: "# T\r\n\r\nbody\r\n",
			want:  []Block{Heading{Level: 1, Text: "T"}, Paragraph{Text: "body"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.want)
			}
		})
	}
}

// blockText flattens the text a block carries, for content checks.
func blockText(b Block) string {
	switch n := b.(type) {
	case Heading:
		return n.Text
	case Paragraph:
		return n.Text
	case ListBlock:
		return strings.Join(n.Items, "\n")
	case Blockquote:
		return n.Text
	case CodeBlock:
		return strings.Join(n.Lines, "\n")
	case DiagramPlaceholder:
		return strings.Join(n.Source, "\n")
	default:
		return ""
	}
}

func TestParse_PreservesContent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# A\ntext one\ntext two\n\n> quote\n- item\n1. num\n```\ncode line\n```\n---\nend",
		"```\nunterminated\n# still code",
		"- a\n- b\nc\n\n\n\nd",
		"> \n>\n#\n##",
		"***bold***\n___\n* * *",
	}

	// Markers the grammar consumes from the start of a line.
	markers := []string{"###### ", "##### ", "#### ", "### ", "## ", "# ", ">", "- ", "* ", "+ ", "1. "}

	for _, input := range inputs {
		blocks := Parse(input)
		var all strings.Builder
		for _, b := range blocks {
			all.WriteString(blockText(b))
			all.WriteString("\n")
		}
		content := all.String()

		for _, raw := range strings.Split(input, "\n") {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" || strings.HasPrefix(trimmed, "```") {
				continue
			}
			if trimmed == "---" || trimmed == "***" || trimmed == "___" {
				continue
			}
			body := trimmed
			for _, m := range markers {
				if strings.HasPrefix(body, m) {
					body = strings.TrimSpace(strings.TrimPrefix(body, m))
					break
				}
			}
			if !strings.Contains(content, body) {
				t.Errorf("Parse(%q) lost line %q", input, raw)
			}
		}
	}
}

func TestParse_BlockCountForHeadingsAndParagraphs(t *testing.T) {
	t.Parallel()

	input := "# One\n\nFirst paragraph\nspans lines.\n\n## Two\nSecond paragraph.\n\n---\n\nThird."
	got := Parse(input)
	kinds := []Kind{KindHeading, KindParagraph, KindHeading, KindParagraph, KindHorizontalRule, KindParagraph}
	if len(got) != len(kinds) {
		t.Fatalf("Parse returned %d blocks, want %d: %#v", len(got), len(kinds), got)
	}
	for i, k := range kinds {
		if got[i].Kind() != k {
			t.Errorf("block %d kind = %v, want %v", i, got[i].Kind(), k)
		}
	}
}

func TestDispatchTableIsComplete(t *testing.T) {
	t.Parallel()

	for s := state(0); s < stateCount; s++ {
		for k := lineKind(0); k < lineKindCount; k++ {
			if dispatch[s][k] == nil {
				t.Errorf("no action for state %d, line kind %d", s, k)
			}
		}
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got := KindDiagram.String(); got != "diagram" {
		t.Errorf("KindDiagram.String() = %q", got)
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}
