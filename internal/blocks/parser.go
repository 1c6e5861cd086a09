// Package blocks turns sanitized Markdown into a flat sequence of block nodes.
//
// The grammar is a deliberately small, line-oriented subset of Markdown. Parsing is
// a single forward pass driven by a finite-state machine: every input line is
// classified once, then the (state, line kind) pair selects an action from the
// dispatch table. Nothing here returns an error; malformed input degrades to
// paragraph text.
package blocks

import (
	"strings"
)

type state int

const (
	stateNormal state = iota
	stateInCodeBlock
	stateInList

	stateCount
)

type lineKind int

// Line kinds in recognition priority order.
const (
	lineFence lineKind = iota
	lineHeading
	lineRule
	lineQuote
	lineListItem
	lineBlank
	lineText

	lineKindCount
)

// line is one classified input line.
type line struct {
	raw     string
	kind    lineKind
	text    string // content after the marker, trimmed
	level   int    // heading level
	ordered bool   // list marker was N.
	lang    string // fence language
}

type action func(p *parser, l line)

// then runs steps in order. Used where leaving a list must happen before the
// line is handled as in the normal state.
func then(steps ...action) action {
	return func(p *parser, l line) {
		for _, step := range steps {
			step(p, l)
		}
	}
}

var dispatch = [stateCount][lineKindCount]action{
	stateNormal: {
		lineFence:    (*parser).openFence,
		lineHeading:  (*parser).heading,
		lineRule:     (*parser).rule,
		lineQuote:    (*parser).quote,
		lineListItem: (*parser).startList,
		lineBlank:    (*parser).flushParagraph,
		lineText:     (*parser).appendText,
	},
	stateInCodeBlock: {
		lineFence:    (*parser).closeFence,
		lineHeading:  (*parser).appendCode,
		lineRule:     (*parser).appendCode,
		lineQuote:    (*parser).appendCode,
		lineListItem: (*parser).appendCode,
		lineBlank:    (*parser).appendCode,
		lineText:     (*parser).appendCode,
	},
	stateInList: {
		lineFence:    then((*parser).flushList, (*parser).openFence),
		lineHeading:  then((*parser).flushList, (*parser).heading),
		lineRule:     then((*parser).flushList, (*parser).rule),
		lineQuote:    then((*parser).flushList, (*parser).quote),
		lineListItem: (*parser).appendItem,
		lineBlank:    (*parser).flushList,
		lineText:     then((*parser).flushList, (*parser).appendText),
	},
}

type parser struct {
	state state
	out   []Block

	paragraph []string

	items   []string
	ordered bool

	codeLang  string
	codeLines []string

	diagrams int
}

// Parse returns the block nodes of markdown in document order.
func Parse(markdown string) []Block {
	p := &parser{}
	for _, raw := range splitLines(markdown) {
		l := classify(raw)
		dispatch[p.state][l.kind](p, l)
	}
	p.finish()
	return p.out
}

// finish flushes whatever is pending at end of input. An unterminated fence
// keeps its content as a code block.
func (p *parser) finish() {
	switch p.state {
	case stateInCodeBlock:
		p.out = append(p.out, CodeBlock{Language: p.codeLang, Lines: p.codeLines})
		p.codeLines = nil
	case stateInList:
		p.flushList(line{})
	}
	p.flushParagraph(line{})
	p.state = stateNormal
}

func (p *parser) emit(b Block) {
	p.out = append(p.out, b)
}

func (p *parser) flushParagraph(line) {
	if len(p.paragraph) == 0 {
		return
	}
	p.emit(Paragraph{Text: strings.Join(p.paragraph, " ")})
	p.paragraph = nil
}

func (p *parser) appendText(l line) {
	p.paragraph = append(p.paragraph, l.text)
}

func (p *parser) heading(l line) {
	p.flushParagraph(l)
	p.emit(Heading{Level: l.level, Text: l.text})
}

func (p *parser) rule(l line) {
	p.flushParagraph(l)
	p.emit(HorizontalRule{})
}

func (p *parser) quote(l line) {
	p.flushParagraph(l)
	p.emit(Blockquote{Text: l.text})
}

func (p *parser) startList(l line) {
	p.flushParagraph(l)
	p.state = stateInList
	p.ordered = l.ordered
	p.items = []string{l.text}
}

func (p *parser) appendItem(l line) {
	p.items = append(p.items, l.text)
}

func (p *parser) flushList(line) {
	if len(p.items) > 0 {
		p.emit(ListBlock{Items: p.items, Ordered: p.ordered})
	}
	p.items = nil
	p.ordered = false
	p.state = stateNormal
}

func (p *parser) openFence(l line) {
	p.flushParagraph(l)
	p.state = stateInCodeBlock
	p.codeLang = l.lang
	p.codeLines = nil
}

func (p *parser) appendCode(l line) {
	p.codeLines = append(p.codeLines, l.raw)
}

func (p *parser) closeFence(line) {
	if isDiagramLanguage(p.codeLang) {
		p.emit(DiagramPlaceholder{Index: p.diagrams, Source: p.codeLines})
		p.diagrams++
	} else {
		p.emit(CodeBlock{Language: p.codeLang, Lines: p.codeLines})
	}
	p.codeLang = ""
	p.codeLines = nil
	p.state = stateNormal
}

// classify assigns the highest-priority kind that matches raw.
func classify(raw string) line {
	l := line{raw: raw}
	trimmed := strings.TrimSpace(raw)

	switch {
	case isFence(trimmed):
		l.kind = lineFence
		l.lang = fenceLanguage(trimmed)
	case headingLevel(trimmed) > 0:
		l.kind = lineHeading
		l.level = headingLevel(trimmed)
		l.text = strings.TrimSpace(trimmed[l.level:])
	case trimmed == "---" || trimmed == "***" || trimmed == "___":
		l.kind = lineRule
	case strings.HasPrefix(trimmed, ">"):
		l.kind = lineQuote
		l.text = strings.TrimSpace(trimmed[1:])
	case isListItem(trimmed, &l):
		l.kind = lineListItem
	case trimmed == "":
		l.kind = lineBlank
	default:
		l.kind = lineText
		l.text = trimmed
	}
	return l
}

// headingLevel returns 1..6 for "#{n} text", checking H1 first, else 0.
func headingLevel(trimmed string) int {
	for level := 1; level <= 6; level++ {
		if len(trimmed) <= level || strings.Count(trimmed[:level], "#") != level {
			return 0
		}
		if c := trimmed[level]; c == ' ' || c == '\t' {
			return level
		}
	}
	return 0
}

// isListItem matches "-", "*", "+" or "N." followed by whitespace and fills l.
func isListItem(trimmed string, l *line) bool {
	if len(trimmed) >= 2 && strings.ContainsRune("-*+", rune(trimmed[0])) &&
		(trimmed[1] == ' ' || trimmed[1] == '\t') {
		l.text = strings.TrimSpace(trimmed[2:])
		return true
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+1 >= len(trimmed) || trimmed[digits] != '.' {
		return false
	}
	if c := trimmed[digits+1]; c != ' ' && c != '\t' {
		return false
	}
	l.text = strings.TrimSpace(trimmed[digits+2:])
	l.ordered = true
	return true
}
