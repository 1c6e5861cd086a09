// Package emoji strips or substitutes emoji before Markdown parsing.
//
// The PDF core fonts cannot draw emoji, and the block and inline parsers make no
// attempt to special-case multi-byte glyphs, so sanitizing happens once, up front.
// Input is walked by grapheme cluster so ZWJ sequences, keycaps, flags and
// variation-selector pairs are handled as one unit.
package emoji

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Mode selects how emoji are handled.
type Mode string

const (
	// ModeRemove deletes every emoji.
	ModeRemove Mode = "remove"
	// ModeReplace substitutes known emoji with a bracketed label, then removes the rest.
	ModeReplace Mode = "replace"
)

// ErrInvalidMode is returned by ParseMode for anything but remove/replace.
var ErrInvalidMode = errors.New("invalid emoji mode")

// ParseMode maps a user-supplied string to a Mode. Empty means ModeRemove.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRemove:
		return ModeRemove, nil
	case ModeReplace:
		return ModeReplace, nil
	default:
		return "", fmt.Errorf("%w: %q (must be remove or replace)", ErrInvalidMode, s)
	}
}

const (
	zwj       = '\u200d'
	keycap    = '\u20e3'
	textVS    = '\ufe0e'
	emojiVS   = '\ufe0f'
	tagsFirst = 0xE0020
	tagsLast  = 0xE007F
)

// IsEmoji reports whether r falls in one of the emoji blocks or is an emoji
// joiner/modifier code point.
func IsEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, transport, flags, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2300 && r <= 0x23FF: // misc technical
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows
		return true
	case r >= tagsFirst && r <= tagsLast:
		return true
	case r == zwj, r == keycap, r == textVS, r == emojiVS:
		return true
	}
	return false
}

func isCandidate(r rune) bool {
	if IsEmoji(r) {
		return true
	}
	_, ok := replacements[r]
	return ok
}

// Sanitize removes or replaces emoji in text. It never fails.
func Sanitize(text string, mode Mode) string {
	if strings.IndexFunc(text, isCandidate) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	rest, state := text, -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		b.WriteString(sanitizeCluster(cluster, mode))
	}
	return b.String()
}

func sanitizeCluster(cluster string, mode Mode) string {
	first, _ := utf8.DecodeRuneInString(cluster)

	if mode == ModeReplace {
		if label, ok := replacements[first]; ok {
			return label
		}
	}

	// A cluster led by an emoji, or a keycap sequence such as 1️⃣, is dropped whole.
	if IsEmoji(first) || strings.ContainsRune(cluster, keycap) {
		return ""
	}
	if strings.IndexFunc(cluster, IsEmoji) < 0 {
		return cluster
	}
	// Plain text carrying a stray selector or joiner: keep the text.
	return strings.Map(func(r rune) rune {
		if IsEmoji(r) {
			return -1
		}
		return r
	}, cluster)
}
