// Package encode turns an assembled page tree into PDF bytes. The native
// encoder draws with core PDF fonts and needs no browser; the Chrome encoder
// prints an HTML rendition of the same tree.
package encode

import (
	"context"
	"errors"

	"github.com/alnah/go-mdpdf/internal/layout"
)

// Sentinel errors for encoding.
var (
	ErrNilTree    = errors.New("page tree is nil")
	ErrEncode     = errors.New("PDF encoding failed")
	ErrBadImage   = errors.New("unsupported image")
	ErrNoTemplate = errors.New("print template unavailable")
)

// Encoder is the document encoder contract: a page tree in, a complete PDF out.
type Encoder interface {
	Encode(ctx context.Context, tree *layout.PageTree) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ Encoder = (*NativeEncoder)(nil)
	_ Encoder = (*ChromeEncoder)(nil)
)
