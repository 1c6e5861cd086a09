package mdpdf

import (
	"errors"

	"github.com/alnah/go-mdpdf/internal/browser"
	"github.com/alnah/go-mdpdf/internal/emoji"
	"github.com/alnah/go-mdpdf/internal/encode"
	"github.com/alnah/go-mdpdf/internal/layout"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// ErrConversion wraps every failure past input validation: a style sheet
	// the assembler cannot use, an encoder rejection, an internal panic.
	ErrConversion = errors.New("conversion failed")

	ErrEncode         = encode.ErrEncode
	ErrBrowserConnect = browser.ErrConnect

	// Options validation errors.
	ErrInvalidPageSize    = layout.ErrInvalidPageSize
	ErrInvalidOrientation = layout.ErrInvalidOrientation
	ErrInvalidMargin      = layout.ErrInvalidMargin
	ErrInvalidEmojiMode   = emoji.ErrInvalidMode
	ErrFieldTooLong       = errors.New("field exceeds maximum length")

	// Converter construction errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Result errors.
	ErrResultReleased = errors.New("result already released")
)
