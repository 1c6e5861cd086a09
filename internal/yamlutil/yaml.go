// Package yamlutil reads and writes the YAML documents of the tool:
// configuration files and custom theme files. It is the only importer of
// the YAML library.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps a config or theme document. Both are a few hundred
// bytes in practice.
const MaxDocumentSize = 256 << 10

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrTooLarge       = errors.New("yamlutil: document too large")
	ErrInvalid        = errors.New("yamlutil: invalid document")
)

// UnmarshalStrict decodes data into v and rejects unknown keys, so a typo
// in a config or theme file is reported instead of silently ignored.
// Decoding errors carry the line and column of the offending node.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, MaxDocumentSize)
}

func decode(data []byte, v any, limit int) error {
	switch {
	case len(data) == 0:
		return ErrEmptyDocument
	case len(data) > limit:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), limit)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, yaml.FormatError(err, false, false))
	}
	return nil
}

// Marshal encodes v with two-space indentation and indented sequences,
// the layout `themes show` prints and `themes create` reads back.
func Marshal(v any) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return data, nil
}
