package theme

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts #rgb, #rrggbb or a CSS color name (case-insensitive).
func ParseColor(s string) (RGB, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return RGB{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
	}

	if c, ok := colornames.Map[v]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is ParseColor for colors known to be valid (presets, tests).
// Panics on invalid input.
func MustParseColor(s string) RGB {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValidColor reports whether ParseColor accepts s.
func IsValidColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}
