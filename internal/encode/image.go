package encode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type bitmap struct {
	kind string // fpdf image type
	data []byte
}

// decodeImage unpacks a base64 data URI and identifies the bitmap by content,
// not by the declared media type.
func decodeImage(uri string) (bitmap, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return bitmap{}, fmt.Errorf("%w: not a data URI", ErrBadImage)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return bitmap{}, fmt.Errorf("%w: data URI is not base64", ErrBadImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return bitmap{}, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/png"):
		return bitmap{kind: "PNG", data: data}, nil
	case mt.Is("image/jpeg"):
		return bitmap{kind: "JPG", data: data}, nil
	case mt.Is("image/gif"):
		return bitmap{kind: "GIF", data: data}, nil
	}
	return bitmap{}, fmt.Errorf("%w: %s", ErrBadImage, mt.String())
}
