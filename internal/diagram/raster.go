package diagram

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/go-rod/rod"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/alnah/go-mdpdf/internal/browser"
)

// ErrRasterize wraps every rasterizer failure.
var ErrRasterize = errors.New("rasterization failed")

const pngDataURIPrefix = "data:image/png;base64,"

// BrowserRasterizer draws the SVG data URI onto a canvas in Chrome. Text in
// Mermaid output renders exactly as the engine laid it out.
type BrowserRasterizer struct {
	browser *browser.Browser
	scale   float64
}

// RasterOption configures a rasterizer.
type RasterOption func(*float64)

// WithScale overrides the supersampling factor. Values below 1 are ignored.
func WithScale(scale float64) RasterOption {
	return func(s *float64) {
		if scale >= 1 {
			*s = scale
		}
	}
}

func rasterScale(opts []RasterOption) float64 {
	scale := SupersampleScale
	for _, opt := range opts {
		opt(&scale)
	}
	return scale
}

// NewBrowserRasterizer creates a canvas rasterizer, at SupersampleScale unless
// WithScale says otherwise.
func NewBrowserRasterizer(b *browser.Browser, opts ...RasterOption) *BrowserRasterizer {
	return &BrowserRasterizer{browser: b, scale: rasterScale(opts)}
}

// The white fill comes first: transparent SVG backgrounds turn black once the
// bitmap lands in a PDF.
const canvasJS = `(uri, w, h, scale) => new Promise((resolve, reject) => {
	const img = new Image();
	img.onload = () => {
		const canvas = document.createElement('canvas');
		canvas.width = Math.ceil(w * scale);
		canvas.height = Math.ceil(h * scale);
		const ctx = canvas.getContext('2d');
		if (!ctx) { reject(new Error('canvas context unavailable')); return; }
		ctx.fillStyle = '#ffffff';
		ctx.fillRect(0, 0, canvas.width, canvas.height);
		ctx.scale(scale, scale);
		ctx.drawImage(img, 0, 0, w, h);
		resolve(canvas.toDataURL('image/png'));
	};
	img.onerror = () => reject(new Error('svg image decode failed'));
	img.src = uri;
})`

const blankHTML = `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body></body></html>`

// Rasterize implements Rasterizer.
func (r *BrowserRasterizer) Rasterize(ctx context.Context, sess *Session, svg SVG) (string, error) {
	v, err := sess.Resource(canvasResource, func() (any, func(), error) {
		page, release, err := r.browser.OpenHTML(ctx, blankHTML)
		if err != nil {
			return nil, nil, err
		}
		return page, release, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	page := v.(*rod.Page).Context(ctx)
	res, err := page.Eval(canvasJS, svg.DataURI, svg.Width, svg.Height, r.scale)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	uri := res.Value.Str()
	if !strings.HasPrefix(uri, pngDataURIPrefix) {
		return "", fmt.Errorf("%w: unexpected canvas output", ErrRasterize)
	}
	return uri, nil
}

// VectorRasterizer draws SVG paths in pure Go. It has no text support, so
// labels are lost; useful without Chrome and in tests.
type VectorRasterizer struct {
	scale float64
}

// NewVectorRasterizer creates a pure-Go rasterizer.
func NewVectorRasterizer(opts ...RasterOption) *VectorRasterizer {
	return &VectorRasterizer{scale: rasterScale(opts)}
}

// Rasterize implements Rasterizer.
func (r *VectorRasterizer) Rasterize(ctx context.Context, _ *Session, svg SVG) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg.Markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return "", fmt.Errorf("%w: parse svg: %v", ErrRasterize, err)
	}

	width := int(math.Ceil(svg.Width * r.scale))
	height := int(math.Ceil(svg.Height * r.scale))
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("%w: empty canvas %dx%d", ErrRasterize, width, height)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(width, height, canvas, canvas.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return "", fmt.Errorf("%w: encode png: %v", ErrRasterize, err)
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
