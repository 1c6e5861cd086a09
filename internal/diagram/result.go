package diagram

import "errors"

// Stage names the step at which a diagram was skipped.
type Stage int

const (
	StageRender Stage = iota
	StageMeasure
	StageRasterize
)

func (s Stage) String() string {
	switch s {
	case StageRender:
		return "render"
	case StageMeasure:
		return "measure"
	case StageRasterize:
		return "rasterize"
	default:
		return "unknown"
	}
}

// ErrNoEngine skips every diagram when rendering is disabled.
var ErrNoEngine = errors.New("diagram rendering disabled")

// Result is the outcome for one diagram fence: Rendered or Skipped.
type Result interface {
	isResult()
}

// Rendered carries a bitmap data URI and the CSS-pixel size it was drawn at.
// The bitmap itself is SupersampleScale times larger.
type Rendered struct {
	URI    string
	Width  float64
	Height float64
}

// Skipped records why a diagram produced no bitmap.
type Skipped struct {
	Stage  Stage
	Reason error
}

func (Rendered) isResult() {}
func (Skipped) isResult()  {}

// Batch holds one Result per diagram fence, indexed like the placeholders
// produced by the block parser.
type Batch struct {
	Results []Result
}

// URIs returns the successfully rasterized subset in source order.
func (b Batch) URIs() []string {
	var uris []string
	for _, r := range b.Results {
		if ok, is := r.(Rendered); is {
			uris = append(uris, ok.URI)
		}
	}
	return uris
}

// At returns the result for placeholder index i.
func (b Batch) At(i int) (Result, bool) {
	if i < 0 || i >= len(b.Results) {
		return nil, false
	}
	return b.Results[i], true
}

// Skipped returns how many diagrams failed.
func (b Batch) Skipped() int {
	n := 0
	for _, r := range b.Results {
		if _, is := r.(Skipped); is {
			n++
		}
	}
	return n
}
