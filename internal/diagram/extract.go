package diagram

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/blocks"
)

// Extractor runs the diagram pipeline over a document.
type Extractor struct {
	engine     Engine
	rasterizer Rasterizer
	logger     *zap.Logger
}

// NewExtractor wires an engine and rasterizer. A nil engine skips every
// diagram with ErrNoEngine; a nil rasterizer falls back to VectorRasterizer.
func NewExtractor(engine Engine, rasterizer Rasterizer, logger *zap.Logger) *Extractor {
	if rasterizer == nil {
		rasterizer = NewVectorRasterizer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{engine: engine, rasterizer: rasterizer, logger: logger}
}

// Run processes every diagram fence of markdown in source order, one at a
// time. It never fails: problems are reported per diagram as Skipped.
func (x *Extractor) Run(ctx context.Context, sess *Session, markdown string) Batch {
	fences := blocks.DiagramFences(markdown)
	if len(fences) == 0 {
		return Batch{}
	}

	start := time.Now()
	results := make([]Result, len(fences))
	for i, f := range fences {
		results[i] = x.process(ctx, sess, i, f.Source())
		if s, ok := results[i].(Skipped); ok {
			x.logger.Warn("diagram skipped",
				zap.Int("diagram", i),
				zap.Stringer("stage", s.Stage),
				zap.Error(s.Reason))
		}
	}

	b := Batch{Results: results}
	x.logger.Debug("diagrams processed",
		zap.String("stage", "diagrams"),
		zap.Int("total", len(results)),
		zap.Int("skipped", b.Skipped()),
		zap.Duration("duration", time.Since(start)))
	return b
}

func (x *Extractor) process(ctx context.Context, sess *Session, index int, source string) (res Result) {
	stage := StageRender
	defer func() {
		if r := recover(); r != nil {
			res = Skipped{Stage: stage, Reason: fmt.Errorf("panic in diagram %d: %v", index, r)}
		}
	}()

	if x.engine == nil {
		return Skipped{Stage: StageRender, Reason: ErrNoEngine}
	}
	if err := ctx.Err(); err != nil {
		return Skipped{Stage: StageRender, Reason: err}
	}

	markup, err := x.engine.Render(ctx, sess, source)
	if err != nil {
		return Skipped{Stage: StageRender, Reason: err}
	}

	stage = StageMeasure
	svg, err := Prepare(markup)
	if err != nil {
		return Skipped{Stage: StageMeasure, Reason: err}
	}

	stage = StageRasterize
	uri, err := x.rasterizer.Rasterize(ctx, sess, svg)
	if err != nil {
		return Skipped{Stage: StageRasterize, Reason: err}
	}
	return Rendered{URI: uri, Width: svg.Width, Height: svg.Height}
}
