// Package diagram turns Mermaid fences into embeddable bitmap data URIs.
//
// For each diagram fence, in source order:
//
//	Engine.Render       source -> SVG markup (deterministic theme)
//	Prepare             measure, floor/fallback size, explicit width/height/viewBox, base64
//	Rasterizer          SVG -> PNG on white at SupersampleScale
//
// A failure at any stage skips that diagram only; the batch always completes.
// Each diagram is fully processed before the next one starts, so ids handed out
// by the Session stay stable and collision-free.
package diagram
