// Package preview renders Markdown to a themed HTML page for on-screen review.
//
// Unlike the PDF path, the preview goes through goldmark with GitHub
// Flavored Markdown, so inline styling, tables and task lists are kept.
// Code fences are highlighted with chroma using CSS classes, and mermaid
// fences are emitted as <div class="mermaid"> for client-side hydration.
// Colors, fonts and spacing come from the same resolved style sheet the PDF
// encoders use.
package preview
