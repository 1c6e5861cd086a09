// Package mdpdf converts Markdown documents to styled, paginated PDF.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdpdf.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// # Conversion Pipeline
//
// Every conversion runs the same strict sequence:
//
//  1. Emoji sanitizing (remove, or replace known emoji with a label)
//  2. Diagram extraction: mermaid fences are rendered to SVG and rasterized,
//     one at a time, in source order
//  3. Block parsing into headings, paragraphs, lists, quotes, code and rules
//  4. Inline parsing per block: links are kept, emphasis markers are dropped
//  5. Assembly into a page tree styled by the resolved theme
//  6. Encoding, natively with core PDF fonts or by printing with Chrome
//
// A diagram that fails to render never fails the document: it is logged and
// printed as its source instead.
//
// # Themes
//
// Options.Style names a built-in preset (modern, classic, minimal,
// technical) or the id of a custom theme from the store given to
// WithThemeStore. Unknown names fall back to modern.
//
// # Configuration
//
// Converter-wide behavior is set with functional options:
//
//	conv, err := mdpdf.NewConverter(
//	    mdpdf.WithLogger(logger),
//	    mdpdf.WithTimeout(2 * time.Minute),
//	    mdpdf.WithChromeEncoder(),
//	)
//
// Per-conversion settings travel in Input.Options:
//
//	result, err := conv.Convert(ctx, mdpdf.Input{
//	    Markdown: content,
//	    Options: mdpdf.Options{
//	        PageSize:    mdpdf.PageSizeLetter,
//	        Orientation: mdpdf.OrientationLandscape,
//	        Style:       mdpdf.StyleTechnical,
//	        Title:       "Runbook",
//	        EmojiMode:   mdpdf.EmojiReplace,
//	    },
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage several browsers:
//
//	pool := mdpdf.NewConverterPool(mdpdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Resources
//
// Result.Handle writes the PDF to a temp file for callers that need a path.
// The file lives until Result.Release is called.
package mdpdf
