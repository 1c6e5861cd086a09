package mdpdf_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpdf"
)

// Example converts Markdown with the native encoder, which needs no browser.
func Example() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Hello World\n\nThis is a test.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.HasPrefix(string(result.PDF), "%PDF-") {
		fmt.Println("PDF generated successfully")
	}
	// Output: PDF generated successfully
}

// Example_options sets page, theme and metadata for one conversion.
func Example_options() {
	conv, err := mdpdf.NewConverter(mdpdf.WithDiagramsDisabled())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Runbook\n\n1. Page the on-call 🚨\n2. Open the dashboard",
		Options: mdpdf.Options{
			PageSize:    mdpdf.PageSizeLetter,
			Orientation: mdpdf.OrientationLandscape,
			Margins:     mdpdf.UniformMargins(54),
			Style:       mdpdf.StyleTechnical,
			Author:      "SRE",
			EmojiMode:   mdpdf.EmojiReplace,
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Size > 0)
	// Output: true
}

// Example_handle writes the result to a temp file for APIs that need a path.
func Example_handle() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{Markdown: "hello"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer result.Release()

	path, err := result.Handle()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.HasSuffix(path, ".pdf"))
	// Output: true
}

// Example_pool converts several documents in parallel.
func Example_pool() {
	pool := mdpdf.NewConverterPool(2)
	defer pool.Close()

	docs := []string{"# One", "# Two", "# Three"}
	sizes := make([]bool, len(docs))
	done := make(chan struct{})

	for i, md := range docs {
		go func() {
			defer func() { done <- struct{}{} }()
			conv, err := pool.Acquire()
			if err != nil {
				return
			}
			defer pool.Release(conv)
			res, err := conv.Convert(context.Background(), mdpdf.Input{Markdown: md})
			sizes[i] = err == nil && res.Size > 0
		}()
	}
	for range docs {
		<-done
	}
	fmt.Println(sizes)
	// Output: [true true true]
}
