package mdpdf

import (
	"sync"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Result is one encoded document.
//
// Handle materializes the payload as a temp file on demand. The file is not
// removed when the Result becomes unreachable: call Release when done.
type Result struct {
	PDF  []byte
	Size int

	mu       sync.Mutex
	path     string
	cleanup  func()
	released bool
}

func newResult(pdf []byte) *Result {
	return &Result{PDF: pdf, Size: len(pdf)}
}

// Handle returns the path of a temp file holding the PDF, writing it on the
// first call. Later calls return the same path.
func (r *Result) Handle() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return "", ErrResultReleased
	}
	if r.path != "" {
		return r.path, nil
	}
	path, cleanup, err := fileutil.WriteTempBytes(r.PDF, "pdf")
	if err != nil {
		return "", err
	}
	r.path, r.cleanup = path, cleanup
	return path, nil
}

// Release removes the temp file, if any. Safe to call more than once.
func (r *Result) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.released = true
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	r.path = ""
	return nil
}
