package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a fixed payload.
// When err is set it fails every call, or only calls whose markdown
// contains failOn.
type mockConverter struct {
	mu         sync.Mutex
	calls      []mdpdf.Input
	previews   []string
	err        error
	failOn     string
	previewErr error
}

func newMockConverter() *mockConverter {
	return &mockConverter{}
}

func (m *mockConverter) Convert(_ context.Context, in mdpdf.Input) (*mdpdf.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()

	if m.err != nil && (m.failOn == "" || strings.Contains(in.Markdown, m.failOn)) {
		return nil, m.err
	}
	pdf := []byte("%PDF-1.4 mock")
	return &mdpdf.Result{PDF: pdf, Size: len(pdf)}, nil
}

func (m *mockConverter) Preview(_ context.Context, markdown, style string) (string, error) {
	m.mu.Lock()
	m.previews = append(m.previews, style)
	m.mu.Unlock()

	if m.previewErr != nil {
		return "", m.previewErr
	}
	return "<html><body>" + markdown + "</body></html>", nil
}

func (m *mockConverter) getCalls() []mdpdf.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mdpdf.Input(nil), m.calls...)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	mu         sync.Mutex
	conv       CLIConverter
	size       int
	optCount   int
	acquireErr error
	closed     bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv is an Environment with captured output and a fake process
// environment, plus the pool it handed out last.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
	pool   *mockPool
}

func newTestEnv(t *testing.T, conv *mockConverter) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		NewPool: func(size int, opts ...mdpdf.Option) Pool {
			te.pool = &mockPool{conv: conv, size: size, optCount: len(opts)}
			return te.pool
		},
	}
	return te
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func ptr(v float64) *float64 { return &v }
