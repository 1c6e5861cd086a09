package diagram

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Not parallel: exec of a freshly written file can fail with ETXTBSY when
// another goroutine forks while the file is still open.

// fakeMMDC writes a shell script standing in for mermaid-cli.
func fakeMMDC(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "mmdc")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil { // #nosec G306 -- test executable
		t.Fatal(err)
	}
	return path
}

func TestCLIEngine_Render(t *testing.T) {
	bin := fakeMMDC(t, `while [ $# -gt 0 ]; do
  case "$1" in -o) out="$2"; shift ;; esac
  shift
done
printf '<svg xmlns="http://www.w3.org/2000/svg" width="120" height="80"></svg>' > "$out"`)

	e := &CLIEngine{Bin: bin}
	svg, err := e.Render(context.Background(), NewSession(), "flowchart TD\nA-->B")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("Render() = %q", svg)
	}
}

func TestCLIEngine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		source  string
		wantErr error
	}{
		{"empty source", "exit 0", "  \n", ErrEmptyDiagram},
		{"non-zero exit", "echo 'Parse error on line 1' >&2; exit 1", "flowchart TD\nA-->", ErrRender},
		{"no output file", "exit 0", "flowchart TD\nA-->B", ErrRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &CLIEngine{Bin: fakeMMDC(t, tt.script)}
			_, err := e.Render(context.Background(), NewSession(), tt.source)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCLIEngine_ErrorCarriesToolOutput(t *testing.T) {
	e := &CLIEngine{Bin: fakeMMDC(t, "echo 'Parse error on line 2' >&2; exit 1")}
	_, err := e.Render(context.Background(), NewSession(), "flowchart TD\nA-->")
	if err == nil || !strings.Contains(err.Error(), "Parse error on line 2") {
		t.Errorf("Render() error = %v, want mmdc output included", err)
	}
}
