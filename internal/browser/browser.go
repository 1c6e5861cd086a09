// Package browser owns the headless Chrome instance shared by the diagram engine,
// the canvas rasterizer and the Chrome encoder. Chrome is launched on first use.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Sentinel errors for browser operations.
var (
	ErrConnect  = errors.New("browser connection failed")
	ErrPageLoad = errors.New("page load failed")
	ErrClosed   = errors.New("browser closed")
)

// DefaultLoadTimeout bounds page loads when the context has no deadline.
const DefaultLoadTimeout = 30 * time.Second

// Browser is a lazily launched Chrome. Safe for concurrent use; pages are
// independent, so callers may open several at once.
//
// A failed launch is remembered: later calls return the same error without
// launching again, so a missing Chrome costs one attempt per Browser.
type Browser struct {
	mu        sync.Mutex
	rod       *rod.Browser
	launcher  *launcher.Launcher
	launchErr error
	closed    bool
	logger    *zap.Logger

	// launch starts Chrome; replaced in tests.
	launch func() (*rod.Browser, *launcher.Launcher, error)
}

// New returns a Browser that launches Chrome on first use.
func New(logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{logger: logger, launch: launchChrome}
}

// Available reports whether a Chrome binary can be found without downloading one.
func Available() bool {
	if os.Getenv("ROD_BROWSER_BIN") != "" {
		return true
	}
	_, found := launcher.LookPath()
	return found
}

// ensure launches and connects Chrome once. Caller holds b.mu.
func (b *Browser) ensure() (*rod.Browser, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if b.rod != nil {
		return b.rod, nil
	}
	if b.launchErr != nil {
		return nil, b.launchErr
	}

	start := time.Now()
	r, l, err := b.launch()
	if err != nil {
		b.launchErr = err
		b.logger.Debug("browser launch failed", zap.Error(err))
		return nil, err
	}

	b.rod = r
	b.launcher = l
	b.logger.Debug("browser launched", zap.Int("pid", l.PID()), zap.Duration("duration", time.Since(start)))
	return r, nil
}

// launchChrome starts a local Chrome and connects to it.
func launchChrome() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	r := rod.New().ControlURL(u)
	if err := r.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return r, l, nil
}

// OpenHTML loads content in a new page via a temp file and waits for the load
// event, so synchronous scripts have run when it returns. The returned release
// func closes the page and removes the temp file.
func (b *Browser) OpenHTML(ctx context.Context, content string) (*rod.Page, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	b.mu.Lock()
	r, err := b.ensure()
	b.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		return nil, nil, err
	}

	page, err := r.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	release := func() {
		_ = page.Close()
		cleanup()
	}

	timeout := DefaultLoadTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			release()
			return nil, nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		release()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return page.Context(ctx), release, nil
}

// Close shuts Chrome down. Safe to call more than once; later OpenHTML calls
// fail with ErrClosed.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.rod == nil {
		return nil
	}

	err := b.rod.Close()
	pid := b.launcher.PID()
	b.launcher.Kill()
	if err != nil {
		// Close failed, make sure no renderer children survive.
		killProcessGroup(pid)
	}
	b.rod = nil
	b.launcher = nil
	return err
}
