// Package rod implements vidinfo.Fetcher with a headless Chrome browser for
// pages that assemble their player markup with JavaScript.
package rod

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRecycleAfter is the number of pages rendered by one browser
// process before it is replaced. Player pages keep growing Chrome's memory
// baseline.
const DefaultRecycleAfter = 50

// Ensure Fetcher implements vidinfo.Fetcher at compile time.
var _ vidinfo.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
//
// The browser is replaced after a number of pages and after a page load
// times out, since a timed-out player page often leaves the renderer
// wedged. A replaced browser is shut down once its last open page is done.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout      time.Duration
	recycleAfter int
	warner       vidinfo.Warner

	mu      sync.Mutex
	current *session
	stale   string // reason to replace current before the next page
	closed  bool
}

// session is one browser process and the pages currently open on it.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int // pages opened so far
	open     int // pages not yet released
	retired  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the page load timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter replaces the browser after n pages.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// WithWarner reports browser restarts to w.
func WithWarner(w vidinfo.Warner) Option {
	return func(f *Fetcher) {
		f.warner = w
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	s, err := launch()
	if err != nil {
		return nil, err
	}
	f.current = s
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML. The note is only
// used in error messages.
func (f *Fetcher) Fetch(ctx context.Context, url, note string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release(s)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", vidinfo.Errorf(vidinfo.EINTERNAL, "opening page for %s: %v", note, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	html, err := render(page, url)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			f.markStale(s, "page load timed out")
		}
		return "", fetchError(ctx, note, err)
	}
	return html, nil
}

func render(page *rod.Page, url string) (string, error) {
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// fetchError prefers the context error so callers can detect cancellation
// and timeouts.
func fetchError(ctx context.Context, note string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return vidinfo.Errorf(vidinfo.EEXTRACT, "unable to download %s: %v", note, err)
}

// acquire returns the session the next page should open on, replacing the
// current one first when it is due.
func (f *Fetcher) acquire() (*session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "fetcher is closed")
	}

	reason := f.stale
	if reason == "" && f.recycleAfter > 0 && f.current.pages >= f.recycleAfter {
		reason = "page budget reached"
	}
	if reason != "" {
		f.recycle(reason)
	}

	s := f.current
	s.pages++
	s.open++
	return s, nil
}

// release marks a page of s as done and shuts s down if it was retired
// and this was its last open page.
func (f *Fetcher) release(s *session) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s.open--
	if s.retired && s.open == 0 {
		_ = s.close()
	}
}

func (f *Fetcher) markStale(s *session, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s == f.current {
		f.stale = reason
	}
}

// recycle launches a replacement browser and retires the current one.
// When the launch fails the current browser is kept.
// Must be called with mu held.
func (f *Fetcher) recycle(reason string) {
	next, err := launch()
	if err != nil {
		f.warnf("keeping browser after %s: %v", reason, err)
		return
	}

	old := f.current
	f.warnf("restarting browser: %s after %d pages", reason, old.pages)
	f.current = next
	f.stale = ""

	old.retired = true
	if old.open == 0 {
		_ = old.close()
	}
}

func (f *Fetcher) warnf(format string, args ...any) {
	env := vidinfo.Env{Warner: f.warner}
	env.Warnf(format, args...)
}

// Close shuts the browser down. Pages still open are aborted. Close is
// safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.current.close()
}

// LauncherPID returns the process ID of the current browser launcher, or
// 0 once closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current.launcher == nil {
		return 0
	}
	return f.current.launcher.PID()
}

// launch starts a headless browser with flags that keep background player
// tabs from being throttled.
func launch() (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("autoplay-policy", "no-user-gesture-required").
		Set("mute-audio").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EINTERNAL, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, vidinfo.Errorf(vidinfo.EINTERNAL, "connecting to browser: %v", err)
	}
	return &session{browser: browser, launcher: l}, nil
}

// close shuts the browser down and kills its launcher. It is idempotent.
func (s *session) close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}
