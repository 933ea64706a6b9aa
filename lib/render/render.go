// Package render reloads pages in a headless Chromium so that
// JavaScript-built content becomes visible to the query layer. All
// browser control is delegated to rod; the only local logic is process
// lifecycle, cookie conversion and a retry wrapper.
package render

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	random "github.com/mazen160/go-random"
	"github.com/ysmood/gson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("webdoc/render")

const (
	// DefaultTries is how often a render is attempted before giving up.
	DefaultTries = 3
	// DefaultWaitStable bounds how long to wait for the DOM to settle
	// after load.
	DefaultWaitStable = 10 * time.Second

	backoffBase = 2
)

type BrowserOptions struct {
	// Bin is an explicit browser binary. When empty, rod's launcher
	// resolves or downloads one.
	Bin string
	// NoHeadless shows the browser window, useful when debugging.
	NoHeadless bool
	NoSandbox  bool
	// UserDataDir persists browser state between runs.
	UserDataDir string
}

// Renderer owns a lazily launched browser process. It is safe for
// concurrent use; every render happens in its own page.
type Renderer struct {
	opts BrowserOptions

	mu      sync.Mutex
	browser *rod.Browser
}

func New(opts BrowserOptions) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) handle() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().
		Headless(!r.opts.NoHeadless).
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-dev-shm-usage")
	if r.opts.NoSandbox {
		l = l.NoSandbox(true)
	}
	if r.opts.Bin != "" {
		l = l.Bin(r.opts.Bin)
	}
	if r.opts.UserDataDir != "" {
		l = l.UserDataDir(r.opts.UserDataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	r.browser = browser
	return browser, nil
}

// Close shuts the browser process down. The renderer launches a fresh
// one on the next render.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// Request describes one render. Either URL or HTML must be set; when
// both are, HTML wins and is served through a data: navigation.
type Request struct {
	URL  string
	HTML string
	// Script is JavaScript evaluated after load; its value is returned
	// in Result.ScriptResult.
	Script string
	// Cookies to install before navigating, typically lifted from the
	// owning session's jar.
	Cookies []*proto.NetworkCookieParam
	// WaitStable bounds the wait for the DOM to settle. Zero means
	// DefaultWaitStable.
	WaitStable time.Duration
	// KeepPage leaves the page open and hands it back on the result
	// for further interaction. The caller owns closing it.
	KeepPage bool
}

type Result struct {
	// HTML is the serialized DOM after JavaScript ran.
	HTML string
	// ScriptResult is the value of the evaluated script, if any.
	ScriptResult gson.JSON
	// Page is only set when the request asked to keep it.
	Page *rod.Page
}

// Render runs a request with retries: DefaultTries attempts with
// exponential backoff and jitter between them, the way flaky page
// loads are usually absorbed.
func (r *Renderer) Render(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Render")
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < DefaultTries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoffDelay(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := r.renderOnce(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err
		span.RecordError(err)
	}

	span.SetStatus(codes.Error, "all render attempts failed")
	return nil, fmt.Errorf("unable to render the page, try increasing the timeout: %w", lastErr)
}

func backoffDelay(attempt int) time.Duration {
	// attempt n waits 2^(n-1) seconds before jitter
	delay := time.Second
	for i := 1; i < attempt; i++ {
		delay *= backoffBase
	}
	jitterMs, err := random.IntRange(0, 1000)
	if err != nil {
		jitterMs = 0
	}
	return delay + time.Duration(jitterMs)*time.Millisecond
}

func (r *Renderer) renderOnce(ctx context.Context, req Request) (*Result, error) {
	target := req.URL
	if req.HTML != "" {
		target = DataURL(req.HTML)
	}
	if target == "" {
		return nil, fmt.Errorf("render request carries neither url nor html")
	}

	browser, err := r.handle()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page = page.Context(ctx)

	keep := false
	defer func() {
		if !keep {
			page.Close()
		}
	}()

	if len(req.Cookies) > 0 {
		if err := page.SetCookies(req.Cookies); err != nil {
			return nil, fmt.Errorf("failed to set cookies: %w", err)
		}
	}

	if err := page.Navigate(target); err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for load: %w", err)
	}

	waitStable := req.WaitStable
	if waitStable == 0 {
		waitStable = DefaultWaitStable
	}
	// a page that never settles is not fatal, the DOM at timeout is
	// still worth returning
	_ = page.Timeout(waitStable).WaitStable(300 * time.Millisecond)

	result := &Result{}
	if req.Script != "" {
		evaluated, err := page.Eval(req.Script)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate script: %w", err)
		}
		result.ScriptResult = evaluated.Value
	}

	content, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page html: %w", err)
	}
	result.HTML = content

	if req.KeepPage {
		keep = true
		result.Page = page
	}
	return result, nil
}

// DataURL wraps markup in a data: URL so it can be navigated to
// without a server.
func DataURL(markup string) string {
	return "data:text/html;charset=utf-8," + url.PathEscape(markup)
}
