// Package session binds an HTTP client to the HTML query layer: a
// consumable session with cookie persistence and connection pooling
// whose responses expose a parsed Document. Transport is delegated to
// resty, rendering to the render package.
package session

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	browser "github.com/EDDYCJY/fake-useragent"
	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"webdoc/lib/render"
	"webdoc/lib/telemetry"
)

var tracer = otel.Tracer("webdoc/session")

// DefaultUserAgent is a current desktop Chrome user agent, used when
// the caller neither supplies one nor asks for a randomized one.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36"

const DefaultTimeout = 30 * time.Second

type Options struct {
	// UserAgent pins the User-Agent header. Takes priority over
	// MockBrowser.
	UserAgent string
	// MockBrowser picks a random real-browser user agent for the
	// session.
	MockBrowser bool
	// Timeout for each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// CloudflareBypass installs the cloudflare-bp transport wrapper.
	CloudflareBypass bool
	// RestrictRedirects refuses redirects leaving the given hostname.
	RestrictRedirects string
	// CacheDir enables the page cache at the given directory.
	// InMemoryCache enables it without touching disk.
	CacheDir      string
	InMemoryCache bool
	// CacheTTL bounds how long cached pages are served. Zero means
	// DefaultCacheTTL.
	CacheTTL time.Duration
	// Browser configures the headless browser behind Render calls.
	Browser render.BrowserOptions
}

// Session is a consumable HTTP session. Create one with New and close
// it when done; closing releases the cache and any browser process.
type Session struct {
	http *resty.Client
	jar  http.CookieJar
	opts Options

	cache *pageCache

	mu       sync.Mutex
	renderer *render.Renderer
}

func New(opts Options) (*Session, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client.SetTimeout(timeout)

	userAgent := opts.UserAgent
	if userAgent == "" && opts.MockBrowser {
		// Random returns "" when the UA list cannot be fetched
		userAgent = browser.Random()
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.RestrictRedirects != "" {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(opts.RestrictRedirects))
	}

	telemetry.InstrumentResty(client, "webdoc/http")

	s := &Session{
		http: client,
		jar:  jar,
		opts: opts,
	}

	if opts.CacheDir != "" || opts.InMemoryCache {
		ttl := opts.CacheTTL
		if ttl == 0 {
			ttl = DefaultCacheTTL
		}
		cache, err := openPageCache(opts.CacheDir, ttl)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	return s, nil
}

// Client exposes the underlying resty client for requests the wrapper
// API does not cover. Pair it with Wrap to get a Document-aware
// response back.
func (s *Session) Client() *resty.Client {
	return s.http
}

// UserAgent returns the User-Agent header the session sends.
func (s *Session) UserAgent() string {
	return s.http.Header.Get("User-Agent")
}

// Get fetches a URL. When the page cache is enabled and holds a fresh
// copy, no network request is made.
func (s *Session) Get(ctx context.Context, url string) (*Response, error) {
	ctx, span := tracer.Start(ctx, "session:Get")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.get(ctx, url)
		if err == nil {
			span.SetStatus(codes.Ok, "CACHE HIT")
			return fromCache(s, cached), nil
		}
		if err != errPageNotCached {
			span.RecordError(err)
		}
	}

	res, err := s.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	response := Wrap(s, res)
	if s.cache != nil && res.IsSuccess() {
		err := s.cache.set(ctx, url, cachedPage{
			URL:         response.URL(),
			ContentType: res.Header().Get("Content-Type"),
			Contents:    res.Body(),
		})
		if err != nil {
			span.RecordError(err)
		}
	}
	return response, nil
}

// Post submits form data to a URL.
func (s *Session) Post(ctx context.Context, url string, form map[string]string) (*Response, error) {
	ctx, span := tracer.Start(ctx, "session:Post")
	defer span.End()

	res, err := s.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to post")
		return nil, err
	}
	return Wrap(s, res), nil
}

// Renderer returns the session's browser renderer, launching state
// lazily on first use.
func (s *Session) Renderer() *render.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.renderer == nil {
		s.renderer = render.New(s.opts.Browser)
	}
	return s.renderer
}

// Close releases the page cache and, if a browser was created, closes
// it first.
func (s *Session) Close() error {
	s.mu.Lock()
	renderer := s.renderer
	s.renderer = nil
	s.mu.Unlock()

	if renderer != nil {
		if err := renderer.Close(); err != nil {
			return err
		}
	}
	if s.cache != nil {
		return s.cache.close()
	}
	return nil
}
