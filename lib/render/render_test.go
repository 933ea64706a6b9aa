package render

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDelay(t *testing.T) {
	// attempt n waits 2^(n-1) seconds plus up to a second of jitter
	for attempt, base := range map[int]time.Duration{
		1: time.Second,
		2: 2 * time.Second,
		3: 4 * time.Second,
	} {
		delay := backoffDelay(attempt)
		require.GreaterOrEqual(t, delay, base)
		require.Less(t, delay, base+time.Second+time.Millisecond)
	}
}

func TestDataURL(t *testing.T) {
	markup := `<html><body>hello world</body></html>`
	dataURL := DataURL(markup)
	require.Contains(t, dataURL, "data:text/html")

	unescaped, err := url.PathUnescape(dataURL)
	require.NoError(t, err)
	require.Contains(t, unescaped, markup)
}

func TestCookiesFromJar(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	target, err := url.Parse("https://example.com/")
	require.NoError(t, err)
	jar.SetCookies(target, []*http.Cookie{
		{Name: "session", Value: "abc123", Path: "/"},
	})

	cookies := JarCookies(jar, "https://example.com/")
	require.Len(t, cookies, 1)

	params := CookiesFromJar("https://example.com/", cookies)
	require.Len(t, params, 1)
	require.Equal(t, "session", params[0].Name)
	require.Equal(t, "abc123", params[0].Value)
	// cookies without an explicit domain are scoped via the page url
	require.Equal(t, "https://example.com/", params[0].URL)
}

func TestJarCookiesNilJar(t *testing.T) {
	require.Nil(t, JarCookies(nil, "https://example.com/"))
}

func TestRenderRequestValidation(t *testing.T) {
	r := New(BrowserOptions{})
	_, err := r.renderOnce(context.Background(), Request{})
	require.Error(t, err)
}
