// Package testutil provides the little HTTP fixtures the package
// tests stand their sessions up against.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type Page struct {
	Body        string
	ContentType string
}

// HTMLPage wraps markup in a utf-8 text/html page.
func HTMLPage(body string) Page {
	return Page{Body: body, ContentType: "text/html; charset=utf-8"}
}

// Server serves a fixed set of pages by path and shuts down with the
// test. Unknown paths 404.
func Server(t testing.TB, pages map[string]Page) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		contentType := page.ContentType
		if contentType == "" {
			contentType = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		fmt.Fprint(w, page.Body)
	}))
	t.Cleanup(server.Close)
	return server
}

// PaginatedServer serves /page/1 through /page/n, each linking to the
// next and carrying one item, the shape pagination walks are tested
// against.
func PaginatedServer(t testing.TB, n int) *httptest.Server {
	pages := make(map[string]Page, n)
	for i := 1; i <= n; i++ {
		next := ""
		if i < n {
			next = fmt.Sprintf(`<a rel="next" href="/page/%d">Next</a>`, i+1)
		}
		pages[fmt.Sprintf("/page/%d", i)] = HTMLPage(fmt.Sprintf(
			`<html><body><div class="item">item-%d</div>%s</body></html>`,
			i, next,
		))
	}
	return Server(t, pages)
}

// CountingServer serves one page and reports how many requests it has
// seen, used for cache assertions.
func CountingServer(t testing.TB, page Page) (*httptest.Server, *int) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		contentType := page.ContentType
		if contentType == "" {
			contentType = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		fmt.Fprint(w, page.Body)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}
