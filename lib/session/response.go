package session

import (
	"context"

	"github.com/go-resty/resty/v2"

	"webdoc/lib/document"
	"webdoc/lib/render"
)

// Response is an HTML-enabled response: the transport result plus a
// lazily parsed Document.
type Response struct {
	session *Session

	url         string
	statusCode  int
	contentType string
	body        []byte
	fromCache   bool

	raw *resty.Response

	doc *document.Document
}

// Wrap turns a resty response obtained through Client() into a
// Document-aware response.
func Wrap(s *Session, res *resty.Response) *Response {
	url := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		// follow redirects to the final address
		url = res.RawResponse.Request.URL.String()
	}
	return &Response{
		session:     s,
		url:         url,
		statusCode:  res.StatusCode(),
		contentType: res.Header().Get("Content-Type"),
		body:        res.Body(),
		raw:         res,
	}
}

func fromCache(s *Session, page cachedPage) *Response {
	return &Response{
		session:     s,
		url:         page.URL,
		statusCode:  200,
		contentType: page.ContentType,
		body:        page.Contents,
		fromCache:   true,
	}
}

// URL is the final address of the response, after redirects.
func (r *Response) URL() string {
	return r.url
}

func (r *Response) StatusCode() int {
	return r.statusCode
}

func (r *Response) Body() []byte {
	return r.body
}

// FromCache reports whether the response was served by the session's
// page cache rather than the network.
func (r *Response) FromCache() bool {
	return r.fromCache
}

// Raw exposes the underlying resty response. It is nil for cached
// responses.
func (r *Response) Raw() *resty.Response {
	return r.raw
}

// Document parses the response body, resolving the charset from the
// Content-Type header and the markup itself. The parse happens once;
// subsequent calls return the same document, or the rendered one after
// Render.
func (r *Response) Document() (*document.Document, error) {
	if r.doc != nil {
		return r.doc, nil
	}

	doc, err := document.New(document.Options{
		URL:         r.url,
		HTML:        r.body,
		ContentType: r.contentType,
	})
	if err != nil {
		return nil, err
	}
	r.doc = doc
	return doc, nil
}

// Render reloads the response in the headless browser and replaces the
// response's Document with the JavaScript-executed version. The render
// result carries the evaluated script value and, if requested, the
// live page.
func (r *Response) Render(ctx context.Context, req render.Request) (*render.Result, error) {
	if req.URL == "" {
		req.URL = r.url
	}
	if req.URL == document.DefaultURL && req.HTML == "" {
		// nothing real to navigate to, render the body we hold
		doc, err := r.Document()
		if err != nil {
			return nil, err
		}
		req.HTML = doc.HTML()
	}
	if len(req.Cookies) == 0 {
		cookies := render.JarCookies(r.session.jar, req.URL)
		req.Cookies = render.CookiesFromJar(req.URL, cookies)
	}

	result, err := r.session.Renderer().Render(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := document.FromString(r.url, result.HTML)
	if err != nil {
		return nil, err
	}
	r.doc = doc
	return result, nil
}
