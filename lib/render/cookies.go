package render

import (
	"net/http"
	"net/url"

	"github.com/go-rod/rod/lib/proto"
)

// CookiesFromJar converts net/http cookies into the browser's cookie
// parameters, scoped to the page URL when a cookie carries no domain
// of its own.
func CookiesFromJar(pageURL string, cookies []*http.Cookie) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, cookie := range cookies {
		param := &proto.NetworkCookieParam{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Domain:   cookie.Domain,
			Path:     cookie.Path,
			Secure:   cookie.Secure,
			HTTPOnly: cookie.HttpOnly,
		}
		if param.Domain == "" {
			param.URL = pageURL
		}
		params = append(params, param)
	}
	return params
}

// JarCookies collects the cookies a jar holds for a URL, for handing
// to CookiesFromJar.
func JarCookies(jar http.CookieJar, pageURL string) []*http.Cookie {
	if jar == nil {
		return nil
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	return jar.Cookies(parsed)
}
