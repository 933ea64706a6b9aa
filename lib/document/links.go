package document

import (
	"net/url"
	"sort"
	"strings"

	"webdoc/lib/htmlutil"
)

func skipHref(href string) bool {
	if href == "" {
		return true
	}
	if strings.HasPrefix(href, "#") {
		return true
	}
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:")
}

// Anchors returns every followable <a> on the page with its cleaned
// text, hrefs as-is.
func (p *parser) Anchors() []htmlutil.Anchor {
	var anchors []htmlutil.Anchor
	for _, el := range p.Find("a") {
		anchor := htmlutil.GetAnchor(el.node)
		anchor.Href = strings.TrimSpace(anchor.Href)
		if skipHref(anchor.Href) {
			continue
		}
		anchors = append(anchors, anchor)
	}
	return anchors
}

// Links returns the set of link targets on the page in as-is form,
// sorted for determinism. Fragment-only, javascript: and mailto:
// targets are skipped.
func (p *parser) Links() []string {
	return p.linkSet(func(href string) string { return href })
}

// AbsoluteLinks returns the set of link targets resolved against the
// page's base URL.
func (p *parser) AbsoluteLinks() []string {
	return p.linkSet(p.absolute)
}

func (p *parser) linkSet(resolve func(string) string) []string {
	seen := map[string]struct{}{}
	for _, anchor := range p.Anchors() {
		href := resolve(anchor.Href)
		if href == "" {
			continue
		}
		seen[href] = struct{}{}
	}

	links := make([]string, 0, len(seen))
	for href := range seen {
		links = append(links, href)
	}
	sort.Strings(links)
	return links
}

// BaseURL returns the base the page's relative links resolve against.
// A <base href> tag wins; it may itself be relative, in which case it
// resolves against the page URL. Otherwise the page URL with the last
// path segment dropped is used.
func (p *parser) BaseURL() string {
	if base := p.First("base"); base != nil {
		href := strings.TrimSpace(base.Attr("href"))
		if href != "" {
			pageURL, err := url.Parse(p.url)
			if err != nil {
				return href
			}
			resolved, err := pageURL.Parse(href)
			if err != nil {
				return href
			}
			return resolved.String()
		}
	}

	pageURL, err := url.Parse(p.url)
	if err != nil {
		return p.url
	}
	if idx := strings.LastIndex(pageURL.Path, "/"); idx >= 0 {
		pageURL.Path = pageURL.Path[:idx+1]
	} else {
		pageURL.Path = "/"
	}
	pageURL.RawQuery = ""
	pageURL.Fragment = ""
	return pageURL.String()
}

// absolute resolves a single link against the page's base URL,
// returning "" when the link cannot be parsed.
func (p *parser) absolute(link string) string {
	base, err := url.Parse(p.BaseURL())
	if err != nil {
		return ""
	}
	resolved, err := base.Parse(link)
	if err != nil {
		return ""
	}
	return resolved.String()
}
