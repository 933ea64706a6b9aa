package document

import (
	"strings"

	"github.com/antzucaro/matchr"

	"webdoc/lib/htmlutil"
	"webdoc/lib/textutil"
)

// DefaultNextSymbols are the link texts treated as "take me to the
// next page" when no explicit symbols are given.
var DefaultNextSymbols = []string{"next", "more", "older"}

// Next attempts to find the URL of the next page. Candidates are
// anchors whose text contains one of the symbols, compared with case
// and whitespace ignored; among those, rel="next" wins, then a class
// containing "next", then an href containing "page", and as a last
// resort the final candidate. Returns the absolute URL, or "" when no
// next page is apparent.
func (d *Document) Next(symbols ...string) string {
	if len(symbols) == 0 {
		symbols = DefaultNextSymbols
	}
	matchers := make([]string, len(symbols))
	for i, symbol := range symbols {
		matchers[i] = textutil.NormalizeName(symbol)
	}

	var candidates []*Element
	for _, anchor := range d.Find("a") {
		if textutil.MatchName(anchor.FullText(), matchers) {
			candidates = append(candidates, anchor)
		}
	}

	for _, candidate := range candidates {
		href := strings.TrimSpace(candidate.Attr("href"))
		if href == "" {
			continue
		}
		for _, rel := range candidate.AttrList("rel") {
			if rel == "next" {
				return d.absolute(href)
			}
		}
		for _, class := range candidate.AttrList("class") {
			if strings.Contains(class, "next") {
				return d.absolute(href)
			}
		}
		if strings.Contains(href, "page") {
			return d.absolute(href)
		}
	}

	for i := len(candidates) - 1; i >= 0; i-- {
		href := strings.TrimSpace(candidates[i].Attr("href"))
		if href != "" {
			return d.absolute(href)
		}
	}
	return ""
}

// ClosestAnchor returns the anchor whose text is most similar to the
// query, along with the similarity score in [0, 1]. Useful for
// navigating pages whose link labels are close to, but not exactly,
// what the caller expects.
func (p *parser) ClosestAnchor(query string) (htmlutil.Anchor, float64) {
	normalized := textutil.NormalizeName(query)

	var best htmlutil.Anchor
	var bestSimilarity float64
	for _, anchor := range p.Anchors() {
		similarity := matchr.JaroWinkler(normalized, textutil.NormalizeName(anchor.Name), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = anchor
		}
	}
	return best, bestSimilarity
}
