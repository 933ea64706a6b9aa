package document

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"

	"webdoc/lib/htmlutil"
	"webdoc/lib/textutil"
)

// FindOptions narrows a CSS query beyond what the selector expresses.
type FindOptions struct {
	// Containing keeps only elements whose text contains at least one
	// of the given strings, case-insensitively.
	Containing []string
	// Clean strips <script> and <style> subtrees from the results.
	// The matched document is left untouched, results are detached
	// clones.
	Clean bool
}

func mergeFindOptions(opts []FindOptions) FindOptions {
	if len(opts) == 0 {
		return FindOptions{}
	}
	return opts[0]
}

// Find runs a CSS selector and returns every matching element.
func (p *parser) Find(selector string, opts ...FindOptions) []*Element {
	options := mergeFindOptions(opts)

	sel := goquery.NewDocumentFromNode(p.node).Find(selector)

	var elements []*Element
	for _, node := range sel.Nodes {
		el := newElement(p.url, node)
		if len(options.Containing) > 0 &&
			!textutil.ContainsAny(el.FullText(), options.Containing) {
			continue
		}
		if options.Clean {
			clone := htmlutil.CloneNode(node)
			htmlutil.RemoveTags(clone, "script", "style")
			el = newElement(p.url, clone)
		}
		elements = append(elements, el)
	}
	return elements
}

// First returns the first element matching a CSS selector, or nil.
func (p *parser) First(selector string, opts ...FindOptions) *Element {
	elements := p.Find(selector, opts...)
	if len(elements) == 0 {
		return nil
	}
	return elements[0]
}

// XPath runs an XPath expression and returns every matching element.
// Attribute and text selections come back as synthetic elements; use
// XPathStrings when the expression selects values rather than nodes.
func (p *parser) XPath(expr string) ([]*Element, error) {
	nodes, err := htmlquery.QueryAll(p.node, expr)
	if err != nil {
		return nil, err
	}
	elements := make([]*Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, newElement(p.url, node))
	}
	return elements, nil
}

// XPathFirst returns the first element matching an XPath expression,
// or nil without error when nothing matches.
func (p *parser) XPathFirst(expr string) (*Element, error) {
	node, err := htmlquery.Query(p.node, expr)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}
	return newElement(p.url, node), nil
}

// XPathStrings evaluates an XPath expression that selects values, such
// as //a/@href, and returns the string content of each result.
func (p *parser) XPathStrings(expr string) ([]string, error) {
	nodes, err := htmlquery.QueryAll(p.node, expr)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(nodes))
	for _, node := range nodes {
		values = append(values, htmlquery.InnerText(node))
	}
	return values, nil
}
