// Package document wraps a parsed HTML page with the query surface the
// rest of the library is built on: CSS selection through goquery, XPath
// through htmlquery, text extraction, link resolution and next-page
// discovery. It owns no parsing machinery of its own, the tree comes
// from golang.org/x/net/html.
package document

import (
	"bytes"

	"webdoc/lib/charsetutil"
	"webdoc/lib/htmlutil"

	"golang.org/x/net/html"
)

// DefaultURL is assigned to documents constructed from markup alone.
// It matches the placeholder origin used for inline rendering.
const DefaultURL = "https://example.org/"

type Options struct {
	// URL the markup originated from, used for link absolutization.
	URL string
	// HTML is the raw payload as received from the transport.
	HTML []byte
	// ContentType is the transport Content-Type header, consulted for
	// charset resolution. May be empty.
	ContentType string
}

// Document is a full HTML page ready for querying.
type Document struct {
	parser
	encoding string
}

func New(opts Options) (*Document, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}

	decoded, encoding := charsetutil.Decode(opts.HTML, opts.ContentType)
	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, err
	}

	return &Document{
		parser: parser{
			url:  opts.URL,
			node: root,
			raw:  decoded,
		},
		encoding: encoding,
	}, nil
}

// FromString parses markup that is already UTF-8, for example rendered
// browser output or test fixtures.
func FromString(url, markup string) (*Document, error) {
	return New(Options{URL: url, HTML: []byte(markup)})
}

// URL returns the address the document was fetched from.
func (d *Document) URL() string {
	return d.url
}

// Encoding returns the charset the source payload was decoded from.
func (d *Document) Encoding() string {
	return d.encoding
}

func (d *Document) String() string {
	return "<Document " + d.url + ">"
}

// parser is the query core shared by Document and Element, mirroring
// the split between a page and a node cut out of it.
type parser struct {
	url  string
	node *html.Node
	raw  []byte
}

// HTML returns the markup as a string. Documents return the decoded
// source payload, elements re-serialize their subtree.
func (p *parser) HTML() string {
	if p.raw != nil {
		return string(bytes.TrimSpace(p.raw))
	}
	rendered, err := htmlutil.Render(p.node)
	if err != nil {
		return ""
	}
	return rendered
}

// RawHTML returns the markup as bytes.
func (p *parser) RawHTML() []byte {
	if p.raw != nil {
		return p.raw
	}
	return []byte(p.HTML())
}

// Text returns the element text with whitespace collapsed, the way a
// selector engine's text() renders it.
func (p *parser) Text() string {
	return htmlutil.CleanText(htmlutil.GetText(p.node))
}

// FullText returns the concatenation of every text node, untouched.
func (p *parser) FullText() string {
	return htmlutil.GetText(p.node)
}
