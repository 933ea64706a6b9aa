package document

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Element is a single node cut out of a Document. It shares the full
// query surface, scoped to its subtree.
type Element struct {
	parser
}

func newElement(url string, node *html.Node) *Element {
	return &Element{parser: parser{url: url, node: node}}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// Attrs returns all attributes as a map.
func (e *Element) Attrs() map[string]string {
	attrs := make(map[string]string, len(e.node.Attr))
	for _, a := range e.node.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// AttrList splits a whitespace-separated attribute value into its
// parts. Intended for class and rel, which usually carry many.
func (e *Element) AttrList(name string) []string {
	value := e.Attr(name)
	if value == "" {
		return nil
	}
	return strings.Fields(value)
}

func (e *Element) String() string {
	attrs := e.Attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	fmt.Fprintf(&out, "<Element %q", e.Tag())
	for _, k := range keys {
		fmt.Fprintf(&out, " %s=%q", k, attrs[k])
	}
	out.WriteString(">")
	return out.String()
}
