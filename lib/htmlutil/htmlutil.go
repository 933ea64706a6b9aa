package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// CollapseSpace trims a string and folds every whitespace run,
// line breaks included, into a single space.
func CollapseSpace(s string) string {
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

func RemoveNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText is the normalization applied to anchor names and element
// text: trimmed, whitespace collapsed, printable runes only. The
// collapse must run first so line breaks survive as spaces rather
// than being stripped as non-printables.
func CleanText(s string) string {
	return RemoveNonPrintable(CollapseSpace(s))
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchor reads an <a> node into an Anchor. The href is returned
// as-is, resolution against a base url is the caller's concern.
func GetAnchor(node *html.Node) Anchor {
	return Anchor{
		Name: CleanText(GetText(node)),
		Href: Attr(node, "href"),
	}
}

// Attr returns the value of the named attribute on node, or "".
func Attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// CloneNode deep-copies a node subtree, detached from its parent and
// siblings.
func CloneNode(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	clone := &html.Node{
		Type:      node.Type,
		DataAtom:  node.DataAtom,
		Data:      node.Data,
		Namespace: node.Namespace,
		Attr:      append([]html.Attribute(nil), node.Attr...),
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(CloneNode(child))
	}
	return clone
}

// RemoveTags deletes every element with one of the given tag names
// from the subtree rooted at node. The node itself is never removed.
func RemoveTags(node *html.Node, tags ...string) {
	child := node.FirstChild
	for child != nil {
		next := child.NextSibling
		drop := false
		if child.Type == html.ElementNode {
			for _, t := range tags {
				if child.Data == t {
					drop = true
					break
				}
			}
		}
		if drop {
			node.RemoveChild(child)
		} else {
			RemoveTags(child, tags...)
		}
		child = next
	}
}

// Render serializes a node subtree back to HTML.
func Render(node *html.Node) (string, error) {
	var buffer bytes.Buffer
	err := html.Render(&buffer, node)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buffer.String()), nil
}
