package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestGetText(t *testing.T) {
	node := parseFragment(t, `<p>Hello <b>there</b>, world.</p>`)
	require.Equal(t, "Hello there, world.", GetText(node))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a \n\t b    c "))
	require.Equal(t, "ab", CleanText("a\x00b"))
	// a single line break between words must become a space
	require.Equal(t, "Intro to Scraping", CleanText("Intro to\nScraping"))
	require.Equal(t, "one two", CleanText("one\ttwo"))
}

func TestGetAnchor(t *testing.T) {
	root := parseFragment(t, `<a href="/courses?id=3">  Intro to
		Scraping  </a>`)
	var a *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			a = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, a)

	anchor := GetAnchor(a)
	require.Equal(t, "Intro to Scraping", anchor.Name)
	require.Equal(t, "/courses?id=3", anchor.Href)
}

func TestRemoveTags(t *testing.T) {
	node := parseFragment(t, `<div><script>var x = 1;</script><p>kept</p><style>p {}</style></div>`)
	RemoveTags(node, "script", "style")

	rendered, err := Render(node)
	require.NoError(t, err)
	require.NotContains(t, rendered, "script")
	require.NotContains(t, rendered, "style")
	require.Contains(t, rendered, "<p>kept</p>")
}

func TestCloneNodeDetached(t *testing.T) {
	node := parseFragment(t, `<div><p>a</p></div>`)
	clone := CloneNode(node)
	require.Nil(t, clone.Parent)

	// mutating the clone must not affect the original
	RemoveTags(clone, "p")
	original, err := Render(node)
	require.NoError(t, err)
	require.Contains(t, original, "<p>a</p>")
}
