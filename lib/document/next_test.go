package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, url, markup string) *Document {
	t.Helper()
	doc, err := FromString(url, markup)
	require.NoError(t, err)
	return doc
}

func TestNextRelWins(t *testing.T) {
	doc := mustDoc(t, "https://example.com/feed", `<html><body>
		<a href="/feed/3">more results</a>
		<a rel="nofollow next" href="/feed/2">next</a>
	</body></html>`)
	require.Equal(t, "https://example.com/feed/2", doc.Next())
}

func TestNextClass(t *testing.T) {
	doc := mustDoc(t, "https://example.com/blog/", `<html><body>
		<a class="pagination-next" href="archive/2">Older posts</a>
	</body></html>`)
	require.Equal(t, "https://example.com/blog/archive/2", doc.Next())
}

func TestNextHrefContainsPage(t *testing.T) {
	doc := mustDoc(t, "https://example.com/list", `<html><body>
		<a href="/list?page=2">More</a>
	</body></html>`)
	require.Equal(t, "https://example.com/list?page=2", doc.Next())
}

func TestNextFallbackLastCandidate(t *testing.T) {
	doc := mustDoc(t, "https://example.com/", `<html><body>
		<a href="/a">show more a</a>
		<a href="/b">show more b</a>
	</body></html>`)
	require.Equal(t, "https://example.com/b", doc.Next())
}

func TestNextNoCandidates(t *testing.T) {
	doc := mustDoc(t, "https://example.com/", `<html><body>
		<a href="/prev">previous</a>
	</body></html>`)
	require.Equal(t, "", doc.Next())
}

func TestNextCustomSymbols(t *testing.T) {
	doc := mustDoc(t, "https://example.com/", `<html><body>
		<a href="/weiter?page=2">Weiter</a>
	</body></html>`)
	require.Equal(t, "", doc.Next())
	require.Equal(t, "https://example.com/weiter?page=2", doc.Next("weiter"))
}

func TestNextSymbolMatchIgnoresWhitespace(t *testing.T) {
	doc := mustDoc(t, "https://example.com/", `<html><body>
		<a rel="next" href="/2">Show
			More</a>
	</body></html>`)
	require.Equal(t, "https://example.com/2", doc.Next())
	// a multi-word symbol still matches text broken across lines
	require.Equal(t, "https://example.com/2", doc.Next("show more"))
}

func TestNextSkipsAnchorsWithoutHref(t *testing.T) {
	doc := mustDoc(t, "https://example.com/", `<html><body>
		<a>next</a>
	</body></html>`)
	require.Equal(t, "", doc.Next())
}

func TestClosestAnchor(t *testing.T) {
	doc := mustDoc(t, "https://example.com/", `<html><body>
		<a href="/grades">Grade Book</a>
		<a href="/attendance">Attendance</a>
		<a href="/schedule">Class Schedule</a>
	</body></html>`)

	anchor, similarity := doc.ClosestAnchor("gradebook")
	require.Equal(t, "/grades", anchor.Href)
	require.Greater(t, similarity, 0.9)

	empty := mustDoc(t, "https://example.com/", `<html><body></body></html>`)
	anchor, similarity = empty.ClosestAnchor("anything")
	require.Zero(t, similarity)
	require.Empty(t, anchor.Href)
}
