package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"webdoc/lib/testutil"
)

func collectItems(t *testing.T, responses []*Response) []string {
	var items []string
	for _, res := range responses {
		doc, err := res.Document()
		require.NoError(t, err)
		for _, item := range doc.Find(".item") {
			items = append(items, item.Text())
		}
	}
	return items
}

func TestWalkPagesFollowsNextLinks(t *testing.T) {
	server := testutil.PaginatedServer(t, 3)
	s := testSession(t, Options{})

	var responses []*Response
	err := s.WalkPages(context.Background(), server.URL+"/page/1", PageOptions{}, func(res *Response) error {
		responses = append(responses, res)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"item-1", "item-2", "item-3"}, collectItems(t, responses))
}

func TestWalkPagesMaxPages(t *testing.T) {
	server := testutil.PaginatedServer(t, 5)
	s := testSession(t, Options{})

	var count int
	err := s.WalkPages(context.Background(), server.URL+"/page/1", PageOptions{MaxPages: 2}, func(*Response) error {
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestWalkPagesStop(t *testing.T) {
	server := testutil.PaginatedServer(t, 5)
	s := testSession(t, Options{})

	var count int
	err := s.WalkPages(context.Background(), server.URL+"/page/1", PageOptions{}, func(*Response) error {
		count++
		if count == 3 {
			return ErrStopWalk
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestWalkPagesReportsCallbackError(t *testing.T) {
	server := testutil.PaginatedServer(t, 2)
	s := testSession(t, Options{})

	wantErr := fmt.Errorf("bad page")
	err := s.WalkPages(context.Background(), server.URL+"/page/1", PageOptions{}, func(*Response) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestWalkPagesBreaksLoops(t *testing.T) {
	server := testutil.Server(t, map[string]testutil.Page{
		"/a": testutil.HTMLPage(`<html><body><a rel="next" href="/b">Next</a></body></html>`),
		"/b": testutil.HTMLPage(`<html><body><a rel="next" href="/a">Next</a></body></html>`),
	})
	s := testSession(t, Options{})

	var count int
	err := s.WalkPages(context.Background(), server.URL+"/a", PageOptions{}, func(*Response) error {
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
