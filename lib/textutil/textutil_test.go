package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "nextpage", NormalizeName("  Next  Page \n"))
	require.Equal(t, "older", NormalizeName("Older"))
}

func TestMatchName(t *testing.T) {
	matchers := []string{"next", "more", "older"}
	require.True(t, MatchName("Next Page", matchers))
	require.True(t, MatchName("load MORE", matchers))
	require.False(t, MatchName("previous", matchers))
}

func TestContainsAny(t *testing.T) {
	require.True(t, ContainsAny("Show Older Posts", []string{"older"}))
	require.False(t, ContainsAny("first", []string{"next", "more"}))
}
