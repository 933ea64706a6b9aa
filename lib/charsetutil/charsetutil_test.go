package charsetutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestFromContentType(t *testing.T) {
	require.Equal(t, "utf-8", FromContentType("text/html; charset=UTF-8"))
	require.Equal(t, "gb2312", FromContentType("text/html; charset=gb2312"))
	require.Equal(t, "", FromContentType("text/html"))
	require.Equal(t, "", FromContentType(""))
}

func TestDecodeUTF8Passthrough(t *testing.T) {
	body := []byte("<html><body>héllo</body></html>")
	decoded, name := Decode(body, "text/html; charset=utf-8")
	require.Equal(t, DefaultEncoding, name)
	require.Equal(t, body, decoded)
}

func TestDecodeContentTypeLabel(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("<html><body>café</body></html>"))
	require.NoError(t, err)

	decoded, name := Decode(encoded, "text/html; charset=iso-8859-1")
	// the WHATWG encoding tables canonicalize latin-1 to windows-1252
	require.Equal(t, "windows-1252", name)
	require.Contains(t, string(decoded), "café")
}

func TestDecodeMetaTag(t *testing.T) {
	page := `<html><head><meta charset="gbk"></head><body>你好</body></html>`
	encoded, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(page))
	require.NoError(t, err)

	decoded, name := Decode(encoded, "text/html")
	require.Equal(t, "gbk", name)
	require.Contains(t, string(decoded), "你好")
}

func TestDecodeUnlabeledUTF8(t *testing.T) {
	body := []byte("<html><body>héllo wörld</body></html>")
	decoded, name := Decode(body, "")
	require.Equal(t, DefaultEncoding, name)
	require.Equal(t, body, decoded)
}

func TestDecodeEmpty(t *testing.T) {
	decoded, name := Decode(nil, "")
	require.Equal(t, DefaultEncoding, name)
	require.Empty(t, decoded)
}
