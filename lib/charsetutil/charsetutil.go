package charsetutil

import (
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const DefaultEncoding = "utf-8"

// FromContentType extracts the charset parameter from a Content-Type
// header value, or "" when it carries none.
func FromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(params["charset"])
}

// Decode converts an HTML payload to UTF-8 and reports the charset it
// was decoded from. Resolution order: BOM, Content-Type charset
// parameter, <meta> declaration, statistical detection for unlabeled
// non-UTF-8 bodies. Decode never fails: when nothing sensible can be
// determined the payload is returned as-is.
func Decode(body []byte, contentType string) ([]byte, string) {
	if len(body) == 0 {
		return body, DefaultEncoding
	}

	enc, name, certain := xcharset.DetermineEncoding(body, contentType)

	// windows-1252 without certainty is DetermineEncoding's "no signal"
	// answer, not a declaration.
	if !certain && name == "windows-1252" {
		if utf8.Valid(body) {
			return body, DefaultEncoding
		}
		if detected, detectedName := detect(body); detected != nil {
			enc, name = detected, detectedName
		}
	}

	if name == DefaultEncoding {
		return body, DefaultEncoding
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil || len(decoded) == 0 {
		return body, name
	}
	return decoded, name
}

func detect(body []byte) (encoding.Encoding, string) {
	result, err := chardet.NewHtmlDetector().DetectBest(body)
	if err != nil {
		return nil, ""
	}
	enc, err := htmlindex.Get(result.Charset)
	if err != nil || enc == nil {
		return nil, ""
	}
	return enc, strings.ToLower(result.Charset)
}
