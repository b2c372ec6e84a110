package requests

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// DefaultContentType is applied to every request before caller headers.
const DefaultContentType = "application/x-www-form-urlencoded"

// BuildURL appends query to rawURL. Keys and values are form-encoded one by
// one, in sorted key order. A component containing '|' is left as-is so that
// pre-encoded pipe-delimited lists survive. An empty query returns rawURL.
func BuildURL(rawURL string, query map[string]string) string {
	if len(query) == 0 {
		return rawURL
	}

	keys := slices.Sorted(maps.Keys(query))
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, encodeComponent(k)+"="+encodeComponent(query[k]))
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(pairs, "&")
}

// formEscaper applies the WHATWG form-urlencoded set on top of
// url.QueryEscape: '*' stays literal and '~' is escaped.
var formEscaper = strings.NewReplacer("%2A", "*", "~", "%7E")

func encodeComponent(s string) string {
	if strings.Contains(s, "|") {
		return s
	}
	return formEscaper.Replace(url.QueryEscape(s))
}

// buildHeaders layers caller headers over the default content type.
func buildHeaders(custom map[string]string) http.Header {
	h := make(http.Header, len(custom)+1)
	h.Set("Content-Type", DefaultContentType)
	for k, v := range custom {
		h.Set(k, v)
	}
	return h
}
