package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/PuerkitoBio/goquery"
)

// ErrInvalidJSON is returned when a body cannot be read as the requested JSON shape.
var ErrInvalidJSON = errors.New("invalid json body")

// Response captures one completed HTTP exchange. It is immutable: the
// constructor copies its inputs and accessors hand out copies.
type Response struct {
	body    []byte
	status  int
	message string
	headers http.Header
}

// NewResponse builds a Response from the raw exchange data.
func NewResponse(body []byte, status int, message string, headers http.Header) Response {
	return Response{
		body:    bytes.Clone(body),
		status:  status,
		message: message,
		headers: cloneHeaders(headers),
	}
}

func (r Response) Body() []byte         { return bytes.Clone(r.body) }
func (r Response) StatusCode() int      { return r.status }
func (r Response) Message() string      { return r.message }
func (r Response) Headers() http.Header { return cloneHeaders(r.headers) }

// Header returns the first value for key.
func (r Response) Header(key string) string { return r.headers.Get(key) }

// String decodes the body as UTF-8.
func (r Response) String() string { return string(r.body) }

// JSONObject parses the body as a JSON object. An empty body yields an empty map.
func (r Response) JSONObject() (map[string]any, error) {
	out := map[string]any{}
	if len(r.body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: null is not an object", ErrInvalidJSON)
	}
	return out, nil
}

// JSONArray parses the body as a JSON array. An empty body yields an empty slice.
func (r Response) JSONArray() ([]any, error) {
	out := []any{}
	if len(r.body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: null is not an array", ErrInvalidJSON)
	}
	return out, nil
}

// Document parses the body as HTML.
func (r Response) Document() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// IsSuccess reports a 2xx status.
func (r Response) IsSuccess() bool { return r.status/100 == 2 }

// Equal compares all four fields; header values compare in order.
func (r Response) Equal(other Response) bool {
	if r.status != other.status || r.message != other.message {
		return false
	}
	if !bytes.Equal(r.body, other.body) {
		return false
	}
	return maps.EqualFunc(r.headers, other.headers, func(a, b []string) bool {
		return slices.Equal(a, b)
	})
}

func cloneHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		out[k] = slices.Clone(v)
	}
	return out
}
