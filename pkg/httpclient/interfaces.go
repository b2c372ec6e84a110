package httpclient

import (
	"context"
	"net/http"
)

// Request is a fully resolved HTTP exchange description handed to a Client.
// Body is sent verbatim when non-nil; a nil Body sends no payload.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
