package httpclient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A nil log keeps resty's default logger.
func NewRestyClient(timeout time.Duration, log resty.Logger) *RestyClient {
	c := newRestyBaseClient(timeout)
	if log != nil {
		c.SetLogger(log)
	}
	return &RestyClient{client: c}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetAllowGetMethodPayload(true)
	return c
}

// Do performs the request and reads the whole response body into memory.
// resty closes the underlying response body on every path.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaderMultiValues(req.Headers)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL)
	if err != nil {
		return Response{}, err
	}
	return NewResponse(resp.Body(), resp.StatusCode(), statusMessage(resp.Status(), resp.StatusCode()), resp.Header()), nil
}

// statusMessage strips the numeric code from a status line such as "200 OK".
func statusMessage(status string, code int) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
}
