// Package requests turns a logical request description into an HTTP call and
// reports the outcome as a result.Result instead of an error.
package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/netsdk/pkg/httpclient"
	"github.com/samvad-hq/netsdk/pkg/result"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultWorkers = 4
)

// Request describes one call. Body is written verbatim when non-nil.
// Page is carried for the caller's bookkeeping and never alters the call.
type Request struct {
	URL     string
	Method  string
	Query   map[string]string
	Headers map[string]string
	Body    *string
	Page    int
}

// Outcome is the result type every execution produces.
type Outcome = result.Result[httpclient.Response]

// Executor runs requests on a bounded pool of goroutines.
type Executor struct {
	client httpclient.Client
	slots  *semaphore.Weighted
	log    Logger
}

// DefaultHTTPClient returns the resty transport with the default timeout.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(DefaultTimeout, nil)
}

// NewExecutor wires an executor. A nil client uses DefaultHTTPClient and a
// non-positive worker count uses DefaultWorkers.
func NewExecutor(client httpclient.Client, workers int, log Logger) *Executor {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Executor{
		client: client,
		slots:  semaphore.NewWeighted(int64(workers)),
		log:    ensureLogger(log),
	}
}

// Execute runs req and blocks until its outcome is available.
func (e *Executor) Execute(ctx context.Context, req Request) Outcome {
	return <-e.Submit(ctx, req)
}

// Submit schedules req on the worker pool. The returned channel yields
// exactly one outcome and is then closed.
func (e *Executor) Submit(ctx context.Context, req Request) <-chan Outcome {
	out := make(chan Outcome, 1)
	if ctx == nil {
		ctx = context.Background()
	}

	if strings.TrimSpace(req.URL) == "" {
		out <- e.fail(req, req.URL, errEmptyURL)
		close(out)
		return out
	}
	target := BuildURL(req.URL, req.Query)

	go func() {
		defer close(out)
		if err := e.slots.Acquire(ctx, 1); err != nil {
			out <- e.fail(req, target, err)
			return
		}
		defer e.slots.Release(1)
		out <- e.run(ctx, req, target)
	}()
	return out
}

func (e *Executor) run(ctx context.Context, req Request, target string) (res Outcome) {
	defer func() {
		if p := recover(); p != nil {
			res = e.fail(req, target, fmt.Errorf("panic: %v", p))
		}
	}()

	var body []byte
	if req.Body != nil {
		body = []byte(*req.Body)
	}

	start := time.Now()
	e.log.DebugObj("http request dispatched", "http_request", map[string]any{
		"method": req.Method,
		"url":    target,
		"page":   req.Page,
	})

	resp, err := e.client.Do(ctx, httpclient.Request{
		Method:  req.Method,
		URL:     target,
		Headers: buildHeaders(req.Headers),
		Body:    body,
	})
	if err != nil {
		return e.fail(req, target, err)
	}

	e.log.DebugObj("http response received", "http_response", map[string]any{
		"method":     req.Method,
		"url":        target,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return result.Success(resp)
}

func (e *Executor) fail(req Request, target string, err error) Outcome {
	msg := failureMessage(err)
	e.log.ErrorObj("http request failed", "http_error", map[string]any{
		"method": req.Method,
		"url":    target,
		"error":  msg,
	})
	return result.Error[httpclient.Response](msg, nil)
}
