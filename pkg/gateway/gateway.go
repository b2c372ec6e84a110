// Package gateway is the caller-facing layer: it composes base URL and
// endpoint, runs the executor, and reports every exchange to the journal and
// the configured sinks without letting their failures reach the caller.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/netsdk/pkg/endpoints"
	"github.com/samvad-hq/netsdk/pkg/httpclient"
	"github.com/samvad-hq/netsdk/pkg/requests"
	"github.com/samvad-hq/netsdk/pkg/result"
	"github.com/samvad-hq/netsdk/pkg/sinks"
)

const recordTimeout = 5 * time.Second

// Logger is the logging surface the gateway shares with the executor.
type Logger = requests.Logger

// Journal keeps exchange summaries by id.
type Journal interface {
	Record(id string, payload []byte) error
	Lookup(id string) ([]byte, bool, error)
}

// Call is one request expressed as base URL plus endpoint.
type Call struct {
	BaseURL  string
	Endpoint string
	Method   string
	Query    map[string]string
	Headers  map[string]string
	Body     *string
	Page     int
}

// Overrides adjust a registered endpoint for a single call. Query and
// Headers are layered over the endpoint's own values.
type Overrides struct {
	Query   map[string]string
	Headers map[string]string
	Body    *string
	Page    int
}

// Gateway composes calls and hands them to the executor.
type Gateway struct {
	exec      *requests.Executor
	baseURL   string
	endpoints *endpoints.Registry
	journal   Journal
	fanout    *sinks.Fanout
	log       Logger
	newID     func() string
	closers   []func() error
}

// Option configures a Gateway.
type Option func(*Gateway)

func WithBaseURL(base string) Option               { return func(g *Gateway) { g.baseURL = base } }
func WithEndpoints(reg *endpoints.Registry) Option { return func(g *Gateway) { g.endpoints = reg } }
func WithJournal(j Journal) Option                 { return func(g *Gateway) { g.journal = j } }
func WithFanout(f *sinks.Fanout) Option            { return func(g *Gateway) { g.fanout = f } }
func WithLogger(log Logger) Option                 { return func(g *Gateway) { g.log = log } }

// New builds a Gateway around exec. A nil exec uses the default executor.
func New(exec *requests.Executor, opts ...Option) *Gateway {
	g := &Gateway{
		exec:  exec,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = nopLogger{}
	}
	if g.exec == nil {
		g.exec = requests.NewExecutor(nil, requests.DefaultWorkers, g.log)
	}
	return g
}

// ComposeURL joins baseURL and endpoint with a single slash.
func ComposeURL(baseURL, endpoint string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Execute runs call and returns its outcome.
func (g *Gateway) Execute(ctx context.Context, call Call) requests.Outcome {
	_, out := g.ExecuteTracked(ctx, call)
	return out
}

// ExecuteTracked runs call and also returns the exchange id under which it
// was journaled and published. An empty call.BaseURL falls back to the
// gateway's base URL.
func (g *Gateway) ExecuteTracked(ctx context.Context, call Call) (id string, out requests.Outcome) {
	if ctx == nil {
		ctx = context.Background()
	}
	id = g.newID()
	base := call.BaseURL
	if strings.TrimSpace(base) == "" {
		base = g.baseURL
	}
	url := ComposeURL(base, call.Endpoint)
	evt := sinks.NewEvent(id, call.Method, url, call.Page, time.Now())

	defer func() {
		if p := recover(); p != nil {
			out = result.Error[httpclient.Response](fmt.Sprintf("An error occurred: %v", p), nil)
		}
	}()

	out = g.exec.Execute(ctx, requests.Request{
		URL:     url,
		Method:  call.Method,
		Query:   call.Query,
		Headers: call.Headers,
		Body:    call.Body,
		Page:    call.Page,
	})

	if resp, ok := out.Get(); ok {
		evt = evt.Succeeded(resp.StatusCode(), resp.Message())
	} else {
		evt = evt.Failed(out.Message())
	}
	g.record(ctx, evt)
	return id, out
}

// ExecuteEndpoint runs the registered endpoint id with o applied.
func (g *Gateway) ExecuteEndpoint(ctx context.Context, id string, o Overrides) requests.Outcome {
	ep, ok := g.endpoints.ByID(id)
	if !ok {
		return result.Error[httpclient.Response](fmt.Sprintf("An error occurred: unknown endpoint %q", id), nil)
	}

	return g.Execute(ctx, Call{
		BaseURL:  ep.BaseURL,
		Endpoint: ep.Path,
		Method:   ep.Method,
		Query:    merge(ep.Query, o.Query),
		Headers:  merge(ep.Headers, o.Headers),
		Body:     o.Body,
		Page:     o.Page,
	})
}

// Lookup returns the journaled summary of exchange id.
func (g *Gateway) Lookup(id string) (sinks.Event, bool, error) {
	if g.journal == nil {
		return sinks.Event{}, false, nil
	}
	raw, ok, err := g.journal.Lookup(id)
	if err != nil || !ok {
		return sinks.Event{}, false, err
	}
	var evt sinks.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return sinks.Event{}, false, fmt.Errorf("decode journal entry %s: %w", id, err)
	}
	return evt, true, nil
}

// Close releases the journal, sinks and logger set up by Load.
func (g *Gateway) Close() error {
	var firstErr error
	for i := len(g.closers) - 1; i >= 0; i-- {
		if err := g.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.closers = nil
	return firstErr
}

// record journals and publishes evt. Failures are logged only.
func (g *Gateway) record(ctx context.Context, evt sinks.Event) {
	if g.journal != nil {
		payload, err := json.Marshal(evt)
		if err == nil {
			err = g.journal.Record(evt.ExchangeID, payload)
		}
		if err != nil {
			g.log.WarnObj("journal record failed", "journal_error", map[string]any{
				"exchange_id": evt.ExchangeID,
				"error":       err.Error(),
			})
		}
	}

	if g.fanout.Size() == 0 {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if _, err := g.fanout.Publish(pubCtx, evt); err != nil {
		g.log.WarnObj("exchange event publish failed", "sink_error", map[string]any{
			"exchange_id": evt.ExchangeID,
			"error":       err.Error(),
		})
	}
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

type nopLogger struct{}

func (nopLogger) InfoObj(string, string, interface{})  {}
func (nopLogger) DebugObj(string, string, interface{}) {}
func (nopLogger) WarnObj(string, string, interface{})  {}
func (nopLogger) ErrorObj(string, string, interface{}) {}
