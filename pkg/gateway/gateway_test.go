package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/netsdk/internal/config"
	"github.com/samvad-hq/netsdk/pkg/endpoints"
	"github.com/samvad-hq/netsdk/pkg/httpclient"
	"github.com/samvad-hq/netsdk/pkg/requests"
	"github.com/samvad-hq/netsdk/pkg/sinks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJournal struct {
	mu      sync.Mutex
	entries map[string][]byte
	err     error
}

func newMemJournal() *memJournal {
	return &memJournal{entries: make(map[string][]byte)}
}

func (j *memJournal) Record(id string, payload []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.entries[id] = append([]byte(nil), payload...)
	return nil
}

func (j *memJournal) Lookup(id string) ([]byte, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	v, ok := j.entries[id]
	return v, ok, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []sinks.Event
	err    error
}

func (s *recordingSink) ID() string   { return "rec" }
func (s *recordingSink) Type() string { return "test" }
func (s *recordingSink) Publish(_ context.Context, evt sinks.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return s.err
}

type captured struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func newServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.header = r.Header.Clone()
		got.body = string(body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newExecutor() *requests.Executor {
	return requests.NewExecutor(httpclient.NewRestyClient(2*time.Second, nil), 2, nil)
}

func fixedID(id string) func() string {
	return func() string { return id }
}

func TestComposeURL(t *testing.T) {
	cases := []struct {
		base, endpoint, want string
	}{
		{"https://api.example.com", "items", "https://api.example.com/items"},
		{"https://api.example.com/", "/items", "https://api.example.com/items"},
		{"https://api.example.com//", "v1/items", "https://api.example.com/v1/items"},
		{"https://api.example.com", "", "https://api.example.com/"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ComposeURL(tc.base, tc.endpoint))
	}
}

func TestExecuteComposesAndRecords(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"ok":true}`)
	journal := newMemJournal()
	sink := &recordingSink{}

	g := New(newExecutor(), WithJournal(journal), WithFanout(sinks.NewFanout([]sinks.Sink{sink})))
	g.newID = fixedID("ex-1")

	id, out := g.ExecuteTracked(context.Background(), Call{
		BaseURL:  srv.URL + "/",
		Endpoint: "/items",
		Method:   http.MethodGet,
		Query:    map[string]string{"q": "go"},
		Page:     3,
	})

	require.True(t, out.IsSuccess(), out.String())
	assert.Equal(t, "ex-1", id)
	assert.Equal(t, "/items", got.path)
	assert.Equal(t, "q=go", got.query)
	assert.Equal(t, 200, out.Value().StatusCode())

	evt, ok, err := g.Lookup("ex-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sinks.OutcomeSuccess, evt.Outcome)
	assert.Equal(t, 200, evt.StatusCode)
	assert.Equal(t, 3, evt.Page)
	assert.Equal(t, srv.URL+"/items", evt.URL)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "ex-1", sink.events[0].ExchangeID)
}

func TestExecuteUsesDefaultBaseURL(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "")
	g := New(newExecutor(), WithBaseURL(srv.URL))

	out := g.Execute(context.Background(), Call{Endpoint: "ping", Method: http.MethodGet})

	require.True(t, out.IsSuccess(), out.String())
	assert.Equal(t, "/ping", got.path)
}

func TestExecuteRecordsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	journal := newMemJournal()
	g := New(newExecutor(), WithJournal(journal))
	g.newID = fixedID("ex-fail")

	out := g.Execute(context.Background(), Call{BaseURL: addr, Endpoint: "x", Method: http.MethodGet})

	require.True(t, out.IsError())
	assert.Contains(t, out.Message(), "Network Error: ")

	evt, ok, err := g.Lookup("ex-fail")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sinks.OutcomeError, evt.Outcome)
	assert.Equal(t, out.Message(), evt.Error)
}

func TestRecordingFailuresDoNotAffectOutcome(t *testing.T) {
	srv, _ := newServer(t, http.StatusCreated, "done")
	journal := newMemJournal()
	journal.err = errors.New("disk full")
	sink := &recordingSink{err: errors.New("unreachable")}

	g := New(newExecutor(), WithJournal(journal), WithFanout(sinks.NewFanout([]sinks.Sink{sink})))

	out := g.Execute(context.Background(), Call{BaseURL: srv.URL, Endpoint: "a", Method: http.MethodPost})

	require.True(t, out.IsSuccess(), out.String())
	assert.Equal(t, 201, out.Value().StatusCode())
	assert.Len(t, sink.events, 1)
}

func TestExecuteEndpointMergesOverrides(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "")
	reg, err := endpoints.NewRegistry([]endpoints.Endpoint{{
		ID:      "search",
		BaseURL: srv.URL,
		Path:    "search",
		Method:  "post",
		Headers: map[string]string{"X-Client": "sdk", "X-Trace": "base"},
		Query:   map[string]string{"lang": "en", "size": "10"},
	}})
	require.NoError(t, err)

	g := New(newExecutor(), WithEndpoints(reg))
	body := "payload"
	out := g.ExecuteEndpoint(context.Background(), "search", Overrides{
		Query:   map[string]string{"size": "20"},
		Headers: map[string]string{"X-Trace": "override"},
		Body:    &body,
	})

	require.True(t, out.IsSuccess(), out.String())
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/search", got.path)
	assert.Equal(t, "lang=en&size=20", got.query)
	assert.Equal(t, "sdk", got.header.Get("X-Client"))
	assert.Equal(t, "override", got.header.Get("X-Trace"))
	assert.Equal(t, "payload", got.body)
}

func TestExecuteEndpointUnknown(t *testing.T) {
	g := New(newExecutor())

	out := g.ExecuteEndpoint(context.Background(), "missing", Overrides{})

	require.True(t, out.IsError())
	assert.Equal(t, `An error occurred: unknown endpoint "missing"`, out.Message())
}

func TestLookupWithoutJournal(t *testing.T) {
	g := New(nil)

	_, ok, err := g.Lookup("anything")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFromConfigDefaults(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "hi")
	cfg := &config.Config{
		BaseURL:        srv.URL,
		RequestTimeout: time.Second,
		Workers:        1,
		JournalType:    "none",
	}

	g, err := FromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	out := g.Execute(context.Background(), Call{Endpoint: "hello", Method: http.MethodGet})
	require.True(t, out.IsSuccess(), out.String())
	assert.Equal(t, "hi", string(out.Value().Body()))
}

func TestFromConfigRejectsBadJournal(t *testing.T) {
	cfg := &config.Config{RequestTimeout: time.Second, Workers: 1, JournalType: "redis"}

	_, err := FromConfig(context.Background(), cfg, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "init journal")
}

func TestFromConfigNil(t *testing.T) {
	_, err := FromConfig(context.Background(), nil, nil)
	require.Error(t, err)
}
