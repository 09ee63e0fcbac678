package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tiendalab/tienda-bff/internal/platform/traceid"
)

// Reply is a canned upstream response.
type Reply struct {
	Status int
	Body   string
}

// UpstreamCall records one request received by a FakeUpstream.
type UpstreamCall struct {
	Method string
	Path   string
	Query  string
	Body   string
	// RequestID is the trace ID the gateway forwarded, if any.
	RequestID string
}

// FakeUpstream is an in-process stand-in for the store API.
type FakeUpstream struct {
	server *httptest.Server

	mu      sync.Mutex
	replies map[string]Reply
	calls   []UpstreamCall
}

// NewFakeUpstream starts a FakeUpstream answering with replies. The server
// is closed when the test ends.
func NewFakeUpstream(t *testing.T, replies map[string]Reply) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{replies: make(map[string]Reply, len(replies))}
	for k, v := range replies {
		f.replies[k] = v
	}
	f.server = CreateTestServer(t, f)
	return f
}

// URL returns the base URL of the fake.
func (f *FakeUpstream) URL() string {
	return f.server.URL
}

// SetReply adds or replaces the reply for key ("METHOD /path").
func (f *FakeUpstream) SetReply(key string, r Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[key] = r
}

// Calls returns the requests received so far, in arrival order.
func (f *FakeUpstream) Calls() []UpstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]UpstreamCall(nil), f.calls...)
}

// ServeHTTP implements http.Handler.
func (f *FakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, UpstreamCall{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		Body:      string(body),
		RequestID: r.Header.Get(traceid.UpstreamHeader),
	})
	rep, ok := f.replies[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.Status)
	_, _ = w.Write([]byte(rep.Body))
}
