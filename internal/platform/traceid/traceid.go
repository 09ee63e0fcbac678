// Package traceid carries the per-request trace ID through a context. It is
// shared by the HTTP layer, which assigns the ID, and the upstream client,
// which forwards it.
package traceid

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

const (
	// Header carries the trace ID back to the client.
	Header = "X-Trace-ID"

	// UpstreamHeader carries the trace ID on requests to the store API.
	UpstreamHeader = "X-Request-ID"
)

// NewContext adds a trace ID to ctx. An inbound ID is kept when it is a
// valid UUID so clients can correlate their own logs; otherwise a new one
// is generated.
func NewContext(ctx context.Context, inbound string) context.Context {
	id := inbound
	if _, err := uuid.Parse(inbound); err != nil {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the trace ID stored in ctx, or "" when there is none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
