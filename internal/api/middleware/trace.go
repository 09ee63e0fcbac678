package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tiendalab/tienda-bff/internal/platform/logger"
	"github.com/tiendalab/tienda-bff/internal/platform/traceid"
)

// NewTraceMiddleware returns middleware that adds a trace ID to the request
// context, echoes it in the X-Trace-ID response header and stores a logger
// carrying the ID for every later handler. It should be applied early in
// the chain.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := traceid.NewContext(r.Context(), r.Header.Get(traceid.Header))
			traceID := traceid.FromContext(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(traceid.Header, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
