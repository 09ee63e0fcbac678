package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/tiendalab/tienda-bff/internal/api"
	"github.com/tiendalab/tienda-bff/internal/api/middleware"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
	"github.com/tiendalab/tienda-bff/internal/config"
	"github.com/tiendalab/tienda-bff/internal/platform/fakestore"
	"github.com/tiendalab/tienda-bff/internal/testutils"
)

// testGateway wires the real handlers and client against a fake upstream.
type testGateway struct {
	router   http.Handler
	upstream *testutils.FakeUpstream
}

func newTestGateway(t *testing.T, replies map[string]testutils.Reply) *testGateway {
	t.Helper()

	up := testutils.NewFakeUpstream(t, replies)
	return newTestGatewayWithURL(t, up.URL(), up)
}

func newTestGatewayWithURL(t *testing.T, baseURL string, up *testutils.FakeUpstream) *testGateway {
	t.Helper()

	client, err := fakestore.NewClient(config.UpstreamConfig{BaseURL: baseURL, TimeoutSeconds: 2}, nil)
	require.NoError(t, err)

	v := validation.New()
	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(nil))
	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r,
			api.NewProductHandler(client, v),
			api.NewCartHandler(client, v),
			api.NewUserHandler(client, v))
	})

	return &testGateway{router: r, upstream: up}
}

func (g *testGateway) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)
	return w
}
