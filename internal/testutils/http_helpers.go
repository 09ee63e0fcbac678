package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendalab/tienda-bff/internal/api/shared"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// AssertErrorResponse checks that a response carries the expected status
// and exactly the expected {"mensaje"} body.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status code, body: %s", w.Body.String())

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp),
		"Failed to unmarshal error response: %s", w.Body.String())
	assert.Equal(t, expectedMessage, errResp.Mensaje)
}

// AssertNoContent checks for a bodiless 204.
func AssertNoContent(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes(), "Expected empty body for 204 No Content")
}
