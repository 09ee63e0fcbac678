package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendalab/tienda-bff/internal/platform/logger"
)

func TestDecodeJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantLen int
	}{
		{"object", `{"title":"x","price":1.5}`, false, 2},
		{"empty body", ``, false, 0},
		{"whitespace body", "  \n", false, 0},
		{"malformed", `{"title":`, true, 0},
		{"array", `[1,2]`, true, 0},
		{"null", `null`, true, 0},
		{"string", `"hello"`, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			fields, raw, err := DecodeJSONObject(r)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Len(t, fields, tc.wantLen)
			assert.NotEmpty(t, raw)
		})
	}
}

func TestDecodeJSONObjectTooLarge(t *testing.T) {
	body := `{"x":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	_, _, err := DecodeJSONObject(r)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestRespondWithError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/products/99", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusNotFound, "No se encontró ningún producto con el ID 99")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"mensaje":"No se encontró ningún producto con el ID 99"}`, w.Body.String())
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	l, buf := logger.NewTestLogger(t)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	r = r.WithContext(logger.WithContext(r.Context(), l))
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, r, http.StatusBadGateway, "Error al comunicarse con el servicio externo",
		errors.New(`upstream said {"password":"hunter22"}`))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"mensaje":"Error al comunicarse con el servicio externo"}`, w.Body.String())
	assert.NotContains(t, buf.String(), "hunter22")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
}

func TestRespondNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	RespondNoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
