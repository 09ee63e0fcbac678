package middleware

import (
	"net/http"
	"strings"

	"github.com/tiendalab/tienda-bff/internal/api/shared"
)

// MissingTokenMessage is returned when a protected route has no Authorization header.
const MissingTokenMessage = "Token de autenticación no proporcionado"

// RequireAuthorization rejects requests without an Authorization header.
// The token is not verified: the upstream issues it and the gateway keeps
// no session state. The raw header value is stored in the request context.
func RequireAuthorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MissingTokenMessage)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.SetAuthorization(r.Context(), header)))
	})
}
