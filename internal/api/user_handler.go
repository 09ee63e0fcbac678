package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tiendalab/tienda-bff/internal/api/shared"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
	"github.com/tiendalab/tienda-bff/internal/platform/logger"
)

// LoginRequest is the credential pair forwarded to the upstream login.
type LoginRequest struct {
	Username any `json:"username"`
	Password any `json:"password"`
}

// ProfileData is the simulated profile returned by GET /users/profile.
type ProfileData struct {
	Mensaje string `json:"mensaje"`
	Usuario string `json:"usuario,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// ProfileEnvelope wraps ProfileData.
type ProfileEnvelope struct {
	Mensaje string      `json:"mensaje"`
	Datos   ProfileData `json:"datos"`
}

// UserHandler handles /users and /auth requests.
type UserHandler struct {
	crud
	tokenParser *jwt.Parser
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(client StoreClient, v *validation.Validator) *UserHandler {
	return &UserHandler{
		crud: crud{
			client:      client,
			validator:   v,
			noun:        userNoun,
			path:        "/users",
			listQuery:   []string{"limit", "sort"},
			createRules: userCreateRules,
			updateRules: userUpdateRules,
		},
		tokenParser: jwt.NewParser(),
	}
}

// Login handles POST /api/auth/login and POST /api/users/{id}/login.
// Only username and password are forwarded; the returned token is relayed
// untouched.
//
// @Summary Log in against the upstream store
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} LoginEnvelope
// @Failure 401 {object} shared.ErrorResponse
// @Failure 422 {object} ValidationEnvelope
// @Router /auth/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	fields, _, ok := decodeAndValidate(w, r, h.validator, loginRules)
	if !ok {
		return
	}

	body, err := json.Marshal(LoginRequest{
		Username: fields["username"],
		Password: fields["password"],
	})
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("failed to encode login request: %w", err))
		return
	}

	resp, err := h.client.Post(r.Context(), "/auth/login", body)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		logger.FromContextOrDefault(r.Context(), nil).Info("upstream rejected login",
			"status_code", resp.StatusCode)
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgLoginFailed)
		return
	}

	token, err := resp.JSON()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LoginEnvelope{Mensaje: msgLoginOK, Token: token})
}

// Profile handles GET /api/users/profile. The upstream has no profile
// endpoint, so the reply is simulated. The bearer token is decoded without
// verification only to echo who it was issued to.
//
// @Summary Simulated user profile
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer token returned by login"
// @Success 200 {object} ProfileEnvelope
// @Failure 401 {object} shared.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	// RequireAuthorization is the only reader of the Authorization header.
	header, ok := shared.GetAuthorization(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgTokenMissing)
		return
	}

	data := ProfileData{Mensaje: msgProfileSimulated}
	data.Usuario, data.ID = h.describeToken(header)

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileEnvelope{Mensaje: msgProfileOK, Datos: data})
}

// describeToken extracts the user and subject claims from an unverified
// token. Opaque or malformed tokens yield zero values.
func (h *UserHandler) describeToken(header string) (string, any) {
	raw := header
	if scheme, rest, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		raw = strings.TrimSpace(rest)
	}

	claims := jwt.MapClaims{}
	if _, _, err := h.tokenParser.ParseUnverified(raw, claims); err != nil {
		return "", nil
	}

	user, _ := claims["user"].(string)
	if user == "" {
		user, _ = claims["username"].(string)
	}
	return user, claims["sub"]
}
