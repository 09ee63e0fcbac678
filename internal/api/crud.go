package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tiendalab/tienda-bff/internal/api/shared"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
	"github.com/tiendalab/tienda-bff/internal/platform/fakestore"
	"github.com/tiendalab/tienda-bff/internal/platform/logger"
)

// StoreClient is the upstream API as seen by the handlers.
type StoreClient interface {
	Get(ctx context.Context, path string, query url.Values) (*fakestore.Response, error)
	Post(ctx context.Context, path string, body []byte) (*fakestore.Response, error)
	Put(ctx context.Context, path string, body []byte) (*fakestore.Response, error)
	Delete(ctx context.Context, path string) (*fakestore.Response, error)
}

// crud implements the five standard routes of one upstream collection.
type crud struct {
	client      StoreClient
	validator   *validation.Validator
	noun        noun
	path        string
	listQuery   []string
	createRules validation.Rules
	updateRules validation.Rules
}

// List handles GET /{collection}.
func (c *crud) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.client.Get(r.Context(), c.path, forwardQuery(r.URL.Query(), c.listQuery...))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, failureStatus(resp), c.noun.listFailed())
		return
	}
	respondList(w, r, resp, c.noun.listed(), c.noun.totalKey())
}

// Get handles GET /{collection}/{id}.
func (c *crud) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := c.client.Get(r.Context(), c.itemPath(id), nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() || resp.Empty() {
		shared.RespondWithError(w, r, http.StatusNotFound, c.noun.notFound(id))
		return
	}
	respondEnvelope(w, r, http.StatusOK, resp, c.noun.found(id))
}

// Create handles POST /{collection}.
func (c *crud) Create(w http.ResponseWriter, r *http.Request) {
	_, raw, ok := decodeAndValidate(w, r, c.validator, c.createRules)
	if !ok {
		return
	}

	resp, err := c.client.Post(r.Context(), c.path, raw)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, failureStatus(resp), c.noun.createFailed())
		return
	}
	respondEnvelope(w, r, http.StatusCreated, resp, c.noun.created())
}

// Update handles PUT /{collection}/{id}.
func (c *crud) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, raw, ok := decodeAndValidate(w, r, c.validator, c.updateRules)
	if !ok {
		return
	}

	resp, err := c.client.Put(r.Context(), c.itemPath(id), raw)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, http.StatusBadRequest, c.noun.updateFailed(id))
		return
	}
	respondEnvelope(w, r, http.StatusOK, resp, c.noun.updated(id))
}

// Delete handles DELETE /{collection}/{id}.
func (c *crud) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := c.client.Delete(r.Context(), c.itemPath(id))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, http.StatusBadRequest, c.noun.deleteFailed(id))
		return
	}
	shared.RespondNoContent(w)
}

func (c *crud) itemPath(id string) string {
	return c.path + "/" + url.PathEscape(id)
}

// decodeAndValidate decodes the body and applies rules, writing a 400 or 422
// response on failure. The raw body is returned for forwarding.
func decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	v *validation.Validator,
	rules validation.Rules,
) (map[string]any, []byte, bool) {
	fields, raw, err := shared.DecodeJSONObject(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, nil, false
	}

	if errs := v.Validate(fields, rules); errs != nil {
		logger.FromContextOrDefault(r.Context(), nil).Debug("request validation failed",
			"path", r.URL.Path,
			"fields", errs.Fields())
		shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, ValidationEnvelope{
			Mensaje: msgValidation,
			Errores: errs,
		})
		return nil, nil, false
	}
	return fields, raw, true
}

// respondEnvelope wraps a successful upstream body.
func respondEnvelope(w http.ResponseWriter, r *http.Request, status int, resp *fakestore.Response, mensaje string) {
	datos, err := resp.JSON()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, status, Envelope{Mensaje: mensaje, Datos: datos})
}

// respondList wraps a successful upstream collection with its element count.
func respondList(w http.ResponseWriter, r *http.Request, resp *fakestore.Response, mensaje, totalKey string) {
	datos, err := resp.JSON()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	total, ok := resp.Count()
	if !ok && !resp.Empty() {
		logger.FromContextOrDefault(r.Context(), nil).Warn("upstream collection is not an array",
			"path", r.URL.Path)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ListEnvelope{
		Mensaje:  mensaje,
		TotalKey: totalKey,
		Total:    total,
		Datos:    datos,
	})
}

// failureStatus is the status relayed for an unsuccessful upstream reply.
// Only client and server error codes are passed through.
func failureStatus(resp *fakestore.Response) int {
	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode
	}
	return http.StatusBadGateway
}

// forwardQuery keeps only the allowed query parameters.
func forwardQuery(q url.Values, allowed ...string) url.Values {
	out := url.Values{}
	for _, key := range allowed {
		if vals, ok := q[key]; ok {
			out[key] = vals
		}
	}
	return out
}
