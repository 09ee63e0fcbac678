package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tiendalab/tienda-bff/internal/api/shared"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
	"github.com/tiendalab/tienda-bff/internal/platform/fakestore"
	"github.com/tiendalab/tienda-bff/internal/platform/logger"
)

// CartProducts is the products member of a cart, kept as raw entries so
// fields the gateway does not know about survive a merge.
type CartProducts struct {
	Products []json.RawMessage `json:"products"`
}

// CartHandler handles /carts requests.
type CartHandler struct {
	crud
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(client StoreClient, v *validation.Validator) *CartHandler {
	return &CartHandler{crud: crud{
		client:      client,
		validator:   v,
		noun:        cartNoun,
		path:        "/carts",
		listQuery:   []string{"limit", "sort", "startdate", "enddate"},
		createRules: cartCreateRules,
		updateRules: cartUpdateRules,
	}}
}

// ByUser handles GET /api/carts/user/{userId}.
//
// @Summary List the carts of one user
// @Tags carts
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} ListEnvelope
// @Failure 404 {object} shared.ErrorResponse
// @Router /carts/user/{userId} [get]
func (h *CartHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	resp, err := h.client.Get(r.Context(), "/carts/user/"+url.PathEscape(userID), nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf("No se encontraron carritos para el usuario %s", userID))
		return
	}
	respondList(w, r, resp,
		fmt.Sprintf("Carritos del usuario %s obtenidos exitosamente", userID),
		cartNoun.totalKey())
}

// AddProducts handles POST /api/carts/{id}/products. It reads the cart,
// appends the requested entries to its products and writes the whole list
// back. Entries are not merged by productId.
//
// @Summary Append products to a cart
// @Tags carts
// @Accept json
// @Produce json
// @Param id path int true "Cart ID"
// @Param body body CartProducts true "Entries to append"
// @Success 200 {object} Envelope
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 422 {object} ValidationEnvelope
// @Router /carts/{id}/products [post]
func (h *CartHandler) AddProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log := logger.FromContextOrDefault(r.Context(), nil)

	_, raw, ok := decodeAndValidate(w, r, h.validator, cartAddProductsRules)
	if !ok {
		return
	}
	var incoming CartProducts
	if err := json.Unmarshal(raw, &incoming); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %v", shared.ErrInvalidBody, err))
		return
	}

	cartResp, err := h.client.Get(r.Context(), h.itemPath(id), nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !cartResp.Successful() || cartResp.Empty() {
		shared.RespondWithError(w, r, http.StatusNotFound, cartNoun.notFound(id))
		return
	}

	var existing CartProducts
	if err := json.Unmarshal(cartResp.Body, &existing); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: cart %s: %v", fakestore.ErrInvalidResponse, id, err))
		return
	}

	merged := CartProducts{Products: MergeCartProducts(existing.Products, incoming.Products)}
	body, err := json.Marshal(merged)
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("failed to encode merged cart: %w", err))
		return
	}

	log.Debug("merging products into cart",
		"cart_id", id,
		"existing", len(existing.Products),
		"added", len(incoming.Products))

	updateResp, err := h.client.Put(r.Context(), h.itemPath(id), body)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !updateResp.Successful() {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Error al agregar productos al carrito con ID %s", id))
		return
	}
	respondEnvelope(w, r, http.StatusOK, updateResp,
		fmt.Sprintf("Productos agregados al carrito con ID %s", id))
}

// MergeCartProducts returns existing followed by added. Duplicate product IDs
// are kept as separate entries.
func MergeCartProducts(existing, added []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(existing)+len(added))
	out = append(out, existing...)
	return append(out, added...)
}
