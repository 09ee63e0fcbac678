package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tiendalab/tienda-bff/internal/api/shared"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
)

// ProductHandler handles /products requests.
type ProductHandler struct {
	crud
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(client StoreClient, v *validation.Validator) *ProductHandler {
	return &ProductHandler{crud: crud{
		client:      client,
		validator:   v,
		noun:        productNoun,
		path:        "/products",
		listQuery:   []string{"limit", "sort"},
		createRules: productCreateRules,
		updateRules: productUpdateRules,
	}}
}

// Categories handles GET /api/products/categories.
//
// @Summary List product categories
// @Tags products
// @Produce json
// @Success 200 {object} ListEnvelope
// @Failure 502 {object} shared.ErrorResponse
// @Router /products/categories [get]
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.Get(r.Context(), "/products/categories", nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, failureStatus(resp), "Error al obtener el listado de categorías")
		return
	}
	respondList(w, r, resp, "Listado de categorías obtenido exitosamente", "total_categorias")
}

// ByCategory handles GET /api/products/category/{category}.
//
// @Summary List products in a category
// @Tags products
// @Produce json
// @Param category path string true "Category name"
// @Param limit query int false "Maximum number of products"
// @Param sort query string false "asc or desc"
// @Success 200 {object} ListEnvelope
// @Failure 502 {object} shared.ErrorResponse
// @Router /products/category/{category} [get]
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	resp, err := h.client.Get(r.Context(),
		"/products/category/"+url.PathEscape(category),
		forwardQuery(r.URL.Query(), "limit", "sort"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !resp.Successful() {
		shared.RespondWithError(w, r, failureStatus(resp),
			"Error al obtener los productos de la categoría "+category)
		return
	}
	respondList(w, r, resp,
		"Productos de la categoría "+category+" obtenidos exitosamente",
		productNoun.totalKey())
}
