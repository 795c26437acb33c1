package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with filtering, sorting and
// pagination query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := catalog.ParseCriteria(
		q.Get("categoryId"),
		q.Get("minPrice"),
		q.Get("maxPrice"),
		q.Get("ratings"),
		q.Get("searchTerm"),
	)
	sort := catalog.ParseSort(q.Get("sort"))
	page := catalog.Pagination{
		Page:    intParam(q.Get("page")),
		PerPage: intParam(q.Get("perPage")),
	}

	result, err := h.service.List(r.Context(), criteria, sort, page)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idPathValue(w, r, h.logger)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetBySlug handles GET /api/products/by-slug/{slug} requests.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug is required", h.logger)
		return
	}

	product, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetByCategory handles GET /api/products/by-category/{categorySlug} requests.
func (h *ProductHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.PathValue("categorySlug")
	if categorySlug == "" {
		writeError(w, http.StatusBadRequest, "category slug is required", h.logger)
		return
	}

	products, err := h.service.ListByCategory(r.Context(), categorySlug)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetSimilar handles GET /api/products/similar/{id} requests.
func (h *ProductHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id, ok := idPathValue(w, r, h.logger)
	if !ok {
		return
	}

	products, err := h.service.ListSimilar(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products requests. It allocates an empty draft;
// the client fills it in with a follow-up update.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.CreateDraft(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idPathValue(w, r, h.logger)
	if !ok {
		return
	}

	var update model.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idPathValue(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// idPathValue parses the {id} path segment, writing a 400 on failure.
func idPathValue(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid ID", logger)
		return 0, false
	}
	return id, true
}

// intParam parses an optional positive integer query parameter, returning 0
// (meaning "not specified") for anything unparseable.
func intParam(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
