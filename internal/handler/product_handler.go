package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	_ "github.com/presyo/backend/internal/model" // swagger types
	"github.com/presyo/backend/internal/repository"
)

type ProductHandler struct {
	catalog CatalogServiceInterface
	prices  PriceServiceInterface
}

func NewProductHandler(catalog CatalogServiceInterface, prices PriceServiceInterface) *ProductHandler {
	return &ProductHandler{catalog: catalog, prices: prices}
}

// ListCategories godoc
// @Summary List categories
// @Description Get all catalog categories
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} ErrorResponse
// @Router /categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// ListProducts godoc
// @Summary List products
// @Description Get tracked products, optionally filtered by category
// @Tags catalog
// @Produce json
// @Param category query int false "Category ID"
// @Success 200 {array} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid category id")
			return
		}
		categoryID = &id
	}

	products, err := h.catalog.ListProducts(r.Context(), categoryID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get a product
// @Description Get a single product with its current and previous price
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Search godoc
// @Summary Search products
// @Description Keyword search over English and Filipino product names
// @Tags catalog
// @Produce json
// @Param q query string false "Search keyword"
// @Success 200 {array} model.Product
// @Failure 500 {object} ErrorResponse
// @Router /products/search [get]
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetHistory godoc
// @Summary Get price history
// @Description Get a product's price trail over the last N days (default 30)
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Param days query int false "Window in days"
// @Success 200 {array} model.PriceHistoryEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id}/history [get]
func (h *ProductHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	history, err := h.prices.GetHistory(r.Context(), id, days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get price history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}
