package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/service"
)

// AdminHandler exposes the price-mutating operations. Every route behind it
// sits under AuthMiddleware.
type AdminHandler struct {
	prices   PriceServiceInterface
	catalog  CatalogServiceInterface
	importer ImporterInterface
}

func NewAdminHandler(prices PriceServiceInterface, catalog CatalogServiceInterface, importer ImporterInterface) *AdminHandler {
	return &AdminHandler{prices: prices, catalog: catalog, importer: importer}
}

// RecordPriceInput is the payload for a manual price update.
type RecordPriceInput struct {
	Price decimal.Decimal `json:"price"`
}

// RecordPrice godoc
// @Summary Record a price
// @Description Apply a new current price to a product (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param input body RecordPriceInput true "New price"
// @Success 200 {object} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/products/{id}/price [put]
func (h *AdminHandler) RecordPrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input RecordPriceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.prices.RecordPrice(r.Context(), id, input.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "product not found")
		default:
			respondError(w, http.StatusInternalServerError, "failed to record price")
		}
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// RunImport godoc
// @Summary Run a bulletin import
// @Description Fetch and apply the latest market bulletin (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ImportSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/import [post]
func (h *AdminHandler) RunImport(w http.ResponseWriter, r *http.Request) {
	summary, err := h.importer.Run(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "import failed")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// SeedCatalog godoc
// @Summary Seed the catalog
// @Description Populate an empty catalog with default market staples (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/seed [post]
func (h *AdminHandler) SeedCatalog(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.catalog.SeedDefaults(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to seed catalog")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"seeded": seeded})
}
