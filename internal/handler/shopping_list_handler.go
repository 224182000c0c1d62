package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presyo/backend/internal/logger"
	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/service"
)

type ShoppingListHandler struct {
	service ShoppingListServiceInterface
}

func NewShoppingListHandler(service ShoppingListServiceInterface) *ShoppingListHandler {
	return &ShoppingListHandler{service: service}
}

// AddItemInput is the payload for adding a product to the list.
type AddItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityInput is the payload for changing an item's quantity.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// Get godoc
// @Summary Get the shopping list
// @Description Get the session's shopping list with a running total
// @Tags shopping-list
// @Produce json
// @Param X-Session-ID header string false "Session token"
// @Success 200 {object} service.ShoppingList
// @Failure 500 {object} ErrorResponse
// @Router /shopping-list [get]
func (h *ShoppingListHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetList(r.Context(), GetSessionID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get shopping list", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get shopping list")
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// AddItem godoc
// @Summary Add an item
// @Description Add a product to the session's shopping list
// @Tags shopping-list
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session token"
// @Param input body AddItemInput true "Item data"
// @Success 201 {object} model.ShoppingListItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shopping-list/items [post]
func (h *ShoppingListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var input AddItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.AddItem(r.Context(), GetSessionID(r.Context()), input.ProductID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "product not found")
		default:
			logger.FromContext(r.Context()).Error("Failed to add list item", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// UpdateQuantity godoc
// @Summary Update an item's quantity
// @Description Set a list item's quantity; zero removes it
// @Tags shopping-list
// @Accept json
// @Param X-Session-ID header string false "Session token"
// @Param id path int true "Item ID"
// @Param input body UpdateQuantityInput true "New quantity"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shopping-list/items/{id} [put]
func (h *ShoppingListHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input UpdateQuantityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), GetSessionID(r.Context()), id, input.Quantity); err != nil {
		if errors.Is(err, repository.ErrListItemNotFound) {
			respondError(w, http.StatusNotFound, "item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem godoc
// @Summary Remove an item
// @Description Delete an item from the session's shopping list
// @Tags shopping-list
// @Param X-Session-ID header string false "Session token"
// @Param id path int true "Item ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shopping-list/items/{id} [delete]
func (h *ShoppingListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.RemoveItem(r.Context(), GetSessionID(r.Context()), id); err != nil {
		if errors.Is(err, repository.ErrListItemNotFound) {
			respondError(w, http.StatusNotFound, "item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear godoc
// @Summary Clear the shopping list
// @Description Remove every item from the session's shopping list
// @Tags shopping-list
// @Param X-Session-ID header string false "Session token"
// @Success 204 "No Content"
// @Failure 500 {object} ErrorResponse
// @Router /shopping-list [delete]
func (h *ShoppingListHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), GetSessionID(r.Context())); err != nil {
		logger.FromContext(r.Context()).Error("Failed to clear shopping list", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to clear shopping list")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
