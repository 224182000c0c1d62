package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/service"
)

type AlertHandler struct {
	service AlertServiceInterface
}

func NewAlertHandler(service AlertServiceInterface) *AlertHandler {
	return &AlertHandler{service: service}
}

// Subscribe godoc
// @Summary Create a price alert
// @Description Subscribe an email to a price alert on a product
// @Tags alerts
// @Accept json
// @Produce json
// @Param input body service.SubscribeInput true "Alert data"
// @Success 201 {object} model.PriceAlert
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /alerts [post]
func (h *AlertHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input service.SubscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	alert, err := h.service.Subscribe(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrInvalidAlertType),
			errors.Is(err, service.ErrInvalidTarget):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "product not found")
		default:
			respondError(w, http.StatusInternalServerError, "failed to create alert")
		}
		return
	}

	respondJSON(w, http.StatusCreated, alert)
}

// Unsubscribe godoc
// @Summary Deactivate a price alert
// @Description Deactivate an alert; requires the subscribing email
// @Tags alerts
// @Param id path int true "Alert ID"
// @Param email query string true "Subscriber email"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), id, email); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			respondError(w, http.StatusNotFound, "alert not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to deactivate alert")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByEmail godoc
// @Summary List alerts for an email
// @Description Get all alerts belonging to a subscriber email
// @Tags alerts
// @Produce json
// @Param email query string true "Subscriber email"
// @Success 200 {array} model.PriceAlert
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	alerts, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}

	respondJSON(w, http.StatusOK, alerts)
}

// FiringsResponse reports how many alerts fired for a product today.
type FiringsResponse struct {
	ProductID    int64 `json:"productId"`
	FiringsToday int   `json:"firingsToday"`
}

// FiringsToday godoc
// @Summary Alert firings for a product today
// @Description Count alerts that fired for a product since midnight
// @Tags alerts
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} FiringsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id}/firings [get]
func (h *AlertHandler) FiringsToday(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	count, err := h.service.FiringsToday(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count firings")
		return
	}

	respondJSON(w, http.StatusOK, FiringsResponse{ProductID: id, FiringsToday: count})
}

// StatusResponse reports when the alert runner last completed a pass.
type StatusResponse struct {
	LastPriceCheck *time.Time `json:"lastPriceCheck"`
}

// Status godoc
// @Summary Alert checker status
// @Description Get the timestamp of the most recent completed price check
// @Tags alerts
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /alerts/status [get]
func (h *AlertHandler) Status(w http.ResponseWriter, r *http.Request) {
	checked, err := h.service.LastPriceCheck(r.Context())
	if err != nil {
		// no pass has completed yet
		respondJSON(w, http.StatusOK, StatusResponse{})
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{LastPriceCheck: &checked})
}

// RunNow godoc
// @Summary Run a price check pass
// @Description Trigger one alert evaluation pass immediately (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.RunSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/alerts/run [post]
func (h *AlertHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RunPass(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "price check failed")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
