package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/service"
)

// MockAlertService implements AlertServiceInterface for testing
type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) Subscribe(ctx context.Context, input service.SubscribeInput) (*model.PriceAlert, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceAlert), args.Error(1)
}

func (m *MockAlertService) Unsubscribe(ctx context.Context, id int64, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockAlertService) ListByEmail(ctx context.Context, email string) ([]model.PriceAlert, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceAlert), args.Error(1)
}

func (m *MockAlertService) RunPass(ctx context.Context) (*service.RunSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RunSummary), args.Error(1)
}

func (m *MockAlertService) LastPriceCheck(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockAlertService) FiringsToday(ctx context.Context, productID int64) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func alertRouter(h *AlertHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/alerts", h.Subscribe)
	r.Get("/alerts", h.ListByEmail)
	r.Get("/alerts/status", h.Status)
	r.Delete("/alerts/{id}", h.Unsubscribe)
	r.Get("/products/{id}/firings", h.FiringsToday)
	r.Post("/admin/alerts/run", h.RunNow)
	return r
}

func TestAlertHandler_Subscribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(*MockAlertService)
		wantStatus int
	}{
		{
			name: "success",
			body: map[string]interface{}{
				"email":       "juan@example.com",
				"productId":   7,
				"targetPrice": "50",
				"alertType":   "below",
			},
			setupMock: func(m *MockAlertService) {
				m.On("Subscribe", mock.Anything, mock.AnythingOfType("service.SubscribeInput")).
					Return(&model.PriceAlert{
						ID:          1,
						Email:       "juan@example.com",
						ProductID:   7,
						TargetPrice: decimal.NewFromInt(50),
						AlertType:   model.AlertTypeBelow,
						IsActive:    true,
					}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid body",
			body:       "not json",
			setupMock:  func(m *MockAlertService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid alert type",
			body: map[string]interface{}{
				"email": "juan@example.com", "productId": 7, "alertType": "weekly",
			},
			setupMock: func(m *MockAlertService) {
				m.On("Subscribe", mock.Anything, mock.AnythingOfType("service.SubscribeInput")).
					Return(nil, service.ErrInvalidAlertType)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown product",
			body: map[string]interface{}{
				"email": "juan@example.com", "productId": 404,
				"targetPrice": "50", "alertType": "below",
			},
			setupMock: func(m *MockAlertService) {
				m.On("Subscribe", mock.Anything, mock.AnythingOfType("service.SubscribeInput")).
					Return(nil, repository.ErrProductNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "service error",
			body: map[string]interface{}{
				"email": "juan@example.com", "productId": 7,
				"targetPrice": "50", "alertType": "below",
			},
			setupMock: func(m *MockAlertService) {
				m.On("Subscribe", mock.Anything, mock.AnythingOfType("service.SubscribeInput")).
					Return(nil, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockService := new(MockAlertService)
			tt.setupMock(mockService)
			router := alertRouter(NewAlertHandler(mockService))

			var body bytes.Buffer
			if s, ok := tt.body.(string); ok {
				body.WriteString(s)
			} else {
				_ = json.NewEncoder(&body).Encode(tt.body)
			}

			req := httptest.NewRequest(http.MethodPost, "/alerts", &body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAlertHandler_Unsubscribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		url        string
		setupMock  func(*MockAlertService)
		wantStatus int
	}{
		{
			name: "success",
			url:  "/alerts/3?email=juan@example.com",
			setupMock: func(m *MockAlertService) {
				m.On("Unsubscribe", mock.Anything, int64(3), "juan@example.com").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "invalid id",
			url:        "/alerts/abc?email=juan@example.com",
			setupMock:  func(m *MockAlertService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email",
			url:        "/alerts/3",
			setupMock:  func(m *MockAlertService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "wrong email or unknown alert",
			url:  "/alerts/3?email=other@example.com",
			setupMock: func(m *MockAlertService) {
				m.On("Unsubscribe", mock.Anything, int64(3), "other@example.com").
					Return(repository.ErrAlertNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockService := new(MockAlertService)
			tt.setupMock(mockService)
			router := alertRouter(NewAlertHandler(mockService))

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAlertHandler_Status(t *testing.T) {
	t.Parallel()

	t.Run("reports last check", func(t *testing.T) {
		t.Parallel()

		checked := time.Date(2025, 6, 1, 6, 30, 0, 0, time.UTC)
		mockService := new(MockAlertService)
		mockService.On("LastPriceCheck", mock.Anything).Return(checked, nil)
		router := alertRouter(NewAlertHandler(mockService))

		req := httptest.NewRequest(http.MethodGet, "/alerts/status", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp StatusResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotNil(t, resp.LastPriceCheck)
		assert.True(t, checked.Equal(*resp.LastPriceCheck))
	})

	t.Run("no pass completed yet", func(t *testing.T) {
		t.Parallel()

		mockService := new(MockAlertService)
		mockService.On("LastPriceCheck", mock.Anything).
			Return(time.Time{}, repository.ErrConfigNotFound)
		router := alertRouter(NewAlertHandler(mockService))

		req := httptest.NewRequest(http.MethodGet, "/alerts/status", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp StatusResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Nil(t, resp.LastPriceCheck)
	})
}

func TestAlertHandler_FiringsToday(t *testing.T) {
	t.Parallel()

	t.Run("returns count", func(t *testing.T) {
		t.Parallel()

		mockService := new(MockAlertService)
		mockService.On("FiringsToday", mock.Anything, int64(7)).Return(3, nil)
		router := alertRouter(NewAlertHandler(mockService))

		req := httptest.NewRequest(http.MethodGet, "/products/7/firings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp FiringsResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(7), resp.ProductID)
		assert.Equal(t, 3, resp.FiringsToday)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		mockService := new(MockAlertService)
		router := alertRouter(NewAlertHandler(mockService))

		req := httptest.NewRequest(http.MethodGet, "/products/abc/firings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAlertHandler_RunNow(t *testing.T) {
	t.Parallel()

	mockService := new(MockAlertService)
	mockService.On("RunPass", mock.Anything).Return(&service.RunSummary{
		ProductsChecked: 5,
		AlertsFired:     2,
	}, nil)
	router := alertRouter(NewAlertHandler(mockService))

	req := httptest.NewRequest(http.MethodPost, "/admin/alerts/run", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var summary service.RunSummary
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, 5, summary.ProductsChecked)
	assert.Equal(t, 2, summary.AlertsFired)
}
