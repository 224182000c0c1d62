// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
)

// Validation errors surfaced to the API layer.
var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidAlertType = errors.New("invalid alert type")
	ErrInvalidTarget    = errors.New("target price must be greater than zero")
)

// Notifier hands a fired alert to a delivery channel. The runner depends only
// on the error outcome, never on message content.
type Notifier interface {
	Notify(recipient string, fired model.FiredAlert) error
}

// AlertService handles alert subscriptions and the periodic price check.
type AlertService struct {
	alertRepo   repository.PriceAlertRepository
	productRepo repository.ProductRepository
	configRepo  repository.AppConfigRepository
	notifier    Notifier
	logger      *slog.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(
	alertRepo repository.PriceAlertRepository,
	productRepo repository.ProductRepository,
	configRepo repository.AppConfigRepository,
	notifier Notifier,
	logger *slog.Logger,
) *AlertService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertService{
		alertRepo:   alertRepo,
		productRepo: productRepo,
		configRepo:  configRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SubscribeInput is the payload for creating an alert.
type SubscribeInput struct {
	Email       string          `json:"email"`
	ProductID   int64           `json:"productId"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	AlertType   model.AlertType `json:"alertType"`
}

// Subscribe creates a new active alert for a subscriber email.
// target_price must be positive for below/above; it is ignored for change.
func (s *AlertService) Subscribe(ctx context.Context, input SubscribeInput) (*model.PriceAlert, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if !input.AlertType.IsValid() {
		return nil, ErrInvalidAlertType
	}

	target := input.TargetPrice
	if input.AlertType.RequiresTarget() {
		if !target.IsPositive() {
			return nil, ErrInvalidTarget
		}
	} else {
		// change alerts never evaluate the target
		target = decimal.Zero
	}

	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, fmt.Errorf("look up product %d: %w", input.ProductID, err)
	}

	alert := &model.PriceAlert{
		Email:       email,
		ProductID:   input.ProductID,
		TargetPrice: target,
		AlertType:   input.AlertType,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}

	return alert, nil
}

// Unsubscribe deactivates an alert owned by the given email.
func (s *AlertService) Unsubscribe(ctx context.Context, id int64, email string) error {
	return s.alertRepo.Deactivate(ctx, id, strings.TrimSpace(strings.ToLower(email)))
}

// ListByEmail returns a subscriber's alerts.
func (s *AlertService) ListByEmail(ctx context.Context, email string) ([]model.PriceAlert, error) {
	return s.alertRepo.ListByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// FiringsToday reports how many alerts fired for a product since midnight.
func (s *AlertService) FiringsToday(ctx context.Context, productID int64) (int, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.alertRepo.CountFiringsSince(ctx, productID, midnight)
}

// ProductRunDetail is the per-product line of a run summary.
type ProductRunDetail struct {
	ProductID   int64           `json:"productId"`
	Name        string          `json:"name"`
	OldPrice    decimal.Decimal `json:"oldPrice"`
	NewPrice    decimal.Decimal `json:"newPrice"`
	AlertsFired int             `json:"alertsFired"`
}

// RunSummary reports the outcome of one runner pass. ProductsChecked and
// AlertsFired are kept separate so per-item failures show up as a count
// discrepancy for the operator.
type RunSummary struct {
	StartedAt       time.Time          `json:"startedAt"`
	FinishedAt      time.Time          `json:"finishedAt"`
	ProductsChecked int                `json:"productsChecked"`
	ProductsChanged int                `json:"productsChanged"`
	AlertsEvaluated int                `json:"alertsEvaluated"`
	AlertsFired     int                `json:"alertsFired"`
	NotifyFailures  int                `json:"notifyFailures"`
	Details         []ProductRunDetail `json:"details"`
}

// RunPass executes one complete price check: load products with active
// alerts, evaluate each alert against the current/previous price transition,
// log firings, request delivery, and stamp last_price_check.
//
// Only the initial candidate load is fatal; everything after is handled per
// item so one bad alert cannot starve the rest of the pass. The firing row is
// written before delivery is attempted, so a transport failure never erases
// the logical "this alert matched" fact.
//
// Single-threaded, no overlap prevention: the scheduler is responsible for
// not running two passes at once.
func (s *AlertService) RunPass(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{StartedAt: time.Now()}

	candidates, err := s.alertRepo.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load alert candidates: %w", err)
	}

	for _, candidate := range candidates {
		summary.ProductsChecked++

		// Touch-updates (price rewritten to the same value) are excluded
		// here, so change alerts never see a no-op transition.
		if candidate.CurrentPrice.Equal(candidate.PreviousPrice) {
			continue
		}
		summary.ProductsChanged++

		detail := ProductRunDetail{
			ProductID: candidate.ID,
			Name:      candidate.DisplayName(),
			OldPrice:  candidate.PreviousPrice,
			NewPrice:  candidate.CurrentPrice,
		}

		alerts, err := s.alertRepo.ListActiveByProduct(ctx, candidate.ID)
		if err != nil {
			s.logger.Error("loading alerts for product failed, skipping",
				slog.Int64("product_id", candidate.ID),
				slog.String("error", err.Error()),
			)
			summary.Details = append(summary.Details, detail)
			continue
		}

		for _, alert := range alerts {
			summary.AlertsEvaluated++

			if !ShouldFire(alert.AlertType, alert.TargetPrice, candidate.PreviousPrice, candidate.CurrentPrice) {
				continue
			}

			firing := &model.AlertFiring{AlertID: alert.ID}
			if err := s.alertRepo.LogFiring(ctx, firing); err != nil {
				s.logger.Error("recording alert firing failed",
					slog.Int64("alert_id", alert.ID),
					slog.String("error", err.Error()),
				)
				continue
			}

			summary.AlertsFired++
			detail.AlertsFired++

			fired := model.FiredAlert{
				Alert:    alert,
				Product:  candidate.Product,
				OldPrice: candidate.PreviousPrice,
				NewPrice: candidate.CurrentPrice,
			}

			if err := s.notifier.Notify(alert.Email, fired); err != nil {
				summary.NotifyFailures++
				s.logger.Error("alert notification failed",
					slog.Int64("alert_id", alert.ID),
					slog.String("email", alert.Email),
					slog.String("error", err.Error()),
				)
			}
		}

		summary.Details = append(summary.Details, detail)
	}

	summary.FinishedAt = time.Now()

	if err := s.configRepo.Set(ctx, model.ConfigKeyLastPriceCheck, summary.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
		s.logger.Error("stamping last_price_check failed", slog.String("error", err.Error()))
	}

	return summary, nil
}

// LastPriceCheck returns the timestamp of the most recent completed pass.
func (s *AlertService) LastPriceCheck(ctx context.Context) (time.Time, error) {
	cfg, err := s.configRepo.Get(ctx, model.ConfigKeyLastPriceCheck)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, cfg.ConfigValue)
}
