package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/presyo/backend/docs"
	"github.com/presyo/backend/internal/config"
	"github.com/presyo/backend/internal/handler"
	"github.com/presyo/backend/internal/importer"
	applog "github.com/presyo/backend/internal/logger"
	"github.com/presyo/backend/internal/mailer"
	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/scheduler"
	"github.com/presyo/backend/internal/service"
)

// @title Presyo API
// @version 1.0
// @description Philippine market price tracker: catalog browsing, price alerts, and session shopping lists.

// @contact.name API Support
// @contact.email support@presyo.ph

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()

	logger := applog.Logger()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	alertRepo := repository.NewPriceAlertRepository(db)
	historyRepo := repository.NewPriceHistoryRepository(db)
	listRepo := repository.NewShoppingListRepository(db)
	configRepo := repository.NewAppConfigRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	sender := mailer.NewSender(cfg.Mail, logger)
	alertMailer := mailer.NewAlertMailer(sender)

	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	priceService := service.NewPriceService(productRepo, historyRepo, logger)
	alertService := service.NewAlertService(alertRepo, productRepo, configRepo, alertMailer, logger)
	listService := service.NewShoppingListService(listRepo, productRepo)
	authService := service.NewAuthService(adminRepo)

	bulletinImporter := importer.New(cfg.Importer, productRepo, priceService, logger)

	// Handlers
	productHandler := handler.NewProductHandler(catalogService, priceService)
	alertHandler := handler.NewAlertHandler(alertService)
	listHandler := handler.NewShoppingListHandler(listService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(priceService, catalogService, bulletinImporter)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", handler.SessionHeader},
		ExposedHeaders:   []string{handler.SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public catalog
	r.Get("/api/categories", productHandler.ListCategories)
	r.Get("/api/products", productHandler.ListProducts)
	r.Get("/api/products/search", productHandler.Search)
	r.Get("/api/products/{id}", productHandler.GetProduct)
	r.Get("/api/products/{id}/history", productHandler.GetHistory)
	r.Get("/api/products/{id}/firings", alertHandler.FiringsToday)

	// Alerts (public, keyed by subscriber email)
	r.Post("/api/alerts", alertHandler.Subscribe)
	r.Get("/api/alerts", alertHandler.ListByEmail)
	r.Get("/api/alerts/status", alertHandler.Status)
	r.Delete("/api/alerts/{id}", alertHandler.Unsubscribe)

	// Shopping list (anonymous, session-keyed)
	r.Group(func(r chi.Router) {
		r.Use(handler.SessionMiddleware)

		r.Get("/api/shopping-list", listHandler.Get)
		r.Delete("/api/shopping-list", listHandler.Clear)
		r.Post("/api/shopping-list/items", listHandler.AddItem)
		r.Put("/api/shopping-list/items/{id}", listHandler.UpdateQuantity)
		r.Delete("/api/shopping-list/items/{id}", listHandler.RemoveItem)
	})

	// Admin auth
	r.Post("/api/auth/login", authHandler.Login)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware)

		r.Put("/api/admin/products/{id}/price", adminHandler.RecordPrice)
		r.Post("/api/admin/import", adminHandler.RunImport)
		r.Post("/api/admin/seed", adminHandler.SeedCatalog)
		r.Post("/api/admin/alerts/run", alertHandler.RunNow)
	})

	// Scheduled jobs: alert checker and bulletin importer
	checkerCfg := scheduler.Config{
		Schedule: cfg.CheckerSchedule,
		Timeout:  cfg.CheckerTimeout,
		Enabled:  cfg.CheckerEnabled,
	}
	importerCfg := scheduler.Config{
		Schedule: cfg.ImporterSchedule,
		Timeout:  cfg.ImporterTimeout,
		Enabled:  cfg.ImporterEnabled,
	}
	jobs := scheduler.New(checkerCfg, importerCfg, alertService, bulletinImporter, logger)
	if err := jobs.Start(); err != nil {
		logger.Error("Failed to start scheduler", slog.String("error", err.Error()))
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		if jobs.IsRunning() {
			ctx := jobs.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
