package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/presyo/backend/internal/config"
	"github.com/presyo/backend/internal/importer"
	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/service"
)

// importer fetches one market price bulletin and applies it to the catalog.
func main() {
	bulletinURL := flag.String("url", "", "Bulletin page URL (overrides BULLETIN_URL)")
	pdfURL := flag.String("pdf", "", "Bulletin PDF URL (overrides BULLETIN_PDF_URL)")
	timeout := flag.Duration("timeout", 10*time.Minute, "Import timeout")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║             Presyo Market Bulletin Importer CLI              ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	cfg := config.Load()
	if *bulletinURL != "" {
		cfg.Importer.BulletinURL = *bulletinURL
	}
	if *pdfURL != "" {
		cfg.Importer.PDFUrl = *pdfURL
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewPriceHistoryRepository(db)
	priceService := service.NewPriceService(productRepo, historyRepo, logger)

	im := importer.New(cfg.Importer, productRepo, priceService, logger)

	summary, err := im.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := summary.FinishedAt.Sub(summary.StartedAt)

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("SUMMARY: %d rows parsed, %d matched, %d updated, %d skipped (%.1fs)\n",
		summary.Parsed, summary.Matched, summary.Updated, summary.Skipped, elapsed.Seconds())
	fmt.Printf("Source: %s\n", summary.Source)
	fmt.Println("═══════════════════════════════════════════════════════════════")
}
