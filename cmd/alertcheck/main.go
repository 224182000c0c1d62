package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/presyo/backend/internal/config"
	"github.com/presyo/backend/internal/mailer"
	"github.com/presyo/backend/internal/repository"
	"github.com/presyo/backend/internal/service"
	"github.com/presyo/backend/pkg/currency"
)

// alertcheck runs one alert evaluation pass and exits. Intended for external
// schedulers (cron, Cloud Scheduler) as an alternative to the in-process job.
func main() {
	output := flag.String("output", "", "Output file for the JSON run summary (default: stdout summary only)")
	timeout := flag.Duration("timeout", 5*time.Minute, "Pass timeout")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║              Presyo Price Alert Checker CLI                  ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	cfg := config.Load()

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

	alertRepo := repository.NewPriceAlertRepository(db)
	productRepo := repository.NewProductRepository(db)
	configRepo := repository.NewAppConfigRepository(db)

	sender := mailer.NewSender(cfg.Mail, logger)
	alertService := service.NewAlertService(alertRepo, productRepo, configRepo, mailer.NewAlertMailer(sender), logger)

	if cfg.Mail.Sandbox {
		fmt.Println("Mode: sandbox (emails are logged, not sent)")
	} else {
		fmt.Println("Mode: live delivery")
	}
	fmt.Println()

	summary, err := alertService.RunPass(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := summary.FinishedAt.Sub(summary.StartedAt)

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("                    RESULTS (%.1fs elapsed)\n", elapsed.Seconds())
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	for _, detail := range summary.Details {
		fmt.Printf("  %s: %s → %s, %d alert(s) fired\n",
			detail.Name, currency.FormatPeso(detail.OldPrice), currency.FormatPeso(detail.NewPrice), detail.AlertsFired)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("SUMMARY: %d products checked, %d changed, %d alerts evaluated, %d fired, %d delivery failures\n",
		summary.ProductsChecked, summary.ProductsChanged,
		summary.AlertsEvaluated, summary.AlertsFired, summary.NotifyFailures)
	fmt.Println("═══════════════════════════════════════════════════════════════")

	if *output != "" {
		data, _ := json.MarshalIndent(summary, "", "  ")
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote run summary to %s\n", *output)
	}
}
