package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/config"
	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
)

// ErrNoSource is returned when neither a bulletin URL nor a PDF URL is configured.
var ErrNoSource = errors.New("no bulletin source configured")

// PriceRecorder applies one parsed price to the catalog. The price service
// implements it.
type PriceRecorder interface {
	RecordPrice(ctx context.Context, productID int64, newPrice decimal.Decimal) (*model.Product, error)
}

// Importer fetches a market price bulletin and applies matched rows to the
// catalog. Matching is by product name, English or Filipino, case-insensitive.
type Importer struct {
	cfg         config.ImporterConfig
	client      *http.Client
	productRepo repository.ProductRepository
	recorder    PriceRecorder
	logger      *slog.Logger
}

func New(
	cfg config.ImporterConfig,
	productRepo repository.ProductRepository,
	recorder PriceRecorder,
	logger *slog.Logger,
) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		cfg:         cfg,
		client:      &http.Client{Timeout: 30 * time.Second},
		productRepo: productRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// Run executes one import: fetch the bulletin, parse rows, and record a price
// for every row that matches a catalog product. Unmatched rows are counted
// and skipped; a single bad row never aborts the run.
func (im *Importer) Run(ctx context.Context) (*model.ImportSummary, error) {
	summary := &model.ImportSummary{StartedAt: time.Now()}

	entries, source, err := im.fetchEntries(ctx)
	if err != nil {
		return nil, err
	}
	summary.Source = source
	summary.Parsed = len(entries)

	for _, entry := range entries {
		product, err := im.productRepo.GetByName(ctx, entry.Name)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				summary.Skipped++
				continue
			}
			im.logger.Error("product lookup failed",
				slog.String("name", entry.Name),
				slog.String("error", err.Error()),
			)
			summary.Skipped++
			continue
		}
		summary.Matched++

		if _, err := im.recorder.RecordPrice(ctx, product.ID, entry.Price); err != nil {
			im.logger.Error("recording bulletin price failed",
				slog.Int64("product_id", product.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		summary.Updated++
	}

	summary.FinishedAt = time.Now()

	im.logger.Info("bulletin import finished",
		slog.String("source", summary.Source),
		slog.Int("parsed", summary.Parsed),
		slog.Int("matched", summary.Matched),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
	)

	return summary, nil
}

// fetchEntries tries the HTML bulletin first, falling back to the PDF index.
func (im *Importer) fetchEntries(ctx context.Context) ([]BulletinEntry, string, error) {
	if im.cfg.BulletinURL != "" {
		doc, err := FetchPage(ctx, im.client, im.cfg.BulletinURL)
		if err == nil {
			if entries := ParseBulletinTable(doc); len(entries) > 0 {
				return entries, im.cfg.BulletinURL, nil
			}
			err = errors.New("no commodity rows in bulletin page")
		}
		im.logger.Warn("HTML bulletin failed",
			slog.String("url", im.cfg.BulletinURL),
			slog.String("error", err.Error()),
		)
		if im.cfg.PDFUrl == "" {
			return nil, "", fmt.Errorf("fetch bulletin: %w", err)
		}
	}

	if im.cfg.PDFUrl == "" {
		return nil, "", ErrNoSource
	}

	path, err := DownloadPDF(ctx, im.client, im.cfg.PDFUrl)
	if err != nil {
		return nil, "", fmt.Errorf("download bulletin PDF: %w", err)
	}
	defer os.Remove(path)

	text, err := ExtractText(path)
	if err != nil {
		return nil, "", fmt.Errorf("extract bulletin PDF text: %w", err)
	}

	return ParsePDFBulletin(text), im.cfg.PDFUrl, nil
}
