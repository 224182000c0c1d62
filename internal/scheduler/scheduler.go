// Package scheduler provides cron-based scheduling for the alert checker and
// bulletin importer.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/service"
)

// Config holds the settings for one scheduled job.
type Config struct {
	// Schedule is a standard 5-field cron expression (e.g., "*/30 * * * *")
	Schedule string
	// Timeout is the maximum duration for one complete run
	Timeout time.Duration
	// Enabled determines if the job should be scheduled at all
	Enabled bool
}

// DefaultCheckerConfig returns the default alert checker schedule.
func DefaultCheckerConfig() Config {
	return Config{
		Schedule: "*/30 * * * *", // Every 30 minutes
		Timeout:  5 * time.Minute,
		Enabled:  true,
	}
}

// Checker is the alert runner's contract with the scheduler.
type Checker interface {
	RunPass(ctx context.Context) (*service.RunSummary, error)
}

// Runner is the bulletin importer's contract with the scheduler.
type Runner interface {
	Run(ctx context.Context) (*model.ImportSummary, error)
}

// Scheduler drives the periodic alert check and, optionally, the bulletin
// import. Jobs do not overlap themselves: cron skips a tick while the
// previous run of the same job is still in flight.
type Scheduler struct {
	cron           *cron.Cron
	checker        Checker
	importer       Runner
	checkerCfg     Config
	importerCfg    Config
	logger         *slog.Logger
	checkerEntryID cron.EntryID
}

// New creates a new Scheduler. importer may be nil when no bulletin source is
// configured.
func New(checkerCfg, importerCfg Config, checker Checker, importer Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		checker:     checker,
		importer:    importer,
		checkerCfg:  checkerCfg,
		importerCfg: importerCfg,
		logger:      logger,
	}
}

// Start registers the enabled jobs and begins the scheduler.
func (s *Scheduler) Start() error {
	if s.checkerCfg.Enabled {
		entryID, err := s.cron.AddFunc(s.checkerCfg.Schedule, s.runCheckJob)
		if err != nil {
			return err
		}
		s.checkerEntryID = entryID

		s.logger.Info("alert checker scheduled",
			slog.String("schedule", s.checkerCfg.Schedule),
			slog.Duration("timeout", s.checkerCfg.Timeout),
		)
	}

	if s.importerCfg.Enabled && s.importer != nil {
		if _, err := s.cron.AddFunc(s.importerCfg.Schedule, s.runImportJob); err != nil {
			return err
		}

		s.logger.Info("bulletin importer scheduled",
			slog.String("schedule", s.importerCfg.Schedule),
		)
	}

	s.cron.Start()
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping scheduler")
	return s.cron.Stop()
}

// RunCheckNow triggers an immediate price check pass through the same
// skip-if-running chain as the scheduled job, so a manual trigger cannot
// overlap an in-flight pass.
func (s *Scheduler) RunCheckNow() {
	if s.checkerEntryID != 0 {
		go s.cron.Entry(s.checkerEntryID).WrappedJob.Run()
		return
	}
	go s.runCheckJob()
}

func (s *Scheduler) runCheckJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.checkerCfg.Timeout)
	defer cancel()

	s.logger.Info("starting scheduled price check")

	summary, err := s.checker.RunPass(ctx)
	if err != nil {
		s.logger.Error("price check failed", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("price check completed",
		slog.Int("products_checked", summary.ProductsChecked),
		slog.Int("products_changed", summary.ProductsChanged),
		slog.Int("alerts_fired", summary.AlertsFired),
		slog.Int("notify_failures", summary.NotifyFailures),
		slog.Duration("duration", summary.FinishedAt.Sub(summary.StartedAt)),
	)
}

func (s *Scheduler) runImportJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.importerCfg.Timeout)
	defer cancel()

	s.logger.Info("starting scheduled bulletin import")

	summary, err := s.importer.Run(ctx)
	if err != nil {
		s.logger.Error("bulletin import failed", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("bulletin import completed",
		slog.Int("parsed", summary.Parsed),
		slog.Int("updated", summary.Updated),
	)
}

// NextCheckTime returns the next scheduled price check.
func (s *Scheduler) NextCheckTime() time.Time {
	if s.checkerEntryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.checkerEntryID).Next
}

// IsRunning returns true if the scheduler has registered jobs.
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
